package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-agent/constant"
	"course-agent/entities"
	"course-agent/pkg/api"
)

func buildCourse(t *testing.T) entities.Course {
	t.Helper()
	c := entities.Course{
		Title:       "Practical Go",
		Description: "From zero to services",
		Category:    "go",
	}
	c = AddSection(c, "Getting Started")
	c = AddSection(c, "Concurrency")
	c = AddLesson(c, c.Sections[0].ID, entities.Lesson{Title: "Installing Go", Type: constant.LessonTypeArticle})
	c = AddLesson(c, c.Sections[0].ID, entities.Lesson{Title: "Hello World", Type: constant.LessonTypeVideo})
	c = AddLesson(c, c.Sections[1].ID, entities.Lesson{Title: "Goroutines", Type: constant.LessonTypeVideo})
	return c
}

func TestAddSectionAndLessonOrdering(t *testing.T) {
	c := buildCourse(t)
	require.Len(t, c.Sections, 2)
	assert.Equal(t, 0, c.Sections[0].Order)
	assert.Equal(t, 1, c.Sections[1].Order)
	assert.Equal(t, 0, c.Sections[0].Lessons[0].Order)
	assert.Equal(t, 1, c.Sections[0].Lessons[1].Order)
	assert.Equal(t, 3, c.LessonCount())
}

func TestMutationsDoNotAliasInput(t *testing.T) {
	c := buildCourse(t)
	before := c.Sections[0].Title

	mutated := UpdateSection(c, c.Sections[0].ID, "Renamed")
	assert.Equal(t, before, c.Sections[0].Title)
	assert.Equal(t, "Renamed", mutated.Sections[0].Title)
}

func TestDeleteSectionCascades(t *testing.T) {
	c := buildCourse(t)
	active := c.Sections[0].Lessons[1].ID
	c.ActiveLessonID = &active

	c = DeleteSection(c, c.Sections[0].ID)

	require.Len(t, c.Sections, 1)
	assert.Equal(t, "Concurrency", c.Sections[0].Title)
	assert.Equal(t, 1, c.LessonCount())
	assert.Nil(t, c.ActiveLessonID, "active lesson pointed into the deleted section")
	assert.Equal(t, 0, c.Sections[0].Order)
}

func TestDeleteSectionKeepsUnrelatedActiveLesson(t *testing.T) {
	c := buildCourse(t)
	active := c.Sections[1].Lessons[0].ID
	c.ActiveLessonID = &active

	c = DeleteSection(c, c.Sections[0].ID)
	require.NotNil(t, c.ActiveLessonID)
	assert.Equal(t, active, *c.ActiveLessonID)
}

func TestDeleteLessonClearsActive(t *testing.T) {
	c := buildCourse(t)
	active := c.Sections[0].Lessons[0].ID
	c.ActiveLessonID = &active

	c = DeleteLesson(c, c.Sections[0].ID, active)
	assert.Nil(t, c.ActiveLessonID)
	assert.Len(t, c.Sections[0].Lessons, 1)
	assert.Equal(t, 0, c.Sections[0].Lessons[0].Order)
}

func TestMoveSectionRenumbers(t *testing.T) {
	c := buildCourse(t)
	c = MoveSection(c, 1, 0)
	assert.Equal(t, "Concurrency", c.Sections[0].Title)
	assert.Equal(t, 0, c.Sections[0].Order)
	assert.Equal(t, "Getting Started", c.Sections[1].Title)
	assert.Equal(t, 1, c.Sections[1].Order)
}

func TestMoveLessonRenumbers(t *testing.T) {
	c := buildCourse(t)
	sid := c.Sections[0].ID
	c = MoveLesson(c, sid, 1, 0)
	assert.Equal(t, "Hello World", c.Sections[0].Lessons[0].Title)
	assert.Equal(t, "Installing Go", c.Sections[0].Lessons[1].Title)
	assert.Equal(t, 0, c.Sections[0].Lessons[0].Order)
}

func TestMoveOutOfRangeIsNoop(t *testing.T) {
	c := buildCourse(t)
	moved := MoveSection(c, 0, 5)
	assert.Equal(t, c.Sections[0].Title, moved.Sections[0].Title)
}

// noNetworkClient fails the test on any request.
func noNetworkClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected network call: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	require.NoError(t, err)
	return client
}

func TestPublishRejectedWithoutSections(t *testing.T) {
	svc := NewCourseService(noNetworkClient(t))
	c := entities.Course{Title: "T", Description: "D", Category: "go"}

	_, err := svc.Publish(context.Background(), c)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Error(), "at least one section")
}

func TestPublishRejectedWithoutLessons(t *testing.T) {
	svc := NewCourseService(noNetworkClient(t))
	c := entities.Course{Title: "T", Description: "D", Category: "go"}
	c = AddSection(c, "Empty")

	_, err := svc.Publish(context.Background(), c)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Error(), "at least one lesson")
}

func TestPublishRejectedWithoutRequiredFields(t *testing.T) {
	svc := NewCourseService(noNetworkClient(t))
	c := entities.Course{}

	err := svc.ValidatePublish(c)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	msg := verrs.Error()
	assert.Contains(t, msg, "title")
	assert.Contains(t, msg, "description")
	assert.Contains(t, msg, "category")
}

func TestPublishRejectedWithUnknownCategory(t *testing.T) {
	svc := NewCourseService(noNetworkClient(t))
	c := buildCourse(t)
	c.Category = "underwater-basket-weaving"

	err := svc.ValidatePublish(c)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Error(), "unknown category")
}

func TestPublishHappyPath(t *testing.T) {
	courseID := uuid.New()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/courses":
			writeEnvelope(t, w, true, map[string]any{"id": courseID, "title": "Practical Go"}, "")
		case "/courses/" + courseID.String() + "/publish":
			writeEnvelope(t, w, true, map[string]any{"id": courseID, "published": true}, "")
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	require.NoError(t, err)
	svc := NewCourseService(client)

	published, err := svc.Publish(context.Background(), buildCourse(t))
	require.NoError(t, err)
	assert.True(t, published.Published)
	assert.Equal(t, []string{"POST /courses", "POST /courses/" + courseID.String() + "/publish"}, paths)
}
