package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-agent/dto"
	"course-agent/pkg/api"
)

// fakeChunkStore records stored objects in call order.
type fakeChunkStore struct {
	objects     []string
	sizes       []int64
	contentType string
	failAt      int // fail the nth call (1-based), 0 disables
	calls       int
}

func (f *fakeChunkStore) PutChunk(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	f.calls++
	if f.failAt > 0 && f.calls == f.failAt {
		return fmt.Errorf("storage unavailable")
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}
	f.objects = append(f.objects, objectName)
	f.sizes = append(f.sizes, size)
	f.contentType = contentType
	return nil
}

func writeRecordingChunks(t *testing.T, sizes ...int) string {
	t.Helper()
	dir := t.TempDir()
	for i, size := range sizes {
		name := fmt.Sprintf("chunk_%04d.webm", i)
		data := make([]byte, size)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
	return dir
}

func newSessionService(t *testing.T, store ChunkStore, handler http.HandlerFunc) *SessionService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	require.NoError(t, err)
	return NewSessionService(client, store)
}

func TestUploadRecordingSequentialLayout(t *testing.T) {
	sessionID := uuid.New()
	store := &fakeChunkStore{}
	var finish dto.RecordingCompleteRequest
	var finishPath string
	svc := newSessionService(t, store, func(w http.ResponseWriter, r *http.Request) {
		finishPath = r.Method + " " + r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&finish))
		writeEnvelope(t, w, true, nil, "")
	})

	dir := writeRecordingChunks(t, 1024, 1024, 512)
	n, err := svc.UploadRecording(context.Background(), sessionID, dir, 95)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	prefix := "live-recordings/" + sessionID.String() + "/chunks/"
	assert.Equal(t, []string{
		prefix + "chunk_0000.webm",
		prefix + "chunk_0001.webm",
		prefix + "chunk_0002.webm",
	}, store.objects)
	assert.Equal(t, []int64{1024, 1024, 512}, store.sizes)
	assert.Equal(t, "video/webm", store.contentType)

	assert.Equal(t, "POST /sessions/"+sessionID.String()+"/recording", finishPath)
	assert.Equal(t, 3, finish.TotalChunks)
	assert.Equal(t, 95, finish.DurationSeconds)
}

func TestUploadRecordingStoreFailureAborts(t *testing.T) {
	store := &fakeChunkStore{failAt: 2}
	svc := newSessionService(t, store, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("recording must not be finished after a failed chunk: %s", r.URL.Path)
	})

	dir := writeRecordingChunks(t, 100, 100, 100)
	n, err := svc.UploadRecording(context.Background(), uuid.New(), dir, 10)
	require.ErrorIs(t, err, ErrRecordingUpload)
	assert.Equal(t, 1, n, "only the chunk before the failure was stored")
	assert.Len(t, store.objects, 1)
}

func TestUploadRecordingEmptyDir(t *testing.T) {
	svc := newSessionService(t, &fakeChunkStore{}, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s", r.URL.Path)
	})
	_, err := svc.UploadRecording(context.Background(), uuid.New(), t.TempDir(), 0)
	require.Error(t, err)
}

func TestUploadRecordingChunkWithoutStore(t *testing.T) {
	svc := newSessionService(t, nil, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s", r.URL.Path)
	})
	err := svc.UploadRecordingChunk(context.Background(), uuid.New(), 0, nil, 0)
	require.Error(t, err)
}

func TestParticipantsAndChat(t *testing.T) {
	sessionID := uuid.New()
	svc := newSessionService(t, nil, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sessions/" + sessionID.String() + "/participants":
			writeEnvelope(t, w, true, []map[string]any{
				{"id": uuid.New(), "name": "Ada", "role": "instructor"},
				{"id": uuid.New(), "name": "Grace", "role": "student"},
			}, "")
		case "/sessions/" + sessionID.String() + "/chat":
			writeEnvelope(t, w, true, []map[string]any{
				{"id": uuid.New(), "sender": "Grace", "body": "can you repeat that?"},
			}, "")
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	participants, err := svc.Participants(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, "instructor", participants[0].Role)

	messages, err := svc.Chat(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Grace", messages[0].Sender)
}

func TestScheduleAndLifecycle(t *testing.T) {
	sessionID := uuid.New()
	var paths []string
	svc := newSessionService(t, nil, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		writeEnvelope(t, w, true, map[string]any{"id": sessionID, "title": "Office hours"}, "")
	})

	session, err := svc.Schedule(context.Background(), dto.ScheduleSessionRequest{Title: "Office hours"})
	require.NoError(t, err)
	assert.Equal(t, sessionID, session.ID)

	_, err = svc.Start(context.Background(), sessionID)
	require.NoError(t, err)
	_, err = svc.End(context.Background(), sessionID)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /sessions",
		"POST /sessions/" + sessionID.String() + "/start",
		"POST /sessions/" + sessionID.String() + "/end",
	}, paths)
}
