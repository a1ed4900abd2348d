package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Name string `json:"name"`
}

func envelope(t *testing.T, w http.ResponseWriter, success bool, data any, message string) {
	t.Helper()
	body := map[string]any{"success": success}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClientDecodesEnvelopeData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/42", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		envelope(t, w, true, echoPayload{Name: "algorithms"}, "")
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithToken("secret"))
	require.NoError(t, err)

	var out echoPayload
	require.NoError(t, client.Get(context.Background(), "/courses/42", &out))
	assert.Equal(t, "algorithms", out.Name)
}

func TestClientRequiresBaseURL(t *testing.T) {
	_, err := New("  ")
	require.Error(t, err)
}

func TestClientSurfacesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		envelope(t, w, false, nil, "unsupported file type")
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	require.NoError(t, err)

	err = client.Post(context.Background(), "/videos/upload/initialize", echoPayload{}, nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "unsupported file type", apiErr.Error())
}

func TestClientRejectsSuccessFalseOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(t, w, false, nil, "quota exceeded")
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/anything", nil)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "quota exceeded", apiErr.Message)
}

func TestClientPostMultipart(t *testing.T) {
	var gotField, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotField = r.FormValue("sessionId")
		f, header, err := r.FormFile("chunk")
		require.NoError(t, err)
		defer f.Close()
		gotFile = header.Filename
		envelope(t, w, true, nil, "")
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	require.NoError(t, err)

	var written []int64
	var total int64
	form := MultipartForm{
		Fields:    map[string]string{"sessionId": "sess-1"},
		FileField: "chunk",
		FileName:  "movie.mp4.part0",
		File:      strings.NewReader("chunk bytes"),
		Progress: func(w, t int64) {
			written = append(written, w)
			total = t
		},
	}
	require.NoError(t, client.PostMultipart(context.Background(), "/videos/upload/chunk", form, nil))

	assert.Equal(t, "sess-1", gotField)
	assert.Equal(t, "movie.mp4.part0", gotFile)
	require.NotEmpty(t, written)
	for i := 1; i < len(written); i++ {
		assert.GreaterOrEqual(t, written[i], written[i-1])
	}
	assert.Equal(t, total, written[len(written)-1])
}

func TestClientDownloadRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	require.NoError(t, err)

	data, err := client.Download(context.Background(), "/certificates/abc/download")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
