package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"

	"course-agent/dto"
	"course-agent/entities"
	"course-agent/pkg/api"
)

// ErrRecordingUpload marks a failed recording chunk transfer. Like the
// video upload core, a failed chunk aborts the run and is not retried.
var ErrRecordingUpload = errors.New("recording chunk upload failed")

// ChunkStore persists recording chunks in the platform object store.
type ChunkStore interface {
	PutChunk(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
}

type minioChunkStore struct {
	client *minio.Client
	bucket string
}

// NewMinioChunkStore stores chunks through a MinIO client, the same
// bucket the media backend's merge worker reads from.
func NewMinioChunkStore(client *minio.Client, bucket string) ChunkStore {
	return &minioChunkStore{client: client, bucket: bucket}
}

func (m *minioChunkStore) PutChunk(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// recordingChunkObject is the object layout the merge worker expects.
func recordingChunkObject(sessionID uuid.UUID, index int) string {
	return fmt.Sprintf("live-recordings/%s/chunks/chunk_%04d.webm", sessionID, index)
}

// SessionService drives the live session lifecycle
// (scheduled -> live -> completed|cancelled) and ships recording chunks
// to the object store for backend-side merging.
type SessionService struct {
	api   *api.Client
	store ChunkStore
}

func NewSessionService(client *api.Client, store ChunkStore) *SessionService {
	return &SessionService{api: client, store: store}
}

func (s *SessionService) Schedule(ctx context.Context, req dto.ScheduleSessionRequest) (*entities.LiveSession, error) {
	var session entities.LiveSession
	if err := s.api.Post(ctx, "/sessions", req, &session); err != nil {
		return nil, fmt.Errorf("schedule session: %w", err)
	}
	return &session, nil
}

func (s *SessionService) List(ctx context.Context) ([]entities.LiveSession, error) {
	var sessions []entities.LiveSession
	if err := s.api.Get(ctx, "/sessions", &sessions); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*entities.LiveSession, error) {
	var session entities.LiveSession
	if err := s.api.Get(ctx, "/sessions/"+id.String(), &session); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

func (s *SessionService) Start(ctx context.Context, id uuid.UUID) (*entities.LiveSession, error) {
	var session entities.LiveSession
	if err := s.api.Post(ctx, "/sessions/"+id.String()+"/start", nil, &session); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("session_id", id.String()).Msg("session live")
	return &session, nil
}

func (s *SessionService) End(ctx context.Context, id uuid.UUID) (*entities.LiveSession, error) {
	var session entities.LiveSession
	if err := s.api.Post(ctx, "/sessions/"+id.String()+"/end", nil, &session); err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("session_id", id.String()).Msg("session ended")
	return &session, nil
}

// Participants and chat exist only while the session is live.
func (s *SessionService) Participants(ctx context.Context, id uuid.UUID) ([]entities.Participant, error) {
	var participants []entities.Participant
	if err := s.api.Get(ctx, "/sessions/"+id.String()+"/participants", &participants); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

func (s *SessionService) Chat(ctx context.Context, id uuid.UUID) ([]entities.ChatMessage, error) {
	var messages []entities.ChatMessage
	if err := s.api.Get(ctx, "/sessions/"+id.String()+"/chat", &messages); err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return messages, nil
}

// UploadRecordingChunk ships one chunk to the object store under the
// merge worker's expected layout.
func (s *SessionService) UploadRecordingChunk(ctx context.Context, sessionID uuid.UUID, index int, r io.Reader, size int64) error {
	if s.store == nil {
		return errors.New("no chunk store configured")
	}
	object := recordingChunkObject(sessionID, index)
	if err := s.store.PutChunk(ctx, object, r, size, "video/webm"); err != nil {
		return errors.Join(ErrRecordingUpload, err)
	}
	zerolog.Ctx(ctx).Debug().
		Str("session_id", sessionID.String()).
		Str("object", object).
		Int64("size", size).
		Msg("recording chunk stored")
	return nil
}

// UploadRecording ships every chunk file in dir sequentially (sorted by
// name), then notifies the backend so it can enqueue the merge job.
// Returns the number of chunks uploaded.
func (s *SessionService) UploadRecording(ctx context.Context, sessionID uuid.UUID, dir string, durationSeconds int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read recording dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no recording chunks in %s", dir)
	}
	sort.Strings(files)

	for index, name := range files {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return index, fmt.Errorf("open chunk %s: %w", name, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return index, fmt.Errorf("stat chunk %s: %w", name, err)
		}
		err = s.UploadRecordingChunk(ctx, sessionID, index, f, info.Size())
		f.Close()
		if err != nil {
			return index, err
		}
	}

	if err := s.FinishRecording(ctx, sessionID, len(files), durationSeconds); err != nil {
		return len(files), err
	}
	return len(files), nil
}

// FinishRecording tells the backend all chunks are in the store.
func (s *SessionService) FinishRecording(ctx context.Context, sessionID uuid.UUID, totalChunks, durationSeconds int) error {
	req := dto.RecordingCompleteRequest{TotalChunks: totalChunks, DurationSeconds: durationSeconds}
	if err := s.api.Post(ctx, "/sessions/"+sessionID.String()+"/recording", req, nil); err != nil {
		return fmt.Errorf("finish recording: %w", err)
	}
	zerolog.Ctx(ctx).Info().
		Str("session_id", sessionID.String()).
		Int("total_chunks", totalChunks).
		Msg("recording handed off for merge")
	return nil
}
