package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"course-agent/dto"
	"course-agent/entities"
	"course-agent/pkg/api"
)

// DefaultChunkSize matches the 5 MiB chunks the media backend expects.
const DefaultChunkSize int64 = 5 << 20

// completionShare is the slice of overall progress reserved for the
// completion call: chunk transfers account for at most 95%.
const completionShare = 0.05

var (
	ErrSessionInit = errors.New("upload session rejected")
	ErrChunkUpload = errors.New("chunk upload failed")
)

// ProgressFunc receives the overall upload fraction in [0, 1]. Values
// are monotonically non-decreasing and reach 1 only after the
// completion call succeeds.
type ProgressFunc func(fraction float64)

type UploadService struct {
	api       *api.Client
	chunkSize int64
}

type UploadOption func(*UploadService)

func WithChunkSize(size int64) UploadOption {
	return func(s *UploadService) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

func NewUploadService(client *api.Client, opts ...UploadOption) *UploadService {
	s := &UploadService{api: client, chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize requests an upload session from the backend. The chunk
// count is fixed at ceil(fileSize / chunkSize) for the session's
// lifetime.
func (s *UploadService) Initialize(ctx context.Context, fileName string, fileSize int64) (*entities.UploadSession, error) {
	if fileSize <= 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrSessionInit)
	}
	totalChunks := int((fileSize + s.chunkSize - 1) / s.chunkSize)

	req := dto.InitializeUploadRequest{
		FileName:    fileName,
		FileSize:    fileSize,
		ChunkSize:   s.chunkSize,
		TotalChunks: totalChunks,
		ContentType: "video/mp4",
	}
	var resp dto.InitializeUploadResponse
	if err := s.api.Post(ctx, "/videos/upload/initialize", req, &resp); err != nil {
		return nil, errors.Join(ErrSessionInit, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("session_id", resp.SessionID).
		Str("file_name", fileName).
		Int("total_chunks", totalChunks).
		Msg("upload session initialized")

	return &entities.UploadSession{
		ID:          resp.SessionID,
		FileName:    fileName,
		FileSize:    fileSize,
		ChunkSize:   s.chunkSize,
		TotalChunks: totalChunks,
		Uploaded:    make(map[int]bool),
	}, nil
}

// UploadChunk sends one chunk as a binary multipart payload. onProgress
// (optional) receives the fraction of this chunk's body transferred so
// far. A failed chunk is not retried; the caller must re-drive the
// whole upload.
func (s *UploadService) UploadChunk(ctx context.Context, session *entities.UploadSession, index int, chunk io.Reader, size int64, onProgress ProgressFunc) error {
	if index < 0 || index >= session.TotalChunks {
		return fmt.Errorf("%w: chunk index %d out of range [0,%d)", ErrChunkUpload, index, session.TotalChunks)
	}

	form := api.MultipartForm{
		Fields: map[string]string{
			"sessionId":  session.ID,
			"chunkIndex": strconv.Itoa(index),
		},
		FileField: "chunk",
		FileName:  fmt.Sprintf("%s.part%d", session.FileName, index),
		File:      io.LimitReader(chunk, size),
	}
	if onProgress != nil {
		form.Progress = func(written, total int64) {
			if total > 0 {
				onProgress(float64(written) / float64(total))
			}
		}
	}

	var ack dto.ChunkAck
	if err := s.api.PostMultipart(ctx, "/videos/upload/chunk", form, &ack); err != nil {
		return errors.Join(ErrChunkUpload, err)
	}
	session.MarkUploaded(index)

	zerolog.Ctx(ctx).Debug().
		Str("session_id", session.ID).
		Int("chunk_index", index).
		Int64("chunk_size", size).
		Msg("chunk acknowledged")
	return nil
}

// Complete tells the backend every chunk has arrived and hands over the
// descriptive metadata. The backend reassembles and transcodes; the
// returned record starts out in uploading or processing status.
func (s *UploadService) Complete(ctx context.Context, session *entities.UploadSession, meta dto.VideoMetadata) (*entities.VideoUpload, error) {
	req := dto.CompleteUploadRequest{SessionID: session.ID, Metadata: meta}
	var video entities.VideoUpload
	if err := s.api.Post(ctx, "/videos/upload/complete", req, &video); err != nil {
		return nil, fmt.Errorf("complete upload: %w", err)
	}
	zerolog.Ctx(ctx).Info().
		Str("session_id", session.ID).
		Str("video_id", video.ID.String()).
		Str("status", video.Status.String()).
		Msg("upload completed")
	return &video, nil
}

// UploadVideo drives the whole transfer: initialize, one chunk request
// per ceil(size/chunkSize) byte range strictly in sequence, then the
// completion call. Any stage failure aborts the operation; there is no
// checkpointing across process restarts.
func (s *UploadService) UploadVideo(ctx context.Context, path string, meta dto.VideoMetadata, onProgress ProgressFunc) (*entities.VideoUpload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	session, err := s.Initialize(ctx, filepath.Base(path), info.Size())
	if err != nil {
		return nil, err
	}

	report := newMonotonicProgress(onProgress)
	chunkShare := (1 - completionShare) / float64(session.TotalChunks)

	for index := 0; index < session.TotalChunks; index++ {
		offset := int64(index) * session.ChunkSize
		size := session.ChunkSize
		if remaining := session.FileSize - offset; remaining < size {
			size = remaining
		}

		base := float64(index) * chunkShare
		err := s.UploadChunk(ctx, session, index, f, size, func(fraction float64) {
			report(base + fraction*chunkShare)
		})
		if err != nil {
			return nil, err
		}
		report(base + chunkShare)
	}

	video, err := s.Complete(ctx, session, meta)
	if err != nil {
		return nil, err
	}
	report(1)
	return video, nil
}

// GetVideo fetches the current backend record, e.g. to poll transcoding
// status after completion.
func (s *UploadService) GetVideo(ctx context.Context, id string) (*entities.VideoUpload, error) {
	var video entities.VideoUpload
	if err := s.api.Get(ctx, "/videos/"+id, &video); err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return &video, nil
}

// newMonotonicProgress clamps callback values so a caller never
// observes progress moving backwards.
func newMonotonicProgress(fn ProgressFunc) ProgressFunc {
	if fn == nil {
		return func(float64) {}
	}
	last := 0.0
	return func(fraction float64) {
		if fraction < last {
			fraction = last
		}
		if fraction > 1 {
			fraction = 1
		}
		last = fraction
		fn(fraction)
	}
}
