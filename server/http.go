package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"course-agent/config"
	"course-agent/constant"
	"course-agent/dto"
)

// Tracker holds the progress snapshots the agent serves over HTTP.
// Uploads driven by this process and status events pushed by the media
// backend both land here.
type Tracker struct {
	mu      sync.RWMutex
	uploads map[string]dto.UploadStatus
}

func NewTracker() *Tracker {
	return &Tracker{uploads: make(map[string]dto.UploadStatus)}
}

func (t *Tracker) Set(id, fileName string, status constant.VideoStatus, progress int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, ok := t.uploads[id]
	if ok && fileName == "" {
		fileName = prev.FileName
	}
	t.uploads[id] = dto.UploadStatus{
		ID:        id,
		FileName:  fileName,
		Status:    status,
		Progress:  progress,
		UpdatedAt: time.Now(),
	}
}

func (t *Tracker) Snapshot() []dto.UploadStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]dto.UploadStatus, 0, len(t.uploads))
	for _, u := range t.uploads {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

// RunHTTP serves the agent's status API until ctx is cancelled.
func RunHTTP(ctx context.Context, cfg *config.Config, tracker *Tracker) {
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	addRoutes(r, tracker)

	handler := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("addr", handler.Addr).Msg("start status server")
		if err := handler.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down status server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handler.Shutdown(shutdownCtx); err != nil {
		zerolog.Ctx(ctx).Error().Msg(err.Error())
	}
	zerolog.Ctx(ctx).Info().Msg("status server stopped")
}

func addRoutes(r *gin.Engine, tracker *Tracker) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
	r.GET("/uploads", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"uploads": tracker.Snapshot(),
		})
	})
}

// SetupLogger builds the process logger and stores it in a context, the
// root of every ctx used by commands and the agent.
func SetupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
