package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"course-agent/constant"
	"course-agent/dto"
	"course-agent/entities"
	"course-agent/pkg/api"
)

// ErrInvalidTransition is returned when a playback control does not
// apply in the current state, e.g. Play before the source is ready.
var ErrInvalidTransition = errors.New("invalid player transition")

// Player mirrors a media element's lifecycle:
//
//	idle -> loading -> ready <-> playing <-> paused -> ended
//
// with buffering as a transient sub-state while playing. Position
// accrues from the wall clock while playing. A timer pushes a
// watch-progress record to the backend every reportInterval of
// playback, and End pushes a final completion record. Reports are fire
// and forget: a failure is logged and dropped, with no queue or retry.
type Player struct {
	mu sync.Mutex

	api            *api.Client
	reportInterval time.Duration
	now            func() time.Time
	logger         zerolog.Logger

	video    *entities.VideoUpload
	state    constant.PlayerState
	prior    constant.PlayerState // state to restore after buffering
	quality  string
	caption  string
	volume   float64
	muted    bool
	position time.Duration
	playedAt time.Time // wall-clock instant playback last resumed

	stopTick chan struct{}
	ticks    sync.WaitGroup
	closed   bool
}

type PlayerOption func(*Player)

// WithReportInterval overrides the 30s watch-progress cadence.
func WithReportInterval(d time.Duration) PlayerOption {
	return func(p *Player) {
		if d > 0 {
			p.reportInterval = d
		}
	}
}

func WithClock(now func() time.Time) PlayerOption {
	return func(p *Player) {
		if now != nil {
			p.now = now
		}
	}
}

func WithPlayerLogger(logger zerolog.Logger) PlayerOption {
	return func(p *Player) {
		p.logger = logger
	}
}

func NewPlayer(client *api.Client, opts ...PlayerOption) *Player {
	p := &Player{
		api:            client,
		reportInterval: 30 * time.Second,
		now:            time.Now,
		logger:         zerolog.Nop(),
		state:          constant.PlayerStateIdle,
		volume:         1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load points the player at a video and selects the initial quality.
func (p *Player) Load(video *entities.VideoUpload, quality string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != constant.PlayerStateIdle && p.state != constant.PlayerStateEnded {
		return fmt.Errorf("%w: load from %s", ErrInvalidTransition, p.state)
	}
	if _, ok := video.PlaybackURLs[quality]; !ok {
		return fmt.Errorf("quality %q not available", quality)
	}
	p.video = video
	p.quality = quality
	p.position = 0
	p.state = constant.PlayerStateLoading
	return nil
}

// Ready marks the source as playable (the element's canplay event).
func (p *Player) Ready() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != constant.PlayerStateLoading {
		return fmt.Errorf("%w: ready from %s", ErrInvalidTransition, p.state)
	}
	p.state = constant.PlayerStateReady
	return nil
}

func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case constant.PlayerStateReady, constant.PlayerStatePaused:
	default:
		return fmt.Errorf("%w: play from %s", ErrInvalidTransition, p.state)
	}
	p.playedAt = p.now()
	p.state = constant.PlayerStatePlaying
	p.startTickerLocked()
	return nil
}

func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != constant.PlayerStatePlaying && p.state != constant.PlayerStateBuffering {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, p.state)
	}
	p.accrueLocked()
	p.state = constant.PlayerStatePaused
	p.stopTickerLocked()
	return nil
}

// Stall is the element's waiting event: playback halts while the
// buffer refills.
func (p *Player) Stall() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != constant.PlayerStatePlaying {
		return
	}
	p.accrueLocked()
	p.prior = constant.PlayerStatePlaying
	p.state = constant.PlayerStateBuffering
}

// Recover is the canplay event after a stall.
func (p *Player) Recover() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != constant.PlayerStateBuffering {
		return
	}
	p.state = p.prior
	if p.state == constant.PlayerStatePlaying {
		p.playedAt = p.now()
	}
}

func (p *Player) Seek(to time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accrueLocked()
	if to < 0 {
		to = 0
	}
	p.position = to
	if p.state == constant.PlayerStatePlaying {
		p.playedAt = p.now()
	}
}

func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
}

func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = m
}

func (p *Player) SetCaption(lang string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.caption = lang
}

// SwitchQuality swaps the source to another rendition, preserving the
// current position and play/pause state across the reload.
func (p *Player) SwitchQuality(quality string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.video == nil {
		return fmt.Errorf("%w: no video loaded", ErrInvalidTransition)
	}
	if quality == p.quality {
		return nil
	}
	if _, ok := p.video.PlaybackURLs[quality]; !ok {
		return fmt.Errorf("quality %q not available", quality)
	}

	p.accrueLocked()
	wasPlaying := p.state == constant.PlayerStatePlaying

	p.quality = quality
	if wasPlaying {
		p.playedAt = p.now()
	} else if p.state != constant.PlayerStateIdle && p.state != constant.PlayerStateEnded {
		p.state = constant.PlayerStatePaused
	}

	p.logger.Debug().
		Str("quality", quality).
		Dur("position", p.position).
		Bool("playing", wasPlaying).
		Msg("quality switched")
	return nil
}

// End is the element's ended event. It pushes the final completion
// record synchronously.
func (p *Player) End(ctx context.Context) {
	p.mu.Lock()
	p.accrueLocked()
	p.state = constant.PlayerStateEnded
	p.stopTickerLocked()
	video := p.video
	position := p.position
	p.mu.Unlock()

	if video == nil {
		return
	}
	p.report(ctx, dto.WatchProgressRequest{
		VideoID:   video.ID,
		Position:  position.Seconds(),
		Duration:  video.Duration,
		Completed: true,
	})
}

// Close stops the progress timer and further state updates. It is the
// unmount cleanup obligation.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTickerLocked()
	p.closed = true
	p.state = constant.PlayerStateIdle
	p.video = nil
}

func (p *Player) State() constant.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Quality() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quality
}

func (p *Player) Volume() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume, p.muted
}

func (p *Player) Caption() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.caption
}

// Position returns the playback position including time accrued since
// the last control event.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos := p.position
	if p.state == constant.PlayerStatePlaying {
		pos += p.now().Sub(p.playedAt)
	}
	return pos
}

// accrueLocked folds wall-clock time since the last resume into the
// position. Callers hold p.mu.
func (p *Player) accrueLocked() {
	if p.state != constant.PlayerStatePlaying {
		return
	}
	if elapsed := p.now().Sub(p.playedAt); elapsed > 0 {
		p.position += elapsed
	}
	p.playedAt = p.now()
}

func (p *Player) startTickerLocked() {
	if p.stopTick != nil || p.closed {
		return
	}
	stop := make(chan struct{})
	p.stopTick = stop
	p.ticks.Add(1)
	go func() {
		defer p.ticks.Done()
		ticker := time.NewTicker(p.reportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.tick()
			case <-stop:
				return
			}
		}
	}()
}

func (p *Player) stopTickerLocked() {
	if p.stopTick != nil {
		close(p.stopTick)
		p.stopTick = nil
	}
}

// tick pushes one periodic watch-progress record if playback is still
// running.
func (p *Player) tick() {
	p.mu.Lock()
	if p.state != constant.PlayerStatePlaying || p.video == nil {
		p.mu.Unlock()
		return
	}
	p.accrueLocked()
	req := dto.WatchProgressRequest{
		VideoID:  p.video.ID,
		Position: p.position.Seconds(),
		Duration: p.video.Duration,
	}
	p.mu.Unlock()

	p.report(context.Background(), req)
}

// report pushes one watch-progress record. Failures are logged and
// dropped.
func (p *Player) report(ctx context.Context, req dto.WatchProgressRequest) {
	if p.api == nil {
		return
	}
	err := p.api.Post(ctx, "/videos/"+req.VideoID.String()+"/progress", req, nil)
	if err != nil {
		p.logger.Warn().Err(err).
			Str("video_id", req.VideoID.String()).
			Msg("watch progress report dropped")
	}
}
