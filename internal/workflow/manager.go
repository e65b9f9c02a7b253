package workflow

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"videoforge/internal/encoding"
	"videoforge/internal/logging"
	"videoforge/internal/services"
	"videoforge/internal/services/ytdlp"
)

// ErrBusy is returned by Submit while another job is still running.
var ErrBusy = errors.New("a job is already running")

// Fetcher downloads a source into a destination template. *ytdlp.Client
// satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, source, destination string, includeAudio bool, cb ytdlp.Callbacks) error
}

// Transcoder produces the two output targets. *encoding.Encoder satisfies it.
type Transcoder interface {
	EncodeWebM(ctx context.Context, input, output string, trimStart, padStart float64, keepAudio bool, cb encoding.Callbacks) error
	EncodeMP4(ctx context.Context, input, output string, trimStart, padStart float64, cb encoding.Callbacks) error
}

// JobRecord summarizes one finished job for the optional history ledger.
type JobRecord struct {
	JobID      string
	Mode       string
	Source     string
	OutputPath string
	OK         bool
	Message    string
	StartedAt  time.Time
	Duration   time.Duration
}

// Recorder persists finished-job records. Recording failures are logged and
// never fail the job.
type Recorder interface {
	Record(ctx context.Context, rec JobRecord) error
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithRecorder attaches a history recorder.
func WithRecorder(rec Recorder) ManagerOption {
	return func(m *Manager) { m.recorder = rec }
}

// WithLockPath overrides the job lock file location.
func WithLockPath(path string) ManagerOption {
	return func(m *Manager) {
		if strings.TrimSpace(path) != "" {
			m.lockPath = path
		}
	}
}

// WithClock overrides the time source (used in tests for deterministic temp
// artifact names).
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Manager runs media jobs one at a time on a dedicated worker goroutine.
type Manager struct {
	workDir  string
	fetcher  Fetcher
	encoder  Transcoder
	logger   *slog.Logger
	recorder Recorder
	lockPath string
	now      func() time.Time

	mu   sync.Mutex
	busy bool
	lock *flock.Flock
}

// NewManager constructs a manager. workDir must exist and is where temp fetch
// artifacts and the job lock live.
func NewManager(workDir string, fetcher Fetcher, encoder Transcoder, logger *slog.Logger, opts ...ManagerOption) (*Manager, error) {
	workDir = strings.TrimSpace(workDir)
	if workDir == "" {
		return nil, services.Wrap(services.ErrConfiguration, "", "", "work directory required", nil)
	}
	if fetcher == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", "", "fetcher required", nil)
	}
	if encoder == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", "", "transcoder required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		workDir:  workDir,
		fetcher:  fetcher,
		encoder:  encoder,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		lockPath: lockPathFor(workDir),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lock = flock.New(m.lockPath)
	return m, nil
}

// Submit starts one job and returns its event stream. The stream always ends
// with a single Done event, after which the channel closes. Submit fails fast
// with ErrBusy while a job is active here or in another process holding the
// lock file.
func (m *Manager) Submit(ctx context.Context, req Request) (<-chan Event, error) {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	locked, err := m.lock.TryLock()
	if err != nil {
		m.mu.Unlock()
		return nil, services.Wrap(services.ErrFilesystem, "", "acquire job lock", m.lockPath, err)
	}
	if !locked {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	m.busy = true
	m.mu.Unlock()

	jobID := uuid.NewString()
	events := make(chan Event, 64)
	go m.runJob(ctx, jobID, req, events)
	return events, nil
}

func (m *Manager) runJob(ctx context.Context, jobID string, req Request, events chan<- Event) {
	// Release the busy slot before closing the channel so a drained stream
	// means the manager is ready for the next Submit.
	defer func() {
		if err := m.lock.Unlock(); err != nil {
			m.logger.Warn("release job lock", logging.Error(err))
		}
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
		close(events)
	}()

	started := m.now()
	logger := m.logger.With(logging.String(logging.FieldJobID, jobID))
	em := &emitter{
		jobID:   jobID,
		events:  events,
		logger:  logger,
		sampler: logging.NewProgressSampler(0),
	}

	req.Normalize()
	logger.Info("job started",
		logging.String("mode", req.Mode.String()),
		logging.String("source", req.Source),
		logging.String("output", req.OutputPath))

	result := m.execute(ctx, req, em)
	if result.OK {
		logger.Info("job finished", logging.String("output", result.OutputPath))
	} else {
		logger.Error("job failed", logging.String("message", result.Message))
	}

	if m.recorder != nil {
		rec := JobRecord{
			JobID:      jobID,
			Mode:       req.Mode.String(),
			Source:     req.Source,
			OutputPath: result.OutputPath,
			OK:         result.OK,
			Message:    result.Message,
			StartedAt:  started,
			Duration:   m.now().Sub(started),
		}
		if err := m.recorder.Record(ctx, rec); err != nil {
			logger.Warn("record job history", logging.Error(err))
		}
	}

	em.done(result)
}

func (m *Manager) execute(ctx context.Context, req Request, em *emitter) Result {
	if err := req.Validate(); err != nil {
		return Result{Message: err.Error()}
	}

	var (
		output string
		err    error
	)
	switch req.Mode {
	case ModeDownload:
		output, err = m.runDownload(ctx, req, em)
	case ModeAdjust:
		output, err = m.runAdjust(ctx, req, em)
	}
	if err != nil {
		return Result{Message: err.Error()}
	}
	return Result{OK: true, Message: "Done.", OutputPath: output}
}

func lockPathFor(workDir string) string {
	return filepath.Join(workDir, "videoforge.lock")
}

// emitter fans one job's notifications out to the event channel and the log,
// sampling progress lines so the log stays readable.
type emitter struct {
	jobID   string
	events  chan<- Event
	logger  *slog.Logger
	sampler *logging.ProgressSampler
}

func (e *emitter) progress(stage string, percent float64) {
	e.events <- Event{Type: EventProgress, JobID: e.jobID, Percent: percent}
	if e.sampler.ShouldLog(percent, stage) {
		e.logger.Info("progress",
			logging.String(logging.FieldStage, stage),
			logging.Float64("percent", percent))
	}
}

func (e *emitter) status(message string) {
	e.events <- Event{Type: EventStatus, JobID: e.jobID, Message: message}
	e.logger.Info("status", logging.String("message", message))
}

func (e *emitter) debug(tool, line string) {
	e.events <- Event{Type: EventDebug, JobID: e.jobID, Tool: tool, Message: line}
	e.logger.Debug("tool output",
		logging.String(logging.FieldTool, tool),
		logging.String("line", line))
}

func (e *emitter) done(result Result) {
	e.events <- Event{Type: EventDone, JobID: e.jobID, Result: &result}
}
