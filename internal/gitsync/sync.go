package gitsync

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
	"golang.org/x/time/rate"
)

// Store is the wrapped persistence target. It matches storage.Backend.
type Store interface {
	Name() string
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}

// Options configures a Syncer.
type Options struct {
	Path     string        // data file as the process opens it
	Remote   string        // e.g. "origin"
	Branch   string        // remote branch to push HEAD to
	Interval time.Duration // minimum spacing between pushes
	Timeout  time.Duration // bound on each git command; default 30s
}

// Syncer decorates a Store: after every successful save it schedules a
// commit and push of the data file. Pending pushes coalesce, so a burst of
// saves produces at most one push per Interval, and a payload identical to
// the last pushed one is skipped.
type Syncer struct {
	inner  Store
	runner Runner
	opts   Options

	limiter *rate.Limiter
	signal  chan struct{}

	mu      sync.Mutex
	pending [32]byte
	pushed  [32]byte

	stop      context.CancelFunc
	stopCtx   context.Context
	done      chan struct{}
	closeOnce sync.Once
}

// Wrap starts a Syncer around inner. Close stops it.
func Wrap(inner Store, runner Runner, opts Options) *Syncer {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if r, ok := runner.(*Repository); ok {
		opts.Path = relativeTo(r.Dir(), opts.Path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Syncer{
		inner:   inner,
		runner:  runner,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.Interval), 1),
		signal:  make(chan struct{}, 1),
		stop:    cancel,
		stopCtx: ctx,
		done:    make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Syncer) Name() string { return s.inner.Name() }

func (s *Syncer) Load(ctx context.Context) ([]byte, error) { return s.inner.Load(ctx) }

// Save writes through to the wrapped store and, on success, schedules a push.
func (s *Syncer) Save(ctx context.Context, payload []byte) error {
	if err := s.inner.Save(ctx, payload); err != nil {
		return err
	}
	digest := blake3.Sum256(payload)
	s.mu.Lock()
	s.pending = digest
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
	return nil
}

// Close stops the worker after a final push of any unsynced payload, waiting
// at most until ctx is done.
func (s *Syncer) Close(ctx context.Context) error {
	s.closeOnce.Do(s.stop)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Syncer) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.stopCtx.Done():
			s.flush()
			return
		case <-s.signal:
		}
		if err := s.limiter.Wait(s.stopCtx); err != nil {
			s.flush()
			return
		}
		s.flush()
	}
}

// flush pushes the pending payload unless it was already pushed.
func (s *Syncer) flush() {
	s.mu.Lock()
	digest := s.pending
	s.mu.Unlock()
	if digest == s.pushed {
		return
	}
	if err := s.push(); err != nil {
		log.Warn().Err(err).Str("path", s.opts.Path).Msg("git sync failed")
		return
	}
	s.pushed = digest
	log.Debug().Str("path", s.opts.Path).Str("branch", s.opts.Branch).Msg("git sync pushed")
}

func (s *Syncer) push() error {
	run := func(args ...string) (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
		defer cancel()
		return s.runner.Run(ctx, args...)
	}

	status, err := run("status", "--porcelain", "--", s.opts.Path)
	if err != nil {
		return err
	}
	if status != "" {
		if _, err := run("add", "--", s.opts.Path); err != nil {
			return err
		}
		msg := "ledger snapshot " + time.Now().UTC().Format(time.RFC3339)
		if _, err := run("commit", "-m", msg, "--", s.opts.Path); err != nil {
			return err
		}
	}
	_, err = run("push", s.opts.Remote, "HEAD:"+s.opts.Branch)
	return err
}

// relativeTo expresses path relative to dir when path lies inside it.
func relativeTo(dir, path string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
