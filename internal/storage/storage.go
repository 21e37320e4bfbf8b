package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/tbourn/giveaway-ledger/internal/domain"
	"github.com/tbourn/giveaway-ledger/internal/observability"
	"github.com/tbourn/giveaway-ledger/internal/schema"
)

// DefaultTimeout bounds a single backend call when New is given zero.
const DefaultTimeout = 5 * time.Second

// Storage is the ledger's persistence façade. Its Load and Save never fail
// from the caller's point of view: backend errors are logged and absorbed.
type Storage struct {
	backends []Backend
	timeout  time.Duration
}

// New returns a Storage over backends, listed from highest to lowest load
// priority. Each backend call is bounded by timeout.
func New(timeout time.Duration, backends ...Backend) *Storage {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Storage{backends: backends, timeout: timeout}
}

// Backends lists the active backend names in priority order.
func (s *Storage) Backends() []string {
	names := make([]string, len(s.backends))
	for i, b := range s.backends {
		names[i] = b.Name()
	}
	return names
}

// Load returns the first usable snapshot, trying backends in priority order.
// A backend that errors, times out, is empty or holds an unusable payload is
// skipped. When no backend yields a snapshot the default snapshot is
// returned; if every backend reported being empty it is also saved so the
// next start finds it.
func (s *Storage) Load(ctx context.Context) domain.Snapshot {
	ctx, span := observability.Tracer("storage").Start(ctx, "Storage.Load")
	defer span.End()

	snap, found, allEmpty := s.read(ctx, span)
	switch {
	case found:
	case allEmpty:
		log.Info().Strs("backends", s.Backends()).Msg("no snapshot found, starting from defaults")
		_ = s.Save(ctx, snap)
	default:
		log.Warn().Strs("backends", s.Backends()).Msg("no backend yielded a snapshot, starting from defaults without overwriting")
	}
	return snap
}

// Read is Load without side effects: when no backend yields a snapshot it
// returns the default snapshot and false, and nothing is written.
func (s *Storage) Read(ctx context.Context) (domain.Snapshot, bool) {
	ctx, span := observability.Tracer("storage").Start(ctx, "Storage.Read")
	defer span.End()

	snap, found, _ := s.read(ctx, span)
	return snap, found
}

// read walks the backends in priority order. allEmpty reports whether every
// backend answered ErrNoData.
func (s *Storage) read(ctx context.Context, span trace.Span) (snap domain.Snapshot, found, allEmpty bool) {
	allEmpty = true
	for _, b := range s.backends {
		payload, err := s.loadOne(ctx, b)
		if errors.Is(err, ErrNoData) {
			log.Debug().Str("backend", b.Name()).Msg("backend holds no snapshot")
			continue
		}
		allEmpty = false
		if err != nil {
			log.Warn().Err(err).Str("backend", b.Name()).Msg("snapshot load failed, trying next backend")
			continue
		}
		got, ok := schema.Normalize(payload)
		if !ok {
			log.Warn().Str("backend", b.Name()).Int("bytes", len(payload)).Msg("stored snapshot unusable, trying next backend")
			continue
		}
		span.SetAttributes(observability.Backend.String(b.Name()))
		log.Info().
			Str("backend", b.Name()).
			Int("participants", len(got.Participants)).
			Msg("snapshot loaded")
		return got, true, false
	}
	return domain.Default(), false, allEmpty
}

// Save encodes snap and writes it to every backend in parallel. A failing
// backend does not stop the others. The joined backend errors are returned
// for callers that want them; each one has already been logged.
func (s *Storage) Save(ctx context.Context, snap domain.Snapshot) error {
	ctx, span := observability.Tracer("storage").Start(ctx, "Storage.Save")
	defer span.End()

	payload, err := schema.Encode(snap)
	if err != nil {
		log.Error().Err(err).Msg("snapshot encode failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode")
		return err
	}
	span.SetAttributes(
		observability.PayloadBytes.Int(len(payload)),
		observability.BackendCount.Int(len(s.backends)),
	)

	errs := make([]error, len(s.backends))
	var g errgroup.Group
	for i, b := range s.backends {
		g.Go(func() error {
			if err := s.saveOne(ctx, b, payload); err != nil {
				log.Warn().Err(err).Str("backend", b.Name()).Msg("snapshot save failed")
				errs[i] = fmt.Errorf("%s: %w", b.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "partial save")
		return err
	}
	return nil
}

// Close releases backend connections.
func (s *Storage) Close(ctx context.Context) error {
	var errs []error
	for _, b := range s.backends {
		if c, ok := b.(closer); ok {
			if err := c.Close(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Storage) loadOne(ctx context.Context, b Backend) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()
	payload, err := b.Load(ctx)
	observe(b.Name(), "load", start, err)
	return payload, err
}

func (s *Storage) saveOne(ctx context.Context, b Backend, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()
	err := b.Save(ctx, payload)
	observe(b.Name(), "save", start, err)
	return err
}
