// Package ledger owns the live giveaway snapshot.
//
// Store is the single in-process copy of the ledger. Every operation runs
// under one mutex; each mutation is persisted as a full snapshot right after
// the lock is released. Saves are ordered by a generation number so that a
// slow save of an older snapshot never lands after a newer one.
//
// Processes sharing one remote backend are not coordinated: the last full
// write wins.
package ledger

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/giveaway-ledger/internal/domain"
	"github.com/tbourn/giveaway-ledger/internal/observability"
)

// Persister loads and saves whole snapshots. Load never fails; Save errors
// are informational and have already been logged.
type Persister interface {
	Load(ctx context.Context) domain.Snapshot
	Save(ctx context.Context, snap domain.Snapshot) error
}

// Store is the ledger cache. Construct it with New.
type Store struct {
	mu   sync.Mutex
	snap domain.Snapshot
	gen  uint64

	saveMu sync.Mutex
	saved  uint64

	persister Persister
	now       func() time.Time
}

// New loads the snapshot once through p and returns a Store over it.
func New(ctx context.Context, p Persister) *Store {
	snap := p.Load(ctx)
	snap.Fill()
	s := &Store{
		snap:      snap,
		persister: p,
		now:       time.Now,
	}
	s.observe(snap)
	return s
}

// view runs fn under the lock. fn must not retain s.snap.
func (s *Store) view(fn func(*domain.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.snap)
}

// mutate applies fn under the lock and persists the result when fn reports
// a change. It returns fn's result.
func (s *Store) mutate(op string, fn func(*domain.Snapshot) bool) bool {
	s.mu.Lock()
	if !fn(&s.snap) {
		s.mu.Unlock()
		return false
	}
	s.gen++
	gen, snap := s.gen, s.snap.Clone()
	s.mu.Unlock()

	ledgerMutations.WithLabelValues(op).Inc()
	s.persist(op, gen, snap)
	return true
}

func (s *Store) persist(op string, gen uint64, snap domain.Snapshot) {
	ctx, span := observability.Tracer("ledger").Start(context.Background(), "Store."+op,
		trace.WithAttributes(
			observability.Generation.Int64(int64(gen)),
			observability.Mutation.String(op),
		))
	defer span.End()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if gen <= s.saved {
		log.Debug().Str("op", op).Uint64("generation", gen).Msg("newer snapshot already persisted, skipping")
		return
	}
	if err := s.persister.Save(ctx, snap); err != nil {
		span.RecordError(err)
	}
	s.saved = gen
	s.observe(snap)
}

func (s *Store) observe(snap domain.Snapshot) {
	total := 0
	for _, p := range snap.Participants {
		total += p.Tickets.Total()
	}
	ledgerParticipants.Set(float64(len(snap.Participants)))
	ledgerTickets.Set(float64(total))
}

// Snapshot returns a deep copy of the live snapshot.
func (s *Store) Snapshot() domain.Snapshot {
	var out domain.Snapshot
	s.view(func(snap *domain.Snapshot) { out = snap.Clone() })
	return out
}

// ClearParticipants removes every participant and keeps the rest.
func (s *Store) ClearParticipants() {
	s.mutate("ClearParticipants", func(snap *domain.Snapshot) bool {
		snap.Participants = map[string]domain.Participant{}
		return true
	})
}

// ClearAll resets the whole ledger to the default snapshot.
func (s *Store) ClearAll() {
	s.mutate("ClearAll", func(snap *domain.Snapshot) bool {
		*snap = domain.Default()
		return true
	})
}

func key(id int64) string { return strconv.FormatInt(id, 10) }

// parseKeys converts a map keyed by stringified ids, skipping keys that are
// not integers.
func parseKeys[T any](in map[string]T, clone func(T) T) map[int64]T {
	out := make(map[int64]T, len(in))
	for k, v := range in {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		out[id] = clone(v)
	}
	return out
}

func same[T any](v T) T { return v }
