package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Nyagar-Abraham/Finance-app/repository"
)

// RecurringScheduler turns due recurring definitions into transactions.
// Each scan fires at most one period per definition; a definition that is
// several periods behind catches up one period per scan.
type RecurringScheduler struct {
	recurring *repository.RecurringRepository
	users     *repository.UserRepository
	now       func() time.Time
	loc       *time.Location

	interval time.Duration
	flex     time.Duration

	group singleflight.Group

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRecurringScheduler runs roughly every interval, plus up to flex of
// random slack. Months and days are counted in loc. now defaults to
// time.Now.
func NewRecurringScheduler(repos *repository.Repositories, interval, flex time.Duration, loc *time.Location, now func() time.Time) *RecurringScheduler {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &RecurringScheduler{
		recurring: repos.Recurring,
		users:     repos.Users,
		now:       now,
		loc:       loc,
		interval:  interval,
		flex:      flex,
	}
}

// ScanOwner fires every due definition of the owner once and returns the
// number of transactions created. Concurrent scans for one owner share a
// single run, which is not cancelled with any one caller's ctx. An empty
// owner is a no-op.
func (s *RecurringScheduler) ScanOwner(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, nil
	}
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(ownerID, func() (interface{}, error) {
		return s.scanOwner(shared, ownerID)
	})
	created, _ := v.(int)
	return created, err
}

func (s *RecurringScheduler) scanOwner(ctx context.Context, ownerID string) (int, error) {
	now := s.now()
	due, err := s.recurring.Due(ctx, ownerID, now)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, def := range due {
		occurrence, err := s.recurring.Advance(ctx, def, now, s.loc)
		if err != nil {
			return created, fmt.Errorf("advance recurring transaction %s: %w", def.ID, err)
		}
		if occurrence == nil {
			log.Printf("Recurring transaction %s already advanced, skipping", def.ID)
			continue
		}
		created++
	}

	if created > 0 {
		log.Printf("Created %d recurring transactions for %s", created, ownerID)
	}
	return created, nil
}

// ScanAll scans every known owner. A failing owner does not stop the others;
// all errors are returned together.
func (s *RecurringScheduler) ScanAll(ctx context.Context) (int, error) {
	owners, err := s.owners(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	var errs []error
	for _, ownerID := range owners {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		created, err := s.ScanOwner(ctx, ownerID)
		total += created
		if err != nil {
			errs = append(errs, fmt.Errorf("owner %s: %w", ownerID, err))
		}
	}
	return total, errors.Join(errs...)
}

// owners is the union of cached users and owners of definitions
func (s *RecurringScheduler) owners(ctx context.Context) ([]string, error) {
	users, err := s.users.IDs(ctx)
	if err != nil {
		return nil, err
	}
	withDefinitions, err := s.recurring.Owners(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var owners []string
	for _, id := range append(users, withDefinitions...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		owners = append(owners, id)
	}
	return owners, nil
}

// Start runs a scan now and then periodically until Stop or ctx is done.
// Starting a running scheduler keeps the existing loop.
func (s *RecurringScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		log.Println("Recurring scheduler already running")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	log.Println("Starting recurring transaction scheduler...")
	go s.loop(ctx, s.done)
}

// Running reports whether the periodic loop is active
func (s *RecurringScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Stop cancels the loop and waits for a scan in progress to return
func (s *RecurringScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Println("Recurring transaction scheduler stopped")
}

func (s *RecurringScheduler) loop(ctx context.Context, done chan struct{}) {
	defer func() {
		// The parent ctx may end the loop without Stop; release the slot so a
		// later Start runs again.
		s.mu.Lock()
		if s.done == done {
			s.cancel()
			s.cancel, s.done = nil, nil
		}
		s.mu.Unlock()
		close(done)
	}()

	for {
		s.runScheduledScan(ctx)

		wait := s.nextDelay()
		log.Printf("Next recurring transaction scan scheduled in %v", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (s *RecurringScheduler) runScheduledScan(ctx context.Context) {
	log.Println("Running scheduled recurring transaction scan...")
	created, err := s.ScanAll(ctx)
	if err != nil {
		// Committed occurrences stay; the rest is retried next run
		log.Printf("Recurring transaction scan failed after %d transactions: %v", created, err)
		return
	}
	log.Printf("Recurring transaction scan created %d transactions", created)
}

func (s *RecurringScheduler) nextDelay() time.Duration {
	if s.flex <= 0 {
		return s.interval
	}
	return s.interval + time.Duration(rand.Int64N(int64(s.flex)))
}
