package service

import (
	"context"
	"database/sql"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/locker-reservation/internal/mailer"
	q "github.com/iliyamo/locker-reservation/internal/queue"
	"github.com/iliyamo/locker-reservation/internal/repository"
)

// sweepLockKey serializes expiration sweeps across processes.  The TTL
// bounds how long a crashed holder can block the next sweep.
const (
	sweepLockKey = "sweep:lock"
	sweepLockTTL = 60 * time.Second
)

// Lifecycle runs the reservation lifecycle jobs: the expiration sweep
// that releases lockers whose rental ended, and the reminder pass that
// warns users 24 hours before their rental ends.  Both are safe to run
// concurrently with themselves and with the HTTP API: row claims go
// through conditional updates or FOR UPDATE locks, so each expired
// booking is processed exactly once no matter how many sweeps race.
// EventPublisher is the slice of Notifier the lifecycle jobs use to
// hand notifications to the queue.
type EventPublisher interface {
	Publish(ctx context.Context, ev q.NotificationEvent) error
}

type Lifecycle struct {
	db           *sql.DB
	reservations *repository.ReservationRepo
	lockers      *repository.LockerRepo
	notifier     EventPublisher
	rdb          *redis.Client // optional; nil disables the distributed lock
	mu           sync.Mutex    // in-process fallback when rdb is nil
}

// NewLifecycle wires the lifecycle jobs.  rdb may be nil when Redis is
// not configured; the sweep then serializes within the process only.
func NewLifecycle(db *sql.DB, reservations *repository.ReservationRepo, lockers *repository.LockerRepo, notifier EventPublisher, rdb *redis.Client) *Lifecycle {
	return &Lifecycle{db: db, reservations: reservations, lockers: lockers, notifier: notifier, rdb: rdb}
}

// ProcessExpired deletes every reservation whose end date has passed,
// releases the underlying lockers and queues an expiration email per
// booking.  It returns the number of reservations processed.  Running
// it twice in a row is harmless: the second pass finds nothing.
func (l *Lifecycle) ProcessExpired(ctx context.Context) (int, error) {
	unlock, ok, err := l.acquireSweepLock(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		log.Printf("sweep: another sweep holds the lock, skipping")
		return 0, nil
	}
	defer unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	expired, err := l.reservations.ExpiredTx(ctx, tx, time.Now())
	if err != nil {
		return 0, err
	}
	for _, e := range expired {
		if err := l.lockers.ReleaseTx(ctx, tx, e.LockerID); err != nil {
			return 0, err
		}
		if err := l.reservations.DeleteTx(ctx, tx, e.ID); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true

	// Emails go out only after the commit; a publish failure loses the
	// notification, never the state change.
	for _, e := range expired {
		ev := q.NotificationEvent{
			Kind:         q.KindReservationExpired,
			Recipient:    e.UserEmail,
			FirstName:    e.UserName,
			LockerNumber: lockerNumberLabel(e.LockerNumber),
		}
		if err := l.notifier.Publish(ctx, ev); err != nil {
			log.Printf("sweep: expiration notification for reservation %d failed: %v", e.ID, err)
		}
	}
	if len(expired) > 0 {
		log.Printf("sweep: released %d expired reservation(s)", len(expired))
	}
	return len(expired), nil
}

// SendReminders queues a reminder email for every paid reservation
// ending within the next 24 hours that has not been reminded yet.  The
// reminder flag is claimed before publishing, so a booking is reminded
// at most once even when passes overlap.
func (l *Lifecycle) SendReminders(ctx context.Context) (int, error) {
	due, err := l.reservations.DueForReminder(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, c := range due {
		claimed, err := l.reservations.ClaimReminder(ctx, c.ID)
		if err != nil {
			return sent, err
		}
		if !claimed {
			continue
		}
		ev := q.NotificationEvent{
			Kind:           q.KindReservationReminder,
			Recipient:      c.UserEmail,
			FirstName:      c.UserName,
			LockerNumber:   lockerNumberLabel(c.LockerNumber),
			ExpirationTime: mailer.FormatDateFR(c.EndDate),
		}
		if err := l.notifier.Publish(ctx, ev); err != nil {
			log.Printf("reminder: notification for reservation %d failed: %v", c.ID, err)
		}
		sent++
	}
	if sent > 0 {
		log.Printf("reminder: queued %d reminder(s)", sent)
	}
	return sent, nil
}

// acquireSweepLock takes the cross-process sweep mutex.  With Redis it
// uses SET NX with a TTL; without it, a plain in-process mutex.  The
// returned func releases the lock.
func (l *Lifecycle) acquireSweepLock(ctx context.Context) (func(), bool, error) {
	if l.rdb == nil {
		l.mu.Lock()
		return l.mu.Unlock, true, nil
	}
	ok, err := l.rdb.SetNX(ctx, sweepLockKey, "1", sweepLockTTL).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return func() {
		if err := l.rdb.Del(context.Background(), sweepLockKey).Err(); err != nil {
			log.Printf("sweep: releasing lock failed: %v", err)
		}
	}, true, nil
}

func lockerNumberLabel(n *uint32) string {
	if n == nil {
		return "?"
	}
	return strconv.FormatUint(uint64(*n), 10)
}
