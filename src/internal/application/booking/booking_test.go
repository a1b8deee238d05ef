package booking

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/club_ledger/src/internal/domain/booking"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/lock"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/logging"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	bookingpersistence "github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	now = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	t1  = time.Date(2025, time.March, 12, 19, 0, 0, 0, time.UTC)
	t2  = time.Date(2025, time.March, 19, 19, 0, 0, 0, time.UTC)
)

type noopLocker struct{}

func (noopLocker) Lock(string) func() { return func() {} }

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(e shared.DomainEvent) error {
	return p.PublishBatch([]shared.DomainEvent{e})
}

func (p *recordingPublisher) PublishBatch(events []shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range events {
		p.types = append(p.types, e.EventType())
	}
	return nil
}

type fixture struct {
	schedule  *ScheduleBookingUseCase
	archive   *ArchiveBookingUseCase
	isBooked  *IsBookedUseCase
	publisher *recordingPublisher
}

func newFixture(t *testing.T, locker shared.KeyedLocker) *fixture {
	t.Helper()
	db := persistence.NewTestDB(t, bookingpersistence.Models()...)
	repo := bookingpersistence.NewBookingRepository(db)
	txManager := persistence.NewGORMTransactionManager(db)
	clock := shared.FixedClock{At: now}
	pub := &recordingPublisher{}

	return &fixture{
		schedule:  NewScheduleBookingUseCase(repo, txManager, locker, pub, clock, logging.Discard()),
		archive:   NewArchiveBookingUseCase(repo, txManager, locker, pub, clock, logging.Discard()),
		isBooked:  NewIsBookedUseCase(repo),
		publisher: pub,
	}
}

func newMember() string {
	return uuid.NewString()
}

func TestScheduleBooking_Success(t *testing.T) {
	// Arrange
	f := newFixture(t, lock.NewKeyedMutex())
	member := newMember()

	// Act
	result, err := f.schedule.Execute(ScheduleBookingCommand{MemberID: member, EventID: 5, OccursAt: t1})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, result.BookingID)
	assert.Equal(t, "scheduled", result.Status)
	assert.True(t, result.OccursAt.Equal(t1))
	assert.Equal(t, []string{booking.EventTypeBookingScheduled}, f.publisher.types)

	booked, err := f.isBooked.Execute(IsBookedQuery{MemberID: member, EventID: 5})
	require.NoError(t, err)
	assert.True(t, booked)
}

func TestScheduleBooking_Duplicate_Conflict(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	member := newMember()
	_, err := f.schedule.Execute(ScheduleBookingCommand{MemberID: member, EventID: 5, OccursAt: t1})
	require.NoError(t, err)

	// 同一場次，不同時區表示
	taipei := time.FixedZone("Asia/Taipei", 8*3600)
	_, err = f.schedule.Execute(ScheduleBookingCommand{MemberID: member, EventID: 5, OccursAt: t1.In(taipei)})

	assert.ErrorIs(t, err, booking.ErrDuplicateBooking)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
}

func TestScheduleBooking_DifferentTime_Succeeds(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	member := newMember()
	_, err := f.schedule.Execute(ScheduleBookingCommand{MemberID: member, EventID: 5, OccursAt: t1})
	require.NoError(t, err)

	_, err = f.schedule.Execute(ScheduleBookingCommand{MemberID: member, EventID: 5, OccursAt: t2})

	assert.NoError(t, err)
}

func TestScheduleBooking_InvalidInput(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())

	_, err := f.schedule.Execute(ScheduleBookingCommand{MemberID: "x", EventID: 5, OccursAt: t1})
	assert.ErrorIs(t, err, booking.ErrInvalidMemberID)

	_, err = f.schedule.Execute(ScheduleBookingCommand{MemberID: newMember(), EventID: 0, OccursAt: t1})
	assert.ErrorIs(t, err, booking.ErrInvalidClassEventID)

	_, err = f.schedule.Execute(ScheduleBookingCommand{MemberID: newMember(), EventID: 5})
	assert.ErrorIs(t, err, booking.ErrInvalidOccurrence)
}

func scheduleConcurrently(t *testing.T, f *fixture, member string, n int) (succeeded, duplicates int32) {
	t.Helper()
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := f.schedule.Execute(ScheduleBookingCommand{MemberID: member, EventID: 9, OccursAt: t1})
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, booking.ErrDuplicateBooking):
				atomic.AddInt32(&duplicates, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	return succeeded, duplicates
}

func TestScheduleBooking_ConcurrentDoubleSubmit_OneWins(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())

	succeeded, duplicates := scheduleConcurrently(t, f, newMember(), 2)

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(1), duplicates)
}

func TestScheduleBooking_ConcurrentWithoutInProcessLock_StoreGuardHolds(t *testing.T) {
	f := newFixture(t, noopLocker{})

	succeeded, duplicates := scheduleConcurrently(t, f, newMember(), 6)

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(5), duplicates)
}

func TestArchiveBooking_FreesSlot(t *testing.T) {
	// Arrange
	f := newFixture(t, lock.NewKeyedMutex())
	member := newMember()
	first, err := f.schedule.Execute(ScheduleBookingCommand{MemberID: member, EventID: 5, OccursAt: t1})
	require.NoError(t, err)

	// Act
	archived, err := f.archive.Execute(ArchiveBookingCommand{BookingID: first.BookingID})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "archived", archived.Status)

	booked, err := f.isBooked.Execute(IsBookedQuery{MemberID: member, EventID: 5})
	require.NoError(t, err)
	assert.False(t, booked)

	_, err = f.schedule.Execute(ScheduleBookingCommand{MemberID: member, EventID: 5, OccursAt: t1})
	assert.NoError(t, err, "封存後可重新預約同一場次")
	assert.Equal(t, []string{
		booking.EventTypeBookingScheduled,
		booking.EventTypeBookingArchived,
		booking.EventTypeBookingScheduled,
	}, f.publisher.types)
}

func TestArchiveBooking_AlreadyArchived(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	b, err := f.schedule.Execute(ScheduleBookingCommand{MemberID: newMember(), EventID: 5, OccursAt: t1})
	require.NoError(t, err)
	_, err = f.archive.Execute(ArchiveBookingCommand{BookingID: b.BookingID})
	require.NoError(t, err)

	_, err = f.archive.Execute(ArchiveBookingCommand{BookingID: b.BookingID})

	assert.ErrorIs(t, err, booking.ErrInvalidStatusTransition)
}

func TestArchiveBooking_NotFound(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())

	_, err := f.archive.Execute(ArchiveBookingCommand{BookingID: uuid.NewString()})

	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestIsBooked_NoBooking(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())

	booked, err := f.isBooked.Execute(IsBookedQuery{MemberID: newMember(), EventID: 5})

	require.NoError(t, err)
	assert.False(t, booked)
}
