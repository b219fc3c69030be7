package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/booking"
	teamClient "github.com/m04kA/SMC-WorkspaceService/internal/integrations/teamservice"
	"github.com/m04kA/SMC-WorkspaceService/pkg/metrics"
	"github.com/m04kA/SMC-WorkspaceService/pkg/txmanager"
)

var bookingDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type memoryLedger struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	locked   []domain.SlotKey
}

func newLedger(bookings ...*domain.Booking) *memoryLedger {
	l := &memoryLedger{bookings: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		l.bookings[b.Token] = b
	}
	return l
}

func (l *memoryLedger) GetByToken(_ context.Context, token string) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[token]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (l *memoryLedger) LockSlot(_ context.Context, slot domain.SlotKey) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = append(l.locked, slot)
	return nil
}

func (l *memoryLedger) DeleteByToken(_ context.Context, token string) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[token]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	delete(l.bookings, token)
	return b, nil
}

type serialTx struct {
	mu  sync.Mutex
	err error
}

func (tx *serialTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.err != nil {
		return tx.err
	}
	return fn(ctx)
}

type teamStore struct {
	teams map[int64]*domain.Team
	err   error
}

func (s *teamStore) GetTeam(_ context.Context, id int64) (*domain.Team, error) {
	if s.err != nil {
		return nil, s.err
	}
	team, ok := s.teams[id]
	if !ok {
		return nil, teamClient.ErrTeamNotFound
	}
	return team, nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	cancelled []string
}

func (p *recordingPublisher) BookingCancelled(_ context.Context, b *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, b.Token)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func userBooking(userID int64) *domain.Booking {
	return &domain.Booking{
		Token: uuid.NewString(), RoomID: 1, UserID: &userID, Date: bookingDate, Hour: 10,
		RoomName: "Focus", RoomType: domain.RoomTypeExclusive,
	}
}

func teamBooking(teamID int64) *domain.Booking {
	return &domain.Booking{
		Token: uuid.NewString(), RoomID: 3, TeamID: &teamID, Date: bookingDate, Hour: 14,
		RoomName: "Board", RoomType: domain.RoomTypeTeamOnly,
	}
}

type fixture struct {
	uc        *UseCase
	ledger    *memoryLedger
	tx        *serialTx
	teams     *teamStore
	publisher *recordingPublisher
}

func newFixture(bookings ...*domain.Booking) *fixture {
	f := &fixture{
		ledger:    newLedger(bookings...),
		tx:        &serialTx{},
		teams:     &teamStore{teams: map[int64]*domain.Team{20: {ID: 20, MemberIDs: []int64{200, 201, 202}}}},
		publisher: &recordingPublisher{},
	}
	f.uc = NewUseCase(f.ledger, f.teams, f.tx, f.publisher, nil, nopLogger{})
	return f
}

func TestExecute_OwnerCancels(t *testing.T) {
	b := userBooking(42)
	f := newFixture(b)

	resp, err := f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 42})
	require.NoError(t, err)

	assert.Equal(t, b.Token, resp.Token)
	assert.Equal(t, domain.NewSlotKey(1, bookingDate, 10), resp.FreedSlot)
	assert.Equal(t, []domain.SlotKey{resp.FreedSlot}, f.ledger.locked)
	assert.Empty(t, f.ledger.bookings)
	assert.Equal(t, []string{b.Token}, f.publisher.cancelled)

	_, err = f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 42})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_OtherUserForbidden(t *testing.T) {
	b := userBooking(42)
	f := newFixture(b)

	_, err := f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 43})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, f.ledger.bookings, 1)
	assert.Empty(t, f.ledger.locked)
}

func TestExecute_TeamMemberCancels(t *testing.T) {
	b := teamBooking(20)
	f := newFixture(b)

	resp, err := f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 202})
	require.NoError(t, err)
	require.NotNil(t, resp.TeamID)
	assert.Equal(t, int64(20), *resp.TeamID)
	assert.Empty(t, f.ledger.bookings)
}

func TestExecute_TeamAccessDenied(t *testing.T) {
	t.Run("not a member", func(t *testing.T) {
		b := teamBooking(20)
		f := newFixture(b)

		_, err := f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 999})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Len(t, f.ledger.bookings, 1)
	})

	t.Run("team gone", func(t *testing.T) {
		b := teamBooking(30)
		f := newFixture(b)

		_, err := f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 200})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("team service down", func(t *testing.T) {
		b := teamBooking(20)
		f := newFixture(b)
		f.teams.err = fmt.Errorf("%w: timeout", teamClient.ErrServiceUnavailable)

		_, err := f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 200})
		assert.ErrorIs(t, err, ErrTeamServiceUnavailable)
		assert.Len(t, f.ledger.bookings, 1)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Token: "not-a-uuid", UserID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{Token: uuid.NewString(), UserID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownToken(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Token: uuid.NewString(), UserID: 1})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ConcurrentCancelOnlyOneSucceeds(t *testing.T) {
	b := userBooking(42)
	f := newFixture(b)
	const n = 10

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 42})
		}(i)
	}
	wg.Wait()

	ok, notFound := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrBookingNotFound):
			notFound++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, notFound)
	assert.Len(t, f.publisher.cancelled, 1)
}

func TestExecute_RetriesExhausted(t *testing.T) {
	b := userBooking(42)
	f := newFixture(b)
	f.tx.err = fmt.Errorf("%w: after 4 attempts: %w", txmanager.ErrRetriesExhausted, errors.New("40001"))

	_, err := f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 42})
	assert.ErrorIs(t, err, ErrTransientConflict)
	assert.Len(t, f.ledger.bookings, 1)
	assert.Empty(t, f.publisher.cancelled)
}

func TestExecute_RecordsMetrics(t *testing.T) {
	b := userBooking(42)
	f := newFixture(b)
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	f.uc.metrics = m

	_, err := f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 7})
	require.ErrorIs(t, err, ErrForbidden)
	_, err = f.uc.Execute(context.Background(), &Request{Token: b.Token, UserID: 42})
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CancellationsTotal.WithLabelValues(metrics.OutcomeForbidden)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CancellationsTotal.WithLabelValues(metrics.OutcomeCancelled)))
}
