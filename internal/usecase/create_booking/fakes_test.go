package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	roomRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/room"
	teamClient "github.com/m04kA/SMC-WorkspaceService/internal/integrations/teamservice"
)

// memoryLedger журнал в памяти.
// Чтения видят только закоммиченные брони (READ COMMITTED),
// блокировки по ключу держатся до конца транзакции, как pg_advisory_xact_lock.
type memoryLedger struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	nextID    int64
	calls     []string
	insertErr error
	locks     keyLocks
}

func (l *memoryLedger) record(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *memoryLedger) LockSlot(ctx context.Context, slot domain.SlotKey) error {
	return l.lock(ctx, slot.String())
}

func (l *memoryLedger) LockRequester(ctx context.Context, r domain.Requester, date time.Time, hour int) error {
	return l.lock(ctx, domain.RequesterTimeKey(r, date, hour))
}

func (l *memoryLedger) lock(ctx context.Context, key string) error {
	state, ok := ctx.Value(txStateKey{}).(*txState)
	if !ok {
		return fmt.Errorf("lock %s outside transaction", key)
	}
	l.record("lock " + key)
	m := l.locks.get(key)
	m.Lock()
	state.held = append(state.held, m)
	return nil
}

func (l *memoryLedger) CountForSlot(_ context.Context, slot domain.SlotKey) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, b := range l.bookings {
		if b.Slot() == slot {
			n++
		}
	}
	return n, nil
}

func (l *memoryLedger) ExistsForSlot(ctx context.Context, slot domain.SlotKey) (bool, error) {
	n, err := l.CountForSlot(ctx, slot)
	return n > 0, err
}

func (l *memoryLedger) ExistsForUserAtTime(_ context.Context, userID int64, date time.Time, hour int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.bookings {
		if b.UserID != nil && *b.UserID == userID && b.Date.Equal(domain.NormalizeDate(date)) && b.Hour == hour {
			return true, nil
		}
	}
	return false, nil
}

func (l *memoryLedger) ExistsForTeamAtTime(_ context.Context, teamID int64, date time.Time, hour int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.bookings {
		if b.TeamID != nil && *b.TeamID == teamID && b.Date.Equal(domain.NormalizeDate(date)) && b.Hour == hour {
			return true, nil
		}
	}
	return false, nil
}

// Insert откладывает запись до коммита транзакции
func (l *memoryLedger) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	state, ok := ctx.Value(txStateKey{}).(*txState)
	if !ok {
		return nil, errors.New("insert outside transaction")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.insertErr != nil {
		return nil, l.insertErr
	}
	l.nextID++
	stored := *booking
	stored.ID = l.nextID
	stored.CreatedAt = time.Now()
	state.pending = append(state.pending, &stored)
	return &stored, nil
}

func (l *memoryLedger) commit(pending []*domain.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bookings = append(l.bookings, pending...)
}

func (l *memoryLedger) removeByToken(token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, b := range l.bookings {
		if b.Token == token {
			l.bookings = append(l.bookings[:i], l.bookings[i+1:]...)
			return
		}
	}
}

func (l *memoryLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bookings)
}

// keyLocks мьютекс на каждый ключ блокировки
type keyLocks struct {
	mu    sync.Mutex
	byKey map[string]*sync.Mutex
}

func (k *keyLocks) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.byKey == nil {
		k.byKey = make(map[string]*sync.Mutex)
	}
	m, ok := k.byKey[key]
	if !ok {
		m = &sync.Mutex{}
		k.byKey[key] = m
	}
	return m
}

type txStateKey struct{}

// txState взятые блокировки и незакоммиченные вставки одной транзакции
type txState struct {
	held    []*sync.Mutex
	pending []*domain.Booking
}

func (s *txState) release() {
	for i := len(s.held) - 1; i >= 0; i-- {
		s.held[i].Unlock()
	}
}

// lockingTx транзакции идут параллельно, друг от друга их отделяют только
// блокировки, взятые самим use case. При ошибке вставки отбрасываются.
type lockingTx struct {
	mu     sync.Mutex
	ledger *memoryLedger
	err    error
	calls  int
}

func (tx *lockingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	tx.calls++
	err := tx.err
	tx.mu.Unlock()
	if err != nil {
		return err
	}

	state := &txState{}
	defer state.release()

	if err := fn(context.WithValue(ctx, txStateKey{}, state)); err != nil {
		return err
	}
	tx.ledger.commit(state.pending)
	return nil
}

type roomStore map[int64]*domain.Room

func (s roomStore) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := s[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
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
	mu      sync.Mutex
	created []*domain.Booking
	err     error
}

func (p *recordingPublisher) BookingCreated(_ context.Context, b *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, b)
	return p.err
}

const (
	roomFocus    int64 = 1 // exclusive
	roomOpen     int64 = 2 // shared, capacity 4
	roomBoard    int64 = 3 // team_only
	roomFocusTwo int64 = 4 // exclusive
)

type fixture struct {
	uc        *UseCase
	ledger    *memoryLedger
	tx        *lockingTx
	teams     *teamStore
	publisher *recordingPublisher
}

func newFixture() *fixture {
	ledger := &memoryLedger{}
	tx := &lockingTx{ledger: ledger}
	rooms := roomStore{
		roomFocus:    {ID: roomFocus, Name: "Focus", Type: domain.RoomTypeExclusive, Capacity: 1},
		roomOpen:     {ID: roomOpen, Name: "Open Space", Type: domain.RoomTypeShared, Capacity: 4},
		roomBoard:    {ID: roomBoard, Name: "Board", Type: domain.RoomTypeTeamOnly, Capacity: 12},
		roomFocusTwo: {ID: roomFocusTwo, Name: "Focus 2", Type: domain.RoomTypeExclusive, Capacity: 1},
	}
	teams := &teamStore{teams: map[int64]*domain.Team{
		10: {ID: 10, Name: "Pair", MemberIDs: []int64{100, 101}},
		20: {ID: 20, Name: "Trio", MemberIDs: []int64{200, 201, 202}},
	}}
	publisher := &recordingPublisher{}

	uc := NewUseCase(ledger, rooms, teams, tx, publisher, nil, nopLogger{})
	seq := 0
	var seqMu sync.Mutex
	uc.newToken = func() string {
		seqMu.Lock()
		defer seqMu.Unlock()
		seq++
		return fmt.Sprintf("tok-%d", seq)
	}

	return &fixture{uc: uc, ledger: ledger, tx: tx, teams: teams, publisher: publisher}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
