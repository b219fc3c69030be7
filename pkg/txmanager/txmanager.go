// Package txmanager управляет транзакциями: транзакция передается репозиториям через context
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkspaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkspaceService/pkg/pgerr"
)

var (
	// ErrBeginTx не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted транзакция так и не прошла из-за конфликтов сериализации/блокировок
	ErrRetriesExhausted = errors.New("txmanager: transaction retries exhausted")
)

// Значения по умолчанию для повторов
const (
	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 10 * time.Millisecond
	DefaultMaxBackoff     = 200 * time.Millisecond
)

// TxBeginner умеет начинать транзакции (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryObserver получает уведомления о повторах (метрики)
type RetryObserver interface {
	ObserveTxRetry(isolation string)
}

// Option настройка менеджера
type Option func(*TransactionManager)

// WithRetries задает количество повторов и границы экспоненциальной задержки
func WithRetries(maxRetries int, initialBackoff, maxBackoff time.Duration) Option {
	return func(m *TransactionManager) {
		m.maxRetries = maxRetries
		m.initialBackoff = initialBackoff
		m.maxBackoff = maxBackoff
	}
}

// WithRetryObserver подключает наблюдателя повторов
func WithRetryObserver(observer RetryObserver) Option {
	return func(m *TransactionManager) {
		m.observer = observer
	}
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db             TxBeginner
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	observer       RetryObserver
	sleep          func(ctx context.Context, d time.Duration) error
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:             db,
		maxRetries:     DefaultMaxRetries,
		initialBackoff: DefaultInitialBackoff,
		maxBackoff:     DefaultMaxBackoff,
		sleep:          sleepContext,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
// Дедлоки и таймауты блокировок повторяются так же, как в DoSerializable.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelDefault}, "default", fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции
// При конфликтах сериализации, дедлоках и таймаутах блокировок транзакция
// повторяется целиком, fn должна быть идемпотентна до коммита.
// После исчерпания попыток возвращается ошибка, обернутая в ErrRetriesExhausted.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, "serializable", fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, "read_only", fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, isolation string, fn func(ctx context.Context) error) error {
	// Вложенный вызов - переиспользуем внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	backoff := m.initialBackoff
	var lastErr error

	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if m.observer != nil {
				m.observer.ObserveTxRetry(isolation)
			}
			if err := m.sleep(ctx, backoff); err != nil {
				return err
			}
			backoff *= 2
			if backoff > m.maxBackoff {
				backoff = m.maxBackoff
			}
		}

		lastErr = m.runOnce(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}
		if !pgerr.IsRetryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: after %d attempts: %w", ErrRetriesExhausted, m.maxRetries+1, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
