package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	"github.com/m04kA/SMC-WorkspaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkspaceService/pkg/pgerr"
	"github.com/m04kA/SMC-WorkspaceService/pkg/psqlbuilder"
)

// DBExecutor переиспользуем интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

var roomColumns = []string{"id", "name", "room_type", "capacity", "created_at"}

// Repository репозиторий каталога комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую комнату
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("name", "room_type", "capacity").
		Values(room.Name, string(room.Type), room.Capacity).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - name %q", ErrDuplicateName, room.Name)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return room, nil
}

// GetByID получает комнату по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	return room, nil
}

// List возвращает комнаты, опционально только заданного типа
func (r *Repository) List(ctx context.Context, roomType *domain.RoomType) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).From("rooms")

	if roomType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_type": string(*roomType)})
	}

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan room: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var roomType string

	if err := row.Scan(&room.ID, &room.Name, &roomType, &room.Capacity, &room.CreatedAt); err != nil {
		return nil, err
	}
	room.Type = domain.RoomType(roomType)

	return &room, nil
}
