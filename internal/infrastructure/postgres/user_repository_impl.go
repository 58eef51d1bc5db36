package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

const uniqueViolation = "23505"

const userColumns = `id, name, email, password, role, photo, verified, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Photo,
		&u.Verified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *UserRepository) GetUser(ctx context.Context, sel repository.UserSelector) (*entity.User, error) {
	var query string
	switch sel.Field {
	case repository.SelectByID:
		if _, err := uuid.Parse(sel.Value); err != nil {
			// not a uuid, so no row can carry it
			return nil, nil
		}
		query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	case repository.SelectByEmail:
		query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	case repository.SelectByName:
		// name is not unique: the earliest account wins
		query = `SELECT ` + userColumns + ` FROM users WHERE name = $1 ORDER BY created_at ASC, id ASC LIMIT 1`
	default:
		return nil, repository.ErrNoSelector
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, sel.Value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, page, limit int) ([]entity.User, error) {
	page, limit = repository.NormalizePage(page, limit)
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) SaveUser(ctx context.Context, name, email, hashedPassword string) (*entity.User, error) {
	return r.insert(ctx, name, email, hashedPassword, entity.RoleUser)
}

func (r *UserRepository) SaveAdminUser(ctx context.Context, name, email, hashedPassword string) (*entity.User, error) {
	return r.insert(ctx, name, email, hashedPassword, entity.RoleAdmin)
}

func (r *UserRepository) insert(ctx context.Context, name, email, hashedPassword string, role entity.Role) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4::user_role)
		RETURNING `+userColumns, name, email, hashedPassword, role.String())

	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
