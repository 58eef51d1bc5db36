package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

// UserRepo keeps users in process memory, in creation order.
// Used for local runs without Postgres and in tests.
type UserRepo struct {
	mu      sync.RWMutex
	users   []entity.User
	byID    map[string]int
	byEmail map[string]int
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]int),
		byEmail: make(map[string]int),
	}
}

func (r *UserRepo) GetUser(ctx context.Context, sel repository.UserSelector) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := -1
	switch sel.Field {
	case repository.SelectByID:
		if i, ok := r.byID[sel.Value]; ok {
			idx = i
		}
	case repository.SelectByEmail:
		if i, ok := r.byEmail[sel.Value]; ok {
			idx = i
		}
	case repository.SelectByName:
		for i := range r.users {
			if r.users[i].Name == sel.Value {
				idx = i
				break
			}
		}
	default:
		return nil, repository.ErrNoSelector
	}
	if idx < 0 {
		return nil, nil
	}
	u := r.users[idx]
	return &u, nil
}

func (r *UserRepo) GetUsers(ctx context.Context, page, limit int) ([]entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, limit = repository.NormalizePage(page, limit)
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := (page - 1) * limit
	if start >= len(r.users) {
		return []entity.User{}, nil
	}
	end := min(start+limit, len(r.users))
	out := make([]entity.User, end-start)
	copy(out, r.users[start:end])
	return out, nil
}

func (r *UserRepo) SaveUser(ctx context.Context, name, email, hashedPassword string) (*entity.User, error) {
	return r.insert(ctx, name, email, hashedPassword, entity.RoleUser)
}

func (r *UserRepo) SaveAdminUser(ctx context.Context, name, email, hashedPassword string) (*entity.User, error) {
	return r.insert(ctx, name, email, hashedPassword, entity.RoleAdmin)
}

func (r *UserRepo) insert(ctx context.Context, name, email, hashedPassword string, role entity.Role) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, repository.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	created, updated := now, now
	u := entity.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
	r.users = append(r.users, u)
	r.byID[u.ID] = len(r.users) - 1
	r.byEmail[u.Email] = len(r.users) - 1
	return &u, nil
}

var _ repository.UserRepository = (*UserRepo)(nil)
