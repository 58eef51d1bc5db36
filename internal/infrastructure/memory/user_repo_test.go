package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

func TestUserRepo_SaveAndGet(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()

	u, err := r.SaveUser(ctx, "Ada", "ada@x.io", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotNil(t, u.CreatedAt)

	got, err := r.GetUser(ctx, repository.ByID(u.ID))
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	got, err = r.GetUser(ctx, repository.ByEmail("ada@x.io"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	missing, err := r.GetUser(ctx, repository.ByID("nope"))
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = r.GetUser(ctx, repository.UserSelector{})
	assert.ErrorIs(t, err, repository.ErrNoSelector)
}

func TestUserRepo_NameLookupReturnsEarliest(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()
	first, _ := r.SaveUser(ctx, "Ada", "a1@x.io", "h")
	_, _ = r.SaveUser(ctx, "Ada", "a2@x.io", "h")

	got, err := r.GetUser(ctx, repository.ByName("Ada"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestUserRepo_AdminAndDuplicate(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()

	admin, err := r.SaveAdminUser(ctx, "Root", "root@x.io", "h")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	_, err = r.SaveUser(ctx, "Other", "root@x.io", "h")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepo_Paging(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := r.SaveUser(ctx, fmt.Sprintf("u%d", i), fmt.Sprintf("u%d@x.io", i), "h")
		require.NoError(t, err)
	}

	page, err := r.GetUsers(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "u2", page[0].Name)
	assert.Equal(t, "u3", page[1].Name)

	page, err = r.GetUsers(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, err = r.GetUsers(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestUserRepo_ConcurrentDuplicateInsertOnlyOneWins(t *testing.T) {
	r := NewUserRepo()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.SaveUser(context.Background(), "Ada", "ada@x.io", "h"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins.Load())
}

func TestUserRepo_CancelledContext(t *testing.T) {
	r := NewUserRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.SaveUser(ctx, "Ada", "ada@x.io", "h")
	assert.ErrorIs(t, err, context.Canceled)
}
