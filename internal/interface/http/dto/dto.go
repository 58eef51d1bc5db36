package dto

import (
	"time"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
)

type RegisterUserDTO struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

type LoginUserDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// RequestQueryDTO is the paging query for user listings. Nil means "not given";
// a value that is present must be at least 1.
type RequestQueryDTO struct {
	Page  *int `form:"page" binding:"omitempty,gte=1"`
	Limit *int `form:"limit" binding:"omitempty,gte=1,lte=50"`
}

// Paging returns page and limit with absent values as 0, left for the repository defaults.
func (q RequestQueryDTO) Paging() (page, limit int) {
	return deref(q.Page), deref(q.Limit)
}

type SearchQueryDTO struct {
	Q    string `form:"q" binding:"required"`
	Size *int   `form:"size" binding:"omitempty,gte=1,lte=50"`
}

func (q SearchQueryDTO) SizeOrDefault() int { return deref(q.Size) }

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// FilteredUser is the outbound projection of entity.User. It has no password field.
type FilteredUser struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Photo     string     `json:"photo"`
	Verified  bool       `json:"verified"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func FilterUser(u *entity.User) FilteredUser {
	return FilteredUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Photo:     u.Photo,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FilterUsers filters every user, keeping the input order.
func FilterUsers(users []entity.User) []FilteredUser {
	out := make([]FilteredUser, 0, len(users))
	for i := range users {
		out = append(out, FilterUser(&users[i]))
	}
	return out
}
