package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	repo "github.com/oksasatya/go-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-user-accounts/pkg/apperror"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
	"github.com/oksasatya/go-user-accounts/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-accounts/pkg/mailer/templates"
)

// TokenIssuer signs login tokens. Its internals are not this package's concern.
type TokenIssuer interface {
	IssueToken(userID string) (string, time.Time, error)
}

// EmailPublisher enqueues an email job.
type EmailPublisher interface {
	Publish(ctx context.Context, job mailer.EmailJob) error
}

// UserIndex keeps a searchable copy of public user fields.
type UserIndex interface {
	IndexUser(ctx context.Context, u *entity.User) error
	SearchUserIDs(ctx context.Context, q string, size int) ([]string, error)
}

type Service struct {
	Repo     repo.UserRepository
	Tokens   TokenIssuer
	Index    UserIndex
	Mail     EmailPublisher
	Logger   *logrus.Logger
	AppName  string
	LoginURL string
}

// Options carries the optional collaborators; nil ones are skipped.
type Options struct {
	Index    UserIndex
	Mail     EmailPublisher
	AppName  string
	LoginURL string
}

func NewService(r repo.UserRepository, tokens TokenIssuer, logger *logrus.Logger, opts Options) *Service {
	return &Service{
		Repo:     r,
		Tokens:   tokens,
		Index:    opts.Index,
		Mail:     opts.Mail,
		Logger:   logger,
		AppName:  opts.AppName,
		LoginURL: opts.LoginURL,
	}
}

// Counters lists the expvar names published by the service.
var Counters = []string{"users_registered", "logins_succeeded", "logins_failed"}

var (
	usersRegistered = expvar.NewInt("users_registered")
	loginsSucceeded = expvar.NewInt("logins_succeeded")
	loginsFailed    = expvar.NewInt("logins_failed")
)

// Hashed once at startup so unknown-email logins cost the same as wrong-password ones.
var dummyHash, _ = helpers.HashPassword("dummy-password-for-timing")

// Register creates a regular user.
func (s *Service) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	return s.register(ctx, name, email, password, entity.RoleUser)
}

// RegisterAdmin creates a user whose role is forced to admin.
func (s *Service) RegisterAdmin(ctx context.Context, name, email, password string) (*entity.User, error) {
	return s.register(ctx, name, email, password, entity.RoleAdmin)
}

func (s *Service) register(ctx context.Context, name, email, password string, role entity.Role) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var u *entity.User
	if role == entity.RoleAdmin {
		u, err = s.Repo.SaveAdminUser(ctx, name, email, hash)
	} else {
		u, err = s.Repo.SaveUser(ctx, name, email, hash)
	}
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, apperror.New(apperror.EmailExists)
		}
		return nil, fmt.Errorf("save user: %w", err)
	}

	usersRegistered.Add(1)
	s.afterRegister(ctx, u)
	return u, nil
}

// afterRegister runs the best-effort side effects; failures are logged only.
func (s *Service) afterRegister(ctx context.Context, u *entity.User) {
	if s.Index != nil {
		if err := s.Index.IndexUser(ctx, u); err != nil {
			s.warn(err, u.ID, "index user failed")
		}
	}
	if s.Mail != nil {
		tpl := mailtpl.Welcome
		if u.Role == entity.RoleAdmin {
			tpl = mailtpl.AdminWelcome
		}
		data := mailtpl.EmailData{
			Name:     u.Name,
			Email:    u.Email,
			Role:     u.Role.String(),
			AppName:  s.AppName,
			LoginURL: s.LoginURL,
		}
		if u.CreatedAt != nil {
			data.CreatedAt = u.CreatedAt.UTC().Format("02 January 2006, 15:04 MST")
		}
		job := mailer.EmailJob{To: u.Email, Template: tpl, Data: mailtpl.ToMap(data)}
		if err := s.Mail.Publish(ctx, job); err != nil {
			s.warn(err, u.ID, "publish welcome email failed")
		}
	}
}

// Login checks the credentials and returns a signed token with its expiry.
// Password bounds are checked before the lookup so known and unknown emails fail alike.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	if err := helpers.CheckPasswordLength(password); err != nil {
		loginsFailed.Add(1)
		return "", time.Time{}, err
	}
	u, err := s.Repo.GetUser(ctx, repo.ByEmail(email))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		_, _ = helpers.ComparePassword(password, dummyHash)
		loginsFailed.Add(1)
		return "", time.Time{}, apperror.New(apperror.WrongCredentials)
	}

	ok, err := helpers.ComparePassword(password, u.Password)
	if err != nil {
		return "", time.Time{}, err
	}
	if !ok {
		loginsFailed.Add(1)
		return "", time.Time{}, apperror.New(apperror.WrongCredentials)
	}

	token, exp, err := s.Tokens.IssueToken(u.ID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	loginsSucceeded.Add(1)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user logged in")
	}
	return token, exp, nil
}

// CurrentUser loads the user a verified token belongs to.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetUser(ctx, repo.ByID(userID))
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, apperror.New(apperror.UserNoLongerExists)
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]entity.User, error) {
	users, err := s.Repo.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SearchUsers resolves index hits back through the repository so results
// always reflect the stored record. Hits whose user is gone are skipped.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]entity.User, error) {
	if s.Index == nil {
		return []entity.User{}, nil
	}
	_, size = repo.NormalizePage(1, size)
	ids, err := s.Index.SearchUserIDs(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	out := make([]entity.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.Repo.GetUser(ctx, repo.ByID(id))
		if err != nil {
			return nil, fmt.Errorf("load user: %w", err)
		}
		if u != nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *Service) warn(err error, userID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn(msg)
	}
}
