package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"healthy-backend/internal/domain"
	"healthy-backend/internal/notify"
	"healthy-backend/pkg/utils"
)

const BearerPrefix = "Bearer "

// TokenCodec turns an email into a bearer token and back.
type TokenCodec interface {
	Issue(email string) (string, error)
	Extract(token string) (string, error)
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type TokenCheck struct {
	Email string `json:"email"`
	Valid bool   `json:"valid"`
}

// AuthService handles registration, login and bearer-token authorization.
// It holds no per-request state and is safe for concurrent use.
type AuthService struct {
	users      domain.UserRepository
	tokens     TokenCodec
	notifier   notify.Notifier
	log        *zap.Logger
	bcryptCost int

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users domain.UserRepository, tokens TokenCodec, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		notifier:   notify.Nop{},
		log:        zap.NewNop(),
		bcryptCost: bcryptCost,
	}
}

// WithNotifier sets the optional event sink; nil keeps the no-op sink.
func (s *AuthService) WithNotifier(n notify.Notifier) *AuthService {
	if n != nil {
		s.notifier = n
	}
	return s
}

func (s *AuthService) WithLogger(l *zap.Logger) *AuthService {
	if l != nil {
		s.log = l.Named("auth")
	}
	return s
}

// Register stores a new user. The pre-insert lookup gives the common case a
// clean error; the store's unique index covers concurrent registrations.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (u *domain.User, err error) {
	defer func() { observe("register", err) }()

	s.log.Info("register attempt", zap.String("email", in.Email))
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		s.log.Warn("register rejected, email taken", zap.String("email", in.Email))
		return nil, domain.ErrDuplicateEmail
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
		s.log.Debug("default role assigned", zap.String("email", in.Email), zap.String("role", role))
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u = &domain.User{Email: in.Email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.log.Warn("register lost race, email taken", zap.String("email", in.Email))
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.Uint64("id", u.ID), zap.String("email", u.Email))
	s.notifier.Notify(ctx, "new user: "+u.Email)
	return u, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (res *LoginResult, err error) {
	defer func() { observe("login", err) }()

	s.log.Info("login attempt", zap.String("email", email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		// keep timing close to the wrong-password path
		utils.CheckPassword(password, s.dummy())
		s.log.Warn("login rejected, unknown email", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		s.log.Warn("login rejected, wrong password", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.log.Info("user logged in", zap.String("email", email))
	s.notifier.Notify(ctx, "user logged in: "+email)
	return &LoginResult{Token: token, Role: u.Role}, nil
}

// CheckToken validates the header and token only; the user need not exist.
func (s *AuthService) CheckToken(authHeader string) (*TokenCheck, error) {
	email, err := s.emailFromHeader(authHeader)
	if err != nil {
		return nil, err
	}
	return &TokenCheck{Email: email, Valid: true}, nil
}

// AuthorizeUser resolves the bearer token to a stored user of any role.
func (s *AuthService) AuthorizeUser(ctx context.Context, authHeader string) (*domain.User, error) {
	email, err := s.emailFromHeader(authHeader)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// AuthorizeAdmin is AuthorizeUser plus the ADMIN role check. The role is read
// from the store on every call, so promotions apply to existing tokens.
func (s *AuthService) AuthorizeAdmin(ctx context.Context, authHeader string) (u *domain.User, err error) {
	defer func() { observe("authorize_admin", err) }()

	u, err = s.AuthorizeUser(ctx, authHeader)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		s.log.Warn("admin rights required", zap.String("email", u.Email), zap.String("role", u.Role))
		return nil, domain.ErrForbidden
	}
	return u, nil
}

func (s *AuthService) emailFromHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", domain.ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
	if token == "" {
		return "", domain.ErrMissingToken
	}
	return s.tokens.Extract(token)
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword("dummy-password", s.bcryptCost)
	})
	return s.dummyHash
}
