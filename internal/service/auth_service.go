package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-job-tracker/internal/core/auth"
	"go-job-tracker/internal/core/session"
	"go-job-tracker/internal/domain"
	"go-job-tracker/pkg/utils"
)

type RegisterInput struct {
	Username string   `json:"username" binding:"required,min=3,max=64"`
	Password string   `json:"password" binding:"required,min=6,max=72"`
	FullName *string  `json:"fullName" binding:"omitempty,max=128"`
	Email    *string  `json:"email" binding:"omitempty,email"`
	Skills   []string `json:"skills" binding:"omitempty,dive,max=64"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Issued is a freshly started session ready to be written as a cookie.
type Issued struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users    domain.UserRepository
	sessions session.Store
	jwt      *auth.JWTer
}

func NewAuthService(st domain.Store, sessions session.Store, jwt *auth.JWTer) *AuthService {
	return &AuthService{users: st.Users(), sessions: sessions, jwt: jwt}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, *Issued, error) {
	username := strings.TrimSpace(in.Username)
	if len(username) < 3 {
		return nil, nil, domain.Invalid("username", "username must be at least 3 characters long")
	}
	if len(in.Password) < 6 {
		return nil, nil, domain.Invalid("password", "password must be at least 6 characters long")
	}
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.Invalid("username", "username is already taken")
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}
	u := &domain.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     in.FullName,
		Email:        in.Email,
		Skills:       in.Skills,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, nil, domain.Invalid("username", "username is already taken")
		}
		return nil, nil, err
	}
	iss, err := s.start(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, iss, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*domain.User, *Issued, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, nil, err
	}
	if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, nil, domain.ErrUnauthorized
	}
	iss, err := s.start(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, iss, nil
}

// Logout revokes the session behind token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	c, err := s.jwt.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, c.SID)
}

// Authenticate resolves a cookie token to a user id.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, domain.ErrUnauthorized
	}
	c, err := s.jwt.Parse(token)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	sess, err := s.sessions.Get(ctx, c.SID)
	if err != nil {
		return 0, err
	}
	if sess == nil || sess.UserID != c.UID {
		return 0, domain.ErrUnauthorized
	}
	return c.UID, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

func (s *AuthService) start(ctx context.Context, userID uint) (*Issued, error) {
	sid := uuid.NewString()
	tok, exp, err := s.jwt.Issue(userID, sid)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session.Session{ID: sid, UserID: userID, ExpiresAt: exp}); err != nil {
		return nil, err
	}
	return &Issued{Token: tok, ExpiresAt: exp}, nil
}
