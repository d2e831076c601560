package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxNameLength        = 50
	maxBioLength         = 200
	minPasswordLength    = 6
	defaultTokenLifetime = 24 * time.Hour
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore is the credential store surface the auth and profile services
// depend on. *db.Postgres satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, userID string, name, bio *string) (*model.User, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

type authClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewAuthService(users UserStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	tokenTTL := defaultTokenLifetime
	if cfg.TokenTTL != "" {
		parsed, err := time.ParseDuration(cfg.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TOKEN_TTL: %w", err)
		}
		tokenTTL = parsed
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

// Register creates a new identity and mints a token for it. Emails are
// stored lower-cased so uniqueness is case-insensitive.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if err := validateName(name); err != nil {
		return nil, "", err
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrConflict
	} else if !db.IsNoRows(err) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", ErrConflict
		}
		return nil, "", err
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and mints a fresh token. Unknown email and
// wrong password return the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)

	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if password == "" {
		return nil, "", invalidInput("password is required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", ErrUnauthorized
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrUnauthorized
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate validates a bearer token and resolves the identity it names.
// A token whose subject no longer exists is rejected.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*model.AuthUser, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return &model.AuthUser{
		ID:    user.ID,
		Email: user.Email,
	}, nil
}

func (s *AuthService) mintToken(user *model.User) (string, error) {
	now := time.Now()
	claims := authClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	if name == "" {
		return invalidInput("name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return invalidInput("name cannot exceed 50 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return invalidInput("email is required")
	}
	if !emailRe.MatchString(email) {
		return invalidInput("please enter a valid email")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalidInput("password must be at least 6 characters")
	}
	if !strings.ContainsAny(password, "0123456789") {
		return invalidInput("password must contain a number")
	}
	return nil
}

func validateBio(bio string) error {
	if utf8.RuneCountInString(bio) > maxBioLength {
		return invalidInput("bio cannot exceed 200 characters")
	}
	return nil
}
