package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campushub/config"
	"campushub/internal/domain/user"
	"campushub/internal/repository"
	campus_errors "campushub/pkg/errors"
)

const resetTokenTTL = 15 * time.Minute

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type RegisterInput struct {
	Username          string
	Email             string
	Password          string
	MatricNumber      string
	State             string
	Country           string
	ProfilePictureURL string
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        user.User `json:"user"`
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if err := validateRegister(in); err != nil {
		return AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	newUser := &user.User{
		ID:             uuid.New(),
		Username:       in.Username,
		Email:          strings.ToLower(in.Email),
		PasswordHash:   string(hash),
		MatricNumber:   in.MatricNumber,
		State:          authNullString(in.State),
		Country:        authNullString(in.Country),
		ProfilePicture: authNullString(in.ProfilePictureURL),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return AuthResponse{}, err
	}

	return s.issueToken(*newUser)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, campus_errors.ErrNotFound) {
			return AuthResponse{}, campus_errors.ErrUnauthorized
		}
		return AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return AuthResponse{}, campus_errors.ErrUnauthorized
	}

	return s.issueToken(u)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ForgotPassword stores a short-lived reset token on the user record and
// returns it. Delivery (mail) is a caller concern.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", err
	}

	token, err := newResetToken()
	if err != nil {
		return "", err
	}

	u.ResetToken = authNullString(token)
	u.ResetTokenExpiry = sql.NullTime{Time: time.Now().Add(resetTokenTTL), Valid: true}
	u.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, u); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || len(newPassword) < 8 {
		return campus_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, campus_errors.ErrNotFound) {
			return campus_errors.ErrInvalidInput
		}
		return err
	}
	if !u.ResetTokenExpiry.Valid || u.ResetTokenExpiry.Time.Before(time.Now()) {
		return campus_errors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.ResetToken = sql.NullString{}
	u.ResetTokenExpiry = sql.NullTime{}
	u.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, u)
}

func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, campus_errors.ErrUnauthorized
	}

	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, campus_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, campus_errors.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) issueToken(u user.User) (AuthResponse, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User:        u,
	}, nil
}

func validateRegister(in RegisterInput) error {
	if strings.TrimSpace(in.Username) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.MatricNumber) == "" {
		return campus_errors.ErrInvalidInput
	}
	if !strings.Contains(in.Email, "@") {
		return campus_errors.ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return campus_errors.ErrInvalidInput
	}
	return nil
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func authNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
