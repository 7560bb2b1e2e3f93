package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"campushub/config"
	"campushub/internal/domain/user"
	campus_errors "campushub/pkg/errors"
)

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[uuid.UUID]user.User{}}
}

func (f *fakeUserRepository) Create(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email || existing.MatricNumber == u.MatricNumber {
			return campus_errors.ErrAlreadyExists
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, campus_errors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, campus_errors.ErrNotFound
}

func (f *fakeUserRepository) GetByResetToken(_ context.Context, token string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetToken.Valid && u.ResetToken.String == token {
			return u, nil
		}
	}
	return user.User{}, campus_errors.ErrNotFound
}

func (f *fakeUserRepository) Update(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return campus_errors.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func newTestAuthService(repo *fakeUserRepository) *AuthService {
	return NewAuthService(repo, &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiryMin: 60,
	})
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:     "ada",
		Email:        "Ada@Campus.edu",
		Password:     "correct-horse",
		MatricNumber: "CSC/2021/001",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepository())
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("register should issue a token")
	}
	if resp.User.Email != "ada@campus.edu" {
		t.Fatalf("email should be lowercased, got %q", resp.User.Email)
	}

	login, err := svc.Login(ctx, "ADA@campus.edu", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.ParseAccessToken(login.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != resp.User.ID.String() {
		t.Fatalf("token subject mismatch: %s", claims.UserID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(ctx, "ada@campus.edu", "wrong-password"); !errors.Is(err, campus_errors.ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	// Unknown accounts look the same as wrong passwords.
	if _, err := svc.Login(ctx, "nobody@campus.edu", "whatever"); !errors.Is(err, campus_errors.ErrUnauthorized) {
		t.Fatalf("unknown account: expected ErrUnauthorized, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepository())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing username", func(in *RegisterInput) { in.Username = "" }},
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"invalid email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
		{"missing matric number", func(in *RegisterInput) { in.MatricNumber = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegisterInput()
			tc.mutate(&in)
			if _, err := svc.Register(ctx, in); !errors.Is(err, campus_errors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, validRegisterInput()); !errors.Is(err, campus_errors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.ForgotPassword(ctx, "ada@campus.edu")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if token == "" {
		t.Fatal("expected a reset token")
	}

	if err := svc.ResetPassword(ctx, token, "new-password-123"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := svc.Login(ctx, "ada@campus.edu", "correct-horse"); !errors.Is(err, campus_errors.ErrUnauthorized) {
		t.Fatal("old password should no longer work")
	}
	if _, err := svc.Login(ctx, "ada@campus.edu", "new-password-123"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	// The token is single use.
	if err := svc.ResetPassword(ctx, token, "another-password"); !errors.Is(err, campus_errors.ErrInvalidInput) {
		t.Fatalf("reused token: expected ErrInvalidInput, got %v", err)
	}
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.ForgotPassword(ctx, "ada@campus.edu")
	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	repo.mu.Lock()
	u := repo.users[resp.User.ID]
	u.ResetTokenExpiry.Time = time.Now().Add(-time.Minute)
	repo.users[resp.User.ID] = u
	repo.mu.Unlock()

	if err := svc.ResetPassword(ctx, token, "new-password-123"); !errors.Is(err, campus_errors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for expired token, got %v", err)
	}
}
