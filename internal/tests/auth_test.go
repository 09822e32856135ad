package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"travelapp/internal/config"
	"travelapp/internal/service"
)

func newAuthService() (*service.AuthService, *MockUserRepository) {
	userRepo := NewMockUserRepository()
	svc := service.NewAuthService(userRepo, config.AuthConfig{
		JWTSecret: "test-signing-secret",
		TokenTTL:  time.Hour,
	})
	return svc, userRepo
}

func registerReq() service.RegisterRequest {
	return service.RegisterRequest{
		Email:     "alma@example.com",
		FirstName: "Alma",
		LastName:  "Tesfaye",
		Password:  "correct horse",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()

	user, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a user id")
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct horse" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	req := registerReq()
	req.Password = "short"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, service.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), registerReq())
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_IssuesTokenWithUserClaim(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	registered, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "alma@example.com", "correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login returned user %q, want %q", user.ID, registered.ID)
	}

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("test-signing-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != registered.ID {
		t.Errorf("user_id claim %v, want %q", claims["user_id"], registered.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alma@example.com", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
