package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/LightArtz/Tappit/internal/auth"
	"github.com/LightArtz/Tappit/internal/models"
	"github.com/LightArtz/Tappit/internal/storage"
)

const testJWTSecret = "test-secret"

func TestAuthServiceLogin(t *testing.T) {
	passwordHash, err := auth.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	admin := &models.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@tappit.id",
		PasswordHash: passwordHash,
	}

	tests := []struct {
		name     string
		email    string
		password string
		storage  *storage.MockAdminStorage
		wantErr  error
	}{
		{
			name:     "successful login",
			email:    "admin@tappit.id",
			password: "correct-password",
			storage: &storage.MockAdminStorage{
				GetByEmailFunc: func(_ context.Context, _ string) (*models.AdminUser, error) {
					return admin, nil
				},
			},
		},
		{
			name:     "wrong password",
			email:    "admin@tappit.id",
			password: "wrong-password",
			storage: &storage.MockAdminStorage{
				GetByEmailFunc: func(_ context.Context, _ string) (*models.AdminUser, error) {
					return admin, nil
				},
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@tappit.id",
			password: "correct-password",
			storage:  &storage.MockAdminStorage{},
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "empty email",
			email:    "",
			password: "correct-password",
			storage:  &storage.MockAdminStorage{},
			wantErr:  ErrEmptyCredentials,
		},
		{
			name:     "empty password",
			email:    "admin@tappit.id",
			password: "",
			storage:  &storage.MockAdminStorage{},
			wantErr:  ErrEmptyCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.storage, testJWTSecret, time.Hour)
			got, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if got.ID != admin.ID {
				t.Errorf("admin ID = %s, want %s", got.ID, admin.ID)
			}

			claims, err := auth.ValidateToken(token, testJWTSecret)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.AdminID != admin.ID || claims.Email != admin.Email {
				t.Errorf("claims = %+v", claims)
			}
		})
	}
}

func TestAuthServiceEnsureAdmin(t *testing.T) {
	t.Run("creates admin when missing", func(t *testing.T) {
		var created *models.AdminUser
		adminStorage := &storage.MockAdminStorage{
			CreateFunc: func(_ context.Context, admin *models.AdminUser) error {
				created = admin
				return nil
			},
		}
		svc := NewAuthService(adminStorage, testJWTSecret, time.Hour)

		if err := svc.EnsureAdmin(context.Background(), "admin@tappit.id", "secret"); err != nil {
			t.Fatalf("EnsureAdmin() error = %v", err)
		}
		if created == nil {
			t.Fatal("admin not created")
		}
		if created.Email != "admin@tappit.id" {
			t.Errorf("email = %q", created.Email)
		}
		// Пароль хранится только как bcrypt-хеш
		if created.PasswordHash == "secret" || created.PasswordHash == "" {
			t.Errorf("password not hashed: %q", created.PasswordHash)
		}
		if !auth.CheckPassword("secret", created.PasswordHash) {
			t.Error("stored hash does not match password")
		}
	})

	t.Run("idempotent when admin exists", func(t *testing.T) {
		adminStorage := &storage.MockAdminStorage{
			GetByEmailFunc: func(_ context.Context, _ string) (*models.AdminUser, error) {
				return &models.AdminUser{ID: uuid.New(), Email: "admin@tappit.id"}, nil
			},
			CreateFunc: func(_ context.Context, _ *models.AdminUser) error {
				t.Error("Create() must not be called when admin exists")
				return nil
			},
		}
		svc := NewAuthService(adminStorage, testJWTSecret, time.Hour)

		if err := svc.EnsureAdmin(context.Background(), "admin@tappit.id", "secret"); err != nil {
			t.Errorf("EnsureAdmin() error = %v", err)
		}
	})

	t.Run("tolerates creation race", func(t *testing.T) {
		adminStorage := &storage.MockAdminStorage{
			CreateFunc: func(_ context.Context, _ *models.AdminUser) error {
				return storage.ErrEmailExists
			},
		}
		svc := NewAuthService(adminStorage, testJWTSecret, time.Hour)

		if err := svc.EnsureAdmin(context.Background(), "admin@tappit.id", "secret"); err != nil {
			t.Errorf("EnsureAdmin() error = %v", err)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := NewAuthService(&storage.MockAdminStorage{}, testJWTSecret, time.Hour)
		if err := svc.EnsureAdmin(context.Background(), "", ""); !errors.Is(err, ErrEmptyCredentials) {
			t.Errorf("EnsureAdmin() error = %v, want ErrEmptyCredentials", err)
		}
	})
}
