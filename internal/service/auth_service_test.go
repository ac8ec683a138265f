package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/jwt"
)

// ── Bellek içi kara liste ──

type memoryBlacklist struct {
	mu   sync.Mutex
	jtis map[string]time.Duration
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{jtis: make(map[string]time.Duration)}
}

func (b *memoryBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = ttl
	return nil
}

func (b *memoryBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.jtis[jti]
	return ok, nil
}

// ── Test yardımcıları ──

func setupTestAuthService() (AuthService, *testRepos, *jwt.Manager, *memoryBlacklist) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
	}
	repo, mocks := newTestRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	blacklist := newMemoryBlacklist()

	svc := NewAuthService(cfg, repo, jwtMgr, blacklist, zap.NewNop())
	return svc, mocks, jwtMgr, blacklist
}

func createTestEmployee(mocks *testRepos, id, email, password, role string) *model.Employee {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	emp := &model.Employee{
		EmployeeID:   id,
		FirstName:    "Test",
		LastName:     "Çalışan",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       model.EmployeeStatusActive,
	}
	mocks.employee.emps[id] = emp
	return emp
}

// ── Login ──

func TestLogin_Success(t *testing.T) {
	svc, mocks, jwtMgr, _ := setupTestAuthService()
	createTestEmployee(mocks, "emp-1", "mehmet@firma.com.tr", "Sifre12345", model.RoleHRManager)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "mehmet@firma.com.tr", Password: "Sifre12345"})
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("token çifti boş olmamalı")
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("ExpiresIn = %d, beklenen 900", resp.ExpiresIn)
	}
	if resp.User.Role != model.RoleHRManager {
		t.Errorf("Role = %s", resp.User.Role)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("access token çözülemedi: %v", err)
	}
	if claims.EmployeeID != "emp-1" || claims.TokenType != jwt.TokenTypeAccess {
		t.Errorf("beklenmeyen claims: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mocks, _, _ := setupTestAuthService()
	createTestEmployee(mocks, "emp-1", "mehmet@firma.com.tr", "Sifre12345", model.RoleEmployee)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "mehmet@firma.com.tr", Password: "yanlis"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials bekleniyordu, alınan: %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "yok@firma.com.tr", Password: "Sifre12345"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ErrInvalidCredentials bekleniyordu, alınan: %v", err)
	}
}

func TestLogin_Terminated(t *testing.T) {
	svc, mocks, _, _ := setupTestAuthService()
	emp := createTestEmployee(mocks, "emp-1", "mehmet@firma.com.tr", "Sifre12345", model.RoleEmployee)
	emp.Status = model.EmployeeStatusTerminated

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "mehmet@firma.com.tr", Password: "Sifre12345"})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("ErrAccountDisabled bekleniyordu, alınan: %v", err)
	}
}

// ── Refresh ──

func TestRefresh_RotatesToken(t *testing.T) {
	svc, mocks, _, blacklist := setupTestAuthService()
	createTestEmployee(mocks, "emp-1", "mehmet@firma.com.tr", "Sifre12345", model.RoleEmployee)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "mehmet@firma.com.tr", Password: "Sifre12345"})
	if err != nil {
		t.Fatalf("giriş hatası: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("yenileme hatası: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("yeni refresh token üretilmeli")
	}
	if len(blacklist.jtis) != 1 {
		t.Errorf("eski refresh token kara listeye alınmalı, liste: %d", len(blacklist.jtis))
	}

	// Aynı refresh token ikinci kez kullanılamaz
	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("ErrInvalidRefreshToken bekleniyordu, alınan: %v", err)
	}
}

func TestRefresh_AccessTokenNotAllowed(t *testing.T) {
	svc, mocks, _, _ := setupTestAuthService()
	createTestEmployee(mocks, "emp-1", "mehmet@firma.com.tr", "Sifre12345", model.RoleEmployee)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Email: "mehmet@firma.com.tr", Password: "Sifre12345"})
	if _, err := svc.Refresh(context.Background(), login.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("ErrInvalidRefreshToken bekleniyordu, alınan: %v", err)
	}
}

func TestRefresh_Garbage(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	if _, err := svc.Refresh(context.Background(), "gecersiz.token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("ErrInvalidRefreshToken bekleniyordu, alınan: %v", err)
	}
}

// ── Logout ──

func TestLogout_BlacklistsAccessToken(t *testing.T) {
	svc, mocks, jwtMgr, blacklist := setupTestAuthService()
	createTestEmployee(mocks, "emp-1", "mehmet@firma.com.tr", "Sifre12345", model.RoleEmployee)
	ctx := context.Background()

	login, _ := svc.Login(ctx, &dto.LoginRequest{Email: "mehmet@firma.com.tr", Password: "Sifre12345"})
	claims, _ := jwtMgr.ParseToken(login.AccessToken)

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("çıkış hatası: %v", err)
	}
	if revoked, _ := blacklist.IsBlacklisted(ctx, claims.ID); !revoked {
		t.Error("access token kara listede olmalı")
	}
}

// ── ChangePassword / Me ──

func TestChangePassword(t *testing.T) {
	svc, mocks, _, _ := setupTestAuthService()
	emp := createTestEmployee(mocks, "emp-1", "mehmet@firma.com.tr", "Sifre12345", model.RoleEmployee)
	emp.MustChangePassword = true
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "emp-1", &dto.ChangePasswordRequest{OldPassword: "yanlis", NewPassword: "YeniSifre123"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("ErrWrongPassword bekleniyordu, alınan: %v", err)
	}

	err = svc.ChangePassword(ctx, "emp-1", &dto.ChangePasswordRequest{OldPassword: "Sifre12345", NewPassword: "Sifre12345"})
	if !errors.Is(err, ErrPasswordUnchanged) {
		t.Errorf("ErrPasswordUnchanged bekleniyordu, alınan: %v", err)
	}

	if err := svc.ChangePassword(ctx, "emp-1", &dto.ChangePasswordRequest{OldPassword: "Sifre12345", NewPassword: "YeniSifre123"}); err != nil {
		t.Fatalf("şifre değiştirilemedi: %v", err)
	}
	if emp.MustChangePassword {
		t.Error("şifre değişince zorunlu değişim bayrağı kalkmalı")
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "mehmet@firma.com.tr", Password: "YeniSifre123"}); err != nil {
		t.Errorf("yeni şifreyle giriş yapılamadı: %v", err)
	}
}

func TestMe_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	if _, err := svc.Me(context.Background(), "yok"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("ErrEmployeeNotFound bekleniyordu, alınan: %v", err)
	}
}
