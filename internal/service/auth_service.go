package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/pkg/jwt"
)

var (
	ErrInvalidCredentials  = errors.New("E-posta veya şifre hatalı")
	ErrAccountDisabled     = errors.New("hesap devre dışı, İK birimiyle iletişime geçin")
	ErrInvalidRefreshToken = errors.New("yenileme token'ı geçersiz veya süresi dolmuş")
	ErrWrongPassword       = errors.New("mevcut şifre hatalı")
	ErrPasswordUnchanged   = errors.New("yeni şifre mevcut şifreyle aynı olamaz")
)

// AuthService kimlik doğrulama iş arayüzü
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, employeeID string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, employeeID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService AuthService örneği oluşturur. blacklist nil olabilir.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	emp, err := s.repo.Employee.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("çalışan sorgulanamadı", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if emp.Status == model.EmployeeStatusTerminated {
		return nil, ErrAccountDisabled
	}

	return s.issueTokens(emp, req.RememberMe)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("token kara listesi kontrol edilemedi", zap.Error(err))
		} else if revoked {
			return nil, ErrInvalidRefreshToken
		}
	}

	emp, err := s.repo.Employee.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		s.logger.Error("çalışan sorgulanamadı", zap.String("id", claims.EmployeeID), zap.Error(err))
		return nil, err
	}
	if emp.Status == model.EmployeeStatusTerminated {
		return nil, ErrAccountDisabled
	}

	// Kullanılan refresh token tekrar kullanılamaz
	s.revoke(ctx, claims)

	return s.issueTokens(emp, claims.RememberMe)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return nil
	}
	s.revoke(ctx, claims)
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, employeeID string) (*dto.UserResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("çalışan sorgulanamadı", zap.String("id", employeeID), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(emp)
	return &resp, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, employeeID string, req *dto.ChangePasswordRequest) error {
	emp, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("çalışan sorgulanamadı", zap.String("id", employeeID), zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}
	if req.OldPassword == req.NewPassword {
		return ErrPasswordUnchanged
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("şifre hash'lenemedi", zap.Error(err))
		return err
	}

	if err := s.repo.Employee.UpdatePassword(ctx, employeeID, string(hash), false); err != nil {
		s.logger.Error("şifre güncellenemedi", zap.String("id", employeeID), zap.Error(err))
		return err
	}
	return nil
}

// ── İç yardımcılar ──

func (s *authService) issueTokens(emp *model.Employee, rememberMe bool) (*dto.TokenResponse, error) {
	deptID := derefString(emp.DepartmentID)

	accessToken, err := s.jwtMgr.GenerateAccessToken(emp.EmployeeID, emp.Role, deptID)
	if err != nil {
		s.logger.Error("access token üretilemedi", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(emp.EmployeeID, emp.Role, deptID, rememberMe)
	if err != nil {
		s.logger.Error("refresh token üretilemedi", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserResponse(emp),
	}, nil
}

// revoke token'ı kalan ömrü kadar kara listeye ekler; Redis yoksa işlem yapılmaz
func (s *authService) revoke(ctx context.Context, claims *jwt.Claims) {
	if s.blacklist == nil || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("token kara listeye eklenemedi", zap.String("jti", claims.ID), zap.Error(err))
	}
}

func toUserResponse(emp *model.Employee) dto.UserResponse {
	return dto.UserResponse{
		ID:                 emp.EmployeeID,
		Name:               emp.FullName(),
		Email:              emp.Email,
		Role:               emp.Role,
		Department:         departmentRef(emp.Department),
		MustChangePassword: emp.MustChangePassword,
	}
}
