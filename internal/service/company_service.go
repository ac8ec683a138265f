package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/pkg/database"
)

// ── Şirket modülü iş hataları ──

var (
	ErrCompanyNotFound       = errors.New("şirket bulunamadı")
	ErrCompanyNameExists     = errors.New("bu isimde bir şirket zaten var")
	ErrCompanyHasDepartments = errors.New("şirkete bağlı departmanlar var, silinemez")
)

// CompanyService şirket iş arayüzü
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error)
	List(ctx context.Context) ([]dto.CompanyResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest, callerID string) (*dto.CompanyResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService CompanyService örneği oluşturur
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	company := &model.Company{
		Name:      name,
		TaxNumber: req.TaxNumber,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		IsActive:  true,
	}
	company.Audit(callerID)

	if err := s.repo.Company.Create(ctx, company); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrCompanyNameExists
		}
		s.logger.Error("şirket oluşturulamadı", zap.Error(err))
		return nil, err
	}

	resp := toCompanyResponse(company)
	return &resp, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *companyService) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

func (s *companyService) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	companies, err := s.repo.Company.List(ctx)
	if err != nil {
		s.logger.Error("şirketler listelenemedi", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		result = append(result, toCompanyResponse(&companies[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *companyService) Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest, callerID string) (*dto.CompanyResponse, error) {
	company, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, company.Name) {
			if err := s.ensureNameFree(ctx, name, company.CompanyID); err != nil {
				return nil, err
			}
		}
		company.Name = name
	}
	if req.TaxNumber != nil {
		company.TaxNumber = *req.TaxNumber
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.Audit(callerID)

	if err := s.repo.Company.Update(ctx, company); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrCompanyNameExists
		}
		s.logger.Error("şirket güncellenemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toCompanyResponse(company)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *companyService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.Company.CountDepartments(ctx, id)
	if err != nil {
		s.logger.Error("şirket departmanları sayılamadı", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrCompanyHasDepartments
	}

	if err := s.repo.Company.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		s.logger.Error("şirket silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── İç yardımcılar ──

func (s *companyService) get(ctx context.Context, id string) (*model.Company, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("şirket sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return company, nil
}

func (s *companyService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.Company.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("şirket sorgulanamadı", zap.Error(err))
		return err
	}
	if existing.CompanyID != selfID {
		return ErrCompanyNameExists
	}
	return nil
}

func toCompanyResponse(c *model.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        c.CompanyID,
		Name:      c.Name,
		TaxNumber: c.TaxNumber,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		IsActive:  c.IsActive,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}
