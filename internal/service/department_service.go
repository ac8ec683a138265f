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

// ── Departman modülü iş hataları ──

var (
	ErrDepartmentNotFound   = errors.New("departman bulunamadı")
	ErrDepartmentNameExists = errors.New("bu isimde bir departman zaten var")
	ErrDepartmentHasMembers = errors.New("departmanda çalışan var, silinemez")
	ErrDepartmentInactive   = errors.New("departman pasif durumda")
	ErrManagerNotFound      = errors.New("yönetici olarak seçilen çalışan bulunamadı")
)

// DepartmentService departman iş arayüzü
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentDetailResponse, error)
	List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentDetailResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentDetailResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// GetMembers departmandaki çalışanları listeler
	GetMembers(ctx context.Context, departmentID string) ([]dto.DepartmentMemberResponse, error)
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService DepartmentService örneği oluşturur
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentDetailResponse, error) {
	name := strings.TrimSpace(req.Name)

	if req.CompanyID != nil {
		if _, err := s.repo.Company.GetByID(ctx, *req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			s.logger.Error("şirket sorgulanamadı", zap.Error(err))
			return nil, err
		}
	}

	// Aynı şirkette isim tekil olmalı
	if err := s.ensureNameFree(ctx, req.CompanyID, name, ""); err != nil {
		return nil, err
	}

	manager, err := s.resolveManager(ctx, req.ManagerID)
	if err != nil {
		return nil, err
	}

	dept := &model.Department{
		CompanyID:   req.CompanyID,
		Name:        name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		IsActive:    true,
	}
	dept.Audit(callerID)

	if err := s.repo.Department.Create(ctx, dept); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDepartmentNameExists
		}
		s.logger.Error("departman oluşturulamadı", zap.Error(err))
		return nil, err
	}
	dept.Manager = manager

	return s.toDepartmentDetailResponse(ctx, dept), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentDetailResponse, error) {
	dept, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDepartmentDetailResponse(ctx, dept), nil
}

// ────────────────────── List ──────────────────────

func (s *departmentService) List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentDetailResponse, error) {
	var depts []model.Department
	var err error

	if req.IncludeInactive {
		depts, err = s.repo.Department.ListAll(ctx)
	} else {
		depts, err = s.repo.Department.List(ctx)
	}
	if err != nil {
		s.logger.Error("departmanlar listelenemedi", zap.Error(err))
		return nil, err
	}

	// Üye sayıları tek sorguda
	deptIDs := make([]string, 0, len(depts))
	for _, d := range depts {
		deptIDs = append(deptIDs, d.DepartmentID)
	}
	countMap, err := s.repo.Department.CountMembersBatch(ctx, deptIDs)
	if err != nil {
		s.logger.Warn("üye sayıları alınamadı, 0 kabul ediliyor", zap.Error(err))
		countMap = make(map[string]int64)
	}

	result := make([]dto.DepartmentDetailResponse, 0, len(depts))
	for i := range depts {
		result = append(result, toDepartmentDetail(&depts[i], countMap[depts[i].DepartmentID]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentDetailResponse, error) {
	dept, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, dept.Name) {
			if err := s.ensureNameFree(ctx, dept.CompanyID, name, dept.DepartmentID); err != nil {
				return nil, err
			}
		}
		dept.Name = name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			dept.ManagerID = nil
			dept.Manager = nil
		} else {
			manager, err := s.resolveManager(ctx, req.ManagerID)
			if err != nil {
				return nil, err
			}
			dept.ManagerID = req.ManagerID
			dept.Manager = manager
		}
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}
	dept.Audit(callerID)

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDepartmentNameExists
		}
		s.logger.Error("departman güncellenemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toDepartmentDetailResponse(ctx, dept), nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id string, callerID string) error {
	dept, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.Department.CountMembers(ctx, dept.DepartmentID)
	if err != nil {
		s.logger.Error("departman üyeleri sayılamadı", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrDepartmentHasMembers
	}

	if err := s.repo.Department.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("departman silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// GetMembers departmandaki çalışanlar (işten ayrılanlar dahil)
// ═══════════════════════════════════════════════════════════

func (s *departmentService) GetMembers(ctx context.Context, departmentID string) ([]dto.DepartmentMemberResponse, error) {
	if _, err := s.get(ctx, departmentID); err != nil {
		return nil, err
	}

	emps, _, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{DepartmentID: departmentID})
	if err != nil {
		s.logger.Error("departman üyeleri sorgulanamadı", zap.String("id", departmentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.DepartmentMemberResponse, 0, len(emps))
	for _, e := range emps {
		result = append(result, dto.DepartmentMemberResponse{
			EmployeeID: e.EmployeeID,
			Name:       e.FullName(),
			Email:      e.Email,
			Position:   e.Position,
			Role:       e.Role,
			Status:     e.Status,
		})
	}
	return result, nil
}

// ── İç yardımcılar ──

func (s *departmentService) get(ctx context.Context, id string) (*model.Department, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("departman sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) ensureNameFree(ctx context.Context, companyID *string, name, selfID string) error {
	existing, err := s.repo.Department.GetByName(ctx, companyID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("departman sorgulanamadı", zap.Error(err))
		return err
	}
	if existing.DepartmentID != selfID {
		return ErrDepartmentNameExists
	}
	return nil
}

func (s *departmentService) resolveManager(ctx context.Context, managerID *string) (*model.Employee, error) {
	if managerID == nil || *managerID == "" {
		return nil, nil
	}
	manager, err := s.repo.Employee.GetByID(ctx, *managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		s.logger.Error("yönetici sorgulanamadı", zap.Error(err))
		return nil, err
	}
	return manager, nil
}

func (s *departmentService) toDepartmentDetailResponse(ctx context.Context, dept *model.Department) *dto.DepartmentDetailResponse {
	memberCount, err := s.repo.Department.CountMembers(ctx, dept.DepartmentID)
	if err != nil {
		s.logger.Warn("üye sayısı alınamadı", zap.String("id", dept.DepartmentID), zap.Error(err))
	}
	resp := toDepartmentDetail(dept, memberCount)
	return &resp
}

func toDepartmentDetail(dept *model.Department, memberCount int64) dto.DepartmentDetailResponse {
	return dto.DepartmentDetailResponse{
		ID:          dept.DepartmentID,
		Name:        dept.Name,
		Description: dept.Description,
		CompanyID:   derefString(dept.CompanyID),
		Manager:     employeeRef(dept.Manager),
		IsActive:    dept.IsActive,
		MemberCount: memberCount,
		CreatedAt:   formatTime(dept.CreatedAt),
		UpdatedAt:   formatTime(dept.UpdatedAt),
	}
}
