package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/importer"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/pkg/database"
)

// ── Çalışan modülü iş hataları ──

var (
	ErrEmployeeNotFound   = errors.New("çalışan bulunamadı")
	ErrEmailExists        = errors.New("bu e-posta adresi zaten kayıtlı")
	ErrNationalIDExists   = errors.New("bu T.C. kimlik numarası zaten kayıtlı")
	ErrCannotDeleteSelf   = errors.New("kendi hesabınızı silemezsiniz")
	ErrSelfUpdateLimited  = errors.New("kendi kaydınızda yalnızca telefon bilgisini değiştirebilirsiniz")
	ErrRoleChangeNotAllow = errors.New("rol ataması yalnızca sistem yöneticisi tarafından yapılabilir")
)

// EmployeeService çalışan iş arayüzü
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest, caller Caller) (*dto.CreateEmployeeResponse, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest, caller Caller) ([]dto.EmployeeResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, caller Caller) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
	ResetPassword(ctx context.Context, id string, caller Caller) (*dto.ResetPasswordResponse, error)
	// Import xlsx/csv dosyasından toplu çalışan ekler
	Import(ctx context.Context, filename string, r io.Reader, dryRun bool, caller Caller) (*dto.ImportEmployeeResponse, error)
}

type employeeService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService EmployeeService örneği oluşturur
func NewEmployeeService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, caller Caller) (*dto.CreateEmployeeResponse, error) {
	role := req.Role
	if role == "" {
		role = model.RoleEmployee
	}
	if role != model.RoleEmployee && !caller.IsAdmin() {
		return nil, ErrRoleChangeNotAllow
	}

	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, req.Email, req.NationalID, ""); err != nil {
		return nil, err
	}
	req.DepartmentID, req.CompanyID = blankToNil(req.DepartmentID), blankToNil(req.CompanyID)
	if err := s.ensureRefs(ctx, req.DepartmentID, req.CompanyID); err != nil {
		return nil, err
	}

	tempPassword := initialPassword(req.NationalID)
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("şifre hash'lenemedi", zap.Error(err))
		return nil, err
	}

	annualDays := s.cfg.Leave.DefaultAnnualDays
	if req.AnnualLeaveDays != nil {
		annualDays = *req.AnnualLeaveDays
	}

	nationalID := req.NationalID
	emp := &model.Employee{
		CompanyID:          req.CompanyID,
		DepartmentID:       req.DepartmentID,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:              req.Phone,
		NationalID:         &nationalID,
		Position:           req.Position,
		HireDate:           hireDate,
		GrossSalary:        round2(req.GrossSalary),
		Status:             model.EmployeeStatusActive,
		Role:               role,
		PasswordHash:       string(hash),
		MustChangePassword: true,
		AnnualLeaveDays:    annualDays,
	}
	emp.Audit(caller.EmployeeID)

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		s.logger.Error("çalışan oluşturulamadı", zap.Error(err))
		return nil, err
	}

	// İlişkili departmanla yeniden yükle
	created, err := s.repo.Employee.GetByID(ctx, emp.EmployeeID)
	if err != nil {
		s.logger.Warn("oluşturulan çalışan yeniden yüklenemedi", zap.Error(err))
		created = emp
	}

	return &dto.CreateEmployeeResponse{
		Employee:     toEmployeeResponse(created),
		TempPassword: tempPassword,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string, caller Caller) (*dto.EmployeeResponse, error) {
	if !caller.IsHR() && caller.EmployeeID != id {
		return nil, ErrNoPermission
	}
	emp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

// List çalışan yalnızca kendisini, İK ve yönetici herkesi görür
func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest, caller Caller) ([]dto.EmployeeResponse, int64, error) {
	if !caller.IsHR() {
		emp, err := s.get(ctx, caller.EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		return []dto.EmployeeResponse{toEmployeeResponse(emp)}, 1, nil
	}

	emps, total, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{
		DepartmentID: req.DepartmentID,
		Status:       req.Status,
		Role:         req.Role,
		Keyword:      strings.TrimSpace(req.Keyword),
		Offset:       req.GetOffset(),
		Limit:        req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("çalışanlar listelenemedi", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		list = append(list, toEmployeeResponse(&emps[i]))
	}
	return list, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, caller Caller) (*dto.EmployeeResponse, error) {
	if !caller.IsHR() {
		if caller.EmployeeID != id {
			return nil, ErrNoPermission
		}
		if !onlyPhone(req) {
			return nil, ErrSelfUpdateLimited
		}
	}
	if req.Role != nil && !caller.IsAdmin() {
		return nil, ErrRoleChangeNotAllow
	}

	emp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardAdminTarget(emp, caller); err != nil {
		return nil, err
	}

	email := emp.Email
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	nationalID := derefString(emp.NationalID)
	if req.NationalID != nil {
		nationalID = *req.NationalID
	}
	if email != emp.Email || nationalID != derefString(emp.NationalID) {
		if err := s.ensureUnique(ctx, email, nationalID, emp.EmployeeID); err != nil {
			return nil, err
		}
	}
	if err := s.ensureRefs(ctx, req.DepartmentID, req.CompanyID); err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		emp.LastName = strings.TrimSpace(*req.LastName)
	}
	emp.Email = email
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if nationalID != "" {
		emp.NationalID = &nationalID
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	// Boş kimlik atamayı kaldırır
	if req.DepartmentID != nil {
		emp.DepartmentID = blankToNil(req.DepartmentID)
		emp.Department = nil
	}
	if req.CompanyID != nil {
		emp.CompanyID = blankToNil(req.CompanyID)
	}
	if req.HireDate != nil {
		hireDate, err := parseDate(*req.HireDate)
		if err != nil {
			return nil, err
		}
		emp.HireDate = hireDate
	}
	if req.GrossSalary != nil {
		emp.GrossSalary = round2(*req.GrossSalary)
	}
	if req.Status != nil {
		emp.Status = *req.Status
	}
	if req.Role != nil {
		emp.Role = *req.Role
	}
	if req.AnnualLeaveDays != nil {
		emp.AnnualLeaveDays = *req.AnnualLeaveDays
	}
	emp.Audit(caller.EmployeeID)

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		s.logger.Error("çalışan güncellenemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		updated = emp
	}
	resp := toEmployeeResponse(updated)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id string, caller Caller) error {
	if id == caller.EmployeeID {
		return ErrCannotDeleteSelf
	}
	emp, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := guardAdminTarget(emp, caller); err != nil {
		return err
	}
	if err := s.repo.Employee.Delete(ctx, id, caller.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("çalışan silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *employeeService) ResetPassword(ctx context.Context, id string, caller Caller) (*dto.ResetPasswordResponse, error) {
	emp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardAdminTarget(emp, caller); err != nil {
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("geçici şifre üretilemedi", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("şifre hash'lenemedi", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Employee.UpdatePassword(ctx, id, string(hash), true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("şifre sıfırlanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("çalışan şifresi sıfırlandı", zap.String("id", id), zap.String("by", caller.EmployeeID))
	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// ═══════════════════════════════════════════════════════════
// Import toplu çalışan içe aktarma
// ═══════════════════════════════════════════════════════════
//
//   1. Dosya okunur, şemaya göre satır satır doğrulanır
//   2. Geçerli satırlar veritabanındaki kayıtlarla karşılaştırılır (departman, e-posta, TCKN)
//   3. dry_run değilse hatasız satırlar tek işlemde eklenir; tek hata tüm işlemi geri alır

// EmployeeImportSchema çalışan içe aktarma sütunları
func EmployeeImportSchema(maxRows int) importer.Schema {
	return importer.Schema{
		MaxRows: maxRows,
		Fields: []importer.Field{
			{Key: "first_name", Headers: []string{"ad", "adı", "first name", "first_name"}, Type: importer.TypeString, Required: true, MaxLen: 50},
			{Key: "last_name", Headers: []string{"soyad", "soyadı", "last name", "last_name"}, Type: importer.TypeString, Required: true, MaxLen: 50},
			{Key: "email", Headers: []string{"e-posta", "eposta", "email", "e-mail"}, Type: importer.TypeEmail, Required: true, Unique: true, MaxLen: 255},
			{Key: "national_id", Headers: []string{"tc kimlik no", "tckn", "national id", "national_id"}, Type: importer.TypeString, Required: true, Unique: true, MaxLen: 11},
			{Key: "phone", Headers: []string{"telefon", "phone"}, Type: importer.TypeString, MaxLen: 30},
			{Key: "position", Headers: []string{"pozisyon", "unvan", "position"}, Type: importer.TypeString, MaxLen: 100},
			{Key: "department", Headers: []string{"departman", "department"}, Type: importer.TypeString, MaxLen: 50},
			{Key: "hire_date", Headers: []string{"işe giriş tarihi", "ise giris tarihi", "hire date", "hire_date"}, Type: importer.TypeDate, Required: true},
			{Key: "gross_salary", Headers: []string{"brüt maaş", "brut maas", "gross salary", "gross_salary"}, Type: importer.TypeNumber},
			{Key: "role", Headers: []string{"rol", "role"}, Type: importer.TypeEnum, Enum: []string{model.RoleEmployee, model.RoleHRManager, model.RoleAdmin}},
			{Key: "annual_leave_days", Headers: []string{"yıllık izin", "yillik izin", "annual leave days", "annual_leave_days"}, Type: importer.TypeInteger},
		},
	}
}

func (s *employeeService) Import(ctx context.Context, filename string, r io.Reader, dryRun bool, caller Caller) (*dto.ImportEmployeeResponse, error) {
	sheet, err := importer.Read(filename, r)
	if err != nil {
		return nil, err
	}
	result, err := importer.Validate(EmployeeImportSchema(s.cfg.Feature.ImportMaxRows), sheet)
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportEmployeeResponse{DryRun: dryRun, Total: result.Total}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, dto.ImportRowError{Row: e.Row, Field: e.Field, Message: e.Message})
	}

	deptMap, err := s.buildDepartmentMap(ctx)
	if err != nil {
		s.logger.Error("departmanlar yüklenemedi", zap.Error(err))
		return nil, err
	}

	// Aşama 1: veritabanına karşı doğrulama (yazma yok)
	var ready []*model.Employee
	for _, rec := range result.Rows {
		emp, rowErr := s.employeeFromRecord(ctx, rec, deptMap)
		if rowErr == nil && emp.Role != model.RoleEmployee && !caller.IsAdmin() {
			rowErr = &dto.ImportRowError{Row: rec.Row, Field: "role", Message: ErrRoleChangeNotAllow.Error()}
		}
		if rowErr != nil {
			resp.Errors = append(resp.Errors, *rowErr)
			continue
		}
		emp.Audit(caller.EmployeeID)
		ready = append(ready, emp)
	}

	resp.Valid = len(ready)
	resp.Failed = len(result.InvalidRows()) + (len(result.Rows) - len(ready))

	if dryRun || len(ready) == 0 {
		return resp, nil
	}

	// Aşama 2: tek işlemde toplu ekleme
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("işlem başlatılamadı", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)
	for _, emp := range ready {
		hash, err := bcrypt.GenerateFromPassword([]byte(initialPassword(derefString(emp.NationalID))), bcrypt.DefaultCost)
		if err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
		emp.PasswordHash = string(hash)

		if err := txRepo.Employee.Create(ctx, emp); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("içe aktarma yazılamadı, işlem geri alındı", zap.String("email", emp.Email), zap.Error(err))
			return nil, fmt.Errorf("kayıt yazılamadı, içe aktarma tamamen geri alındı: %w", err)
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("işlem onaylanamadı", zap.Error(err))
			return nil, err
		}
	}

	resp.Imported = len(ready)
	s.logger.Info("çalışanlar içe aktarıldı", zap.Int("imported", resp.Imported), zap.Int("failed", resp.Failed))
	return resp, nil
}

// employeeFromRecord doğrulanmış satırı modele çevirir; veritabanı çakışmalarını satır hatası olarak döner
func (s *employeeService) employeeFromRecord(ctx context.Context, rec importer.Record, deptMap map[string]*model.Department) (*model.Employee, *dto.ImportRowError) {
	rowErr := func(field, msg string) *dto.ImportRowError {
		return &dto.ImportRowError{Row: rec.Row, Field: field, Message: msg}
	}

	nationalID := rec.String("national_id")
	if len(nationalID) != 11 || strings.Trim(nationalID, "0123456789") != "" {
		return nil, rowErr("national_id", "T.C. kimlik numarası 11 haneli olmalıdır")
	}

	var deptID *string
	if name := rec.String("department"); name != "" {
		dept, ok := deptMap[strings.ToLower(name)]
		if !ok {
			return nil, rowErr("department", fmt.Sprintf("departman bulunamadı: %s", name))
		}
		deptID = &dept.DepartmentID
	}

	email := strings.ToLower(rec.String("email"))
	if _, err := s.repo.Employee.GetByEmail(ctx, email); err == nil {
		return nil, rowErr("email", fmt.Sprintf("e-posta zaten kayıtlı: %s", email))
	}
	if _, err := s.repo.Employee.GetByNationalID(ctx, nationalID); err == nil {
		return nil, rowErr("national_id", "T.C. kimlik numarası zaten kayıtlı")
	}

	hireDate, _ := rec.Time("hire_date")
	salary, _ := rec.Float("gross_salary")
	role := rec.String("role")
	if role == "" {
		role = model.RoleEmployee
	}
	annualDays, ok := rec.Int("annual_leave_days")
	if !ok {
		annualDays = s.cfg.Leave.DefaultAnnualDays
	}

	return &model.Employee{
		DepartmentID:       deptID,
		FirstName:          rec.String("first_name"),
		LastName:           rec.String("last_name"),
		Email:              email,
		Phone:              rec.String("phone"),
		NationalID:         &nationalID,
		Position:           rec.String("position"),
		HireDate:           hireDate,
		GrossSalary:        round2(salary),
		Status:             model.EmployeeStatusActive,
		Role:               role,
		MustChangePassword: true,
		AnnualLeaveDays:    annualDays,
	}, nil
}

// ── İç yardımcılar ──

func (s *employeeService) get(ctx context.Context, id string) (*model.Employee, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("çalışan sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return emp, nil
}

// ensureUnique e-posta ve TCKN başka bir çalışanda kullanılıyor mu
func (s *employeeService) ensureUnique(ctx context.Context, email, nationalID, selfID string) error {
	if existing, err := s.repo.Employee.GetByEmail(ctx, email); err == nil {
		if existing.EmployeeID != selfID {
			return ErrEmailExists
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if nationalID == "" {
		return nil
	}
	if existing, err := s.repo.Employee.GetByNationalID(ctx, nationalID); err == nil {
		if existing.EmployeeID != selfID {
			return ErrNationalIDExists
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *employeeService) ensureRefs(ctx context.Context, departmentID, companyID *string) error {
	if departmentID != nil && *departmentID != "" {
		dept, err := s.repo.Department.GetByID(ctx, *departmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartmentNotFound
			}
			return err
		}
		if !dept.IsActive {
			return ErrDepartmentInactive
		}
	}
	if companyID != nil && *companyID != "" {
		if _, err := s.repo.Company.GetByID(ctx, *companyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}
	}
	return nil
}

// buildDepartmentMap küçük harfli departman adı -> departman
func (s *employeeService) buildDepartmentMap(ctx context.Context) (map[string]*model.Department, error) {
	departments, err := s.repo.Department.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*model.Department, len(departments))
	for i := range departments {
		m[strings.ToLower(departments[i].Name)] = &departments[i]
	}
	return m, nil
}

func onlyPhone(req *dto.UpdateEmployeeRequest) bool {
	return req.FirstName == nil && req.LastName == nil && req.Email == nil &&
		req.NationalID == nil && req.Position == nil && req.DepartmentID == nil &&
		req.CompanyID == nil && req.HireDate == nil && req.GrossSalary == nil &&
		req.Status == nil && req.Role == nil && req.AnnualLeaveDays == nil
}

// initialPassword ilk giriş şifresi: "Ik" + TCKN'nin son 6 hanesi
func initialPassword(nationalID string) string {
	suffix := nationalID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "Ik" + suffix
}

// generateTempPassword en az bir harf ve bir rakam içeren rastgele şifre üretir
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 8 {
		length = 8
	}
	result := make([]byte, length)

	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	var err error
	if result[0], err = pick(letters); err != nil {
		return "", err
	}
	if result[1], err = pick(digits); err != nil {
		return "", err
	}
	for i := 2; i < length; i++ {
		if result[i], err = pick(all); err != nil {
			return "", err
		}
	}

	// Fisher-Yates karıştırma
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}
	return string(result), nil
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:                 e.EmployeeID,
		FirstName:          e.FirstName,
		LastName:           e.LastName,
		FullName:           e.FullName(),
		Email:              e.Email,
		Phone:              e.Phone,
		NationalID:         derefString(e.NationalID),
		Position:           e.Position,
		Department:         departmentRef(e.Department),
		CompanyID:          derefString(e.CompanyID),
		HireDate:           formatDate(e.HireDate),
		GrossSalary:        e.GrossSalary,
		Status:             e.Status,
		Role:               e.Role,
		AnnualLeaveDays:    e.AnnualLeaveDays,
		MustChangePassword: e.MustChangePassword,
		CreatedAt:          formatTime(e.CreatedAt),
	}
}

// guardAdminTarget yönetici hesabına yalnızca yönetici dokunabilir
func guardAdminTarget(target *model.Employee, caller Caller) error {
	if target.Role == model.RoleAdmin && !caller.IsAdmin() {
		return ErrNoPermission
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
