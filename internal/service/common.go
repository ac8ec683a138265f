package service

import (
	"context"
	"errors"
	"math"
	"time"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
)

// ── Ortak hatalar ──

var (
	ErrNoPermission  = errors.New("bu işlem için yetkiniz yok")
	ErrInvalidDate   = errors.New("tarih YYYY-AA-GG biçiminde olmalıdır")
	ErrInvalidPeriod = errors.New("bitiş tarihi başlangıç tarihinden önce olamaz")
)

// Caller isteği yapan oturum sahibi
type Caller struct {
	EmployeeID string
	Role       string
}

// IsHR yönetici veya İK yöneticisi mi
func (c Caller) IsHR() bool {
	return c.Role == model.RoleAdmin || c.Role == model.RoleHRManager
}

// IsAdmin sistem yöneticisi mi
func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// Cache panel önbelleği (Redis yoksa nil)
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TokenBlacklist iptal edilen token kimlikleri (Redis yoksa nil)
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// ── Biçimlendirme yardımcıları ──

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

func formatTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// round2 iki ondalık basamağa yuvarlar
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// safeAverage sıfıra bölmeye karşı korumalı ortalama (tek ondalık)
func safeAverage(total float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Round(total/float64(count)*10) / 10
}

// percentage toplam 0 ise 0 döner
func percentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(part) * 100 / float64(total))
}

func employeeRef(e *model.Employee) *dto.EmployeeRef {
	if e == nil {
		return nil
	}
	return &dto.EmployeeRef{ID: e.EmployeeID, Name: e.FullName()}
}

func departmentRef(d *model.Department) *dto.DepartmentResponse {
	if d == nil {
		return nil
	}
	return &dto.DepartmentResponse{ID: d.DepartmentID, Name: d.Name}
}
