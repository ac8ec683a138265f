package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"hr-intelligence/backend/internal/dto"
)

func TestCompanyService_CreateAndUpdate(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewCompanyService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "  Anadolu Teknoloji A.Ş. ", TaxNumber: "1234567890"}, "emp-admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "Anadolu Teknoloji A.Ş." {
		t.Errorf("name = %q, boşluklar temizlenmeli", created.Name)
	}

	if _, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "anadolu teknoloji a.ş."}, "emp-admin"); !errors.Is(err, ErrCompanyNameExists) {
		t.Errorf("aynı isim err = %v, want ErrCompanyNameExists", err)
	}

	other, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "Ege Lojistik Ltd. Şti."}, "emp-admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Kendi adını yeniden yazmak çakışma sayılmaz
	same := "Ege Lojistik Ltd. Şti."
	if _, err := svc.Update(ctx, other.ID, &dto.UpdateCompanyRequest{Name: &same}, "emp-admin"); err != nil {
		t.Errorf("aynı adla güncelleme: %v", err)
	}
	taken := "Anadolu Teknoloji A.Ş."
	if _, err := svc.Update(ctx, other.ID, &dto.UpdateCompanyRequest{Name: &taken}, "emp-admin"); !errors.Is(err, ErrCompanyNameExists) {
		t.Errorf("alınmış ad err = %v, want ErrCompanyNameExists", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("şirket sayısı = %d, want 2", len(list))
	}
}

func TestCompanyService_Delete(t *testing.T) {
	repo, mocks := newTestRepository()
	svc := NewCompanyService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateCompanyRequest{Name: "Marmara Gıda"}, "emp-admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mocks.company.deptCount[created.ID] = 2
	if err := svc.Delete(ctx, created.ID, "emp-admin"); !errors.Is(err, ErrCompanyHasDepartments) {
		t.Errorf("departmanlı silme err = %v, want ErrCompanyHasDepartments", err)
	}

	mocks.company.deptCount[created.ID] = 0
	if err := svc.Delete(ctx, created.ID, "emp-admin"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("silinen şirket err = %v, want ErrCompanyNotFound", err)
	}
}
