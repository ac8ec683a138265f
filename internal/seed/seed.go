// Package seed boş bir veritabanına örnek Türkçe veriler yükler.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/service"
)

const (
	// AdminPasswordEnv ilk yöneticinin şifresini belirleyen ortam değişkeni
	AdminPasswordEnv     = "IK_SEED_ADMIN_PASSWORD"
	defaultAdminPassword = "Admin12345"
	// Örnek çalışanlar ilk girişte şifre değiştirmek zorundadır
	defaultEmployeePassword = "Calisan12345"
)

// Run çalışan tablosu boşsa örnek verileri tek işlemde ekler
func Run(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Employee{}).Count(&count).Error; err != nil {
		return fmt.Errorf("çalışan sayısı okunamadı: %w", err)
	}
	if count > 0 {
		logger.Info("veritabanında çalışan var, örnek veri atlandı", zap.Int64("employees", count))
		return nil
	}

	adminPassword := os.Getenv(AdminPasswordEnv)
	if adminPassword == "" {
		adminPassword = defaultAdminPassword
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("yönetici şifresi hashlenemedi: %w", err)
	}
	employeeHash, err := bcrypt.GenerateFromPassword([]byte(defaultEmployeePassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("çalışan şifresi hashlenemedi: %w", err)
	}

	f := buildFixtures(time.Now(), string(adminHash), string(employeeHash), cfg.Payroll, cfg.Leave.DefaultAnnualDays)

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Departman ↔ yönetici döngüsü: önce yöneticisiz departmanlar, sonra çalışanlar
		managers := make(map[string]*string, len(f.Departments))
		for i := range f.Departments {
			managers[f.Departments[i].DepartmentID] = f.Departments[i].ManagerID
			f.Departments[i].ManagerID = nil
		}

		steps := []struct {
			name  string
			value interface{}
		}{
			{"şirketler", &f.Companies},
			{"departmanlar", &f.Departments},
			{"çalışanlar", &f.Employees},
		}
		for _, s := range steps {
			if err := tx.Create(s.value).Error; err != nil {
				return fmt.Errorf("%s eklenemedi: %w", s.name, err)
			}
		}

		for deptID, managerID := range managers {
			if managerID == nil {
				continue
			}
			if err := tx.Model(&model.Department{}).
				Where("department_id = ?", deptID).
				Update("manager_id", *managerID).Error; err != nil {
				return fmt.Errorf("departman yöneticisi atanamadı: %w", err)
			}
		}

		rest := []struct {
			name  string
			value interface{}
		}{
			{"izinler", &f.Leaves},
			{"bordrolar", &f.Payrolls},
			{"değerlendirmeler", &f.Reviews},
			{"eğitimler", &f.Trainings},
			{"eğitim kayıtları", &f.Enrollments},
			{"iş ilanları", &f.Postings},
			{"başvurular", &f.Applications},
		}
		for _, s := range rest {
			if err := tx.Create(s.value).Error; err != nil {
				return fmt.Errorf("%s eklenemedi: %w", s.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("örnek veriler yüklendi",
		zap.Int("companies", len(f.Companies)),
		zap.Int("departments", len(f.Departments)),
		zap.Int("employees", len(f.Employees)),
		zap.String("admin_email", f.Employees[0].Email),
	)
	return nil
}

// fixtures eklenecek örnek kayıtlar
type fixtures struct {
	Companies    []model.Company
	Departments  []model.Department
	Employees    []model.Employee
	Leaves       []model.Leave
	Payrolls     []model.Payroll
	Reviews      []model.PerformanceReview
	Trainings    []model.Training
	Enrollments  []model.TrainingEnrollment
	Postings     []model.JobPosting
	Applications []model.JobApplication
}

type personSeed struct {
	first, last, email, nationalID, position, dept, role string
	gross                                                float64
	hiredMonthsAgo                                       int
}

var people = []personSeed{
	{"Ayşe", "Yılmaz", "ayse.yilmaz@anadoluteknoloji.com.tr", "10000000146", "Sistem Yöneticisi", "Bilgi Teknolojileri", model.RoleAdmin, 78000, 60},
	{"Mehmet", "Kaya", "mehmet.kaya@anadoluteknoloji.com.tr", "10000000278", "İK Müdürü", "İnsan Kaynakları", model.RoleHRManager, 72000, 48},
	{"Zeynep", "Demir", "zeynep.demir@anadoluteknoloji.com.tr", "10000000392", "İK Uzmanı", "İnsan Kaynakları", model.RoleHRManager, 52000, 30},
	{"Emre", "Çelik", "emre.celik@anadoluteknoloji.com.tr", "10000000424", "Kıdemli Yazılım Geliştirici", "Bilgi Teknolojileri", model.RoleEmployee, 85000, 36},
	{"Elif", "Şahin", "elif.sahin@anadoluteknoloji.com.tr", "10000000556", "Yazılım Geliştirici", "Bilgi Teknolojileri", model.RoleEmployee, 61000, 14},
	{"Burak", "Öztürk", "burak.ozturk@anadoluteknoloji.com.tr", "10000000688", "Finans Müdürü", "Finans", model.RoleEmployee, 74000, 50},
	{"Selin", "Arslan", "selin.arslan@anadoluteknoloji.com.tr", "10000000710", "Muhasebe Uzmanı", "Finans", model.RoleEmployee, 48000, 9},
	{"Can", "Doğan", "can.dogan@anadoluteknoloji.com.tr", "10000000842", "Satış Müdürü", "Satış ve Pazarlama", model.RoleEmployee, 70000, 40},
	{"Deniz", "Aydın", "deniz.aydin@anadoluteknoloji.com.tr", "10000000974", "Satış Temsilcisi", "Satış ve Pazarlama", model.RoleEmployee, 42000, 1},
}

// buildFixtures veritabanına dokunmadan tüm örnek kayıtları üretir
func buildFixtures(now time.Time, adminHash, employeeHash string, rates config.PayrollConfig, annualDays int) *fixtures {
	if annualDays <= 0 {
		annualDays = 14
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	f := &fixtures{}

	companyID := uuid.NewString()
	f.Companies = []model.Company{{
		CompanyID: companyID,
		Name:      "Anadolu Teknoloji A.Ş.",
		TaxNumber: "1234567890",
		Address:   "Büyükdere Cad. No:185 Levent, İstanbul",
		Phone:     "+90 212 555 01 01",
		Email:     "info@anadoluteknoloji.com.tr",
		IsActive:  true,
	}}

	deptIDs := map[string]string{}
	for _, d := range []struct{ name, desc string }{
		{"İnsan Kaynakları", "İşe alım, özlük ve bordro süreçleri"},
		{"Bilgi Teknolojileri", "Yazılım geliştirme ve altyapı"},
		{"Finans", "Muhasebe, bütçe ve raporlama"},
		{"Satış ve Pazarlama", "Kurumsal satış ve marka yönetimi"},
	} {
		id := uuid.NewString()
		deptIDs[d.name] = id
		f.Departments = append(f.Departments, model.Department{
			DepartmentID: id,
			CompanyID:    &companyID,
			Name:         d.name,
			Description:  d.desc,
			IsActive:     true,
		})
	}

	for i, p := range people {
		deptID := deptIDs[p.dept]
		nationalID := p.nationalID
		hash, mustChange := employeeHash, true
		if i == 0 {
			hash, mustChange = adminHash, false
		}
		f.Employees = append(f.Employees, model.Employee{
			EmployeeID:         uuid.NewString(),
			CompanyID:          &companyID,
			DepartmentID:       &deptID,
			FirstName:          p.first,
			LastName:           p.last,
			Email:              p.email,
			Phone:              fmt.Sprintf("+90 532 100 00 %02d", i+1),
			NationalID:         &nationalID,
			Position:           p.position,
			HireDate:           today.AddDate(0, -p.hiredMonthsAgo, 0),
			GrossSalary:        p.gross,
			Status:             model.EmployeeStatusActive,
			Role:               p.role,
			PasswordHash:       hash,
			MustChangePassword: mustChange,
			AnnualLeaveDays:    annualDays,
		})
	}
	emp := func(i int) *model.Employee { return &f.Employees[i] }
	adminID, hrID := emp(0).EmployeeID, emp(1).EmployeeID

	// Departman yöneticileri
	managerOf := map[string]int{"İnsan Kaynakları": 1, "Bilgi Teknolojileri": 3, "Finans": 5, "Satış ve Pazarlama": 7}
	for i := range f.Departments {
		if idx, ok := managerOf[f.Departments[i].Name]; ok {
			id := emp(idx).EmployeeID
			f.Departments[i].ManagerID = &id
		}
	}

	// İzinler: biri onaylı (geçen ay), biri bekleyen (gelecek hafta), biri reddedilmiş
	approvedStart := nextWeekday(today.AddDate(0, -1, 0))
	approvedAt := today.AddDate(0, -1, -7)
	reason := "Yoğun proje dönemi"
	pendingStart := nextWeekday(today.AddDate(0, 0, 7))
	f.Leaves = []model.Leave{
		{
			LeaveID: uuid.NewString(), EmployeeID: emp(3).EmployeeID, LeaveType: model.LeaveTypeAnnual,
			StartDate: approvedStart, EndDate: approvedStart.AddDate(0, 0, 2), TotalDays: service.BusinessDays(approvedStart, approvedStart.AddDate(0, 0, 2)),
			Reason: "Aile ziyareti", Status: model.LeaveStatusApproved, ApprovedBy: &hrID, ApprovedAt: &approvedAt,
		},
		{
			LeaveID: uuid.NewString(), EmployeeID: emp(4).EmployeeID, LeaveType: model.LeaveTypeAnnual,
			StartDate: pendingStart, EndDate: pendingStart.AddDate(0, 0, 1), TotalDays: service.BusinessDays(pendingStart, pendingStart.AddDate(0, 0, 1)),
			Reason: "Tatil", Status: model.LeaveStatusPending,
		},
		{
			LeaveID: uuid.NewString(), EmployeeID: emp(8).EmployeeID, LeaveType: model.LeaveTypeExcuse,
			StartDate: pendingStart, EndDate: pendingStart, TotalDays: 1,
			Reason: "Kişisel işler", Status: model.LeaveStatusRejected, ApprovedBy: &hrID, ApprovedAt: &approvedAt, RejectionReason: &reason,
		},
	}

	// Geçen ayın bordroları ödenmiş olarak
	prev := today.AddDate(0, -1, 0)
	paidAt := time.Date(prev.Year(), prev.Month(), 28, 0, 0, 0, 0, time.UTC)
	for i := range f.Employees {
		e := emp(i)
		b := service.CalculatePayroll(rates, e.GrossSalary, 0, 0)
		p := model.Payroll{
			PayrollID:   uuid.NewString(),
			EmployeeID:  e.EmployeeID,
			PeriodYear:  prev.Year(),
			PeriodMonth: int(prev.Month()),
			Currency:    rates.Currency,
			Status:      model.PayrollStatusPaid,
			ApprovedBy:  &hrID,
			ApprovedAt:  &paidAt,
			PaidAt:      &paidAt,
			Version:     1,
		}
		if p.Currency == "" {
			p.Currency = "TRY"
		}
		p.GrossSalary, p.Bonus, p.Deductions = b.Gross, b.Bonus, b.Deductions
		p.SGKEmployee, p.Unemployment = b.SGKEmployee, b.Unemployment
		p.IncomeTax, p.StampTax, p.NetSalary = b.IncomeTax, b.StampTax, b.Net
		f.Payrolls = append(f.Payrolls, p)
	}

	// Performans değerlendirmeleri
	period := fmt.Sprintf("%d-Q%d", prev.Year(), (int(prev.Month())-1)/3+1)
	finalizedAt := today.AddDate(0, 0, -3)
	f.Reviews = []model.PerformanceReview{
		{
			ReviewID: uuid.NewString(), EmployeeID: emp(3).EmployeeID, ReviewerID: hrID, Period: period, Score: 4.5,
			Goals: "Mikroservis geçişini tamamlamak", Strengths: "Teknik liderlik", Improvements: "Dokümantasyon",
			Status: model.ReviewStatusFinalized, FinalizedAt: &finalizedAt,
		},
		{
			ReviewID: uuid.NewString(), EmployeeID: emp(6).EmployeeID, ReviewerID: emp(5).EmployeeID, Period: period, Score: 3.8,
			Goals: "Ay sonu kapanışlarını hızlandırmak", Status: model.ReviewStatusSubmitted,
		},
		{
			ReviewID: uuid.NewString(), EmployeeID: emp(8).EmployeeID, ReviewerID: emp(7).EmployeeID, Period: period, Score: 3.0,
			Status: model.ReviewStatusDraft,
		},
	}

	// Eğitimler
	trainingStart := today.AddDate(0, 0, 14)
	f.Trainings = []model.Training{
		{
			TrainingID: uuid.NewString(), Title: "İş Sağlığı ve Güvenliği Temel Eğitimi",
			Description: "6331 sayılı kanun kapsamında zorunlu eğitim", Instructor: "Dr. Hakan Yurt",
			Location: "Toplantı Salonu A", StartDate: trainingStart, EndDate: trainingStart, Capacity: 30,
			Status: model.TrainingStatusPlanned,
		},
		{
			TrainingID: uuid.NewString(), Title: "Go ile Servis Geliştirme",
			Description: "Eşzamanlılık, test ve gözlemlenebilirlik", Instructor: "Emre Çelik",
			Location: "Çevrim içi", StartDate: trainingStart.AddDate(0, 0, 7), EndDate: trainingStart.AddDate(0, 0, 9), Capacity: 10,
			Status: model.TrainingStatusPlanned,
		},
	}
	for _, i := range []int{3, 4, 6, 8} {
		f.Enrollments = append(f.Enrollments, model.TrainingEnrollment{
			EnrollmentID: uuid.NewString(),
			TrainingID:   f.Trainings[0].TrainingID,
			EmployeeID:   emp(i).EmployeeID,
			Status:       model.EnrollmentStatusEnrolled,
		})
	}
	f.Enrollments = append(f.Enrollments, model.TrainingEnrollment{
		EnrollmentID: uuid.NewString(),
		TrainingID:   f.Trainings[1].TrainingID,
		EmployeeID:   emp(4).EmployeeID,
		Status:       model.EnrollmentStatusEnrolled,
	})

	// İş ilanları ve başvurular
	itDept, salesDept := deptIDs["Bilgi Teknolojileri"], deptIDs["Satış ve Pazarlama"]
	closesAt := today.AddDate(0, 1, 0)
	minSalary, maxSalary := 60000.0, 90000.0
	f.Postings = []model.JobPosting{
		{
			JobPostingID: uuid.NewString(), DepartmentID: &itDept, Title: "Backend Geliştirici (Go)",
			Description:    "Ölçeklenebilir İK servislerimizi geliştirecek takım arkadaşı arıyoruz.",
			Requirements:   "En az 3 yıl Go deneyimi, PostgreSQL, Redis",
			Location:       "İstanbul (Hibrit)",
			EmploymentType: "full_time", SalaryMin: &minSalary, SalaryMax: &maxSalary,
			Status: model.PostingStatusOpen, ClosesAt: &closesAt,
		},
		{
			JobPostingID: uuid.NewString(), DepartmentID: &salesDept, Title: "Satış Stajyeri",
			Description:    "Kurumsal satış ekibimizde yaz dönemi stajı.",
			Location:       "Ankara",
			EmploymentType: "internship",
			Status:         model.PostingStatusDraft,
		},
	}
	for _, a := range []struct{ name, email, status string }{
		{"Kerem Yıldız", "kerem.yildiz@example.com", model.ApplicationStatusReceived},
		{"Ece Koç", "ece.koc@example.com", model.ApplicationStatusInterview},
	} {
		f.Applications = append(f.Applications, model.JobApplication{
			ApplicationID: uuid.NewString(),
			JobPostingID:  f.Postings[0].JobPostingID,
			CandidateName: a.name,
			Email:         a.email,
			Status:        a.status,
		})
	}

	// Denetim alanları
	for i := range f.Companies {
		f.Companies[i].Audit(adminID)
	}
	for i := range f.Departments {
		f.Departments[i].Audit(adminID)
	}
	for i := range f.Employees {
		f.Employees[i].Audit(adminID)
	}
	for i := range f.Payrolls {
		f.Payrolls[i].Audit(hrID)
	}
	for i := range f.Trainings {
		f.Trainings[i].Audit(hrID)
	}
	for i := range f.Postings {
		f.Postings[i].Audit(hrID)
	}

	return f
}

// nextWeekday hafta sonuna denk gelen tarihi pazartesiye kaydırır
func nextWeekday(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
