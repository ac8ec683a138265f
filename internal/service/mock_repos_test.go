package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/realtime"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/pkg/database"
	pkgerrors "hr-intelligence/backend/pkg/errors"
)

// ── Test toplamı ──

type testRepos struct {
	company      *mockCompanyRepo
	department   *mockDepartmentRepo
	employee     *mockEmployeeRepo
	leave        *mockLeaveRepo
	payroll      *mockPayrollRepo
	performance  *mockPerformanceRepo
	training     *mockTrainingRepo
	enrollment   *mockEnrollmentRepo
	notification *mockNotificationRepo
	message      *mockMessageRepo
	document     *mockDocumentRepo
	posting      *mockPostingRepo
	application  *mockApplicationRepo
}

// newTestRepository bağlantısız Repository döner; BeginTx (nil, nil) verir
func newTestRepository() (*repository.Repository, *testRepos) {
	m := &testRepos{
		company:      newMockCompanyRepo(),
		department:   newMockDepartmentRepo(),
		employee:     newMockEmployeeRepo(),
		leave:        newMockLeaveRepo(),
		payroll:      newMockPayrollRepo(),
		performance:  newMockPerformanceRepo(),
		training:     newMockTrainingRepo(),
		enrollment:   newMockEnrollmentRepo(),
		notification: newMockNotificationRepo(),
		message:      newMockMessageRepo(),
		document:     newMockDocumentRepo(),
		posting:      newMockPostingRepo(),
		application:  newMockApplicationRepo(),
	}
	m.department.employees = m.employee
	repo := &repository.Repository{
		Company:        m.company,
		Department:     m.department,
		Employee:       m.employee,
		Leave:          m.leave,
		Payroll:        m.payroll,
		Performance:    m.performance,
		Training:       m.training,
		Enrollment:     m.enrollment,
		Notification:   m.notification,
		Message:        m.message,
		Document:       m.document,
		JobPosting:     m.posting,
		JobApplication: m.application,
	}
	return repo, m
}

// ── Kayıt tutan bildirici ──

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]realtime.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(map[string][]realtime.Event)}
}

func (p *recordingPublisher) PublishToEmployee(employeeID string, event realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[employeeID] = append(p.events[employeeID], event)
}

var mockSeq int

func nextID(prefix string) string {
	mockSeq++
	return fmt.Sprintf("%s-%d", prefix, mockSeq)
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
	deptCount map[string]int64
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[string]*model.Company), deptCount: make(map[string]int64)}
}

func (m *mockCompanyRepo) Create(_ context.Context, c *model.Company) error {
	if c.CompanyID == "" {
		c.CompanyID = nextID("company")
	}
	m.companies[c.CompanyID] = c
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) GetByName(_ context.Context, name string) (*model.Company, error) {
	for _, c := range m.companies {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) List(_ context.Context) ([]model.Company, error) {
	result := make([]model.Company, 0, len(m.companies))
	for _, c := range m.companies {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, c *model.Company) error {
	m.companies[c.CompanyID] = c
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.companies[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.companies, id)
	return nil
}

func (m *mockCompanyRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.companies)), nil
}

func (m *mockCompanyRepo) CountDepartments(_ context.Context, companyID string) (int64, error) {
	return m.deptCount[companyID], nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	depts     map[string]*model.Department
	employees *mockEmployeeRepo
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{depts: make(map[string]*model.Department)}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		dept.DepartmentID = nextID("dept")
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) GetByName(_ context.Context, companyID *string, name string) (*model.Department, error) {
	for _, d := range m.depts {
		if !strings.EqualFold(d.Name, name) {
			continue
		}
		if derefString(d.CompanyID) == derefString(companyID) {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		if d.IsActive {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDepartmentRepo) ListAll(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.depts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.depts, id)
	return nil
}

func (m *mockDepartmentRepo) CountMembers(_ context.Context, departmentID string) (int64, error) {
	var count int64
	if m.employees == nil {
		return 0, nil
	}
	for _, e := range m.employees.emps {
		if e.DepartmentID != nil && *e.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

func (m *mockDepartmentRepo) CountMembersBatch(ctx context.Context, departmentIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(departmentIDs))
	for _, id := range departmentIDs {
		result[id], _ = m.CountMembers(ctx, id)
	}
	return result, nil
}

func (m *mockDepartmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.depts)), nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	emps map[string]*model.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{emps: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	for _, e := range m.emps {
		if strings.EqualFold(e.Email, emp.Email) {
			return database.ErrDuplicate
		}
	}
	if emp.EmployeeID == "" {
		emp.EmployeeID = nextID("emp")
	}
	m.emps[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.emps[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.emps {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByNationalID(_ context.Context, nationalID string) (*model.Employee, error) {
	for _, e := range m.emps {
		if e.NationalID != nil && *e.NationalID == nationalID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]model.Employee, int64, error) {
	var result []model.Employee
	for _, e := range m.emps {
		if filter.DepartmentID != "" && derefString(e.DepartmentID) != filter.DepartmentID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Role != "" && e.Role != filter.Role {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LastName < result[j].LastName })
	return page(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockEmployeeRepo) ListActive(_ context.Context) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.emps {
		if e.Status != model.EmployeeStatusTerminated {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	m.emps[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) UpdatePassword(_ context.Context, id string, hash string, mustChange bool) error {
	e, ok := m.emps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.PasswordHash = hash
	e.MustChangePassword = mustChange
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.emps[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.emps, id)
	return nil
}

func (m *mockEmployeeRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, e := range m.emps {
		result[e.Status]++
	}
	return result, nil
}

func (m *mockEmployeeRepo) HeadcountByDepartment(_ context.Context) ([]repository.DepartmentHeadcount, error) {
	counts := make(map[string]int64)
	for _, e := range m.emps {
		if e.DepartmentID != nil && e.Status != model.EmployeeStatusTerminated {
			counts[*e.DepartmentID]++
		}
	}
	var result []repository.DepartmentHeadcount
	for id, n := range counts {
		result = append(result, repository.DepartmentHeadcount{DepartmentID: id, DepartmentName: id, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DepartmentID < result[j].DepartmentID })
	return result, nil
}

func (m *mockEmployeeRepo) CountHiredSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, e := range m.emps {
		if !e.HireDate.Before(since) {
			count++
		}
	}
	return count, nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	leaves map[string]*model.Leave
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{leaves: make(map[string]*model.Leave)}
}

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.Leave) error {
	if leave.LeaveID == "" {
		leave.LeaveID = nextID("leave")
	}
	cp := *leave
	m.leaves[leave.LeaveID] = &cp
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id string) (*model.Leave, error) {
	if l, ok := m.leaves[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) List(_ context.Context, filter repository.LeaveFilter) ([]model.Leave, int64, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if filter.EmployeeID != "" && l.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.LeaveType != "" && l.LeaveType != filter.LeaveType {
			continue
		}
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return page(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockLeaveRepo) ListPending(_ context.Context) ([]model.Leave, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if l.Status == model.LeaveStatusPending {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockLeaveRepo) UpdateStatus(_ context.Context, leave *model.Leave, fromStatus string) error {
	stored, ok := m.leaves[leave.LeaveID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != fromStatus {
		return pkgerrors.ErrOptimisticLock
	}
	cp := *leave
	m.leaves[leave.LeaveID] = &cp
	return nil
}

func (m *mockLeaveRepo) HasOverlap(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, l := range m.leaves {
		if l.EmployeeID != employeeID {
			continue
		}
		if l.Status != model.LeaveStatusPending && l.Status != model.LeaveStatusApproved {
			continue
		}
		if !l.StartDate.After(end) && !l.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeaveRepo) SumApprovedDays(_ context.Context, employeeID, leaveType string, year int) (int, error) {
	total := 0
	for _, l := range m.leaves {
		if l.EmployeeID == employeeID && l.LeaveType == leaveType &&
			l.Status == model.LeaveStatusApproved && l.StartDate.Year() == year {
			total += l.TotalDays
		}
	}
	return total, nil
}

func (m *mockLeaveRepo) CountPending(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, l := range m.leaves {
		if l.Status == model.LeaveStatusPending && (employeeID == "" || l.EmployeeID == employeeID) {
			count++
		}
	}
	return count, nil
}

func (m *mockLeaveRepo) CountOnLeave(_ context.Context, day time.Time) (int64, error) {
	var count int64
	for _, l := range m.leaves {
		if l.Status == model.LeaveStatusApproved && !l.StartDate.After(day) && !l.EndDate.Before(day) {
			count++
		}
	}
	return count, nil
}

// ── Mock PayrollRepository ──

type mockPayrollRepo struct {
	payrolls map[string]*model.Payroll
}

func newMockPayrollRepo() *mockPayrollRepo {
	return &mockPayrollRepo{payrolls: make(map[string]*model.Payroll)}
}

func (m *mockPayrollRepo) Create(_ context.Context, p *model.Payroll) error {
	if p.PayrollID == "" {
		p.PayrollID = nextID("payroll")
	}
	m.payrolls[p.PayrollID] = p
	return nil
}

func (m *mockPayrollRepo) GetByID(_ context.Context, id string) (*model.Payroll, error) {
	if p, ok := m.payrolls[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPayrollRepo) List(_ context.Context, filter repository.PayrollFilter) ([]model.Payroll, int64, error) {
	var result []model.Payroll
	for _, p := range m.payrolls {
		if filter.Year != 0 && p.PeriodYear != filter.Year {
			continue
		}
		if filter.Month != 0 && p.PeriodMonth != filter.Month {
			continue
		}
		if filter.EmployeeID != "" && p.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.ExcludeDraft && p.Status == model.PayrollStatusDraft {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return page(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockPayrollRepo) Update(_ context.Context, p *model.Payroll) error {
	m.payrolls[p.PayrollID] = p
	return nil
}

func (m *mockPayrollRepo) ListEmployeeIDsForPeriod(_ context.Context, year, month int) ([]string, error) {
	var ids []string
	for _, p := range m.payrolls {
		if p.PeriodYear == year && p.PeriodMonth == month {
			ids = append(ids, p.EmployeeID)
		}
	}
	return ids, nil
}

func (m *mockPayrollRepo) LatestForEmployee(_ context.Context, employeeID string) (*model.Payroll, error) {
	var latest *model.Payroll
	for _, p := range m.payrolls {
		if p.EmployeeID != employeeID || p.Status == model.PayrollStatusDraft {
			continue
		}
		if latest == nil || p.PeriodYear*12+p.PeriodMonth > latest.PeriodYear*12+latest.PeriodMonth {
			latest = p
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockPayrollRepo) Totals(_ context.Context, year, month int) (*repository.PayrollTotals, error) {
	t := &repository.PayrollTotals{}
	for _, p := range m.payrolls {
		if p.PeriodYear != year || p.PeriodMonth != month {
			continue
		}
		t.Count++
		t.Gross += p.GrossSalary
		t.Bonus += p.Bonus
		t.Deductions += p.Deductions
		t.SGKEmployee += p.SGKEmployee
		t.Unemployment += p.Unemployment
		t.IncomeTax += p.IncomeTax
		t.StampTax += p.StampTax
		t.Net += p.NetSalary
	}
	return t, nil
}

// ── Mock PerformanceRepository ──

type mockPerformanceRepo struct {
	reviews map[string]*model.PerformanceReview
}

func newMockPerformanceRepo() *mockPerformanceRepo {
	return &mockPerformanceRepo{reviews: make(map[string]*model.PerformanceReview)}
}

func (m *mockPerformanceRepo) Create(_ context.Context, r *model.PerformanceReview) error {
	if r.ReviewID == "" {
		r.ReviewID = nextID("review")
	}
	m.reviews[r.ReviewID] = r
	return nil
}

func (m *mockPerformanceRepo) GetByID(_ context.Context, id string) (*model.PerformanceReview, error) {
	if r, ok := m.reviews[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPerformanceRepo) List(_ context.Context, filter repository.ReviewFilter) ([]model.PerformanceReview, int64, error) {
	var result []model.PerformanceReview
	for _, r := range m.reviews {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		result = append(result, *r)
	}
	return page(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockPerformanceRepo) Update(_ context.Context, r *model.PerformanceReview) error {
	m.reviews[r.ReviewID] = r
	return nil
}

func (m *mockPerformanceRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.reviews, id)
	return nil
}

func (m *mockPerformanceRepo) ScoresByDepartment(_ context.Context) ([]repository.DepartmentScore, error) {
	var sc repository.DepartmentScore
	for _, r := range m.reviews {
		if r.Status == model.ReviewStatusDraft {
			continue
		}
		sc.Total += r.Score
		sc.Count++
	}
	if sc.Count == 0 {
		return nil, nil
	}
	return []repository.DepartmentScore{sc}, nil
}

func (m *mockPerformanceRepo) LatestForEmployee(_ context.Context, employeeID string) (*model.PerformanceReview, error) {
	for _, r := range m.reviews {
		if r.EmployeeID == employeeID && r.Status == model.ReviewStatusFinalized {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TrainingRepository ──

type mockTrainingRepo struct {
	trainings map[string]*model.Training
}

func newMockTrainingRepo() *mockTrainingRepo {
	return &mockTrainingRepo{trainings: make(map[string]*model.Training)}
}

func (m *mockTrainingRepo) Create(_ context.Context, t *model.Training) error {
	if t.TrainingID == "" {
		t.TrainingID = nextID("training")
	}
	m.trainings[t.TrainingID] = t
	return nil
}

func (m *mockTrainingRepo) GetByID(_ context.Context, id string) (*model.Training, error) {
	if t, ok := m.trainings[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainingRepo) LockByID(ctx context.Context, id string) (*model.Training, error) {
	return m.GetByID(ctx, id)
}

func (m *mockTrainingRepo) List(_ context.Context, filter repository.TrainingFilter) ([]model.Training, int64, error) {
	var result []model.Training
	for _, t := range m.trainings {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return page(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockTrainingRepo) ListUpcoming(_ context.Context, from time.Time, limit int) ([]model.Training, error) {
	var result []model.Training
	for _, t := range m.trainings {
		if t.Status == model.TrainingStatusPlanned && !t.StartDate.Before(from) {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return page(result, 0, limit), nil
}

func (m *mockTrainingRepo) Update(_ context.Context, t *model.Training) error {
	m.trainings[t.TrainingID] = t
	return nil
}

func (m *mockTrainingRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.trainings, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.TrainingEnrollment
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]*model.TrainingEnrollment)}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.TrainingEnrollment) error {
	if e.EnrollmentID == "" {
		e.EnrollmentID = nextID("enrollment")
	}
	m.enrollments[e.EnrollmentID] = e
	return nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.TrainingEnrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetByTrainingAndEmployee(_ context.Context, trainingID, employeeID string) (*model.TrainingEnrollment, error) {
	for _, e := range m.enrollments {
		if e.TrainingID == trainingID && e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByTraining(_ context.Context, trainingID string) ([]model.TrainingEnrollment, error) {
	var result []model.TrainingEnrollment
	for _, e := range m.enrollments {
		if e.TrainingID == trainingID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.TrainingEnrollment, error) {
	var result []model.TrainingEnrollment
	for _, e := range m.enrollments {
		if e.EmployeeID == employeeID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) CountActiveByTraining(_ context.Context, trainingID string) (int64, error) {
	var count int64
	for _, e := range m.enrollments {
		if e.TrainingID == trainingID && e.Status != model.EnrollmentStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (m *mockEnrollmentRepo) CountActiveByEmployee(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, e := range m.enrollments {
		if e.EmployeeID == employeeID && e.Status == model.EnrollmentStatusEnrolled {
			count++
		}
	}
	return count, nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, e *model.TrainingEnrollment) error {
	m.enrollments[e.EnrollmentID] = e
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	items map[string]*model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{items: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		n.NotificationID = nextID("notification")
	}
	m.items[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) List(_ context.Context, employeeID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.items {
		if n.EmployeeID != employeeID || (unreadOnly && n.IsRead) {
			continue
		}
		result = append(result, *n)
	}
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.EmployeeID == employeeID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, employeeID string) error {
	n, ok := m.items[id]
	if !ok || n.EmployeeID != employeeID {
		return gorm.ErrRecordNotFound
	}
	n.IsRead = true
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.EmployeeID == employeeID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, id, employeeID string) error {
	n, ok := m.items[id]
	if !ok || n.EmployeeID != employeeID {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	msgs map[string]*model.Message
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{msgs: make(map[string]*model.Message)}
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.Message) error {
	if msg.MessageID == "" {
		msg.MessageID = nextID("msg")
	}
	m.msgs[msg.MessageID] = msg
	return nil
}

func (m *mockMessageRepo) GetByID(_ context.Context, id string) (*model.Message, error) {
	if msg, ok := m.msgs[id]; ok {
		return msg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMessageRepo) ListInbox(_ context.Context, employeeID string, offset, limit int) ([]model.Message, int64, error) {
	var result []model.Message
	for _, msg := range m.msgs {
		if msg.RecipientID == employeeID && !msg.RecipientDeleted {
			result = append(result, *msg)
		}
	}
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockMessageRepo) ListSent(_ context.Context, employeeID string, offset, limit int) ([]model.Message, int64, error) {
	var result []model.Message
	for _, msg := range m.msgs {
		if msg.SenderID == employeeID && !msg.SenderDeleted {
			result = append(result, *msg)
		}
	}
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockMessageRepo) MarkRead(_ context.Context, id string, at time.Time) error {
	msg, ok := m.msgs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	msg.IsRead = true
	msg.ReadAt = &at
	return nil
}

func (m *mockMessageRepo) HideFor(_ context.Context, msg *model.Message, employeeID string) error {
	stored, ok := m.msgs[msg.MessageID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.SenderID == employeeID {
		stored.SenderDeleted = true
	}
	if stored.RecipientID == employeeID {
		stored.RecipientDeleted = true
	}
	return nil
}

func (m *mockMessageRepo) CountUnread(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, msg := range m.msgs {
		if msg.RecipientID == employeeID && !msg.IsRead && !msg.RecipientDeleted {
			count++
		}
	}
	return count, nil
}

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	docs map[string]*model.Document
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{docs: make(map[string]*model.Document)}
}

func (m *mockDocumentRepo) Create(_ context.Context, d *model.Document) error {
	if d.DocumentID == "" {
		d.DocumentID = nextID("doc")
	}
	m.docs[d.DocumentID] = d
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) List(_ context.Context, filter repository.DocumentFilter) ([]model.Document, int64, error) {
	var result []model.Document
	for _, d := range m.docs {
		if filter.EmployeeID != "" && derefString(d.EmployeeID) != filter.EmployeeID {
			continue
		}
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		if filter.VisibleTo != "" && d.EmployeeID != nil && *d.EmployeeID != filter.VisibleTo {
			continue
		}
		result = append(result, *d)
	}
	return page(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.docs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.docs, id)
	return nil
}

// ── Mock JobPostingRepository ──

type mockPostingRepo struct {
	postings map[string]*model.JobPosting
}

func newMockPostingRepo() *mockPostingRepo {
	return &mockPostingRepo{postings: make(map[string]*model.JobPosting)}
}

func (m *mockPostingRepo) Create(_ context.Context, p *model.JobPosting) error {
	if p.JobPostingID == "" {
		p.JobPostingID = nextID("posting")
	}
	m.postings[p.JobPostingID] = p
	return nil
}

func (m *mockPostingRepo) GetByID(_ context.Context, id string) (*model.JobPosting, error) {
	if p, ok := m.postings[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPostingRepo) List(_ context.Context, filter repository.PostingFilter) ([]model.JobPosting, int64, error) {
	var result []model.JobPosting
	for _, p := range m.postings {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.DepartmentID != "" && derefString(p.DepartmentID) != filter.DepartmentID {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return page(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockPostingRepo) Update(_ context.Context, p *model.JobPosting) error {
	m.postings[p.JobPostingID] = p
	return nil
}

func (m *mockPostingRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.postings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.postings, id)
	return nil
}

func (m *mockPostingRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, p := range m.postings {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

// ── Mock JobApplicationRepository ──

type mockApplicationRepo struct {
	apps map[string]*model.JobApplication
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[string]*model.JobApplication)}
}

func (m *mockApplicationRepo) Create(_ context.Context, a *model.JobApplication) error {
	if a.ApplicationID == "" {
		a.ApplicationID = nextID("application")
	}
	m.apps[a.ApplicationID] = a
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.JobApplication, error) {
	if a, ok := m.apps[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) List(_ context.Context, filter repository.ApplicationFilter) ([]model.JobApplication, int64, error) {
	var result []model.JobApplication
	for _, a := range m.apps {
		if filter.JobPostingID != "" && a.JobPostingID != filter.JobPostingID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		result = append(result, *a)
	}
	return page(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockApplicationRepo) Update(_ context.Context, a *model.JobApplication) error {
	m.apps[a.ApplicationID] = a
	return nil
}

func (m *mockApplicationRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, a := range m.apps {
		result[a.Status]++
	}
	return result, nil
}
