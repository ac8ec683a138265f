package model

import "time"

// İlan durumları
const (
	PostingStatusDraft  = "draft"
	PostingStatusOpen   = "open"
	PostingStatusClosed = "closed"
)

// Başvuru durumları
const (
	ApplicationStatusReceived  = "received"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusInterview = "interview"
	ApplicationStatusOffered   = "offered"
	ApplicationStatusHired     = "hired"
	ApplicationStatusRejected  = "rejected"
)

// JobPosting iş ilanı tablosu — job_postings
type JobPosting struct {
	JobPostingID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"job_posting_id"`
	DepartmentID   *string    `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	Title          string     `gorm:"type:varchar(150);not null"                     json:"title"`
	Description    string     `gorm:"type:text;not null"                             json:"description"`
	Requirements   string     `gorm:"type:text"                                      json:"requirements,omitempty"`
	Location       string     `gorm:"type:varchar(150)"                              json:"location,omitempty"`
	EmploymentType string     `gorm:"type:varchar(20);not null"                      json:"employment_type"`
	SalaryMin      *float64   `gorm:"type:numeric(12,2)"                             json:"salary_min,omitempty"`
	SalaryMax      *float64   `gorm:"type:numeric(12,2)"                             json:"salary_max,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	ClosesAt       *time.Time `gorm:"type:date"                                      json:"closes_at,omitempty"`
	SoftDeleteModel

	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName tablo adı
func (JobPosting) TableName() string { return "job_postings" }

// JobApplication iş başvurusu tablosu — job_applications
type JobApplication struct {
	ApplicationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"application_id"`
	JobPostingID  string `gorm:"type:uuid;not null"                             json:"job_posting_id"`
	CandidateName string `gorm:"type:varchar(100);not null"                     json:"candidate_name"`
	Email         string `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone         string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	ResumeURL     string `gorm:"type:varchar(500)"                              json:"resume_url,omitempty"`
	CoverLetter   string `gorm:"type:text"                                      json:"cover_letter,omitempty"`
	Status        string `gorm:"type:varchar(20);not null;default:'received'"   json:"status"`
	Notes         string `gorm:"type:text"                                      json:"notes,omitempty"`
	SoftDeleteModel

	JobPosting *JobPosting `gorm:"foreignKey:JobPostingID;references:JobPostingID" json:"job_posting,omitempty"`
}

// TableName tablo adı
func (JobApplication) TableName() string { return "job_applications" }
