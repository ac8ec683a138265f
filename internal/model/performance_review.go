package model

import "time"

// Değerlendirme durumları
const (
	ReviewStatusDraft     = "draft"
	ReviewStatusSubmitted = "submitted"
	ReviewStatusFinalized = "finalized"
)

// PerformanceReview performans değerlendirme tablosu — performance_reviews
type PerformanceReview struct {
	ReviewID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"review_id"`
	EmployeeID   string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	ReviewerID   string     `gorm:"type:uuid;not null"                             json:"reviewer_id"`
	Period       string     `gorm:"type:varchar(20);not null"                      json:"period"`
	Score        float64    `gorm:"type:numeric(3,1);not null"                     json:"score"`
	Goals        string     `gorm:"type:text"                                      json:"goals,omitempty"`
	Strengths    string     `gorm:"type:text"                                      json:"strengths,omitempty"`
	Improvements string     `gorm:"type:text"                                      json:"improvements,omitempty"`
	Comments     string     `gorm:"type:text"                                      json:"comments,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	FinalizedAt  *time.Time `                                                      json:"finalized_at,omitempty"`
	SoftDeleteModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Reviewer *Employee `gorm:"foreignKey:ReviewerID;references:EmployeeID" json:"reviewer,omitempty"`
}

// TableName tablo adı
func (PerformanceReview) TableName() string { return "performance_reviews" }
