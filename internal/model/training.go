package model

import "time"

// Eğitim durumları
const (
	TrainingStatusPlanned   = "planned"
	TrainingStatusOngoing   = "ongoing"
	TrainingStatusCompleted = "completed"
	TrainingStatusCancelled = "cancelled"
)

// Katılım durumları
const (
	EnrollmentStatusEnrolled  = "enrolled"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusCancelled = "cancelled"
)

// Training eğitim tablosu — trainings
type Training struct {
	TrainingID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"training_id"`
	Title       string    `gorm:"type:varchar(150);not null"                     json:"title"`
	Description string    `gorm:"type:text"                                      json:"description,omitempty"`
	Instructor  string    `gorm:"type:varchar(100)"                              json:"instructor,omitempty"`
	Location    string    `gorm:"type:varchar(150)"                              json:"location,omitempty"`
	StartDate   time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Capacity    int       `gorm:"not null;default:0"                             json:"capacity"`
	Status      string    `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"`
	SoftDeleteModel
}

// TableName tablo adı
func (Training) TableName() string { return "trainings" }

// TrainingEnrollment eğitim katılım tablosu — training_enrollments
type TrainingEnrollment struct {
	EnrollmentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	TrainingID   string     `gorm:"type:uuid;not null"                             json:"training_id"`
	EmployeeID   string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:'enrolled'"   json:"status"`
	Score        *float64   `gorm:"type:numeric(5,2)"                              json:"score,omitempty"`
	CompletedAt  *time.Time `                                                      json:"completed_at,omitempty"`
	BaseModel

	Training *Training `gorm:"foreignKey:TrainingID;references:TrainingID" json:"training,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName tablo adı
func (TrainingEnrollment) TableName() string { return "training_enrollments" }
