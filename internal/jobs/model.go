package jobs

import (
	"time"

	"github.com/lib/pq"
)

// Job is a published job posting. Skills are stored as a Postgres text[].
type Job struct {
	ID             uint64         `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"type:text;not null" json:"title"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Location       string         `gorm:"type:text;not null" json:"location"`
	Salary         string         `gorm:"type:text;not null" json:"salary"`
	Requirements   string         `gorm:"type:text;not null" json:"requirements"`
	CompanyName    string         `gorm:"type:text;not null" json:"companyName"`
	Deadline       *time.Time     `gorm:"type:date" json:"deadline"`
	EmploymentType string         `gorm:"type:text;not null" json:"employmentType"`
	JobCategory    string         `gorm:"type:text;not null" json:"jobCategory"`
	Skills         pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"skills"`
	CompanyLogo    *string        `gorm:"type:text" json:"companyLogo,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"createdAt"`
}
