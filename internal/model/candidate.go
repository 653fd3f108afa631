package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// CandidateProfile is the read-only profile context the question sequencer
// builds its prompts from.
type CandidateProfile struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	FirstName  string         `json:"first_name" gorm:"not null"`
	LastName   string         `json:"last_name"`
	Email      string         `json:"email" gorm:"uniqueIndex"`
	Skills     string         `json:"skills" gorm:"type:text"`
	Education  string         `json:"education" gorm:"type:text"`
	Experience string         `json:"experience" gorm:"type:text"`
	LatestRole string         `json:"latest_role"`
	Address    string         `json:"address"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *CandidateProfile) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
