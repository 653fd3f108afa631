package model

import "time"

// JobAssessment is one stage of a candidate's assessment pipeline for a job,
// ordered by Sequence.
type JobAssessment struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	JobID          uint      `json:"job_id" gorm:"not null;index:idx_job_assessment"`
	CandidateID    uint      `json:"candidate_id" gorm:"not null;index:idx_job_assessment"`
	Sequence       int       `json:"assessment_sqnc" gorm:"column:assessment_sqnc;not null"`
	AssessmentType string    `json:"assessment_type" gorm:"not null"`
	Status         string    `json:"status" gorm:"size:16"`
	Score          *int      `json:"score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
