package model

import "time"

// MCQQuestion is one canonical multiple-choice question generated for a job.
type MCQQuestion struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	JobID         uint      `json:"job_id" gorm:"not null;index"`
	QuestionNo    int       `json:"question_no" gorm:"not null"`
	Question      string    `json:"question" gorm:"type:text;not null"`
	OptionA       string    `json:"option_a" gorm:"not null"`
	OptionB       string    `json:"option_b" gorm:"not null"`
	OptionC       string    `json:"option_c" gorm:"not null"`
	OptionD       string    `json:"option_d" gorm:"not null"`
	CorrectOption string    `json:"correct_option" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MCQAnswer records a candidate's submitted choice for one question of one
// assessment. Exactly one row exists per
// (job_id, candidate_id, assessment_id, question_no); re-submissions update
// in place.
type MCQAnswer struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	JobID          uint      `json:"job_id" gorm:"not null;uniqueIndex:idx_mcq_answer_key"`
	CandidateID    uint      `json:"candidate_id" gorm:"not null;uniqueIndex:idx_mcq_answer_key"`
	AssessmentID   uint      `json:"assessment_id" gorm:"not null;uniqueIndex:idx_mcq_answer_key"`
	QuestionNo     int       `json:"question_no" gorm:"not null;uniqueIndex:idx_mcq_answer_key"`
	SelectedOption string    `json:"selected_option" gorm:"not null"`
	Score          int       `json:"score" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
