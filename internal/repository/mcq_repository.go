package repository

import (
	"github.com/hiresense/backend/internal/model"
	"gorm.io/gorm"
)

type MCQRepository interface {
	FindQuestionsByJob(jobID uint) ([]model.MCQQuestion, error)
	FindAnswers(jobID, candidateID, assessmentID uint) ([]model.MCQAnswer, error)
}

type mcqRepository struct {
	db *gorm.DB
}

func NewMCQRepository(db *gorm.DB) MCQRepository {
	return &mcqRepository{db: db}
}

func (r *mcqRepository) FindQuestionsByJob(jobID uint) ([]model.MCQQuestion, error) {
	var questions []model.MCQQuestion
	err := r.db.Where("job_id = ?", jobID).Order("question_no ASC").Find(&questions).Error
	return questions, err
}

func (r *mcqRepository) FindAnswers(jobID, candidateID, assessmentID uint) ([]model.MCQAnswer, error) {
	var answers []model.MCQAnswer
	err := r.db.
		Where("job_id = ? AND candidate_id = ? AND assessment_id = ?", jobID, candidateID, assessmentID).
		Order("question_no ASC").
		Find(&answers).Error
	return answers, err
}
