package repository

import (
	"github.com/hiresense/backend/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository interface {
	FindByID(id uint) (*model.CandidateProfile, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) FindByID(id uint) (*model.CandidateProfile, error) {
	var candidate model.CandidateProfile
	if err := r.db.First(&candidate, id).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}
