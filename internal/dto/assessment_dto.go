package dto

import "time"

// AdvanceInterviewRequest starts a fresh interview session when SessionID is
// empty, otherwise resumes the identified one with the candidate's answer to
// the previous question.
type AdvanceInterviewRequest struct {
	CandidateID uint   `json:"candidateId" binding:"required"`
	JobID       uint   `json:"jobId" binding:"required"`
	SessionID   string `json:"sessionId"`
	Answer      string `json:"answer"`
}

type AdvanceInterviewResult struct {
	CandidateID   uint   `json:"candidateId"`
	JobID         uint   `json:"jobId"`
	SessionID     string `json:"sessionId"`
	Question      string `json:"question"`
	AudioURL      string `json:"audioUrl,omitempty"`
	RemainingTime string `json:"remainingTime"`
}

type EndInterviewRequest struct {
	CandidateID uint   `json:"candidateId" binding:"required"`
	JobID       uint   `json:"jobId" binding:"required"`
	SessionID   string `json:"sessionId" binding:"required"`
}

type EndInterviewResult struct {
	CandidateID     uint   `json:"candidateId"`
	JobID           uint   `json:"jobId"`
	SessionID       string `json:"sessionId"`
	InterviewStatus string `json:"interviewStatus"`
	Score           *int   `json:"score"`
}

type SubmittedMCQAnswer struct {
	QuestionNo     int    `json:"questionNo" binding:"required"`
	SelectedOption string `json:"selectedOption"`
}

type EvaluateMCQRequest struct {
	JobID        uint                 `json:"jobId" binding:"required"`
	CandidateID  uint                 `json:"candidateId" binding:"required"`
	AssessmentID uint                 `json:"assessmentId" binding:"required"`
	Data         []SubmittedMCQAnswer `json:"data" binding:"required"`
}

type EvaluateMCQResult struct {
	CandidateID  uint   `json:"candidateId"`
	JobID        uint   `json:"jobId"`
	AssessmentID uint   `json:"assessmentId"`
	Event        string `json:"event"`
	Status       string `json:"status"`
	Score        int    `json:"score"`
}

type JourneyStatusRequest struct {
	JobID          uint   `json:"jobId" binding:"required"`
	CandidateID    uint   `json:"candidateId" binding:"required"`
	ProfileJourney string `json:"profileJourney" binding:"required"`
	Status         string `json:"status" binding:"required"`
	Score          *int   `json:"score"`
}

// MCQQuestionDTO is the candidate-facing view of a question. The correct
// option is deliberately absent.
type MCQQuestionDTO struct {
	ID         uint   `json:"id"`
	JobID      uint   `json:"jobId"`
	QuestionNo int    `json:"questionNo"`
	Question   string `json:"question"`
	OptionA    string `json:"optionA"`
	OptionB    string `json:"optionB"`
	OptionC    string `json:"optionC"`
	OptionD    string `json:"optionD"`
}

type JobAssessmentDTO struct {
	ID             uint      `json:"id"`
	JobID          uint      `json:"jobId"`
	CandidateID    uint      `json:"candidateId"`
	Sequence       int       `json:"assessmentSqnc"`
	AssessmentType string    `json:"assessmentType"`
	Status         string    `json:"status"`
	Score          *int      `json:"score,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
