package assessment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hiresense/backend/internal/apperr"
	"github.com/hiresense/backend/internal/dto"
	"github.com/hiresense/backend/internal/repository"
	"github.com/hiresense/backend/internal/service"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// StatusInterviewEnded is the non-standard code returned for expired sessions,
// distinct from generic failures so clients can show the farewell screen.
const StatusInterviewEnded = 440

type AssessmentController struct {
	sessionSvc        service.InterviewSessionService
	scoringSvc        service.InterviewScoringService
	mcqSvc            service.MCQEvaluationService
	journey           service.JourneyPropagator
	mcqRepo           repository.MCQRepository
	jobAssessmentRepo repository.JobAssessmentRepository
}

func NewAssessmentController(
	sessionSvc service.InterviewSessionService,
	scoringSvc service.InterviewScoringService,
	mcqSvc service.MCQEvaluationService,
	journey service.JourneyPropagator,
	mcqRepo repository.MCQRepository,
	jobAssessmentRepo repository.JobAssessmentRepository,
) *AssessmentController {
	return &AssessmentController{
		sessionSvc:        sessionSvc,
		scoringSvc:        scoringSvc,
		mcqSvc:            mcqSvc,
		journey:           journey,
		mcqRepo:           mcqRepo,
		jobAssessmentRepo: jobAssessmentRepo,
	}
}

// AdvanceInterview godoc
// @Summary Start or resume an AI interview session
// @Description Creates a session when sessionId is absent, otherwise records the answer and returns the next generated question
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body dto.AdvanceInterviewRequest true "Interview turn"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "Missing identifiers"
// @Failure 404 {object} dto.Envelope "Candidate or session not found"
// @Failure 440 {object} dto.Envelope "Session expired"
// @Failure 502 {object} dto.Envelope "Question generation failed"
// @Router /interviews/advance [post]
func (ctrl *AssessmentController) AdvanceInterview(c *gin.Context) {
	var req dto.AdvanceInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind AdvanceInterviewRequest")
		c.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid input. Required: candidateId, jobId."))
		return
	}

	out, err := ctrl.sessionSvc.Advance(c.Request.Context(), service.AdvanceInput{
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		SessionID:   req.SessionID,
		Answer:      req.Answer,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(http.StatusOK, "Assessment question generated successfully.", dto.AdvanceInterviewResult{
		CandidateID:   req.CandidateID,
		JobID:         req.JobID,
		SessionID:     out.SessionID,
		Question:      out.Question,
		AudioURL:      out.AudioURL,
		RemainingTime: out.RemainingTime,
	}))
}

// EndInterview godoc
// @Summary End an interview and assign its score
// @Description Finalizes an active session; calling again on an ended session returns the stored score
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body dto.EndInterviewRequest true "Session to finalize"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "Missing identifiers"
// @Failure 404 {object} dto.Envelope "Session not found"
// @Failure 409 {object} dto.Envelope "Session is not in an endable state"
// @Router /interviews/end [post]
func (ctrl *AssessmentController) EndInterview(c *gin.Context) {
	var req dto.EndInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind EndInterviewRequest")
		c.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid input. Required: candidateId, jobId, sessionId."))
		return
	}

	out, err := ctrl.scoringSvc.Finalize(c.Request.Context(), req.CandidateID, req.JobID, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(http.StatusOK, "Your interview has been successfully ended. Thank you for your participation!", dto.EndInterviewResult{
		CandidateID:     req.CandidateID,
		JobID:           req.JobID,
		SessionID:       out.SessionID,
		InterviewStatus: out.InterviewStatus,
		Score:           out.Score,
	}))
}

// EvaluateMCQ godoc
// @Summary Evaluate a submitted MCQ answer set
// @Description Grades the submission against the job's question set, stores per-question scores and propagates the outcome to the candidate's journey
// @Tags mcq
// @Accept json
// @Produce json
// @Param request body dto.EvaluateMCQRequest true "Submitted answers"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "Missing identifiers or empty data"
// @Failure 404 {object} dto.Envelope "No MCQ set for the job"
// @Failure 502 {object} dto.Envelope "Journey propagation failed"
// @Router /mcq/evaluate [post]
func (ctrl *AssessmentController) EvaluateMCQ(c *gin.Context) {
	var req dto.EvaluateMCQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind EvaluateMCQRequest")
		c.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid input data. 'jobId', 'candidateId', 'assessmentId', and 'data' are required."))
		return
	}

	answers := make([]service.SubmittedAnswer, 0, len(req.Data))
	for _, item := range req.Data {
		answers = append(answers, service.SubmittedAnswer{
			QuestionNo:     item.QuestionNo,
			SelectedOption: item.SelectedOption,
		})
	}

	out, err := ctrl.mcqSvc.Evaluate(c.Request.Context(), service.MCQEvaluateInput{
		JobID:        req.JobID,
		CandidateID:  req.CandidateID,
		AssessmentID: req.AssessmentID,
		Answers:      answers,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(http.StatusOK, "Evaluation completed successfully.", dto.EvaluateMCQResult{
		CandidateID:  req.CandidateID,
		JobID:        req.JobID,
		AssessmentID: req.AssessmentID,
		Event:        service.JourneyEventAssessment,
		Status:       out.Status,
		Score:        out.Score,
	}))
}

// UpdateJourneyStatus godoc
// @Summary Update a candidate's profile journey status directly
// @Tags journey
// @Accept json
// @Produce json
// @Param request body dto.JourneyStatusRequest true "Journey update"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "Missing fields"
// @Failure 502 {object} dto.Envelope "Journey propagation failed"
// @Router /journey-status [post]
func (ctrl *AssessmentController) UpdateJourneyStatus(c *gin.Context) {
	var req dto.JourneyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind JourneyStatusRequest")
		c.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid input data. Required fields: jobId, candidateId, profileJourney, status, and optional score."))
		return
	}

	if err := ctrl.journey.Notify(nil, req.JobID, req.CandidateID, req.ProfileJourney, req.Status, req.Score, nil); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(http.StatusOK, "Profile journey status updated successfully.", req))
}

// GetAssessmentState godoc
// @Summary List a candidate's assessment stages for a job
// @Tags assessments
// @Produce json
// @Param jobId path int true "Job ID"
// @Param candidateId path int true "Candidate ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope "No records found"
// @Router /assessments/{jobId}/{candidateId} [get]
func (ctrl *AssessmentController) GetAssessmentState(c *gin.Context) {
	jobID, ok1 := parseUintParam(c, "jobId")
	candidateID, ok2 := parseUintParam(c, "candidateId")
	if !ok1 || !ok2 {
		return
	}

	assessments, err := ctrl.jobAssessmentRepo.FindByJobAndCandidate(jobID, candidateID)
	if err != nil {
		log.Error().Err(err).Uint("jobID", jobID).Msg("Failed to fetch job assessments")
		c.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, "Failed to retrieve assessment records."))
		return
	}
	if len(assessments) == 0 {
		c.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, "No records found."))
		return
	}

	result := make([]dto.JobAssessmentDTO, len(assessments))
	for i := range assessments {
		copier.Copy(&result[i], &assessments[i])
	}
	c.JSON(http.StatusOK, dto.Success(http.StatusOK, "Records retrieved successfully.", result))
}

// GetMCQByJob godoc
// @Summary Fetch the MCQ set a candidate should take
// @Description Returns the job's questions with the correct options withheld
// @Tags mcq
// @Produce json
// @Param jobId path int true "Job ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope "No MCQ records for the job"
// @Router /mcq/questions/{jobId} [get]
func (ctrl *AssessmentController) GetMCQByJob(c *gin.Context) {
	jobID, ok := parseUintParam(c, "jobId")
	if !ok {
		return
	}

	questions, err := ctrl.mcqRepo.FindQuestionsByJob(jobID)
	if err != nil {
		log.Error().Err(err).Uint("jobID", jobID).Msg("Failed to fetch MCQ questions")
		c.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, "Failed to retrieve MCQ records."))
		return
	}
	if len(questions) == 0 {
		c.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, "No records found for the given JobId."))
		return
	}

	result := make([]dto.MCQQuestionDTO, len(questions))
	for i := range questions {
		copier.Copy(&result[i], &questions[i])
	}
	c.JSON(http.StatusOK, dto.Success(http.StatusOK, "MCQ records retrieved successfully.", result))
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid "+name+" format"))
		return 0, false
	}
	return uint(value), true
}

// respondError maps the service error taxonomy onto envelope responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Failure(http.StatusNotFound, err.Error()))
	case errors.Is(err, apperr.ErrExpired):
		c.JSON(StatusInterviewEnded, dto.Failure(StatusInterviewEnded,
			"Your interview has ended. Thank you for taking the time to speak with us. Wishing you all the best for your future!"))
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, dto.Failure(http.StatusConflict, err.Error()))
	case errors.Is(err, apperr.ErrUpstream):
		c.JSON(http.StatusBadGateway, dto.Failure(http.StatusBadGateway, "An upstream service failed. Please try again."))
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, "An unexpected error occurred."))
	}
}
