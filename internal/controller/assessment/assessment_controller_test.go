package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hiresense/backend/internal/apperr"
	"github.com/hiresense/backend/internal/dto"
	"github.com/hiresense/backend/internal/model"
	"github.com/hiresense/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubSessionService struct {
	out *service.AdvanceOutput
	err error
}

func (s *stubSessionService) Advance(ctx context.Context, in service.AdvanceInput) (*service.AdvanceOutput, error) {
	return s.out, s.err
}

type stubScoringService struct {
	out *service.FinalizeOutput
	err error
}

func (s *stubScoringService) Finalize(ctx context.Context, candidateID, jobID uint, sessionID string) (*service.FinalizeOutput, error) {
	return s.out, s.err
}

type stubMCQService struct {
	out *service.MCQEvaluateOutput
	err error
}

func (s *stubMCQService) Evaluate(ctx context.Context, in service.MCQEvaluateInput) (*service.MCQEvaluateOutput, error) {
	return s.out, s.err
}

type stubJourney struct {
	err   error
	calls int
}

func (s *stubJourney) Notify(tx *gorm.DB, jobID, candidateID uint, journey, status string, score *int, assessmentID *uint) error {
	s.calls++
	return s.err
}

type stubMCQRepo struct {
	questions []model.MCQQuestion
	err       error
}

func (s *stubMCQRepo) FindQuestionsByJob(jobID uint) ([]model.MCQQuestion, error) {
	return s.questions, s.err
}

func (s *stubMCQRepo) FindAnswers(jobID, candidateID, assessmentID uint) ([]model.MCQAnswer, error) {
	return nil, nil
}

type stubJobAssessmentRepo struct {
	assessments []model.JobAssessment
	err         error
}

func (s *stubJobAssessmentRepo) FindByJobAndCandidate(jobID, candidateID uint) ([]model.JobAssessment, error) {
	return s.assessments, s.err
}

type controllerStubs struct {
	session *stubSessionService
	scoring *stubScoringService
	mcq     *stubMCQService
	journey *stubJourney
	mcqRepo *stubMCQRepo
	jaRepo  *stubJobAssessmentRepo
}

func newTestRouter(stubs controllerStubs) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if stubs.session == nil {
		stubs.session = &stubSessionService{}
	}
	if stubs.scoring == nil {
		stubs.scoring = &stubScoringService{}
	}
	if stubs.mcq == nil {
		stubs.mcq = &stubMCQService{}
	}
	if stubs.journey == nil {
		stubs.journey = &stubJourney{}
	}
	if stubs.mcqRepo == nil {
		stubs.mcqRepo = &stubMCQRepo{}
	}
	if stubs.jaRepo == nil {
		stubs.jaRepo = &stubJobAssessmentRepo{}
	}

	ctrl := NewAssessmentController(stubs.session, stubs.scoring, stubs.mcq, stubs.journey, stubs.mcqRepo, stubs.jaRepo)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/interviews/advance", ctrl.AdvanceInterview)
	api.POST("/interviews/end", ctrl.EndInterview)
	api.POST("/mcq/evaluate", ctrl.EvaluateMCQ)
	api.GET("/mcq/questions/:jobId", ctrl.GetMCQByJob)
	api.GET("/assessments/:jobId/:candidateId", ctrl.GetAssessmentState)
	api.POST("/journey-status", ctrl.UpdateJourneyStatus)
	return r
}

func TestAdvanceInterviewSuccess(t *testing.T) {
	r := newTestRouter(controllerStubs{
		session: &stubSessionService{out: &service.AdvanceOutput{
			SessionID:     "abc-123",
			Question:      "Tell me about your education.",
			AudioURL:      "http://localhost:3008/static/audio/q.mp3",
			RemainingTime: "03:00",
		}},
	})

	w := performJSON(t, r, http.MethodPost, "/api/v1/interviews/advance",
		gin.H{"candidateId": 1, "jobId": 7})

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.IsSuccess)
	assert.Equal(t, "success", env.Status)

	result := env.Result.(map[string]interface{})
	assert.Equal(t, "abc-123", result["sessionId"])
	assert.Equal(t, "Tell me about your education.", result["question"])
	assert.Equal(t, "03:00", result["remainingTime"])
}

func TestAdvanceInterviewMissingIdentifiers(t *testing.T) {
	r := newTestRouter(controllerStubs{})

	w := performJSON(t, r, http.MethodPost, "/api/v1/interviews/advance", gin.H{"jobId": 7})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.IsSuccess)
}

func TestAdvanceInterviewExpiredReturnsFarewell(t *testing.T) {
	r := newTestRouter(controllerStubs{
		session: &stubSessionService{err: fmt.Errorf("session: %w", apperr.ErrExpired)},
	})

	w := performJSON(t, r, http.MethodPost, "/api/v1/interviews/advance",
		gin.H{"candidateId": 1, "jobId": 7, "sessionId": "abc-123", "answer": "late"})

	assert.Equal(t, StatusInterviewEnded, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.IsSuccess)
	assert.Equal(t, StatusInterviewEnded, env.StatusCode)
	assert.Contains(t, env.Message, "Your interview has ended")
}

func TestAdvanceInterviewUpstreamFailure(t *testing.T) {
	r := newTestRouter(controllerStubs{
		session: &stubSessionService{err: fmt.Errorf("generation: %w", apperr.ErrUpstream)},
	})

	w := performJSON(t, r, http.MethodPost, "/api/v1/interviews/advance",
		gin.H{"candidateId": 1, "jobId": 7})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestEndInterviewSuccess(t *testing.T) {
	score := 72
	r := newTestRouter(controllerStubs{
		scoring: &stubScoringService{out: &service.FinalizeOutput{
			SessionID:       "abc-123",
			InterviewStatus: model.SessionStatusEnded,
			Score:           &score,
		}},
	})

	w := performJSON(t, r, http.MethodPost, "/api/v1/interviews/end",
		gin.H{"candidateId": 1, "jobId": 7, "sessionId": "abc-123"})

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.IsSuccess)

	result := env.Result.(map[string]interface{})
	assert.Equal(t, "ended", result["interviewStatus"])
	assert.EqualValues(t, 72, result["score"])
}

func TestEndInterviewConflict(t *testing.T) {
	r := newTestRouter(controllerStubs{
		scoring: &stubScoringService{err: fmt.Errorf("cannot end: %w", apperr.ErrConflict)},
	})

	w := performJSON(t, r, http.MethodPost, "/api/v1/interviews/end",
		gin.H{"candidateId": 1, "jobId": 7, "sessionId": "abc-123"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEvaluateMCQSuccess(t *testing.T) {
	r := newTestRouter(controllerStubs{
		mcq: &stubMCQService{out: &service.MCQEvaluateOutput{Status: service.MCQStatusPassed, Score: 50}},
	})

	w := performJSON(t, r, http.MethodPost, "/api/v1/mcq/evaluate", gin.H{
		"jobId": 7, "candidateId": 1, "assessmentId": 3,
		"data": []gin.H{{"questionNo": 1, "selectedOption": "A"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.IsSuccess)

	result := env.Result.(map[string]interface{})
	assert.Equal(t, "PASSED", result["status"])
	assert.EqualValues(t, 50, result["score"])
	assert.Equal(t, "ASSESSMENT", result["event"])
}

func TestEvaluateMCQNoQuestionSet(t *testing.T) {
	r := newTestRouter(controllerStubs{
		mcq: &stubMCQService{err: fmt.Errorf("no data: %w", apperr.ErrNotFound)},
	})

	w := performJSON(t, r, http.MethodPost, "/api/v1/mcq/evaluate", gin.H{
		"jobId": 7, "candidateId": 1, "assessmentId": 3,
		"data": []gin.H{{"questionNo": 1, "selectedOption": "A"}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateJourneyStatusSuccess(t *testing.T) {
	journey := &stubJourney{}
	r := newTestRouter(controllerStubs{journey: journey})

	w := performJSON(t, r, http.MethodPost, "/api/v1/journey-status", gin.H{
		"jobId": 7, "candidateId": 1, "profileJourney": "ASSESSMENT", "status": "PASSED", "score": 50,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, journey.calls)
}

func TestUpdateJourneyStatusUpstreamFailure(t *testing.T) {
	r := newTestRouter(controllerStubs{
		journey: &stubJourney{err: fmt.Errorf("proc: %w", apperr.ErrUpstream)},
	})

	w := performJSON(t, r, http.MethodPost, "/api/v1/journey-status", gin.H{
		"jobId": 7, "candidateId": 1, "profileJourney": "ASSESSMENT", "status": "PASSED",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetMCQByJobWithholdsCorrectOption(t *testing.T) {
	r := newTestRouter(controllerStubs{
		mcqRepo: &stubMCQRepo{questions: []model.MCQQuestion{{
			ID: 1, JobID: 7, QuestionNo: 1, Question: "Pick one.",
			OptionA: "Alpha", OptionB: "Beta", OptionC: "Gamma", OptionD: "Delta",
			CorrectOption: "A",
		}}},
	})

	w := performJSON(t, r, http.MethodGet, "/api/v1/mcq/questions/7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correctOption")
	assert.NotContains(t, w.Body.String(), "correct_option")
	assert.Contains(t, w.Body.String(), "Alpha")
}

func TestGetMCQByJobEmptySet(t *testing.T) {
	r := newTestRouter(controllerStubs{})

	w := performJSON(t, r, http.MethodGet, "/api/v1/mcq/questions/7", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAssessmentState(t *testing.T) {
	score := 50
	r := newTestRouter(controllerStubs{
		jaRepo: &stubJobAssessmentRepo{assessments: []model.JobAssessment{{
			ID: 1, JobID: 7, CandidateID: 1, Sequence: 1,
			AssessmentType: "ASSESSMENT", Status: "PASSED", Score: &score,
		}}},
	})

	w := performJSON(t, r, http.MethodGet, "/api/v1/assessments/7/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.IsSuccess)
}

func TestGetAssessmentStateInvalidParam(t *testing.T) {
	r := newTestRouter(controllerStubs{})

	w := performJSON(t, r, http.MethodGet, "/api/v1/assessments/abc/1", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Envelope {
	t.Helper()
	var env dto.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return env
}
