package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hiresense/backend/config"
	"github.com/hiresense/backend/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&model.CandidateProfile{},
		&model.AssessmentSession{},
		&model.MCQQuestion{},
		&model.MCQAnswer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Assessment.SessionDuration = 3 * time.Minute
	cfg.Assessment.UpstreamTimeout = 2 * time.Second
	cfg.Assessment.MCQPassThreshold = 45
	cfg.Assessment.FallbackScoreMin = 40
	cfg.Assessment.FallbackScoreMax = 60
	return cfg
}

// fakeGenerator satisfies GeminiLLMService without network access. The delay
// simulates a slow model call.
type fakeGenerator struct {
	question      string
	questionErr   error
	delay         time.Duration
	score         int
	scoreErr      error
	generateCalls int
	scoreCalls    int
}

func (f *fakeGenerator) GenerateQuestion(ctx context.Context, prompt string) (string, error) {
	f.generateCalls++
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.questionErr != nil {
		return "", f.questionErr
	}
	return f.question, nil
}

func (f *fakeGenerator) ScoreAnswers(ctx context.Context, answers []string) (int, error) {
	f.scoreCalls++
	if f.scoreErr != nil {
		return 0, f.scoreErr
	}
	return f.score, nil
}

type fakeSynthesizer struct {
	url string
	err error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type journeyCall struct {
	JobID        uint
	CandidateID  uint
	Journey      string
	Status       string
	Score        *int
	AssessmentID *uint
}

type fakeJourney struct {
	calls []journeyCall
	err   error
}

func (f *fakeJourney) Notify(tx *gorm.DB, jobID, candidateID uint, journey, status string, score *int, assessmentID *uint) error {
	f.calls = append(f.calls, journeyCall{
		JobID:        jobID,
		CandidateID:  candidateID,
		Journey:      journey,
		Status:       status,
		Score:        score,
		AssessmentID: assessmentID,
	})
	return f.err
}

func seedCandidate(t *testing.T, db *gorm.DB) *model.CandidateProfile {
	t.Helper()
	candidate := &model.CandidateProfile{
		FirstName:  "Priya",
		LastName:   "Sharma",
		Email:      fmt.Sprintf("priya%d@example.com", time.Now().UnixNano()),
		Skills:     "Go, SQL",
		Education:  "B.Tech Computer Science",
		Experience: "3 years backend development",
	}
	if err := db.Create(candidate).Error; err != nil {
		t.Fatalf("failed to seed candidate: %v", err)
	}
	return candidate
}

func seedSession(t *testing.T, db *gorm.DB, session *model.AssessmentSession) *model.AssessmentSession {
	t.Helper()
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}

func reloadSession(t *testing.T, db *gorm.DB, id uint) *model.AssessmentSession {
	t.Helper()
	var session model.AssessmentSession
	if err := db.First(&session, id).Error; err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	return &session
}
