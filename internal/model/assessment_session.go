package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusEnded     = "ended"
)

// Turn is one question/answer pair of the interview transcript. Answer stays
// empty until the candidate replies on the following request.
type Turn struct {
	TurnNo   int    `json:"questionNo"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Transcript is the ordered interview log, persisted as a JSON column.
type Transcript []Turn

func (t Transcript) Value() (driver.Value, error) {
	if t == nil {
		t = Transcript{}
	}
	return json.Marshal(t)
}

func (t *Transcript) Scan(value interface{}) error {
	if value == nil {
		*t = Transcript{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported transcript column type %T", value)
	}

	var turns []Turn
	if err := json.Unmarshal(raw, &turns); err != nil {
		return fmt.Errorf("malformed transcript: %w", err)
	}
	for i, turn := range turns {
		if turn.TurnNo <= 0 {
			return fmt.Errorf("malformed transcript: turn %d has question number %d", i, turn.TurnNo)
		}
	}
	*t = turns
	return nil
}

// LastAnswered reports whether the newest turn already carries an answer.
func (t Transcript) LastAnswered() bool {
	if len(t) == 0 {
		return false
	}
	return t[len(t)-1].Answer != ""
}

// NonEmptyAnswers returns the candidate replies in transcript order.
func (t Transcript) NonEmptyAnswers() []string {
	var answers []string
	for _, turn := range t {
		if turn.Answer != "" {
			answers = append(answers, turn.Answer)
		}
	}
	return answers
}

// AssessmentSession is one timed interview attempt. The session services always
// operate on the most recently created row for a
// (candidate_id, job_id, session_id) triple, resolved by created_at with the
// primary key as tie-break.
type AssessmentSession struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CandidateID uint       `json:"candidate_id" gorm:"not null;index:idx_session_triple"`
	JobID       uint       `json:"job_id" gorm:"not null;index:idx_session_triple"`
	SessionID   string     `json:"session_id" gorm:"size:36;not null;index:idx_session_triple"`
	Transcript  Transcript `json:"question_answer" gorm:"type:json"`
	Status      string     `json:"status" gorm:"size:16;not null;default:'active'"`
	Score       *int       `json:"score,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// Elapsed is the time the session has been running relative to now.
func (s *AssessmentSession) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}
