package models

import (
	"time"
)

// QuestionKind distinguishes the two question shapes the portal serves.
type QuestionKind string

const (
	KindChoice        QuestionKind = "choice"
	KindComputational QuestionKind = "computational"
)

// User represents a registered student account.
type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"firstname"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Topic is a subject-matter category that owns a bank of questions.
type Topic struct {
	ID      int          `json:"topic_id"`
	Name    string       `json:"topic_name"`
	Subject string       `json:"subject"`
	Kind    QuestionKind `json:"kind"`
}

// Question is one item in a topic's bank. CorrectOption and ExpectedAnswer
// are never serialized; the client grades nothing.
type Question struct {
	ID      int          `json:"id"`
	TopicID int          `json:"topic_id"`
	Prompt  string       `json:"question"`
	Kind    QuestionKind `json:"kind"`

	// Choice questions only.
	OptionA       string `json:"option_a,omitempty"`
	OptionB       string `json:"option_b,omitempty"`
	OptionC       string `json:"option_c,omitempty"`
	OptionD       string `json:"option_d,omitempty"`
	CorrectOption string `json:"-"`

	// Computational questions only.
	ExpectedAnswer string `json:"-"`
}

// ExamInstance is the set of questions drawn for one in-progress attempt.
// It lives only in the session store and is never persisted.
type ExamInstance struct {
	TopicID   int        `json:"topic_id"`
	Questions []Question `json:"questions"`
	DrawnAt   time.Time  `json:"drawn_at"`
}

// Assessment is the immutable record of one graded attempt.
type Assessment struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	TopicID        int       `json:"topic_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
	TopicName      string    `json:"topic_name,omitempty"` // filled on history reads
}

// WeakArea is the derived per-topic remediation signal. Not persisted.
type WeakArea struct {
	TopicID             int     `json:"topic_id"`
	TopicName           string  `json:"topic_name"`
	AverageScorePercent float64 `json:"average_score_percent"`
	Attempts            int     `json:"attempts"`
}

// RegisterRequest for creating a student account.
type RegisterRequest struct {
	FirstName       string `json:"firstname" form:"firstname" binding:"required"`
	Surname         string `json:"surname" form:"surname" binding:"required"`
	Email           string `json:"email" form:"email" binding:"required,email"`
	Password        string `json:"password" form:"password" binding:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" form:"confirmPassword" binding:"required,eqfield=Password"`
}

// LoginRequest for authenticating a student.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExamResponse is the drawn exam as shown to the client (answers stripped
// by the Question JSON tags).
type ExamResponse struct {
	TopicID   int        `json:"topic_id"`
	TopicName string     `json:"topic_name"`
	DrawnAt   time.Time  `json:"drawn_at"`
	Questions []Question `json:"questions"`
}

// SubmitRequest carries the answers keyed by question position. Keys are
// strings ("0", "1", ...) because JSON objects cannot have integer keys.
type SubmitRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// SubmitResponse reports the graded result of a submission.
type SubmitResponse struct {
	TopicID        int       `json:"topic_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	ScorePercent   int       `json:"score_percent"`
	CreatedAt      time.Time `json:"created_at"`
}

// SuggestionsResponse lists weak areas; Unavailable is set when the
// assessment history could not be read and the list degrades to empty.
type SuggestionsResponse struct {
	WeakAreas   []WeakArea `json:"weak_areas"`
	Unavailable bool       `json:"unavailable,omitempty"`
}
