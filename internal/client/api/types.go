package api

import (
	"io"

	"github.com/sisimpur/sisimpur-cli/internal/client/models"
)

// Navigation actions accepted by the answer/advance endpoints.
const (
	ActionNext     = "next"
	ActionPrevious = "previous"
	ActionSubmit   = "submit"
	ActionSkip     = "skip"
)

// SignupRequest carries the fields of the signup form.
type SignupRequest struct {
	Email    string
	FullName string
	Password []byte
}

// SubmitDocumentRequest describes one document upload. Document is streamed
// into the multipart body; the caller keeps ownership of the reader.
type SubmitDocumentRequest struct {
	FileName     string
	Document     io.Reader
	NumQuestions int    // 0 lets the backend decide
	QuestionType string // MULTIPLECHOICE | SHORT
	Language     string // auto | en | bn
}

// SubmitResult is the backend's acknowledgement of a document submission.
type SubmitResult struct {
	JobID   int64  `json:"job_id"`
	QACount int    `json:"qa_count"`
	Message string `json:"message"`
}

// JobUpdate is one status snapshot of a Tracked Job. The populated extras
// depend on Status: QACount is set once completed, Reason once failed.
type JobUpdate struct {
	JobID        int64
	Status       models.JobStatus
	DocumentName string
	QACount      int
	Reason       string
}

// JobResults holds the generated Q&A pairs of a completed job.
type JobResults struct {
	JobID        int64             `json:"job_id"`
	DocumentName string            `json:"document_name"`
	QACount      int               `json:"qa_count"`
	Questions    []models.Question `json:"questions"`
	GeneratedAt  string            `json:"generated_at"`
}

// ExamState is the server-reported state of an exam session. When Terminal
// is true the session is over and only Status is meaningful.
type ExamState struct {
	Terminal       bool
	Status         string
	CurrentIndex   int
	TotalQuestions int
	Question       *models.Question
	ExistingAnswer string
	RemainingTime  float64
	CanGoBack      bool
	CanGoNext      bool
	IsLastQuestion bool
}

// FlashcardState is the server-reported state of a flashcard session.
type FlashcardState struct {
	Terminal           bool
	Status             string
	CurrentIndex       int
	TotalCards         int
	ProgressPercentage float64
	IsLastCard         bool
	Card               *models.Card
}

// AdvanceState is the navigation outcome of an answer/advance call.
// Completed means the session reached its terminal state.
type AdvanceState struct {
	CurrentIndex int  `json:"current_index"`
	Completed    bool `json:"completed"`
}
