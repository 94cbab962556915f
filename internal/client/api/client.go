// Package api implements the HTTP adapter for the Sisimpur backend's REST
// API. It attaches credentials, normalizes error responses, and maps wire
// shapes into client models. It never mutates session state: 401-class
// failures surface as ErrUnauthorized and the caller decides what to do.
package api

import (
	"context"

	"github.com/sisimpur/sisimpur-cli/internal/client/models"
)

// TokenSource supplies the current bearer token, or "" when signed out.
// The session store implements it.
type TokenSource interface {
	Token() string
}

// Client is the full surface this application consumes from the backend.
type Client interface {
	// Auth
	SendOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (string, *models.Principal, error)
	Login(ctx context.Context, email string, password []byte) (string, *models.Principal, error)
	Signup(ctx context.Context, req SignupRequest) (string, *models.Principal, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.Principal, error)

	// Document-processing jobs
	SubmitDocument(ctx context.Context, req SubmitDocumentRequest) (*SubmitResult, error)
	JobStatus(ctx context.Context, jobID int64) (*JobUpdate, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	JobResults(ctx context.Context, jobID int64) (*JobResults, error)
	DeleteJob(ctx context.Context, jobID int64) error

	// Exam sessions
	StartExam(ctx context.Context, jobID int64) (string, error)
	ExamSession(ctx context.Context, sessionID string) (*ExamState, error)
	AnswerQuestion(ctx context.Context, sessionID, answer, action string) (*AdvanceState, error)
	SubmitExam(ctx context.Context, sessionID string) error
	ExamResult(ctx context.Context, sessionID string) (*models.ExamResult, error)

	// Flashcard sessions
	StartFlashcards(ctx context.Context, jobID int64) (string, error)
	FlashcardSession(ctx context.Context, sessionID string) (*FlashcardState, error)
	AdvanceFlashcard(ctx context.Context, sessionID, action string) (*AdvanceState, error)

	// Leaderboard
	Leaderboard(ctx context.Context, filter string) (*models.Leaderboard, error)
}
