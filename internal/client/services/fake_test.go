package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

// fakeClient implements the subset of api.Client the services exercise,
// recording inputs so tests can assert on what was sent. Unset methods fall
// through to the embedded nil interface and panic, which flags an unexpected
// call immediately.
type fakeClient struct {
	api.Client

	sendOTP   func(ctx context.Context, email string) (string, error)
	verifyOTP func(ctx context.Context, email, code string) (string, *models.Principal, error)
	login     func(ctx context.Context, email string, password []byte) (string, *models.Principal, error)
	signup    func(ctx context.Context, req api.SignupRequest) (string, *models.Principal, error)
	logout    func(ctx context.Context) error

	submitDocument func(ctx context.Context, req api.SubmitDocumentRequest) (*api.SubmitResult, error)

	startExam        func(ctx context.Context, jobID int64) (string, error)
	examSession      func(ctx context.Context, sessionID string) (*api.ExamState, error)
	answerQuestion   func(ctx context.Context, sessionID, answer, action string) (*api.AdvanceState, error)
	startFlashcards  func(ctx context.Context, jobID int64) (string, error)
	flashcardSession func(ctx context.Context, sessionID string) (*api.FlashcardState, error)
	advanceFlashcard func(ctx context.Context, sessionID, action string) (*api.AdvanceState, error)
	leaderboard      func(ctx context.Context, filter string) (*models.Leaderboard, error)
}

func (f *fakeClient) SendOTP(ctx context.Context, email string) (string, error) {
	return f.sendOTP(ctx, email)
}

func (f *fakeClient) VerifyOTP(ctx context.Context, email, code string) (string, *models.Principal, error) {
	return f.verifyOTP(ctx, email, code)
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (string, *models.Principal, error) {
	return f.login(ctx, email, password)
}

func (f *fakeClient) Signup(ctx context.Context, req api.SignupRequest) (string, *models.Principal, error) {
	return f.signup(ctx, req)
}

func (f *fakeClient) Logout(ctx context.Context) error {
	return f.logout(ctx)
}

func (f *fakeClient) SubmitDocument(ctx context.Context, req api.SubmitDocumentRequest) (*api.SubmitResult, error) {
	return f.submitDocument(ctx, req)
}

func (f *fakeClient) StartExam(ctx context.Context, jobID int64) (string, error) {
	return f.startExam(ctx, jobID)
}

func (f *fakeClient) ExamSession(ctx context.Context, sessionID string) (*api.ExamState, error) {
	return f.examSession(ctx, sessionID)
}

func (f *fakeClient) AnswerQuestion(ctx context.Context, sessionID, answer, action string) (*api.AdvanceState, error) {
	return f.answerQuestion(ctx, sessionID, answer, action)
}

func (f *fakeClient) StartFlashcards(ctx context.Context, jobID int64) (string, error) {
	return f.startFlashcards(ctx, jobID)
}

func (f *fakeClient) FlashcardSession(ctx context.Context, sessionID string) (*api.FlashcardState, error) {
	return f.flashcardSession(ctx, sessionID)
}

func (f *fakeClient) AdvanceFlashcard(ctx context.Context, sessionID, action string) (*api.AdvanceState, error) {
	return f.advanceFlashcard(ctx, sessionID, action)
}

func (f *fakeClient) Leaderboard(ctx context.Context, filter string) (*models.Leaderboard, error) {
	return f.leaderboard(ctx, filter)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
