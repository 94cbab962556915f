package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/client/poller"
	"github.com/sisimpur/sisimpur-cli/internal/common"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

// Document types the backend's extractors can handle.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".txt":  {},
}

const maxRequestedQuestions = 50

// SubmitOptions describes one document upload.
type SubmitOptions struct {
	FilePath     string
	NumQuestions int    // 0 lets the backend decide
	QuestionType string // MULTIPLECHOICE | SHORT, empty for default
	Language     string // auto | en | bn, empty for auto
}

// QuizService manages document-processing jobs: submission, tracking and
// retrieval of the generated questions.
type QuizService interface {
	Submit(ctx context.Context, opts SubmitOptions) (*api.SubmitResult, error)
	List(ctx context.Context) ([]models.Job, error)
	Status(ctx context.Context, jobID int64) (*api.JobUpdate, error)
	Results(ctx context.Context, jobID int64) (*api.JobResults, error)
	Delete(ctx context.Context, jobID int64) error
	Watch(ctx context.Context, jobID int64) *poller.Watch
}

type quizService struct {
	client api.Client
	poll   *poller.Poller
	log    logging.Logger
}

// NewQuizService constructs a QuizService bound to the given API client and
// status poller.
func NewQuizService(client api.Client, poll *poller.Poller, log logging.Logger) QuizService {
	return &quizService{client: client, poll: poll, log: log}
}

// Submit validates and uploads a document for question generation. The
// returned job id identifies the processing job to track.
func (s *quizService) Submit(ctx context.Context, opts SubmitOptions) (*api.SubmitResult, error) {
	if strings.TrimSpace(opts.FilePath) == "" {
		return nil, fmt.Errorf("%w: file path is required", common.ErrorValidation)
	}

	ext := strings.ToLower(filepath.Ext(opts.FilePath))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: unsupported document type %q", common.ErrorValidation, ext)
	}

	if opts.NumQuestions < 0 || opts.NumQuestions > maxRequestedQuestions {
		return nil, fmt.Errorf("%w: question count must be between 0 and %d",
			common.ErrorValidation, maxRequestedQuestions)
	}

	f, err := os.Open(opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	s.log.Info(ctx, "submitting document",
		"file", filepath.Base(opts.FilePath), "questions", opts.NumQuestions)

	return s.client.SubmitDocument(ctx, api.SubmitDocumentRequest{
		FileName:     filepath.Base(opts.FilePath),
		Document:     f,
		NumQuestions: opts.NumQuestions,
		QuestionType: opts.QuestionType,
		Language:     opts.Language,
	})
}

// List returns the user's jobs, newest first as reported by the backend.
func (s *quizService) List(ctx context.Context) ([]models.Job, error) {
	return s.client.ListJobs(ctx)
}

// Status fetches one status snapshot without starting a watch.
func (s *quizService) Status(ctx context.Context, jobID int64) (*api.JobUpdate, error) {
	return s.client.JobStatus(ctx, jobID)
}

// Results fetches the generated questions of a completed job.
func (s *quizService) Results(ctx context.Context, jobID int64) (*api.JobResults, error) {
	return s.client.JobResults(ctx, jobID)
}

// Delete removes a job and its generated questions.
func (s *quizService) Delete(ctx context.Context, jobID int64) error {
	return s.client.DeleteJob(ctx, jobID)
}

// Watch polls the job until it finishes or the context is cancelled.
func (s *quizService) Watch(ctx context.Context, jobID int64) *poller.Watch {
	return s.poll.Watch(ctx, jobID)
}
