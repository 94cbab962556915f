package services

import (
	"context"
	"fmt"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/client/walker"
	"github.com/sisimpur/sisimpur-cli/internal/common"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

// examOps adapts the exam endpoints to the walker protocol. The Snapshot
// item holds the full *api.ExamState.
type examOps struct {
	client api.Client
}

func (o examOps) Start(ctx context.Context, jobID int64) (string, error) {
	return o.client.StartExam(ctx, jobID)
}

func (o examOps) Current(ctx context.Context, sessionID string) (*walker.Snapshot, error) {
	st, err := o.client.ExamSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &walker.Snapshot{
		Index:    st.CurrentIndex,
		Total:    st.TotalQuestions,
		Terminal: st.Terminal,
		Status:   st.Status,
		Item:     st,
	}, nil
}

func (o examOps) Advance(ctx context.Context, sessionID string, adv walker.Advance) (*walker.Result, error) {
	res, err := o.client.AnswerQuestion(ctx, sessionID, adv.Answer, adv.Action)
	if err != nil {
		return nil, err
	}
	return &walker.Result{Index: res.CurrentIndex, Completed: res.Completed}, nil
}

// flashcardOps adapts the flashcard endpoints to the walker protocol. The
// Snapshot item holds the full *api.FlashcardState. Flashcards carry no
// answer, only the action.
type flashcardOps struct {
	client api.Client
}

func (o flashcardOps) Start(ctx context.Context, jobID int64) (string, error) {
	return o.client.StartFlashcards(ctx, jobID)
}

func (o flashcardOps) Current(ctx context.Context, sessionID string) (*walker.Snapshot, error) {
	st, err := o.client.FlashcardSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &walker.Snapshot{
		Index:    st.CurrentIndex,
		Total:    st.TotalCards,
		Terminal: st.Terminal,
		Status:   st.Status,
		Item:     st,
	}, nil
}

func (o flashcardOps) Advance(ctx context.Context, sessionID string, adv walker.Advance) (*walker.Result, error) {
	res, err := o.client.AdvanceFlashcard(ctx, sessionID, adv.Action)
	if err != nil {
		return nil, err
	}
	return &walker.Result{Index: res.CurrentIndex, Completed: res.Completed}, nil
}

// Leaderboard windows accepted by the backend.
var leaderboardFilters = map[string]struct{}{
	"all":   {},
	"week":  {},
	"month": {},
	"year":  {},
}

// StudyService runs exam and flashcard sessions over generated questions
// and reads scores back.
type StudyService interface {
	StartExam(ctx context.Context, jobID int64) (*walker.Session, error)
	StartFlashcards(ctx context.Context, jobID int64) (*walker.Session, error)
	SubmitExam(ctx context.Context, sessionID string) error
	ExamResult(ctx context.Context, sessionID string) (*models.ExamResult, error)
	Leaderboard(ctx context.Context, filter string) (*models.Leaderboard, error)
}

type studyService struct {
	client api.Client
	log    logging.Logger
}

// NewStudyService constructs a StudyService bound to the given API client.
func NewStudyService(client api.Client, log logging.Logger) StudyService {
	return &studyService{client: client, log: log}
}

// StartExam opens a timed exam session over a completed job's questions.
func (s *studyService) StartExam(ctx context.Context, jobID int64) (*walker.Session, error) {
	s.log.Info(ctx, "starting exam", "job_id", jobID)
	return walker.Start(ctx, examOps{s.client}, jobID)
}

// StartFlashcards opens a flashcard session over a completed job's questions.
func (s *studyService) StartFlashcards(ctx context.Context, jobID int64) (*walker.Session, error) {
	s.log.Info(ctx, "starting flashcards", "job_id", jobID)
	return walker.Start(ctx, flashcardOps{s.client}, jobID)
}

// SubmitExam force-submits a session regardless of cursor position, grading
// whatever answers were recorded. Used when the learner quits mid-exam.
func (s *studyService) SubmitExam(ctx context.Context, sessionID string) error {
	return s.client.SubmitExam(ctx, sessionID)
}

// ExamResult fetches the scorecard of a submitted exam session.
func (s *studyService) ExamResult(ctx context.Context, sessionID string) (*models.ExamResult, error) {
	return s.client.ExamResult(ctx, sessionID)
}

// Leaderboard fetches the ranking for the given time window. An empty
// filter means all time.
func (s *studyService) Leaderboard(ctx context.Context, filter string) (*models.Leaderboard, error) {
	if filter == "" {
		filter = "all"
	}
	if _, ok := leaderboardFilters[filter]; !ok {
		return nil, fmt.Errorf("%w: unknown leaderboard filter %q", common.ErrorValidation, filter)
	}
	return s.client.Leaderboard(ctx, filter)
}
