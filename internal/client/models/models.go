// Package models defines the client-side view of the Sisimpur backend's
// entities: the authenticated principal, document-processing jobs, and the
// study artifacts (questions, flashcards, results, leaderboard rows).
//
// All state here is a cache of the latest server-reported snapshot; the
// backend remains authoritative.
package models

// Principal is the signed-in user's identity as known to the client.
// It exists only while a bearer token is held.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// JobStatus is the lifecycle state of a document-processing job.
// The server owns transitions; the client only observes them.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether no further transitions can occur.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Rank orders statuses along the pipeline so observers can reject
// regressions caused by stale poll responses. Unknown statuses rank
// below pending and are therefore never surfaced over a known one.
func (s JobStatus) Rank() int {
	switch s {
	case JobPending:
		return 1
	case JobProcessing:
		return 2
	case JobCompleted, JobFailed:
		return 3
	default:
		return 0
	}
}

// Job is a document-processing job owned by the backend.
type Job struct {
	ID           int64     `json:"id"`
	DocumentName string    `json:"document_name"`
	Status       JobStatus `json:"status"`
	Language     string    `json:"language"`
	QuestionType string    `json:"question_type"`
	NumQuestions int       `json:"num_questions"`
	CreatedAt    string    `json:"created_at"`
	CompletedAt  string    `json:"completed_at,omitempty"`
	QACount      int       `json:"qa_count,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Question is one generated Q&A pair. Options is populated only for
// multiple-choice questions.
type Question struct {
	ID            int64    `json:"id"`
	Question      string   `json:"question"`
	QuestionType  string   `json:"question_type"`
	Options       []string `json:"options,omitempty"`
	Answer        string   `json:"answer,omitempty"`
	CorrectOption string   `json:"correct_option,omitempty"`
}

// Card is one flashcard: the question face and the answer face.
type Card struct {
	ID           int64  `json:"id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	QuestionType string `json:"question_type"`
}

// AnswerReview is one graded answer in an exam result.
type AnswerReview struct {
	QuestionIndex int    `json:"question_index"`
	Question      string `json:"question"`
	QuestionType  string `json:"question_type"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// ShortAnswerEvaluation carries the rubric scores the backend's grader
// produced for one short answer.
type ShortAnswerEvaluation struct {
	QuestionIndex     int     `json:"question_index"`
	Score             float64 `json:"score"`
	MaxScore          float64 `json:"max_score"`
	Feedback          string  `json:"feedback"`
	AccuracyScore     float64 `json:"accuracy_score"`
	CompletenessScore float64 `json:"completeness_score"`
	ClarityScore      float64 `json:"clarity_score"`
}

// ExamResult is the final scorecard of a completed exam session.
type ExamResult struct {
	SessionID              string                  `json:"session_id"`
	Status                 string                  `json:"status"`
	TotalQuestions         int                     `json:"total_questions"`
	AnsweredQuestions      int                     `json:"answered_questions"`
	CorrectAnswers         int                     `json:"correct_answers"`
	IncorrectAnswers       int                     `json:"incorrect_answers"`
	PercentageScore        float64                 `json:"percentage_score"`
	Answers                []AnswerReview          `json:"answers"`
	ShortAnswerEvaluations []ShortAnswerEvaluation `json:"short_answer_evaluations"`
}

// LeaderboardEntry is one row of the top-50 leaderboard.
type LeaderboardEntry struct {
	Rank              int     `json:"rank"`
	Username          string  `json:"username"`
	FullName          string  `json:"full_name"`
	TotalScore        int     `json:"total_score"`
	TotalExams        int     `json:"total_exams"`
	AvgPercentage     float64 `json:"avg_percentage"`
	TotalCreditPoints int     `json:"total_credit_points"`
	IsCurrentUser     bool    `json:"is_current_user"`
}

// Leaderboard is the full leaderboard response, including the requesting
// user's own rank (nil when they have no completed exams in the window).
type Leaderboard struct {
	Entries         []LeaderboardEntry `json:"leaderboard"`
	CurrentUserRank *int               `json:"current_user_rank"`
	Filter          string             `json:"filter"`
}
