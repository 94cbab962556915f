package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/common"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

// HTTPClient is the Client implementation over net/http. A cookie jar holds
// the backend's CSRF cookie so its value can be mirrored into the CSRF header
// on state-changing requests.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host required", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout, Jar: jar},
		tokens:  tokens,
		log:     log,
	}, nil
}

// do performs one request-response round trip and decodes the JSON body into
// out (skipped when out is nil). Transport failures map to ErrUnavailable,
// 401/403 to ErrUnauthorized, and other error statuses to *APIError carrying
// the server's message.
func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+tok)
	}
	if method != http.MethodGet {
		if csrf := c.csrfToken(req.URL); csrf != "" {
			req.Header.Set(common.CSRFHeaderName, csrf)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return rejection(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

// csrfToken returns the CSRF cookie value previously set by the backend,
// or "" when none is held.
func (c *HTTPClient) csrfToken(u *url.URL) string {
	for _, ck := range c.hc.Jar.Cookies(u) {
		if ck.Name == common.CSRFCookieName {
			return ck.Value
		}
	}
	return ""
}

// rejection converts a structured error body into an APIError. The backend
// uses both "error" and "message" fields depending on the endpoint.
func rejection(code int, data []byte) error {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &env)

	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &APIError{StatusCode: code, Message: msg}
}

// envelope is the common {success, message|error, token?, user?} auth shape.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Token   string            `json:"token"`
	User    *models.Principal `json:"user"`
}

// reject turns a success=false envelope into an APIError, preferring the
// server's message and falling back to the given default.
func (e *envelope) reject(fallback string) error {
	msg := e.Error
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = fallback
	}
	return &APIError{Message: msg}
}

/*
 * Auth
 */

func (c *HTTPClient) SendOTP(ctx context.Context, email string) (string, error) {
	var env envelope
	if err := c.postJSON(ctx, "/auth/send-otp", map[string]string{"email": email}, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.reject("could not send OTP")
	}
	return env.Message, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string) (string, *models.Principal, error) {
	var env envelope
	body := map[string]string{"email": email, "otp": code}
	if err := c.postJSON(ctx, "/auth/verify-otp", body, &env); err != nil {
		return "", nil, err
	}
	if !env.Success || env.Token == "" {
		return "", nil, env.reject("Invalid OTP")
	}
	return env.Token, env.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, *models.Principal, error) {
	var env envelope
	body := map[string]string{"email": email, "password": string(password)}
	if err := c.postJSON(ctx, "/auth/login", body, &env); err != nil {
		return "", nil, err
	}
	if !env.Success || env.Token == "" {
		return "", nil, env.reject("invalid credentials")
	}
	return env.Token, env.User, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (string, *models.Principal, error) {
	var env envelope
	body := map[string]string{
		"email":     req.Email,
		"full_name": req.FullName,
		"password":  string(req.Password),
	}
	if err := c.postJSON(ctx, "/auth/signup", body, &env); err != nil {
		return "", nil, err
	}
	if !env.Success || env.Token == "" {
		return "", nil, env.reject("signup failed")
	}
	return env.Token, env.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout", nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Principal, error) {
	var env envelope
	if err := c.getJSON(ctx, "/auth/me", &env); err != nil {
		return nil, err
	}
	if !env.Success || env.User == nil {
		return nil, ErrUnauthorized
	}
	return env.User, nil
}

/*
 * Document-processing jobs
 */

func (c *HTTPClient) SubmitDocument(ctx context.Context, req SubmitDocumentRequest) (*SubmitResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("document", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(fw, req.Document); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if req.NumQuestions > 0 {
		_ = w.WriteField("num_questions", strconv.Itoa(req.NumQuestions))
	}
	if req.QuestionType != "" {
		_ = w.WriteField("question_type", req.QuestionType)
	}
	if req.Language != "" {
		_ = w.WriteField("language", req.Language)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	var out struct {
		SubmitResult
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "/brain/process-document", w.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{Message: orDefault(out.Error, "document processing failed")}
	}
	res := out.SubmitResult
	return &res, nil
}

func (c *HTTPClient) JobStatus(ctx context.Context, jobID int64) (*JobUpdate, error) {
	var out struct {
		JobID        int64            `json:"job_id"`
		Status       models.JobStatus `json:"status"`
		DocumentName string           `json:"document_name"`
		QACount      int              `json:"qa_count"`
		ErrorMessage string           `json:"error_message"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/brain/jobs/%d/status", jobID), &out); err != nil {
		return nil, err
	}
	return &JobUpdate{
		JobID:        out.JobID,
		Status:       out.Status,
		DocumentName: out.DocumentName,
		QACount:      out.QACount,
		Reason:       out.ErrorMessage,
	}, nil
}

func (c *HTTPClient) ListJobs(ctx context.Context) ([]models.Job, error) {
	var out struct {
		Success bool         `json:"success"`
		Error   string       `json:"error"`
		Jobs    []models.Job `json:"jobs"`
	}
	if err := c.getJSON(ctx, "/brain/jobs", &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{Message: orDefault(out.Error, "could not list jobs")}
	}
	return out.Jobs, nil
}

func (c *HTTPClient) JobResults(ctx context.Context, jobID int64) (*JobResults, error) {
	var out struct {
		JobResults
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/brain/jobs/%d/results", jobID), &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{Message: orDefault(out.Error, "results not available")}
	}
	res := out.JobResults
	return &res, nil
}

func (c *HTTPClient) DeleteJob(ctx context.Context, jobID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/brain/jobs/%d", jobID), "", nil, nil)
}

/*
 * Exam sessions
 */

func (c *HTTPClient) StartExam(ctx context.Context, jobID int64) (string, error) {
	return c.startSession(ctx, fmt.Sprintf("/exam/start/%d", jobID))
}

func (c *HTTPClient) ExamSession(ctx context.Context, sessionID string) (*ExamState, error) {
	var env struct {
		Success        bool             `json:"success"`
		Error          string           `json:"error"`
		Status         string           `json:"status"`
		SessionStatus  string           `json:"session_status"`
		CurrentIndex   int              `json:"current_index"`
		TotalQuestions int              `json:"total_questions"`
		Question       *models.Question `json:"question"`
		ExistingAnswer string           `json:"existing_answer"`
		RemainingTime  float64          `json:"remaining_time"`
		CanGoBack      bool             `json:"can_go_back"`
		CanGoNext      bool             `json:"can_go_next"`
		IsLastQuestion bool             `json:"is_last_question"`
	}
	if err := c.getJSON(ctx, "/exam/session/"+url.PathEscape(sessionID), &env); err != nil {
		return nil, err
	}
	if !env.Success {
		// Finished sessions come back as success=false with the session
		// status attached; that is a terminal state, not a failure.
		if env.Status != "" || env.Error == "All questions answered" {
			return &ExamState{Terminal: true, Status: orDefault(env.Status, "completed")}, nil
		}
		return nil, &APIError{Message: orDefault(env.Error, "exam session unavailable")}
	}
	return &ExamState{
		Status:         env.SessionStatus,
		CurrentIndex:   env.CurrentIndex,
		TotalQuestions: env.TotalQuestions,
		Question:       env.Question,
		ExistingAnswer: env.ExistingAnswer,
		RemainingTime:  env.RemainingTime,
		CanGoBack:      env.CanGoBack,
		CanGoNext:      env.CanGoNext,
		IsLastQuestion: env.IsLastQuestion,
	}, nil
}

func (c *HTTPClient) AnswerQuestion(ctx context.Context, sessionID, answer, action string) (*AdvanceState, error) {
	body := map[string]string{"answer": answer, "action": action}
	return c.advance(ctx, "/exam/answer/"+url.PathEscape(sessionID), body)
}

func (c *HTTPClient) SubmitExam(ctx context.Context, sessionID string) error {
	var env envelope
	if err := c.postJSON(ctx, "/exam/submit/"+url.PathEscape(sessionID), nil, &env); err != nil {
		return err
	}
	if !env.Success {
		return env.reject("could not submit exam")
	}
	return nil
}

func (c *HTTPClient) ExamResult(ctx context.Context, sessionID string) (*models.ExamResult, error) {
	var out struct {
		models.ExamResult
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.getJSON(ctx, "/exam/result/"+url.PathEscape(sessionID), &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{Message: orDefault(out.Error, "result not available")}
	}
	res := out.ExamResult
	return &res, nil
}

/*
 * Flashcard sessions
 */

func (c *HTTPClient) StartFlashcards(ctx context.Context, jobID int64) (string, error) {
	return c.startSession(ctx, fmt.Sprintf("/flashcards/start/%d", jobID))
}

func (c *HTTPClient) FlashcardSession(ctx context.Context, sessionID string) (*FlashcardState, error) {
	var env struct {
		Success            bool         `json:"success"`
		Error              string       `json:"error"`
		Status             string       `json:"status"`
		CurrentIndex       int          `json:"current_index"`
		TotalCards         int          `json:"total_cards"`
		ProgressPercentage float64      `json:"progress_percentage"`
		IsLastCard         bool         `json:"is_last_card"`
		Card               *models.Card `json:"card"`
	}
	if err := c.getJSON(ctx, "/flashcards/session/"+url.PathEscape(sessionID), &env); err != nil {
		return nil, err
	}
	if !env.Success {
		if env.Status != "" || env.Error == "All cards viewed" {
			return &FlashcardState{Terminal: true, Status: orDefault(env.Status, "completed")}, nil
		}
		return nil, &APIError{Message: orDefault(env.Error, "flashcard session unavailable")}
	}
	return &FlashcardState{
		Status:             "active",
		CurrentIndex:       env.CurrentIndex,
		TotalCards:         env.TotalCards,
		ProgressPercentage: env.ProgressPercentage,
		IsLastCard:         env.IsLastCard,
		Card:               env.Card,
	}, nil
}

func (c *HTTPClient) AdvanceFlashcard(ctx context.Context, sessionID, action string) (*AdvanceState, error) {
	return c.advance(ctx, "/flashcards/advance/"+url.PathEscape(sessionID), map[string]string{"action": action})
}

/*
 * Leaderboard
 */

func (c *HTTPClient) Leaderboard(ctx context.Context, filter string) (*models.Leaderboard, error) {
	path := "/leaderboard"
	if filter != "" {
		path += "?filter=" + url.QueryEscape(filter)
	}
	var out struct {
		models.Leaderboard
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{Message: orDefault(out.Error, "leaderboard unavailable")}
	}
	res := out.Leaderboard
	return &res, nil
}

// startSession POSTs to a session-start endpoint and returns the new id.
func (c *HTTPClient) startSession(ctx context.Context, path string) (string, error) {
	var env struct {
		Success   bool   `json:"success"`
		Error     string `json:"error"`
		SessionID string `json:"session_id"`
	}
	if err := c.postJSON(ctx, path, nil, &env); err != nil {
		return "", err
	}
	if !env.Success || env.SessionID == "" {
		return "", &APIError{Message: orDefault(env.Error, "could not start session")}
	}
	return env.SessionID, nil
}

// advance POSTs a navigation payload and returns the new cursor state.
func (c *HTTPClient) advance(ctx context.Context, path string, body map[string]string) (*AdvanceState, error) {
	var env struct {
		AdvanceState
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, path, body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Message: orDefault(env.Error, "could not advance session")}
	}
	st := env.AdvanceState
	return &st, nil
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
