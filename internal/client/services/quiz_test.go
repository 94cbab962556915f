package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/client/poller"
	"github.com/sisimpur/sisimpur-cli/internal/common"
)

func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newQuizService(f *fakeClient) QuizService {
	log := testLogger()
	return NewQuizService(f, poller.New(f, time.Millisecond, log), log)
}

func (f *fakeClient) JobStatus(ctx context.Context, jobID int64) (*api.JobUpdate, error) {
	return &api.JobUpdate{JobID: jobID, Status: models.JobCompleted, QACount: 5}, nil
}

func TestSubmit_UploadsDocument(t *testing.T) {
	path := writeTempDoc(t, "notes.pdf", "pdf-bytes")

	var got api.SubmitDocumentRequest
	var body []byte
	f := &fakeClient{submitDocument: func(ctx context.Context, req api.SubmitDocumentRequest) (*api.SubmitResult, error) {
		got = req
		var err error
		body, err = io.ReadAll(req.Document)
		require.NoError(t, err)
		return &api.SubmitResult{JobID: 42, Message: "Document is being processed"}, nil
	}}

	res, err := newQuizService(f).Submit(context.Background(), SubmitOptions{
		FilePath:     path,
		NumQuestions: 10,
		QuestionType: "MULTIPLECHOICE",
		Language:     "en",
	})
	require.NoError(t, err)
	require.EqualValues(t, 42, res.JobID)

	require.Equal(t, "notes.pdf", got.FileName)
	require.Equal(t, 10, got.NumQuestions)
	require.Equal(t, "MULTIPLECHOICE", got.QuestionType)
	require.Equal(t, "en", got.Language)
	require.Equal(t, []byte("pdf-bytes"), body)
}

func TestSubmit_RejectsUnsupportedExtension(t *testing.T) {
	path := writeTempDoc(t, "notes.docx", "x")

	_, err := newQuizService(&fakeClient{}).Submit(context.Background(), SubmitOptions{FilePath: path})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestSubmit_RejectsBadQuestionCount(t *testing.T) {
	path := writeTempDoc(t, "notes.txt", "x")
	svc := newQuizService(&fakeClient{})

	_, err := svc.Submit(context.Background(), SubmitOptions{FilePath: path, NumQuestions: -1})
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Submit(context.Background(), SubmitOptions{FilePath: path, NumQuestions: 51})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestSubmit_MissingFile(t *testing.T) {
	svc := newQuizService(&fakeClient{})

	_, err := svc.Submit(context.Background(), SubmitOptions{FilePath: ""})
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Submit(context.Background(), SubmitOptions{
		FilePath: filepath.Join(t.TempDir(), "absent.pdf"),
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrorValidation)
}

func TestWatch_RunsUntilTerminalStatus(t *testing.T) {
	svc := newQuizService(&fakeClient{})

	final, err := svc.Watch(context.Background(), 42).Wait()
	require.NoError(t, err)
	require.Equal(t, models.JobCompleted, final.Status)
	require.Equal(t, 5, final.QACount)
}
