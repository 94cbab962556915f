package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sisimpur/sisimpur-cli/internal/client/services"
)

// Upload prompts for a document and generation options, submits the file,
// and offers to watch the processing job.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path to document (.pdf, .jpg, .png, .txt)", os.Stdout)
	if err != nil {
		return err
	}

	numQuestions, err := GetInt(a.reader, "Number of questions (0 = auto)", 0, os.Stdout)
	if err != nil {
		return err
	}

	questionType, err := getSimpleTextDefault(a.reader, "Question type (MULTIPLECHOICE/SHORT)", "MULTIPLECHOICE", os.Stdout)
	if err != nil {
		return err
	}

	language, err := getSimpleTextDefault(a.reader, "Language (auto/en/bn)", "auto", os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.quizService.Submit(ctx, services.SubmitOptions{
		FilePath:     path,
		NumQuestions: numQuestions,
		QuestionType: strings.ToUpper(questionType),
		Language:     language,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s (job %d)\n", res.Message, res.JobID)

	follow, err := getSimpleTextDefault(a.reader, "Watch progress now? (y/n)", "y", os.Stdout)
	if err != nil {
		return err
	}
	if strings.EqualFold(follow, "y") {
		return a.watchJob(ctx, res.JobID)
	}
	fmt.Printf("Run 'watch %d' to follow it later.\n", res.JobID)
	return nil
}
