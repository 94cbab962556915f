package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sisimpur/sisimpur-cli/internal/client/models"
)

// promptedID resolves a job id from the command argument, prompting when the
// argument is missing.
func (a *App) promptedID(arg, prompt string) (int64, error) {
	if arg == "" {
		v, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return 0, err
		}
		arg = v
	}
	return parseID(arg)
}

// Jobs lists the user's document-processing jobs.
func (a *App) Jobs(ctx context.Context) error {
	jobs, err := a.quizService.List(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs yet. Use 'upload' to submit a document.")
		return nil
	}

	for _, j := range jobs {
		line := fmt.Sprintf("%4d  %-10s  %s", j.ID, j.Status, j.DocumentName)
		switch j.Status {
		case models.JobCompleted:
			line += fmt.Sprintf("  (%d questions)", j.QACount)
		case models.JobFailed:
			line += fmt.Sprintf("  (%s)", j.ErrorMessage)
		}
		fmt.Println(line)
	}
	return nil
}

// WatchJob follows a job's status until it reaches a terminal state.
func (a *App) WatchJob(ctx context.Context, arg string) error {
	jobID, err := a.promptedID(arg, "Enter job id to watch")
	if err != nil {
		return err
	}
	return a.watchJob(ctx, jobID)
}

func (a *App) watchJob(ctx context.Context, jobID int64) error {
	w := a.quizService.Watch(ctx, jobID)

	var last models.JobStatus
	for u := range w.Updates() {
		if u.Status == last {
			continue
		}
		last = u.Status
		fmt.Printf("Job %d: %s\n", u.JobID, u.Status)
	}

	final, err := w.Wait()
	if err != nil {
		return err
	}

	switch final.Status {
	case models.JobCompleted:
		fmt.Printf("Generated %d questions. Run 'exam %d' or 'cards %d' to study.\n",
			final.QACount, final.JobID, final.JobID)
	case models.JobFailed:
		fmt.Printf("Processing failed: %s\n", final.Reason)
	}
	return nil
}

// Results shows the generated questions of a completed job.
func (a *App) Results(ctx context.Context, arg string) error {
	jobID, err := a.promptedID(arg, "Enter job id")
	if err != nil {
		return err
	}

	res, err := a.quizService.Results(ctx, jobID)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d questions\n", res.DocumentName, res.QACount)
	for i, q := range res.Questions {
		fmt.Printf("\n%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Printf("   %c) %s\n", 'A'+j, opt)
		}
		if q.Answer != "" {
			fmt.Printf("   Answer: %s\n", q.Answer)
		}
	}
	return nil
}

// DeleteJob removes a job and its generated questions.
func (a *App) DeleteJob(ctx context.Context, arg string) error {
	jobID, err := a.promptedID(arg, "Enter job id to delete")
	if err != nil {
		return err
	}

	if err := a.quizService.Delete(ctx, jobID); err != nil {
		return err
	}
	fmt.Printf("Job %d deleted\n", jobID)
	return nil
}
