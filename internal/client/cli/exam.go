package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/walker"
)

// Exam runs an interactive exam session over a completed job's questions.
// The server owns the cursor: every navigation step round-trips through it.
func (a *App) Exam(ctx context.Context, arg string) error {
	jobID, err := a.promptedID(arg, "Enter job id to take an exam on")
	if err != nil {
		return err
	}

	s, err := a.studyService.StartExam(ctx, jobID)
	if err != nil {
		return err
	}

	snap := s.Current()
	for {
		if snap.Terminal {
			fmt.Printf("This exam session is already %s.\n", snap.Status)
			return nil
		}

		st, ok := snap.Item.(*api.ExamState)
		if !ok || st.Question == nil {
			return fmt.Errorf("unexpected session state at question %d", snap.Index+1)
		}
		a.printQuestion(st)

		input, err := getSimpleText(a.reader, "Answer, or: n=next p=previous s=submit q=quit", os.Stdout)
		if err != nil {
			return err
		}

		var adv walker.Advance
		switch strings.ToLower(input) {
		case "q":
			confirm, err := getSimpleTextDefault(a.reader, "Submit recorded answers before leaving? (y/n)", "n", os.Stdout)
			if err != nil {
				return err
			}
			if strings.EqualFold(confirm, "y") {
				if err := a.studyService.SubmitExam(ctx, s.ID()); err != nil {
					return err
				}
				fmt.Println("Exam submitted.")
				return a.showResult(ctx, s.ID())
			}
			fmt.Printf("Leaving the exam. Resume with 'exam' or check 'result %s' later.\n", s.ID())
			return nil
		case "n":
			adv = walker.Advance{Action: api.ActionNext}
		case "p":
			if !st.CanGoBack {
				fmt.Println("Cannot go back from here.")
				continue
			}
			adv = walker.Advance{Action: api.ActionPrevious}
		case "s":
			adv = walker.Advance{Action: api.ActionSubmit}
		default:
			action := api.ActionNext
			if st.IsLastQuestion {
				action = api.ActionSubmit
			}
			adv = walker.Advance{Answer: input, Action: action}
		}

		res, err := s.Advance(ctx, adv)
		if err != nil {
			return err
		}
		if res.Completed {
			fmt.Println("Exam submitted.")
			return a.showResult(ctx, s.ID())
		}

		snap, err = s.Fetch(ctx)
		if err != nil {
			return err
		}
	}
}

func (a *App) printQuestion(st *api.ExamState) {
	fmt.Printf("\nQuestion %d of %d", st.CurrentIndex+1, st.TotalQuestions)
	if st.RemainingTime > 0 {
		fmt.Printf("  (%.0fs left)", st.RemainingTime)
	}
	fmt.Printf("\n%s\n", st.Question.Question)
	for i, opt := range st.Question.Options {
		fmt.Printf("  %c) %s\n", 'A'+i, opt)
	}
	if st.ExistingAnswer != "" {
		fmt.Printf("  Current answer: %s\n", st.ExistingAnswer)
	}
}

// Result shows the scorecard of a submitted exam session.
func (a *App) Result(ctx context.Context, arg string) error {
	sessionID := strings.TrimSpace(arg)
	if sessionID == "" {
		v, err := getSimpleText(a.reader, "Enter exam session id", os.Stdout)
		if err != nil {
			return err
		}
		sessionID = v
	}
	return a.showResult(ctx, sessionID)
}

func (a *App) showResult(ctx context.Context, sessionID string) error {
	r, err := a.studyService.ExamResult(ctx, sessionID)
	if err != nil {
		return err
	}

	fmt.Printf("\nScore: %.1f%%  (%d/%d correct, %d answered)\n",
		r.PercentageScore, r.CorrectAnswers, r.TotalQuestions, r.AnsweredQuestions)

	for _, ans := range r.Answers {
		mark := "✗"
		if ans.IsCorrect {
			mark = "✓"
		}
		fmt.Printf("%s %d. %s\n", mark, ans.QuestionIndex+1, ans.Question)
		if !ans.IsCorrect {
			fmt.Printf("    yours: %s, correct: %s\n", ans.UserAnswer, ans.CorrectAnswer)
		}
	}

	for _, ev := range r.ShortAnswerEvaluations {
		fmt.Printf("%d. %.1f/%.1f: %s\n", ev.QuestionIndex+1, ev.Score, ev.MaxScore, ev.Feedback)
	}
	return nil
}
