package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/walker"
)

// Cards runs an interactive flashcard session over a completed job's
// questions. The answer face stays hidden until the card is flipped; the
// flip is purely local and resets on every card.
func (a *App) Cards(ctx context.Context, arg string) error {
	jobID, err := a.promptedID(arg, "Enter job id to study flashcards for")
	if err != nil {
		return err
	}

	s, err := a.studyService.StartFlashcards(ctx, jobID)
	if err != nil {
		return err
	}

	snap := s.Current()
	for {
		if snap.Terminal {
			fmt.Printf("This flashcard session is already %s.\n", snap.Status)
			return nil
		}

		st, ok := snap.Item.(*api.FlashcardState)
		if !ok || st.Card == nil {
			return fmt.Errorf("unexpected session state at card %d", snap.Index+1)
		}

		fmt.Printf("\nCard %d of %d (%.0f%% done)\n", st.CurrentIndex+1, st.TotalCards, st.ProgressPercentage)
		fmt.Printf("Q: %s\n", st.Card.Question)

		flipped := false
		var action string
	prompt:
		for {
			input, err := getSimpleText(a.reader, "f=flip n=next s=skip q=quit", os.Stdout)
			if err != nil {
				return err
			}
			switch strings.ToLower(input) {
			case "f":
				if !flipped {
					fmt.Printf("A: %s\n", st.Card.Answer)
					flipped = true
				}
			case "n":
				action = api.ActionNext
				break prompt
			case "s":
				action = api.ActionSkip
				break prompt
			case "q":
				fmt.Println("Leaving the deck.")
				return nil
			default:
				fmt.Println("Unknown input:", input)
			}
		}

		res, err := s.Advance(ctx, walker.Advance{Action: action})
		if err != nil {
			return err
		}
		if res.Completed {
			fmt.Println("Deck finished, well done!")
			return nil
		}

		snap, err = s.Fetch(ctx)
		if err != nil {
			return err
		}
	}
}
