package cli

import (
	"context"
	"fmt"
)

// Top shows the leaderboard for the given time window (all by default).
func (a *App) Top(ctx context.Context, arg string) error {
	lb, err := a.studyService.Leaderboard(ctx, arg)
	if err != nil {
		return err
	}

	if len(lb.Entries) == 0 {
		fmt.Println("The leaderboard is empty.")
		return nil
	}

	fmt.Printf("Leaderboard (%s)\n", lb.Filter)
	for _, e := range lb.Entries {
		marker := "  "
		if e.IsCurrentUser {
			marker = "* "
		}
		fmt.Printf("%s%3d. %-20s %5d pts  %d exams  %.1f%% avg\n",
			marker, e.Rank, e.Username, e.TotalScore, e.TotalExams, e.AvgPercentage)
	}

	if lb.CurrentUserRank != nil {
		fmt.Printf("Your rank: %d\n", *lb.CurrentUserRank)
	} else {
		fmt.Println("Complete an exam to enter the leaderboard.")
	}
	return nil
}
