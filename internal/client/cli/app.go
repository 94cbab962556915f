package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/config"
	"github.com/sisimpur/sisimpur-cli/internal/client/poller"
	"github.com/sisimpur/sisimpur-cli/internal/client/services"
	"github.com/sisimpur/sisimpur-cli/internal/client/session"
	"github.com/sisimpur/sisimpur-cli/internal/client/storage"
	"github.com/sisimpur/sisimpur-cli/internal/filex"
	"github.com/sisimpur/sisimpur-cli/internal/logging"

	_ "modernc.org/sqlite"
)

const dbFileName = "state.db"

type App struct {
	config       *config.Config
	log          logging.Logger
	store        *session.Store
	authService  services.AuthService
	quizService  services.QuizService
	studyService services.StudyService
	reader       *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dataDir := c.DataDir
	var err error
	if dataDir == "" {
		dataDir, err = filex.DefaultStateDir()
	} else {
		dataDir, err = filex.EnsureDir(dataDir)
	}
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, filepath.Join(dataDir, dbFileName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewStore(db, log)

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL, store, c.RequestTimeout, log)
	if err != nil {
		return nil, err
	}
	store.UseClient(apiClient)

	poll := poller.New(apiClient, c.PollInterval, log)

	return &App{
		config:       c,
		log:          log,
		store:        store,
		authService:  services.NewAuthService(apiClient, store, log),
		quizService:  services.NewQuizService(apiClient, poll, log),
		studyService: services.NewStudyService(apiClient, log),
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

// Run revalidates any persisted session and enters the REPL. It blocks until
// the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	if err := a.authService.Revalidate(ctx); err != nil {
		a.log.Warn(ctx, "could not restore previous session", "error", err)
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated()
}
