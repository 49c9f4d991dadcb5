package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/example/terve/internal/ai"
	"github.com/example/terve/internal/bot"
	"github.com/example/terve/internal/config"
	"github.com/example/terve/internal/database"
	"github.com/example/terve/internal/drills"
	"github.com/example/terve/internal/exam"
	"github.com/example/terve/internal/excel"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/internal/reading"
	"github.com/example/terve/internal/scheduler"
	"github.com/example/terve/internal/server"
	"github.com/example/terve/internal/spaced_repetition"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:          "terve",
	Short:        "Finnish vocabulary, grammar drills, reading and mock exams",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return config.LoadDotEnv(".env")
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server, the telegram bot and the background jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg.Driver, cfg.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("database is up to date", slog.String("driver", cfg.Driver))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import words, nouns and verbs from an xlsx workbook or a words csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg.Driver, cfg.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		importConfig := excel.DefaultImportConfig()
		importConfig.FilePath = args[0]
		importConfig.StartRow, _ = cmd.Flags().GetInt("start-row")

		importer := excel.NewImporter(
			database.NewWordRepository(db),
			database.NewNounRepository(db),
			database.NewVerbRepository(db),
		)
		summary, err := importer.Import(cmd.Context(), importConfig)
		if err != nil {
			return err
		}
		for name, result := range map[string]excel.ImportResult{
			"words": summary.Words,
			"nouns": summary.Nouns,
			"verbs": summary.Verbs,
		} {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: processed %d, created %d, updated %d, skipped %d\n",
				name, result.TotalProcessed, result.Created, result.Updated, result.Skipped)
			for _, msg := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", msg)
			}
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `mode of the server, "dev" or "prod"`)
	flags.String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	flags.String("dsn", "", "database source name")
	flags.String("data", "data", "data directory")
	flags.String("log-level", "info", "log level")
	for _, name := range []string{"mode", "driver", "dsn", "data", "log-level"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	serveCmd.Flags().String("addr", "", "address of the server")
	serveCmd.Flags().Int("port", 8080, "port of the server")
	for _, name := range []string{"addr", "port"} {
		if err := v.BindPFlag(name, serveCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	importCmd.Flags().Int("start-row", 2, "first data row of every sheet")

	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := database.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	services, err := newServices(cfg, db)
	if err != nil {
		return err
	}

	// background work is joined before the database closes
	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var notifier scheduler.Notifier
	if cfg.TelegramEnabled() {
		b, err := bot.New(cfg.TelegramToken, services.Users, services.Flashcards, bot.DefaultConfig(cfg.BaseURL))
		if err != nil {
			return err
		}
		notifier = b
		runBot(ctx, b, &wg)
	} else {
		slog.Info("telegram token is not set, reminders are disabled")
	}

	s := server.New(cfg, services)

	jobs := scheduler.New(services.Users, services.Flashcards, services.Exams, notifier, scheduler.Config{
		StartHour: cfg.NotificationStartHour,
		EndHour:   cfg.NotificationEndHour,
	}, scheduler.WithIdleSweeper(s))
	if err := jobs.Start(ctx); err != nil {
		return err
	}
	defer jobs.Stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(cfg.ListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down server")
	}
	slog.Info("server stopped")
	return nil
}

// runBot polls Telegram until ctx is done. wg is released once polling has stopped.
func runBot(ctx context.Context, b *bot.Bot, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.Run(ctx)
	}()
}

func newServices(cfg *config.Config, db *sqlx.DB) (server.Services, error) {
	words := database.NewWordRepository(db)
	rnd := random.Default()

	flashcardOpts := []spaced_repetition.Option{spaced_repetition.WithRandom(rnd)}
	if cfg.AIEnabled() {
		writer, err := ai.New(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			return server.Services{}, err
		}
		flashcardOpts = append(flashcardOpts, spaced_repetition.WithExampleWriter(writer))
	}

	return server.Services{
		Users:      database.NewUserRepository(db),
		Flashcards: spaced_repetition.NewService(words, database.NewLearnerWordRepository(db), flashcardOpts...),
		Drills:     drills.NewService(database.NewNounRepository(db), database.NewVerbRepository(db), rnd),
		Reading:    reading.NewService(words, reading.WithRandom(rnd)),
		Exams: exam.NewService(
			database.NewExamInstanceRepository(db),
			database.NewExamResultRepository(db),
			exam.WithRandom(rnd),
			exam.WithGrace(cfg.ExamGrace),
		),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
