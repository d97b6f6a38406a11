package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/autolingo/internal/batch"
	"codeberg.org/snonux/autolingo/internal/cli"
	"codeberg.org/snonux/autolingo/internal/journal"
	"codeberg.org/snonux/autolingo/internal/logging"
	"codeberg.org/snonux/autolingo/internal/models"
	"codeberg.org/snonux/autolingo/internal/session"
	"codeberg.org/snonux/autolingo/internal/solver"
	"codeberg.org/snonux/autolingo/internal/translation"
	"codeberg.org/snonux/autolingo/internal/webdriver"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), "")
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	settings, err := cli.LoadSettings()
	if err != nil {
		return err
	}
	logger := logging.New(settings.Log.Level, settings.Log.Format)

	// Handle --archive flag
	if flags.Archive {
		if settings.Journal == "" {
			return fmt.Errorf("--archive needs a journal (--journal or the journal setting)")
		}
		archived, err := journal.Archive(settings.Journal)
		if err != nil {
			return err
		}
		fmt.Printf("Journal archived to: %s\n", archived)
		return nil
	}

	from, to, err := settings.Direction()
	if err != nil {
		return err
	}

	cache, err := cli.BuildCache(ctx, settings, logger)
	if err != nil {
		return err
	}

	if flags.SeedFile != "" {
		if err := seedCache(ctx, cache, flags.SeedFile, settings); err != nil {
			return err
		}
	}

	var recorder *journal.Journal
	if settings.Journal != "" {
		if recorder, err = journal.Open(ctx, settings.Journal); err != nil {
			return err
		}
		defer recorder.Close()
		logger.Info("journal opened", "path", settings.Journal, "run", recorder.RunID())
	}

	exerciseSolver := solver.New(cache, solver.Options{
		Direction:   solver.Direction{From: from, To: to},
		TypingDelay: settings.TypingDelay,
		IgnorePause: solver.DefaultOptions().IgnorePause,
		Logger:      logger,
	})

	sessions, closeAll, err := openSessions(ctx, settings, exerciseSolver, recorder, logger)
	defer closeAll()
	if err != nil {
		return err
	}

	start := time.Now()
	runErr := session.RunParallel(ctx, sessions, settings.FailFast)

	stats := cache.Stats()
	fmt.Printf("\n=== Session Summary ===\n")
	fmt.Printf("Duration: %s\n", time.Since(start).Round(time.Second))
	fmt.Printf("Cached translations: %d (hits %d, misses %d)\n", stats.Entries, stats.Hits, stats.Misses)
	if recorder != nil {
		if summary, err := recorder.Summary(ctx); err == nil {
			fmt.Printf("Exercises: %d (confident %d, failed %d)\n", summary.Total, summary.Confident, summary.Failed)
		}
	}
	fmt.Printf("=======================\n")

	return runErr
}

func seedCache(ctx context.Context, cache *translation.Cache, path string, settings *cli.Settings) error {
	entries, err := batch.ReadSeedFile(path)
	if err != nil {
		return err
	}
	from, to, err := settings.Direction()
	if err != nil {
		return err
	}

	stored, translated, err := batch.Seed(ctx, cache, entries, from, to)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d translations (%d fetched)\n", stored+translated, translated)
	return nil
}

// openSessions starts one geckodriver per session on consecutive ports,
// geckodriver serves a single session per process
func openSessions(ctx context.Context, settings *cli.Settings, s *solver.Solver,
	recorder *journal.Journal, logger *slog.Logger) ([]*session.Session, func(), error) {

	var (
		sessions []*session.Session
		browsers []*webdriver.Session
		drivers  []*webdriver.Driver
	)
	closeAll := func() {
		for _, b := range browsers {
			// The run context may already be cancelled
			if err := b.Close(context.Background()); err != nil {
				logger.Warn("failed to close browser session", "id", b.ID(), "error", err)
			}
		}
		for _, d := range drivers {
			if err := d.Stop(); err != nil {
				logger.Warn("failed to stop geckodriver", "url", d.URL(), "error", err)
			}
		}
	}

	opts := session.DefaultOptions()
	opts.Email = settings.Email
	opts.Password = settings.Password
	opts.SkipUnsupported = settings.SkipUnsupported

	for i := 0; i < settings.Parallel; i++ {
		port := settings.WebDriverPort + i
		fmt.Printf("Starting geckodriver on port %d\n", port)
		driver, err := webdriver.StartDriver(ctx, settings.PathToGeckodriver, port)
		if err != nil {
			return nil, closeAll, err
		}
		drivers = append(drivers, driver)

		browser, err := driver.NewSession(ctx, webdriver.SessionOptions{Headless: settings.Headless})
		if err != nil {
			return nil, closeAll, err
		}
		browsers = append(browsers, browser)

		sess := session.New(browser, s, opts, logger.With("session", i))
		if recorder != nil {
			sess.SetRecorder(recorder)
		}
		sessions = append(sessions, sess)
	}
	return sessions, closeAll, nil
}
