package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctfwatch/ctf-announce/internal/announce"
	"github.com/ctfwatch/ctf-announce/internal/ctftime"
	"github.com/ctfwatch/ctf-announce/internal/discord"
	"github.com/ctfwatch/ctf-announce/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDryRun    bool
	flagDays      int
	flagMaxEvents int
	flagFeedURL   string
	flagListen    string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ctf-announce",
		Short: "Announce upcoming CTF competitions to a Discord channel",
		Long: `Fetches upcoming competitions from the CTFtime events API and posts a
formatted summary to a Discord announcement channel, crossposting it to
subscribing servers. Configuration comes from the environment (BOT_TOKEN,
CHANNEL_ID, ...); flags override the fetch window for ad-hoc runs.`,
	}

	cmd.AddCommand(newAnnounceCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func newAnnounceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Run one fetch-format-publish cycle",
		RunE:  runAnnounce,
	}

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the message without posting")
	cmd.Flags().IntVar(&flagDays, "days", 0, "Override lookahead window in days")
	cmd.Flags().IntVar(&flagMaxEvents, "max-events", 0, "Override maximum number of events to fetch")
	cmd.Flags().StringVar(&flagFeedURL, "feed-url", "", "Override feed base URL")

	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the announce run as an HTTP trigger endpoint",
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&flagListen, "listen", "", "Override listen address (default from LISTEN_ADDR)")

	return cmd
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(ctx context.Context, cmd *cobra.Command) (announce.Config, error) {
	cfg, err := announce.LoadConfig(ctx)
	if err != nil {
		return announce.Config{}, err
	}

	if cmd.Flags().Changed("days") {
		cfg.LookaheadDays = flagDays
	}
	if cmd.Flags().Changed("max-events") {
		cfg.MaxEvents = flagMaxEvents
	}
	if flagFeedURL != "" {
		cfg.FeedURL = flagFeedURL
	}
	if flagListen != "" {
		cfg.ListenAddr = flagListen
	}

	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), os.Stderr))

	return cfg, nil
}

// newPipeline wires the pipeline from configuration. Dry runs skip the
// credential requirement and print instead of posting.
func newPipeline(cfg announce.Config, dryRun bool) (*announce.Pipeline, error) {
	fetcher := ctftime.New(cfg.FeedURL, cfg.MaxEvents)

	var publisher discord.Publisher
	if dryRun {
		publisher = discord.NewDryRunPublisher()
	} else {
		client, err := discord.NewClient(cfg.BotToken, cfg.ChannelID)
		if err != nil {
			return nil, fmt.Errorf("initializing Discord client: %w", err)
		}
		publisher = client
	}

	return announce.NewPipeline(fetcher, publisher, cfg.LookaheadDays), nil
}

func runAnnounce(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	if !flagDryRun {
		if err := cfg.Validate(); err != nil {
			return err
		}
	} else if cfg.LookaheadDays <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	pipeline, err := newPipeline(cfg, flagDryRun)
	if err != nil {
		return err
	}

	outcome, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", outcome, err)
	}

	fmt.Println("Announcement posted successfully")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pipeline, err := newPipeline(cfg, false)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:        cfg.ListenAddr,
		Handler:     announce.Handler(pipeline),
		ReadTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	logger.Info("listening for trigger requests", logger.Fields{
		"addr": cfg.ListenAddr,
	})

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
