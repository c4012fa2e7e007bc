// wavefeed is a terminal client for the Waveform activity feed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wavefeed/wavefeed/internal/api"
	"github.com/wavefeed/wavefeed/internal/cards"
	"github.com/wavefeed/wavefeed/internal/config"
	"github.com/wavefeed/wavefeed/internal/feed"
	"github.com/wavefeed/wavefeed/internal/i18n"
	"github.com/wavefeed/wavefeed/internal/stub"
	"github.com/wavefeed/wavefeed/internal/tui"
	"github.com/wavefeed/wavefeed/internal/uilog"
	"github.com/wavefeed/wavefeed/internal/version"
)

// Global flags
var (
	serverURL string
	logPath   string
	verbose   bool
)

// Activities command flags
var (
	listPage   int
	listLimit  int
	listKind   string
	listSearch string
)

// Stub command flags
var (
	stubHost     string
	stubPort     int
	stubFixtures string
)

var rootCmd = &cobra.Command{
	Use:   "wavefeed",
	Short: "Terminal client for the Waveform activity feed",
	Long: `wavefeed browses your Waveform music-generation activity in the
terminal: completed generations, template uses, and errors, with
search, kind filters, and infinite scrolling.

Running without a subcommand launches the interactive feed.

Examples:
  wavefeed                         # Launch the feed TUI
  wavefeed activities              # Print a page of activity
  wavefeed activities -k error-occurred
  wavefeed stub                    # Run a local replay server`,
	RunE: runFeed,
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Launch the interactive activity feed",
	RunE:  runFeed,
}

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Print activity as a table",
	RunE:  runActivities,
}

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local replay server for development",
	Long: `Serve canned Waveform API responses on localhost so the feed can be
exercised without a real backend. With --fixtures the JSON file is
watched and reloaded on change.`,
	RunE: runStub,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String("wavefeed"))
	},
}

func setup() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	i18n.Init(i18n.ResolveLocale(cfg.Language))

	path := logPath
	if path == "" {
		path = cfg.LogFile
	}
	if path != "" {
		if err := uilog.Init(path, verbose); err != nil {
			return config.Config{}, fmt.Errorf("init logger: %w", err)
		}
	}
	return cfg, nil
}

func runFeed(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer uilog.Log.Close()

	uilog.Log.Info("starting feed", "server", cfg.ServerURL, "pageSize", cfg.PageSize)
	err = tui.Run(api.NewClient(cfg.ServerURL), cfg.PageSize)
	uilog.Log.Info("feed exited", "error", err)
	return err
}

func runActivities(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer uilog.Log.Close()

	client := api.NewClient(cfg.ServerURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items, err := client.ListActivities(ctx, listPage, listLimit)
	if err != nil {
		return err
	}

	query := feed.Query{Kind: feed.Kind(listKind), Search: listSearch}
	pred := query.Predicate()

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tKIND\tSTATUS\tTITLE")
	shown := 0
	for _, it := range items {
		if !pred(it) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			cards.TimeAgo(it.Timestamp, now), it.Kind, it.Status, it.Title)
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if shown == 0 && !query.IsZero() {
		fmt.Println(i18n.T("feed.noMatches", "No activities match your filters"))
	}
	return nil
}

func runStub(cmd *cobra.Command, args []string) error {
	if _, err := setup(); err != nil {
		return err
	}
	defer uilog.Log.Close()

	srv, err := stub.NewServer(stub.Config{
		Host:         stubHost,
		Port:         stubPort,
		FixturesPath: stubFixtures,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Waveform server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write debug log to file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	activitiesCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page to fetch")
	activitiesCmd.Flags().IntVarP(&listLimit, "limit", "n", feed.DefaultPageSize, "items per page")
	activitiesCmd.Flags().StringVarP(&listKind, "kind", "k", "", "only show one kind (generation-completed|template-used|history-entry|error-occurred)")
	activitiesCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive text match")

	stubCmd.Flags().StringVar(&stubHost, "host", "localhost", "listen host")
	stubCmd.Flags().IntVarP(&stubPort, "port", "p", 8085, "listen port")
	stubCmd.Flags().StringVar(&stubFixtures, "fixtures", "", "JSON fixtures file (watched for changes)")

	rootCmd.AddCommand(feedCmd, activitiesCmd, stubCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
