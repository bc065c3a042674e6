package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/slackpipe/slackpipe/internal/config"
	"github.com/slackpipe/slackpipe/internal/export"
	"github.com/slackpipe/slackpipe/internal/history"
	"github.com/slackpipe/slackpipe/internal/locale"
	"github.com/slackpipe/slackpipe/internal/markdown"
	"github.com/slackpipe/slackpipe/internal/mrkdwn"
	"github.com/slackpipe/slackpipe/internal/slack"
)

// Version information, injected at build time via ldflags.
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = "unknown"
)

var (
	flagConfig      string
	flagToken       string
	flagOldest      string
	flagLatest      string
	flagMaxMessages int
	flagOutput      string
	flagTimezone    string
	flagLocale      string
	flagQuiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "slackpipe",
	Short: "Export Slack channel history to Markdown",
	Long: `slackpipe pulls a Slack channel's history, including threads, files,
reactions, and layout blocks, and converts it to human-readable Markdown.

Authentication is via a Slack OAuth token (--token, SLACK_TOKEN, or .env).
Configuration is via YAML file with environment-variable overrides.`,
	Version: fmt.Sprintf("%s (build %s, %s)", Version, Build, BuildTime),
}

var markdownCmd = &cobra.Command{
	Use:   "markdown <channel-id>...",
	Short: "Export one or more channels as Markdown documents",
	Long: `Exports the full history of each channel, with thread replies nested
under their parents as deeper heading levels, to <channel-name>.md
(or the --output path when a single channel is given).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), renderMarkdown, ".md", args)
	},
}

var pprintCmd = &cobra.Command{
	Use:   "pprint <channel-id>...",
	Short: "Dump the intermediate channel tree as indented JSON",
	Long: `Fetches and formats the same channel tree the markdown command uses,
but writes it as indented JSON for inspection instead of rendering it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), renderPprint, ".json", args)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Prints the merged configuration (defaults, config file, environment) as YAML.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Slack OAuth token")
	rootCmd.PersistentFlags().StringVar(&flagOldest, "oldest", "", "oldest message time to export (YYYY-MM-DD [HH:MM])")
	rootCmd.PersistentFlags().StringVar(&flagLatest, "latest", "", "latest message time to export (YYYY-MM-DD [HH:MM])")
	rootCmd.PersistentFlags().IntVar(&flagMaxMessages, "max-messages", 0, "max number of messages to export per channel")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output file path (single channel only)")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "timezone for interpreting --oldest/--latest, e.g. Europe/Berlin")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "IETF locale tag for console output, e.g. de-DE")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "suppress progress output, errors only")

	rootCmd.AddCommand(markdownCmd)
	rootCmd.AddCommand(pprintCmd)
	rootCmd.AddCommand(configCmd)
}

// renderFunc turns a formatted channel tree into output bytes.
type renderFunc func(*history.ChannelExportData) ([]byte, error)

func renderMarkdown(data *history.ChannelExportData) ([]byte, error) {
	return []byte(markdown.Render(data)), nil
}

func renderPprint(data *history.ChannelExportData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func run(ctx context.Context, render renderFunc, ext string, channelIDs []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagTimezone != "" {
		cfg.Timezone = flagTimezone
	}
	if flagLocale != "" {
		cfg.Locale = flagLocale
	}
	if flagMaxMessages > 0 {
		cfg.MaxMessages = flagMaxMessages
	}

	resolver, err := locale.Resolve(cfg.Timezone, cfg.Locale)
	if err != nil {
		return err
	}
	var oldest, latest time.Time
	if flagOldest != "" {
		if oldest, err = resolver.ParseBound(flagOldest); err != nil {
			return fmt.Errorf("--oldest: %w", err)
		}
	}
	if flagLatest != "" {
		if latest, err = resolver.ParseBound(flagLatest); err != nil {
			return fmt.Errorf("--latest: %w", err)
		}
	}

	token, err := slack.LoadToken(flagToken)
	if err != nil {
		return err
	}

	logger := newLogger(flagQuiet)
	client := slack.NewClient(token)

	botCache := slack.NewBotCache(botCachePath(cfg))
	if err := botCache.Load(); err != nil {
		logger.Warn("ignoring unreadable bot cache", "error", err)
	}

	dir, _, err := slack.Warm(ctx, client, botCache, logger)
	if err != nil {
		return err
	}
	exporter := export.NewExporter(client, dir, mrkdwn.NewConverter(dir), logger)

	for _, channelID := range channelIDs {
		data, err := exporter.Export(ctx, channelID, export.Options{
			Oldest:            oldest,
			Latest:            latest,
			MaxMessages:       cfg.MaxMessages,
			MaxThreadMessages: cfg.MaxThreadMessages,
			PageLimit:         cfg.PageLimit,
		})
		if err != nil {
			return err
		}
		out, err := render(data)
		if err != nil {
			return err
		}
		path := outputPath(cfg.OutputDir, data.Channel.Name, ext, len(channelIDs))
		if err := os.WriteFile(path, out, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if !flagQuiet {
			fmt.Printf("Wrote %s top-level messages for channel %s to %s\n",
				resolver.FormatCount(len(data.TopLevelMessages)), channelID, path)
		}
	}

	if err := dir.SaveBotCache(); err != nil {
		logger.Warn("could not persist bot cache", "error", err)
	}
	return nil
}

// outputPath picks the destination file: the explicit --output path when a
// single channel was requested, else <output-dir>/<channel-name><ext>.
func outputPath(outputDir, channelName, ext string, channelCount int) string {
	if flagOutput != "" && channelCount == 1 {
		return flagOutput
	}
	return filepath.Join(outputDir, channelName+ext)
}

// botCachePath returns the configured cache path, defaulting under the
// user cache directory. An empty result disables persistence.
func botCachePath(cfg *config.Config) string {
	if cfg.BotCachePath != "" {
		return cfg.BotCachePath
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "slackpipe", "bots.json")
}

func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
