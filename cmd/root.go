package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/config"
	"github.com/shurizzle/twitch-api2/filter"
	"github.com/shurizzle/twitch-api2/helix"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	helixClient *helix.Client
	token       auth.Token
	compiler    filter.CachingCompiler

	// Shared listing flags
	filterExpr string
	maxPages   int
	pageSize   int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "helix",
	Short: "A command line client for the Twitch Helix API",
	Long: `helix queries the Twitch Helix API with a user access token or with
application credentials, and filters the results with expressions.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp loads the configuration and creates the client and token
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	helixClient, err = helix.NewClient(helix.Config{
		BaseURL:   cfg.Helix.BaseURL,
		UserAgent: cfg.Helix.UserAgent,
	}, helix.WithTimeout(cfg.Helix.Timeout), helix.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create Helix client: %w", err)
	}

	compiler = filter.NewExprCompiler(filter.WithCache(cfg.Filter.CacheSize))

	token, err = newToken(cmd.Context(), cfg.Twitch)
	if err != nil {
		return err
	}
	return nil
}

// newToken validates the configured user token, or falls back to an app
// token from the client credentials.
func newToken(ctx context.Context, tc config.TwitchConfig) (auth.Token, error) {
	if tc.HasUserToken() {
		userToken, err := auth.Validate(ctx, nil, tc.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to validate access token: %w", err)
		}
		logger.Debug().
			Str("login", userToken.Login).
			Int("scopes", len(userToken.Granted)).
			Msg("Using user access token")
		return userToken, nil
	}

	appToken, err := auth.NewAppToken(ctx, tc.ClientID, tc.ClientSecret, auth.ParseScopes(tc.Scopes))
	if err != nil {
		return nil, fmt.Errorf("failed to create app token: %w", err)
	}
	logger.Debug().Str("client_id", tc.ClientID).Msg("Using app access token")
	return appToken, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// skipInit replaces initializeApp for commands that do not talk to Helix.
func skipInit(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
	return nil
}

// resolveFilter returns the expression for --filter. A value naming a
// configured preset is replaced by the preset.
func resolveFilter(value string) string {
	if preset, ok := cfg.Filter.Presets[value]; ok {
		return preset
	}
	return value
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression or preset name")
	cmd.Flags().IntVar(&maxPages, "max-pages", 1, "maximum number of pages to fetch (0 for all)")
	cmd.Flags().IntVar(&pageSize, "first", 20, "page size")
}
