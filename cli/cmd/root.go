package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ascentlabs/ascent/client"
	"github.com/ascentlabs/ascent/session"
	"github.com/ascentlabs/ascent/shared"
	"github.com/ascentlabs/ascent/shared/config"
	"github.com/ascentlabs/ascent/shared/keyring"
)

var (
	// Version is the version of the CLI
	Version = "unknown"

	// GitCommit is the commit that the CLI was built from
	GitCommit = "unknown"

	// BuildDate is the date the CLI was built
	BuildDate = "unknown"
)

type globalOptions struct {
	LogLevel LogLevel
	APIURL   string
}

func NewRootCmd() *cobra.Command {
	options := globalOptions{}
	cmd := &cobra.Command{
		Use:   "ascent",
		Short: "Ascent: your AI career mentor in the terminal.",
		Long:  figure.NewColorFigure("ascent", "standard", "blue", true).String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			godotenv.Load()

			options.LogLevel = resolveLogLevel(cmd, &options)
			slog.SetDefault(slog.New(slog.NewJSONHandler(setupLogSink(cmd.Context()), &slog.HandlerOptions{
				Level: options.LogLevel.SlogLevel(),
			})))

			fs := getFileSystem(cmd.Context())
			userInfo := getUserInfo(cmd.Context())

			configStore := config.NewStore(fs, userInfo)
			cfg, err := configStore.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), ContextKeyConfig, cfg))
			cmd.SetContext(context.WithValue(cmd.Context(), ContextKeyConfigStore, configStore))

			// The session must be hydrated before any command logic runs, so
			// authentication guards never observe a half-initialized state.
			sessionStore := getSessionStore(cmd.Context())
			if sessionStore == nil {
				sessionStore = session.Open(newSecretProvider(cfg))
				cmd.SetContext(context.WithValue(cmd.Context(), ContextKeySessionStore, sessionStore))
			}

			if getAPIClient(cmd.Context()) == nil {
				apiClient := client.NewClient(cfg.ResolveAPIURL(options.APIURL), sessionStore)
				cmd.SetContext(context.WithValue(cmd.Context(), ContextKeyAPIClient, apiClient))
			}

			return nil
		},
	}

	cmd.PersistentFlags().Var(&options.LogLevel, "log-level", "set the log level")
	cmd.PersistentFlags().StringVar(&options.APIURL, "api-url", "", "base URL of the career-mentor service")

	cmd.AddGroup(
		&cobra.Group{
			ID:    "account",
			Title: "Account Commands",
		},
	)

	cmd.AddGroup(
		&cobra.Group{
			ID:    "career",
			Title: "Career Commands",
		},
	)

	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewSignupCmd())

	cmd.AddCommand(NewUploadCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewRoadmapCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewOptimizeCmd())

	cmd.AddCommand(NewVersionCmd())
	return cmd
}

func Execute() {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
			fmt.Fprintf(os.Stderr, "Panic occurred: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if dsn := os.Getenv("ASCENT_SENTRY_DSN"); dsn != "" {
		err := sentry.Init(sentry.ClientOptions{Dsn: dsn})
		if err != nil {
			fmt.Printf("failed to initialize sentry: %s\n", err)
		}
	}

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	sentry.Flush(2 * time.Second)
}

// newSecretProvider picks where the credential lives. The keyring is the
// default; headless systems without a secret service can opt out, trading
// session durability for it.
func newSecretProvider(cfg *config.Config) keyring.Provider {
	if cfg.DisableKeyring || os.Getenv("ASCENT_NO_KEYRING") != "" {
		return keyring.NewMemoryProvider()
	}
	return keyring.NewKeyringProvider()
}

// requireSession guards commands that only make sense with an authenticated
// session. The check runs against the synchronously hydrated store, so the
// very first command after process start sees the durable state.
func requireSession(cmd *cobra.Command) error {
	sessionStore := getSessionStore(cmd.Context())
	if sessionStore == nil || !sessionStore.IsAuthenticated() {
		return errors.New("you are not logged in\n\nRun 'ascent login' to sign in, or 'ascent signup' to create an account")
	}
	return nil
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (e *LogLevel) String() string {
	if e == nil {
		return ""
	}
	return string(*e)
}

func (e *LogLevel) Set(v string) error {
	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if v == string(level) {
			*e = level
			return nil
		}
	}
	return errors.New(`must be one of "debug", "info", "warn", or "error"`)
}

func (e *LogLevel) Type() string {
	return "log-level"
}

func (e *LogLevel) SlogLevel() slog.Level {
	switch *e {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}

	return slog.LevelInfo
}

func resolveLogLevel(cmd *cobra.Command, options *globalOptions) LogLevel {
	if cmd.Flags().Changed("log-level") {
		return options.LogLevel
	}

	logLevel := os.Getenv("ASCENT_LOG_LEVEL")
	if logLevel != "" {
		switch logLevel {
		case "debug":
			return LogLevelDebug
		case "info":
			return LogLevelInfo
		case "warn":
			return LogLevelWarn
		case "error":
			return LogLevelError
		}
	}
	return LogLevelInfo
}

// setupLogSink writes structured logs to a rotating file. Stdout belongs to
// the interactive views, so logs never go there.
func setupLogSink(ctx context.Context) io.Writer {
	if disable, ok := ctx.Value(ContextKeyDisableFileLogs).(bool); ok && disable {
		return io.Discard
	}

	logDir, err := getUserInfo(ctx).AscentLogDir()
	if err != nil {
		return io.Discard
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "ascent.json"),
		MaxSize:    50,
		MaxAge:     7,
		MaxBackups: 3,
		Compress:   true,
	}
}

func getFileSystem(ctx context.Context) *afero.Afero {
	if fs, ok := ctx.Value(ContextKeyFileSystem).(*afero.Afero); ok {
		return fs
	}
	return &afero.Afero{Fs: afero.NewOsFs()}
}

func getUserInfo(ctx context.Context) shared.UserInfo {
	if userInfo, ok := ctx.Value(ContextKeyUserInfo).(shared.UserInfo); ok {
		return userInfo
	}
	return shared.NewDefaultUserInfo(getFileSystem(ctx))
}

func getSessionStore(ctx context.Context) *session.Store {
	if store, ok := ctx.Value(ContextKeySessionStore).(*session.Store); ok {
		return store
	}
	return nil
}

func getAPIClient(ctx context.Context) *client.Client {
	if apiClient, ok := ctx.Value(ContextKeyAPIClient).(*client.Client); ok {
		return apiClient
	}
	return nil
}

func getConfig(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(ContextKeyConfig).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}
