package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	gambit "github.com/gambit-tools/gambit-go"
	"github.com/gambit-tools/gambit-go/internal/config"
)

// cli holds the root command and the values its flags resolve to.
type cli struct {
	rootCmd *cobra.Command

	configPath string
	host       string
	accessKey  string
	secretKey  string
	timeout    time.Duration
	wait       time.Duration
	debug      bool
	logJSON    bool

	// httpClient replaces the default transport; tests point it at a local
	// TLS server.
	httpClient *http.Client
}

func newCLI() *cli {
	c := &cli{}

	c.rootCmd = &cobra.Command{
		Use:           "gambit",
		Short:         "Gambit Tools API client",
		Long:          "gambit sends signed requests to the Gambit Tools API and prints the answer.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := c.rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "gambit.yaml", "Configuration file path")
	flags.StringVar(&c.host, "host", "", "API hostname (overrides config)")
	flags.StringVar(&c.accessKey, "access-key", "", "Public API key (overrides config)")
	flags.StringVar(&c.secretKey, "secret-key", "", "Hex encoded private API key (overrides config)")
	flags.DurationVar(&c.timeout, "timeout", 0, "Transport timeout (overrides config)")
	flags.DurationVar(&c.wait, "wait", time.Minute, "Maximum time to wait for the answer")
	flags.BoolVar(&c.debug, "debug", false, "Log request lifecycle to stderr")
	flags.BoolVar(&c.logJSON, "log-json", false, "Log request lifecycle to stderr as JSON (implies --debug)")

	c.rootCmd.AddCommand(
		&cobra.Command{
			Use:   "client-secret",
			Short: "Fetch the client salt and secret for the key pair",
			Args:  cobra.NoArgs,
			RunE:  c.runClientSecret,
		},
		&cobra.Command{
			Use:   "uuid",
			Short: "Fetch a random UUID from the server",
			Args:  cobra.NoArgs,
			RunE:  c.runRandomUUID,
		},
		c.newVersionCmd(),
	)

	return c
}

func (c *cli) newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), gambit.GetVersion())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(gambit.GetVersionInfo())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version metadata as JSON")
	return cmd
}

// Execute runs the CLI
func (c *cli) Execute() error {
	return c.rootCmd.Execute()
}

// loadConfig merges the config file, environment and flags, flags winning.
func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = c.host
	}
	if flags.Changed("access-key") {
		cfg.AccessKey = c.accessKey
	}
	if flags.Changed("secret-key") {
		cfg.SecretKey = c.secretKey
	}
	if flags.Changed("timeout") {
		cfg.Timeout = c.timeout
	}
	if flags.Changed("debug") {
		cfg.Debug = c.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *cli) newService(cfg *config.Config, stderr io.Writer) (*gambit.Service, error) {
	opts := []gambit.Option{
		gambit.WithEndpointHostname(cfg.Host),
		gambit.WithIdleTimeout(cfg.IdleTimeout),
	}
	if c.httpClient != nil {
		opts = append(opts, gambit.WithHTTPClient(c.httpClient))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, gambit.WithTimeout(cfg.Timeout))
	}
	switch {
	case c.logJSON:
		opts = append(opts, gambit.WithZapLogger(newJSONLogger(stderr)))
	case cfg.Debug:
		opts = append(opts,
			gambit.WithLogger(gambit.NewSimpleLoggerWithWriter(stderr)),
			gambit.WithDebug(),
		)
	}

	svc := gambit.New(opts...)
	if !svc.IsValid() {
		return nil, svc.ValidationError()
	}
	return svc, nil
}

func newJSONLogger(w io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), zap.DebugLevel)
	return zap.New(core)
}

// call runs one submission on a fresh service and waits for its answer.
func call[R gambit.Response](c *cli, cmd *cobra.Command, submit func(*gambit.Service, *config.Config) *gambit.Future[R]) (R, error) {
	var zero R

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return zero, err
	}
	svc, err := c.newService(cfg, cmd.ErrOrStderr())
	if err != nil {
		return zero, err
	}
	defer svc.Shutdown()

	ctx, cancel := context.WithTimeout(cmd.Context(), c.wait)
	defer cancel()

	resp, err := submit(svc, cfg).Wait(ctx)
	if err != nil {
		return zero, err
	}
	if !resp.IsSuccess() {
		return zero, fmt.Errorf("request declined (status %d): %s: %s",
			resp.StatusCode(), resp.ErrorCode(), resp.ErrorDetails())
	}
	return resp, nil
}

func (c *cli) runClientSecret(cmd *cobra.Command, args []string) error {
	resp, err := call(c, cmd, func(svc *gambit.Service, cfg *config.Config) *gambit.Future[*gambit.ClientSecretResponse] {
		return svc.SubmitClientSecret(&gambit.ClientSecretBuilder{
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "client_salt: %s\n", resp.ClientSalt())
	fmt.Fprintf(out, "client_secret: %s\n", resp.ClientSecret())
	return nil
}

func (c *cli) runRandomUUID(cmd *cobra.Command, args []string) error {
	resp, err := call(c, cmd, func(svc *gambit.Service, cfg *config.Config) *gambit.Future[*gambit.RandomUUIDResponse] {
		return svc.SubmitRandomUUID(&gambit.RandomUUIDBuilder{
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "uuid: %s\n", resp.UUID())
	if parsed, err := uuid.Parse(resp.UUID()); err == nil {
		fmt.Fprintf(out, "version: %d\n", parsed.Version())
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: server returned a non-standard UUID: %v\n", err)
	}
	return nil
}
