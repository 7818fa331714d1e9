package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/cliconfig"
	"github.com/rentdesk/rentdesk/pkg/logging"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globalFlags are the persistent flags available to all subcommands.
type globalFlags struct {
	apiURL      string
	configPath  string
	contextName string
	jsonOutput  bool
	logLevel    string
	logFormat   string
	timeout     int
	noInput     bool
}

// app carries what every command needs once the configuration is resolved.
type app struct {
	flags globalFlags

	cfg    *cliconfig.Config
	logger *slog.Logger
	client *apiclient.Client

	// interactive reports whether forms may be shown. Tests replace it.
	interactive func() bool
}

// NewRootCommand builds the complete command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{interactive: stdinIsTerminal})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rentdesk",
		Short: "rentdesk manages a library-rental backend",
		Long: `rentdesk manages the books, patrons, inventory copies and rentals of a
library-rental backend from the command line.

Configuration can be provided via flags, environment variables (RENTDESK_*),
a local .rentdeskrc.yaml or a global $XDG_CONFIG_HOME/rentdesk/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.apiURL, "api-url", "", "Backend base URL (default: "+cliconfig.DefaultAPIURL+")")
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "Config file path (default: .rentdeskrc.yaml)")
	pf.StringVar(&a.flags.contextName, "context", "", "Use the named backend context (see: rentdesk context list)")
	pf.BoolVar(&a.flags.jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "Log format: text, json")
	pf.IntVar(&a.flags.timeout, "timeout", 0, "HTTP timeout in seconds")
	pf.BoolVar(&a.flags.noInput, "no-input", false, "Never prompt, even on a terminal")

	rootCmd.AddCommand(
		newBookCommand(a),
		newPatronCommand(a),
		newInventoryCommand(a),
		newRentalCommand(a),
		newAvailabilityCommand(a),
		newConfigCommand(a),
		newContextCommand(a),
		newVersionCommand(a),
		newDevServerCommand(a),
		newGuideCommand(),
	)
	return rootCmd
}

// Execute runs the CLI with os.Args and returns the process exit code.
func Execute() int {
	return run(context.Background(), NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(ctx context.Context, rootCmd *cobra.Command, args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, formatError(err))
		return 1
	}
	return 0
}

// setup resolves the configuration and builds the logger and API client.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := cliconfig.LoadAll(a.flags.configPath)
	if err != nil {
		return err
	}
	if err := cliconfig.ApplyContext(cfg, a.flags.contextName); err != nil {
		return err
	}

	// A subcommand flag of the same name, like "context add --api-url",
	// shadows the global one and must not override the configuration.
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.flags.apiURL
		cfg.Sources["apiUrl"] = cliconfig.SourceFlag
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.flags.timeout
		cfg.Sources["timeout"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
		cfg.Sources["logLevel"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.flags.logFormat
		cfg.Sources["logFormat"] = cliconfig.SourceFlag
	}
	if flags.Changed("json") {
		cfg.JSON = a.flags.jsonOutput
		cfg.Sources["json"] = cliconfig.SourceFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	a.client = apiclient.New(cfg,
		apiclient.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
		apiclient.WithLogger(a.logger),
		apiclient.WithUserAgent("rentdesk/"+Version),
	)
	a.logger.Debug("configuration resolved", "apiUrl", cfg.APIURL, "sources", cfg.Sources)
	return nil
}

// canPrompt reports whether an interactive form may be shown.
func (a *app) canPrompt() bool {
	return !a.flags.noInput && a.interactive != nil && a.interactive()
}

// jsonOutput reports whether results should be printed as JSON.
func (a *app) jsonOutput() bool {
	return a.cfg != nil && a.cfg.JSON
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
