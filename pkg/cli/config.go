package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rentdesk/rentdesk/pkg/cli/internal/output"
	"github.com/rentdesk/rentdesk/pkg/cliconfig"
)

// configOutput is the effective configuration with the source of every value.
type configOutput struct {
	*cliconfig.Config

	Sources map[string]string `json:"sources"`
	Files   []string          `json:"files,omitempty"`
}

var configKeys = []string{"apiUrl", "timeout", "pageSize", "logLevel", "logFormat", "json"}

func newConfigCommand(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and where each value came from",
		Example: `  rentdesk config
  rentdesk config --yaml > .rentdeskrc.yaml
  rentdesk --json config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := configOutput{Config: a.cfg, Sources: a.cfg.Sources, Files: configFiles(a)}
			w := cmd.OutOrStdout()
			switch {
			case asYAML:
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(a.cfg); err != nil {
					return err
				}
				return enc.Close()
			case a.jsonOutput():
				return output.JSON(w, out)
			}
			printConfig(w, out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the values as a config file")
	return cmd
}

// configFiles lists the config files that contributed values.
func configFiles(a *app) []string {
	var files []string
	if global, err := cliconfig.FindGlobalConfig(); err == nil && global != "" {
		files = append(files, global+" (global)")
	}
	switch {
	case a.flags.configPath != "":
		files = append(files, a.flags.configPath+" (local)")
	default:
		if local, err := cliconfig.FindLocalConfig(); err == nil && local != "" {
			files = append(files, local+" (local)")
		}
	}
	return files
}

func printConfig(w io.Writer, out configOutput) {
	values := map[string]any{
		"apiUrl":    out.APIURL,
		"timeout":   out.Timeout,
		"pageSize":  out.PageSize,
		"logLevel":  out.LogLevel,
		"logFormat": out.LogFormat,
		"json":      out.JSON,
	}
	_, _ = fmt.Fprintln(w, "Effective Configuration:")
	_, _ = fmt.Fprintln(w)
	for _, key := range configKeys {
		_, _ = fmt.Fprintf(w, "  %-12s %v%s\n", key+":", values[key], formatSource(out.Sources[key]))
	}
	if len(out.Files) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Sources loaded:")
		for _, f := range out.Files {
			_, _ = fmt.Fprintf(w, "  • %s\n", f)
		}
	}
}

// formatSource formats a source type for display.
func formatSource(source string) string {
	switch source {
	case cliconfig.SourceDefault, "":
		return "  (default)"
	case cliconfig.SourceEnv:
		return "  (env)"
	case cliconfig.SourceGlobal:
		return "  (global config)"
	case cliconfig.SourceLocal:
		return "  (local config)"
	case cliconfig.SourceContext:
		return "  (context)"
	case cliconfig.SourceFlag:
		return "  (flag)"
	default:
		return ""
	}
}
