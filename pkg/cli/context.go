package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/cli/internal/output"
	"github.com/rentdesk/rentdesk/pkg/cliconfig"
)

// contextEntry is one context as printed by "context list --json".
type contextEntry struct {
	Name        string `json:"name"`
	APIURL      string `json:"apiUrl"`
	Description string `json:"description,omitempty"`
	Current     bool   `json:"current"`
}

func newContextCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage named backends and switch between them",
		Long: `Contexts name backends, like kubectl contexts. The current context supplies
the API URL unless RENTDESK_API_URL or --api-url is given; --context or
RENTDESK_CONTEXT selects another one for a single command.`,
	}
	cmd.AddCommand(
		newContextListCommand(a),
		newContextCurrentCommand(a),
		newContextUseCommand(a),
		newContextAddCommand(a),
		newContextRemoveCommand(a),
	)
	return cmd
}

func newContextListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contexts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contexts, err := cliconfig.LoadContextConfig()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(contexts.Contexts))
			for name := range contexts.Contexts {
				names = append(names, name)
			}
			slices.Sort(names)

			entries := make([]contextEntry, 0, len(names))
			for _, name := range names {
				c := contexts.Contexts[name]
				entries = append(entries, contextEntry{
					Name:        name,
					APIURL:      c.APIURL,
					Description: c.Description,
					Current:     name == contexts.CurrentContext,
				})
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput() {
				return output.JSON(w, entries)
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(w, "No contexts configured. Add one with: rentdesk context add <name> --api-url <url>")
				return nil
			}
			tw := output.Table(w)
			_, _ = fmt.Fprintln(tw, "CURRENT\tNAME\tAPI URL\tDESCRIPTION")
			for _, e := range entries {
				marker := ""
				if e.Current {
					marker = "*"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, e.Name, e.APIURL, orDash(e.Description))
			}
			return tw.Flush()
		},
	}
}

func newContextCurrentCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the current context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contexts, err := cliconfig.LoadContextConfig()
			if err != nil {
				return err
			}
			if contexts.CurrentContext == "" {
				return fmt.Errorf("no current context set")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), contexts.CurrentContext)
			return nil
		},
	}
}

func newContextUseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the current context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contexts, err := cliconfig.LoadContextConfig()
			if err != nil {
				return err
			}
			if err := contexts.SetCurrentContext(args[0]); err != nil {
				return err
			}
			if err := cliconfig.SaveContextConfig(contexts); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to context %q\n", args[0])
			return nil
		},
	}
}

func newContextAddCommand(a *app) *cobra.Command {
	var (
		apiURL      string
		description string
		use         bool
	)
	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a context",
		Example: `  rentdesk context add staging --api-url https://staging.example.com/ --use`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			check := cliconfig.NewDefault()
			check.APIURL = apiURL
			if err := check.Validate(); err != nil {
				return err
			}

			contexts, err := cliconfig.LoadContextConfig()
			if err != nil {
				return err
			}
			if err := contexts.AddContext(name, &cliconfig.Context{APIURL: apiURL, Description: description}); err != nil {
				return err
			}
			if use {
				contexts.CurrentContext = name
			}
			if err := cliconfig.SaveContextConfig(contexts); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added context %q\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Backend base URL of the context")
	cmd.Flags().StringVar(&description, "description", "", "Human-readable description")
	cmd.Flags().BoolVar(&use, "use", false, "Switch to the new context")
	_ = cmd.MarkFlagRequired("api-url")
	return cmd
}

func newContextRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a context",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contexts, err := cliconfig.LoadContextConfig()
			if err != nil {
				return err
			}
			if err := contexts.RemoveContext(args[0]); err != nil {
				return err
			}
			if err := cliconfig.SaveContextConfig(contexts); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed context %q\n", args[0])
			return nil
		},
	}
}
