package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rentdesk/rentdesk/pkg/cli/internal/output"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/parse"
	"github.com/rentdesk/rentdesk/pkg/entity"
	"github.com/rentdesk/rentdesk/pkg/update"
)

// editor is the part of an update controller the edit commands drive.
type editor[T any] interface {
	Init(ctx context.Context, e *T) *update.LoadTask
	Validate() error
	Save(ctx context.Context) *update.SaveTask[T]
}

// runEdit initializes ed with start, lets apply fill in the form, validates it
// and saves. Relationship options that fail to load only produce a warning.
func runEdit[T any](cmd *cobra.Command, ed editor[T], start *T, apply func() error) (*T, error) {
	ctx := cmd.Context()
	if err := ed.Init(ctx, start).Wait(ctx); err != nil {
		output.Warn(cmd.ErrOrStderr(), "some options could not be loaded: %v", err)
	}
	if err := apply(); err != nil {
		return nil, err
	}
	if err := ed.Validate(); err != nil {
		return nil, err
	}
	return ed.Save(ctx).Wait(ctx)
}

// startEntity returns a new entity for create (id nil) or the stored one for update.
func startEntity[T any](ctx context.Context, finder update.Finder[T], kind string, id *int64) (*T, error) {
	if id == nil {
		return update.Resolve(ctx, finder, nil, nil)
	}
	return resolveExisting(ctx, finder, kind, *id)
}

// editTarget returns the id argument of update and patch, or nil for create.
func editTarget(args []string) (*int64, error) {
	if len(args) == 0 {
		return nil, nil
	}
	id, err := parse.ID(args[0])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// anyChanged reports whether any of the named flags was given.
func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// fillForm decides how the form gets its values: from flags when any was
// given, from an interactive form on a terminal, and otherwise not at all,
// which is an error for updates.
func fillForm(cmd *cobra.Command, a *app, isUpdate bool, names []string, fromFlags func() error, interactive func() error) error {
	switch {
	case anyChanged(cmd.Flags(), names...):
		return fromFlags()
	case a.canPrompt():
		return runForm(interactive)
	case isUpdate:
		return ErrNoChanges
	default:
		return nil
	}
}

func runForm(fn func() error) error {
	err := fn()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

func printSaved[T any](cmd *cobra.Command, a *app, kind string, created bool, e *T, cols []column[T]) error {
	w := cmd.OutOrStdout()
	if a.jsonOutput() {
		return output.JSON(w, e)
	}
	verb := "Updated"
	if created {
		verb = "Created"
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", verb, kind)
	return printEntity(w, false, e, cols)
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validDate(optional bool) func(string) error {
	return func(s string) error {
		if s == "" {
			if optional {
				return nil
			}
			return fmt.Errorf("date is required (%s)", entity.DateFormat)
		}
		_, err := parse.OptionalDate(s)
		return err
	}
}

// pick returns the option with the given id from a loaded relationship
// collection, falling back to a lookup when the option was not loaded.
func pick[R any](ctx context.Context, options []*R, identify func(*R) *int64, finder update.Finder[R], kind string, id int64) (*R, error) {
	for _, o := range options {
		if got := identify(o); got != nil && *got == id {
			return o, nil
		}
	}
	return resolveExisting(ctx, finder, kind, id)
}

// selectOne asks for one of options. The current selection, if any, is preselected.
func selectOne[R any](title string, options []*R, identify func(*R) *int64, label func(*R) string, current *R) (*R, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no %s to choose from", title)
	}
	choices := make([]huh.Option[int64], 0, len(options))
	byID := make(map[int64]*R, len(options))
	for _, o := range options {
		id := identify(o)
		if id == nil {
			continue
		}
		byID[*id] = o
		choices = append(choices, huh.NewOption(label(o), *id))
	}
	var selected int64
	if id := identify(current); id != nil {
		selected = *id
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().Title(titleCase.String(title)).Options(choices...).Value(&selected),
	)).Run()
	if err != nil {
		return nil, err
	}
	return byID[selected], nil
}
