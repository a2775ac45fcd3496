package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tasklist/internal/models"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := models.Task{Title: args[0], Description: description}
			if err := input.Validate(); err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			task := a.tasks.Add(cmd.Context(), input.Title, input.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s\n", task.ID, normalizeTitle(task.Title))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional description")

	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "edit <ref> <title>",
		Short: "Change the title and description of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := models.Task{Title: args[1], Description: description}
			if err := input.Validate(); err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			task, ok, err := lookup(cmd, a, args[0])
			if err != nil || !ok {
				return err
			}

			a.tasks.Update(cmd.Context(), task.ID, input.Title, input.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s  %s\n", task.ID, normalizeTitle(input.Title))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (empty clears it)")

	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <ref>",
		Aliases: []string{"done"},
		Short:   "Flip a task between pending and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			task, ok, err := lookup(cmd, a, args[0])
			if err != nil || !ok {
				return err
			}

			a.tasks.ToggleStatus(cmd.Context(), task.ID)
			updated, _ := a.tasks.Get(task.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", updated.ID, updated.Status, normalizeTitle(updated.Title))
			return nil
		},
	}
}

func newRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			task, ok, err := lookup(cmd, a, args[0])
			if err != nil || !ok {
				return err
			}

			a.tasks.Remove(cmd.Context(), task.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s  %s\n", task.ID, normalizeTitle(task.Title))
			return nil
		},
	}
}

// lookup resolves ref against the current collection. An unknown reference
// is reported on stderr and is not an error, matching the store's no-op
// semantics.
func lookup(cmd *cobra.Command, a *app, ref string) (models.Task, bool, error) {
	task, err := resolveTaskRef(a.tasks.Tasks(), ref)
	if errors.Is(err, errNoMatch) {
		fmt.Fprintf(cmd.ErrOrStderr(), "no task matching %q\n", ref)
		return models.Task{}, false, nil
	}
	if err != nil {
		return models.Task{}, false, err
	}
	return task, true, nil
}
