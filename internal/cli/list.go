package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tasklist/internal/models"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		newest bool
		status string
		output string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !models.Status(status).Valid() {
				return fmt.Errorf("status must be 'pending' or 'completed', got %q", status)
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			rows := numbered(a.tasks.Tasks())
			if status != "" {
				rows = slices.DeleteFunc(rows, func(r row) bool { return r.Task.Status != models.Status(status) })
			}
			if newest {
				slices.Reverse(rows)
			}

			return writeTasks(cmd.OutOrStdout(), output, rows)
		},
	}

	cmd.Flags().BoolVar(&newest, "newest", false, "Show the most recently added tasks first")
	cmd.Flags().StringVar(&status, "status", "", "Only show tasks with this status (pending, completed)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml")

	return cmd
}

// row pairs a task with its 1-based position in the stored collection,
// which "edit", "toggle" and "rm" accept as a reference.
type row struct {
	Num  int
	Task models.Task
}

func numbered(tasks []models.Task) []row {
	rows := make([]row, len(tasks))
	for i, t := range tasks {
		rows[i] = row{Num: i + 1, Task: t}
	}
	return rows
}

func writeTasks(w io.Writer, format string, rows []row) error {
	tasks := make([]models.Task, len(rows))
	for i, r := range rows {
		tasks[i] = r.Task
	}

	switch format {
	case "table":
		return writeTable(w, rows)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("output must be 'table', 'json', or 'yaml', got %q", format)
	}
}

func writeTable(w io.Writer, rows []row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tSTATUS\tTITLE\tCREATED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.Num,
			shortID(r.Task.ID),
			r.Task.Status,
			normalizeTitle(r.Task.Title),
			r.Task.CreatedAt.Local().Format(time.DateTime),
		)
	}
	return tw.Flush()
}

// shortID trims UUIDs to their first group for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// normalizeTitle makes a title safe for one-line output.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
