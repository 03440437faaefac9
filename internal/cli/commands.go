package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tareas/internal/app"
	"tareas/internal/notify"
	"tareas/internal/output"
	"tareas/internal/task"
)

type formFlags struct {
	title       string
	description string
	category    string
	date        string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "task category")
	cmd.Flags().StringVar(&f.date, "date", "", "due date (YYYY-MM-DD)")
}

// apply overlays the flags the user set onto base.
func (f *formFlags) apply(cmd *cobra.Command, base app.Form) app.Form {
	if cmd.Flags().Changed("title") {
		base.Title = f.title
	}
	if cmd.Flags().Changed("description") {
		base.Description = f.description
	}
	if cmd.Flags().Changed("category") {
		base.Category = f.category
	}
	if cmd.Flags().Changed("date") {
		base.Date = f.date
	}
	return base
}

// submitError prefixes validation failures with the user-facing warning.
func submitError(n notify.Notification, err error) error {
	if errors.Is(err, task.ErrValidation) {
		return fmt.Errorf("%s: %w", n, err)
	}
	return err
}

func newAddCmd(rt *runtime) *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := rt.session.Submit(f.apply(cmd, app.Form{}))
			if err != nil {
				return submitError(n, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newEditCmd(rt *runtime) *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's fields; flags not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := rt.session.BeginEdit(id)
			if err != nil {
				return err
			}
			n, err := rt.session.Submit(f.apply(cmd, current))
			if err != nil {
				rt.session.CancelEdit()
				return submitError(n, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newListCmd(rt *runtime) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the in-progress and completed lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("filter") {
				f, err := task.ParseFilter(filter)
				if err != nil {
					return err
				}
				rt.session.SetFilter(f)
			}
			inProgress, completed := rt.session.Visible()
			output.FormatLists(cmd.OutOrStdout(), inProgress, completed, rt.session.Stats())
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, in-progress or completed (default from config)")
	return cmd
}

func newDoneCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Complete a task, or reopen a completed one",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := rt.session.Toggle(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newRmCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := rt.session.Delete(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newRemindCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "List incomplete tasks due today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, n := range rt.session.Reminders() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func newNameCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "name [<name>]",
		Short: "Show or set your display name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if rt.session.NeedsWelcome() {
					return errors.New("no name set (run: tareas name <name>)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), rt.session.UserName())
				return nil
			}
			n, err := rt.session.SetUserName(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newExportCmd(rt *runtime) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := rt.session.Tasks()
			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = json.MarshalIndent(tasks, "", "  ")
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(tasks)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	return cmd
}
