package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/pkg/collections"
	"github.com/aretw0/daycraft/pkg/core"
	"github.com/aretw0/daycraft/pkg/session"
)

var (
	taskDate  string
	tasksAll  bool
	tasksJSON bool
)

const routeTasks = session.RouteDashboard + "/tasks"

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage the tasks of a day",
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd, func(app *daycraft.App, day string) error {
			task, ok, err := app.Tasks.Add(cmd.Context(), day, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !ok {
				reportNoop(cmd.OutOrStdout(), false, "empty task")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d to %s: %s\n", len(app.Tasks.For(day)), day, task.Text)
			return nil
		})
	},
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks of a day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd, func(app *daycraft.App, day string) error {
			out := cmd.OutOrStdout()
			if tasksAll {
				if tasksJSON {
					return printJSON(out, app.Tasks.Binding().Get())
				}
				for _, d := range app.Tasks.Dates() {
					p := app.Tasks.Progress(d)
					fmt.Fprintf(out, "%s  %d/%d (%d%%)\n", d, p.Completed, p.Total, p.Rounded())
				}
				return nil
			}

			tasks := app.Tasks.For(day)
			if tasksJSON {
				return printJSON(out, tasks)
			}
			if len(tasks) == 0 {
				fmt.Fprintf(out, "No tasks for %s.\n", day)
				return nil
			}
			for i, t := range tasks {
				fmt.Fprintf(out, "%s %d. %s\n", check(t.Completed), i+1, t.Text)
			}
			p := app.Tasks.Progress(day)
			fmt.Fprintf(out, "%d/%d done (%d%%)\n", p.Completed, p.Total, p.Rounded())
			return nil
		})
	},
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <ref>",
	Short: "Toggle a task between done and open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTask(cmd, args[0], func(app *daycraft.App, day string, id core.ID) error {
			changed, err := app.Tasks.Toggle(cmd.Context(), day, id)
			reportNoop(cmd.OutOrStdout(), changed, "task not found")
			return err
		})
	},
}

var tasksEditCmd = &cobra.Command{
	Use:   "edit <ref> <text>",
	Short: "Replace the text of a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTask(cmd, args[0], func(app *daycraft.App, day string, id core.ID) error {
			changed, err := app.Tasks.Edit(cmd.Context(), day, id, strings.Join(args[1:], " "))
			reportNoop(cmd.OutOrStdout(), changed, "text unchanged or empty")
			return err
		})
	},
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm <ref>",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTask(cmd, args[0], func(app *daycraft.App, day string, id core.ID) error {
			changed, err := app.Tasks.Remove(cmd.Context(), day, id)
			reportNoop(cmd.OutOrStdout(), changed, "task not found")
			return err
		})
	},
}

func withTasks(cmd *cobra.Command, fn func(app *daycraft.App, day string) error) error {
	day, err := dayFlag(taskDate)
	if err != nil {
		return err
	}
	return withSession(cmd, routeTasks, func(app *daycraft.App) error {
		return fn(app, day)
	})
}

func withTask(cmd *cobra.Command, ref string, fn func(app *daycraft.App, day string, id core.ID) error) error {
	return withTasks(cmd, func(app *daycraft.App, day string) error {
		id, err := resolveRef(idsOf(app.Tasks.For(day), func(t collections.Task) core.ID { return t.ID }), ref)
		if err != nil {
			return err
		}
		return fn(app, day, id)
	})
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksAddCmd, tasksListCmd, tasksDoneCmd, tasksEditCmd, tasksRmCmd)
	tasksCmd.PersistentFlags().StringVar(&taskDate, "date", "", "Day as YYYY-MM-DD (default: today)")
	tasksListCmd.Flags().BoolVar(&tasksAll, "all", false, "Summarize every day")
	tasksListCmd.Flags().BoolVar(&tasksJSON, "json", false, "Output in JSON format")
}
