package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nissyi-gh/taskdeck/internal/auth"
	"github.com/nissyi-gh/taskdeck/internal/filter"
	"github.com/nissyi-gh/taskdeck/internal/importer"
	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/notify"
	"github.com/nissyi-gh/taskdeck/internal/stats"
)

func newListCmd() *cobra.Command {
	var search, status, priority string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print tasks, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := filter.ParseStatus(status)
			if err != nil {
				return err
			}
			pr, err := filter.ParsePriority(priority)
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tasks := filter.Apply(a.store.All(), filter.Criteria{Query: search, Status: st, Priority: pr})
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tasks, time.Now()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive substring of title or description")
	cmd.Flags().StringVar(&status, "status", "all", "all, pending or completed")
	cmd.Flags().StringVar(&priority, "priority", "all", "all, high, medium or low")
	return cmd
}

func renderTable(tasks []model.Task, now time.Time) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		mark := ""
		if t.IsOverdue(now) {
			mark = "overdue"
		} else if !t.Completed() && t.IsDueToday(now) {
			mark = "today"
		}
		rows = append(rows, []string{string(t.Status), string(t.Priority), t.DueDate, mark, t.Title})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STATUS", "PRIORITY", "DUE", "", "TITLE").
		Rows(rows...).
		Render()
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.OutOrStdout(), stats.Calculate(a.store.All(), time.Now()))
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add tasks from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := importer.Import(a.store, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s).\n", n)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write all tasks as YAML to FILE or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := importer.Export(a.store.All())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s.\n", len(a.store.All()), args[0])
			return nil
		},
	}
}

func newRemindCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run one due-soon check and print the reminder email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			interval, err := a.cfg.Interval()
			if err != nil {
				return err
			}
			n := notify.New(a.store, interval)
			n.SetHook(to, nil)
			note, ok := n.Scan()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks due today or tomorrow.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.Digest(note))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", auth.DemoEmail, "recipient shown in the email header")
	return cmd
}
