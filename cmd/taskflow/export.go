package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/task"
	"taskflow/internal/theme"
	"taskflow/internal/view"
)

type exportOptions struct {
	out      string
	status   string
	category string
	query    string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as a standalone HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), root, opts, time.Now())
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.status, "status", string(task.StatusAll), "status filter: all, active or completed")
	cmd.Flags().StringVar(&opts.category, "category", task.CategoryAll, "category filter")
	cmd.Flags().StringVar(&opts.query, "query", "", "case-insensitive text search")
	return cmd
}

func runExport(stdout io.Writer, root *rootOptions, opts *exportOptions, now time.Time) error {
	status, ok := task.ParseStatus(opts.status)
	if !ok {
		return fmt.Errorf("unknown status %q", opts.status)
	}
	s, err := openSession(root)
	if err != nil {
		return err
	}
	defer s.Close()

	filter := task.Filter{Status: status, Category: opts.category, Query: opts.query}
	page := view.Build(s.store.Tasks(), filter, now)
	saved, hasSaved := s.adapter.LoadTheme()
	th := theme.Resolve(saved, hasSaved, osPrefersDark(s.cfg, s.logger))

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", opts.out, err)
		}
		defer f.Close()
		w = f
	}
	if err := view.RenderHTML(w, page, th); err != nil {
		return err
	}
	s.logger.Info("exported html", "rows", len(page.Rows), "out", opts.out)
	return nil
}
