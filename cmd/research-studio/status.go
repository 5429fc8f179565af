// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-studio/internal/jobs"
	"github.com/pdiddy/research-studio/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status [job_id]",
	Short: "Show text-to-video jobs from the job store",
	Long: `Status reads job records from a persistent job store (jobs.backend sqlite
or postgres). With a job id it prints that job; without one it lists the most
recent jobs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := studioConfig()
		if cfg.Jobs.Backend == "" || cfg.Jobs.Backend == types.JobsMemory {
			return fmt.Errorf("the memory job store is private to its process; set jobs.backend to sqlite or postgres")
		}

		store, err := jobs.Open(cmd.Context(), cfg.Jobs)
		if err != nil {
			return err
		}
		defer store.Close()

		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			job, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("job %s: %w", args[0], err)
			}
			if asJSON {
				return printJSON(out, job)
			}
			printJobs(out, []types.Job{job})
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		list, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(out, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No jobs found.")
			return nil
		}
		printJobs(out, list)
		return nil
	},
}

func init() {
	statusCmd.Flags().Int("limit", 20, "maximum number of jobs to list")
	statusCmd.Flags().Bool("json", false, "print as JSON")

	rootCmd.AddCommand(statusCmd)
}

func printJobs(w io.Writer, list []types.Job) {
	fmt.Fprintf(w, "%-36s  %-10s  %4s  %-19s  %s\n", "ID", "Status", "%", "Updated", "Message")
	for _, j := range list {
		fmt.Fprintf(w, "%-36s  %-10s  %4d  %-19s  %s\n",
			j.ID, j.Status, j.Progress, j.UpdatedAt.Local().Format(time.DateTime), j.Message)
		if j.VideoPath != "" {
			fmt.Fprintf(w, "%-36s  video: %s\n", "", j.VideoPath)
		}
	}
}
