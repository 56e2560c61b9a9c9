package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/limine-install/internal/config"
	"github.com/conn-castle/limine-install/internal/doctor"
	"github.com/conn-castle/limine-install/internal/messages"
)

var doctorRun = doctor.Run

func newDoctorCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			// Load errors fall back to the built-in defaults; doctor should
			// still run on a system with a broken defaults file.
			defaults, _ := config.Load(configPath)

			opts := doctor.Options{LoaderDir: defaults.LoaderDir}
			if len(args) == 1 {
				opts.Partition = args[0]
			}

			results := doctorRun(opts)
			if !renderDoctorResults(cmd.OutOrStdout(), results) {
				cmd.SilenceErrors = true
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, messages.FlagConfig)

	return cmd
}

// renderDoctorResults prints each check with a colorized status and a final
// summary line. It returns true when no check failed.
func renderDoctorResults(out io.Writer, results []doctor.Result) bool {
	for _, result := range results {
		status := color.GreenString(messages.DoctorStatusOKLabel)
		switch result.Status {
		case doctor.StatusWarn:
			status = color.YellowString(messages.DoctorStatusWarnLabel)
		case doctor.StatusFail:
			status = color.RedString(messages.DoctorStatusFailLabel)
		}
		if result.Message != "" {
			_, _ = fmt.Fprintf(out, "[%s] %s: %s\n", status, result.CheckName, result.Message)
		} else {
			_, _ = fmt.Fprintf(out, "[%s] %s\n", status, result.CheckName)
		}
	}

	if !doctor.Passed(results) {
		_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
		return false
	}
	_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
	return true
}
