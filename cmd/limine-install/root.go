package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/conn-castle/limine-install/internal/block"
	"github.com/conn-castle/limine-install/internal/cmdrun"
	"github.com/conn-castle/limine-install/internal/config"
	"github.com/conn-castle/limine-install/internal/confirm"
	"github.com/conn-castle/limine-install/internal/exitcode"
	"github.com/conn-castle/limine-install/internal/firmware"
	"github.com/conn-castle/limine-install/internal/installer"
	"github.com/conn-castle/limine-install/internal/messages"
	"github.com/conn-castle/limine-install/internal/report"
	"github.com/conn-castle/limine-install/internal/terminal"
)

// Injection points for tests.
var (
	isTerminal                  = terminal.IsInteractive
	confirmFunc    confirm.Func = confirm.Ask
	detectFirmware              = func() firmware.Kind { return firmware.Detect(firmware.EFISystemPath) }
	newRunner                   = func() cmdrun.Runner { return cmdrun.Real{} }
	newSystem                   = func() installer.System { return installer.RealSystem{} }
)

type rootOptions struct {
	label      string
	uninstall  bool
	yes        bool
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   messages.RootUse,
		Short: messages.RootShort,
		Long:  messages.RootLong,
		// The root command takes a positional partition path; without this,
		// cobra's legacy validation rejects it as an unknown subcommand
		// before partitionArg can run.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.label, "label", "l", "", messages.FlagLabel)
	cmd.Flags().BoolVarP(&opts.uninstall, "uninstall", "u", false, messages.FlagUninstall)
	cmd.Flags().BoolVar(&opts.yes, "yes", false, messages.FlagYes)
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, messages.FlagVerbose)
	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultPath, messages.FlagConfig)

	cmd.AddCommand(newDoctorCmd())

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	partition, err := partitionArg(cmd, args)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("label") && strings.TrimSpace(opts.label) == "" {
		return exitcode.Errorf(exitcode.InvalidLabel, messages.InvalidLabel)
	}

	defaults, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	label := defaults.Label
	if cmd.Flags().Changed("label") {
		label = opts.label
	}

	runner := newRunner()

	info, err := block.Resolve(runner, partition)
	if err != nil {
		return err
	}

	// Arguments and partition are valid; later failures are step failures and
	// must not trigger the usage text.
	cmd.SilenceUsage = true

	out := cmd.OutOrStdout()
	env := installer.Environment{
		Partition: info,
		Firmware:  detectFirmware(),
		Label:     label,
		Defaults:  defaults,
		System:    newSystem(),
		Runner:    runner,
		Out:       out,
	}
	log := report.New(out)

	if opts.uninstall {
		if !opts.yes && isTerminal() {
			ok, err := confirmFunc(fmt.Sprintf(messages.UninstallConfirmFmt, info.MountPoint))
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(out, messages.UninstallAborted)
				return nil
			}
		}
		installer.Uninstall(env, log)
		log.Summarize(fmt.Sprintf(messages.RemovedFmt, info.MountPoint))
	} else {
		installer.Install(env, log)
		log.Summarize(fmt.Sprintf(messages.InstalledFmt, info.MountPoint))
	}

	if code := log.ExitCode(); code != exitcode.OK {
		cmd.SilenceErrors = true
		return &SilentExitError{Code: code}
	}
	return nil
}

// partitionArg enforces exactly one positional partition path. Zero tokens
// and options-only invocations report different codes.
func partitionArg(cmd *cobra.Command, args []string) (string, error) {
	switch len(args) {
	case 0:
		if cmd.Flags().NFlag() == 0 {
			return "", exitcode.Errorf(exitcode.PartitionNotGiven, messages.PartitionNotGiven)
		}
		return "", exitcode.Errorf(exitcode.PartitionMissing, messages.PartitionMissing)
	case 1:
		return args[0], nil
	default:
		return "", exitcode.Errorf(exitcode.MultiplePartitions, messages.MultiplePartitions)
	}
}
