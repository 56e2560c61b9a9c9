// Package installer implements the install and uninstall step sequences.
// Steps are best-effort: a failing step is recorded and execution continues,
// so a partially failed run leaves whatever state the successful steps
// produced.
package installer

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/conn-castle/limine-install/internal/block"
	"github.com/conn-castle/limine-install/internal/cmdrun"
	"github.com/conn-castle/limine-install/internal/config"
	"github.com/conn-castle/limine-install/internal/exitcode"
	"github.com/conn-castle/limine-install/internal/firmware"
	"github.com/conn-castle/limine-install/internal/messages"
	"github.com/conn-castle/limine-install/internal/report"
)

// On-disk artifact names under the boot-loader directory and the hook dir.
const (
	BootDirName       = "limine"
	ConfigName        = "limine.conf"
	UninstallDataName = "limine-bios-uninstall.data"
	HookName          = "limine_upgrade.hook"
	EFILoaderName     = "BOOTX64.EFI"
	BIOSStage2Name    = "limine-bios.sys"
)

// efiLoaderEntryPath is the loader path recorded in the firmware boot entry,
// in the backslash form EFI firmware expects.
const efiLoaderEntryPath = `\limine\BOOTX64.EFI`

// Environment carries everything one install or uninstall run needs. It is
// built once per invocation and not mutated afterward.
type Environment struct {
	Partition *block.PartitionInfo
	Firmware  firmware.Kind
	Label     string
	Defaults  config.Values
	System    System
	Runner    cmdrun.Runner
	Out       io.Writer
}

// BootDir is the boot-loader directory on the boot partition.
func (env Environment) BootDir() string {
	return filepath.Join(env.Partition.MountPoint, BootDirName)
}

// ConfigPath is the limine.conf location.
func (env Environment) ConfigPath() string {
	return filepath.Join(env.BootDir(), ConfigName)
}

// UninstallDataPath is where the BIOS stage-1 installer records the data
// needed to undo itself.
func (env Environment) UninstallDataPath() string {
	return filepath.Join(env.BootDir(), UninstallDataName)
}

// HookPath is the pacman upgrade hook location.
func (env Environment) HookPath() string {
	return filepath.Join(env.Defaults.HookDir, HookName)
}

// Install runs the install steps in order, recording failures into log.
// Every step is attempted regardless of earlier failures.
func Install(env Environment, log *report.Log) {
	log.Record(env.createBootDir())
	log.Record(env.writeConfig())
	log.Record(env.createHookDir())

	if env.Firmware == firmware.UEFI {
		log.Record(env.createBootEntry())
		log.Record(env.installEFILoader())
	} else {
		log.Record(env.installStage1())
		log.Record(env.installStage2())
	}

	log.Record(env.writeHook())
}

func (env Environment) createBootDir() error {
	if err := env.System.MkdirAll(env.BootDir(), 0o755); err != nil {
		return exitcode.Errorf(exitcode.CreateBootDir, messages.CreateBootDirFmt, env.BootDir(), err)
	}
	return nil
}

func (env Environment) writeConfig() error {
	rootUUID, err := block.RootFSUUID(env.Runner)
	if err != nil {
		return exitcode.Errorf(exitcode.WriteConfig, messages.RootUUIDFmt, err)
	}

	content, err := renderConfig(env, rootUUID)
	if err != nil {
		return exitcode.Errorf(exitcode.WriteConfig, messages.WriteConfigFmt, env.ConfigPath(), err)
	}

	env.previewConfigChange(content)

	if err := env.System.WriteFile(env.ConfigPath(), content, 0o644); err != nil {
		return exitcode.Errorf(exitcode.WriteConfig, messages.WriteConfigFmt, env.ConfigPath(), err)
	}

	env.echoGenerated(env.ConfigPath(), content)
	return nil
}

func (env Environment) createHookDir() error {
	if err := env.System.MkdirAll(env.Defaults.HookDir, 0o755); err != nil {
		return exitcode.Errorf(exitcode.CreateHookDir, messages.CreateHookDirFmt, env.Defaults.HookDir, err)
	}
	return nil
}

func (env Environment) createBootEntry() error {
	_, err := env.Runner.Run("efibootmgr",
		"--create",
		"--disk", env.Partition.Disk,
		"--loader", efiLoaderEntryPath,
		"--label", env.Label,
		"--unicode",
	)
	if err != nil {
		return exitcode.Errorf(exitcode.CreateBootEntry, messages.CreateBootEntryFmt, env.Partition.Disk, err)
	}
	return nil
}

func (env Environment) installEFILoader() error {
	dest := filepath.Join(env.BootDir(), EFILoaderName)
	if err := env.copyFile(filepath.Join(env.Defaults.LoaderDir, EFILoaderName), dest); err != nil {
		return exitcode.Errorf(exitcode.InstallLoader, messages.InstallLoaderFmt, dest, err)
	}
	return nil
}

func (env Environment) installStage1() error {
	_, err := env.Runner.Run("limine", "bios-install", env.Partition.Disk,
		"--uninstall-data-file="+env.UninstallDataPath())
	if err != nil {
		return exitcode.Errorf(exitcode.Stage1Install, messages.Stage1InstallFmt, env.Partition.Disk, err)
	}
	return nil
}

func (env Environment) installStage2() error {
	dest := filepath.Join(env.BootDir(), BIOSStage2Name)
	if err := env.copyFile(filepath.Join(env.Defaults.LoaderDir, BIOSStage2Name), dest); err != nil {
		return exitcode.Errorf(exitcode.Stage2Install, messages.Stage2InstallFmt, dest, err)
	}
	return nil
}

func (env Environment) writeHook() error {
	content, err := renderHook(env)
	if err != nil {
		return exitcode.Errorf(exitcode.WriteHook, messages.WriteHookFmt, env.HookPath(), err)
	}

	if err := env.System.WriteFile(env.HookPath(), content, 0o644); err != nil {
		return exitcode.Errorf(exitcode.WriteHook, messages.WriteHookFmt, env.HookPath(), err)
	}

	env.echoGenerated(env.HookPath(), content)
	return nil
}

// copyFile duplicates a loader asset onto the boot partition. Loader files
// are small, so a read-then-write round trip through System keeps the fault
// injection surface in one place.
func (env Environment) copyFile(src string, dest string) error {
	data, err := env.System.ReadFile(src)
	if err != nil {
		return err
	}
	return env.System.WriteFile(dest, data, 0o644)
}

func (env Environment) echoGenerated(path string, content []byte) {
	_, _ = fmt.Fprintf(env.Out, messages.GeneratedFileFmt+"\n%s", path, content)
}
