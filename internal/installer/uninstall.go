package installer

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/conn-castle/limine-install/internal/exitcode"
	"github.com/conn-castle/limine-install/internal/firmware"
	"github.com/conn-castle/limine-install/internal/messages"
	"github.com/conn-castle/limine-install/internal/report"
)

var bootEntryIDPattern = regexp.MustCompile(`^Boot([0-9A-Fa-f]{4})`)

// Uninstall runs the uninstall steps in order, recording failures into log.
// Existence is checked before each delete, so a second run over an already
// clean system succeeds.
func Uninstall(env Environment, log *report.Log) {
	log.Record(env.deleteHook())

	if env.Firmware == firmware.UEFI {
		env.deleteBootEntries(log)
	} else {
		log.Record(env.checkUninstallData())
		log.Record(env.uninstallStage1())
	}

	log.Record(env.deleteBootDir())
}

func (env Environment) deleteHook() error {
	if _, err := env.System.Stat(env.HookPath()); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := env.System.Remove(env.HookPath()); err != nil {
		return exitcode.Errorf(exitcode.DeleteHook, messages.DeleteHookFmt, env.HookPath(), err)
	}
	return nil
}

// deleteBootEntries removes every firmware boot entry whose verbose listing
// references the boot partition's UUID. A line that matches the UUID but has
// no extractable entry id is recorded and the scan continues with the
// remaining entries.
func (env Environment) deleteBootEntries(log *report.Log) {
	out, err := env.Runner.Run("efibootmgr", "--verbose")
	if err != nil {
		log.Record(exitcode.Errorf(exitcode.DeleteBootEntry, messages.ListBootEntriesFmt, err))
		return
	}

	needle := strings.ToLower(strings.TrimSpace(env.Partition.PartUUID))
	if needle == "" {
		return
	}

	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}

		match := bootEntryIDPattern.FindStringSubmatch(line)
		if match == nil {
			log.Record(exitcode.Errorf(exitcode.DeleteBootEntry, messages.BootEntryIDFmt, strings.TrimSpace(line)))
			continue
		}

		if _, err := env.Runner.Run("efibootmgr", "--bootnum", match[1], "--delete-bootnum"); err != nil {
			log.Record(exitcode.Errorf(exitcode.DeleteBootEntry, messages.DeleteBootEntryFmt, match[1], err))
		}
	}
}

func (env Environment) checkUninstallData() error {
	if _, err := env.System.Stat(env.UninstallDataPath()); errors.Is(err, os.ErrNotExist) {
		return exitcode.Errorf(exitcode.UninstallDataMissing, messages.UninstallDataFmt, env.UninstallDataPath())
	}
	return nil
}

func (env Environment) uninstallStage1() error {
	_, err := env.Runner.Run("limine", "bios-install", "--uninstall",
		"--uninstall-data-file="+env.UninstallDataPath(), env.Partition.Disk)
	if err != nil {
		return exitcode.Errorf(exitcode.Stage1Uninstall, messages.Stage1UninstallFmt, env.Partition.Disk, err)
	}
	return nil
}

func (env Environment) deleteBootDir() error {
	if _, err := env.System.Stat(env.BootDir()); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := env.System.RemoveAll(env.BootDir()); err != nil {
		return exitcode.Errorf(exitcode.DeleteBootDir, messages.DeleteBootDirFmt, env.BootDir(), err)
	}
	return nil
}
