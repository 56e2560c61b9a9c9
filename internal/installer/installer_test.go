package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/limine-install/internal/block"
	"github.com/conn-castle/limine-install/internal/config"
	"github.com/conn-castle/limine-install/internal/exitcode"
	"github.com/conn-castle/limine-install/internal/firmware"
	"github.com/conn-castle/limine-install/internal/report"
)

const (
	testRootUUID = "d0c7a40f-ec43-4be7-9b8e-24e6e5a2a6e1"
	testPartUUID = "0caa63af-5fc5-4657-a95f-77aebc80f6ff"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (r *fakeRunner) Run(name string, args ...string) (string, error) {
	full := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, full)
	for key, err := range r.errs {
		if strings.HasPrefix(full, key) {
			return "", err
		}
	}
	for key, out := range r.outputs {
		if strings.HasPrefix(full, key) {
			return out, nil
		}
	}
	return "", nil
}

func (r *fakeRunner) called(prefix string) bool {
	for _, call := range r.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// faultSystem overrides selected operations of an inner System.
type faultSystem struct {
	System
	mkdirAll func(path string, perm os.FileMode) error
	remove   func(name string) error
}

func (s faultSystem) MkdirAll(path string, perm os.FileMode) error {
	if s.mkdirAll != nil {
		return s.mkdirAll(path, perm)
	}
	return s.System.MkdirAll(path, perm)
}

func (s faultSystem) Remove(name string) error {
	if s.remove != nil {
		return s.remove(name)
	}
	return s.System.Remove(name)
}

func newTestEnv(t *testing.T, kind firmware.Kind) (Environment, *fakeRunner, *bytes.Buffer) {
	t.Helper()

	root := t.TempDir()
	boot := filepath.Join(root, "boot")
	hooks := filepath.Join(root, "hooks")
	share := filepath.Join(root, "share")
	for _, dir := range []string{boot, hooks, share} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(share, EFILoaderName), []byte("efi loader"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(share, BIOSStage2Name), []byte("bios stage 2"), 0o644))

	runner := &fakeRunner{outputs: map[string]string{
		"findmnt -no UUID /": testRootUUID + "\n",
	}}

	defaults := config.Fallback()
	defaults.LoaderDir = share
	defaults.HookDir = hooks

	out := &bytes.Buffer{}
	env := Environment{
		Partition: &block.PartitionInfo{
			Partition:  "/dev/sda1",
			Disk:       "/dev/sda",
			MountPoint: boot,
			PartUUID:   testPartUUID,
		},
		Firmware: kind,
		Label:    defaults.Label,
		Defaults: defaults,
		System:   RealSystem{},
		Runner:   runner,
		Out:      out,
	}
	return env, runner, out
}

func TestInstallUEFI(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.UEFI)
	log := report.New(out)

	Install(env, log)

	require.Equal(t, exitcode.OK, log.ExitCode())

	conf, err := os.ReadFile(env.ConfigPath())
	require.NoError(t, err)
	require.Contains(t, string(conf), "/Arch Linux")
	require.Contains(t, string(conf), "kernel_cmdline: root=UUID="+testRootUUID+" rw quiet")
	require.Contains(t, string(conf), "kernel_path: boot():/vmlinuz-linux")
	require.Contains(t, string(conf), "module_path: boot():/initramfs-linux.img")

	loader, err := os.ReadFile(filepath.Join(env.BootDir(), EFILoaderName))
	require.NoError(t, err)
	require.Equal(t, "efi loader", string(loader))

	hook, err := os.ReadFile(env.HookPath())
	require.NoError(t, err)
	require.Contains(t, string(hook), "Target = limine")
	require.Contains(t, string(hook), "When = PostTransaction")
	require.Contains(t, string(hook), "cp "+filepath.Join(env.Defaults.LoaderDir, EFILoaderName))

	require.True(t, runner.called("efibootmgr --create --disk /dev/sda --loader \\limine\\BOOTX64.EFI --label Arch Linux --unicode"),
		"efibootmgr create call missing: %v", runner.calls)
	require.False(t, runner.called("limine"), "BIOS stage installer must not run on UEFI")

	// Generated files are echoed for visibility.
	require.Contains(t, out.String(), "generated "+env.ConfigPath())
	require.Contains(t, out.String(), "generated "+env.HookPath())
}

func TestInstallBIOS(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.BIOS)
	log := report.New(out)

	Install(env, log)

	require.Equal(t, exitcode.OK, log.ExitCode())

	stage2, err := os.ReadFile(filepath.Join(env.BootDir(), BIOSStage2Name))
	require.NoError(t, err)
	require.Equal(t, "bios stage 2", string(stage2))

	require.True(t, runner.called("limine bios-install /dev/sda --uninstall-data-file="+env.UninstallDataPath()),
		"stage-1 install call missing: %v", runner.calls)
	require.False(t, runner.called("efibootmgr"), "boot entries must not be touched on BIOS")

	hook, err := os.ReadFile(env.HookPath())
	require.NoError(t, err)
	require.Contains(t, string(hook), "limine bios-install /dev/sda")
	require.Contains(t, string(hook), "&& cp "+filepath.Join(env.Defaults.LoaderDir, BIOSStage2Name))
}

func TestInstallTwiceOverwritesConfig(t *testing.T) {
	env, _, out := newTestEnv(t, firmware.UEFI)

	Install(env, report.New(out))

	env.Label = "Custom"
	Install(env, report.New(out))

	conf, err := os.ReadFile(env.ConfigPath())
	require.NoError(t, err)
	require.Contains(t, string(conf), "/Custom")
	require.NotContains(t, string(conf), "/Arch Linux")
	require.Equal(t, 1, strings.Count(string(conf), "timeout:"), "config must be overwritten, not appended")

	require.Contains(t, out.String(), "updating "+env.ConfigPath())
}

func TestInstallContinuesPastEntryFailure(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.UEFI)
	runner.errs = map[string]error{"efibootmgr --create": os.ErrPermission}
	log := report.New(out)

	Install(env, log)

	require.Equal(t, exitcode.CreateBootEntry, log.ExitCode())

	// Later steps still ran.
	require.FileExists(t, filepath.Join(env.BootDir(), EFILoaderName))
	require.FileExists(t, env.HookPath())
}

func TestInstallRootUUIDFailureIsConfigError(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.BIOS)
	runner.errs = map[string]error{"findmnt": os.ErrNotExist}
	log := report.New(out)

	Install(env, log)

	require.Equal(t, exitcode.WriteConfig, log.ExitCode())
	require.NoFileExists(t, env.ConfigPath())
	require.FileExists(t, env.HookPath(), "hook step must still run")
}

func TestInstallBootDirCreateFailure(t *testing.T) {
	env, _, out := newTestEnv(t, firmware.UEFI)
	bootDir := env.BootDir()
	env.System = faultSystem{System: RealSystem{}, mkdirAll: func(path string, perm os.FileMode) error {
		if path == bootDir {
			return os.ErrPermission
		}
		return os.MkdirAll(path, perm)
	}}
	log := report.New(out)

	Install(env, log)

	require.Equal(t, exitcode.CreateBootDir, log.ExitCode())
	require.FileExists(t, env.HookPath())
}

func TestUninstallUEFIDeletesOnlyMatchingEntries(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.UEFI)

	Install(env, report.New(out))
	require.FileExists(t, env.HookPath())

	runner.outputs["efibootmgr --verbose"] = strings.Join([]string{
		"BootCurrent: 0001",
		"BootOrder: 0001,0000,0003",
		"Boot0000* Windows Boot Manager\tHD(1,GPT,11111111-2222-3333-4444-555555555555,0x800,0x32000)/File(\\EFI\\Microsoft\\bootmgfw.efi)",
		"Boot0001* Arch Linux\tHD(1,GPT," + testPartUUID + ",0x800,0x100000)/File(\\limine\\BOOTX64.EFI)",
		"Boot0003* Rescue\tHD(2,GPT,66666666-7777-8888-9999-000000000000,0x800,0x32000)/File(\\EFI\\rescue.efi)",
	}, "\n")

	log := report.New(out)
	Uninstall(env, log)

	require.Equal(t, exitcode.OK, log.ExitCode())
	require.True(t, runner.called("efibootmgr --bootnum 0001 --delete-bootnum"), "matching entry not deleted: %v", runner.calls)
	require.False(t, runner.called("efibootmgr --bootnum 0000"), "non-matching entry deleted")
	require.False(t, runner.called("efibootmgr --bootnum 0003"), "non-matching entry deleted")

	require.NoFileExists(t, env.HookPath())
	require.NoDirExists(t, env.BootDir())
}

func TestUninstallEntryIDExtractionFailureContinues(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.UEFI)
	require.NoError(t, os.MkdirAll(env.BootDir(), 0o755))

	runner.outputs = map[string]string{
		"efibootmgr --verbose": "  stray line with " + testPartUUID + "\n" +
			"Boot0002* Arch Linux\tHD(1,GPT," + testPartUUID + ",0x800,0x100000)/File(\\limine\\BOOTX64.EFI)",
	}

	log := report.New(out)
	Uninstall(env, log)

	require.Equal(t, exitcode.DeleteBootEntry, log.ExitCode())
	require.True(t, runner.called("efibootmgr --bootnum 0002 --delete-bootnum"), "remaining entry must still be deleted: %v", runner.calls)
	require.NoDirExists(t, env.BootDir(), "boot dir delete must still run")
}

func TestUninstallBIOSMissingDataStillAttemptsStage1(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.BIOS)
	require.NoError(t, os.MkdirAll(env.BootDir(), 0o755))
	runner.errs = map[string]error{"limine bios-install --uninstall": os.ErrNotExist}

	log := report.New(out)
	Uninstall(env, log)

	// The missing-data code is first even though stage-1 uninstall also failed.
	require.Equal(t, exitcode.UninstallDataMissing, log.ExitCode())
	require.True(t, runner.called("limine bios-install --uninstall --uninstall-data-file="+env.UninstallDataPath()+" /dev/sda"),
		"stage-1 uninstall must still be attempted: %v", runner.calls)
}

func TestUninstallBIOSWithData(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.BIOS)

	Install(env, report.New(out))
	require.NoError(t, os.WriteFile(env.UninstallDataPath(), []byte("data"), 0o644))

	log := report.New(out)
	Uninstall(env, log)

	require.Equal(t, exitcode.OK, log.ExitCode())
	require.True(t, runner.called("limine bios-install --uninstall"))
	require.NoDirExists(t, env.BootDir())
	require.NoFileExists(t, env.HookPath())
}

func TestUninstallTwiceIsIdempotent(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.UEFI)
	runner.outputs["efibootmgr --verbose"] = "BootOrder: 0000\n"

	Install(env, report.New(out))

	Uninstall(env, report.New(out))

	second := report.New(out)
	Uninstall(env, second)
	require.Equal(t, exitcode.OK, second.ExitCode(), "second uninstall must not error on absent paths")
}

func TestUninstallHookDeleteFailure(t *testing.T) {
	env, runner, out := newTestEnv(t, firmware.UEFI)
	runner.outputs["efibootmgr --verbose"] = "BootOrder: 0000\n"

	Install(env, report.New(out))

	env.System = faultSystem{System: RealSystem{}, remove: func(string) error { return os.ErrPermission }}
	log := report.New(out)
	Uninstall(env, log)

	require.Equal(t, exitcode.DeleteHook, log.ExitCode())
	require.NoDirExists(t, env.BootDir(), "boot dir delete must still run")
}
