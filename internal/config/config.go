// Package config loads the optional defaults file. All values have built-in
// fallbacks so the tool works without any file present.
package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/limine-install/internal/exitcode"
	"github.com/conn-castle/limine-install/internal/messages"
	"github.com/conn-castle/limine-install/internal/osrelease"
)

// DefaultPath is where the defaults file is looked up unless --config is given.
const DefaultPath = "/etc/limine-install.toml"

// Values are the resolved defaults used by the installer.
type Values struct {
	// Label is the boot menu entry label; a --label flag overrides it.
	Label string
	// Kernel and Initramfs are file names on the boot volume.
	Kernel    string
	Initramfs string
	// ExtraCmdline is appended after the generated kernel command line.
	ExtraCmdline string
	// LoaderDir holds the packaged loader assets (BOOTX64.EFI, limine-bios.sys).
	LoaderDir string
	// HookDir is the pacman hook directory.
	HookDir string
}

// fileDefaults is the on-disk shape of the defaults file. Label is a pointer
// so an explicitly empty label can be rejected rather than silently ignored.
type fileDefaults struct {
	Label              *string `toml:"label"`
	LabelFromOSRelease bool    `toml:"label_from_os_release"`
	OSReleasePath      string  `toml:"os_release_path"`
	Kernel             string  `toml:"kernel"`
	Initramfs          string  `toml:"initramfs"`
	ExtraCmdline       string  `toml:"extra_cmdline"`
	LoaderDir          string  `toml:"loader_dir"`
	HookDir            string  `toml:"hook_dir"`
}

// Fallback returns the built-in defaults.
func Fallback() Values {
	return Values{
		Label:     "Arch Linux",
		Kernel:    "vmlinuz-linux",
		Initramfs: "initramfs-linux.img",
		LoaderDir: "/usr/share/limine",
		HookDir:   "/etc/pacman.d/hooks",
	}
}

// Load reads the defaults file at path and merges it over the built-in
// fallbacks. A missing file is not an error.
func Load(path string) (Values, error) {
	values := Fallback()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return values, exitcode.Errorf(exitcode.InvalidDefaults, messages.DefaultsInvalidFmt, path, err)
	}

	var file fileDefaults
	if err := toml.Unmarshal(data, &file); err != nil {
		return values, exitcode.Errorf(exitcode.InvalidDefaults, messages.DefaultsInvalidFmt, path, err)
	}

	if file.Label != nil {
		label := strings.TrimSpace(*file.Label)
		if label == "" {
			return values, exitcode.Errorf(exitcode.InvalidDefaults, messages.DefaultsLabelEmptyFmt, path)
		}
		values.Label = label
	}
	if file.LabelFromOSRelease {
		osrPath := file.OSReleasePath
		if osrPath == "" {
			osrPath = osrelease.Path
		}
		osr, err := osrelease.Load(osrPath)
		if err != nil {
			return values, exitcode.Errorf(exitcode.InvalidDefaults, messages.DefaultsOSReleaseFmt, path, err)
		}
		if name := osrelease.PrettyName(osr); name != "" {
			values.Label = name
		}
	}
	if file.Kernel != "" {
		values.Kernel = file.Kernel
	}
	if file.Initramfs != "" {
		values.Initramfs = file.Initramfs
	}
	if file.ExtraCmdline != "" {
		values.ExtraCmdline = strings.TrimSpace(file.ExtraCmdline)
	}
	if file.LoaderDir != "" {
		values.LoaderDir = file.LoaderDir
	}
	if file.HookDir != "" {
		values.HookDir = file.HookDir
	}

	return values, nil
}
