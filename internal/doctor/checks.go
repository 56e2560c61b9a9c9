// Package doctor runs preflight checks so a failed install can be diagnosed
// before any state is touched.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/limine-install/internal/block"
	"github.com/conn-castle/limine-install/internal/cmdrun"
	"github.com/conn-castle/limine-install/internal/firmware"
	"github.com/conn-castle/limine-install/internal/installer"
	"github.com/conn-castle/limine-install/internal/messages"
	"github.com/conn-castle/limine-install/internal/osrelease"
)

// Status is the outcome of a single check.
type Status int

const (
	// StatusOK means the check passed.
	StatusOK Status = iota
	// StatusWarn means the check found something suspicious but not blocking.
	StatusWarn
	// StatusFail means an install would not succeed.
	StatusFail
)

// Result describes one completed check.
type Result struct {
	Status    Status
	CheckName string
	Message   string
}

// Options selects the environment the checks run against. Zero fields fall
// back to the real host collaborators.
type Options struct {
	// Partition, when non-empty, enables the boot-partition checks.
	Partition string
	// LoaderDir holds the packaged loader assets.
	LoaderDir string
	// EFIPath is the firmware detection path.
	EFIPath string
	// OSReleasePath identifies the distribution.
	OSReleasePath string

	Runner   cmdrun.Runner
	Geteuid  func() int
	LookPath func(file string) (string, error)
	Statfs   func(path string, buf *unix.Statfs_t) error
}

func (o *Options) fillDefaults() {
	if o.EFIPath == "" {
		o.EFIPath = firmware.EFISystemPath
	}
	if o.OSReleasePath == "" {
		o.OSReleasePath = osrelease.Path
	}
	if o.Runner == nil {
		o.Runner = cmdrun.Real{}
	}
	if o.Geteuid == nil {
		o.Geteuid = os.Geteuid
	}
	if o.LookPath == nil {
		o.LookPath = exec.LookPath
	}
	if o.Statfs == nil {
		o.Statfs = unix.Statfs
	}
}

// Run executes all checks and returns their results in display order.
func Run(opts Options) []Result {
	opts.fillDefaults()

	kind := firmware.Detect(opts.EFIPath)

	results := []Result{
		checkRoot(opts),
		{Status: StatusOK, CheckName: messages.DoctorCheckFirmware, Message: kind.String()},
	}
	results = append(results, checkTools(opts, kind)...)
	results = append(results, checkLoaderAsset(opts, kind))
	results = append(results, checkOSRelease(opts))
	if opts.Partition != "" {
		results = append(results, checkPartition(opts))
	}

	return results
}

// Passed reports whether no check failed. Warnings do not block.
func Passed(results []Result) bool {
	for _, result := range results {
		if result.Status == StatusFail {
			return false
		}
	}
	return true
}

func checkRoot(opts Options) Result {
	if opts.Geteuid() != 0 {
		return Result{Status: StatusFail, CheckName: messages.DoctorCheckRoot, Message: messages.DoctorNotRoot}
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckRoot}
}

func checkTools(opts Options, kind firmware.Kind) []Result {
	tools := []string{"lsblk", "findmnt"}
	if kind == firmware.UEFI {
		tools = append(tools, "efibootmgr")
	} else {
		tools = append(tools, "limine")
	}

	var results []Result
	for _, tool := range tools {
		name := fmt.Sprintf(messages.DoctorCheckToolFmt, tool)
		if _, err := opts.LookPath(tool); err != nil {
			results = append(results, Result{
				Status:    StatusFail,
				CheckName: name,
				Message:   fmt.Sprintf(messages.DoctorToolMissingFmt, tool),
			})
			continue
		}
		results = append(results, Result{Status: StatusOK, CheckName: name})
	}
	return results
}

func checkLoaderAsset(opts Options, kind firmware.Kind) Result {
	asset := installer.EFILoaderName
	if kind == firmware.BIOS {
		asset = installer.BIOSStage2Name
	}
	path := filepath.Join(opts.LoaderDir, asset)

	if _, err := os.Stat(path); err != nil {
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckLoaderAsset,
			Message:   fmt.Sprintf(messages.DoctorAssetMissingFmt, path),
		}
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckLoaderAsset, Message: path}
}

func checkOSRelease(opts Options) Result {
	values, err := osrelease.Load(opts.OSReleasePath)
	if err != nil {
		return Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckOSRelease,
			Message:   fmt.Sprintf(messages.DoctorOSReleaseErrFmt, opts.OSReleasePath, err),
		}
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckOSRelease, Message: osrelease.PrettyName(values)}
}

func checkPartition(opts Options) Result {
	info, err := block.Resolve(opts.Runner, opts.Partition)
	if err != nil {
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckPartition,
			Message:   fmt.Sprintf(messages.DoctorPartitionErrFmt, err),
		}
	}

	var stat unix.Statfs_t
	if err := opts.Statfs(info.MountPoint, &stat); err != nil {
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckPartition,
			Message:   fmt.Sprintf(messages.DoctorNotMountedFmt, info.MountPoint, err),
		}
	}

	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckPartition,
		Message:   fmt.Sprintf(messages.DoctorMountedFmt, opts.Partition, info.MountPoint),
	}
}
