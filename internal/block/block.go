// Package block resolves the boot partition to its parent disk, mount point,
// and partition UUID using lsblk, and the root filesystem UUID using findmnt.
package block

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/conn-castle/limine-install/internal/cmdrun"
	"github.com/conn-castle/limine-install/internal/exitcode"
	"github.com/conn-castle/limine-install/internal/messages"
)

// PartitionInfo describes the boot partition. It is derived once per
// invocation and read-only afterward.
type PartitionInfo struct {
	// Partition is the partition device path as given on the command line.
	Partition string
	// Disk is the parent block device owning the partition.
	Disk string
	// MountPoint is where the partition is currently mounted.
	MountPoint string
	// PartUUID is the partition UUID. On MBR disks this is the short
	// xxxxxxxx-NN form, not an RFC 4122 UUID.
	PartUUID string
}

// Resolve looks up the parent disk, mount point, and partition UUID of the
// given partition. Each field is queried exactly once; any lookup failure or
// an empty parent disk is an invalid-partition error.
func Resolve(runner cmdrun.Runner, partition string) (*PartitionInfo, error) {
	disk, err := lsblkField(runner, partition, "pkname")
	if err != nil {
		return nil, exitcode.Errorf(exitcode.InvalidPartition, messages.InvalidPartitionFmt, partition, err)
	}
	if disk == "" {
		return nil, exitcode.Errorf(exitcode.InvalidPartition, messages.InvalidPartitionNoDisk, partition)
	}

	mountPoint, err := lsblkField(runner, partition, "mountpoint")
	if err != nil {
		return nil, exitcode.Errorf(exitcode.InvalidPartition, messages.InvalidPartitionFmt, partition, err)
	}

	partUUID, err := lsblkField(runner, partition, "partuuid")
	if err != nil {
		return nil, exitcode.Errorf(exitcode.InvalidPartition, messages.InvalidPartitionFmt, partition, err)
	}

	return &PartitionInfo{
		Partition:  partition,
		Disk:       filepath.Join("/dev", disk),
		MountPoint: mountPoint,
		PartUUID:   partUUID,
	}, nil
}

// RootFSUUID returns the filesystem UUID of the root mount, validated as an
// RFC 4122 UUID before it is embedded in a kernel command line.
func RootFSUUID(runner cmdrun.Runner) (string, error) {
	out, err := runner.Run("findmnt", "-no", "UUID", "/")
	if err != nil {
		return "", err
	}

	value := strings.TrimSpace(out)
	if _, err := uuid.Parse(value); err != nil {
		return "", fmt.Errorf("root filesystem UUID %q: %w", value, err)
	}

	return value, nil
}

func lsblkField(runner cmdrun.Runner, partition string, field string) (string, error) {
	out, err := runner.Run("lsblk", "-no", field, partition)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}
