// Package firmware picks the BIOS or UEFI code path. The decision is made
// once per invocation and threaded through both install and uninstall so a
// system installed under one firmware mode is uninstalled consistently.
package firmware

import "os"

// Kind is the firmware type of the running system.
type Kind int

const (
	// BIOS is legacy firmware without an EFI runtime.
	BIOS Kind = iota
	// UEFI is firmware exposing the EFI sysfs interface.
	UEFI
)

// EFISystemPath is the sysfs path whose presence indicates UEFI firmware.
const EFISystemPath = "/sys/firmware/efi"

// String returns the conventional name of the firmware kind.
func (k Kind) String() string {
	if k == UEFI {
		return "UEFI"
	}
	return "BIOS"
}

// Detect returns UEFI when the given EFI sysfs path exists and BIOS
// otherwise. Callers pass EFISystemPath outside of tests.
func Detect(efiPath string) Kind {
	if _, err := os.Stat(efiPath); err == nil {
		return UEFI
	}
	return BIOS
}
