// Package exitcode maps every failure kind to the distinct process exit
// status the tool reports for it.
package exitcode

import "fmt"

// Code is a process exit status. Zero means success; every failure kind has
// its own positive value so callers can tell failures apart by status alone.
type Code int

const (
	// OK is the success status.
	OK Code = 0

	// Argument and resolution errors (fatal, shown with usage).
	PartitionNotGiven  Code = 1
	PartitionMissing   Code = 2
	MultiplePartitions Code = 3
	InvalidLabel       Code = 4
	InvalidPartition   Code = 5

	// Install step errors (recorded, execution continues).
	CreateBootDir   Code = 6
	WriteConfig     Code = 7
	CreateHookDir   Code = 8
	CreateBootEntry Code = 9
	InstallLoader   Code = 10
	Stage1Install   Code = 11
	Stage2Install   Code = 12
	WriteHook       Code = 13

	// Uninstall step errors (recorded, execution continues).
	DeleteHook           Code = 14
	DeleteBootEntry      Code = 15
	UninstallDataMissing Code = 16
	Stage1Uninstall      Code = 17
	DeleteBootDir        Code = 18

	// InvalidDefaults covers an unreadable or invalid defaults file.
	InvalidDefaults Code = 19
)

// Error couples a failure with the exit status it maps to.
type Error struct {
	Code Code
	Err  error
}

// Error returns the wrapped failure message.
func (e *Error) Error() string { return e.Err.Error() }

// Unwrap exposes the wrapped error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a coded error from a format string.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}
