package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI usage line.
	RootUse = "limine-install <partition>"
	// RootShort is the short description for the root command.
	RootShort = "Install or remove the Limine boot loader"
	RootLong  = "Installs the Limine boot loader onto the given boot partition (BIOS or UEFI),\n" +
		"registers a pacman upgrade hook, and manages UEFI firmware boot entries.\n" +
		"With --uninstall, removes the hook, boot entries or BIOS stages, and the\n" +
		"boot-loader directory."

	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	FlagLabel     = "Boot menu entry label"
	FlagUninstall = "Remove the boot loader instead of installing it"
	FlagYes       = "Skip the uninstall confirmation prompt"
	FlagVerbose   = "Log every external command invocation"
	FlagConfig    = "Path to the defaults file"

	// UninstallConfirmFmt asks before removing an installation.
	UninstallConfirmFmt = "Remove Limine from %s?"
	UninstallAborted    = "Uninstall aborted."

	DoctorUse   = "doctor [partition]"
	DoctorShort = "Check that the system is ready for a Limine install"

	// InstalledFmt and RemovedFmt are the final success lines.
	InstalledFmt = "Limine installed to %s"
	RemovedFmt   = "Limine removed from %s"
	// RunFailedFmt is the final failure line; the code is the process exit status.
	RunFailedFmt = "failed: %s (exit code %d)"
)
