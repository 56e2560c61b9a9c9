package messages

// Argument and resolution errors. These are fatal and shown with usage.
const (
	PartitionNotGiven  = "boot partition not given"
	PartitionMissing   = "boot partition missing"
	MultiplePartitions = "multiple boot partitions given"
	InvalidLabel       = "label must not be empty"

	InvalidPartitionFmt    = "invalid partition %s: %v"
	InvalidPartitionNoDisk = "invalid partition %s: no parent disk"
	DefaultsInvalidFmt     = "invalid defaults file %s: %v"
	DefaultsLabelEmptyFmt  = "invalid defaults file %s: label must not be empty"
	DefaultsOSReleaseFmt   = "invalid defaults file %s: read os-release: %v"
)

// Install and uninstall step errors. These are recorded and execution continues.
const (
	CreateBootDirFmt   = "create boot-loader directory %s: %v"
	WriteConfigFmt     = "write configuration %s: %v"
	RootUUIDFmt        = "resolve root filesystem UUID: %v"
	CreateHookDirFmt   = "create hook directory %s: %v"
	CreateBootEntryFmt = "create firmware boot entry for %s: %v"
	InstallLoaderFmt   = "install UEFI loader %s: %v"
	Stage1InstallFmt   = "install BIOS stage 1 on %s: %v"
	Stage2InstallFmt   = "install BIOS stage 2 %s: %v"
	WriteHookFmt       = "write upgrade hook %s: %v"
	DeleteHookFmt      = "delete upgrade hook %s: %v"
	ListBootEntriesFmt = "list firmware boot entries: %v"
	BootEntryIDFmt     = "extract boot entry id from %q"
	DeleteBootEntryFmt = "delete firmware boot entry %s: %v"
	UninstallDataFmt   = "uninstall data %s missing; was Limine installed in BIOS mode?"
	Stage1UninstallFmt = "uninstall BIOS stage 1 from %s: %v"
	DeleteBootDirFmt   = "delete boot-loader directory %s: %v"

	// ConfigDiffHeaderFmt introduces the diff shown when an existing
	// configuration is about to be overwritten with different content.
	ConfigDiffHeaderFmt = "updating %s:"
	// GeneratedFileFmt echoes a generated file back to the console.
	GeneratedFileFmt = "generated %s:"
)
