package messages

// Doctor check names and details.
const (
	DoctorStatusOKLabel   = "OK"
	DoctorStatusWarnLabel = "WARN"
	DoctorStatusFailLabel = "FAIL"

	DoctorCheckRoot        = "root privileges"
	DoctorCheckFirmware    = "firmware mode"
	DoctorCheckToolFmt     = "%s on PATH"
	DoctorCheckLoaderAsset = "loader asset"
	DoctorCheckOSRelease   = "os-release"
	DoctorCheckPartition   = "boot partition"

	DoctorNotRoot         = "must run as root"
	DoctorToolMissingFmt  = "%s not found on PATH"
	DoctorAssetMissingFmt = "%s not found; is the limine package installed?"
	DoctorOSReleaseErrFmt = "read %s: %v"
	DoctorPartitionErrFmt = "%v"
	DoctorNotMountedFmt   = "mount point %s is not accessible: %v"
	DoctorMountedFmt      = "%s mounted at %s"

	DoctorFailureSummary = "Some checks failed; fix the failures above before installing."
	DoctorSuccessSummary = "All checks passed."
)
