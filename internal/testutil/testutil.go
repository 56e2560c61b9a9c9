// Package testutil provides helpers for faking the external tools the
// installer invokes (lsblk, findmnt, efibootmgr, limine) with shell stubs.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the tool name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteScript(t, dir, name, "exit 0")
}

// WriteStubWithExit writes an executable shell stub that exits with the
// provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	WriteScript(t, dir, name, fmt.Sprintf("exit %d", exitCode))
}

// WriteStubWithOutput writes an executable shell stub that prints output and
// exits successfully.
func WriteStubWithOutput(t *testing.T, dir string, name string, output string) {
	t.Helper()
	WriteScript(t, dir, name, fmt.Sprintf("cat <<'EOF'\n%s\nEOF\nexit 0", output))
}

// WriteScript writes an executable shell stub with the given body.
func WriteScript(t *testing.T, dir string, name string, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WriteLsblkStub writes an lsblk stub that answers the three resolver fields
// for any partition argument.
func WriteLsblkStub(t *testing.T, dir string, pkname string, mountpoint string, partuuid string) {
	t.Helper()
	body := fmt.Sprintf(`case "$2" in
pkname) echo '%s' ;;
mountpoint) echo '%s' ;;
partuuid) echo '%s' ;;
*) exit 1 ;;
esac
exit 0`, pkname, mountpoint, partuuid)
	WriteScript(t, dir, "lsblk", body)
}

// WriteFindmntStub writes a findmnt stub that reports the given root
// filesystem UUID.
func WriteFindmntStub(t *testing.T, dir string, rootUUID string) {
	t.Helper()
	WriteScript(t, dir, "findmnt", fmt.Sprintf("echo '%s'\nexit 0", rootUUID))
}

// PrependPath puts dir at the front of PATH for the remainder of the test.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
