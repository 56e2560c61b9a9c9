package installer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/limine-install/internal/firmware"
	"github.com/conn-castle/limine-install/internal/messages"
	"github.com/conn-castle/limine-install/internal/templates"
)

func renderConfig(env Environment, rootUUID string) ([]byte, error) {
	return render("limine.conf.tmpl", struct {
		Label        string
		Kernel       string
		Initramfs    string
		RootUUID     string
		ExtraCmdline string
	}{
		Label:        env.Label,
		Kernel:       env.Defaults.Kernel,
		Initramfs:    env.Defaults.Initramfs,
		RootUUID:     rootUUID,
		ExtraCmdline: env.Defaults.ExtraCmdline,
	})
}

func renderHook(env Environment) ([]byte, error) {
	return render("limine_upgrade.hook.tmpl", struct {
		Command string
	}{
		Command: redeployCommand(env),
	})
}

// redeployCommand is the shell command the pacman hook runs after the limine
// package is installed or upgraded. It re-copies the loader files onto the
// boot partition and, on BIOS, re-runs the stage-1 installer.
func redeployCommand(env Environment) string {
	if env.Firmware == firmware.UEFI {
		return fmt.Sprintf("cp %s %s/",
			filepath.Join(env.Defaults.LoaderDir, EFILoaderName), env.BootDir())
	}
	return fmt.Sprintf("limine bios-install %s --uninstall-data-file=%s && cp %s %s/",
		env.Partition.Disk,
		env.UninstallDataPath(),
		filepath.Join(env.Defaults.LoaderDir, BIOSStage2Name),
		env.BootDir())
}

func render(name string, data any) ([]byte, error) {
	raw, err := templates.Read(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// previewConfigChange prints a unified diff when an existing configuration is
// about to be overwritten with different content. Diagnostic only; failures
// reading the current file simply skip the preview.
func (env Environment) previewConfigChange(next []byte) {
	current, err := env.System.ReadFile(env.ConfigPath())
	if err != nil || bytes.Equal(current, next) {
		return
	}

	diff := udiff.Unified(env.ConfigPath()+" (current)", env.ConfigPath()+" (new)", string(current), string(next))
	if strings.TrimSpace(diff) == "" {
		return
	}
	_, _ = fmt.Fprintf(env.Out, messages.ConfigDiffHeaderFmt+"\n%s", env.ConfigPath(), diff)
}
