// Package cmdrun executes the external tools the installer collaborates with
// (lsblk, findmnt, efibootmgr, limine). Each tool is invoked at most once per
// logical step and runs to completion before the next begins.
package cmdrun

import (
	"strings"

	"github.com/siderolabs/go-cmd/pkg/cmd"
	"github.com/sirupsen/logrus"
)

// Runner executes an external tool and returns its combined output.
// Implementations must not retry.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// Real runs commands on the host.
type Real struct{}

// Run invokes the named tool and waits for it to exit.
func (Real) Run(name string, args ...string) (string, error) {
	logrus.Debugf("run: %s %s", name, strings.Join(args, " "))

	out, err := cmd.Run(name, args...)
	if err != nil {
		logrus.Debugf("run: %s failed: %v", name, err)

		return out, err
	}

	return out, nil
}
