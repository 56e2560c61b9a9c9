// Package templates holds the embedded file templates the installer renders.
package templates

import (
	"embed"
	"fmt"
)

//go:embed files
var files embed.FS

// Read returns the embedded template with the given name.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile("files/" + name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	return data, nil
}
