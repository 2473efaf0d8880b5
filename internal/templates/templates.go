// Package templates embeds the files written by hxr init.
package templates

import "embed"

//go:embed hxr.toml
var files embed.FS

// Read returns the embedded template named name.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
