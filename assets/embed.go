// Package assets embeds the default painting catalog and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed catalog.yaml sql/*.sql
var FS embed.FS

// Catalog returns the embedded catalog.yaml contents.
func Catalog() ([]byte, error) {
	return FS.ReadFile("catalog.yaml")
}

// Migrations returns the embedded sql/ directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// sql/ is embedded at compile time; Sub only fails on a malformed path.
		panic(err)
	}
	return sub
}
