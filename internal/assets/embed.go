package assets

import (
	"embed"
	"io/fs"
)

//go:embed data
var embedded embed.FS

// EmbeddedFS returns the built-in asset tree rooted at its data directory.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // the directory is compiled in
	}
	return sub
}
