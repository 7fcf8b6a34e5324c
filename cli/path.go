package cli

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/d3on/yconf/pkg"
)

// basePrefix returns the directory base name used for per-user paths.
// It is derived from the executable name, falling back to the package
// name for debugger-generated binaries and dot-prefixed names.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))
		id = strings.TrimLeft(id, ".")

		if id == "" || strings.HasPrefix(id, "__debug_bin") {
			id = pkg.Name
		}

		return id
	},
)

// cacheDir returns the per-user cache directory used for transient files
// such as profiler output.
var cacheDir = sync.OnceValue(
	func() string {
		dir, err := os.UserCacheDir()
		if err != nil {
			if dir, err = os.UserHomeDir(); err == nil {
				dir = filepath.Join(dir, ".cache")
			} else if dir, err = os.Getwd(); err != nil {
				dir = "."
			}
		}

		return filepath.Join(dir, basePrefix())
	},
)
