// Package pathname derives the short label used to title notifications.
package pathname

import (
	"strings"

	"github.com/listenupapp/watchdog/internal/errors"
)

// separator is always '/': the watched path is a Linux path handed to inotify.
const separator = "/"

// DisplayName returns the final segment of path, or path itself when it has no
// separator. An empty path or one that ends in a separator has no final
// segment and yields an INVALID_PATH error.
func DisplayName(path string) (string, error) {
	if path == "" {
		return "", errors.InvalidPathf("empty path")
	}

	name := path
	if i := strings.LastIndex(path, separator); i >= 0 {
		name = path[i+1:]
	}

	if name == "" {
		return "", errors.InvalidPathf("path %q has no final segment", path)
	}
	return name, nil
}
