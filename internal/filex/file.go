// Package filex has small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold filePath, if missing,
// and returns it. A bare file name resolves to the working directory, which
// always exists.
func EnsureParentDir(filePath string) (string, error) {
	dir := filepath.Dir(filePath)
	if dir == "." {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
