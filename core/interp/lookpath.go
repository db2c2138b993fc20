package interp

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// errNotFound is the error resulting if a path search failed to find an
// executable file.
var errNotFound = exec.ErrNotFound

func findExecutable(file string) error {
	d, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// lookPath searches for an executable named file in the directories named by
// the PATH entry of the interpreter's environment table. If file contains a
// slash, it is tried directly against the tracked working directory and the
// PATH is not consulted. The result is always an absolute path.
func (i *Interp) lookPath(file string) (string, error) {
	if strings.Contains(file, "/") {
		path := i.abs(file)
		if err := findExecutable(path); err != nil {
			return "", err
		}
		return path, nil
	}
	for _, dir := range filepath.SplitList(i.env.Getenv("PATH")) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = i.cwd
		}
		path := filepath.Join(dir, file)
		if !filepath.IsAbs(path) {
			path = i.abs(path)
		}
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", errNotFound
}
