package interp

import (
	"io"
	"os"
	"path/filepath"

	"github.com/minishdev/minish/core/tree"
)

// applyRedirect opens the redirection targets of cmd and returns the derived
// execution context plus a release function closing every file it opened.
// The release function must run on all exit paths: for builtins executed
// without spawning it is the revert step that keeps a redirection from
// leaking into the next command.
//
// Output and error targets are created with mode 0644 and truncated unless
// the command asks for append, independently per stream. When the output and
// error targets are the same exact string, stderr aliases the already-opened
// stdout file so both streams share one offset. Equality is textual: two
// different strings naming the same underlying file get separate
// descriptors.
func (i *Interp) applyRedirect(cmd *tree.SimpleCommand, sio stdio) (stdio, func(), error) {
	var files []io.Closer
	release := func() {
		for _, f := range files {
			f.Close()
		}
	}

	if cmd.In != nil {
		f, err := i.fs.Open(i.abs(i.expand(*cmd.In)))
		if err != nil {
			release()
			return sio, nil, err
		}
		files = append(files, f)
		sio.in = f
	}

	var outPath string
	if cmd.Out != nil {
		outPath = i.expand(*cmd.Out)
		f, err := i.fs.OpenFile(i.abs(outPath), outFlags(cmd.AppendOut), 0644)
		if err != nil {
			release()
			return sio, nil, err
		}
		files = append(files, f)
		sio.out = f
	}

	if cmd.Err != nil {
		errPath := i.expand(*cmd.Err)
		if cmd.Out != nil && errPath == outPath {
			sio.err = sio.out
		} else {
			f, err := i.fs.OpenFile(i.abs(errPath), outFlags(cmd.AppendErr), 0644)
			if err != nil {
				release()
				return sio, nil, err
			}
			files = append(files, f)
			sio.err = f
		}
	}

	return sio, release, nil
}

func outFlags(appendTo bool) int {
	if appendTo {
		return os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	return os.O_CREATE | os.O_WRONLY | os.O_TRUNC
}

// abs resolves a path against the interpreter's tracked working directory.
func (i *Interp) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(i.cwd, path)
}
