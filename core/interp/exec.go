package interp

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/minishdev/minish/core/tree"
)

// runSimple executes one leaf command: a builtin, an environment assignment,
// or an external program in a child process. It returns the command's exit
// status, or the exit sentinel for `exit`/`quit`.
func (i *Interp) runSimple(cmd *tree.SimpleCommand, sio stdio) Result {
	verb := i.expand(cmd.Verb)
	if verb == "" {
		return Result{Code: 1}
	}

	switch {
	case verb == "cd":
		return i.builtinCd(cmd, sio)
	case verb == "exit", verb == "quit":
		// Bypasses redirection entirely.
		return Result{Exit: true}
	case strings.Contains(verb, "="):
		return i.assign(verb)
	}

	rsio, release, err := i.applyRedirect(cmd, sio)
	if err != nil {
		fmt.Fprintf(sio.err, "minish: %v\n", err)
		return Result{Code: 1}
	}
	defer release()

	path, err := i.lookPath(verb)
	if err != nil {
		// Written to the redirected stderr, exactly where a child that
		// failed to replace its image would have reported it.
		fmt.Fprintf(rsio.err, "Execution failed for '%s'\n", verb)
		return Result{Code: 1}
	}

	argv := make([]string, 0, len(cmd.Params)+1)
	argv = append(argv, verb)
	for _, p := range cmd.Params {
		argv = append(argv, i.expand(p))
	}

	proc := &exec.Cmd{
		Path: path,
		Args: argv,
		Dir:  i.cwd,
		// Snapshot: children never observe assignments made after spawn.
		Env:    i.env.Environ(),
		Stdin:  rsio.in,
		Stdout: rsio.out,
		Stderr: rsio.err,
	}

	if err := proc.Start(); err != nil {
		die("start %s: %v", verb, err)
	}
	if err := proc.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Code: exitErr.ExitCode()}
		}
		die("wait %s: %v", verb, err)
	}
	return Result{}
}

// builtinCd changes the shell's directory without spawning. Redirection is
// applied and reverted around it for symmetry with every other command even
// though cd produces no output.
func (i *Interp) builtinCd(cmd *tree.SimpleCommand, sio stdio) Result {
	_, release, err := i.applyRedirect(cmd, sio)
	if err != nil {
		fmt.Fprintf(sio.err, "minish: %v\n", err)
		return Result{Code: 1}
	}
	defer release()

	switch len(cmd.Params) {
	case 0:
		return Result{}
	case 1:
		if err := i.chdir(i.expand(cmd.Params[0])); err != nil {
			return Result{Code: 1}
		}
		return Result{}
	default:
		return Result{Code: 1}
	}
}

// chdir moves the tracked working directory. Children spawned afterwards
// inherit it through exec.Cmd.Dir.
func (i *Interp) chdir(dir string) error {
	target := i.abs(dir)
	fi, err := i.fs.Stat(target)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}
	i.cwd = filepath.Clean(target)
	return nil
}

// assign sets an environment variable from a NAME=VALUE verb, splitting on
// the first '='. An empty name or value is a failure.
func (i *Interp) assign(verb string) Result {
	name, value, _ := strings.Cut(verb, "=")
	if name == "" || value == "" {
		return Result{Code: 1}
	}
	if err := i.env.Setenv(name, value); err != nil {
		return Result{Code: 1}
	}
	return Result{}
}
