// Package interp executes command trees against the operating system:
// spawning processes, wiring anonymous pipes, applying I/O redirection and
// combining exit statuses according to the tree's operators.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/minishdev/minish/core/tree"
	"github.com/spf13/afero"
)

// Result is the outcome of interpreting a tree. Exit is the out-of-band
// request to terminate the shell; it can never be confused with a process
// exit status, which only ever populates Code.
type Result struct {
	Code int
	Exit bool
}

// Expander resolves a word to a single plain string.
type Expander func(tree.Word) string

// stdio is the execution context handed down the tree: the three standard
// streams the current command runs against.
type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// Interp interprets command trees. One Interp owns its environment table and
// tracked working directory; it holds no state tied to any single Run call,
// so trees from successive lines share environment and directory the way
// commands in one shell session do.
type Interp struct {
	env      *Env
	fs       afero.Fs
	cwd      string
	expander Expander

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates an interpreter around the given environment table, rooted in
// the process's working directory and talking to the process's standard
// streams.
func New(env *Env) *Interp {
	i := &Interp{
		env:    env,
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	i.cwd, _ = os.Getwd()
	return i
}

// fork derives the interpreter a spawned subtree runs against: the
// environment table is snapshotted and the working directory copied. A cd or
// assignment inside a pipe or parallel branch never reaches the parent, and
// parent mutations made after the fork are invisible to the child.
func (i *Interp) fork() *Interp {
	child := *i
	child.env = NewEnvFromList(i.env.Environ())
	return &child
}

// SetStdio replaces the outer standard streams.
func (i *Interp) SetStdio(in io.Reader, out, err io.Writer) {
	i.stdin = in
	i.stdout = out
	i.stderr = err
}

// SetFs replaces the filesystem redirection targets are opened on.
func (i *Interp) SetFs(fs afero.Fs) {
	i.fs = fs
}

// SetExpander replaces the word expander. The default resolves parameter
// references against the interpreter's environment table.
func (i *Interp) SetExpander(expand Expander) {
	i.expander = expand
}

// expand resolves a word through the configured expander.
func (i *Interp) expand(w tree.Word) string {
	if i.expander != nil {
		return i.expander(w)
	}
	return i.expandWord(w)
}

// Env returns the interpreter's environment table.
func (i *Interp) Env() *Env {
	return i.env
}

// Getwd returns the tracked working directory.
func (i *Interp) Getwd() string {
	return i.cwd
}

// expandWord is the default expander: literals pass through, parameter
// references resolve against the environment table.
func (i *Interp) expandWord(w tree.Word) string {
	var out string
	for _, part := range w.Parts {
		if part.Param != "" {
			out += i.env.Getenv(part.Param)
			continue
		}
		out += part.Lit
	}
	return out
}

// Run interprets the tree rooted at n. A nil tree is a no-op that succeeds.
func (i *Interp) Run(n *tree.Node) Result {
	return i.run(n, stdio{in: i.stdin, out: i.stdout, err: i.stderr})
}

func (i *Interp) run(n *tree.Node, sio stdio) Result {
	if n == nil {
		return Result{}
	}

	switch n.Op {
	case tree.OpNone:
		return i.runSimple(n.Cmd, sio)

	case tree.OpSequential:
		// Left runs for its side effects only; the right result wins. A
		// request to terminate the shell still cuts the sequence short.
		if r := i.run(n.Left, sio); r.Exit {
			return r
		}
		return i.run(n.Right, sio)

	case tree.OpIfNonzero:
		r := i.run(n.Left, sio)
		if r.Exit {
			return r
		}
		if r.Code != 0 {
			return i.run(n.Right, sio)
		}
		return Result{}

	case tree.OpIfZero:
		r := i.run(n.Left, sio)
		if r.Exit {
			return r
		}
		if r.Code == 0 {
			return i.run(n.Right, sio)
		}
		// A failing left side yields overall success without running right.
		return Result{}

	case tree.OpParallel:
		return boolResult(i.runParallel(n.Left, n.Right, sio))

	case tree.OpPipe:
		return boolResult(i.runPipeline(n.Left, n.Right, sio))

	default:
		return Result{Exit: true}
	}
}

func boolResult(ok bool) Result {
	if ok {
		return Result{}
	}
	return Result{Code: 1}
}

// die reports an unrecoverable infrastructure failure and terminates the
// process. Failures at this tier are never retried and never surfaced as a
// status code.
func die(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "minish: "+format+"\n", args...)
	os.Exit(1)
}
