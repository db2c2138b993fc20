// Package shell is the interactive surface: a readline loop that parses each
// line into a command tree and hands it to the interpreter.
package shell

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/minishdev/minish/core/config"
	"github.com/minishdev/minish/core/interp"
	"github.com/minishdev/minish/core/parse"
	"golang.org/x/term"
)

const (
	EnvHome     = "HOME"
	EnvPWD      = "PWD"
	EnvPath     = "PATH"
	EnvPrompt   = "PS1"
	EnvHostname = "HOSTNAME"
	EnvUser     = "USER"

	// DefaultPrompt is used when neither the environment nor the
	// configuration provide one.
	DefaultPrompt = `\u@\h:\w\$ `
)

type Shell struct {
	Interp   *interp.Interp
	Readline *readline.Instance
	Config   *config.Configuration

	lastStatus int
}

// New builds a shell around the given streams. The environment table starts
// as a copy of the process environment.
func New(cfg *config.Configuration, stdin io.Reader, stdout, stderr io.Writer) (*Shell, error) {
	rlCfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(stdin),
		Stdout:      stdout,
		Stderr:      stderr,
		HistoryFile: cfg.HistoryFile,
		FuncGetWidth: func() int {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				return w
			}
			return 80
		},
		FuncIsTerminal: func() bool {
			f, ok := stdin.(*os.File)
			return ok && term.IsTerminal(int(f.Fd()))
		},
	}
	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, err
	}

	sh := &Shell{
		Interp:   interp.New(interp.NewEnvFromList(os.Environ())),
		Readline: rl,
		Config:   cfg,
	}
	sh.Interp.SetStdio(stdin, stdout, stderr)
	sh.seedEnv()

	return sh, nil
}

// seedEnv fills in the variables login would have set, without clobbering
// anything inherited from the parent process.
func (s *Shell) seedEnv() {
	env := s.Interp.Env()
	if _, ok := env.LookupEnv(EnvPath); !ok {
		env.Setenv(EnvPath, s.Config.DefaultPath)
	}
	if _, ok := env.LookupEnv(EnvHostname); !ok {
		if host, err := os.Hostname(); err == nil {
			env.Setenv(EnvHostname, host)
		}
	}
	env.Setenv(EnvPWD, s.Interp.Getwd())
}

// Run reads and runs commands until input closes or a command asks the
// shell to exit, and returns the last command's status.
func (s *Shell) Run() int {
	if s.Config.Motd != "" {
		fmt.Fprintln(s.Readline, s.Config.Motd)
	}

	for {
		s.Readline.SetPrompt(s.prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return s.lastStatus // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue // Interrupt clears the line.

		case err != nil:
			log.Printf("readline: %v", err)
			continue

		case strings.TrimSpace(line) == "":
			continue

		default:
			if quit := s.Eval(line); quit {
				return s.lastStatus
			}
		}
	}
}

// Eval parses and runs one unit of input, reporting whether the shell
// should quit. The exit request never masquerades as a status code, so a
// command exiting 1 and the `exit` builtin stay distinguishable here.
func (s *Shell) Eval(src string) (quit bool) {
	node, err := parse.Parse(src)
	if err != nil {
		fmt.Fprintf(s.Readline, "minish: %v\n", err)
		s.lastStatus = 1
		return false
	}

	res := s.Interp.Run(node)
	if res.Exit {
		return true
	}
	s.lastStatus = res.Code

	// Keep $PWD current for prompts and later children after any cd.
	s.Interp.Env().Setenv(EnvPWD, s.Interp.Getwd())
	return false
}

// LastStatus returns the status of the most recent command.
func (s *Shell) LastStatus() int {
	return s.lastStatus
}

func (s *Shell) Close() error {
	return s.Readline.Close()
}
