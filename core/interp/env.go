package interp

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Env is the shell's environment variable table. It is process-wide state
// owned by the interpreter: assignments mutate it in place, and every child
// receives a snapshot through Environ at spawn time, so mutations after a
// spawn are invisible to children already running.
type Env struct {
	rw  sync.RWMutex
	env map[string]string
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{}
}

// NewEnvFromList creates an environment from "key=value" entries, typically
// os.Environ().
func NewEnvFromList(environ []string) *Env {
	out := NewEnv()
	for _, e := range environ {
		key, value, _ := strings.Cut(e, "=")
		// Never fails for a non-empty key; entries without one are dropped.
		_ = out.Setenv(key, value)
	}
	return out
}

// Setenv sets the value of the variable named by the key, overwriting any
// previous value.
func (e *Env) Setenv(key, value string) error {
	if key == "" {
		return fmt.Errorf("setenv: empty name")
	}
	e.rw.Lock()
	defer e.rw.Unlock()

	if e.env == nil {
		e.env = make(map[string]string)
	}
	e.env[key] = value
	return nil
}

// Unsetenv removes a single variable.
func (e *Env) Unsetenv(key string) {
	e.rw.Lock()
	defer e.rw.Unlock()
	if e.env != nil {
		delete(e.env, key)
	}
}

// LookupEnv retrieves the value of the variable named by the key and whether
// it is present, distinguishing empty from unset.
func (e *Env) LookupEnv(key string) (string, bool) {
	e.rw.RLock()
	defer e.rw.RUnlock()

	val, ok := e.env[key]
	return val, ok
}

// Getenv retrieves the value of the variable named by the key, empty if the
// variable is not present.
func (e *Env) Getenv(key string) string {
	val, _ := e.LookupEnv(key)
	return val
}

// ExpandEnv replaces ${var} or $var in the string with values from the
// table. Undefined variables expand to the empty string.
func (e *Env) ExpandEnv(s string) string {
	return os.Expand(s, e.Getenv)
}

// Environ returns a sorted copy of the table in "key=value" form. This is
// the snapshot handed to children at spawn time.
func (e *Env) Environ() []string {
	e.rw.RLock()
	defer e.rw.RUnlock()

	env := make([]string, 0, len(e.env))
	for k, v := range e.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env
}
