package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minishdev/minish/core/tree"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(s string) *tree.Word {
	w := tree.Lit(s)
	return &w
}

func newRedirectInterp(t *testing.T) *Interp {
	t.Helper()

	i := New(NewEnv())
	i.SetFs(afero.NewMemMapFs())
	return i
}

func TestApplyRedirectNone(t *testing.T) {
	i := newRedirectInterp(t)
	base := stdio{in: strings.NewReader(""), out: &bytes.Buffer{}, err: &bytes.Buffer{}}

	sio, release, err := i.applyRedirect(&tree.SimpleCommand{Verb: tree.Lit("true")}, base)
	require.NoError(t, err)
	defer release()

	assert.Equal(t, base, sio)
}

func TestApplyRedirectMissingInput(t *testing.T) {
	i := newRedirectInterp(t)

	cmd := &tree.SimpleCommand{Verb: tree.Lit("cat"), In: word("/no/such/file")}
	_, _, err := i.applyRedirect(cmd, stdio{})

	assert.Error(t, err)
}

func TestApplyRedirectSharedTarget(t *testing.T) {
	i := newRedirectInterp(t)

	t.Run("identical strings share one handle", func(t *testing.T) {
		cmd := &tree.SimpleCommand{
			Verb: tree.Lit("true"),
			Out:  word("/tmp/both.log"),
			Err:  word("/tmp/both.log"),
		}
		sio, release, err := i.applyRedirect(cmd, stdio{})
		require.NoError(t, err)
		defer release()

		assert.Same(t, sio.out, sio.err)
	})

	t.Run("different strings get separate handles", func(t *testing.T) {
		cmd := &tree.SimpleCommand{
			Verb: tree.Lit("true"),
			Out:  word("/tmp/out.log"),
			Err:  word("/tmp/err.log"),
		}
		sio, release, err := i.applyRedirect(cmd, stdio{})
		require.NoError(t, err)
		defer release()

		assert.NotSame(t, sio.out, sio.err)
	})
}

func TestApplyRedirectExpandsTargets(t *testing.T) {
	i := newRedirectInterp(t)
	require.NoError(t, i.Env().Setenv("LOGDIR", "/var/log"))

	cmd := &tree.SimpleCommand{
		Verb: tree.Lit("true"),
		Out: &tree.Word{Parts: []tree.Part{
			{Param: "LOGDIR"},
			{Lit: "/run.log"},
		}},
	}
	_, release, err := i.applyRedirect(cmd, stdio{})
	require.NoError(t, err)
	release()

	exists, err := afero.Exists(i.fs, "/var/log/run.log")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOutFlags(t *testing.T) {
	assert.NotZero(t, outFlags(false)&os.O_TRUNC)
	assert.Zero(t, outFlags(false)&os.O_APPEND)
	assert.NotZero(t, outFlags(true)&os.O_APPEND)
	assert.Zero(t, outFlags(true)&os.O_TRUNC)
}

// The remaining cases exercise redirection end to end with real processes
// and a real filesystem.

func TestRedirectOutputTruncates(t *testing.T) {
	i, _, _ := newTestInterp(t)
	target := filepath.Join(t.TempDir(), "out.txt")

	cmd := &tree.SimpleCommand{Verb: tree.Lit("echo"), Params: []tree.Word{tree.Lit("hi")}, Out: word(target)}
	require.Equal(t, Result{}, i.Run(tree.NewLeaf(cmd)))
	require.Equal(t, Result{}, i.Run(tree.NewLeaf(cmd)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))
}

func TestRedirectOutputAppends(t *testing.T) {
	i, _, _ := newTestInterp(t)
	target := filepath.Join(t.TempDir(), "out.txt")

	cmd := &tree.SimpleCommand{
		Verb:      tree.Lit("echo"),
		Params:    []tree.Word{tree.Lit("hi")},
		Out:       word(target),
		AppendOut: true,
	}
	require.Equal(t, Result{}, i.Run(tree.NewLeaf(cmd)))
	require.Equal(t, Result{}, i.Run(tree.NewLeaf(cmd)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hi\nhi\n", string(data))
}

func TestRedirectInput(t *testing.T) {
	i, stdout, _ := newTestInterp(t)
	source := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(source, []byte("from file"), 0644))

	cmd := &tree.SimpleCommand{Verb: tree.Lit("cat"), In: word(source)}
	res := i.Run(tree.NewLeaf(cmd))

	assert.Equal(t, Result{}, res)
	assert.Equal(t, "from file", stdout.String())
}

func TestRedirectSharedTargetInterleaves(t *testing.T) {
	i, _, _ := newTestInterp(t)
	target := filepath.Join(t.TempDir(), "both.txt")

	cmd := &tree.SimpleCommand{
		Verb:   tree.Lit("sh"),
		Params: []tree.Word{tree.Lit("-c"), tree.Lit("echo out; echo err >&2")},
		Out:    word(target),
		Err:    word(target),
	}
	res := i.Run(tree.NewLeaf(cmd))

	assert.Equal(t, Result{}, res)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "out\nerr\n", string(data))
}

func TestRedirectErrorReportsAndFails(t *testing.T) {
	i, _, stderr := newTestInterp(t)

	cmd := &tree.SimpleCommand{Verb: tree.Lit("cat"), In: word("/no/such/file")}
	res := i.Run(tree.NewLeaf(cmd))

	assert.Equal(t, Result{Code: 1}, res)
	assert.Contains(t, stderr.String(), "minish:")
}

func TestRedirectCdCreatesTarget(t *testing.T) {
	i, _, _ := newTestInterp(t)
	target := filepath.Join(t.TempDir(), "cd.log")

	cmd := &tree.SimpleCommand{Verb: tree.Lit("cd"), Out: word(target)}
	res := i.Run(tree.NewLeaf(cmd))

	assert.Equal(t, Result{}, res)
	_, err := os.Stat(target)
	assert.NoError(t, err)
}
