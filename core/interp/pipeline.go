package interp

import (
	"os"

	"github.com/minishdev/minish/core/tree"
)

// runPipeline connects left's stdout to right's stdin through one anonymous
// pipe and interprets both subtrees concurrently, each against its own end
// and its own forked interpreter, so builtin side effects stay inside their
// side. It blocks until both sides have terminated; ok iff both reported
// zero.
//
// Each side closes its pipe end as soon as its subtree finishes, so the
// reader sees EOF once the last writer is gone and a reader quitting early
// breaks the writer the way a closed pipe should.
func (i *Interp) runPipeline(left, right *tree.Node, sio stdio) bool {
	pr, pw, err := os.Pipe()
	if err != nil {
		die("pipe: %v", err)
	}

	leftCh := make(chan Result, 1)
	go func() {
		lsio := sio
		lsio.out = pw
		r := i.fork().run(left, lsio)
		pw.Close()
		leftCh <- r
	}()

	rightCh := make(chan Result, 1)
	go func() {
		rsio := sio
		rsio.in = pr
		r := i.fork().run(right, rsio)
		pr.Close()
		rightCh <- r
	}()

	lr := <-leftCh
	rr := <-rightCh
	return lr.Code == 0 && rr.Code == 0
}

// runParallel interprets both subtrees concurrently with no channel between
// them; they share the surrounding streams but each runs against its own
// forked interpreter. Both sides are always awaited, even when one of them
// fails, so no child is ever left unreaped. ok iff both reported zero.
func (i *Interp) runParallel(left, right *tree.Node, sio stdio) bool {
	leftCh := make(chan Result, 1)
	go func() {
		leftCh <- i.fork().run(left, sio)
	}()

	rightCh := make(chan Result, 1)
	go func() {
		rightCh <- i.fork().run(right, sio)
	}()

	lr := <-leftCh
	rr := <-rightCh
	return lr.Code == 0 && rr.Code == 0
}
