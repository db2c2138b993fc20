// Package tree defines the command tree handed to the interpreter: a binary
// tree whose leaves are simple commands and whose interior nodes carry the
// operator combining their two children.
package tree

// Op identifies how a composite node combines its children.
type Op int

const (
	// OpNone marks a leaf node.
	OpNone Op = iota
	// OpSequential runs left, then right ("left ; right").
	OpSequential
	// OpParallel runs left and right concurrently ("left & right").
	OpParallel
	// OpPipe connects left's stdout to right's stdin ("left | right").
	OpPipe
	// OpIfNonzero runs right only when left fails ("left || right").
	OpIfNonzero
	// OpIfZero runs right only when left succeeds ("left && right").
	OpIfZero
)

func (op Op) String() string {
	switch op {
	case OpNone:
		return "cmd"
	case OpSequential:
		return "sequential"
	case OpParallel:
		return "parallel"
	case OpPipe:
		return "pipe"
	case OpIfNonzero:
		return "if-nonzero"
	case OpIfZero:
		return "if-zero"
	default:
		return "unknown"
	}
}

// Part is one element of a Word: a literal chunk or a $name parameter
// reference, never both.
type Part struct {
	Lit   string
	Param string
}

// Word is a command word assembled from parts. The interpreter resolves it
// to a single string through an expander and treats the result as opaque.
type Word struct {
	Parts []Part
}

// Lit builds a word holding a single literal.
func Lit(s string) Word {
	return Word{Parts: []Part{{Lit: s}}}
}

// Param builds a word holding a single $name reference.
func Param(name string) Word {
	return Word{Parts: []Part{{Param: name}}}
}

// SimpleCommand is one verb, its parameters, and optional redirection
// targets. Out and Err each carry their own append-vs-truncate flag.
type SimpleCommand struct {
	Verb   Word
	Params []Word

	In  *Word
	Out *Word
	Err *Word

	AppendOut bool
	AppendErr bool
}

// Node is one node of a command tree. A node is either a leaf wrapping a
// simple command or a composite with an operator and two children, never
// both. The tree is built by the parser and only read by the interpreter.
type Node struct {
	Op  Op
	Cmd *SimpleCommand

	Left  *Node
	Right *Node
}

// NewLeaf wraps a simple command in a leaf node.
func NewLeaf(cmd *SimpleCommand) *Node {
	return &Node{Op: OpNone, Cmd: cmd}
}

// NewComposite joins two subtrees under an operator.
func NewComposite(op Op, left, right *Node) *Node {
	return &Node{Op: op, Left: left, Right: right}
}

// IsLeaf reports whether n wraps a simple command.
func (n *Node) IsLeaf() bool {
	return n.Op == OpNone
}
