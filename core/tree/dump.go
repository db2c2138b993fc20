package tree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a readable rendering of the tree, one node per line, children
// indented under their parent. The output is stable and line-oriented so
// golden tests can diff it.
func Dump(w io.Writer, n *Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n == nil {
		fmt.Fprintf(w, "%s<nil>\n", indent)
		return
	}

	if n.IsLeaf() {
		fmt.Fprintf(w, "%scmd %s\n", indent, strings.Join(leafTokens(n.Cmd), " "))
		return
	}

	fmt.Fprintf(w, "%s%s\n", indent, n.Op)
	dump(w, n.Left, depth+1)
	dump(w, n.Right, depth+1)
}

func leafTokens(cmd *SimpleCommand) []string {
	tokens := []string{cmd.Verb.String()}
	for _, p := range cmd.Params {
		tokens = append(tokens, p.String())
	}
	if cmd.In != nil {
		tokens = append(tokens, "<"+cmd.In.String())
	}
	if cmd.Out != nil {
		tokens = append(tokens, redirToken(">", cmd.AppendOut)+cmd.Out.String())
	}
	if cmd.Err != nil {
		tokens = append(tokens, "2"+redirToken(">", cmd.AppendErr)+cmd.Err.String())
	}
	return tokens
}

func redirToken(op string, appendTo bool) string {
	if appendTo {
		return op + op
	}
	return op
}

// String renders the word with parameter references left symbolic.
func (w Word) String() string {
	var sb strings.Builder
	for _, part := range w.Parts {
		if part.Param != "" {
			sb.WriteString("$" + part.Param)
			continue
		}
		sb.WriteString(part.Lit)
	}
	return sb.String()
}
