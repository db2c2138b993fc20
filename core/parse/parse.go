// Package parse turns shell source text into the command tree the
// interpreter consumes. Tokenizing and grammar are delegated to mvdan.cc/sh;
// this package translates the subset of its syntax tree that the interpreter
// supports and rejects the rest.
package parse

import (
	"fmt"
	"strings"

	"github.com/minishdev/minish/core/tree"
	"mvdan.cc/sh/v3/syntax"
)

// Parse parses one line (or a whole script) of input into a command tree.
// An input with no statements yields a nil tree, which the interpreter
// treats as a no-op.
func Parse(src string) (*tree.Node, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(src), "")
	if err != nil {
		return nil, err
	}
	return translateFile(file)
}

// translateFile folds the statement list into a binary tree. A statement
// marked to run in the background pairs with its successor under the
// parallel operator; the resulting groups then chain left to right under the
// sequential operator, so everything before a `;` finishes before anything
// after it starts. A trailing lone `&` has nothing to run against and
// degrades to the statement itself.
func translateFile(file *syntax.File) (*tree.Node, error) {
	type entry struct {
		node       *tree.Node
		background bool
	}
	var entries []entry
	for _, stmt := range file.Stmts {
		node, err := translateStmt(stmt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{node, stmt.Background})
	}

	var root *tree.Node
	for idx := 0; idx < len(entries); idx++ {
		node := entries[idx].node
		for entries[idx].background && idx+1 < len(entries) {
			idx++
			node = tree.NewComposite(tree.OpParallel, node, entries[idx].node)
		}
		if root == nil {
			root = node
		} else {
			root = tree.NewComposite(tree.OpSequential, root, node)
		}
	}
	return root, nil
}

func translateStmt(stmt *syntax.Stmt) (*tree.Node, error) {
	switch cmd := stmt.Cmd.(type) {
	case *syntax.CallExpr:
		simple, err := translateCall(cmd)
		if err != nil {
			return nil, err
		}
		if err := translateRedirs(simple, stmt.Redirs); err != nil {
			return nil, err
		}
		return tree.NewLeaf(simple), nil

	case *syntax.BinaryCmd:
		// Redirections attach to the inner statements, not the operator.
		if len(stmt.Redirs) > 0 {
			return nil, syntaxErr(stmt.Redirs[0])
		}
		var op tree.Op
		switch cmd.Op {
		case syntax.AndStmt:
			op = tree.OpIfZero
		case syntax.OrStmt:
			op = tree.OpIfNonzero
		case syntax.Pipe:
			op = tree.OpPipe
		default:
			return nil, syntaxErr(cmd)
		}
		left, err := translateStmt(cmd.X)
		if err != nil {
			return nil, err
		}
		right, err := translateStmt(cmd.Y)
		if err != nil {
			return nil, err
		}
		return tree.NewComposite(op, left, right), nil

	default:
		return nil, syntaxErr(stmt)
	}
}

// translateCall builds a simple command from a call expression. A bare
// assignment surfaces as a verb containing '=' so the executor's assignment
// path sees it the same way it would see `NAME=VALUE` typed directly.
func translateCall(call *syntax.CallExpr) (*tree.SimpleCommand, error) {
	if len(call.Assigns) > 0 {
		if len(call.Args) > 0 || len(call.Assigns) != 1 {
			return nil, syntaxErr(call.Assigns[0])
		}
		assign := call.Assigns[0]
		if assign.Name == nil {
			return nil, syntaxErr(assign)
		}
		verb := tree.Word{Parts: []tree.Part{{Lit: assign.Name.Value + "="}}}
		if assign.Value != nil {
			value, err := translateWord(assign.Value)
			if err != nil {
				return nil, err
			}
			verb.Parts = append(verb.Parts, value.Parts...)
		}
		return &tree.SimpleCommand{Verb: verb}, nil
	}

	if len(call.Args) == 0 {
		return nil, syntaxErr(call)
	}
	verb, err := translateWord(call.Args[0])
	if err != nil {
		return nil, err
	}
	out := &tree.SimpleCommand{Verb: verb}
	for _, arg := range call.Args[1:] {
		word, err := translateWord(arg)
		if err != nil {
			return nil, err
		}
		out.Params = append(out.Params, word)
	}
	return out, nil
}

func translateRedirs(cmd *tree.SimpleCommand, redirs []*syntax.Redirect) error {
	for _, redir := range redirs {
		if redir.Word == nil {
			return syntaxErr(redir)
		}
		word, err := translateWord(redir.Word)
		if err != nil {
			return err
		}

		stream := ""
		if redir.N != nil {
			stream = redir.N.Value
		}

		switch redir.Op {
		case syntax.RdrIn:
			if stream != "" && stream != "0" {
				return syntaxErr(redir)
			}
			cmd.In = &word

		case syntax.RdrOut, syntax.AppOut:
			appendTo := redir.Op == syntax.AppOut
			switch stream {
			case "", "1":
				cmd.Out = &word
				cmd.AppendOut = appendTo
			case "2":
				cmd.Err = &word
				cmd.AppendErr = appendTo
			default:
				return syntaxErr(redir)
			}

		default:
			return syntaxErr(redir)
		}
	}
	return nil
}

func translateWord(word *syntax.Word) (tree.Word, error) {
	var out tree.Word
	for _, part := range word.Parts {
		parts, err := translateWordPart(part)
		if err != nil {
			return tree.Word{}, err
		}
		out.Parts = append(out.Parts, parts...)
	}
	return out, nil
}

func translateWordPart(part syntax.WordPart) ([]tree.Part, error) {
	switch part := part.(type) {
	case *syntax.Lit:
		return []tree.Part{{Lit: part.Value}}, nil

	case *syntax.SglQuoted:
		return []tree.Part{{Lit: part.Value}}, nil

	case *syntax.DblQuoted:
		var out []tree.Part
		for _, sub := range part.Parts {
			subParts, err := translateWordPart(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, subParts...)
		}
		return out, nil

	case *syntax.ParamExp:
		if part.Param == nil {
			return nil, syntaxErr(part)
		}
		// Only plain $NAME / ${NAME} lookups; ${X:-d}, ${#X}, ${X%s} and
		// friends have no counterpart in the expander.
		if part.Excl || part.Length || part.Width || part.Names != 0 ||
			part.Index != nil || part.Slice != nil || part.Repl != nil || part.Exp != nil {
			return nil, syntaxErr(part)
		}
		return []tree.Part{{Param: part.Param.Value}}, nil

	default:
		return nil, syntaxErr(part)
	}
}

func syntaxErr(node syntax.Node) error {
	return fmt.Errorf("syntax error near: %d", node.Pos().Col())
}
