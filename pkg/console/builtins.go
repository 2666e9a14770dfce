package console

import (
	"fmt"
	"strings"

	"github.com/chazu/voxmemento/pkg/history"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites kebab-case identifiers to underscores and ;
// line comments to // so zygomys accepts them. String literals and
// comments are left untouched.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		switch {
		case b[i] == '"':
			j := i + 1
			for j < len(b) && b[j] != '"' {
				if b[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(b) {
				j = len(b) - 1
			}
			out = append(out, b[i:j+1]...)
			i = j
		case b[i] == ';':
			out = append(out, '/', '/')
			for i+1 < len(b) && b[i+1] == ';' {
				i++
			}
			// The rest of the line is copied as is.
			for i+1 < len(b) && b[i+1] != '\n' {
				i++
				out = append(out, b[i])
			}
		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
		default:
			out = append(out, b[i])
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

type builtin func(s *history.Store, args []zygo.Sexp) (zygo.Sexp, error)

var builtins = map[string]builtin{
	"memento_info":     mementoInfo,
	"memento_size":     mementoSize,
	"memento_position": mementoPosition,
	"memento_group":    mementoGroup,
	"can_undo":         canUndo,
	"can_redo":         canRedo,
}

func registerBuiltins(env *zygo.Zlisp, s *history.Store) {
	for name, fn := range builtins {
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			return fn(s, args)
		})
	}
}

func noArgs(name string, args []zygo.Sexp) error {
	if len(args) != 0 {
		return fmt.Errorf("%s takes no arguments, got %d", strings.ReplaceAll(name, "_", "-"), len(args))
	}
	return nil
}

func mementoInfo(s *history.Store, args []zygo.Sexp) (zygo.Sexp, error) {
	if err := noArgs("memento_info", args); err != nil {
		return zygo.SexpNull, err
	}
	var sb strings.Builder
	if err := s.Dump(&sb); err != nil {
		return zygo.SexpNull, fmt.Errorf("memento-info: %w", err)
	}
	return &zygo.SexpStr{S: sb.String()}, nil
}

func mementoSize(s *history.Store, args []zygo.Sexp) (zygo.Sexp, error) {
	if err := noArgs("memento_size", args); err != nil {
		return zygo.SexpNull, err
	}
	return &zygo.SexpInt{Val: int64(s.Len())}, nil
}

func mementoPosition(s *history.Store, args []zygo.Sexp) (zygo.Sexp, error) {
	if err := noArgs("memento_position", args); err != nil {
		return zygo.SexpNull, err
	}
	return &zygo.SexpInt{Val: int64(s.Position())}, nil
}

func canUndo(s *history.Store, args []zygo.Sexp) (zygo.Sexp, error) {
	if err := noArgs("can_undo", args); err != nil {
		return zygo.SexpNull, err
	}
	return &zygo.SexpBool{Val: s.CanUndo()}, nil
}

func canRedo(s *history.Store, args []zygo.Sexp) (zygo.Sexp, error) {
	if err := noArgs("can_redo", args); err != nil {
		return zygo.SexpNull, err
	}
	return &zygo.SexpBool{Val: s.CanRedo()}, nil
}

// mementoGroup returns the kind names of the records in group i.
func mementoGroup(s *history.Store, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("memento-group requires exactly 1 argument, got %d", len(args))
	}
	idx, ok := args[0].(*zygo.SexpInt)
	if !ok {
		return zygo.SexpNull, fmt.Errorf("memento-group: expected integer, got %T (%s)", args[0], args[0].SexpString(nil))
	}
	g, ok := s.Group(int(idx.Val))
	if !ok {
		return zygo.SexpNull, fmt.Errorf("memento-group: no group at index %d", idx.Val)
	}
	kinds := g.Kinds()
	items := make([]zygo.Sexp, len(kinds))
	for i, k := range kinds {
		items[i] = &zygo.SexpStr{S: k.String()}
	}
	return zygo.MakeList(items), nil
}
