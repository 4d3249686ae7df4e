package savedvars

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/Shopify/go-lua"

	"github.com/agentstation/syncnotes/pkg/errors"
)

const (
	// maxDepth bounds table nesting so self-referencing tables cannot
	// recurse forever.
	maxDepth = 64

	// hookInterval is how many VM instructions run between context checks.
	hookInterval = 1000

	// maxInstructions caps a chunk's execution. A SavedVariables file is a
	// handful of table constructors, so only a looping chunk gets near it.
	maxInstructions = 1 << 24
)

// errInstructionBudget reports a chunk that ran past maxInstructions.
var errInstructionBudget = errors.New("chunk exceeded the instruction budget")

// DecodeFile reads and decodes the SavedVariables file at path.
func DecodeFile(path string) (*Document, error) {
	return DecodeFileContext(context.Background(), path)
}

// DecodeFileContext is DecodeFile with a context that can stop the chunk.
func DecodeFileContext(ctx context.Context, path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return DecodeContext(ctx, path, src)
}

// Decode executes src as a Lua chunk without any standard library loaded
// and returns the globals it defines. Globals holding functions or other
// non-data values are an error.
func Decode(name string, src []byte) (*Document, error) {
	return DecodeContext(context.Background(), name, src)
}

// DecodeContext is Decode with a context. The chunk is aborted when ctx is
// done or when it runs more than maxInstructions VM instructions; the
// context error is returned as is.
func DecodeContext(ctx context.Context, name string, src []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The client appends CRLF padding; a UTF-8 BOM is not valid Lua.
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	src = bytes.TrimRight(src, "\r\n")

	l := lua.NewState()
	if err := lua.LoadBuffer(l, string(src), name, ""); err != nil {
		return nil, errors.NewParseError("lua", name, err.Error(), err)
	}

	var stopped error
	executed := 0
	lua.SetDebugHook(l, func(state *lua.State, _ lua.Debug) {
		executed += hookInterval
		switch {
		case ctx.Err() != nil:
			stopped = ctx.Err()
		case executed > maxInstructions:
			stopped = errInstructionBudget
		default:
			return
		}
		lua.Errorf(state, "%s", stopped.Error())
	}, lua.MaskCount, hookInterval)

	if err := l.ProtectedCall(0, 0, 0); err != nil {
		if stopped != nil && stopped != errInstructionBudget {
			return nil, stopped
		}
		return nil, errors.NewParseError("lua", name, err.Error(), err)
	}
	lua.SetDebugHook(l, nil, 0, 0)

	doc := NewDocument(name)

	l.PushGlobalTable()
	globals := l.AbsIndex(-1)
	l.PushNil()
	for l.Next(globals) {
		if l.TypeOf(-2) != lua.TypeString {
			l.Pop(1)
			continue
		}
		key, _ := l.ToString(-2)
		if key == "_G" {
			l.Pop(1)
			continue
		}
		value, err := toValue(l, -1, 0)
		if err != nil {
			l.Pop(3)
			return nil, errors.NewParseError("lua", name, fmt.Sprintf("global %s: %v", key, err), err)
		}
		doc.Globals[key] = value
		l.Pop(1)
	}
	l.Pop(1)

	return doc, nil
}

// toValue converts the Lua value at index into a Go value.
func toValue(l *lua.State, index, depth int) (any, error) {
	switch l.TypeOf(index) {
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s, nil
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return n, nil
	case lua.TypeBoolean:
		return l.ToBoolean(index), nil
	case lua.TypeTable:
		return toTable(l, index, depth+1)
	default:
		return nil, fmt.Errorf("unsupported value of type %s", lua.TypeNameOf(l, index))
	}
}

// toTable converts the Lua table at index into a Table.
func toTable(l *lua.State, index, depth int) (Table, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("tables nested deeper than %d levels", maxDepth)
	}

	index = l.AbsIndex(index)
	out := Table{}

	l.PushNil()
	for l.Next(index) {
		key, err := toKey(l, -2)
		if err != nil {
			l.Pop(2)
			return nil, err
		}
		value, err := toValue(l, -1, depth)
		if err != nil {
			l.Pop(2)
			return nil, fmt.Errorf("key %v: %w", key, err)
		}
		out[key] = value
		l.Pop(1)
	}

	return out, nil
}

// toKey converts a table key. Only string-typed keys are read with
// ToString so Next's traversal key is never converted in place.
func toKey(l *lua.State, index int) (any, error) {
	switch l.TypeOf(index) {
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s, nil
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return n, nil
	case lua.TypeBoolean:
		return l.ToBoolean(index), nil
	default:
		return nil, fmt.Errorf("unsupported key of type %s", lua.TypeNameOf(l, index))
	}
}
