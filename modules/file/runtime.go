package filemod

import (
	"io"
	"os"

	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/value"
)

// --- file module ---

type File struct{}

// Handle is an open file.
type Handle struct {
	Path string
	Mode string

	f      *os.File
	closed bool
}

func (h *Handle) String() string { return "<file " + h.Path + ">" }

func (h *Handle) TypeName() string { return "file" }

// Closed reports whether the handle has been closed.
func (h *Handle) Closed() bool { return h.closed }

var modeFlags = map[string]int{
	"r":  os.O_RDONLY,
	"w":  os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
	"a":  os.O_WRONLY | os.O_CREATE | os.O_APPEND,
	"r+": os.O_RDWR,
	"w+": os.O_RDWR | os.O_CREATE | os.O_TRUNC,
	"a+": os.O_RDWR | os.O_CREATE | os.O_APPEND,
}

func ioError(op string, err error) error {
	return diag.Runtimef(diag.IOError, "%s: %v", op, err)
}

func (*File) Open(args []any) (any, error) {
	path, mode := args[0].(string), args[1].(string)
	flag, ok := modeFlags[mode]
	if !ok {
		return nil, diag.Runtimef(diag.IOError, "open: invalid mode %q", mode)
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, ioError("open", err)
	}
	return &Handle{Path: path, Mode: mode, f: f}, nil
}

func (*File) Read(args []any) (any, error) {
	switch v := args[0].(type) {
	case *Handle:
		if v.closed {
			return nil, diag.Runtimef(diag.IOError, "read: %s is closed", v.Path)
		}
		data, err := io.ReadAll(v.f)
		if err != nil {
			return nil, ioError("read", err)
		}
		return string(data), nil
	case string:
		data, err := os.ReadFile(v)
		if err != nil {
			return nil, ioError("read", err)
		}
		return string(data), nil
	}
	return nil, diag.Runtimef(diag.TypeMismatch, "read: expected path or file, got %s", value.TypeName(args[0]))
}

func (*File) Write(args []any) (any, error) {
	content := value.Format(args[1])
	switch v := args[0].(type) {
	case *Handle:
		if v.closed {
			return nil, diag.Runtimef(diag.IOError, "write: %s is closed", v.Path)
		}
		if _, err := io.WriteString(v.f, content); err != nil {
			return nil, ioError("write", err)
		}
		return nil, nil
	case string:
		if err := os.WriteFile(v, []byte(content), 0o644); err != nil {
			return nil, ioError("write", err)
		}
		return nil, nil
	}
	return nil, diag.Runtimef(diag.TypeMismatch, "write: expected path or file, got %s", value.TypeName(args[0]))
}

func (*File) Close(args []any) (any, error) {
	h, ok := args[0].(*Handle)
	if !ok || h.closed {
		return nil, nil
	}
	h.closed = true
	if err := h.f.Close(); err != nil {
		return nil, ioError("close", err)
	}
	return nil, nil
}
