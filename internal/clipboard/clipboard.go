// Package clipboard reads pasted page text from and writes rows back to the
// system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrEmpty is returned when the clipboard holds no text.
var ErrEmpty = errors.New("clipboard is empty")

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard is not available on this system")

// Backend is the clipboard implementation in use. Tests swap it.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type system struct{}

func (system) ReadAll() (string, error) { return clipboard.ReadAll() }

func (system) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Clipboard wraps one backend.
type Clipboard struct {
	backend Backend
}

// New returns a clipboard over b. A nil b uses the system clipboard.
func New(b Backend) *Clipboard {
	if b == nil {
		b = system{}
	}
	return &Clipboard{backend: b}
}

// Read returns the clipboard text.
func (c *Clipboard) Read() (string, error) {
	if clipboard.Unsupported && isSystem(c.backend) {
		return "", ErrUnsupported
	}
	text, err := c.backend.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// Write replaces the clipboard text.
func (c *Clipboard) Write(text string) error {
	if clipboard.Unsupported && isSystem(c.backend) {
		return ErrUnsupported
	}
	if err := c.backend.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

func isSystem(b Backend) bool {
	_, ok := b.(system)
	return ok
}
