package clipboard

import (
	"errors"
	"testing"
)

type memory struct {
	text string
	err  error
}

func (m *memory) ReadAll() (string, error) { return m.text, m.err }

func (m *memory) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func TestReadWrite(t *testing.T) {
	mem := &memory{}
	c := New(mem)

	if err := c.Write(`"Acme","Engineer"`); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := c.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != `"Acme","Engineer"` {
		t.Fatalf("Read() = %q", got)
	}
}

func TestReadEmpty(t *testing.T) {
	c := New(&memory{text: "  \n "})
	if _, err := c.Read(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Read() error = %v, want ErrEmpty", err)
	}
}

func TestBackendErrorsWrap(t *testing.T) {
	boom := errors.New("boom")
	c := New(&memory{err: boom})
	if _, err := c.Read(); !errors.Is(err, boom) {
		t.Fatalf("Read() error = %v, want wrapped boom", err)
	}
	if err := c.Write("x"); !errors.Is(err, boom) {
		t.Fatalf("Write() error = %v, want wrapped boom", err)
	}
}
