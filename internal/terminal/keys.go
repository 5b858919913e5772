package terminal

import (
	"io"
	"runtime"
)

// KeyKind classifies a decoded keystroke.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyChar
)

func (k KeyKind) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case KeyBackspace:
		return "backspace"
	case KeyChar:
		return "char"
	default:
		return "unknown"
	}
}

// Key is one decoded keystroke. Char is set only for KeyChar.
type Key struct {
	Kind KeyKind
	Char byte
}

const (
	byteCtrlC     = 3
	byteBackspace = 8
	byteLF        = 10
	byteCR        = 13
	byteEsc       = 27
	byteDelete    = 127
)

// Decode maps the bytes of a single read to a Key.
//
// Ctrl+C decodes as escape: raw mode turns off signal generation, so the
// byte is the only way to see it.
func Decode(b []byte) Key {
	switch len(b) {
	case 0:
		return Key{Kind: KeyUnknown}
	case 1:
		return decodeByte(b[0])
	case 3:
		if b[0] == byteEsc && b[1] == '[' {
			switch b[2] {
			case 'A':
				return Key{Kind: KeyUp}
			case 'B':
				return Key{Kind: KeyDown}
			case 'C':
				return Key{Kind: KeyRight}
			case 'D':
				return Key{Kind: KeyLeft}
			}
		}
	}
	return Key{Kind: KeyUnknown}
}

func decodeByte(c byte) Key {
	switch {
	case c == byteCR || c == byteLF:
		return Key{Kind: KeyEnter}
	case c == byteEsc || c == byteCtrlC:
		return Key{Kind: KeyEscape}
	case c == byteDelete || c == byteBackspace:
		return Key{Kind: KeyBackspace}
	case c >= 32 && c <= 126:
		return Key{Kind: KeyChar, Char: c}
	}
	return Key{Kind: KeyUnknown}
}

// KeyReader reads keystrokes from a raw-mode input stream.
type KeyReader struct {
	r       io.Reader
	pending []byte
}

func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: r}
}

// ReadKey blocks until a key is available. A read returning no bytes and no
// error yields KeyUnknown. Read errors, including io.EOF, are returned.
func (k *KeyReader) ReadKey() (Key, error) {
	if len(k.pending) == 0 {
		var buf [3]byte
		n, err := k.r.Read(buf[:])
		if n == 0 {
			if err != nil {
				return Key{}, err
			}
			runtime.Gosched()
			return Key{Kind: KeyUnknown}, nil
		}
		k.pending = append(k.pending[:0], buf[:n]...)
	}

	// An arrow key split across reads.
	for k.partialSequence() {
		var buf [2]byte
		n, _ := k.r.Read(buf[:3-len(k.pending)])
		if n == 0 {
			break
		}
		k.pending = append(k.pending, buf[:n]...)
	}

	n := sequenceLen(k.pending)
	key := Decode(k.pending[:n])
	k.pending = k.pending[n:]
	return key, nil
}

// partialSequence reports whether pending holds only the start of an escape
// sequence whose remaining bytes are known to follow. A lone ESC is
// extended only when the reader already holds more input.
func (k *KeyReader) partialSequence() bool {
	switch {
	case len(k.pending) == 2:
		return k.pending[0] == byteEsc && k.pending[1] == '['
	case len(k.pending) == 1 && k.pending[0] == byteEsc:
		b, ok := k.r.(interface{ Buffered() int })
		return ok && b.Buffered() > 0
	}
	return false
}

// sequenceLen reports how many pending bytes belong to the first key.
// Keys typed faster than they are read can share one read.
func sequenceLen(b []byte) int {
	if len(b) >= 2 && b[0] == byteEsc && b[1] == '[' {
		return min(3, len(b))
	}
	return 1
}
