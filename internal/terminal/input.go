package terminal

import (
	"io"
	"sync"
)

// Input shares one underlying stream between successive consumers, such as
// a line editor followed by a raw-mode picker. At most one read of the
// source is in flight; its bytes stay buffered until some consumer takes
// them, so a consumer that gives up waiting never loses input.
type Input struct {
	src io.Reader

	mu      sync.Mutex
	buf     []byte
	err     error
	reading bool
	ready   chan struct{}
}

func NewInput(src io.Reader) *Input {
	return &Input{src: src, ready: make(chan struct{})}
}

// Read blocks until bytes are available or the source fails.
func (in *Input) Read(p []byte) (int, error) {
	return in.read(p, nil)
}

func (in *Input) read(p []byte, cancel <-chan struct{}) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		in.mu.Lock()
		if len(in.buf) > 0 {
			n := copy(p, in.buf)
			in.buf = in.buf[n:]
			in.mu.Unlock()
			return n, nil
		}
		if in.err != nil {
			err := in.err
			in.mu.Unlock()
			return 0, err
		}
		if !in.reading {
			in.reading = true
			go in.fill()
		}
		ready := in.ready
		in.mu.Unlock()

		select {
		case <-ready:
		case <-cancel:
			return 0, io.EOF
		}
	}
}

// Buffered reports how many bytes can be read without blocking.
func (in *Input) Buffered() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.buf)
}

func (in *Input) fill() {
	chunk := make([]byte, 256)
	n, err := in.src.Read(chunk)

	in.mu.Lock()
	in.buf = append(in.buf, chunk[:n]...)
	if err != nil {
		in.err = err
	}
	in.reading = false
	close(in.ready)
	in.ready = make(chan struct{})
	in.mu.Unlock()
}

// View returns a reader over the shared stream whose Close makes pending
// and future reads on the view return io.EOF without consuming anything.
func (in *Input) View() io.ReadCloser {
	return &inputView{in: in, done: make(chan struct{})}
}

type inputView struct {
	in   *Input
	done chan struct{}
	once sync.Once
}

func (v *inputView) Read(p []byte) (int, error) {
	select {
	case <-v.done:
		return 0, io.EOF
	default:
	}
	return v.in.read(p, v.done)
}

func (v *inputView) Close() error {
	v.once.Do(func() { close(v.done) })
	return nil
}
