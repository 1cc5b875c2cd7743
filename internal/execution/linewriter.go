package execution

import (
	"bytes"
	"io"
	"sync"
)

// SyncWriter serializes writes so lines from different threads never tear
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSyncWriter wraps w
func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{w: w}
}

// Write implements io.Writer
func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// LineWriter splits a byte stream on '\n' and writes each complete line to
// dest as "<prefix> <line>\n". A trailing partial line is held back until
// more data arrives or Flush is called.
type LineWriter struct {
	mu     sync.Mutex
	dest   io.Writer
	prefix string
	buf    []byte
}

// NewLineWriter creates a LineWriter. dest receives one Write per line.
func NewLineWriter(dest io.Writer, prefix string) *LineWriter {
	return &LineWriter{dest: dest, prefix: prefix}
}

// Write implements io.Writer
func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		if err := w.emit(w.buf[:i]); err != nil {
			return len(p), err
		}
		w.buf = w.buf[i+1:]
	}
	w.buf = append([]byte(nil), w.buf...)
	return len(p), nil
}

// Flush writes any buffered partial line. Nothing is written when the
// buffer is empty.
func (w *LineWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) == 0 {
		return nil
	}
	err := w.emit(w.buf)
	w.buf = nil
	return err
}

func (w *LineWriter) emit(line []byte) error {
	out := make([]byte, 0, len(w.prefix)+len(line)+2)
	out = append(out, w.prefix...)
	out = append(out, ' ')
	out = append(out, line...)
	out = append(out, '\n')
	_, err := w.dest.Write(out)
	return err
}
