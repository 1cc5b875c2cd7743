package execution

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLineWriter_SplitsAndFlushes(t *testing.T) {
	var out bytes.Buffer
	w := NewLineWriter(&out, "[1/2]")

	if _, err := w.Write([]byte("a\nb\nc")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "[1/2] a\n[1/2] b\n" {
		t.Errorf("expected two complete lines while streaming, got %q", out.String())
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "[1/2] a\n[1/2] b\n[1/2] c\n" {
		t.Errorf("expected partial line on flush, got %q", out.String())
	}
}

func TestLineWriter_JoinsChunks(t *testing.T) {
	var out bytes.Buffer
	w := NewLineWriter(&out, "[2/3]")

	for _, chunk := range []string{"he", "llo\nwor", "ld\n", "\n"} {
		if _, err := w.Write([]byte(chunk)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if out.String() != "[2/3] hello\n[2/3] world\n[2/3] \n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestLineWriter_FlushEmpty(t *testing.T) {
	var out bytes.Buffer
	w := NewLineWriter(&out, "[1/1]")
	w.Write([]byte("done\n"))
	w.Flush()
	w.Flush()
	if out.String() != "[1/1] done\n" {
		t.Errorf("flush of empty buffer wrote output: %q", out.String())
	}
}

func TestLineWriter_ConcurrentThreadsDoNotTear(t *testing.T) {
	var out bytes.Buffer
	shared := NewSyncWriter(&out)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := NewLineWriter(shared, "[x]")
			for i := 0; i < 200; i++ {
				w.Write([]byte("line-"))
				w.Write([]byte("payload\n"))
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 800 {
		t.Fatalf("expected 800 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line != "[x] line-payload" {
			t.Fatalf("torn line %q", line)
		}
	}
}
