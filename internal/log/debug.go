// Package log provides optional file-backed debug logging for repoherd.
package log

import (
	"log"
	"os"
	"sync"
)

// debugSink buffers debug output until a destination is chosen. Before SetFile
// is called every message is kept in memory; SetFile("") discards the buffer
// and everything after it, SetFile(path) flushes the buffer to the file.
type debugSink struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	sink      = &debugSink{}
	stdLogger = log.New(sink, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer for the standard logger.
func (s *debugSink) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discard {
		return len(p), nil
	}

	if s.file != nil {
		n, err = s.file.Write(p)
		// Sync so messages survive an abrupt exit; sync errors are not
		// worth failing a log write over.
		_ = s.file.Sync()
		return n, err
	}

	b := make([]byte, len(p))
	copy(b, p)
	s.buffer = append(s.buffer, b...)
	return len(p), nil
}

// SetFile directs debug output to the given path, creating the file if needed
// and flushing anything buffered so far. An empty path discards buffered and
// future messages.
func SetFile(path string) error {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.file != nil {
		_ = sink.file.Close()
		sink.file = nil
	}

	if path == "" {
		sink.discard = true
		sink.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		sink.discard = true
		sink.buffer = nil
		return err
	}

	sink.file = f
	sink.discard = false

	if len(sink.buffer) > 0 {
		_, _ = f.Write(sink.buffer)
		_ = f.Sync()
		sink.buffer = nil
	}

	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Close closes the debug log file if one is open.
func Close() error {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	if sink.file == nil {
		return nil
	}

	err := sink.file.Close()
	sink.file = nil
	return err
}
