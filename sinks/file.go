package sinks

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goblimey/go-tools/dailylogger"
)

const fileSinkQueueSize = 1024

// FileConfig configures a FileSink.
type FileConfig struct {
	Path          string
	RotationBytes int64 // 0 disables rotation; ignored when RotateDaily is set
	MaxFiles      int   // retained numbered backups, in addition to the current file
	AutoFlush     bool
	LineEnding    string // defaults to "\r\n"

	// RotateDaily switches the sink to date-boundary rotation
	// (github.com/goblimey/go-tools/dailylogger) instead of size-based
	// rotation: one file per calendar day, named from Path's
	// directory/prefix/extension, with no MaxFiles pruning of its own.
	RotateDaily bool
}

// FileSink appends sentences to Path. By default it rotates to a numbered
// backup once the current file reaches RotationBytes and deletes backups
// beyond MaxFiles. When RotateDaily is set it instead delegates every write
// to a dailylogger.Writer, which rotates on a date boundary and stamps the
// date into the filename itself.
type FileSink struct {
	counters
	cfg FileConfig

	mu          sync.Mutex
	file        *os.File // nil when cfg.RotateDaily
	dailyWriter io.Writer // non-nil only when cfg.RotateDaily
	size        int64
	queue       chan string
	done        chan struct{}
	closeErr    error
}

// NewFileSink opens (or creates) cfg.Path, or starts a daily-rotating
// writer rooted at its directory when cfg.RotateDaily is set, and starts
// the sink's writer goroutine.
func NewFileSink(cfg FileConfig) (*FileSink, error) {
	if cfg.LineEnding == "" {
		cfg.LineEnding = "\r\n"
	}

	if cfg.RotateDaily {
		dir := filepath.Dir(cfg.Path)
		base := filepath.Base(cfg.Path)
		ext := filepath.Ext(base)
		prefix := strings.TrimSuffix(base, ext) + "."
		s := &FileSink{
			cfg:         cfg,
			dailyWriter: dailylogger.New(dir, prefix, ext),
			queue:       make(chan string, fileSinkQueueSize),
			done:        make(chan struct{}),
		}
		go s.run()
		return s, nil
	}

	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sinks: file sink: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("sinks: file sink: %w", err)
	}
	s := &FileSink{
		cfg:   cfg,
		file:  f,
		size:  info.Size(),
		queue: make(chan string, fileSinkQueueSize),
		done:  make(chan struct{}),
	}
	go s.run()
	return s, nil
}

func (s *FileSink) Send(sentence string) {
	enqueue(s.queue, sentence, &s.dropped)
}

func (s *FileSink) run() {
	defer close(s.done)
	for sentence := range s.queue {
		s.write(sentence)
	}
}

func (s *FileSink) write(sentence string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := sentence + s.cfg.LineEnding

	if s.cfg.RotateDaily {
		if _, err := s.dailyWriter.Write([]byte(line)); err != nil {
			s.errors.Add(1)
			return
		}
		s.sent.Add(1)
		return
	}

	n, err := s.file.WriteString(line)
	if err != nil {
		s.errors.Add(1)
		return
	}
	s.size += int64(n)
	s.sent.Add(1)
	if s.cfg.AutoFlush {
		s.file.Sync()
	}
	if s.cfg.RotationBytes > 0 && s.size >= s.cfg.RotationBytes {
		if err := s.rotate(); err != nil {
			s.errors.Add(1)
		}
	}
}

// rotate closes the current file, renames it to a numbered backup, shifts
// older backups up by one (dropping any beyond MaxFiles), and opens a fresh
// current file. Must be called with s.mu held.
func (s *FileSink) rotate() error {
	if err := s.file.Close(); err != nil {
		return err
	}

	if s.cfg.MaxFiles > 0 {
		oldest := backupPath(s.cfg.Path, s.cfg.MaxFiles)
		os.Remove(oldest)
		for n := s.cfg.MaxFiles - 1; n >= 1; n-- {
			os.Rename(backupPath(s.cfg.Path, n), backupPath(s.cfg.Path, n+1))
		}
		if err := os.Rename(s.cfg.Path, backupPath(s.cfg.Path, 1)); err != nil {
			return err
		}
	} else {
		os.Remove(s.cfg.Path)
	}

	f, err := os.OpenFile(s.cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	s.file = f
	s.size = 0
	return nil
}

func backupPath(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}

func (s *FileSink) Close() error {
	close(s.queue)
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.RotateDaily {
		// dailylogger.Writer has no Close; the underlying file is reopened
		// per write and left for the next day's rotation to handle.
		return nil
	}
	s.closeErr = s.file.Close()
	return s.closeErr
}

func (s *FileSink) Stats() SinkStats { return s.snapshot() }
