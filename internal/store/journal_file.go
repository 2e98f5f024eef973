package store

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/models"
)

// maxLineLength bounds a single journal line; longer lines make the file
// unreadable rather than silently truncated.
const maxLineLength = 1 << 20

// fileJournal is an append-only text log with one "key -> value" record per
// line. Every append is followed by fsync.
type fileJournal struct {
	path   string
	file   *os.File
	logger *logger.Logger
}

func openFileJournal(path string, log *logger.Logger) (*fileJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create store dir: %w", ErrStoreUnwritable, err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStoreUnreadable, path, err)
	}

	j := &fileJournal{path: path, file: f, logger: log}
	if err = j.terminateLastLine(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return j, nil
}

// terminateLastLine appends a line break when a hand-edited file does not end
// with one, so the next record starts on its own line.
func (j *fileJournal) terminateLastLine() error {
	info, err := j.file.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrStoreUnreadable, j.path, err)
	}
	if info.Size() == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err = j.file.ReadAt(last, info.Size()-1); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrStoreUnreadable, j.path, err)
	}
	if last[0] == '\n' {
		return nil
	}

	if _, err = j.file.WriteString("\n"); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStoreUnwritable, j.path, err)
	}
	return j.file.Sync()
}

func (j *fileJournal) Replay(ctx context.Context, fn func(key, value string)) error {
	if _, err := j.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek %s: %w", ErrStoreUnreadable, j.path, err)
	}

	scanner := bufio.NewScanner(j.file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, ok := parseLine(line)
		if !ok {
			j.logger.Warn().
				Str("file", j.path).
				Int("line", lineNo).
				Str("content", line).
				Msg("skipping corrupt sync store line")
			continue
		}
		fn(key, value)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrStoreUnreadable, j.path, err)
	}
	return nil
}

func (j *fileJournal) Append(_ context.Context, key, value string) error {
	line := models.MappingRecord{Key: key, Value: value}.String() + "\n"
	if _, err := j.file.WriteString(line); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStoreUnwritable, j.path, err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrStoreUnwritable, j.path, err)
	}
	return nil
}

func (j *fileJournal) Close() error {
	if err := j.file.Sync(); err != nil {
		_ = j.file.Close()
		return fmt.Errorf("%w: sync %s: %w", ErrStoreUnwritable, j.path, err)
	}
	return j.file.Close()
}

// parseLine splits "key -> value". Lines with an empty side or more than one
// separator are rejected.
func parseLine(line string) (string, string, bool) {
	key, value, found := strings.Cut(line, models.MappingSeparator)
	if !found || key == "" || value == "" {
		return "", "", false
	}
	if strings.Contains(value, models.MappingSeparator) {
		return "", "", false
	}
	return key, value, true
}
