package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultRetentionDays bounds how long rotated CLI log files are kept.
const DefaultRetentionDays = 7

// LogFileConfig selects where persistent CLI logs go.
type LogFileConfig struct {
	// Output is "-" for stderr, "none" to disable, "auto" for a
	// timestamped file under Dir, or an explicit path (relative paths
	// resolve against Dir).
	Output string
	// Dir is the log directory for auto-generated and relative paths.
	Dir string
	// RetentionDays prunes auto-generated files older than this; 0
	// disables pruning.
	RetentionDays int
}

// LogFile owns one opened log destination.
type LogFile struct {
	Path   string // empty unless a real file was opened
	file   *os.File
	writer io.Writer
}

// OpenLogFile resolves the configured destination and opens it for
// appending. Auto mode also prunes expired files in the directory.
func OpenLogFile(cfg *LogFileConfig) (*LogFile, error) {
	lf := &LogFile{}

	switch strings.ToLower(cfg.Output) {
	case "none":
		lf.writer = io.Discard
		return lf, nil
	case "", "-":
		lf.writer = os.Stderr
		return lf, nil
	case "auto":
		lf.Path = filepath.Join(cfg.Dir, logFilename(time.Now().UTC()))
		if err := pruneLogFiles(cfg.Dir, cfg.RetentionDays); err != nil {
			return nil, err
		}
	default:
		if filepath.IsAbs(cfg.Output) {
			lf.Path = cfg.Output
		} else {
			lf.Path = filepath.Join(cfg.Dir, cfg.Output)
		}
	}

	dir := filepath.Dir(lf.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %q: %w", dir, err)
	}
	f, err := os.OpenFile(lf.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", lf.Path, err)
	}
	lf.file = f
	lf.writer = f
	return lf, nil
}

// Writer returns the destination for log output.
func (lf *LogFile) Writer() io.Writer { return lf.writer }

// Close closes the underlying file when one was opened.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// logFilename is searchops-YYYYMMDD-HHMMSS-sss.log in UTC; sss is
// milliseconds so rapid invocations do not collide.
func logFilename(t time.Time) string {
	return fmt.Sprintf("searchops-%s-%03d.log",
		t.Format("20060102-150405"),
		t.Nanosecond()/1_000_000)
}

// pruneLogFiles removes searchops-*.log files older than retentionDays.
// Other files in the directory are never touched.
func pruneLogFiles(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read log directory %q: %w", dir, err)
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "searchops-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			// Removal failures are not fatal; the next run retries.
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
	return nil
}
