package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogFilename(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{"basic", time.Date(2026, 8, 13, 9, 51, 5, 123000000, time.UTC), "searchops-20260813-095105-123.log"},
		{"midnight", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "searchops-20260101-000000-000.log"},
		{"millisecond truncation", time.Date(2026, 6, 15, 12, 30, 45, 456789000, time.UTC), "searchops-20260615-123045-456.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logFilename(tt.time); got != tt.want {
				t.Errorf("logFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenLogFile_Destinations(t *testing.T) {
	dir := t.TempDir()

	t.Run("none discards", func(t *testing.T) {
		lf, err := OpenLogFile(&LogFileConfig{Output: "none", Dir: dir})
		if err != nil {
			t.Fatalf("OpenLogFile: %v", err)
		}
		defer lf.Close()
		if lf.Path != "" {
			t.Errorf("no file expected, got %q", lf.Path)
		}
	})

	t.Run("dash is stderr", func(t *testing.T) {
		lf, err := OpenLogFile(&LogFileConfig{Output: "-", Dir: dir})
		if err != nil {
			t.Fatalf("OpenLogFile: %v", err)
		}
		defer lf.Close()
		if lf.Writer() != os.Stderr {
			t.Error("expected stderr writer")
		}
	})

	t.Run("auto generates under dir", func(t *testing.T) {
		lf, err := OpenLogFile(&LogFileConfig{Output: "auto", Dir: dir})
		if err != nil {
			t.Fatalf("OpenLogFile: %v", err)
		}
		defer lf.Close()
		if filepath.Dir(lf.Path) != dir {
			t.Errorf("file outside dir: %q", lf.Path)
		}
		if _, err := os.Stat(lf.Path); err != nil {
			t.Errorf("file not created: %v", err)
		}
	})

	t.Run("relative path resolves against dir", func(t *testing.T) {
		lf, err := OpenLogFile(&LogFileConfig{Output: "deploy.log", Dir: dir})
		if err != nil {
			t.Fatalf("OpenLogFile: %v", err)
		}
		defer lf.Close()
		if want := filepath.Join(dir, "deploy.log"); lf.Path != want {
			t.Errorf("Path = %q, want %q", lf.Path, want)
		}
	})
}

func TestPruneLogFiles(t *testing.T) {
	dir := t.TempDir()
	stale := time.Now().AddDate(0, 0, -10)
	fresh := time.Now().AddDate(0, 0, -3)

	write := func(name string, mtime time.Time) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(p, mtime, mtime); err != nil {
			t.Fatal(err)
		}
		return p
	}

	old := write("searchops-20260801-120000-000.log", stale)
	kept := write("searchops-20260828-120000-000.log", fresh)
	foreign := write("other.log", stale)

	if err := pruneLogFiles(dir, 7); err != nil {
		t.Fatalf("pruneLogFiles: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale log file survived pruning")
	}
	if _, err := os.Stat(kept); err != nil {
		t.Error("fresh log file was pruned")
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Error("unrelated file was pruned")
	}
}

func TestPruneLogFiles_Disabled(t *testing.T) {
	if err := pruneLogFiles("/nonexistent/path", 7); err != nil {
		t.Errorf("missing directory must not error, got %v", err)
	}
	dir := t.TempDir()
	p := filepath.Join(dir, "searchops-20260801-120000-000.log")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := pruneLogFiles(dir, 0); err != nil {
		t.Fatalf("pruneLogFiles: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Error("zero retention must keep everything")
	}
}
