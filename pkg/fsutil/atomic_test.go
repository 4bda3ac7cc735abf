package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdannotate/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != 0o600 {
			t.Errorf("mode = %v, want 0600", stat.Mode().Perm())
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("temp files left behind: %d entries", len(entries))
		}
	})

	t.Run("zero mode uses default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}
		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %v, want %v", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "doc.md")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	created, err := fsutil.CreateBackup(ctx, path)
	if err != nil || !created {
		t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
	}

	if err := os.WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	created, err = fsutil.CreateBackup(ctx, path)
	if err != nil || created {
		t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
	}

	got, err := os.ReadFile(fsutil.BackupPath(path))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != "first" {
		t.Errorf("backup = %q, want the first original", got)
	}

	created, err = fsutil.CreateBackup(ctx, filepath.Join(filepath.Dir(path), "absent.md"))
	if err != nil || created {
		t.Errorf("backup of absent file = %v, %v; want false, nil", created, err)
	}
}
