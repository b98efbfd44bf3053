package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchRebuildsChangedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "main.kt")
	writeFile(t, src, "fun main() {}")

	ws, err := NewWorkspace(src)
	if err != nil {
		t.Fatalf("NewWorkspace failed: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rebuilt := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, ws, func(path string) { rebuilt <- path })
	}()

	// give the watcher time to register before writing; rewrite until seen
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case got := <-rebuilt:
			if got != src {
				t.Errorf("expected rebuild of %s, got %s", src, got)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch returned error: %s", err)
			}
			return
		case <-ticker.C:
			if err := os.WriteFile(src, []byte("fun main() {\n    println(1)\n}"), 0644); err != nil {
				t.Fatalf("Failed to write %s: %s", src, err)
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for a rebuild")
		}
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "main.kt")
	writeFile(t, src, "fun main() {}")

	ws, err := NewWorkspace(src)
	if err != nil {
		t.Fatalf("NewWorkspace failed: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rebuilt := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, ws, func(path string) { rebuilt <- path })
	}()

	time.Sleep(200 * time.Millisecond)
	writeFile(t, filepath.Join(tmpDir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(tmpDir, "main.lowered.kt"), "ignored")

	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %s", err)
	}
	select {
	case got := <-rebuilt:
		t.Errorf("expected no rebuilds, got %s", got)
	default:
	}
}
