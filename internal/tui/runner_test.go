package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wexinc/fightsongs/internal/dataset"
)

func TestReloadNotifier_NilProgram_NoOp(t *testing.T) {
	var n *ReloadNotifier
	n.Notify(nil)

	NewReloadNotifier(nil).Notify(errTest("ignored"))
}

func TestNewRunner(t *testing.T) {
	r, err := NewRunner(context.Background(), RunnerOptions{
		Model: Options{Source: dataset.NewStaticSource(testDataset())},
		Watch: true,
	})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	if r.Program() == nil || r.Model() == nil {
		t.Fatal("runner should expose its program and model")
	}
	if r.Watching() {
		t.Error("a source without a file should not be watched")
	}
}

func TestNewRunner_WatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fight-songs.csv")
	if err := os.WriteFile(path, []byte("year,fight\n1893,Yes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := NewRunner(context.Background(), RunnerOptions{
		Model: Options{Source: dataset.NewSource(path)},
		Watch: true,
	})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	if !r.Watching() {
		t.Error("runner should watch the data file")
	}
	if r.Model().ds.Len() != 1 {
		t.Errorf("model should see the loaded dataset, got %d rows", r.Model().ds.Len())
	}
}
