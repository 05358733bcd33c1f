package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"
)

func TestReadTextMissing(t *testing.T) {
	_, err := readText(t.TempDir() + "/does-not-exist.md")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestWriteText(t *testing.T) {
	path := t.TempDir() + "/nested/dir/index.html"

	if err := writeText("first", path); err != nil {
		t.Fatal(err)
	}
	if err := writeText("second", path); err != nil {
		t.Fatal(err)
	}

	content, err := readText(path)
	if err != nil {
		t.Fatal(err)
	}
	if content != "second" {
		t.Errorf("expected overwritten content, got %q", content)
	}
}

func TestCopyDirRecursively(t *testing.T) {
	src := t.TempDir() + "/"
	dst := t.TempDir() + "/out/"

	files := map[string]string{
		"favicon.ico":       "icon",
		"css/style.css":     "body {}",
		"img/deep/logo.svg": "<svg></svg>",
	}
	for name, content := range files {
		if err := writeText(content, src+name); err != nil {
			t.Fatal(err)
		}
	}

	if err := copyDirRecursively(src, dst); err != nil {
		t.Fatal(err)
	}

	for name, expected := range files {
		content, err := os.ReadFile(dst + name)
		if err != nil {
			t.Errorf("Expected file, got error: %s", err)
			continue
		}
		if string(content) != expected {
			t.Errorf("%s: expected %q, got %q", name, expected, content)
		}
	}
}

func TestAddWatchesSkipsMissingDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()

	if err := addWatches(watcher, []string{filepath.Join(dir, "public"), dir}); err != nil {
		t.Fatalf("expected missing directory to be skipped, got %s", err)
	}

	got := watcher.WatchList()
	sort.Strings(got)
	expected := []string{dir, filepath.Join(dir, "sub")}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}
