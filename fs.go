package main

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// readText returns the content of the file at path. A missing file yields an
// error matching fs.ErrNotExist.
func readText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not read %s", path)
	}
	return string(content), nil
}

// writeText writes content to path, creating parent directories as needed
// and replacing any existing file.
func writeText(content string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "could not create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	return nil
}

func watchDirs(dirs []string, cb func()) {
	// Create new watcher.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("error creating fsnotify watcher: %s", err)
		return
	}
	defer watcher.Close()

	if err := addWatches(watcher, dirs); err != nil {
		log.Fatal("error adding directory to watcher: %s", err)
	}

	// block thread indefinitely
	triggered := time.Now()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) && time.Since(triggered) > 1*time.Second {
				time.Sleep(100 * time.Millisecond)
				triggered = time.Now()
				cb()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Err("watcher error: %s\n", err)
		}
	}
}

// addWatches registers every directory below dirs with the watcher.
// Directories that do not exist are skipped.
func addWatches(watcher *fsnotify.Watcher, dirs []string) error {
	for _, p := range dirs {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			log.Warn("Not watching %s: directory does not exist\n", p)
			continue
		}

		if err := filepath.WalkDir(p, func(f string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}

			return watcher.Add(f)
		}); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src string, d fs.DirEntry, dest string) error {
	// if it's a dir, just re-create it in build/
	if d.IsDir() {
		err := os.MkdirAll(dest, 0755)
		if err != nil && !errors.Is(err, os.ErrExist) {
			return err
		}

		return nil
	}

	// open source file
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", src)
	}
	defer in.Close()

	// create dest file
	fh, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", dest)
	}
	defer fh.Close()

	// copy src content into dest content
	_, err = io.Copy(fh, in)
	return err
}

func copyDirRecursively(src string, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		outpath := dst + strings.TrimPrefix(path, src)
		return copyFile(path, d, outpath)
	})
}
