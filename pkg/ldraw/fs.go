package ldraw

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiskProvider is the FileProvider over the real filesystem.
type DiskProvider struct{}

// EnumerateFiles walks root recursively and returns every regular file.
func (DiskProvider) EnumerateFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ReadLines reads a file as whitespace-trimmed lines, dropping blanks.
func (DiskProvider) ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
