// Package ldraw implements parsing for the LDraw brick-model format:
// a name-addressed document store with lazy loading, line classification,
// transform and winding resolution, and the LDConfig color table.
package ldraw

import (
	"fmt"
	"path"
	"strings"
)

// FileProvider abstracts the filesystem underneath the document store.
type FileProvider interface {
	// EnumerateFiles lists every file under root, recursively.
	EnumerateFiles(root string) ([]string, error)
	// ReadLines reads a file as trimmed, non-empty lines.
	ReadLines(path string) ([]string, error)
}

// Document is one named unit of LDraw content: a physical file or a
// virtual sub-file carved out of a multi-document container. Content is
// loaded at most once; classification and derived per-document state
// are memoized alongside it.
type Document struct {
	// Name is the normalized bare file name, e.g. "3001.dat".
	Name string
	// Qualified is the parent-directory-prefixed name, e.g. "parts/3001.dat".
	Qualified string

	path string
	fs   FileProvider

	lines  []string
	loaded bool

	commands   []Command
	classified bool

	winding      Winding
	windingKnown bool

	hasGeom   bool
	geomKnown bool
}

// Lines returns the document's content, reading it from the file
// provider on first access. Read failures are fatal to the import and
// propagate up.
func (d *Document) Lines() ([]string, error) {
	if d.loaded {
		return d.lines, nil
	}
	lines, err := d.fs.ReadLines(d.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", d.path, err)
	}
	d.lines = lines
	d.loaded = true
	return d.lines, nil
}

// Commands returns the classified line list, parsing it once.
func (d *Document) Commands() ([]Command, error) {
	if d.classified {
		return d.commands, nil
	}
	lines, err := d.Lines()
	if err != nil {
		return nil, err
	}
	cmds := make([]Command, len(lines))
	for i, line := range lines {
		cmds[i] = Classify(line)
	}
	d.commands = cmds
	d.classified = true
	return d.commands, nil
}

// HasGeometry reports whether any of the document's own lines is a
// geometry command (line types 2, 3, 4 or 5). Documents with geometry
// are leaves: they materialize as mesh definitions instead of being
// recursed into as sub-assemblies.
func (d *Document) HasGeometry() (bool, error) {
	if d.geomKnown {
		return d.hasGeom, nil
	}
	cmds, err := d.Commands()
	if err != nil {
		return false, err
	}
	for _, c := range cmds {
		switch c.Tag {
		case "2", "3", "4", "5":
			d.hasGeom = true
		}
		if d.hasGeom {
			break
		}
	}
	d.geomKnown = true
	return d.hasGeom, nil
}

// RestingWinding returns the document's own winding: CW unless a CCW
// certification appears anywhere in its line list.
func (d *Document) RestingWinding() (Winding, error) {
	if d.windingKnown {
		return d.winding, nil
	}
	cmds, err := d.Commands()
	if err != nil {
		return CW, err
	}
	// CCW wins no matter where it appears; a CW directive is only the
	// default restated, so the scan must not stop on it.
	d.winding = CW
	for _, c := range cmds {
		if c.Kind == CmdWinding && c.Winding == CCW {
			d.winding = CCW
			break
		}
	}
	d.windingKnown = true
	return d.winding, nil
}

// IsContainer reports whether this document is a multi-document
// container, detected by its .mpd extension.
func (d *Document) IsContainer() bool {
	return strings.EqualFold(path.Ext(d.Name), ".mpd")
}

// NormalizeName canonicalizes a part name for store lookup: path
// separators become '/' and the extension is lowercased.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	ext := path.Ext(name)
	if ext != "" {
		name = name[:len(name)-len(ext)] + strings.ToLower(ext)
	}
	return name
}

// CleanName reduces a part name to its definition key: the bare file
// name with a .dat or .ldr extension stripped, case-insensitively.
func CleanName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := path.Ext(name)
	if strings.EqualFold(ext, ".dat") || strings.EqualFold(ext, ".ldr") {
		name = name[:len(name)-len(ext)]
	}
	return name
}
