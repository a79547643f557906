package ldraw

import (
	"fmt"
	"path"
	"strings"
)

// fileMarker opens a sub-file section inside a multi-document container.
const fileMarker = "0 FILE "

// Store is the name-addressed virtual filesystem for one import run.
// Documents are owned by a single table keyed on their qualified name;
// a lookup index maps both the bare and the qualified variant onto that
// identity, so two keys alias one Document rather than duplicating it.
//
// A Store is single-import state: create a fresh one per model import,
// never share across unrelated imports.
type Store struct {
	fs    FileProvider
	docs  map[string]*Document
	index map[string]string
}

// NewStore creates an empty store backed by the given file provider.
func NewStore(fs FileProvider) *Store {
	return &Store{
		fs:    fs,
		docs:  make(map[string]*Document),
		index: make(map[string]string),
	}
}

// Len returns the number of registered documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// RegisterPhysical inserts a document lazily bound to a file on disk,
// under both its bare and qualified names. Content is not read here.
func (s *Store) RegisterPhysical(filePath string) {
	norm := NormalizeName(strings.ReplaceAll(filePath, "\\", "/"))
	base := path.Base(norm)
	parent := path.Base(path.Dir(norm))
	doc := &Document{
		Name:      base,
		Qualified: parent + "/" + base,
		path:      filePath,
		fs:        s.fs,
	}
	s.register(doc)
}

// RegisterVirtual inserts a document whose content is already known,
// used for sub-files carved out of a container. It is keyed as if it
// lived in a "virtual" directory next to the container.
func (s *Store) RegisterVirtual(name string, lines []string) {
	doc := &Document{
		Name:      NormalizeName(name),
		Qualified: "virtual/" + NormalizeName(name),
		lines:     lines,
		loaded:    true,
	}
	s.register(doc)
}

func (s *Store) register(doc *Document) {
	s.docs[doc.Qualified] = doc
	s.index[doc.Name] = doc.Qualified
	s.index[doc.Qualified] = doc.Qualified
}

// ScanLibrary registers every file under root without reading any of
// them. Returns the number of files registered.
func (s *Store) ScanLibrary(root string) (int, error) {
	files, err := s.fs.EnumerateFiles(root)
	if err != nil {
		return 0, fmt.Errorf("scanning library %s: %w", root, err)
	}
	for _, f := range files {
		s.RegisterPhysical(f)
	}
	return len(files), nil
}

// Resolve looks a part name up by its bare name, then by its qualified
// name. There is no partial matching: an unknown name fails with
// ErrPartNotFound.
func (s *Store) Resolve(name string) (*Document, error) {
	canon, ok := s.index[NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	return s.docs[canon], nil
}

// SplitContainer carves a multi-document container into one virtual
// document per "0 FILE" marker section. Each section keeps its marker
// line; lines before the first marker are ignored. The first marker
// names the container's entry point, which is returned.
func (s *Store) SplitContainer(doc *Document) (entry string, err error) {
	lines, err := doc.Lines()
	if err != nil {
		return "", err
	}

	var cur string
	var data []string
	for _, line := range lines {
		if strings.HasPrefix(line, fileMarker) {
			if cur != "" {
				s.RegisterVirtual(cur, data)
			}
			name := line[len(fileMarker):]
			if entry == "" {
				entry = name
			}
			cur = name
			data = []string{line}
		} else if cur != "" {
			data = append(data, line)
		}
	}
	if cur != "" {
		s.RegisterVirtual(cur, data)
	}

	if entry == "" {
		return "", fmt.Errorf("%w: container %s has no sub-file markers", ErrPartNotFound, doc.Name)
	}
	return entry, nil
}
