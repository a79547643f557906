package ldraw

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// fakeFS is an in-memory FileProvider that counts reads.
type fakeFS struct {
	files map[string][]string
	reads map[string]int
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		files: make(map[string][]string),
		reads: make(map[string]int),
	}
}

func (f *fakeFS) EnumerateFiles(root string) ([]string, error) {
	var out []string
	for p := range f.files {
		if strings.HasPrefix(p, root) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeFS) ReadLines(path string) ([]string, error) {
	lines, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("unreadable: %s", path)
	}
	f.reads[path]++
	return lines, nil
}

func TestStoreResolveBareAndQualified(t *testing.T) {
	fs := newFakeFS()
	fs.files["ldraw/parts/3001.dat"] = []string{"3 16 0 0 0 1 0 0 0 1 0"}

	store := NewStore(fs)
	if _, err := store.ScanLibrary("ldraw"); err != nil {
		t.Fatal(err)
	}

	bare, err := store.Resolve("3001.dat")
	if err != nil {
		t.Fatalf("bare resolve: %v", err)
	}
	qualified, err := store.Resolve("parts/3001.dat")
	if err != nil {
		t.Fatalf("qualified resolve: %v", err)
	}
	if bare != qualified {
		t.Error("bare and qualified keys must alias the same Document")
	}
}

func TestStoreResolveBackslashAndExtensionCase(t *testing.T) {
	fs := newFakeFS()
	fs.files["ldraw/parts/s/3001s01.dat"] = []string{"3 16 0 0 0 1 0 0 0 1 0"}

	store := NewStore(fs)
	if _, err := store.ScanLibrary("ldraw"); err != nil {
		t.Fatal(err)
	}

	// References commonly use backslashes and shouty extensions.
	doc, err := store.Resolve(`s\3001s01.DAT`)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if doc.Name != "3001s01.dat" {
		t.Errorf("name: got %q", doc.Name)
	}
}

func TestStoreResolveNotFound(t *testing.T) {
	store := NewStore(newFakeFS())
	_, err := store.Resolve("nope.dat")
	if !errors.Is(err, ErrPartNotFound) {
		t.Errorf("got %v, want ErrPartNotFound", err)
	}
}

func TestDocumentLoadedOnce(t *testing.T) {
	fs := newFakeFS()
	fs.files["lib/brick.dat"] = []string{"0 brick", "3 16 0 0 0 1 0 0 0 1 0"}

	store := NewStore(fs)
	store.RegisterPhysical("lib/brick.dat")

	doc, err := store.Resolve("brick.dat")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		lines, err := doc.Lines()
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != 2 {
			t.Fatalf("lines: got %d, want 2", len(lines))
		}
	}
	if got := fs.reads["lib/brick.dat"]; got != 1 {
		t.Errorf("underlying source read %d times, want 1", got)
	}

	// Resolving again returns the same cached document.
	again, _ := store.Resolve("brick.dat")
	if again != doc {
		t.Error("second resolve should return the cached Document")
	}
}

func TestSplitContainer(t *testing.T) {
	container := []string{
		"0 FILE main.ldr",
		"0 the top assembly",
		"1 16 0 0 0 1 0 0 0 1 0 0 0 1 body.ldr",
		"0 FILE body.ldr",
		"4 16 1 0 0 0 0 0 0 1 0 1 1 0",
	}

	fs := newFakeFS()
	fs.files["models/tower.mpd"] = container

	store := NewStore(fs)
	store.RegisterPhysical("models/tower.mpd")
	doc, _ := store.Resolve("tower.mpd")
	if !doc.IsContainer() {
		t.Fatal("mpd should be detected as container")
	}

	entry, err := store.SplitContainer(doc)
	if err != nil {
		t.Fatal(err)
	}
	if entry != "main.ldr" {
		t.Errorf("entry: got %q, want main.ldr", entry)
	}

	// Concatenating every sub-document (markers included) reconstructs
	// the original container line sequence.
	var rebuilt []string
	for _, name := range []string{"main.ldr", "body.ldr"} {
		sub, err := store.Resolve(name)
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
		lines, _ := sub.Lines()
		rebuilt = append(rebuilt, lines...)
	}
	if len(rebuilt) != len(container) {
		t.Fatalf("rebuilt %d lines, want %d", len(rebuilt), len(container))
	}
	for i := range container {
		if rebuilt[i] != container[i] {
			t.Errorf("line %d: got %q, want %q", i, rebuilt[i], container[i])
		}
	}

	// Sub-files are also reachable by their virtual qualified name.
	if _, err := store.Resolve("virtual/body.ldr"); err != nil {
		t.Errorf("qualified virtual resolve: %v", err)
	}
}

func TestSplitContainerNoMarkers(t *testing.T) {
	fs := newFakeFS()
	fs.files["models/flat.mpd"] = []string{"0 nothing here"}

	store := NewStore(fs)
	store.RegisterPhysical("models/flat.mpd")
	doc, _ := store.Resolve("flat.mpd")

	if _, err := store.SplitContainer(doc); err == nil {
		t.Error("container without markers should fail to split")
	}
}

func TestDocumentHasGeometryAndWinding(t *testing.T) {
	fs := newFakeFS()
	fs.files["lib/leaf.dat"] = []string{
		"0 BFC CERTIFY CCW",
		"4 16 0 0 0 1 0 0 1 0 1 0 0 1",
	}
	fs.files["lib/asm.ldr"] = []string{
		"1 16 0 0 0 1 0 0 0 1 0 0 0 1 leaf.dat",
	}

	store := NewStore(fs)
	if _, err := store.ScanLibrary("lib"); err != nil {
		t.Fatal(err)
	}

	leaf, _ := store.Resolve("leaf.dat")
	if geom, _ := leaf.HasGeometry(); !geom {
		t.Error("leaf.dat should report geometry")
	}
	if w, _ := leaf.RestingWinding(); w != CCW {
		t.Errorf("leaf winding: got %v, want CCW", w)
	}

	asm, _ := store.Resolve("asm.ldr")
	if geom, _ := asm.HasGeometry(); geom {
		t.Error("asm.ldr should not report geometry")
	}
	if w, _ := asm.RestingWinding(); w != CW {
		t.Errorf("assembly winding: got %v, want default CW", w)
	}
}

func TestRestingWindingCCWAnywhere(t *testing.T) {
	fs := newFakeFS()
	fs.files["lib/restated.dat"] = []string{
		"0 BFC CERTIFY CW",
		"0 BFC CCW",
		"4 16 0 0 0 1 0 0 1 0 1 0 0 1",
	}
	fs.files["lib/late.dat"] = []string{
		"4 16 0 0 0 1 0 0 1 0 1 0 0 1",
		"0 BFC CERTIFY CCW",
	}
	fs.files["lib/cwonly.dat"] = []string{
		"0 BFC CERTIFY CW",
		"4 16 0 0 0 1 0 0 1 0 1 0 0 1",
	}

	store := NewStore(fs)
	if _, err := store.ScanLibrary("lib"); err != nil {
		t.Fatal(err)
	}

	// A CW directive must not end the scan: the later CCW governs.
	restated, _ := store.Resolve("restated.dat")
	if w, _ := restated.RestingWinding(); w != CCW {
		t.Errorf("restated.dat winding: got %v, want CCW", w)
	}

	late, _ := store.Resolve("late.dat")
	if w, _ := late.RestingWinding(); w != CCW {
		t.Errorf("late.dat winding: got %v, want CCW", w)
	}

	cwOnly, _ := store.Resolve("cwonly.dat")
	if w, _ := cwOnly.RestingWinding(); w != CW {
		t.Errorf("cwonly.dat winding: got %v, want CW", w)
	}
}

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		"3001.dat":        "3001",
		"3001.DAT":        "3001",
		"body.ldr":        "body",
		"body.LDR":        "body",
		`s\3001s01.dat`:   "3001s01",
		"parts/3001.dat":  "3001",
		"no-extension":    "no-extension",
		"texture.png":     "texture.png",
	}
	for in, want := range cases {
		if got := CleanName(in); got != want {
			t.Errorf("CleanName(%q): got %q, want %q", in, got, want)
		}
	}
}
