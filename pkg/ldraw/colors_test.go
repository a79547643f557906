package ldraw

import "testing"

func TestParseColorTable(t *testing.T) {
	fs := newFakeFS()
	fs.files["ldraw/LDConfig.ldr"] = []string{
		"0 LDraw.org Configuration File",
		"0 !COLOUR Red CODE 4 VALUE #C91A09 EDGE #333333",
		"0 !COLOUR Trans_Clear CODE 47 VALUE #FCFCFC EDGE #C3C3C3 ALPHA 128",
		"0 !COLOUR Chrome_Gold CODE 334 VALUE #BBA53D EDGE #BBB23D CHROME",
		"0 some other meta line",
	}

	store := NewStore(fs)
	store.RegisterPhysical("ldraw/LDConfig.ldr")
	doc, err := store.Resolve("LDConfig.ldr")
	if err != nil {
		t.Fatal(err)
	}

	table, err := ParseColorTable(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 3 {
		t.Fatalf("table size: got %d, want 3", len(table))
	}

	red := table["4"]
	if red == nil {
		t.Fatal("missing code 4")
	}
	if red.Name != "Red" {
		t.Errorf("name: got %q", red.Name)
	}
	if abs(red.R-0xC9/255.0) > 1e-4 || abs(red.G-0x1A/255.0) > 1e-4 || abs(red.B-0x09/255.0) > 1e-4 {
		t.Errorf("rgb: got (%f, %f, %f)", red.R, red.G, red.B)
	}
	if red.Opacity != 1.0 || red.Metallic != 0.0 {
		t.Errorf("red should be opaque non-metal, got opacity=%f metallic=%f", red.Opacity, red.Metallic)
	}

	trans := table["47"]
	if trans == nil {
		t.Fatal("missing code 47")
	}
	if abs(trans.Opacity-(1.0-128.0/255.0)) > 1e-4 {
		t.Errorf("alpha opacity: got %f", trans.Opacity)
	}

	chrome := table["334"]
	if chrome == nil {
		t.Fatal("missing code 334")
	}
	if chrome.Metallic != 1.0 {
		t.Errorf("chrome should be metallic, got %f", chrome.Metallic)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
