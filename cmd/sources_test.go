package cmd

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/platform"
	"github.com/mj1618/inputsource/internal/platform/fake"
)

func ids(result output.ListResult) []string {
	out := make([]string, len(result.Sources))
	for i, s := range result.Sources {
		out[i] = s.ID
	}
	return out
}

func TestListSources(t *testing.T) {
	m := fake.NewManager(fake.Sources()...)

	tests := []struct {
		name      string
		installed bool
		category  string
		lang      string
		want      []string
	}{
		{"all", false, "", "", []string{"com.apple.keylayout.US", "com.apple.keylayout.German", "com.apple.keylayout.USInternational-PC", "com.apple.CharacterPaletteIM"}},
		{"installed", true, "", "", []string{"com.apple.keylayout.US", "com.apple.keylayout.German", "com.apple.CharacterPaletteIM"}},
		{"installed keyboards", true, "keyboard", "", []string{"com.apple.keylayout.US", "com.apple.keylayout.German"}},
		{"german", false, "", "de", []string{"com.apple.keylayout.German", "com.apple.keylayout.USInternational-PC"}},
		{"palette", false, "palette", "", []string{"com.apple.CharacterPaletteIM"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := buildFilter(tt.category, tt.lang, "", false, false)
			if err != nil {
				t.Fatal(err)
			}
			result, err := listSources(m, tt.installed, f)
			if err != nil {
				t.Fatal(err)
			}
			got := ids(result)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] got %q, want %q", i, got[i], tt.want[i])
				}
			}
			if result.Count != len(got) {
				t.Errorf("count = %d, want %d", result.Count, len(got))
			}
		})
	}
}

func TestBuildFilter_BadCategory(t *testing.T) {
	if _, err := buildFilter("handwriting", "", "", false, false); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestCurrentSource(t *testing.T) {
	m := fake.NewManager(fake.Sources()...)

	src, err := currentSource(m, false)
	if err != nil {
		t.Fatal(err)
	}
	if src.ID != "com.apple.keylayout.US" || !src.IsSelected {
		t.Errorf("current = %+v", src)
	}

	layout, err := currentSource(m, true)
	if err != nil {
		t.Fatal(err)
	}
	if layout.Category != platform.CategoryKeyboard {
		t.Errorf("layout category = %q", layout.Category)
	}
}

func TestSelectSource(t *testing.T) {
	m := fake.NewManager(fake.Sources()...)

	result, err := selectSource(m, "com.apple.keylayout.German")
	if err != nil {
		t.Fatal(err)
	}
	if !result.OK {
		t.Error("expected ok")
	}
	if result.Previous == nil || result.Previous.ID != "com.apple.keylayout.US" {
		t.Errorf("previous = %+v", result.Previous)
	}
	if result.Current == nil || result.Current.ID != "com.apple.keylayout.German" {
		t.Errorf("current = %+v", result.Current)
	}
}

func TestSelectSource_UnknownFailsClosed(t *testing.T) {
	m := fake.NewManager(fake.Sources()...)

	result, err := selectSource(m, "com.example.nope")
	if !errors.Is(err, platform.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if result.OK {
		t.Error("result should not be ok")
	}
	if len(m.Selected()) != 0 {
		t.Errorf("nothing should be selected, got %v", m.Selected())
	}
	cur, _ := m.CurrentKeyboardInputSource()
	if cur.ID != "com.apple.keylayout.US" {
		t.Errorf("current changed to %q", cur.ID)
	}
}

func TestSelectSource_NotSelectable(t *testing.T) {
	m := fake.NewManager(fake.Sources()...)

	_, err := selectSource(m, "com.apple.keylayout.USInternational-PC")
	var statusErr *platform.OSStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected OSStatusError, got %v", err)
	}
}

func TestSelectSource_EmptyID(t *testing.T) {
	m := fake.NewManager(fake.Sources()...)
	if _, err := selectSource(m, ""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestGetCommand(t *testing.T) {
	useFakeProvider(t, fake.NewManager(fake.Sources()...))

	out, err := executeCommand(t, "--format", "json", "get", "com.apple.keylayout.German")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		Languages []string `json:"languages"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.ID != "com.apple.keylayout.German" || got.Name != "German" {
		t.Errorf("got %+v", got)
	}
}

func TestGetCommand_NotFound(t *testing.T) {
	useFakeProvider(t, fake.NewManager(fake.Sources()...))

	out, err := executeCommand(t, "--format", "json", "get", "com.apple.keylayout.us")
	if !errors.Is(err, platform.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for case-mismatched id, got %v", err)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestSelectCommand(t *testing.T) {
	m := fake.NewManager(fake.Sources()...)
	useFakeProvider(t, m)

	out, err := executeCommand(t, "--format", "json", "select", "com.apple.keylayout.German")
	if err != nil {
		t.Fatal(err)
	}
	var got output.SelectResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if !got.OK || got.Current == nil || got.Current.ID != "com.apple.keylayout.German" {
		t.Errorf("got %+v", got)
	}
	if sel := m.Selected(); len(sel) != 1 || sel[0] != "com.apple.keylayout.German" {
		t.Errorf("selected = %v", sel)
	}
}

func TestListSources_CategorySummary(t *testing.T) {
	m := fake.NewManager(fake.Sources()...)

	result, err := listSources(m, true, platform.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Categories["keyboard"] != 2 || result.Categories["palette"] != 1 {
		t.Errorf("categories = %v, want keyboard:2 palette:1", result.Categories)
	}

	empty, err := listSources(m, false, platform.Filter{Text: "nothing matches"})
	if err != nil {
		t.Fatal(err)
	}
	if empty.Categories != nil {
		t.Errorf("empty list should omit categories, got %v", empty.Categories)
	}
}
