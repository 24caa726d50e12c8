package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mj1618/inputsource/internal/model"
)

func TestParseCategory_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"keyboard", CategoryKeyboard},
		{"Keyboard", CategoryKeyboard},
		{"palette", CategoryPalette},
		{"INK", CategoryInk},
		{"TISCategoryKeyboardInputSource", CategoryKeyboard},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseCategory_Invalid(t *testing.T) {
	if _, err := ParseCategory("layout"); err == nil {
		t.Error("ParseCategory(\"layout\") should fail")
	}
}

func TestShortCategory(t *testing.T) {
	if got := ShortCategory(CategoryPalette); got != "palette" {
		t.Errorf("ShortCategory = %q, want palette", got)
	}
	if got := ShortCategory("SomethingElse"); got != "SomethingElse" {
		t.Errorf("unknown category should pass through, got %q", got)
	}
}

func TestOSStatusError(t *testing.T) {
	var err error = fmt.Errorf("select: %w", &OSStatusError{Op: "TISSelectInputSource", Status: -50})
	var st *OSStatusError
	if !errors.As(err, &st) {
		t.Fatal("errors.As should find OSStatusError")
	}
	if st.Status != -50 {
		t.Errorf("Status = %d", st.Status)
	}
	if err.Error() != "select: TISSelectInputSource failed: OSStatus -50" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func testSources() []model.InputSource {
	return []model.InputSource{
		{ID: "com.apple.keylayout.US", LocalizedName: "U.S.", Category: CategoryKeyboard, IsSelectable: true, IsEnabled: true, Languages: []string{"en"}},
		{ID: "com.apple.keylayout.SwissGerman", LocalizedName: "Swiss German", Category: CategoryKeyboard, IsSelectable: true, Languages: []string{"de-CH", "de"}},
		{ID: "com.apple.inputmethod.SCIM.ITABC", LocalizedName: "Pinyin - Simplified", Category: CategoryKeyboard, IsSelectable: true, IsEnabled: true, Languages: []string{"zh-Hans"}},
		{ID: "com.apple.CharacterPaletteIM", LocalizedName: "Emoji & Symbols", Category: CategoryPalette, IsEnabled: true, Languages: []string{}},
	}
}

func ids(sources []model.InputSource) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.ID
	}
	return out
}

func TestFilterSources(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter", Filter{}, []string{"com.apple.keylayout.US", "com.apple.keylayout.SwissGerman", "com.apple.inputmethod.SCIM.ITABC", "com.apple.CharacterPaletteIM"}},
		{"category", Filter{Category: CategoryPalette}, []string{"com.apple.CharacterPaletteIM"}},
		{"selectable", Filter{SelectableOnly: true}, []string{"com.apple.keylayout.US", "com.apple.keylayout.SwissGerman", "com.apple.inputmethod.SCIM.ITABC"}},
		{"enabled", Filter{EnabledOnly: true}, []string{"com.apple.keylayout.US", "com.apple.inputmethod.SCIM.ITABC", "com.apple.CharacterPaletteIM"}},
		{"text matches id", Filter{Text: "KEYLAYOUT"}, []string{"com.apple.keylayout.US", "com.apple.keylayout.SwissGerman"}},
		{"text matches name", Filter{Text: "pinyin"}, []string{"com.apple.inputmethod.SCIM.ITABC"}},
		{"base language", Filter{Language: "de"}, []string{"com.apple.keylayout.SwissGerman"}},
		{"language with region", Filter{Language: "de-CH"}, []string{"com.apple.keylayout.SwissGerman"}},
		{"language region mismatch", Filter{Language: "de-AT"}, []string{}},
		{"language with script", Filter{Language: "zh-Hans"}, []string{"com.apple.inputmethod.SCIM.ITABC"}},
		{"combined", Filter{Category: CategoryKeyboard, EnabledOnly: true, Language: "en"}, []string{"com.apple.keylayout.US"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterSources(testSources(), tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("got %v, want %v", gotIDs, tt.want)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.want[i] {
					t.Errorf("got %v, want %v", gotIDs, tt.want)
					break
				}
			}
		})
	}
}

func TestFilterSources_InvalidLanguage(t *testing.T) {
	if _, err := FilterSources(testSources(), Filter{Language: "not a tag!"}); err == nil {
		t.Error("invalid language tag should fail")
	}
}
