package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/inputsource/internal/model"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when no input source matches the requested
// identifier, or when a required property of the source cannot be read.
var ErrNotFound = errors.New("input source not found")

// OSStatusError wraps a non-zero OSStatus returned by a system call.
type OSStatusError struct {
	Op     string
	Status int
}

func (e *OSStatusError) Error() string {
	return fmt.Sprintf("%s failed: OSStatus %d", e.Op, e.Status)
}

// TIS category values (kTISCategory*).
const (
	CategoryKeyboard = "TISCategoryKeyboardInputSource"
	CategoryPalette  = "TISCategoryPaletteInputSource"
	CategoryInk      = "TISCategoryInkInputSource"
)

var categoryNames = map[string]string{
	"keyboard": CategoryKeyboard,
	"palette":  CategoryPalette,
	"ink":      CategoryInk,
}

// ParseCategory converts a short category name ("keyboard", "palette", "ink")
// or a full TIS category string to the TIS category string.
func ParseCategory(s string) (string, error) {
	if c, ok := categoryNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	for _, c := range categoryNames {
		if c == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q (expected keyboard, palette, or ink)", s)
}

// ShortCategory returns the short name for a TIS category string, or the
// string unchanged if it is not a known category.
func ShortCategory(category string) string {
	for short, c := range categoryNames {
		if c == category {
			return short
		}
	}
	return category
}

// Filter selects a subset of input sources. Zero values match everything.
type Filter struct {
	Category       string // Full TIS category string
	Language       string // BCP 47 tag, e.g. "de" or "pt-BR"
	Text           string // Case-insensitive substring of ID or localized name
	SelectableOnly bool
	EnabledOnly    bool
}

// FilterSources returns the sources matching f, preserving order.
func FilterSources(sources []model.InputSource, f Filter) ([]model.InputSource, error) {
	var want *language.Tag
	if f.Language != "" {
		tag, err := language.Parse(f.Language)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", f.Language, err)
		}
		want = &tag
	}
	textLower := strings.ToLower(f.Text)

	out := []model.InputSource{}
	for _, src := range sources {
		if f.Category != "" && src.Category != f.Category {
			continue
		}
		if f.SelectableOnly && !src.IsSelectable {
			continue
		}
		if f.EnabledOnly && !src.IsEnabled {
			continue
		}
		if textLower != "" &&
			!strings.Contains(strings.ToLower(src.ID), textLower) &&
			!strings.Contains(strings.ToLower(src.LocalizedName), textLower) {
			continue
		}
		if want != nil && !typesLanguage(src.Languages, *want) {
			continue
		}
		out = append(out, src)
	}
	return out, nil
}

// typesLanguage reports whether any of langs matches want. The base language
// must agree; script and region only have to agree when want specifies them.
func typesLanguage(langs []string, want language.Tag) bool {
	wantBase, wantScript, wantRegion := want.Raw()
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		base, script, region := tag.Raw()
		if base != wantBase {
			continue
		}
		if wantScript != (language.Script{}) && script != wantScript {
			continue
		}
		if wantRegion != (language.Region{}) && region != wantRegion {
			continue
		}
		return true
	}
	return false
}
