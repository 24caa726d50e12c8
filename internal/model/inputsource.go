package model

// Text Input Source property keys, named after the kTISProperty* constants
// they are read from.
const (
	PropInputSourceID       = "TISPropertyInputSourceID"
	PropLocalizedName       = "TISPropertyLocalizedName"
	PropInputSourceCategory = "TISPropertyInputSourceCategory"
	PropIsSelectCapable     = "TISPropertyInputSourceIsSelectCapable"
	PropIsEnableCapable     = "TISPropertyInputSourceIsEnableCapable"
	PropIsSelected          = "TISPropertyInputSourceIsSelected"
	PropIsEnabled           = "TISPropertyInputSourceIsEnabled"
	PropLanguages           = "TISPropertyInputSourceLanguages"
	PropIconImageURL        = "TISPropertyIconImageURL"
	PropIconRef             = "TISPropertyIconRef"
)

// InputSource is a snapshot of one registered keyboard input source.
// Flags reflect OS state at the time it was read and are not updated.
type InputSource struct {
	ID            string   `yaml:"id"                 json:"id"`
	LocalizedName string   `yaml:"name"               json:"name"`
	Category      string   `yaml:"category"           json:"category"`
	IsSelectable  bool     `yaml:"selectable"         json:"selectable"`
	IsEnableable  bool     `yaml:"enableable"         json:"enableable"`
	IsSelected    bool     `yaml:"selected"           json:"selected"`
	IsEnabled     bool     `yaml:"enabled"            json:"enabled"`
	Languages     []string `yaml:"languages"          json:"languages"`
	IconImageURL  string   `yaml:"icon_url,omitempty" json:"icon_url,omitempty"`
	HasIconRef    bool     `yaml:"icon_ref,omitempty" json:"icon_ref,omitempty"`
}

// PropertyReader reads typed values off a single input source.
// The second return value is false when the property is missing or has a
// different type.
type PropertyReader interface {
	String(key string) (string, bool)
	Bool(key string) (bool, bool)
	Strings(key string) ([]string, bool)
}

// NewInputSource builds an InputSource from r. It returns false if any
// required property is unavailable; a partial value is never returned.
// The icon properties are optional.
func NewInputSource(r PropertyReader) (InputSource, bool) {
	var src InputSource
	var ok bool

	if src.ID, ok = r.String(PropInputSourceID); !ok || src.ID == "" {
		return InputSource{}, false
	}
	if src.LocalizedName, ok = r.String(PropLocalizedName); !ok {
		return InputSource{}, false
	}
	if src.Category, ok = r.String(PropInputSourceCategory); !ok {
		return InputSource{}, false
	}
	if src.IsSelectable, ok = r.Bool(PropIsSelectCapable); !ok {
		return InputSource{}, false
	}
	if src.IsEnableable, ok = r.Bool(PropIsEnableCapable); !ok {
		return InputSource{}, false
	}
	if src.IsSelected, ok = r.Bool(PropIsSelected); !ok {
		return InputSource{}, false
	}
	if src.IsEnabled, ok = r.Bool(PropIsEnabled); !ok {
		return InputSource{}, false
	}
	if src.Languages, ok = r.Strings(PropLanguages); !ok {
		return InputSource{}, false
	}
	if src.Languages == nil {
		src.Languages = []string{}
	}

	src.IconImageURL, _ = r.String(PropIconImageURL)
	src.HasIconRef, _ = r.Bool(PropIconRef)
	return src, true
}
