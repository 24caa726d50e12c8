package output

import "github.com/mj1618/inputsource/internal/model"

// ListResult is the top-level output of the `list` command.
type ListResult struct {
	TS        int64 `yaml:"ts"                  json:"ts"`
	Installed bool  `yaml:"installed,omitempty" json:"installed,omitempty"`
	Count     int   `yaml:"count"               json:"count"`
	// Categories counts sources by short category name ("keyboard", "palette", ...).
	Categories map[string]int      `yaml:"categories,omitempty" json:"categories,omitempty"`
	Sources    []model.InputSource `yaml:"sources"              json:"sources"`
}

// SelectResult is the output of the `select` command.
type SelectResult struct {
	OK       bool               `yaml:"ok"                 json:"ok"`
	Previous *model.InputSource `yaml:"previous,omitempty" json:"previous,omitempty"`
	Current  *model.InputSource `yaml:"current,omitempty"  json:"current,omitempty"`
}
