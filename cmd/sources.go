package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/inputsource/internal/model"
	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/platform"
)

// The functions below back both the CLI commands and the MCP tools.

func buildFilter(category, lang, text string, selectable, enabled bool) (platform.Filter, error) {
	f := platform.Filter{
		Language:       lang,
		Text:           text,
		SelectableOnly: selectable,
		EnabledOnly:    enabled,
	}
	if category != "" {
		c, err := platform.ParseCategory(category)
		if err != nil {
			return f, err
		}
		f.Category = c
	}
	return f, nil
}

func listSources(m platform.InputSourceManager, installed bool, f platform.Filter) (output.ListResult, error) {
	var (
		sources []model.InputSource
		err     error
	)
	if installed {
		sources, err = m.InstalledInputSources()
	} else {
		sources, err = m.AllInputSources()
	}
	if err != nil {
		return output.ListResult{}, err
	}

	sources, err = platform.FilterSources(sources, f)
	if err != nil {
		return output.ListResult{}, err
	}
	var categories map[string]int
	for _, src := range sources {
		if categories == nil {
			categories = make(map[string]int)
		}
		categories[platform.ShortCategory(src.Category)]++
	}
	return output.ListResult{
		TS:         time.Now().Unix(),
		Installed:  installed,
		Count:      len(sources),
		Categories: categories,
		Sources:    sources,
	}, nil
}

func currentSource(m platform.InputSourceManager, layout bool) (*model.InputSource, error) {
	if layout {
		return m.CurrentKeyboardLayoutInputSource()
	}
	return m.CurrentKeyboardInputSource()
}

// selectSource switches to id and reports the sources before and after.
func selectSource(m platform.InputSourceManager, id string) (output.SelectResult, error) {
	if id == "" {
		return output.SelectResult{}, fmt.Errorf("input source id is required")
	}

	previous, err := m.CurrentKeyboardInputSource()
	if err != nil {
		logger.Debugw("current input source unavailable before select", "error", err)
		previous = nil
	}

	if err := m.SelectInputSource(id); err != nil {
		return output.SelectResult{Previous: previous}, err
	}
	logger.Debugw("selected input source", "id", id)

	current, err := m.CurrentKeyboardInputSource()
	if err != nil {
		return output.SelectResult{OK: true, Previous: previous}, nil
	}
	return output.SelectResult{OK: true, Previous: previous, Current: current}, nil
}
