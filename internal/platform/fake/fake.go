// Package fake provides in-memory platform backends for tests.
package fake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mj1618/inputsource/internal/model"
	"github.com/mj1618/inputsource/internal/platform"
)

// Manager is an in-memory input source registry. Sources with Installed
// set are returned by InstalledInputSources.
type Manager struct {
	mu       sync.Mutex
	sources  []Source
	current  string
	layout   string
	selected []string

	// CurrentErr, if set, is returned by CurrentKeyboardInputSource.
	CurrentErr error
}

// Source is a registry entry.
type Source struct {
	model.InputSource
	Installed bool
}

// NewManager returns a registry holding sources. The first installed
// source starts out selected.
func NewManager(sources ...Source) *Manager {
	m := &Manager{sources: sources}
	for _, s := range sources {
		if s.Installed {
			m.current = s.ID
			m.layout = s.ID
			break
		}
	}
	return m
}

// Selected returns the IDs passed to successful SelectInputSource calls.
func (m *Manager) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.selected...)
}

func (m *Manager) snapshot(s Source) *model.InputSource {
	src := s.InputSource
	src.IsSelected = s.ID == m.current
	src.Languages = append([]string{}, s.Languages...)
	return &src
}

func (m *Manager) find(id string) (Source, bool) {
	for _, s := range m.sources {
		if s.ID == id {
			return s, true
		}
	}
	return Source{}, false
}

func (m *Manager) CurrentKeyboardInputSource() (*model.InputSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CurrentErr != nil {
		return nil, m.CurrentErr
	}
	s, ok := m.find(m.current)
	if !ok {
		return nil, platform.ErrNotFound
	}
	return m.snapshot(s), nil
}

func (m *Manager) CurrentKeyboardLayoutInputSource() (*model.InputSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.find(m.layout)
	if !ok {
		return nil, platform.ErrNotFound
	}
	return m.snapshot(s), nil
}

func (m *Manager) InputSource(id string) (*model.InputSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", platform.ErrNotFound, id)
	}
	return m.snapshot(s), nil
}

func (m *Manager) SelectInputSource(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", platform.ErrNotFound, id)
	}
	if !s.IsSelectable {
		return &platform.OSStatusError{Op: "TISSelectInputSource", Status: -50}
	}
	m.current = id
	if s.Category == platform.CategoryKeyboard {
		m.layout = id
	}
	m.selected = append(m.selected, id)
	return nil
}

func (m *Manager) AllInputSources() ([]model.InputSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.InputSource{}
	for _, s := range m.sources {
		out = append(out, *m.snapshot(s))
	}
	return out, nil
}

func (m *Manager) InstalledInputSources() ([]model.InputSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.InputSource{}
	for _, s := range m.sources {
		if s.Installed {
			out = append(out, *m.snapshot(s))
		}
	}
	return out, nil
}

// EventSource records Start/Stop calls and lets tests push notifications.
type EventSource struct {
	mu     sync.Mutex
	sink   platform.EventSink
	starts int
	stops  int

	// StartErr, if set, is returned by Start.
	StartErr error
}

// ErrNotStarted is returned by Stop when Start was not called.
var ErrNotStarted = errors.New("event source not started")

func (e *EventSource) Start(sink platform.EventSink) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.StartErr != nil {
		return e.StartErr
	}
	e.sink = sink
	e.starts++
	return nil
}

func (e *EventSource) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sink == nil {
		return ErrNotStarted
	}
	e.stops++
	return nil
}

// Counts returns how many times Start and Stop succeeded.
func (e *EventSource) Counts() (starts, stops int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.starts, e.stops
}

// Sink returns the last sink passed to Start.
func (e *EventSource) Sink() platform.EventSink {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sink
}

// FireSourceChanged delivers an input source change to the sink.
func (e *EventSource) FireSourceChanged() {
	if s := e.Sink(); s != nil {
		s.SourceChanged()
	}
}

// FireInputValue delivers a HID input value to the sink.
func (e *EventSource) FireInputValue(v model.InputValue) {
	if s := e.Sink(); s != nil {
		s.InputValue(v)
	}
}

// RunLoop blocks until the context is done.
type RunLoop struct{}

func (RunLoop) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// NewProvider returns a provider backed by m. Every event source it hands
// out is recorded in sources.
func NewProvider(m *Manager, sources *[]*EventSource) *platform.Provider {
	return &platform.Provider{
		Manager: m,
		RunLoop: RunLoop{},
		NewEventSource: func(hid bool) platform.EventSource {
			es := &EventSource{}
			if sources != nil {
				*sources = append(*sources, es)
			}
			return es
		},
	}
}

// Sources returns a small registry: two installed keyboard layouts, one
// uninstalled layout and an installed palette.
func Sources() []Source {
	return []Source{
		{Installed: true, InputSource: model.InputSource{ID: "com.apple.keylayout.US", LocalizedName: "U.S.", Category: platform.CategoryKeyboard, IsSelectable: true, IsEnableable: true, IsEnabled: true, Languages: []string{"en"}}},
		{Installed: true, InputSource: model.InputSource{ID: "com.apple.keylayout.German", LocalizedName: "German", Category: platform.CategoryKeyboard, IsSelectable: true, IsEnableable: true, IsEnabled: true, Languages: []string{"de"}}},
		{InputSource: model.InputSource{ID: "com.apple.keylayout.USInternational-PC", LocalizedName: "U.S. International - PC", Category: platform.CategoryKeyboard, IsEnableable: true, Languages: []string{"en", "fr", "de"}}},
		{Installed: true, InputSource: model.InputSource{ID: "com.apple.CharacterPaletteIM", LocalizedName: "Emoji & Symbols", Category: platform.CategoryPalette, IsEnabled: true, Languages: []string{}}},
	}
}
