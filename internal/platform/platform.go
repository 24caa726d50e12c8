package platform

import (
	"context"

	"github.com/mj1618/inputsource/internal/model"
)

// InputSourceManager queries and selects keyboard input sources.
type InputSourceManager interface {
	// CurrentKeyboardInputSource returns the currently selected keyboard input source.
	CurrentKeyboardInputSource() (*model.InputSource, error)

	// CurrentKeyboardLayoutInputSource returns the keyboard layout currently in
	// use. Unlike CurrentKeyboardInputSource this is never an input method.
	CurrentKeyboardLayoutInputSource() (*model.InputSource, error)

	// InputSource returns the source whose ID equals id exactly.
	InputSource(id string) (*model.InputSource, error)

	// SelectInputSource makes id the active input source.
	SelectInputSource(id string) error

	// AllInputSources returns every source the registry knows about,
	// enabled or not. Sources that cannot be read are skipped.
	AllInputSources() ([]model.InputSource, error)

	// InstalledInputSources returns the enabled sources.
	InstalledInputSources() ([]model.InputSource, error)
}

// RunLoop drives the OS event loop that delivers notifications.
type RunLoop interface {
	// Run blocks until ctx is done. It must be called from the main goroutine.
	Run(ctx context.Context) error
}

// EventSink receives raw notifications from an EventSource.
type EventSink interface {
	// SourceChanged reports that the selected keyboard input source changed.
	SourceChanged()
	// InputValue reports a HID input value from a matched keyboard or keypad.
	InputValue(v model.InputValue)
}

// EventSource owns the OS subscriptions for input source and HID
// notifications.
type EventSource interface {
	// Start registers both subscriptions and forwards them to sink.
	Start(sink EventSink) error
	// Stop removes the subscriptions and releases the HID manager.
	Stop() error
}
