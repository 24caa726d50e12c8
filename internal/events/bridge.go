// Package events republishes OS input source notifications and HID input
// values to a single listener.
package events

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mj1618/inputsource/internal/model"
	"github.com/mj1618/inputsource/internal/platform"
	"go.uber.org/zap"
)

// ErrAlreadyListening is returned by Listen while a subscription is active.
var ErrAlreadyListening = errors.New("event bridge is already listening")

// Listener receives every event delivered to a subscription.
type Listener func(model.Event)

// Bridge turns raw notifications from a platform.EventSource into
// model.Events. It has two states: idle and listening.
type Bridge struct {
	manager platform.InputSourceManager
	source  platform.EventSource
	log     *zap.SugaredLogger

	mu     sync.Mutex
	active *Subscription
}

// NewBridge returns an idle bridge. The manager is used to look up the new
// current input source whenever the OS reports a change.
func NewBridge(manager platform.InputSourceManager, source platform.EventSource, log *zap.SugaredLogger) *Bridge {
	return &Bridge{
		manager: manager,
		source:  source,
		log:     log,
	}
}

// Listen registers fn and starts the event source. Only one subscription may
// be active at a time.
func (b *Bridge) Listen(fn Listener) (*Subscription, error) {
	if fn == nil {
		return nil, errors.New("listener must not be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		return nil, ErrAlreadyListening
	}

	sub := &Subscription{
		bridge:   b,
		listener: fn,
		changed:  make(chan struct{}, 1),
	}
	if err := b.source.Start(sub); err != nil {
		return nil, fmt.Errorf("start event source: %w", err)
	}
	b.active = sub
	b.log.Debug("event bridge listening")
	return sub, nil
}

func (b *Bridge) release(sub *Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != sub {
		return nil
	}
	b.active = nil
	if err := b.source.Stop(); err != nil {
		return fmt.Errorf("stop event source: %w", err)
	}
	b.log.Debug("event bridge idle")
	return nil
}

// Subscription owns a registration made by Bridge.Listen. It implements
// platform.EventSink.
type Subscription struct {
	bridge   *Bridge
	listener Listener

	// deliverMu is held while the listener runs, so Cancel returns only
	// after any in-flight delivery has finished.
	deliverMu sync.Mutex
	closed    bool

	mu     sync.Mutex
	latest model.Event
	seen   bool

	changed chan struct{}
}

// SourceChanged re-reads the current keyboard input source and emits it.
// Nothing is emitted if the lookup fails.
func (s *Subscription) SourceChanged() {
	src, err := s.bridge.manager.CurrentKeyboardInputSource()
	if err != nil {
		s.bridge.log.Debugw("dropping input source change", "error", err)
		return
	}
	s.emit(model.NewSourceEvent(*src))
}

// InputValue emits a HID input value event.
func (s *Subscription) InputValue(v model.InputValue) {
	s.emit(model.NewValueEvent(v))
}

func (s *Subscription) emit(ev model.Event) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if s.closed {
		return
	}

	s.mu.Lock()
	s.latest = ev
	s.seen = true
	s.mu.Unlock()

	s.listener(ev)

	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Latest returns the most recently delivered event.
func (s *Subscription) Latest() (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.seen
}

// Changed is signalled after each delivered event. Signals coalesce: a
// reader that falls behind sees one pending signal and should call Latest.
func (s *Subscription) Changed() <-chan struct{} {
	return s.changed
}

// Cancel stops delivery and removes the OS subscriptions. It is safe to call
// more than once, but not from inside the listener.
func (s *Subscription) Cancel() error {
	s.deliverMu.Lock()
	if s.closed {
		s.deliverMu.Unlock()
		return nil
	}
	s.closed = true
	s.deliverMu.Unlock()

	return s.bridge.release(s)
}
