//go:build darwin && cgo

package darwin

/*
#include <stdint.h>
*/
import "C"
import "runtime/cgo"

// The functions below are called from the C callbacks in eventsource.go on
// the main run loop thread.

//export goInputSourceChanged
func goInputSourceChanged(id C.uintptr_t) {
	e := lookupEventSource(uintptr(id))
	if e == nil {
		return
	}
	if sink := e.currentSink(); sink != nil {
		sink.SourceChanged()
	}
}

//export goHIDInputValue
func goHIDInputValue(id C.uintptr_t, device C.uintptr_t, page, usage C.uint32_t, value C.longlong) {
	e := lookupEventSource(uintptr(id))
	if e == nil {
		return
	}
	sink := e.currentSink()
	if sink == nil {
		return
	}
	sink.InputValue(newInputValue(uintptr(device), uint32(page), uint32(usage), int64(value)))
}

//export goRunOnMain
func goRunOnMain(handle C.uintptr_t) {
	cgo.Handle(handle).Value().(func())()
}
