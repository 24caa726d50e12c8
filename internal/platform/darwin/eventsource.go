//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Carbon -framework IOKit -framework CoreFoundation
#include <Carbon/Carbon.h>
#include <IOKit/hid/IOHIDManager.h>
#include <IOKit/hid/IOHIDKeys.h>
#include <stdint.h>

extern void goInputSourceChanged(uintptr_t id);
extern void goHIDInputValue(uintptr_t id, uintptr_t device, uint32_t page, uint32_t usage, long long value);

static void source_changed_cb(CFNotificationCenterRef center, void *observer,
                              CFNotificationName name, const void *object,
                              CFDictionaryRef userInfo) {
    goInputSourceChanged((uintptr_t)observer);
}

static void hid_value_cb(void *context, IOReturn result, void *sender, IOHIDValueRef value) {
    if (result != kIOReturnSuccess || value == NULL) return;
    IOHIDElementRef element = IOHIDValueGetElement(value);
    if (element == NULL) return;
    goHIDInputValue((uintptr_t)context,
                    (uintptr_t)IOHIDElementGetDevice(element),
                    IOHIDElementGetUsagePage(element),
                    IOHIDElementGetUsage(element),
                    (long long)IOHIDValueGetIntegerValue(value));
}

static void add_source_observer(uintptr_t id) {
    CFNotificationCenterAddObserver(CFNotificationCenterGetDistributedCenter(),
        (const void *)id, source_changed_cb,
        kTISNotifySelectedKeyboardInputSourceChanged, NULL,
        CFNotificationSuspensionBehaviorDeliverImmediately);
}

static void remove_source_observer(uintptr_t id) {
    CFNotificationCenterRemoveObserver(CFNotificationCenterGetDistributedCenter(),
        (const void *)id, kTISNotifySelectedKeyboardInputSourceChanged, NULL);
}

static CFDictionaryRef hid_usage_criteria(int page, int usage) {
    CFMutableDictionaryRef dict = CFDictionaryCreateMutable(kCFAllocatorDefault, 0,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    CFNumberRef pageNum = CFNumberCreate(kCFAllocatorDefault, kCFNumberIntType, &page);
    CFNumberRef usageNum = CFNumberCreate(kCFAllocatorDefault, kCFNumberIntType, &usage);
    CFDictionarySetValue(dict, CFSTR(kIOHIDDeviceUsagePageKey), pageNum);
    CFDictionarySetValue(dict, CFSTR(kIOHIDDeviceUsageKey), usageNum);
    CFRelease(pageNum);
    CFRelease(usageNum);
    return dict;
}

// Creates a HID manager matching keyboards and keypads, registers the input
// value callback and schedules it on the main run loop. On failure the
// manager is released, NULL is returned and *ret holds the error.
static IOHIDManagerRef hid_open(uintptr_t id, IOReturn *ret) {
    IOHIDManagerRef manager = IOHIDManagerCreate(kCFAllocatorDefault, kIOHIDOptionsTypeNone);
    if (manager == NULL) {
        *ret = kIOReturnNoMemory;
        return NULL;
    }

    CFMutableArrayRef criteria = CFArrayCreateMutable(kCFAllocatorDefault, 2, &kCFTypeArrayCallBacks);
    CFDictionaryRef keyboard = hid_usage_criteria(kHIDPage_GenericDesktop, kHIDUsage_GD_Keyboard);
    CFDictionaryRef keypad = hid_usage_criteria(kHIDPage_GenericDesktop, kHIDUsage_GD_Keypad);
    CFArrayAppendValue(criteria, keyboard);
    CFArrayAppendValue(criteria, keypad);
    CFRelease(keyboard);
    CFRelease(keypad);
    IOHIDManagerSetDeviceMatchingMultiple(manager, criteria);
    CFRelease(criteria);

    IOHIDManagerRegisterInputValueCallback(manager, hid_value_cb, (void *)id);
    IOHIDManagerScheduleWithRunLoop(manager, CFRunLoopGetMain(), kCFRunLoopDefaultMode);

    *ret = IOHIDManagerOpen(manager, kIOHIDOptionsTypeNone);
    if (*ret != kIOReturnSuccess) {
        IOHIDManagerUnscheduleFromRunLoop(manager, CFRunLoopGetMain(), kCFRunLoopDefaultMode);
        CFRelease(manager);
        return NULL;
    }
    return manager;
}

static void hid_close(IOHIDManagerRef manager) {
    IOHIDManagerRegisterInputValueCallback(manager, NULL, NULL);
    IOHIDManagerUnscheduleFromRunLoop(manager, CFRunLoopGetMain(), kCFRunLoopDefaultMode);
    IOHIDManagerClose(manager, kIOHIDOptionsTypeNone);
    CFRelease(manager);
}
*/
import "C"
import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mj1618/inputsource/internal/platform"
)

// Live event sources by observer id. The id is what the OS hands back to the
// C callbacks; a late callback for a removed id is ignored.
var (
	eventSources sync.Map
	nextSourceID atomic.Uintptr
)

// EventSource implements platform.EventSource with a distributed notification
// observer for kTISNotifySelectedKeyboardInputSourceChanged and an
// IOHIDManager matching keyboards and keypads. Both deliver on the main run
// loop.
type EventSource struct {
	hid bool

	// mu serializes Start and Stop. Callbacks read sink without it, so Stop
	// can wait on the main thread while a callback is running there.
	mu      sync.Mutex
	id      uintptr
	manager C.IOHIDManagerRef
	sink    atomic.Pointer[sinkRef]
}

type sinkRef struct {
	platform.EventSink
}

// NewEventSource creates an unstarted event source. When hid is false only
// input source notifications are registered.
func NewEventSource(hid bool) *EventSource {
	return &EventSource{hid: hid}
}

// Start registers both subscriptions. Opening the HID manager needs the
// Input Monitoring permission.
func (e *EventSource) Start(sink platform.EventSink) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sink.Load() != nil {
		return errors.New("event source already started")
	}

	id := nextSourceID.Add(1)
	eventSources.Store(id, e)
	e.id = id
	e.sink.Store(&sinkRef{sink})

	var (
		manager C.IOHIDManagerRef
		ret     C.IOReturn
	)
	onMain(func() {
		C.add_source_observer(C.uintptr_t(id))
		if !e.hid {
			return
		}
		manager = C.hid_open(C.uintptr_t(id), &ret)
		if manager == 0 {
			C.remove_source_observer(C.uintptr_t(id))
		}
	})

	if e.hid && manager == 0 {
		eventSources.Delete(id)
		e.sink.Store(nil)
		err := &platform.OSStatusError{Op: "IOHIDManagerOpen", Status: int(ret)}
		if permErr := CheckInputMonitoringPermission(); permErr != nil {
			return fmt.Errorf("%w\n\n%v", err, permErr)
		}
		return err
	}
	e.manager = manager
	return nil
}

// Stop removes the notification observer and closes the HID manager.
func (e *EventSource) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sink.Load() == nil {
		return nil
	}
	e.sink.Store(nil)

	id, manager := e.id, e.manager
	onMain(func() {
		C.remove_source_observer(C.uintptr_t(id))
		if manager != 0 {
			C.hid_close(manager)
		}
	})
	e.manager = 0
	eventSources.Delete(id)
	return nil
}

func (e *EventSource) currentSink() platform.EventSink {
	if ref := e.sink.Load(); ref != nil {
		return ref.EventSink
	}
	return nil
}

func lookupEventSource(id uintptr) *EventSource {
	v, ok := eventSources.Load(id)
	if !ok {
		return nil
	}
	return v.(*EventSource)
}
