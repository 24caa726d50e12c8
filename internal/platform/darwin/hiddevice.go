//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <IOKit/hid/IOHIDDevice.h>
#include "cfutil.h"

static CFTypeRef hid_property(IOHIDDeviceRef device, const char *key) {
    if (device == NULL) return NULL;
    CFStringRef k = CFStringCreateWithCString(kCFAllocatorDefault, key, kCFStringEncodingUTF8);
    if (k == NULL) return NULL;
    CFTypeRef v = IOHIDDeviceGetProperty(device, k);
    CFRelease(k);
    return v;
}
*/
import "C"
import (
	"unsafe"

	"github.com/mj1618/inputsource/internal/model"
)

// hidProps implements model.DevicePropertyReader for a borrowed
// IOHIDDeviceRef. Keys are the kIOHID*Key strings.
type hidProps struct {
	device C.IOHIDDeviceRef
}

func (p hidProps) get(key string) C.CFTypeRef {
	cKey := C.CString(key)
	defer C.free(unsafe.Pointer(cKey))
	return C.hid_property(p.device, cKey)
}

func (p hidProps) Int(key string) (int64, bool) {
	var n C.longlong
	if C.cf_int64(p.get(key), &n) == 0 {
		return 0, false
	}
	return int64(n), true
}

func (p hidProps) String(key string) (string, bool) {
	return cfString(p.get(key))
}

// newInputValue reads the descriptor of the device that produced a HID value.
func newInputValue(device uintptr, page, usage uint32, value int64) model.InputValue {
	v := model.NewInputValue(hidProps{device: C.IOHIDDeviceRef(device)})
	v.UsagePage = page
	v.Usage = usage
	v.Value = value
	return v
}
