//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework IOKit
#include <IOKit/hidsystem/IOHIDLib.h>

static int hid_listen_access(void) {
    return (int)IOHIDCheckAccess(kIOHIDRequestTypeListenEvent);
}

static int hid_request_listen_access(void) {
    return IOHIDRequestAccess(kIOHIDRequestTypeListenEvent) ? 1 : 0;
}
*/
import "C"
import "fmt"

// CheckInputMonitoringPermission checks if the process may listen to HID
// keyboard events. Returns an error with instructions if permission is not
// granted.
func CheckInputMonitoringPermission() error {
	if C.hid_listen_access() != C.kIOHIDAccessTypeGranted {
		return fmt.Errorf(
			"input monitoring permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Input Monitoring\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again, or run watch with --no-hid.")
	}
	return nil
}

// RequestInputMonitoringPermission triggers the OS permission prompt if the
// user has not decided yet.
func RequestInputMonitoringPermission() {
	if C.hid_listen_access() == C.kIOHIDAccessTypeUnknown {
		C.hid_request_listen_access()
	}
}
