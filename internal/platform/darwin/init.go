//go:build darwin && cgo

package darwin

import (
	"runtime"

	"github.com/mj1618/inputsource/internal/platform"
)

func init() {
	// CFRunLoopGetMain callbacks only run while the main thread services its
	// run loop, so keep the main goroutine on it.
	runtime.LockOSThread()

	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Manager: NewInputSourceManager(),
			RunLoop: NewRunLoop(),
			NewEventSource: func(hid bool) platform.EventSource {
				return NewEventSource(hid)
			},
		}, nil
	}
	platform.RequestPermissionsFunc = RequestInputMonitoringPermission
}
