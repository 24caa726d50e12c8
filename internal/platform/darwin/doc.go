// Package darwin provides macOS platform support using the Text Input Source
// Services, CFNotificationCenter and IOKit HID APIs.
// All functionality requires CGo. On other platforms, or when CGo is
// disabled, the package is empty and platform.NewProvider returns
// platform.ErrUnsupported.
package darwin
