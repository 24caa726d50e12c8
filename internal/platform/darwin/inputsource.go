//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Carbon -framework CoreFoundation
#include <Carbon/Carbon.h>
#include "cfutil.h"

static CFStringRef tis_property_key(int k) {
    switch (k) {
    case 0: return kTISPropertyInputSourceID;
    case 1: return kTISPropertyLocalizedName;
    case 2: return kTISPropertyInputSourceCategory;
    case 3: return kTISPropertyInputSourceIsSelectCapable;
    case 4: return kTISPropertyInputSourceIsEnableCapable;
    case 5: return kTISPropertyInputSourceIsSelected;
    case 6: return kTISPropertyInputSourceIsEnabled;
    case 7: return kTISPropertyInputSourceLanguages;
    case 8: return kTISPropertyIconImageURL;
    case 9: return kTISPropertyIconRef;
    }
    return NULL;
}

static CFTypeRef tis_prop(TISInputSourceRef src, int k) {
    CFStringRef key = tis_property_key(k);
    if (src == NULL || key == NULL) return NULL;
    return (CFTypeRef)TISGetInputSourceProperty(src, key);
}

static CFArrayRef tis_list(int all) {
    return TISCreateInputSourceList(NULL, all ? true : false);
}

// Returns the sources whose ID matches id. The registry may also return
// related sources, so callers must compare IDs themselves.
static CFArrayRef tis_list_by_id(const char *id) {
    CFStringRef value = CFStringCreateWithCString(kCFAllocatorDefault, id, kCFStringEncodingUTF8);
    if (value == NULL) return NULL;

    const void *keys[] = { kTISPropertyInputSourceID };
    const void *values[] = { value };
    CFDictionaryRef props = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    CFRelease(value);
    if (props == NULL) return NULL;

    CFArrayRef list = TISCreateInputSourceList(props, true);
    CFRelease(props);
    return list;
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/inputsource/internal/model"
	"github.com/mj1618/inputsource/internal/platform"
)

// Indexes understood by tis_property_key.
var tisKeys = map[string]C.int{
	model.PropInputSourceID:       0,
	model.PropLocalizedName:       1,
	model.PropInputSourceCategory: 2,
	model.PropIsSelectCapable:     3,
	model.PropIsEnableCapable:     4,
	model.PropIsSelected:          5,
	model.PropIsEnabled:           6,
	model.PropLanguages:           7,
	model.PropIconImageURL:        8,
	model.PropIconRef:             9,
}

// tisProps implements model.PropertyReader for a borrowed TISInputSourceRef.
// It must not outlive the list or copy the ref came from.
type tisProps struct {
	ref C.TISInputSourceRef
}

func (p tisProps) get(key string) C.CFTypeRef {
	k, ok := tisKeys[key]
	if !ok {
		return 0
	}
	return C.tis_prop(p.ref, k)
}

func (p tisProps) String(key string) (string, bool) {
	return cfString(p.get(key))
}

func (p tisProps) Bool(key string) (bool, bool) {
	v := p.get(key)
	// kTISPropertyIconRef is an IconRef, not a CF type; only report presence.
	if key == model.PropIconRef {
		return v != 0, true
	}
	var b C.int
	if C.cf_bool(v, &b) == 0 {
		return false, false
	}
	return b != 0, true
}

func (p tisProps) Strings(key string) ([]string, bool) {
	v := p.get(key)
	n := int(C.cf_array_count(v))
	if n < 0 {
		return nil, false
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, ok := cfString(C.cf_array_at(v, C.CFIndex(i)))
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func cfString(v C.CFTypeRef) (string, bool) {
	cs := C.cf_copy_utf8(v)
	if cs == nil {
		return "", false
	}
	defer C.free(unsafe.Pointer(cs))
	return C.GoString(cs), true
}

// InputSourceManager implements platform.InputSourceManager with the Text
// Input Source Services API.
type InputSourceManager struct{}

// NewInputSourceManager creates a new macOS input source manager.
func NewInputSourceManager() *InputSourceManager {
	return &InputSourceManager{}
}

func (m *InputSourceManager) CurrentKeyboardInputSource() (src *model.InputSource, err error) {
	onMain(func() {
		src, err = convertCopied(C.TISCopyCurrentKeyboardInputSource(), "current keyboard input source")
	})
	return src, err
}

func (m *InputSourceManager) CurrentKeyboardLayoutInputSource() (src *model.InputSource, err error) {
	onMain(func() {
		src, err = convertCopied(C.TISCopyCurrentKeyboardLayoutInputSource(), "current keyboard layout")
	})
	return src, err
}

// convertCopied converts and releases a ref obtained from a TISCopy* call.
func convertCopied(ref C.TISInputSourceRef, what string) (*model.InputSource, error) {
	if ref == 0 {
		return nil, fmt.Errorf("%w: no %s", platform.ErrNotFound, what)
	}
	defer C.CFRelease(C.CFTypeRef(ref))

	src, ok := model.NewInputSource(tisProps{ref: ref})
	if !ok {
		return nil, fmt.Errorf("%w: %s is unreadable", platform.ErrNotFound, what)
	}
	return &src, nil
}

func (m *InputSourceManager) InputSource(id string) (*model.InputSource, error) {
	var found *model.InputSource
	err := withSourcesByIDOnMain(id, func(ref C.TISInputSourceRef) bool {
		src, ok := model.NewInputSource(tisProps{ref: ref})
		if !ok || src.ID != id {
			return false
		}
		found = &src
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrNotFound, id)
	}
	return found, nil
}

func (m *InputSourceManager) SelectInputSource(id string) error {
	var status C.OSStatus
	selected := false
	err := withSourcesByIDOnMain(id, func(ref C.TISInputSourceRef) bool {
		got, ok := tisProps{ref: ref}.String(model.PropInputSourceID)
		if !ok || got != id {
			return false
		}
		status = C.TISSelectInputSource(ref)
		selected = true
		return true
	})
	if err != nil {
		return err
	}
	if !selected {
		return fmt.Errorf("%w: %s", platform.ErrNotFound, id)
	}
	if status != 0 {
		return &platform.OSStatusError{Op: "TISSelectInputSource", Status: int(status)}
	}
	return nil
}

// withSourcesByIDOnMain runs withSourcesByID on the main thread.
func withSourcesByIDOnMain(id string, fn func(C.TISInputSourceRef) bool) (err error) {
	onMain(func() { err = withSourcesByID(id, fn) })
	return err
}

// withSourcesByID calls fn for each registry entry returned for id until fn
// returns true.
func withSourcesByID(id string, fn func(C.TISInputSourceRef) bool) error {
	cID := C.CString(id)
	defer C.free(unsafe.Pointer(cID))

	list := C.tis_list_by_id(cID)
	if list == 0 {
		return fmt.Errorf("%w: %s", platform.ErrNotFound, id)
	}
	defer C.CFRelease(C.CFTypeRef(list))

	n := int(C.cf_array_count(C.CFTypeRef(list)))
	for i := 0; i < n; i++ {
		ref := C.TISInputSourceRef(C.cf_array_at(C.CFTypeRef(list), C.CFIndex(i)))
		if fn(ref) {
			return nil
		}
	}
	return nil
}

func (m *InputSourceManager) AllInputSources() (sources []model.InputSource, err error) {
	onMain(func() { sources, err = listSources(true) })
	return sources, err
}

func (m *InputSourceManager) InstalledInputSources() (sources []model.InputSource, err error) {
	onMain(func() { sources, err = listSources(false) })
	return sources, err
}

func listSources(all bool) ([]model.InputSource, error) {
	var flag C.int
	if all {
		flag = 1
	}
	list := C.tis_list(flag)
	if list == 0 {
		return []model.InputSource{}, nil
	}
	defer C.CFRelease(C.CFTypeRef(list))

	n := int(C.cf_array_count(C.CFTypeRef(list)))
	sources := make([]model.InputSource, 0, n)
	for i := 0; i < n; i++ {
		ref := C.TISInputSourceRef(C.cf_array_at(C.CFTypeRef(list), C.CFIndex(i)))
		src, ok := model.NewInputSource(tisProps{ref: ref})
		if !ok {
			continue
		}
		sources = append(sources, src)
	}
	return sources, nil
}
