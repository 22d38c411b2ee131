// See the file LICENSE for copyright and licensing information.

package fuse

import (
	"testing"
	"unsafe"
)

// Attribute blocks grew a Blksize field in 7.9. These are the Linux
// kernel's numbers; OS X carries extra creation-time fields.
func TestAttrSizes(t *testing.T) {
	if got := unsafe.Sizeof(attr{}); got != 88 {
		t.Errorf("sizeof attr = %d, want 88", got)
	}
	for _, tt := range []struct {
		name string
		fn   func(Protocol) uintptr
		p    Protocol
		want uintptr
	}{
		{"attrOut", attrOutSize, Protocol{7, 8}, 96},
		{"attrOut", attrOutSize, Protocol{7, 9}, 104},
		{"entryOut", entryOutSize, Protocol{7, 8}, 120},
		{"entryOut", entryOutSize, Protocol{7, 9}, 128},
	} {
		if got := tt.fn(tt.p); got != tt.want {
			t.Errorf("%s size at %v = %d, want %d", tt.name, tt.p, got, tt.want)
		}
	}
}
