// See the file LICENSE for copyright and licensing information.

package fuse

import (
	"testing"
	"unsafe"
)

// The kernel dictates these sizes; the overlay structs must reproduce
// them byte for byte.
func TestWireStructSizes(t *testing.T) {
	for _, tt := range []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"inHeader", unsafe.Sizeof(inHeader{}), 40},
		{"outHeader", unsafe.Sizeof(outHeader{}), 16},
		{"initIn", unsafe.Sizeof(initIn{}), 16},
		{"initOut", unsafe.Sizeof(initOut{}), 64},
		{"dirent", unsafe.Sizeof(dirent{}), 24},
		{"kstatfs", unsafe.Sizeof(kstatfs{}), 80},
		{"forgetOne", unsafe.Sizeof(forgetOne{}), 16},
		{"batchForgetIn", unsafe.Sizeof(batchForgetIn{}), 8},
		{"interruptIn", unsafe.Sizeof(interruptIn{}), 8},
		{"writeOut", unsafe.Sizeof(writeOut{}), 8},
		{"notifyInvalInodeOut", unsafe.Sizeof(notifyInvalInodeOut{}), 24},
		{"notifyInvalEntryOut", unsafe.Sizeof(notifyInvalEntryOut{}), 16},
	} {
		if tt.got != tt.want {
			t.Errorf("sizeof %s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

// Several request and reply bodies grew over the life of the
// protocol. What goes on the wire follows the negotiated version, not
// the Go struct.
func TestVersionedWireSizes(t *testing.T) {
	for _, tt := range []struct {
		name string
		fn   func(Protocol) uintptr
		p    Protocol
		want uintptr
	}{
		{"initOut", initOutSize, Protocol{7, 22}, 24},
		{"initOut", initOutSize, Protocol{7, 23}, 64},
		{"readIn", readInSize, Protocol{7, 8}, 24},
		{"readIn", readInSize, Protocol{7, 9}, 40},
		{"writeIn", writeInSize, Protocol{7, 8}, 24},
		{"writeIn", writeInSize, Protocol{7, 9}, 40},
		{"mknodIn", mknodInSize, Protocol{7, 11}, 8},
		{"mknodIn", mknodInSize, Protocol{7, 12}, 16},
		{"createIn", createInSize, Protocol{7, 11}, 8},
		{"createIn", createInSize, Protocol{7, 12}, 16},
		// mkdirIn kept its size across 7.12; the umask moved into
		// what used to be padding.
		{"mkdirIn", mkdirInSize, Protocol{7, 11}, 8},
		{"mkdirIn", mkdirInSize, Protocol{7, 12}, 8},
	} {
		if got := tt.fn(tt.p); got != tt.want {
			t.Errorf("%s size at %v = %d, want %d", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestOpenFlagsString(t *testing.T) {
	for _, tt := range []struct {
		flags OpenFlags
		want  string
	}{
		{OpenReadOnly, "OpenReadOnly"},
		{OpenWriteOnly, "OpenWriteOnly"},
		{OpenReadWrite, "OpenReadWrite"},
		{OpenReadOnly | OpenAppend, "OpenReadOnly+OpenAppend"},
		{OpenReadWrite | OpenCreate | OpenTruncate, "OpenReadWrite+OpenCreate+OpenTruncate"},
	} {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("OpenFlags(%#x).String() = %q, want %q", uint32(tt.flags), got, tt.want)
		}
	}
}

func TestInitFlagsString(t *testing.T) {
	for _, tt := range []struct {
		flags InitFlags
		want  string
	}{
		{0, "0"},
		{InitAsyncRead, "InitAsyncRead"},
		{InitAsyncRead | InitBigWrites, "InitAsyncRead+InitBigWrites"},
		// Bits without a name still show up, as hex.
		{InitBigWrites | 1<<26, "InitBigWrites+0x4000000"},
	} {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("InitFlags(%#x).String() = %q, want %q", uint32(tt.flags), got, tt.want)
		}
	}
}
