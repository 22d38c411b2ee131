// See the file LICENSE for copyright and licensing information.

package fuse

import (
	"testing"
)

func TestProtocolOrdering(t *testing.T) {
	for _, tt := range []struct {
		a, b Protocol
		lt   bool
		ge   bool
	}{
		{Protocol{7, 8}, Protocol{7, 9}, true, false},
		{Protocol{7, 9}, Protocol{7, 9}, false, true},
		{Protocol{7, 10}, Protocol{7, 9}, false, true},
		{Protocol{6, 99}, Protocol{7, 0}, true, false},
		{Protocol{8, 0}, Protocol{7, 99}, false, true},
	} {
		if got := tt.a.LT(tt.b); got != tt.lt {
			t.Errorf("%v.LT(%v) = %v, want %v", tt.a, tt.b, got, tt.lt)
		}
		if got := tt.a.GE(tt.b); got != tt.ge {
			t.Errorf("%v.GE(%v) = %v, want %v", tt.a, tt.b, got, tt.ge)
		}
	}
}

// Each feature gate flips at the version that introduced the feature.
func TestProtocolFeatures(t *testing.T) {
	for _, tt := range []struct {
		name string
		fn   func(Protocol) bool
		p    Protocol
		want bool
	}{
		{"HasAttrBlockSize", Protocol.HasAttrBlockSize, Protocol{7, 8}, false},
		{"HasAttrBlockSize", Protocol.HasAttrBlockSize, Protocol{7, 9}, true},
		{"HasReadWriteFlags", Protocol.HasReadWriteFlags, Protocol{7, 8}, false},
		{"HasReadWriteFlags", Protocol.HasReadWriteFlags, Protocol{7, 9}, true},
		{"HasGetattrFlags", Protocol.HasGetattrFlags, Protocol{7, 8}, false},
		{"HasGetattrFlags", Protocol.HasGetattrFlags, Protocol{7, 9}, true},
		{"HasOpenNonSeekable", Protocol.HasOpenNonSeekable, Protocol{7, 9}, false},
		{"HasOpenNonSeekable", Protocol.HasOpenNonSeekable, Protocol{7, 10}, true},
		{"HasUmask", Protocol.HasUmask, Protocol{7, 11}, false},
		{"HasUmask", Protocol.HasUmask, Protocol{7, 12}, true},
		{"HasInvalidate", Protocol.HasInvalidate, Protocol{7, 11}, false},
		{"HasInvalidate", Protocol.HasInvalidate, Protocol{7, 12}, true},
		{"HasBatchForget", Protocol.HasBatchForget, Protocol{7, 15}, false},
		{"HasBatchForget", Protocol.HasBatchForget, Protocol{7, 16}, true},
	} {
		if got := tt.fn(tt.p); got != tt.want {
			t.Errorf("%s at %v = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestProtocolRange(t *testing.T) {
	if want := (Protocol{7, 8}); MinProtocol != want {
		t.Errorf("MinProtocol = %v, want %v", MinProtocol, want)
	}
	if want := (Protocol{7, 28}); MaxProtocol != want {
		t.Errorf("MaxProtocol = %v, want %v", MaxProtocol, want)
	}
	if !MinProtocol.LT(MaxProtocol) {
		t.Errorf("MinProtocol %v is not below MaxProtocol %v", MinProtocol, MaxProtocol)
	}
	if got := MaxProtocol.String(); got != "7.28" {
		t.Errorf("MaxProtocol.String() = %q, want %q", got, "7.28")
	}
}
