// See the file LICENSE for copyright and licensing information.

package fuse

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestEscapeComma(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"", ""},
		{"regular", "regular"},
		{"with,comma", `with\,comma`},
		{`with\backslash`, `with\\backslash`},
		{`mixed\,up`, `mixed\\\,up`},
	} {
		if got := escapeComma(tt.in); got != tt.want {
			t.Errorf("escapeComma(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetOptions(t *testing.T) {
	{
		conf := mountConfig{options: make(map[string]string)}
		if got := conf.getOptions(); got != "" {
			t.Errorf("getOptions() on empty config = %q, want empty", got)
		}
	}
	{
		conf := mountConfig{options: make(map[string]string)}
		if err := FSName("archive,v1")(&conf); err != nil {
			t.Fatalf("FSName: %v", err)
		}
		if got, want := conf.getOptions(), `fsname=archive\,v1`; got != want {
			t.Errorf("getOptions() = %q, want %q", got, want)
		}
	}
	{
		// Valueless options render as a bare key.
		conf := mountConfig{options: make(map[string]string)}
		if err := ReadOnly()(&conf); err != nil {
			t.Fatalf("ReadOnly: %v", err)
		}
		if got, want := conf.getOptions(), "ro"; got != want {
			t.Errorf("getOptions() = %q, want %q", got, want)
		}
	}
	{
		// Map iteration gives no fixed order; compare as a set.
		conf := mountConfig{options: make(map[string]string)}
		if err := FSName("kawa")(&conf); err != nil {
			t.Fatalf("FSName: %v", err)
		}
		if err := Subtype("kawafs")(&conf); err != nil {
			t.Fatalf("Subtype: %v", err)
		}
		got := strings.Split(conf.getOptions(), ",")
		sort.Strings(got)
		want := []string{"fsname=kawa", "subtype=kawafs"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("getOptions() contains %v, want %v", got, want)
		}
	}
}

func TestHandshakeOptions(t *testing.T) {
	conf := mountConfig{options: make(map[string]string)}
	if err := MaxReadahead(1 << 17)(&conf); err != nil {
		t.Fatalf("MaxReadahead: %v", err)
	}
	if err := AsyncRead()(&conf); err != nil {
		t.Fatalf("AsyncRead: %v", err)
	}
	if err := WritebackCache()(&conf); err != nil {
		t.Fatalf("WritebackCache: %v", err)
	}
	if got, want := conf.maxReadahead, uint32(1<<17); got != want {
		t.Errorf("maxReadahead = %d, want %d", got, want)
	}
	if got, want := conf.initFlags, InitAsyncRead|InitWritebackCache; got != want {
		t.Errorf("initFlags = %v, want %v", got, want)
	}
}

func TestAllowOtherAllowRootExclusion(t *testing.T) {
	// The options are applied before the device is touched, so a nil
	// file never gets dereferenced here.
	if _, err := NewConn(nil, AllowOther(), AllowRoot()); err != ErrCannotCombineAllowOtherAndAllowRoot {
		t.Errorf("AllowOther then AllowRoot: err = %v, want ErrCannotCombineAllowOtherAndAllowRoot", err)
	}
	if _, err := NewConn(nil, AllowRoot(), AllowOther()); err != ErrCannotCombineAllowOtherAndAllowRoot {
		t.Errorf("AllowRoot then AllowOther: err = %v, want ErrCannotCombineAllowOtherAndAllowRoot", err)
	}
}
