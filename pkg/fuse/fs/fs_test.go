package fs

import (
	"context"
	"testing"

	"github.com/kawafs/kawa/pkg/fuse"
)

func TestHandleRead(t *testing.T) {
	data := []byte("the quick brown fox")
	for _, tt := range []struct {
		offset int64
		size   int
		want   string
	}{
		{0, 100, "the quick brown fox"},
		{0, 3, "the"},
		{4, 5, "quick"},
		{16, 100, "fox"},
		{int64(len(data)), 10, ""},
		{100, 10, ""},
		{0, 0, ""},
	} {
		req := &fuse.ReadRequest{Offset: tt.offset, Size: tt.size}
		resp := &fuse.ReadResponse{}
		HandleRead(req, resp, data)
		if got := string(resp.Data); got != tt.want {
			t.Errorf("HandleRead(off=%d, size=%d) = %q, want %q", tt.offset, tt.size, got, tt.want)
		}
	}
}

func TestDefaultFS(t *testing.T) {
	ctx := context.Background()
	filesys := DefaultFS{}
	if err := filesys.Lookup(ctx, &fuse.LookupRequest{}, &fuse.LookupResponse{}); err != fuse.ENOSYS {
		t.Errorf("Lookup = %v, want %v", err, fuse.ENOSYS)
	}
	if err := filesys.Statfs(ctx, &fuse.StatfsRequest{}, &fuse.StatfsResponse{}); err != fuse.ENOSYS {
		t.Errorf("Statfs = %v, want %v", err, fuse.ENOSYS)
	}
	if _, err := filesys.Readlink(ctx, &fuse.ReadlinkRequest{}); err != fuse.ENOSYS {
		t.Errorf("Readlink = %v, want %v", err, fuse.ENOSYS)
	}
	if err := filesys.Write(ctx, &fuse.WriteRequest{}, &fuse.WriteResponse{}); err != fuse.ENOSYS {
		t.Errorf("Write = %v, want %v", err, fuse.ENOSYS)
	}
	// Forget and Destroy are notifications, not operations; they have
	// no way to fail.
	filesys.Forget(&fuse.ForgetRequest{})
	filesys.Destroy()
}
