// Copyright 2026 The Kawa Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package helloserver

import (
	"bytes"
	"context"
	"os"
	"syscall"
	"testing"

	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/log"
)

func TestLookup(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	filesys := newHelloFS(logger, "hello", []byte("hello, world\n"))

	{
		req := &fuse.LookupRequest{Name: "hello"}
		req.Node = rootNode
		var resp fuse.LookupResponse
		if err := filesys.Lookup(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Node != fileNode {
			t.Fatalf("expected node %v, got %v", fileNode, resp.Node)
		}
		if resp.Attr.Mode != 0444 {
			t.Fatalf("expected mode 0444, got %v", resp.Attr.Mode)
		}
	}

	{
		req := &fuse.LookupRequest{Name: "missing"}
		req.Node = rootNode
		var resp fuse.LookupResponse
		if err := filesys.Lookup(ctx, req, &resp); err != fuse.ENOENT {
			t.Fatalf("expected ENOENT, got %v", err)
		}
	}
}

func TestGetattr(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	contents := []byte("hello, world\n")
	filesys := newHelloFS(logger, "hello", contents)

	{
		req := &fuse.GetattrRequest{}
		req.Node = rootNode
		var resp fuse.GetattrResponse
		if err := filesys.Getattr(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Attr.Mode != os.ModeDir|0755 {
			t.Fatalf("expected dir mode 0755, got %v", resp.Attr.Mode)
		}
	}

	{
		req := &fuse.GetattrRequest{}
		req.Node = fileNode
		var resp fuse.GetattrResponse
		if err := filesys.Getattr(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Attr.Size != uint64(len(contents)) {
			t.Fatalf("expected size %d, got %d", len(contents), resp.Attr.Size)
		}
	}

	{
		req := &fuse.GetattrRequest{}
		req.Node = fuse.NodeID(42)
		var resp fuse.GetattrResponse
		if err := filesys.Getattr(ctx, req, &resp); err != fuse.ENOENT {
			t.Fatalf("expected ENOENT, got %v", err)
		}
	}
}

func TestOpenReadOnly(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	filesys := newHelloFS(logger, "hello", []byte("hello, world\n"))

	{
		req := &fuse.OpenRequest{Flags: fuse.OpenFlags(syscall.O_RDONLY)}
		req.Node = fileNode
		var resp fuse.OpenResponse
		if err := filesys.Open(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
	}

	{
		req := &fuse.OpenRequest{Flags: fuse.OpenFlags(syscall.O_WRONLY)}
		req.Node = fileNode
		var resp fuse.OpenResponse
		if err := filesys.Open(ctx, req, &resp); err != fuse.EACCES {
			t.Fatalf("expected EACCES, got %v", err)
		}
	}
}

func TestRead(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	contents := []byte("hello, world\n")
	filesys := newHelloFS(logger, "hello", contents)

	{
		req := &fuse.ReadRequest{Handle: fuse.HandleID(fileNode), Size: 4096}
		req.Node = fileNode
		var resp fuse.ReadResponse
		if err := filesys.Read(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(resp.Data, contents) {
			t.Fatalf("expected %q, got %q", contents, resp.Data)
		}
	}

	// Offsets past the end read as empty, not as errors.
	{
		req := &fuse.ReadRequest{Handle: fuse.HandleID(fileNode), Offset: int64(len(contents) + 1), Size: 4096}
		req.Node = fileNode
		var resp fuse.ReadResponse
		if err := filesys.Read(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Data) != 0 {
			t.Fatalf("expected empty read, got %d bytes", len(resp.Data))
		}
	}
}

func TestReaddir(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	filesys := newHelloFS(logger, "greeting", []byte("hi\n"))

	req := &fuse.ReadRequest{Dir: true, Handle: fuse.HandleID(rootNode), Size: 4096}
	req.Node = rootNode
	var resp fuse.ReadResponse
	if err := filesys.Read(ctx, req, &resp); err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(resp.Data, []byte("greeting")) {
		t.Fatalf("directory listing %q missing entry %q", resp.Data, "greeting")
	}
}
