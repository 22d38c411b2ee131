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

package bridgeserver

import (
	"bytes"
	"context"
	"io"
	"sort"
	"testing"

	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/log"
	spb "github.com/kawafs/kawa/pkg/pb/store"
	"github.com/kawafs/kawa/pkg/streaming"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type testStoreClient struct {
	blocks       map[string][]byte
	streamedGets int
	streamedPuts int
}

func newTestStoreClient() *testStoreClient {
	return &testStoreClient{blocks: map[string][]byte{}}
}

func (t *testStoreClient) GetBlock(
	ctx context.Context, in *spb.GetBlockRequest, opts ...grpc.CallOption,
) (*spb.GetBlockResponse, error) {
	block, ok := t.blocks[in.Key]
	if !ok {
		return nil, status.New(codes.NotFound, "no such block").Err()
	}
	return &spb.GetBlockResponse{Data: block}, nil
}

func (t *testStoreClient) PutBlock(
	ctx context.Context, in *spb.PutBlockRequest, opts ...grpc.CallOption,
) (*spb.PutBlockResponse, error) {
	t.blocks[in.Key] = in.Data
	return &spb.PutBlockResponse{}, nil
}

func (t *testStoreClient) DeleteBlock(
	ctx context.Context, in *spb.DeleteBlockRequest, opts ...grpc.CallOption,
) (*spb.DeleteBlockResponse, error) {
	if _, ok := t.blocks[in.Key]; !ok {
		return nil, status.New(codes.NotFound, "no such block").Err()
	}
	delete(t.blocks, in.Key)
	return &spb.DeleteBlockResponse{}, nil
}

func (t *testStoreClient) GetKeys(
	ctx context.Context, in *spb.GetKeysRequest, opts ...grpc.CallOption,
) (*spb.GetKeysResponse, error) {
	keys := make([]string, 0, len(t.blocks))
	for key := range t.blocks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &spb.GetKeysResponse{Keys: keys}, nil
}

type testGetBlockStreamClient struct {
	grpc.ClientStream
	chunks [][]byte
}

func (s *testGetBlockStreamClient) Recv() (*spb.GetBlockStreamResponse, error) {
	if len(s.chunks) == 0 {
		return nil, io.EOF
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return &spb.GetBlockStreamResponse{Chunk: chunk}, nil
}

func (t *testStoreClient) GetBlockStream(
	ctx context.Context, in *spb.GetBlockStreamRequest, opts ...grpc.CallOption,
) (spb.StoreService_GetBlockStreamClient, error) {
	block, ok := t.blocks[in.Key]
	if !ok {
		return nil, status.New(codes.NotFound, "no such block").Err()
	}

	t.streamedGets++
	stream := &testGetBlockStreamClient{}
	chunker := streaming.NewChunker(block)
	for chunker.Next() {
		stream.chunks = append(stream.chunks, chunker.Value())
	}
	return stream, nil
}

type testPutBlockStreamClient struct {
	grpc.ClientStream
	client *testStoreClient
	key    string
	data   []byte
}

func (s *testPutBlockStreamClient) Send(req *spb.PutBlockStreamRequest) error {
	s.key = req.Key
	s.data = append(s.data, req.Chunk...)
	return nil
}

func (s *testPutBlockStreamClient) CloseAndRecv() (*spb.PutBlockStreamResponse, error) {
	s.client.blocks[s.key] = s.data
	s.client.streamedPuts++
	return &spb.PutBlockStreamResponse{}, nil
}

func (t *testStoreClient) PutBlockStream(
	ctx context.Context, opts ...grpc.CallOption,
) (spb.StoreService_PutBlockStreamClient, error) {
	return &testPutBlockStreamClient{client: t}, nil
}

func TestBridgeReaddir(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	client := newTestStoreClient()
	client.blocks["alpha"] = []byte("a")
	client.blocks["beta"] = []byte("b")
	filesys := NewBridgeFS(logger, client)

	req := &fuse.ReadRequest{Dir: true, Size: 4096}
	req.Node = fuse.RootID
	var resp fuse.ReadResponse
	if err := filesys.Read(ctx, req, &resp); err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	for _, name := range []string{".", "..", "alpha", "beta"} {
		if !bytes.Contains(resp.Data, []byte(name)) {
			t.Errorf("expected listing to contain %q", name)
		}
	}
}

func TestBridgeLookupRead(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	content := []byte("block contents")
	client := newTestStoreClient()
	client.blocks["alpha"] = content
	filesys := NewBridgeFS(logger, client)

	var node fuse.NodeID
	{
		req := &fuse.LookupRequest{Name: "alpha"}
		req.Node = fuse.RootID
		var resp fuse.LookupResponse
		if err := filesys.Lookup(ctx, req, &resp); err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if resp.Attr.Size != uint64(len(content)) {
			t.Errorf("expected size %d, got: %d", len(content), resp.Attr.Size)
		}
		node = resp.Node
	}
	{
		req := &fuse.ReadRequest{Size: 4096}
		req.Node = node
		var resp fuse.ReadResponse
		if err := filesys.Read(ctx, req, &resp); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !bytes.Equal(resp.Data, content) {
			t.Errorf("expected %q, got: %q", content, resp.Data)
		}
	}
	{
		req := &fuse.LookupRequest{Name: "missing"}
		req.Node = fuse.RootID
		var resp fuse.LookupResponse
		if err := filesys.Lookup(ctx, req, &resp); err != fuse.ENOENT {
			t.Errorf("expected ENOENT, got: %v", err)
		}
	}
	{
		req := &fuse.LookupRequest{Name: "alpha"}
		req.Node = node
		var resp fuse.LookupResponse
		if err := filesys.Lookup(ctx, req, &resp); err != fuse.ENOTDIR {
			t.Errorf("expected ENOTDIR under a file node, got: %v", err)
		}
	}
}

func TestBridgeCreateWrite(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	client := newTestStoreClient()
	filesys := NewBridgeFS(logger, client)

	var node fuse.NodeID
	{
		req := &fuse.CreateRequest{Name: "fresh", Mode: 0644}
		req.Node = fuse.RootID
		var resp fuse.CreateResponse
		if err := filesys.Create(ctx, req, &resp); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if _, ok := client.blocks["fresh"]; !ok {
			t.Errorf("expected an empty block in the store")
		}
		node = resp.Node
	}
	{
		req := &fuse.WriteRequest{Data: []byte("hello")}
		req.Node = node
		var resp fuse.WriteResponse
		if err := filesys.Write(ctx, req, &resp); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if resp.Size != 5 {
			t.Errorf("expected 5 bytes written, got: %d", resp.Size)
		}
		if !bytes.Equal(client.blocks["fresh"], []byte("hello")) {
			t.Errorf("expected the store to hold %q, got: %q", "hello", client.blocks["fresh"])
		}
	}
	{
		// An offset write past the end zero-fills the gap.
		req := &fuse.WriteRequest{Data: []byte("!"), Offset: 6}
		req.Node = node
		var resp fuse.WriteResponse
		if err := filesys.Write(ctx, req, &resp); err != nil {
			t.Fatalf("offset write failed: %v", err)
		}
		if !bytes.Equal(client.blocks["fresh"], []byte("hello\x00!")) {
			t.Errorf("unexpected store contents: %q", client.blocks["fresh"])
		}
	}
}

func TestBridgeTruncate(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	client := newTestStoreClient()
	client.blocks["alpha"] = []byte("0123456789")
	filesys := NewBridgeFS(logger, client)

	lreq := &fuse.LookupRequest{Name: "alpha"}
	lreq.Node = fuse.RootID
	var lresp fuse.LookupResponse
	if err := filesys.Lookup(ctx, lreq, &lresp); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	req := &fuse.SetattrRequest{Valid: fuse.SetattrSize, Size: 4}
	req.Node = lresp.Node
	var resp fuse.SetattrResponse
	if err := filesys.Setattr(ctx, req, &resp); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
	if resp.Attr.Size != 4 {
		t.Errorf("expected size 4, got: %d", resp.Attr.Size)
	}
	if !bytes.Equal(client.blocks["alpha"], []byte("0123")) {
		t.Errorf("expected truncated block, got: %q", client.blocks["alpha"])
	}
}

func TestBridgeRemoveRename(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	client := newTestStoreClient()
	client.blocks["doomed"] = []byte("x")
	client.blocks["mover"] = []byte("cargo")
	filesys := NewBridgeFS(logger, client)

	{
		req := &fuse.RemoveRequest{Name: "doomed"}
		req.Node = fuse.RootID
		if err := filesys.Remove(ctx, req); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if _, ok := client.blocks["doomed"]; ok {
			t.Errorf("expected the block to be gone")
		}
		if err := filesys.Remove(ctx, req); err != fuse.ENOENT {
			t.Errorf("expected ENOENT, got: %v", err)
		}
	}
	{
		req := &fuse.RenameRequest{NewDir: fuse.RootID, OldName: "mover", NewName: "moved"}
		req.Node = fuse.RootID
		if err := filesys.Rename(ctx, req); err != nil {
			t.Fatalf("rename failed: %v", err)
		}
		if _, ok := client.blocks["mover"]; ok {
			t.Errorf("expected the old key to be gone")
		}
		if !bytes.Equal(client.blocks["moved"], []byte("cargo")) {
			t.Errorf("expected the contents under the new key, got: %q", client.blocks["moved"])
		}
	}
	{
		req := &fuse.MkdirRequest{Name: "subdir", Mode: 0755}
		req.Node = fuse.RootID
		var resp fuse.MkdirResponse
		if err := filesys.Mkdir(ctx, req, &resp); err != fuse.EPERM {
			t.Errorf("expected EPERM, got: %v", err)
		}
	}
}

func TestBridgeGetattr(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	client := newTestStoreClient()
	client.blocks["alpha"] = []byte("abc")
	filesys := NewBridgeFS(logger, client)

	{
		req := &fuse.GetattrRequest{}
		req.Node = fuse.RootID
		var resp fuse.GetattrResponse
		if err := filesys.Getattr(ctx, req, &resp); err != nil {
			t.Fatalf("getattr failed: %v", err)
		}
		if !resp.Attr.Mode.IsDir() {
			t.Errorf("expected a directory mode for the root, got: %v", resp.Attr.Mode)
		}
	}
	{
		req := &fuse.GetattrRequest{}
		req.Node = fuse.NodeID(999)
		var resp fuse.GetattrResponse
		if err := filesys.Getattr(ctx, req, &resp); err != fuse.ESTALE {
			t.Errorf("expected ESTALE for an unknown node, got: %v", err)
		}
	}
}

func TestBridgeStreaming(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	big := bytes.Repeat([]byte("abcdefgh"), (streaming.Threshold/8)+1)
	client := newTestStoreClient()
	client.blocks["big"] = big
	filesys := NewBridgeFS(logger, client)

	lreq := &fuse.LookupRequest{Name: "big"}
	lreq.Node = fuse.RootID
	var lresp fuse.LookupResponse
	if err := filesys.Lookup(ctx, lreq, &lresp); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	{
		// The size is known after the lookup, so this read rides the
		// chunked stream.
		req := &fuse.ReadRequest{Size: len(big)}
		req.Node = lresp.Node
		var resp fuse.ReadResponse
		if err := filesys.Read(ctx, req, &resp); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if client.streamedGets == 0 {
			t.Errorf("expected the read to use the stream RPC")
		}
		if !bytes.Equal(resp.Data, big) {
			t.Errorf("expected %d bytes, got: %d", len(big), len(resp.Data))
		}
	}
	{
		req := &fuse.WriteRequest{Data: append([]byte(nil), big...)}
		req.Node = lresp.Node
		var resp fuse.WriteResponse
		if err := filesys.Write(ctx, req, &resp); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if client.streamedPuts == 0 {
			t.Errorf("expected the write to use the stream RPC")
		}
	}
}

func TestBridgeStatfs(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	client := newTestStoreClient()
	client.blocks["alpha"] = nil
	client.blocks["beta"] = nil
	filesys := NewBridgeFS(logger, client)

	var resp fuse.StatfsResponse
	if err := filesys.Statfs(ctx, &fuse.StatfsRequest{}, &resp); err != nil {
		t.Fatalf("statfs failed: %v", err)
	}
	if resp.Files != 2 {
		t.Errorf("expected 2 files, got: %d", resp.Files)
	}
}
