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

package storeserver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"testing"

	"github.com/kawafs/kawa/pkg/log"
	spb "github.com/kawafs/kawa/pkg/pb/store"
	"github.com/kawafs/kawa/pkg/streaming"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type testStore struct {
	blocks map[string][]byte
}

func newTestStore() *testStore {
	return &testStore{blocks: map[string][]byte{}}
}

func (t *testStore) Read(key string) ([]byte, error) {
	block, ok := t.blocks[key]
	if !ok {
		return nil, errors.New("no such block")
	}
	return block, nil
}

func (t *testStore) Write(key string, val []byte) error {
	t.blocks[key] = val
	return nil
}

func (t *testStore) Has(key string) bool {
	_, ok := t.blocks[key]
	return ok
}

func (t *testStore) Erase(key string) error {
	delete(t.blocks, key)
	return nil
}

func (t *testStore) Keys() ([]string, error) {
	keys := make([]string, 0, len(t.blocks))
	for key := range t.blocks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

type testGetBlockStream struct {
	grpc.ServerStream
	chunks [][]byte
}

func (s *testGetBlockStream) Send(resp *spb.GetBlockStreamResponse) error {
	s.chunks = append(s.chunks, resp.Chunk)
	return nil
}

type testPutBlockStream struct {
	grpc.ServerStream
	reqs   []*spb.PutBlockStreamRequest
	closed bool
}

func (s *testPutBlockStream) Recv() (*spb.PutBlockStreamRequest, error) {
	if len(s.reqs) == 0 {
		return nil, io.EOF
	}
	req := s.reqs[0]
	s.reqs = s.reqs[1:]
	return req, nil
}

func (s *testPutBlockStream) SendAndClose(*spb.PutBlockStreamResponse) error {
	s.closed = true
	return nil
}

func TestGetBlock(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	store := newTestStore()
	store.Write("present", []byte("block contents"))
	server := newStoreServer(logger, store)

	{
		res, err := server.GetBlock(ctx, &spb.GetBlockRequest{Key: "present"})
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !bytes.Equal(res.Data, []byte("block contents")) {
			t.Errorf("expected block contents, got: %q", res.Data)
		}
	}
	{
		_, err := server.GetBlock(ctx, &spb.GetBlockRequest{Key: "absent"})
		if status.Code(err) != codes.NotFound {
			t.Errorf("expected NotFound, got: %v", err)
		}
	}
}

func TestPutBlock(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	store := newTestStore()
	server := newStoreServer(logger, store)

	{
		if _, err := server.PutBlock(ctx, &spb.PutBlockRequest{Key: "block", Data: []byte("payload")}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if !bytes.Equal(store.blocks["block"], []byte("payload")) {
			t.Errorf("expected the block in the store, got: %q", store.blocks["block"])
		}
	}
	{
		_, err := server.PutBlock(ctx, &spb.PutBlockRequest{Data: []byte("payload")})
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("expected InvalidArgument for an empty key, got: %v", err)
		}
	}
}

func TestDeleteBlock(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	store := newTestStore()
	store.Write("doomed", []byte("payload"))
	server := newStoreServer(logger, store)

	{
		if _, err := server.DeleteBlock(ctx, &spb.DeleteBlockRequest{Key: "doomed"}); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if store.Has("doomed") {
			t.Errorf("expected the block to be gone")
		}
	}
	{
		_, err := server.DeleteBlock(ctx, &spb.DeleteBlockRequest{Key: "doomed"})
		if status.Code(err) != codes.NotFound {
			t.Errorf("expected NotFound, got: %v", err)
		}
	}
}

func TestGetKeys(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()

	store := newTestStore()
	store.Write("alpha", nil)
	store.Write("beta", nil)
	server := newStoreServer(logger, store)

	res, err := server.GetKeys(ctx, &spb.GetKeysRequest{})
	if err != nil {
		t.Fatalf("get keys failed: %v", err)
	}
	if len(res.Keys) != 2 || res.Keys[0] != "alpha" || res.Keys[1] != "beta" {
		t.Errorf("expected [alpha beta], got: %v", res.Keys)
	}
}

func TestGetBlockStream(t *testing.T) {
	logger := log.Discarder()

	block := bytes.Repeat([]byte("abcdefgh"), 20000) // past two full chunks
	store := newTestStore()
	store.Write("large", block)
	server := newStoreServer(logger, store)

	{
		stream := &testGetBlockStream{}
		if err := server.GetBlockStream(&spb.GetBlockStreamRequest{Key: "large"}, stream); err != nil {
			t.Fatalf("get stream failed: %v", err)
		}
		for i, chunk := range stream.chunks {
			if len(chunk) > streaming.ChunkSize {
				t.Errorf("chunk %d exceeds the chunk size: %d", i, len(chunk))
			}
		}
		if got := bytes.Join(stream.chunks, nil); !bytes.Equal(got, block) {
			t.Errorf("expected %d reassembled bytes, got: %d", len(block), len(got))
		}
	}
	{
		stream := &testGetBlockStream{}
		err := server.GetBlockStream(&spb.GetBlockStreamRequest{Key: "absent"}, stream)
		if status.Code(err) != codes.NotFound {
			t.Errorf("expected NotFound, got: %v", err)
		}
	}
}

func TestPutBlockStream(t *testing.T) {
	logger := log.Discarder()

	{
		store := newTestStore()
		server := newStoreServer(logger, store)
		stream := &testPutBlockStream{
			reqs: []*spb.PutBlockStreamRequest{
				{Key: "streamed", Chunk: []byte("first ")},
				{Key: "streamed", Chunk: []byte("second")},
			},
		}
		if err := server.PutBlockStream(stream); err != nil {
			t.Fatalf("put stream failed: %v", err)
		}
		if !stream.closed {
			t.Errorf("expected the stream to be closed")
		}
		if !bytes.Equal(store.blocks["streamed"], []byte("first second")) {
			t.Errorf("expected reassembled block, got: %q", store.blocks["streamed"])
		}
	}
	{
		server := newStoreServer(logger, newTestStore())
		err := server.PutBlockStream(&testPutBlockStream{})
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("expected InvalidArgument for an empty stream, got: %v", err)
		}
	}
	{
		server := newStoreServer(logger, newTestStore())
		stream := &testPutBlockStream{
			reqs: []*spb.PutBlockStreamRequest{
				{Chunk: []byte("first ")},
			},
		}
		err := server.PutBlockStream(stream)
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("expected InvalidArgument for an empty key, got: %v", err)
		}
	}
	{
		server := newStoreServer(logger, newTestStore())
		stream := &testPutBlockStream{
			reqs: []*spb.PutBlockStreamRequest{
				{Key: "one", Chunk: []byte("first ")},
				{Key: "two", Chunk: []byte("second")},
			},
		}
		err := server.PutBlockStream(stream)
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("expected InvalidArgument for a changed key, got: %v", err)
		}
	}
}

func TestDiskStore(t *testing.T) {
	dir, err := ioutil.TempDir("/tmp", "kawa-store-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store, err := newDiskStore(log.Discarder(), dir)
	if err != nil {
		t.Fatal(err)
	}

	{
		if err := store.Write("block", []byte("payload")); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := store.Read("block")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !bytes.Equal(got, []byte("payload")) {
			t.Errorf("expected payload, got: %q", got)
		}
		if !store.Has("block") {
			t.Errorf("expected the store to have the block")
		}
	}
	{
		keys, err := store.Keys()
		if err != nil {
			t.Fatalf("keys failed: %v", err)
		}
		if len(keys) != 1 || keys[0] != "block" {
			t.Errorf("expected [block], got: %v", keys)
		}
	}
	{
		if err := store.Erase("block"); err != nil {
			t.Fatalf("erase failed: %v", err)
		}
		if store.Has("block") {
			t.Errorf("expected the block to be gone")
		}
	}
	{
		for _, key := range []string{"", "a/b", "..", ".hidden"} {
			if err := store.Write(key, nil); err == nil {
				t.Errorf("expected a write with key %q to be rejected", key)
			}
		}
	}
}
