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
	"io"
	"sync"

	"github.com/kawafs/kawa/pkg/log"
	spb "github.com/kawafs/kawa/pkg/pb/store"
	"github.com/kawafs/kawa/pkg/streaming"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store is the backend a store server persists blocks in. Implementations
// need not be safe for concurrent use; the server serializes access.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Has(key string) bool
	Erase(key string) error
	Keys() ([]string, error)
}

type storeServer struct {
	mu     sync.RWMutex
	store  Store
	logger *log.Logger
}

var _ spb.StoreServiceServer = &storeServer{}

func newStoreServer(logger *log.Logger, store Store) *storeServer {
	return &storeServer{
		store:  store,
		logger: logger,
	}
}

func (s *storeServer) GetBlock(ctx context.Context, req *spb.GetBlockRequest) (*spb.GetBlockResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.store.Has(req.Key) {
		return nil, status.New(codes.NotFound, "no such block").Err()
	}

	data, err := s.store.Read(req.Key)
	if err != nil {
		return nil, err
	}

	return &spb.GetBlockResponse{Data: data}, nil
}

func (s *storeServer) PutBlock(ctx context.Context, req *spb.PutBlockRequest) (*spb.PutBlockResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Key == "" {
		return nil, status.New(codes.InvalidArgument, "empty block key").Err()
	}
	if err := s.store.Write(req.Key, req.Data); err != nil {
		return nil, err
	}

	return &spb.PutBlockResponse{}, nil
}

func (s *storeServer) DeleteBlock(ctx context.Context, req *spb.DeleteBlockRequest) (*spb.DeleteBlockResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Has(req.Key) {
		return nil, status.New(codes.NotFound, "no such block").Err()
	}
	if err := s.store.Erase(req.Key); err != nil {
		return nil, err
	}

	return &spb.DeleteBlockResponse{}, nil
}

func (s *storeServer) GetKeys(ctx context.Context, req *spb.GetKeysRequest) (*spb.GetKeysResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.store.Keys()
	if err != nil {
		return nil, err
	}

	return &spb.GetKeysResponse{Keys: keys}, nil
}

func (s *storeServer) GetBlockStream(req *spb.GetBlockStreamRequest, stream spb.StoreService_GetBlockStreamServer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.store.Has(req.Key) {
		return status.New(codes.NotFound, "no such block").Err()
	}

	data, err := s.store.Read(req.Key)
	if err != nil {
		return err
	}

	chunker := streaming.NewChunker(data)
	for chunker.Next() {
		if err := stream.Send(&spb.GetBlockStreamResponse{Chunk: chunker.Value()}); err != nil {
			return err
		}
	}

	s.logger.Debugf("streamed %d bytes of block %s", len(data), req.Key)
	return nil
}

func (s *storeServer) PutBlockStream(stream spb.StoreService_PutBlockStreamServer) error {
	in, err := stream.Recv()
	if err == io.EOF {
		return status.New(codes.InvalidArgument, "empty put stream").Err()
	}
	if err != nil {
		return err
	}

	key := in.Key
	if key == "" {
		return status.New(codes.InvalidArgument, "empty block key").Err()
	}
	data := in.Chunk

	for {
		in, err := stream.Recv()
		if err == io.EOF {
			s.mu.Lock()
			defer s.mu.Unlock()

			if err := s.store.Write(key, data); err != nil {
				s.logger.Error(err.Error())
				return status.New(codes.Internal, "could not write block").Err()
			}

			s.logger.Debugf("wrote %d streamed bytes to block %s", len(data), key)
			return stream.SendAndClose(&spb.PutBlockStreamResponse{})
		}
		if err != nil {
			return err
		}
		if in.Key != key {
			return status.New(codes.InvalidArgument, "block key changed mid-stream").Err()
		}
		data = append(data, in.Chunk...)
	}
}
