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
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/fuse/fs"
	"github.com/kawafs/kawa/pkg/log"
	spb "github.com/kawafs/kawa/pkg/pb/store"
	"github.com/kawafs/kawa/pkg/streaming"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// bridgeFS mounts a remote block store as a flat directory: every key in
// the store is a file under the root, and file contents are the blocks
// themselves. The store holds no file metadata, so attributes are
// synthesized; sizes are remembered from the last transfer and timestamps
// are pinned to the mount.
//
// Kernel node IDs are handed out as keys are first seen and stay stable
// for the life of the mount. Payloads past streaming.Threshold move over
// the chunked stream RPCs instead of the unary ones.
type bridgeFS struct {
	fs.DefaultFS

	logger *log.Logger
	client spb.StoreServiceClient

	mu      sync.RWMutex
	nodes   map[fuse.NodeID]string
	ids     map[string]fuse.NodeID
	sizes   map[string]uint64
	next    fuse.NodeID
	mounted time.Time
}

var _ fs.FS = (*bridgeFS)(nil)

// NewBridgeFS returns a file system serving the given store client. The
// caller owns the underlying connection.
func NewBridgeFS(logger *log.Logger, client spb.StoreServiceClient) fs.FS {
	return &bridgeFS{
		logger:  logger,
		client:  client,
		nodes:   make(map[fuse.NodeID]string),
		ids:     make(map[string]fuse.NodeID),
		sizes:   make(map[string]uint64),
		next:    fuse.RootID + 1,
		mounted: time.Now(),
	}
}

// nodeFor returns the stable node ID for a key, allocating one on first
// sight.
func (b *bridgeFS) nodeFor(key string) fuse.NodeID {
	b.mu.Lock()
	defer b.mu.Unlock()

	if node, ok := b.ids[key]; ok {
		return node
	}
	node := b.next
	b.next++
	b.ids[key] = node
	b.nodes[node] = key
	return node
}

func (b *bridgeFS) keyFor(node fuse.NodeID) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	key, ok := b.nodes[node]
	return key, ok
}

func (b *bridgeFS) noteSize(key string, size uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sizes[key] = size
}

// rpcErrno turns a missing-block error into the right errno; anything
// else passes through for the serve loop's default handling.
func rpcErrno(err error, missing error) error {
	if status.Code(err) == codes.NotFound {
		return missing
	}
	return err
}

func (b *bridgeFS) rootAttr(a *fuse.Attr) {
	a.Inode = uint64(fuse.RootID)
	a.Mode = os.ModeDir | 0755
	a.Nlink = 2
	a.Atime = b.mounted
	a.Mtime = b.mounted
	a.Ctime = b.mounted
}

func (b *bridgeFS) blockAttr(a *fuse.Attr, node fuse.NodeID, size uint64) {
	a.Inode = uint64(node)
	a.Mode = 0644
	a.Nlink = 1
	a.Size = size
	a.Blocks = (size + 511) / 512
	a.BlockSize = 4096
	a.Atime = b.mounted
	a.Mtime = b.mounted
	a.Ctime = b.mounted
}

// fetchBlock reads a block, over the chunked stream when the last known
// size warrants it.
func (b *bridgeFS) fetchBlock(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	size, sized := b.sizes[key]
	b.mu.RUnlock()

	if sized && size > streaming.Threshold {
		stream, err := b.client.GetBlockStream(ctx, &spb.GetBlockStreamRequest{Key: key})
		if err != nil {
			return nil, err
		}
		var data []byte
		for {
			res, err := stream.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			data = append(data, res.Chunk...)
		}
		b.noteSize(key, uint64(len(data)))
		return data, nil
	}

	res, err := b.client.GetBlock(ctx, &spb.GetBlockRequest{Key: key})
	if err != nil {
		return nil, err
	}
	b.noteSize(key, uint64(len(res.Data)))
	return res.Data, nil
}

// storeBlock writes a block, over the chunked stream when it is large
// enough to warrant it.
func (b *bridgeFS) storeBlock(ctx context.Context, key string, data []byte) error {
	if len(data) > streaming.Threshold {
		stream, err := b.client.PutBlockStream(ctx)
		if err != nil {
			return err
		}
		chunker := streaming.NewChunker(data)
		for chunker.Next() {
			if err := stream.Send(&spb.PutBlockStreamRequest{Key: key, Chunk: chunker.Value()}); err != nil {
				return err
			}
		}
		if _, err := stream.CloseAndRecv(); err != nil {
			return err
		}
	} else {
		if _, err := b.client.PutBlock(ctx, &spb.PutBlockRequest{Key: key, Data: data}); err != nil {
			return err
		}
	}

	b.noteSize(key, uint64(len(data)))
	return nil
}

func (b *bridgeFS) Getattr(ctx context.Context, req *fuse.GetattrRequest, resp *fuse.GetattrResponse) error {
	if req.Node == fuse.RootID {
		b.rootAttr(&resp.Attr)
		return nil
	}

	key, ok := b.keyFor(req.Node)
	if !ok {
		return fuse.ESTALE
	}

	b.mu.RLock()
	size, sized := b.sizes[key]
	b.mu.RUnlock()
	if !sized {
		data, err := b.fetchBlock(ctx, key)
		if err != nil {
			return rpcErrno(err, fuse.ESTALE)
		}
		size = uint64(len(data))
	}

	b.blockAttr(&resp.Attr, req.Node, size)
	return nil
}

func (b *bridgeFS) Lookup(ctx context.Context, req *fuse.LookupRequest, resp *fuse.LookupResponse) error {
	if req.Node != fuse.RootID {
		return fuse.ENOTDIR
	}

	data, err := b.fetchBlock(ctx, req.Name)
	if err != nil {
		return rpcErrno(err, fuse.ENOENT)
	}

	resp.Node = b.nodeFor(req.Name)
	b.blockAttr(&resp.Attr, resp.Node, uint64(len(data)))
	return nil
}

func (b *bridgeFS) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) error {
	if req.Node == fuse.RootID {
		if !req.Dir {
			return fuse.EISDIR
		}
	} else if _, ok := b.keyFor(req.Node); !ok {
		return fuse.ESTALE
	}

	// Handles carry no state; the node ID stands in.
	resp.Handle = fuse.HandleID(req.Node)
	return nil
}

func (b *bridgeFS) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) error {
	if req.Node != fuse.RootID {
		return fuse.ENOTDIR
	}

	if err := b.storeBlock(ctx, req.Name, nil); err != nil {
		return err
	}

	resp.Node = b.nodeFor(req.Name)
	resp.Handle = fuse.HandleID(resp.Node)
	b.blockAttr(&resp.Attr, resp.Node, 0)
	return nil
}

func (b *bridgeFS) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	if req.Dir {
		if req.Node != fuse.RootID {
			return fuse.ENOTDIR
		}

		res, err := b.client.GetKeys(ctx, &spb.GetKeysRequest{})
		if err != nil {
			return err
		}

		var data []byte
		data = fuse.AppendDirent(data, fuse.Dirent{
			Inode: uint64(fuse.RootID), Type: fuse.DT_Dir, Name: ".",
		})
		data = fuse.AppendDirent(data, fuse.Dirent{
			Inode: uint64(fuse.RootID), Type: fuse.DT_Dir, Name: "..",
		})
		for _, key := range res.Keys {
			data = fuse.AppendDirent(data, fuse.Dirent{
				Inode: uint64(b.nodeFor(key)), Type: fuse.DT_File, Name: key,
			})
		}
		fs.HandleRead(req, resp, data)
		return nil
	}

	key, ok := b.keyFor(req.Node)
	if !ok {
		return fuse.ESTALE
	}

	data, err := b.fetchBlock(ctx, key)
	if err != nil {
		return rpcErrno(err, fuse.ESTALE)
	}

	fs.HandleRead(req, resp, data)
	return nil
}

func (b *bridgeFS) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	key, ok := b.keyFor(req.Node)
	if !ok {
		return fuse.ESTALE
	}

	// A write to a block deleted behind our back starts from scratch.
	data, err := b.fetchBlock(ctx, key)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return err
		}
		data = nil
	}

	if end := req.Offset + int64(len(req.Data)); end > int64(len(data)) {
		grown := make([]byte, end)
		copy(grown, data)
		data = grown
	}
	copy(data[req.Offset:], req.Data)

	if err := b.storeBlock(ctx, key, data); err != nil {
		return err
	}

	resp.Size = len(req.Data)
	return nil
}

func (b *bridgeFS) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	key, ok := b.keyFor(req.Node)
	if !ok {
		return fuse.ESTALE
	}

	if req.Valid.Size() {
		data, err := b.fetchBlock(ctx, key)
		if err != nil {
			return rpcErrno(err, fuse.ESTALE)
		}
		if req.Size != uint64(len(data)) {
			resized := make([]byte, req.Size)
			copy(resized, data)
			if err := b.storeBlock(ctx, key, resized); err != nil {
				return err
			}
		}
	}

	// The store keeps no modes, owners or times; those changes vanish.
	b.mu.RLock()
	size := b.sizes[key]
	b.mu.RUnlock()
	b.blockAttr(&resp.Attr, req.Node, size)
	return nil
}

func (b *bridgeFS) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	if req.Node != fuse.RootID {
		return fuse.ENOTDIR
	}
	if req.Dir {
		return fuse.ENOTDIR
	}

	if _, err := b.client.DeleteBlock(ctx, &spb.DeleteBlockRequest{Key: req.Name}); err != nil {
		return rpcErrno(err, fuse.ENOENT)
	}

	b.mu.Lock()
	delete(b.sizes, req.Name)
	b.mu.Unlock()
	return nil
}

// Rename copies and deletes; the store service has no rename of its own.
func (b *bridgeFS) Rename(ctx context.Context, req *fuse.RenameRequest) error {
	if req.Node != fuse.RootID || req.NewDir != fuse.RootID {
		return fuse.ENOTDIR
	}

	data, err := b.fetchBlock(ctx, req.OldName)
	if err != nil {
		return rpcErrno(err, fuse.ENOENT)
	}
	if err := b.storeBlock(ctx, req.NewName, data); err != nil {
		return err
	}
	if _, err := b.client.DeleteBlock(ctx, &spb.DeleteBlockRequest{Key: req.OldName}); err != nil {
		return rpcErrno(err, fuse.ENOENT)
	}

	b.mu.Lock()
	delete(b.sizes, req.OldName)
	b.mu.Unlock()
	return nil
}

func (b *bridgeFS) Mkdir(ctx context.Context, req *fuse.MkdirRequest, resp *fuse.MkdirResponse) error {
	// The namespace is flat; there is nowhere to put a directory.
	return fuse.EPERM
}

func (b *bridgeFS) Flush(ctx context.Context, req *fuse.FlushRequest) error {
	return nil
}

func (b *bridgeFS) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return nil
}

func (b *bridgeFS) Fsync(ctx context.Context, req *fuse.FsyncRequest) error {
	return nil
}

func (b *bridgeFS) Statfs(ctx context.Context, req *fuse.StatfsRequest, resp *fuse.StatfsResponse) error {
	res, err := b.client.GetKeys(ctx, &spb.GetKeysRequest{})
	if err != nil {
		return err
	}

	resp.Files = uint64(len(res.Keys))
	resp.Bsize = 4096
	resp.Frsize = 4096
	resp.Namelen = 255
	return nil
}
