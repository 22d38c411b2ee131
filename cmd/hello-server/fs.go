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
	"context"
	"os"

	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/fuse/fs"
	"github.com/kawafs/kawa/pkg/log"
)

// The volume has exactly two nodes: the root directory and the hello
// file under it.
const (
	rootNode = fuse.RootID
	fileNode = fuse.NodeID(2)
)

type helloFS struct {
	fs.DefaultFS

	logger   *log.Logger
	filename string
	contents []byte
}

var _ fs.FS = (*helloFS)(nil)

func newHelloFS(logger *log.Logger, filename string, contents []byte) *helloFS {
	return &helloFS{
		logger:   logger,
		filename: filename,
		contents: contents,
	}
}

func (h *helloFS) rootAttr(a *fuse.Attr) {
	a.Inode = uint64(rootNode)
	a.Mode = os.ModeDir | 0755
	a.Nlink = 2
}

func (h *helloFS) fileAttr(a *fuse.Attr) {
	a.Inode = uint64(fileNode)
	a.Mode = 0444
	a.Nlink = 1
	a.Size = uint64(len(h.contents))
}

func (h *helloFS) Getattr(ctx context.Context, req *fuse.GetattrRequest, resp *fuse.GetattrResponse) error {
	switch req.Node {
	case rootNode:
		h.rootAttr(&resp.Attr)
		return nil
	case fileNode:
		h.fileAttr(&resp.Attr)
		return nil
	}
	return fuse.ENOENT
}

func (h *helloFS) Lookup(ctx context.Context, req *fuse.LookupRequest, resp *fuse.LookupResponse) error {
	if req.Node != rootNode || req.Name != h.filename {
		return fuse.ENOENT
	}

	resp.Node = fileNode
	h.fileAttr(&resp.Attr)
	return nil
}

func (h *helloFS) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) error {
	switch req.Node {
	case rootNode:
		if !req.Dir {
			return fuse.EISDIR
		}
	case fileNode:
		if !req.Flags.IsReadOnly() {
			return fuse.EACCES
		}
	default:
		return fuse.ENOENT
	}

	// Handles carry no state here; reusing the node ID keeps traces
	// readable.
	resp.Handle = fuse.HandleID(req.Node)
	return nil
}

func (h *helloFS) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	if req.Dir {
		if req.Node != rootNode {
			return fuse.ENOTDIR
		}

		var data []byte
		data = fuse.AppendDirent(data, fuse.Dirent{Inode: uint64(rootNode), Type: fuse.DT_Dir, Name: "."})
		data = fuse.AppendDirent(data, fuse.Dirent{Inode: uint64(rootNode), Type: fuse.DT_Dir, Name: ".."})
		data = fuse.AppendDirent(data, fuse.Dirent{Inode: uint64(fileNode), Type: fuse.DT_File, Name: h.filename})
		fs.HandleRead(req, resp, data)
		return nil
	}

	if req.Node != fileNode {
		return fuse.ENOENT
	}
	fs.HandleRead(req, resp, h.contents)
	return nil
}

func (h *helloFS) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return nil
}
