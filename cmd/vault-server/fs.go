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

package vaultserver

import (
	"context"
	"time"

	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/fuse/fs"
	"github.com/kawafs/kawa/pkg/log"
)

// vaultFS exposes a vault through the file system interface. Kernel
// node IDs are vault inode numbers; the root inode is allocated first
// so the two numbering schemes agree on the root. Open handles carry
// no state, so handle IDs just repeat the node ID.
type vaultFS struct {
	fs.DefaultFS

	logger *log.Logger
	vault  *vault
}

var _ fs.FS = (*vaultFS)(nil)

func newVaultFS(logger *log.Logger, vault *vault) *vaultFS {
	return &vaultFS{logger: logger, vault: vault}
}

// errno maps vault errors onto the errnos the kernel expects.
// Anything unmapped falls through to the serve loop's default.
func errno(err error) error {
	switch err {
	case errNotFound:
		return fuse.ENOENT
	case errExists:
		return fuse.EEXIST
	case errNotEmpty:
		return fuse.ENOTEMPTY
	case errNotDir:
		return fuse.ENOTDIR
	case errIsDir:
		return fuse.EISDIR
	}
	return err
}

func attrFromRecord(ino uint64, rec *inodeRecord, a *fuse.Attr) {
	a.Inode = ino
	a.Mode = rec.Mode
	a.Size = rec.Size
	a.Blocks = (rec.Size + 511) / 512
	a.Nlink = rec.Nlink
	a.Uid = rec.Uid
	a.Gid = rec.Gid
	a.Atime = time.Unix(rec.Atime, 0)
	a.Mtime = time.Unix(rec.Mtime, 0)
	a.Ctime = time.Unix(rec.Ctime, 0)
	a.BlockSize = 4096
}

func (f *vaultFS) Getattr(ctx context.Context, req *fuse.GetattrRequest, resp *fuse.GetattrResponse) error {
	rec, err := f.vault.getInode(uint64(req.Node))
	if err != nil {
		return errno(err)
	}

	attrFromRecord(uint64(req.Node), rec, &resp.Attr)
	return nil
}

func (f *vaultFS) Lookup(ctx context.Context, req *fuse.LookupRequest, resp *fuse.LookupResponse) error {
	ino, rec, err := f.vault.lookup(uint64(req.Node), req.Name)
	if err != nil {
		return errno(err)
	}

	resp.Node = fuse.NodeID(ino)
	attrFromRecord(ino, rec, &resp.Attr)
	return nil
}

func (f *vaultFS) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	ino := uint64(req.Node)
	rec, err := f.vault.getInode(ino)
	if err != nil {
		return errno(err)
	}

	if req.Valid.Size() && req.Size != rec.Size {
		content, err := f.vault.readFile(ino)
		if err != nil {
			return errno(err)
		}
		if uint64(len(content)) > req.Size {
			content = content[:req.Size]
		} else {
			content = append(content, make([]byte, req.Size-uint64(len(content)))...)
		}
		if err := f.vault.writeFile(ino, content); err != nil {
			return errno(err)
		}
		rec, err = f.vault.getInode(ino)
		if err != nil {
			return errno(err)
		}
	}

	if req.Valid.Mode() {
		rec.Mode = req.Mode
	}
	if req.Valid.Uid() {
		rec.Uid = req.Uid
	}
	if req.Valid.Gid() {
		rec.Gid = req.Gid
	}
	if req.Valid.Atime() {
		rec.Atime = req.Atime.Unix()
	}
	if req.Valid.Mtime() {
		rec.Mtime = req.Mtime.Unix()
	}
	rec.Ctime = time.Now().Unix()

	if err := f.vault.setInode(ino, rec); err != nil {
		return errno(err)
	}

	attrFromRecord(ino, rec, &resp.Attr)
	return nil
}

func (f *vaultFS) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) error {
	rec, err := f.vault.getInode(uint64(req.Node))
	if err != nil {
		return errno(err)
	}

	if req.Dir && !rec.Mode.IsDir() {
		return fuse.ENOTDIR
	}
	if !req.Dir && rec.Mode.IsDir() {
		return fuse.EISDIR
	}

	resp.Handle = fuse.HandleID(req.Node)
	return nil
}

func (f *vaultFS) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) error {
	ino, rec, err := f.vault.create(uint64(req.Node), req.Name, req.Mode, req.Uid, req.Gid)
	if err != nil {
		return errno(err)
	}

	resp.Node = fuse.NodeID(ino)
	resp.Handle = fuse.HandleID(ino)
	attrFromRecord(ino, rec, &resp.Attr)
	return nil
}

func (f *vaultFS) Mkdir(ctx context.Context, req *fuse.MkdirRequest, resp *fuse.MkdirResponse) error {
	ino, rec, err := f.vault.create(uint64(req.Node), req.Name, req.Mode, req.Uid, req.Gid)
	if err != nil {
		return errno(err)
	}

	resp.Node = fuse.NodeID(ino)
	attrFromRecord(ino, rec, &resp.Attr)
	return nil
}

func (f *vaultFS) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	if req.Dir {
		entries, err := f.vault.readDir(uint64(req.Node))
		if err != nil {
			return errno(err)
		}

		var data []byte
		data = fuse.AppendDirent(data, fuse.Dirent{Inode: uint64(req.Node), Type: fuse.DT_Dir, Name: "."})
		data = fuse.AppendDirent(data, fuse.Dirent{Inode: uint64(req.Node), Type: fuse.DT_Dir, Name: ".."})
		for _, e := range entries {
			dt := fuse.DT_File
			if e.dir {
				dt = fuse.DT_Dir
			}
			data = fuse.AppendDirent(data, fuse.Dirent{Inode: e.ino, Type: dt, Name: e.name})
		}
		fs.HandleRead(req, resp, data)
		return nil
	}

	content, err := f.vault.readFile(uint64(req.Node))
	if err != nil {
		return errno(err)
	}
	fs.HandleRead(req, resp, content)
	return nil
}

func (f *vaultFS) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	ino := uint64(req.Node)
	content, err := f.vault.readFile(ino)
	if err != nil {
		return errno(err)
	}

	end := req.Offset + int64(len(req.Data))
	if end > int64(len(content)) {
		grown := make([]byte, end)
		copy(grown, content)
		content = grown
	}
	copy(content[req.Offset:], req.Data)

	if err := f.vault.writeFile(ino, content); err != nil {
		return errno(err)
	}

	resp.Size = len(req.Data)
	return nil
}

func (f *vaultFS) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	return errno(f.vault.remove(uint64(req.Node), req.Name, req.Dir))
}

func (f *vaultFS) Rename(ctx context.Context, req *fuse.RenameRequest) error {
	return errno(f.vault.rename(uint64(req.Node), req.OldName, uint64(req.NewDir), req.NewName))
}

func (f *vaultFS) Flush(ctx context.Context, req *fuse.FlushRequest) error {
	return nil
}

func (f *vaultFS) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return nil
}

func (f *vaultFS) Fsync(ctx context.Context, req *fuse.FsyncRequest) error {
	return f.vault.db.Sync()
}

func (f *vaultFS) Statfs(ctx context.Context, req *fuse.StatfsRequest, resp *fuse.StatfsResponse) error {
	files, bytes := f.vault.stats()

	resp.Files = files
	resp.Bsize = 4096
	resp.Frsize = 4096
	resp.Blocks = (bytes + 4095) / 4096
	resp.Namelen = 255
	return nil
}
