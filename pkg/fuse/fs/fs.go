// Package fs dispatches FUSE kernel requests to a file system
// implementation.
//
// A file system is a single value implementing the FS interface: one
// method per kernel operation kind, each taking the typed request
// decoded from the wire and, where the operation carries a payload
// back, a response struct to fill in. Serve owns everything else: the
// protocol handshake, per-request concurrency, interrupt bookkeeping,
// and encoding replies for the negotiated protocol version.
//
// Partial implementations embed DefaultFS, which answers every
// operation with ENOSYS, and override only what they support. The
// kernel treats ENOSYS as "never implemented" and stops asking, so an
// embedding file system stays protocol-correct no matter how few
// methods it provides.
package fs

import (
	"context"

	"github.com/kawafs/kawa/pkg/fuse"
)

// An FS is the capability contract between a file system
// implementation and the serve loop.
//
// Methods run on their own goroutines and may block; ctx is canceled
// if the kernel interrupts the request, and honoring that is
// voluntary. Returning an error that implements fuse.ErrorNumber
// controls the errno sent to the kernel; any other error becomes
// fuse.DefaultErrno. Each call produces exactly one reply, written by
// the serve loop after the method returns.
type FS interface {
	// Lookup finds the entry req.Name under the directory req.Node.
	Lookup(ctx context.Context, req *fuse.LookupRequest, resp *fuse.LookupResponse) error

	// Forget drops req.N references to req.Node. The kernel promises
	// to never use the node ID again without a fresh Lookup. No reply
	// is sent and no error can be returned.
	Forget(req *fuse.ForgetRequest)

	// Getattr reads the metadata of req.Node.
	Getattr(ctx context.Context, req *fuse.GetattrRequest, resp *fuse.GetattrResponse) error

	// Setattr changes the metadata bits selected by req.Valid and
	// returns the resulting attributes.
	Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error

	// Readlink returns the target of the symlink req.Node.
	Readlink(ctx context.Context, req *fuse.ReadlinkRequest) (string, error)

	// Symlink creates a symlink req.NewName under the directory
	// req.Node pointing at req.Target.
	Symlink(ctx context.Context, req *fuse.SymlinkRequest, resp *fuse.SymlinkResponse) error

	// Mknod creates a special file req.Name under the directory
	// req.Node.
	Mknod(ctx context.Context, req *fuse.MknodRequest, resp *fuse.LookupResponse) error

	// Mkdir creates the directory req.Name under req.Node.
	Mkdir(ctx context.Context, req *fuse.MkdirRequest, resp *fuse.MkdirResponse) error

	// Remove unlinks req.Name from the directory req.Node. req.Dir
	// distinguishes rmdir from unlink.
	Remove(ctx context.Context, req *fuse.RemoveRequest) error

	// Rename moves req.OldName under req.Node to req.NewName under
	// req.NewDir.
	Rename(ctx context.Context, req *fuse.RenameRequest) error

	// Link creates the hard link req.NewName under the directory
	// req.Node pointing at the node req.OldNode.
	Link(ctx context.Context, req *fuse.LinkRequest, resp *fuse.LookupResponse) error

	// Open opens req.Node and returns a handle for it. req.Dir
	// distinguishes opendir from open.
	Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) error

	// Create creates and opens the file req.Name under the directory
	// req.Node in one step.
	Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) error

	// Read reads up to req.Size bytes at req.Offset from the handle
	// req.Handle. For req.Dir the payload is a packed run of directory
	// entries; see fuse.AppendDirent and HandleRead. A short or empty
	// resp.Data is sent as is, never padded.
	Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error

	// Write stores req.Data at req.Offset through the handle
	// req.Handle and reports how many bytes were accepted.
	Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error

	// Flush is called each time a descriptor for req.Handle is
	// closed. A handle may see any number of flushes.
	Flush(ctx context.Context, req *fuse.FlushRequest) error

	// Release ends the life of the handle req.Handle. req.Dir
	// distinguishes releasedir from release.
	Release(ctx context.Context, req *fuse.ReleaseRequest) error

	// Fsync forces dirty state of req.Handle to stable storage.
	// req.Dir distinguishes fsyncdir from fsync.
	Fsync(ctx context.Context, req *fuse.FsyncRequest) error

	// Statfs reports file system totals.
	Statfs(ctx context.Context, req *fuse.StatfsRequest, resp *fuse.StatfsResponse) error

	// Setxattr sets the extended attribute req.Name on req.Node.
	Setxattr(ctx context.Context, req *fuse.SetxattrRequest) error

	// Getxattr reads the extended attribute req.Name of req.Node.
	// When req.Size is zero only the length of resp.Xattr is sent.
	Getxattr(ctx context.Context, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error

	// Listxattr lists the extended attribute names of req.Node.
	Listxattr(ctx context.Context, req *fuse.ListxattrRequest, resp *fuse.ListxattrResponse) error

	// Removexattr removes the extended attribute req.Name from
	// req.Node.
	Removexattr(ctx context.Context, req *fuse.RemovexattrRequest) error

	// Access answers an access(2) style permission probe against
	// req.Node.
	Access(ctx context.Context, req *fuse.AccessRequest) error

	// ExchangeData atomically swaps the contents of two files. Only
	// ever sent by OS X kernels.
	ExchangeData(ctx context.Context, req *fuse.ExchangeDataRequest) error

	// Destroy announces that the file system is being unmounted. No
	// request follows it. No error can be returned.
	Destroy()
}

// DefaultFS answers every operation with ENOSYS. File systems embed
// it so that unimplemented operations degrade gracefully instead of
// breaking the session.
type DefaultFS struct{}

var _ FS = DefaultFS{}

func (DefaultFS) Lookup(ctx context.Context, req *fuse.LookupRequest, resp *fuse.LookupResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Forget(req *fuse.ForgetRequest) {}

func (DefaultFS) Getattr(ctx context.Context, req *fuse.GetattrRequest, resp *fuse.GetattrResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Readlink(ctx context.Context, req *fuse.ReadlinkRequest) (string, error) {
	return "", fuse.ENOSYS
}

func (DefaultFS) Symlink(ctx context.Context, req *fuse.SymlinkRequest, resp *fuse.SymlinkResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Mknod(ctx context.Context, req *fuse.MknodRequest, resp *fuse.LookupResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Mkdir(ctx context.Context, req *fuse.MkdirRequest, resp *fuse.MkdirResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) Rename(ctx context.Context, req *fuse.RenameRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) Link(ctx context.Context, req *fuse.LinkRequest, resp *fuse.LookupResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Flush(ctx context.Context, req *fuse.FlushRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) Fsync(ctx context.Context, req *fuse.FsyncRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) Statfs(ctx context.Context, req *fuse.StatfsRequest, resp *fuse.StatfsResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Setxattr(ctx context.Context, req *fuse.SetxattrRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) Getxattr(ctx context.Context, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Listxattr(ctx context.Context, req *fuse.ListxattrRequest, resp *fuse.ListxattrResponse) error {
	return fuse.ENOSYS
}

func (DefaultFS) Removexattr(ctx context.Context, req *fuse.RemovexattrRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) Access(ctx context.Context, req *fuse.AccessRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) ExchangeData(ctx context.Context, req *fuse.ExchangeDataRequest) error {
	return fuse.ENOSYS
}

func (DefaultFS) Destroy() {}
