package doc

import "github.com/kawafs/kawa/pkg/cli"

var WireProtocolCmd = &cli.Command{
	UsageLine: "wire-protocol",
	Short:     "kernel wire protocol overview",
	Long: `
A mounted kawa file system talks to the kernel over a single file
descriptor. On Linux the fuse device is opened by a fusermount helper
and passed back over a unix socket; on Darwin the FUSE-for-macOS mount
helper is spawned directly. Everything after the mount is reads and
writes on that descriptor.

Messages are length-prefixed. Every kernel request starts with a fixed
header: total length, opcode, a unique request ID, the node ID the
operation targets, and the uid, gid and pid of the calling process.
Node IDs name inodes kernel-side; the root directory is always node 1.
Requests that operate on open files carry a handle ID the file system
itself issued in an earlier open reply.

The first exchange is init: the kernel offers its protocol version and
the file system answers with the highest version both sides speak,
along with negotiated limits such as the maximum write size and
readahead. Serving begins only after this handshake; a connection
closed before init is reported distinctly so callers can tell a failed
mount from a crashed serve loop.

Replies reuse the unique ID of the request they answer. A reply is
either a response payload or a negative errno; handler errors that
carry no errno of their own are reported to the kernel as EIO. The
kernel may also send an interrupt naming the unique ID of an earlier
request, which cancels that request's context; a handler that gives up
on cancellation answers EINTR.

Two message kinds flow the other way without a request: invalidation
notices. A file system that knows a node's attributes or an entry's
name-to-node binding changed behind the kernel's back can push
invalidate-node and invalidate-entry notices to keep the kernel's
caches honest.
`,
}
