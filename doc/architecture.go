package doc

import "github.com/kawafs/kawa/pkg/cli"

var ArchitectureCmd = &cli.Command{
	UsageLine: "architecture",
	Short:     "Kawa system architecture overview",
	Long: `
Kawa is a userspace file system toolkit. At its core sits a library
pair: pkg/fuse speaks the kernel's file system protocol (mounting,
message framing, version negotiation, errno replies), and pkg/fuse/fs
turns that message stream into calls on a single FS interface with one
method per operation. A server implements the handful of operations it
cares about, embeds fs.DefaultFS for the rest, and passes itself to
fs.Serve.

Four servers ship with the toolkit, each a subcommand of this binary:

hello-server mounts a read-only volume with a single file. It is the
smallest complete consumer of the FS interface and a useful smoke test
for the protocol plumbing.

vault-server mounts an encrypted volume backed by one local database
file. Inodes, directory entries and sealed file contents live in
separate buckets; the sealing key is derived from a passphrase on every
open and never stored.

store-server is not a file system at all: it serves a flat block store
over grpc (with grpc-web multiplexed onto the same port for browser
clients), backed by a local directory or by Google Drive. Blocks too
large for single messages move over chunked stream RPCs.

bridge-server closes the loop: it mounts a store server's blocks as
files in a flat directory, translating file operations into store RPCs.

The remaining packages are support: pkg/cli drives subcommand
dispatch, pkg/log is the leveled logger all components share,
pkg/streaming slices block payloads for the stream RPCs, pkg/pb/store
holds the generated service stubs, pkg/proquint renders identifiers
pronounceable, and pkg/xattr wraps the extended attribute syscalls.
`,
}
