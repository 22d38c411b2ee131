package fuse

import (
	"encoding/binary"
	"io"
	"os"
	"syscall"
	"testing"
	"time"
)

// testConn pairs a Conn with the kernel end of a socketpair standing
// in for /dev/fuse. The kernel side is driven with encoding/binary so
// round-trips do not depend on the overlay structs they verify.
type testConn struct {
	t      *testing.T
	kernel *os.File
	conn   *Conn
}

func newTestConn(t *testing.T, proto Protocol) *testConn {
	fds, err := syscall.Socketpair(syscall.AF_UNIX, syscall.SOCK_SEQPACKET, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	conn, err := NewConn(os.NewFile(uintptr(fds[1]), "/dev/fuse"))
	if err != nil {
		t.Fatalf("NewConn: %v", err)
	}
	// Pin the negotiated version without running a handshake.
	conn.protocol = proto
	return &testConn{
		t:      t,
		kernel: os.NewFile(uintptr(fds[0]), "fake-kernel"),
		conn:   conn,
	}
}

func (tc *testConn) close() {
	tc.kernel.Close()
	tc.conn.Close()
}

func (tc *testConn) send(opcode uint32, unique, nodeid uint64, payload []byte) {
	buf := make([]byte, inHeaderSize+len(payload))
	le := binary.LittleEndian
	le.PutUint32(buf[0:], uint32(len(buf)))
	le.PutUint32(buf[4:], opcode)
	le.PutUint64(buf[8:], unique)
	le.PutUint64(buf[16:], nodeid)
	le.PutUint32(buf[24:], 501)  // uid
	le.PutUint32(buf[28:], 20)   // gid
	le.PutUint32(buf[32:], 1234) // pid
	copy(buf[inHeaderSize:], payload)
	if _, err := tc.kernel.Write(buf); err != nil {
		tc.t.Fatalf("fake kernel: write: %v", err)
	}
}

// recv reads one reply or notification packet off the kernel end and
// returns the outHeader fields and the trailing payload.
func (tc *testConn) recv() (errno int32, unique uint64, payload []byte) {
	buf := make([]byte, 1<<20)
	n, err := tc.kernel.Read(buf)
	if err != nil {
		tc.t.Fatalf("fake kernel: read: %v", err)
	}
	if n < outHeaderSize {
		tc.t.Fatalf("fake kernel: packet too short: %d bytes", n)
	}
	le := binary.LittleEndian
	if got := le.Uint32(buf[0:]); int(got) != n {
		tc.t.Fatalf("fake kernel: length field %d does not match packet size %d", got, n)
	}
	errno = int32(le.Uint32(buf[4:]))
	unique = le.Uint64(buf[8:])
	payload = append([]byte(nil), buf[outHeaderSize:n]...)
	return errno, unique, payload
}

func TestReadRequestFraming(t *testing.T) {
	{
		// A packet shorter than the request header is fatal.
		tc := newTestConn(t, Protocol{7, 28})
		if _, err := tc.kernel.Write(make([]byte, 10)); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := tc.conn.ReadRequest(); err == nil || err == io.EOF {
			t.Errorf("ReadRequest on a truncated header = %v, want a framing error", err)
		}
		tc.close()
	}

	{
		// The length field must match what was actually read.
		tc := newTestConn(t, Protocol{7, 28})
		buf := make([]byte, 48)
		le := binary.LittleEndian
		le.PutUint32(buf[0:], 100)
		le.PutUint32(buf[4:], opStatfs)
		le.PutUint64(buf[8:], 1)
		if _, err := tc.kernel.Write(buf); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := tc.conn.ReadRequest(); err == nil || err == io.EOF {
			t.Errorf("ReadRequest with a lying length field = %v, want a framing error", err)
		}
		tc.close()
	}

	{
		// A closed channel reads as EOF.
		tc := newTestConn(t, Protocol{7, 28})
		tc.kernel.Close()
		if _, err := tc.conn.ReadRequest(); err != io.EOF {
			t.Errorf("ReadRequest after close = %v, want io.EOF", err)
		}
		tc.conn.Close()
	}
}

func TestLookupRoundTrip(t *testing.T) {
	tc := newTestConn(t, Protocol{7, 28})
	defer tc.close()

	tc.send(opLookup, 5, 1, append([]byte("hello"), '\x00'))
	req, err := tc.conn.ReadRequest()
	if err != nil {
		t.Fatalf("ReadRequest: %v", err)
	}
	r, ok := req.(*LookupRequest)
	if !ok {
		t.Fatalf("ReadRequest returned %T, want *LookupRequest", req)
	}
	if r.Name != "hello" {
		t.Errorf("lookup name = %q, want %q", r.Name, "hello")
	}
	hdr := r.Hdr()
	if hdr.ID != 5 || hdr.Node != 1 {
		t.Errorf("header id/node = %v/%v, want 5/1", hdr.ID, hdr.Node)
	}
	if hdr.Uid != 501 || hdr.Gid != 20 || hdr.Pid != 1234 {
		t.Errorf("header uid/gid/pid = %d/%d/%d, want 501/20/1234", hdr.Uid, hdr.Gid, hdr.Pid)
	}

	r.Respond(&LookupResponse{
		Node:       42,
		Generation: 7,
		EntryValid: 2500 * time.Millisecond,
		Attr: Attr{
			Valid: time.Minute,
			Inode: 42,
			Size:  11,
			Mode:  0644,
		},
	})
	errno, unique, payload := tc.recv()
	if errno != 0 {
		t.Errorf("reply errno = %d, want 0", errno)
	}
	if unique != 5 {
		t.Errorf("reply unique = %d, want 5", unique)
	}
	if want := int(entryOutSize(Protocol{7, 28})); len(payload) != want {
		t.Fatalf("reply payload = %d bytes, want %d", len(payload), want)
	}
	le := binary.LittleEndian
	if got := le.Uint64(payload[0:]); got != 42 {
		t.Errorf("entry nodeid = %d, want 42", got)
	}
	if got := le.Uint64(payload[8:]); got != 7 {
		t.Errorf("entry generation = %d, want 7", got)
	}
	if sec, nsec := le.Uint64(payload[16:]), le.Uint32(payload[32:]); sec != 2 || nsec != 500000000 {
		t.Errorf("entry valid = %d.%09d, want 2.500000000", sec, nsec)
	}
	if got := le.Uint64(payload[24:]); got != 60 {
		t.Errorf("attr valid = %d, want 60", got)
	}
	if got := le.Uint64(payload[40:]); got != 42 {
		t.Errorf("attr inode = %d, want 42", got)
	}
	if got := le.Uint64(payload[48:]); got != 11 {
		t.Errorf("attr size = %d, want 11", got)
	}
}

func TestGetattrVersionedReply(t *testing.T) {
	// The same response encodes to different sizes depending on the
	// negotiated version; 7.9 grew the attr block by 8 bytes.
	lens := map[Protocol]int{}
	for _, proto := range []Protocol{{7, 8}, {7, 28}} {
		tc := newTestConn(t, proto)

		var payload []byte
		if proto.GE(Protocol{7, 9}) {
			payload = make([]byte, 16)
		}
		tc.send(opGetattr, 3, 9, payload)
		req, err := tc.conn.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest at %v: %v", proto, err)
		}
		r, ok := req.(*GetattrRequest)
		if !ok {
			t.Fatalf("ReadRequest at %v returned %T, want *GetattrRequest", proto, req)
		}
		r.Respond(&GetattrResponse{
			Attr: Attr{
				Valid: 30 * time.Second,
				Inode: 9,
				Size:  4096,
				Mode:  0755,
			},
		})
		errno, unique, out := tc.recv()
		if errno != 0 || unique != 3 {
			t.Errorf("reply at %v = errno %d unique %d, want 0/3", proto, errno, unique)
		}
		if want := int(attrOutSize(proto)); len(out) != want {
			t.Fatalf("reply payload at %v = %d bytes, want %d", proto, len(out), want)
		}
		le := binary.LittleEndian
		if got := le.Uint64(out[0:]); got != 30 {
			t.Errorf("attr valid at %v = %d, want 30", proto, got)
		}
		if got := le.Uint64(out[16:]); got != 9 {
			t.Errorf("attr inode at %v = %d, want 9", proto, got)
		}
		if got := le.Uint64(out[24:]); got != 4096 {
			t.Errorf("attr size at %v = %d, want 4096", proto, got)
		}
		lens[proto] = len(out)
		tc.close()
	}
	if got := lens[Protocol{7, 28}] - lens[Protocol{7, 8}]; got != 8 {
		t.Errorf("attr reply grew by %d bytes across 7.9, want 8", got)
	}
}

func TestRespondErrorEncoding(t *testing.T) {
	tc := newTestConn(t, Protocol{7, 28})
	defer tc.close()

	{
		tc.send(opStatfs, 6, 1, nil)
		req, err := tc.conn.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest: %v", err)
		}
		req.RespondError(ENOENT)
		errno, unique, payload := tc.recv()
		if want := -int32(ENOENT); errno != want {
			t.Errorf("errno = %d, want %d", errno, want)
		}
		if unique != 6 {
			t.Errorf("unique = %d, want 6", unique)
		}
		if len(payload) != 0 {
			t.Errorf("error reply carries %d payload bytes, want 0", len(payload))
		}
	}

	{
		// An unrecognized opcode still surfaces with an intact header,
		// so an error reply can carry the right ID.
		tc.send(9999, 8, 0, nil)
		req, err := tc.conn.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest: %v", err)
		}
		if _, ok := req.(*Header); !ok {
			t.Fatalf("unknown opcode decoded as %T, want *Header", req)
		}
		req.RespondError(ENOSYS)
		errno, unique, _ := tc.recv()
		if want := -int32(ENOSYS); errno != want {
			t.Errorf("errno = %d, want %d", errno, want)
		}
		if unique != 8 {
			t.Errorf("unique = %d, want 8", unique)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	const body = "hello world"
	{
		tc := newTestConn(t, Protocol{7, 28})
		payload := make([]byte, 40+len(body))
		le := binary.LittleEndian
		le.PutUint64(payload[0:], 3)                  // fh
		le.PutUint64(payload[8:], 512)                // offset
		le.PutUint32(payload[16:], uint32(len(body))) // size
		le.PutUint32(payload[32:], uint32(OpenWriteOnly|OpenAppend))
		copy(payload[40:], body)
		tc.send(opWrite, 11, 2, payload)

		req, err := tc.conn.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest: %v", err)
		}
		r, ok := req.(*WriteRequest)
		if !ok {
			t.Fatalf("ReadRequest returned %T, want *WriteRequest", req)
		}
		if r.Handle != 3 || r.Offset != 512 {
			t.Errorf("write handle/offset = %v/%d, want 3/512", r.Handle, r.Offset)
		}
		if string(r.Data) != body {
			t.Errorf("write data = %q, want %q", r.Data, body)
		}
		if r.FileFlags != OpenWriteOnly|OpenAppend {
			t.Errorf("write file flags = %v, want %v", r.FileFlags, OpenWriteOnly|OpenAppend)
		}

		r.Respond(&WriteResponse{Size: len(body)})
		errno, unique, out := tc.recv()
		if errno != 0 || unique != 11 {
			t.Errorf("reply = errno %d unique %d, want 0/11", errno, unique)
		}
		if len(out) != 8 {
			t.Fatalf("write reply payload = %d bytes, want 8", len(out))
		}
		if got := binary.LittleEndian.Uint32(out[0:]); got != uint32(len(body)) {
			t.Errorf("write reply size = %d, want %d", got, len(body))
		}
		tc.close()
	}

	{
		// Before 7.9 the write header was 16 bytes shorter; the data
		// must still be found in the right place.
		tc := newTestConn(t, Protocol{7, 8})
		payload := make([]byte, 24+len(body))
		le := binary.LittleEndian
		le.PutUint64(payload[0:], 3)
		le.PutUint64(payload[8:], 0)
		le.PutUint32(payload[16:], uint32(len(body)))
		copy(payload[24:], body)
		tc.send(opWrite, 12, 2, payload)

		req, err := tc.conn.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest: %v", err)
		}
		r := req.(*WriteRequest)
		if string(r.Data) != body {
			t.Errorf("write data = %q, want %q", r.Data, body)
		}
		if r.FileFlags != 0 {
			t.Errorf("write file flags = %v, want 0 before 7.9", r.FileFlags)
		}
		tc.close()
	}
}

func TestMkdirUmaskGating(t *testing.T) {
	build := func() []byte {
		payload := make([]byte, 8)
		le := binary.LittleEndian
		le.PutUint32(payload[0:], 0755)
		le.PutUint32(payload[4:], 0022)
		return append(append(payload, "subdir"...), '\x00')
	}

	{
		tc := newTestConn(t, Protocol{7, 28})
		tc.send(opMkdir, 13, 1, build())
		req, err := tc.conn.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest: %v", err)
		}
		r := req.(*MkdirRequest)
		if r.Name != "subdir" {
			t.Errorf("mkdir name = %q, want %q", r.Name, "subdir")
		}
		if !r.Mode.IsDir() || r.Mode.Perm() != 0755 {
			t.Errorf("mkdir mode = %v, want a directory with 0755", r.Mode)
		}
		if r.Umask.Perm() != 0022 {
			t.Errorf("mkdir umask = %v, want 0022", r.Umask)
		}
		tc.close()
	}

	{
		// The same bytes under an old version: the umask field is
		// only padding there and must be ignored.
		tc := newTestConn(t, Protocol{7, 8})
		tc.send(opMkdir, 14, 1, build())
		req, err := tc.conn.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest: %v", err)
		}
		r := req.(*MkdirRequest)
		if r.Umask != 0 {
			t.Errorf("mkdir umask = %v, want 0 before 7.12", r.Umask)
		}
		tc.close()
	}
}

func TestInitReplyLayouts(t *testing.T) {
	for _, tt := range []struct {
		library Protocol
		wantLen int
	}{
		// 7.23 added fields to the init reply; older kernels must get
		// the original 24 bytes, not a truncated new layout.
		{Protocol{7, 22}, 24},
		{Protocol{7, 28}, 64},
	} {
		tc := newTestConn(t, Protocol{7, 28})

		payload := make([]byte, 16)
		le := binary.LittleEndian
		le.PutUint32(payload[0:], 7)
		le.PutUint32(payload[4:], 31)
		le.PutUint32(payload[8:], 1<<16)
		le.PutUint32(payload[12:], uint32(InitAsyncRead|InitBigWrites))
		tc.send(opInit, 1, 0, payload)

		req, err := tc.conn.ReadRequest()
		if err != nil {
			t.Fatalf("ReadRequest: %v", err)
		}
		r, ok := req.(*InitRequest)
		if !ok {
			t.Fatalf("ReadRequest returned %T, want *InitRequest", req)
		}
		if want := (Protocol{7, 31}); r.Kernel != want {
			t.Errorf("init kernel = %v, want %v", r.Kernel, want)
		}
		if r.MaxReadahead != 1<<16 {
			t.Errorf("init readahead = %d, want %d", r.MaxReadahead, 1<<16)
		}
		if r.Flags != InitAsyncRead|InitBigWrites {
			t.Errorf("init flags = %v, want %v", r.Flags, InitAsyncRead|InitBigWrites)
		}

		r.Respond(&InitResponse{
			Library:             tt.library,
			MaxReadahead:        123,
			MaxBackground:       12,
			CongestionThreshold: 9,
			MaxWrite:            1 << 30,
		})
		errno, unique, out := tc.recv()
		if errno != 0 || unique != 1 {
			t.Errorf("reply = errno %d unique %d, want 0/1", errno, unique)
		}
		if len(out) != tt.wantLen {
			t.Fatalf("init reply for %v = %d bytes, want %d", tt.library, len(out), tt.wantLen)
		}
		if major, minor := le.Uint32(out[0:]), le.Uint32(out[4:]); major != tt.library.Major || minor != tt.library.Minor {
			t.Errorf("init reply advertises %d.%d, want %v", major, minor, tt.library)
		}
		if got := le.Uint32(out[8:]); got != 123 {
			t.Errorf("init reply readahead = %d, want 123", got)
		}
		if got := le.Uint16(out[16:]); got != 12 {
			t.Errorf("init reply max background = %d, want 12", got)
		}
		if got := le.Uint16(out[18:]); got != 9 {
			t.Errorf("init reply congestion threshold = %d, want 9", got)
		}
		// An oversized MaxWrite is clamped to the receive buffer.
		if got := le.Uint32(out[20:]); got != maxWrite {
			t.Errorf("init reply max write = %d, want %d", got, maxWrite)
		}
		if tt.wantLen == 64 {
			if got := le.Uint32(out[24:]); got != 1 {
				t.Errorf("init reply time granularity = %d, want 1", got)
			}
			if got, want := le.Uint16(out[28:]), uint16(maxWrite/pageSize); got != want {
				t.Errorf("init reply max pages = %d, want %d", got, want)
			}
		}
		tc.close()
	}
}

func TestAppendDirent(t *testing.T) {
	data := AppendDirent(nil, Dirent{Inode: 9, Type: DT_Dir, Name: "etc"})
	// 24-byte header plus the name, padded to an 8-byte boundary.
	if len(data) != 32 {
		t.Fatalf("dirent length = %d, want 32", len(data))
	}
	le := binary.LittleEndian
	if got := le.Uint64(data[0:]); got != 9 {
		t.Errorf("dirent inode = %d, want 9", got)
	}
	if got := le.Uint64(data[8:]); got != 32 {
		t.Errorf("dirent offset = %d, want 32", got)
	}
	if got := le.Uint32(data[16:]); got != 3 {
		t.Errorf("dirent namelen = %d, want 3", got)
	}
	if got := le.Uint32(data[20:]); got != uint32(DT_Dir) {
		t.Errorf("dirent type = %d, want %d", got, uint32(DT_Dir))
	}
	if got := string(data[24:27]); got != "etc" {
		t.Errorf("dirent name = %q, want %q", got, "etc")
	}
	for i := 27; i < 32; i++ {
		if data[i] != 0 {
			t.Errorf("dirent padding byte %d = %#x, want 0", i, data[i])
		}
	}

	// A second entry lands at the next aligned offset.
	data = AppendDirent(data, Dirent{Inode: 10, Type: DT_File, Name: "passwd"})
	if len(data) != 64 {
		t.Fatalf("two dirents = %d bytes, want 64", len(data))
	}
	if got := le.Uint64(data[32+8:]); got != 64 {
		t.Errorf("second dirent offset = %d, want 64", got)
	}
}

func TestInvalidateEncoding(t *testing.T) {
	{
		tc := newTestConn(t, Protocol{7, 28})
		// The packet fits in the socket buffer, so the call need not
		// wait for the reader.
		if err := tc.conn.InvalidateNode(5, 0, -1); err != nil {
			t.Fatalf("InvalidateNode: %v", err)
		}
		errno, unique, payload := tc.recv()
		if errno != notifyCodeInvalInode {
			t.Errorf("notify code = %d, want %d", errno, notifyCodeInvalInode)
		}
		if unique != 0 {
			t.Errorf("notify unique = %d, want 0", unique)
		}
		if len(payload) != 24 {
			t.Fatalf("notify payload = %d bytes, want 24", len(payload))
		}
		le := binary.LittleEndian
		if got := le.Uint64(payload[0:]); got != 5 {
			t.Errorf("invalidated inode = %d, want 5", got)
		}
		if got := int64(le.Uint64(payload[16:])); got != -1 {
			t.Errorf("invalidated length = %d, want -1", got)
		}
		tc.close()
	}

	{
		tc := newTestConn(t, Protocol{7, 28})
		if err := tc.conn.InvalidateEntry(1, "gone"); err != nil {
			t.Fatalf("InvalidateEntry: %v", err)
		}
		errno, unique, payload := tc.recv()
		if errno != notifyCodeInvalEntry {
			t.Errorf("notify code = %d, want %d", errno, notifyCodeInvalEntry)
		}
		if unique != 0 {
			t.Errorf("notify unique = %d, want 0", unique)
		}
		if len(payload) != 16+len("gone")+1 {
			t.Fatalf("notify payload = %d bytes, want %d", len(payload), 16+len("gone")+1)
		}
		le := binary.LittleEndian
		if got := le.Uint64(payload[0:]); got != 1 {
			t.Errorf("invalidated parent = %d, want 1", got)
		}
		if got := le.Uint32(payload[8:]); got != 4 {
			t.Errorf("invalidated namelen = %d, want 4", got)
		}
		if got := string(payload[16:21]); got != "gone\x00" {
			t.Errorf("invalidated name = %q, want %q", got, "gone\x00")
		}
		tc.close()
	}
}
