package integration

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"testing"
	"time"

	bridgeserver "github.com/kawafs/kawa/cmd/bridge-server"
	storeserver "github.com/kawafs/kawa/cmd/store-server"
	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/fuse/fs"
	"github.com/kawafs/kawa/pkg/log"
	spb "github.com/kawafs/kawa/pkg/pb/store"
	"github.com/kawafs/kawa/pkg/streaming"
	"golang.org/x/sys/unix"
	"google.golang.org/grpc"
)

func TestBlockPersistence(t *testing.T) {
	logger := log.Discarder()
	tdir, err := ioutil.TempDir("/tmp", "TestBlockPersistence")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tdir)

	store, err := storeserver.NewDiskStore(logger, tdir)
	if err != nil {
		t.Fatal(err)
	}
	wait, shutdown, err := storeserver.Start(logger, 10779, store)
	if err != nil {
		t.Fatal(err)
	}

	conn, err := grpc.Dial("localhost:10779", grpc.WithInsecure())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	key, content := "key", bytes.Repeat([]byte("-"), 1024*1024*2)

	client := spb.NewStoreServiceClient(conn)

	preq := &spb.PutBlockRequest{Key: key, Data: content}
	_, err = client.PutBlock(context.Background(), preq)
	if err != nil {
		t.Fatal(err)
	}

	greq := &spb.GetBlockRequest{Key: key}
	gresp, err := client.GetBlock(context.Background(), greq)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(gresp.Data, content) {
		t.Fatalf("expected %d bytes back, got %d", len(content), len(gresp.Data))
	}

	kreq := &spb.GetKeysRequest{}
	kresp, err := client.GetKeys(context.Background(), kreq)
	if err != nil {
		t.Fatal(err)
	}

	if len(kresp.Keys) != 1 || kresp.Keys[0] != key {
		t.Fatalf("expected keys [%s], got %v", key, kresp.Keys)
	}

	shutdown()
	wait()
}

func TestBlockDeletion(t *testing.T) {
	logger := log.Discarder()
	tdir, err := ioutil.TempDir("/tmp", "TestBlockDeletion")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tdir)

	store, err := storeserver.NewDiskStore(logger, tdir)
	if err != nil {
		t.Fatal(err)
	}
	wait, shutdown, err := storeserver.Start(logger, 10779, store)
	if err != nil {
		t.Fatal(err)
	}

	conn, err := grpc.Dial("localhost:10779", grpc.WithInsecure())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	key, content := "key", bytes.Repeat([]byte("-"), 1024*1024*2)

	client := spb.NewStoreServiceClient(conn)

	preq := &spb.PutBlockRequest{Key: key, Data: content}
	_, err = client.PutBlock(context.Background(), preq)
	if err != nil {
		t.Fatal(err)
	}

	greq := &spb.GetBlockRequest{Key: key}
	gresp, err := client.GetBlock(context.Background(), greq)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(gresp.Data, content) {
		t.Fatalf("expected %d bytes back, got %d", len(content), len(gresp.Data))
	}

	dreq := &spb.DeleteBlockRequest{Key: key}
	_, err = client.DeleteBlock(context.Background(), dreq)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.GetBlock(context.Background(), greq)
	if err == nil {
		t.Fatal("expected an error reading a deleted block")
	}
	if !strings.HasSuffix(err.Error(), "no such block") {
		t.Fatalf("expected err '%s', got '%s'", "no such block", err.Error())
	}

	shutdown()
	wait()
}

func TestLargeBlockStreaming(t *testing.T) {
	logger := log.Discarder()
	tdir, err := ioutil.TempDir("/tmp", "TestLargeBlockStreaming")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tdir)

	store, err := storeserver.NewDiskStore(logger, tdir)
	if err != nil {
		t.Fatal(err)
	}
	wait, shutdown, err := storeserver.Start(logger, 10779, store)
	if err != nil {
		t.Fatal(err)
	}

	conn, err := grpc.Dial("localhost:10779", grpc.WithInsecure())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	client := spb.NewStoreServiceClient(conn)

	testContent := bytes.Repeat([]byte("abcd"), (streaming.Threshold/4)+1)

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("key-%d", i)
		stream, err := client.PutBlockStream(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		chunker := streaming.NewChunker(testContent)
		for chunker.Next() {
			preq := &spb.PutBlockStreamRequest{Key: key, Chunk: chunker.Value()}
			if err := stream.Send(preq); err != nil {
				t.Fatal(err)
			}
		}
		if _, err = stream.CloseAndRecv(); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("key-%d", i)
		stream, err := client.GetBlockStream(context.Background(), &spb.GetBlockStreamRequest{Key: key})
		if err != nil {
			t.Fatal(err)
		}
		buff := make([]byte, 0, len(testContent))
		for {
			in, err := stream.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatal(err)
			}
			buff = append(buff, in.Chunk...)
		}
		if !bytes.Equal(buff, testContent) {
			t.Fatalf("expected %d bytes back for %s, got %d", len(testContent), key, len(buff))
		}
	}

	shutdown()
	wait()
}

func TestBridgeOverStore(t *testing.T) {
	logger := log.Discarder()
	ctx := context.Background()
	tdir, err := ioutil.TempDir("/tmp", "TestBridgeOverStore")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tdir)

	store, err := storeserver.NewDiskStore(logger, tdir)
	if err != nil {
		t.Fatal(err)
	}
	wait, shutdown, err := storeserver.Start(logger, 10779, store)
	if err != nil {
		t.Fatal(err)
	}

	conn, err := grpc.Dial("localhost:10779", grpc.WithInsecure())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	client := spb.NewStoreServiceClient(conn)
	filesys := bridgeserver.NewBridgeFS(logger, client)

	content := []byte("hello, store")

	var node fuse.NodeID
	{
		req := &fuse.CreateRequest{Name: "greeting", Mode: 0644}
		req.Node = fuse.RootID
		var resp fuse.CreateResponse
		if err := filesys.Create(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		node = resp.Node
	}
	{
		req := &fuse.WriteRequest{Data: content}
		req.Node = node
		var resp fuse.WriteResponse
		if err := filesys.Write(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Size != len(content) {
			t.Fatalf("expected %d bytes written, got %d", len(content), resp.Size)
		}
	}
	{
		req := &fuse.ReadRequest{Size: 4096}
		req.Node = node
		var resp fuse.ReadResponse
		if err := filesys.Read(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(resp.Data, content) {
			t.Fatalf("expected %q, got %q", content, resp.Data)
		}
	}

	// A second mount of the same store sees the write; the state lives
	// server-side.
	remount := bridgeserver.NewBridgeFS(logger, client)
	{
		req := &fuse.LookupRequest{Name: "greeting"}
		req.Node = fuse.RootID
		var resp fuse.LookupResponse
		if err := remount.Lookup(ctx, req, &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Attr.Size != uint64(len(content)) {
			t.Fatalf("expected size %d, got %d", len(content), resp.Attr.Size)
		}
	}

	{
		req := &fuse.RemoveRequest{Name: "greeting"}
		req.Node = fuse.RootID
		if err := filesys.Remove(ctx, req); err != nil {
			t.Fatal(err)
		}
	}

	_, err = client.GetBlock(ctx, &spb.GetBlockRequest{Key: "greeting"})
	if err == nil {
		t.Fatal("expected an error reading a removed block")
	}
	if !strings.HasSuffix(err.Error(), "no such block") {
		t.Fatalf("expected err '%s', got '%s'", "no such block", err.Error())
	}

	shutdown()
	wait()
}

// The helpers below play the kernel half of /dev/fuse over a socketpair,
// writing raw wire messages and parsing the raw replies.

const (
	wireOpLookup = 1
	wireOpRead   = 15
	wireOpInit   = 26

	wireInHeaderLen  = 40
	wireOutHeaderLen = 16
)

type wireReply struct {
	unique  uint64
	errno   int32
	payload []byte
}

type wireKernel struct {
	t *testing.T
	f *os.File
}

func (k *wireKernel) send(opcode uint32, unique, nodeid uint64, payload []byte) {
	buf := make([]byte, wireInHeaderLen+len(payload))
	le := binary.LittleEndian
	le.PutUint32(buf[0:], uint32(len(buf)))
	le.PutUint32(buf[4:], opcode)
	le.PutUint64(buf[8:], unique)
	le.PutUint64(buf[16:], nodeid)
	copy(buf[wireInHeaderLen:], payload)
	if _, err := k.f.Write(buf); err != nil {
		k.t.Fatalf("wire kernel: write: %v", err)
	}
}

func (k *wireKernel) recv() wireReply {
	buf := make([]byte, 1<<20)
	n, err := k.f.Read(buf)
	if err != nil {
		k.t.Fatalf("wire kernel: read: %v", err)
	}
	if n < wireOutHeaderLen {
		k.t.Fatalf("wire kernel: reply too short: %d bytes", n)
	}
	le := binary.LittleEndian
	return wireReply{
		errno:   int32(le.Uint32(buf[4:])),
		unique:  le.Uint64(buf[8:]),
		payload: append([]byte(nil), buf[wireOutHeaderLen:n]...),
	}
}

func TestBridgeOverWire(t *testing.T) {
	logger := log.Discarder()
	tdir, err := ioutil.TempDir("/tmp", "TestBridgeOverWire")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tdir)

	store, err := storeserver.NewDiskStore(logger, tdir)
	if err != nil {
		t.Fatal(err)
	}
	wait, shutdown, err := storeserver.Start(logger, 10779, store)
	if err != nil {
		t.Fatal(err)
	}

	conn, err := grpc.Dial("localhost:10779", grpc.WithInsecure())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	client := spb.NewStoreServiceClient(conn)

	content := []byte("over the wire\n")
	if _, err := client.PutBlock(context.Background(), &spb.PutBlockRequest{Key: "wire", Data: content}); err != nil {
		t.Fatal(err)
	}

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_SEQPACKET, 0)
	if err != nil {
		t.Fatal(err)
	}
	k := &wireKernel{t: t, f: os.NewFile(uintptr(fds[0]), "wire-kernel")}
	dev := os.NewFile(uintptr(fds[1]), "/dev/fuse")

	fconn, err := fuse.NewConn(dev)
	if err != nil {
		t.Fatal(err)
	}
	served := make(chan error, 1)
	go func() {
		served <- fs.Serve(fconn, bridgeserver.NewBridgeFS(logger, client))
	}()

	le := binary.LittleEndian
	{
		payload := make([]byte, 16)
		le.PutUint32(payload[0:], 7)
		le.PutUint32(payload[4:], 28)
		le.PutUint32(payload[8:], 65536)
		k.send(wireOpInit, 1, 0, payload)
		rep := k.recv()
		if rep.errno != 0 {
			t.Fatalf("init failed with errno %d", rep.errno)
		}
		if major, minor := le.Uint32(rep.payload[0:]), le.Uint32(rep.payload[4:]); major != 7 || minor != 28 {
			t.Fatalf("negotiated %d.%d, expected 7.28", major, minor)
		}
	}

	var node uint64
	{
		k.send(wireOpLookup, 2, 1, append([]byte("wire"), '\x00'))
		rep := k.recv()
		if rep.unique != 2 {
			t.Fatalf("lookup reply unique = %d, want 2", rep.unique)
		}
		if rep.errno != 0 {
			t.Fatalf("lookup failed with errno %d", rep.errno)
		}
		node = le.Uint64(rep.payload[0:])
		if node == 1 {
			t.Fatalf("lookup handed out the root node id")
		}
	}

	{
		payload := make([]byte, 40)
		le.PutUint64(payload[0:], node)
		le.PutUint32(payload[16:], 4096)
		k.send(wireOpRead, 3, node, payload)
		rep := k.recv()
		if rep.errno != 0 {
			t.Fatalf("read failed with errno %d", rep.errno)
		}
		if !bytes.Equal(rep.payload, content) {
			t.Fatalf("expected %q over the wire, got %q", content, rep.payload)
		}
	}

	{
		k.send(wireOpLookup, 4, 1, append([]byte("missing"), '\x00'))
		rep := k.recv()
		if want := -int32(fuse.ENOENT); rep.errno != want {
			t.Fatalf("lookup errno = %d, want %d", rep.errno, want)
		}
	}

	k.f.Close()
	select {
	case err := <-served:
		if err != nil {
			t.Fatalf("serve returned: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the kernel side closed")
	}

	shutdown()
	wait()
}
