// See the file LICENSE for copyright and licensing information.

// FUSE service loop: handshake, request dispatch, in-flight
// bookkeeping, bounded teardown.

package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/kawafs/kawa/pkg/fuse"
)

// A session moves through these states exactly once, in order.
// Negotiating begins with the first read from the kernel channel;
// Active begins when the handshake reply is on the wire; Closing
// begins on a channel error or unmount; Closed once in-flight work
// has drained or been abandoned.
type sessionState int

const (
	sessionUnstarted sessionState = iota
	sessionNegotiating
	sessionActive
	sessionClosing
	sessionClosed
)

func (s sessionState) String() string {
	switch s {
	case sessionUnstarted:
		return "unstarted"
	case sessionNegotiating:
		return "negotiating"
	case sessionActive:
		return "active"
	case sessionClosing:
		return "closing"
	case sessionClosed:
		return "closed"
	}
	return "invalid"
}

// DefaultDrainTimeout bounds how long Serve waits for in-flight
// handlers once the session starts closing. The protocol does not
// prescribe a value; this one keeps unmount from hanging on a stuck
// handler while still letting disk-bound work finish.
const DefaultDrainTimeout = 10 * time.Second

type Config struct {
	// Function to send debug log messages to. If nil, use fuse.Debug.
	//
	// The messages are arbitrary values with a String method, ready
	// for %v. The function must not retain them past the call.
	Debug func(msg interface{})

	// DrainTimeout bounds the wait for in-flight handlers during
	// teardown. Handlers still running at the deadline are abandoned:
	// they keep running, but their replies are discarded. Zero means
	// DefaultDrainTimeout.
	DrainTimeout time.Duration
}

// New returns a server ready to serve this kernel FUSE connection.
//
// Config may be nil.
func New(conn *fuse.Conn, config *Config) *Server {
	s := &Server{
		conn:         conn,
		req:          map[fuse.RequestID]*inflightRequest{},
		drainTimeout: DefaultDrainTimeout,
	}
	if config != nil {
		s.debug = config.Debug
		if config.DrainTimeout > 0 {
			s.drainTimeout = config.DrainTimeout
		}
	}
	if s.debug == nil {
		s.debug = fuse.Debug
	}
	return s
}

// A Server dispatches kernel requests read from one fuse.Conn to one
// file system implementation.
type Server struct {
	// set in New
	conn         *fuse.Conn
	debug        func(msg interface{})
	drainTimeout time.Duration

	// set once at Serve time
	fs FS

	// state, protected by meta
	meta  sync.Mutex
	state sessionState
	req   map[fuse.RequestID]*inflightRequest

	// Used to wait for handler goroutines during teardown.
	wg sync.WaitGroup
}

// An inflightRequest is the bookkeeping for one request between
// decode and reply. The operation kind is the concrete type of
// request; cancel is nilled out once an interrupt has fired so the
// flag cannot be set twice.
type inflightRequest struct {
	request fuse.Request
	start   time.Time
	cancel  func()
}

// Serve dispatches incoming kernel requests to fs until the kernel
// channel fails or the file system is unmounted, then drains
// in-flight handlers for at most the configured timeout. It returns
// nil after a clean unmount.
//
// The caller remains responsible for closing the connection.
func (s *Server) Serve(fs FS) error {
	s.fs = fs

	s.setState(sessionNegotiating)
	err := s.run()

	s.setState(sessionClosing)
	if abandoned, oldest := s.drain(); abandoned > 0 {
		s.debug(logAbandonedRequests{Count: abandoned, Oldest: oldest})
	}
	s.setState(sessionClosed)

	if err == io.EOF {
		// Unmounted; a clean end of session.
		return nil
	}
	return err
}

// Serve serves a FUSE connection with the default settings. See
// Server.Serve.
func Serve(c *fuse.Conn, fs FS) error {
	return New(c, nil).Serve(fs)
}

// run reads and dispatches requests until the channel fails. The
// handshake is handled inline, before any handler goroutine exists,
// so the negotiated protocol version is fixed before anything can
// read it.
func (s *Server) run() error {
	for {
		req, err := s.conn.ReadRequest()
		if err != nil {
			if err == io.EOF && s.currentState() == sessionNegotiating {
				return fuse.ErrClosedWithoutInit
			}
			return err
		}

		if s.currentState() == sessionNegotiating {
			init, ok := req.(*fuse.InitRequest)
			if !ok {
				req.RespondError(fuse.ESTALE)
				return fmt.Errorf("fuse: missing init, got %T", req)
			}
			if err := s.handshake(init); err != nil {
				return err
			}
			s.setState(sessionActive)
			continue
		}

		if _, ok := req.(*fuse.InitRequest); ok {
			// The kernel sends exactly one init per session; a second
			// one means the two sides no longer agree on anything.
			req.RespondError(fuse.ESTALE)
			return errors.New("fuse: second init on an active session")
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serve(req)
		}()
	}
}

// handshake answers the init request that opens every session. The
// advertised version is the lower of what the kernel asked for and
// what this library speaks; the advertised flags never include one
// the kernel did not offer.
func (s *Server) handshake(r *fuse.InitRequest) error {
	if r.Kernel.LT(fuse.MinProtocol) {
		r.RespondError(fuse.Errno(syscall.EPROTO))
		s.conn.Close()
		return &fuse.OldVersionError{
			Kernel:     r.Kernel,
			LibraryMin: fuse.MinProtocol,
		}
	}

	proto := fuse.MaxProtocol
	if r.Kernel.LT(proto) {
		// Kernel speaks an older dialect.
		proto = r.Kernel
	}

	resp := &fuse.InitResponse{
		Library:      proto,
		MaxReadahead: s.conn.MaxReadahead(),
		Flags:        (fuse.InitBigWrites | s.conn.Features()) & r.Flags,
		MaxWrite:     fuse.MaxWrite,
	}
	s.debug(logNegotiated{Kernel: r.Kernel, Library: proto})
	r.Respond(resp)
	return nil
}

// drain waits for handler goroutines, up to the drain timeout.
// Entries still in the table afterwards are abandoned: removing them
// makes the late done calls return false, which keeps the stale
// replies off the wire. It returns the number of abandoned requests
// and the age of the oldest one.
func (s *Server) drain() (int, time.Duration) {
	idle := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(idle)
	}()
	select {
	case <-idle:
	case <-time.After(s.drainTimeout):
	}

	s.meta.Lock()
	defer s.meta.Unlock()
	abandoned := len(s.req)
	var oldest time.Duration
	for id, ir := range s.req {
		if age := time.Since(ir.start); age > oldest {
			oldest = age
		}
		delete(s.req, id)
	}
	return abandoned, oldest
}

func (s *Server) currentState() sessionState {
	s.meta.Lock()
	defer s.meta.Unlock()
	return s.state
}

func (s *Server) setState(state sessionState) {
	s.meta.Lock()
	s.state = state
	s.meta.Unlock()
}

type handlerPanickedError struct {
	Request interface{}
	Err     interface{}
}

var _ error = handlerPanickedError{}

func (h handlerPanickedError) Error() string {
	return fmt.Sprintf("handler panicked: %v", h.Err)
}

var _ fuse.ErrorNumber = handlerPanickedError{}

func (h handlerPanickedError) Errno() fuse.Errno {
	if err, ok := h.Err.(fuse.ErrorNumber); ok {
		return err.Errno()
	}
	return fuse.DefaultErrno
}

// handlerTerminatedError happens when a handler terminates itself
// with runtime.Goexit. This is most commonly because of incorrect use
// of testing.TB.FailNow, typically via t.Fatal.
type handlerTerminatedError struct {
	Request interface{}
}

var _ error = handlerTerminatedError{}

func (h handlerTerminatedError) Error() string {
	return "handler terminated (called runtime.Goexit)"
}

var _ fuse.ErrorNumber = handlerTerminatedError{}

func (h handlerTerminatedError) Errno() fuse.Errno {
	return fuse.DefaultErrno
}

type logIncomingRequest struct {
	Request fuse.Request
}

func (m logIncomingRequest) String() string {
	return fmt.Sprintf("<- %s", m.Request)
}

type logReply struct {
	ID    fuse.RequestID
	Reply interface{}
}

func (m logReply) String() string {
	return fmt.Sprintf("-> %v %v", m.ID, m.Reply)
}

type logDuplicateRequestID struct {
	New fuse.Request
	Old fuse.Request
}

func (m logDuplicateRequestID) String() string {
	return fmt.Sprintf("duplicate request id: new %v, old %v", m.New, m.Old)
}

type logHandlerPanic struct {
	Request fuse.Request
	Err     interface{}
	Stack   string
}

func (m logHandlerPanic) String() string {
	return fmt.Sprintf("panic in handler for %v: %v\n%s", m.Request, m.Err, m.Stack)
}

type logAbandonedRequests struct {
	Count  int
	Oldest time.Duration
}

func (m logAbandonedRequests) String() string {
	return fmt.Sprintf("session closed with %d requests still in flight (oldest %v)", m.Count, m.Oldest)
}

type logNegotiated struct {
	Kernel  fuse.Protocol
	Library fuse.Protocol
}

func (m logNegotiated) String() string {
	return fmt.Sprintf("negotiated protocol %v (kernel offered %v)", m.Library, m.Kernel)
}

// serve runs one request through its handler and writes the reply.
func (s *Server) serve(r fuse.Request) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ir := &inflightRequest{
		request: r,
		start:   time.Now(),
		cancel:  cancel,
	}

	s.debug(logIncomingRequest{Request: r})

	hdr := r.Hdr()
	s.meta.Lock()
	if old, found := s.req[hdr.ID]; found {
		// The kernel is not supposed to reuse an ID while it is in
		// flight, but OSXFUSE has been seen doing it. Dropping the
		// stale entry keeps the table invariant; the old request can
		// no longer be interrupted or abandoned individually.
		s.debug(logDuplicateRequestID{New: r, Old: old.request})
	}
	s.req[hdr.ID] = ir
	s.meta.Unlock()

	// Call this before replying. After the reply is on the wire the
	// kernel is free to reuse the ID, so the entry must be gone first.
	// A false return means teardown abandoned this request; its reply
	// must stay unwritten.
	done := func(reply interface{}) bool {
		s.debug(logReply{ID: hdr.ID, Reply: reply})
		s.meta.Lock()
		defer s.meta.Unlock()
		if s.req[hdr.ID] != ir {
			return false
		}
		delete(s.req, hdr.ID)
		return true
	}

	var responded bool
	defer func() {
		if rec := recover(); rec != nil {
			const size = 1 << 16
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			s.debug(logHandlerPanic{Request: r, Err: rec, Stack: string(buf)})
			err := handlerPanickedError{Request: r, Err: rec}
			if done(err) {
				r.RespondError(err)
			}
			return
		}

		if !responded {
			err := handlerTerminatedError{Request: r}
			if done(err) {
				r.RespondError(err)
			}
		}
	}()

	if err := s.handleRequest(ctx, r, done); err != nil {
		if err == context.Canceled {
			select {
			case <-ctx.Done():
				// The cancellation came from an interrupt request, so
				// EINTR tells the calling process the truth.
				err = fuse.EINTR
			default:
			}
		}
		if done(err) {
			r.RespondError(err)
		}
	}

	// disarm runtime.Goexit protection
	responded = true
}

// handleRequest either calls done and writes the reply itself, or
// returns the handler's error for serve to encode. done reports
// whether the reply is still wanted.
func (s *Server) handleRequest(ctx context.Context, r fuse.Request, done func(reply interface{}) bool) error {
	switch r := r.(type) {
	default:
		// Note: To FUSE, ENOSYS means "this server never implements
		// this request." It would be inappropriate to return ENOSYS
		// for other operations in this switch that might only be
		// unavailable in some contexts, not all.
		return fuse.ENOSYS

	// Session operations.
	case *fuse.StatfsRequest:
		resp := &fuse.StatfsResponse{}
		if err := s.fs.Statfs(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.DestroyRequest:
		s.fs.Destroy()
		if done(nil) {
			r.Respond()
		}
		return nil

	// Node operations.
	case *fuse.LookupRequest:
		resp := &fuse.LookupResponse{}
		if err := s.fs.Lookup(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.ForgetRequest:
		s.fs.Forget(r)
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.BatchForgetRequest:
		// Unfolded into one callback per node so the handler surface
		// stays a single forget method.
		hdr := r.Hdr()
		for _, item := range r.Forget {
			s.fs.Forget(&fuse.ForgetRequest{
				Header: fuse.Header{
					Conn: hdr.Conn,
					ID:   hdr.ID,
					Node: item.NodeID,
					Uid:  hdr.Uid,
					Gid:  hdr.Gid,
					Pid:  hdr.Pid,
				},
				N: item.N,
			})
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.GetattrRequest:
		resp := &fuse.GetattrResponse{}
		if err := s.fs.Getattr(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.SetattrRequest:
		resp := &fuse.SetattrResponse{}
		if err := s.fs.Setattr(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.ReadlinkRequest:
		target, err := s.fs.Readlink(ctx, r)
		if err != nil {
			return err
		}
		if done(target) {
			r.Respond(target)
		}
		return nil

	case *fuse.SymlinkRequest:
		resp := &fuse.SymlinkResponse{}
		if err := s.fs.Symlink(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.MknodRequest:
		resp := &fuse.LookupResponse{}
		if err := s.fs.Mknod(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.MkdirRequest:
		resp := &fuse.MkdirResponse{}
		if err := s.fs.Mkdir(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.RemoveRequest:
		if err := s.fs.Remove(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.RenameRequest:
		if err := s.fs.Rename(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.LinkRequest:
		resp := &fuse.LookupResponse{}
		if err := s.fs.Link(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.AccessRequest:
		if err := s.fs.Access(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.SetxattrRequest:
		if err := s.fs.Setxattr(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.GetxattrRequest:
		resp := &fuse.GetxattrResponse{}
		if err := s.fs.Getxattr(ctx, r, resp); err != nil {
			return err
		}
		if r.Size != 0 && uint32(len(resp.Xattr)) > r.Size {
			return fuse.ERANGE
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.ListxattrRequest:
		resp := &fuse.ListxattrResponse{}
		if err := s.fs.Listxattr(ctx, r, resp); err != nil {
			return err
		}
		if r.Size != 0 && uint32(len(resp.Xattr)) > r.Size {
			return fuse.ERANGE
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.RemovexattrRequest:
		if err := s.fs.Removexattr(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	// Handle operations.
	case *fuse.OpenRequest:
		resp := &fuse.OpenResponse{}
		if err := s.fs.Open(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.CreateRequest:
		resp := &fuse.CreateResponse{}
		if err := s.fs.Create(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.ReadRequest:
		resp := &fuse.ReadResponse{}
		if err := s.fs.Read(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.WriteRequest:
		resp := &fuse.WriteResponse{}
		if err := s.fs.Write(ctx, r, resp); err != nil {
			return err
		}
		if done(resp) {
			r.Respond(resp)
		}
		return nil

	case *fuse.FlushRequest:
		if err := s.fs.Flush(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.ReleaseRequest:
		if err := s.fs.Release(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.FsyncRequest:
		if err := s.fs.Fsync(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.ExchangeDataRequest:
		if err := s.fs.ExchangeData(ctx, r); err != nil {
			return err
		}
		if done(nil) {
			r.Respond()
		}
		return nil

	case *fuse.InterruptRequest:
		s.meta.Lock()
		if target, ok := s.req[r.IntrID]; ok && target.cancel != nil {
			target.cancel()
			target.cancel = nil
		}
		s.meta.Unlock()
		if done(nil) {
			r.Respond()
		}
		return nil
	}
}

// HandleRead answers a read request out of data, which the caller
// treats as the handle's entire content. The slice assigned to
// resp.Data honors req.Offset and req.Size and keeps its true length;
// it is never padded.
func HandleRead(req *fuse.ReadRequest, resp *fuse.ReadResponse, data []byte) {
	if req.Offset >= int64(len(data)) {
		data = nil
	} else {
		data = data[req.Offset:]
	}
	if len(data) > req.Size {
		data = data[:req.Size]
	}
	resp.Data = data
}
