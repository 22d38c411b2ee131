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
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"github.com/kawafs/kawa/pkg/cli"
	"github.com/kawafs/kawa/pkg/log"
	spb "github.com/kawafs/kawa/pkg/pb/store"
	"github.com/soheilhy/cmux"
	"google.golang.org/grpc"
)

var StoreServerCmd = &cli.Command{
	Run:       storeServerCmdRun,
	UsageLine: "store-server [-port port] [-store-path path] [-gdrive] [logger flags]",
	Short:     "serve a networked block store",
	Long: `
Store server exposes a flat block store over grpc: get, put, delete and
key listing, with chunked streaming variants of get and put for blocks
too big to sit comfortably in single messages. Browser clients reach the
same service through grpc-web; both protocols share one port.

Blocks live in a local directory by default. With -gdrive they are kept
in the authorized account's Google Drive instead; the first run prints
an authorization URL and caches the resulting token alongside the
credentials file.
    `,
}

func storeServerCmdRun(cmd *cli.Command, args []string) error {
	var (
		portFlag      int
		storePathFlag string
		gdriveFlag    bool

		logDirFlag         string
		suppressStderrFlag bool
		logModeFlag        logMode
		logFilterFlag      logFilter
		backtracePointFlag backtracePoints
	)

	cmd.FlagSet.IntVar(&portFlag, "port", 10779,
		"Port which the server will run on")
	cmd.FlagSet.StringVar(&storePathFlag, "store-path", "kawa-store",
		"Directory the disk-backed store keeps blocks in")
	cmd.FlagSet.BoolVar(&gdriveFlag, "gdrive", false,
		"Keep blocks in Google Drive instead of the local disk")
	cmd.FlagSet.StringVar(&logDirFlag, "log-dir", "",
		"Write log files to the specified directory")
	cmd.FlagSet.BoolVar(&suppressStderrFlag, "suppress-stderr", false,
		"Suppress standard error logging")
	cmd.FlagSet.Var(&logModeFlag, "log-mode",
		"Log mode for logs emitted globally (can be overridden using -log-filter)")
	cmd.FlagSet.Var(&logFilterFlag, "log-filter",
		"Comma-separated list of fname.go:mode settings for file-filtered logging")
	cmd.FlagSet.Var(&backtracePointFlag, "log-backtrace-at",
		"Comma-separated list of fname.go:N settings to emit backtraces")

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	if cmd.FlagSet.NArg() > 0 {
		return cli.CmdParseError(
			errors.New(fmt.Sprintf("unrecognized arguments: %v", cmd.FlagSet.Args())))
	}

	if logModeFlag.set {
		log.SetGlobalLogMode(log.Mode(logModeFlag.m))
	}
	for _, flm := range logFilterFlag {
		log.SetFileLogMode(flm.fname, flm.fmode)
	}
	for _, tp := range backtracePointFlag {
		log.SetTracePoint(tp)
	}

	writer := ioutil.Discard
	if logDirFlag != "" {
		writer = log.LogRotationWriter(logDirFlag, 50<<20 /* 50 MiB */)
	}
	if !suppressStderrFlag {
		writer = log.MultiWriter(writer, os.Stderr)
	}
	writer = log.SynchronizedWriter(writer)
	logf := log.Ldate | log.Ltime | log.Lmicroseconds | log.Llongfile | log.LUTC | log.Lmode
	logger := log.New(log.Writer(writer), log.Flags(logf), log.SkipBasePath())

	var store Store
	if gdriveFlag {
		var err error
		store, err = newGoogleDriveStore(logger)
		if err != nil {
			logger.Error(err.Error())
			return err
		}
	} else {
		var err error
		store, err = NewDiskStore(logger, storePathFlag)
		if err != nil {
			logger.Error(err.Error())
			return err
		}
	}

	wait, shutdown, err := Start(logger, portFlag, store)
	if err != nil {
		return err
	}

	wait()
	shutdown()

	return nil
}

// Start brings up the store service on the given port and returns once the
// listener is live. The caller blocks on wait and runs shutdown when done;
// integration tests run servers in-process the same way.
func Start(logger *log.Logger, port int, store Store) (wait func(), shutdown func(), err error) {
	var wg sync.WaitGroup

	lis, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		logger.Errorf("failed to open TCP port: %v", err)
		return nil, nil, err
	}

	// Multiplex grpc and grpc-web over the same listener: first match
	// grpc's content-type, everything else is http.
	mux := cmux.New(lis)
	grpcL := mux.Match(cmux.HTTP2HeaderField("content-type", "application/grpc"))
	httpL := mux.Match(cmux.Any())

	grpcServer := grpc.NewServer()
	spb.RegisterStoreServiceServer(grpcServer, newStoreServer(logger, store))

	httpServer := http.Server{Handler: grpcweb.WrapServer(grpcServer)}

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Infof("serving RPC server on port: %d", port)
		if err := grpcServer.Serve(grpcL); err != nil {
			logger.Errorf("grpc server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Infof("serving HTTP server on port: %d", port)
		if err := httpServer.Serve(httpL); err != nil {
			logger.Errorf("http server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := mux.Serve(); err != nil {
			logger.Errorf("cmux server error: %v", err)
		}
	}()

	shutdown = func() {
		lis.Close()
		grpcServer.Stop()
		httpServer.Shutdown(context.Background())
	}

	return wg.Wait, shutdown, nil
}
