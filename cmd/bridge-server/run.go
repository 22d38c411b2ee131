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
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/kawafs/kawa/pkg/cli"
	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/fuse/fs"
	"github.com/kawafs/kawa/pkg/log"
	spb "github.com/kawafs/kawa/pkg/pb/store"
	"google.golang.org/grpc"
)

var BridgeServerCmd = &cli.Command{
	Run:       bridgeServerCmdRun,
	UsageLine: "bridge-server [-store-server addr] [-unmount] [logger flags] <mount-point>",
	Short:     "mount a remote block store as a file system",
	Long: `
Bridge server mounts a store server's blocks as files in a single flat
directory. Listing the directory lists the store's keys, reads and
writes move whole blocks, and blocks past the streaming threshold
travel over the chunked stream RPCs.

The store keeps nothing but block contents, so file attributes are
synthesized on this side and permission or timestamp changes do not
survive.
    `,
}

func bridgeServerCmdRun(cmd *cli.Command, args []string) error {
	var (
		storeServerFlag string
		unmountFlag     bool

		logDirFlag         string
		suppressStderrFlag bool
		logModeFlag        logMode
		logFilterFlag      logFilter
		backtracePointFlag backtracePoints
	)

	cmd.FlagSet.StringVar(&storeServerFlag, "store-server", "localhost:10779",
		"Address of the store server [host:port]")
	cmd.FlagSet.BoolVar(&unmountFlag, "unmount", false,
		"Unmount the file system at the specified directory")
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

	if cmd.FlagSet.NArg() > 1 {
		return cli.CmdParseError(
			errors.New(fmt.Sprintf("unrecognized arguments: %v", cmd.FlagSet.Args()[1:])))
	}
	if cmd.FlagSet.NArg() == 0 {
		return cli.CmdParseError(errors.New("unspecified mount-point"))
	}
	mountPoint := cmd.FlagSet.Arg(0)

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

	if unmountFlag {
		if err := unmount(logger, mountPoint); err != nil {
			logger.Error(err.Error())
			return err
		}

		return nil
	}

	// The connection outlives the serve loop; every handler call rides it.
	storeConn, err := grpc.Dial(storeServerFlag, grpc.WithInsecure())
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	defer storeConn.Close()

	conn, err := mount(logger, mountPoint)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	defer conn.Close()

	filesys := NewBridgeFS(logger, spb.NewStoreServiceClient(storeConn))
	if err := fs.Serve(conn, filesys); err != nil {
		return err
	}

	return nil
}

func unmount(logger *log.Logger, mountPoint string) error {
	if err := fuse.Unmount(mountPoint); err != nil {
		return err
	}
	logger.Infof("unmounted point: %s", mountPoint)
	return nil
}

func mount(logger *log.Logger, mountPoint string) (*fuse.Conn, error) {
	conn, err := fuse.Mount(
		mountPoint,
		fuse.FSName("kawafs"),
		fuse.Subtype("bridgefs"),
		fuse.VolumeName("Kawa"),
		fuse.NoAppleDouble(),
		fuse.NoAppleXattr(),
		fuse.MaxReadahead(128*1024),
		fuse.AsyncRead(),
	)
	if err != nil {
		return nil, err
	}

	logger.Infof("mounted point: %s", mountPoint)
	return conn, nil
}
