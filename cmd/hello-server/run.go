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
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/kawafs/kawa/pkg/cli"
	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/fuse/fs"
	"github.com/kawafs/kawa/pkg/log"
)

var HelloServerCmd = &cli.Command{
	Run:       helloServerCmdRun,
	UsageLine: "hello-server [-filename name] [-contents text] [-unmount] [logger flags] <mount-point>",
	Short:     "serve a single read-only hello file",
	Long: `
Hello server mounts the smallest possible kawa file system: a read-only
volume holding exactly one file. The file's name and contents come from
the -filename and -contents flags.

It exists to demonstrate the file system interface end to end, and to
give a mountable target for manual poking that has no storage or
network dependencies whatsoever.
    `,
}

func helloServerCmdRun(cmd *cli.Command, args []string) error {
	var (
		filenameFlag string
		contentsFlag string
		unmountFlag  bool

		logDirFlag         string
		suppressStderrFlag bool
		logModeFlag        logMode
		logFilterFlag      logFilter
		backtracePointFlag backtracePoints
	)
	cmd.FlagSet.StringVar(&filenameFlag, "filename", "hello",
		"Name the file appears under")
	cmd.FlagSet.StringVar(&contentsFlag, "contents", "hello, world\n",
		"Contents of the file")
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

	var writer io.Writer = ioutil.Discard
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
		if err := fuse.Unmount(mountPoint); err != nil {
			logger.Error(err.Error())
			return err
		}
		logger.Infof("unmounted point: %s", mountPoint)
		return nil
	}

	conn, err := fuse.Mount(
		mountPoint,
		fuse.FSName("kawa-hello"),
		fuse.Subtype("hellofs"),
		fuse.VolumeName("Kawa"),
		fuse.ReadOnly(),
	)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	defer conn.Close()

	logger.Infof("mounted point: %s", mountPoint)

	filesys := newHelloFS(logger, filenameFlag, []byte(contentsFlag))
	if err := fs.Serve(conn, filesys); err != nil {
		return err
	}

	return nil
}
