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
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/kawafs/kawa/pkg/cli"
	"github.com/kawafs/kawa/pkg/fuse"
	"github.com/kawafs/kawa/pkg/fuse/fs"
	"github.com/kawafs/kawa/pkg/log"
)

var VaultServerCmd = &cli.Command{
	Run:       vaultServerCmdRun,
	UsageLine: "vault-server [-db <path>] [-passphrase pass] [-unmount] [logger flags] <mount-point>",
	Short:     "serve an encrypted local file system",
	Long: `
Vault server mounts an encrypted volume backed by a single local
database file. File contents are sealed with a key derived from the
vault passphrase; the key itself is never stored. A fresh database is
initialized on first use and assigned a pronounceable volume ID, which
is also stamped onto the database file as an extended attribute.

The passphrase is read from the terminal unless -passphrase is given.
Opening a vault with the wrong passphrase fails up front, before the
mount.
    `,
}

func vaultServerCmdRun(cmd *cli.Command, args []string) error {
	var (
		dbFlag         string
		passphraseFlag string
		unmountFlag    bool

		logDirFlag         string
		suppressStderrFlag bool
		logModeFlag        logMode
		logFilterFlag      logFilter
		backtracePointFlag backtracePoints
	)

	cmd.FlagSet.StringVar(&dbFlag, "db", "kawa-vault.db",
		"Path of the vault database file")
	cmd.FlagSet.StringVar(&passphraseFlag, "passphrase", "",
		"Vault passphrase (prompted for when omitted)")
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
		if err := fuse.Unmount(mountPoint); err != nil {
			logger.Error(err.Error())
			return err
		}
		logger.Infof("unmounted point: %s", mountPoint)
		return nil
	}

	passphrase := passphraseFlag
	if passphrase == "" {
		var err error
		passphrase, err = promptPassphrase()
		if err != nil {
			return err
		}
	}

	vault, err := openVault(logger, dbFlag, passphrase)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	defer vault.Close()

	conn, err := fuse.Mount(
		mountPoint,
		fuse.FSName("kawa-vault"),
		fuse.Subtype("vaultfs"),
		fuse.VolumeName(fmt.Sprintf("Kawa %s", vault.volumeID)),
		fuse.DefaultPermissions(),
	)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	defer conn.Close()

	logger.Infof("mounted vault %s at %s", vault.volumeID, mountPoint)

	if err := fs.Serve(conn, newVaultFS(logger, vault)); err != nil {
		return err
	}

	return nil
}

func promptPassphrase() (string, error) {
	fmt.Fprint(os.Stderr, "vault passphrase: ")
	passphrase, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if len(passphrase) == 0 {
		return "", errors.New("empty passphrase")
	}
	return string(passphrase), nil
}
