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

// Package log implements modal execution logs for the kawa servers. A
// statement is logged at one of five modes (info, warn, error, fatal, debug)
// and filtered against a process-wide mode mask, overridable per file. The
// kawa commands surface this through a shared set of flags:
//
//     $ kawa <command> -help
//       ...
//       -log-dir string
//             Write log files to the specified directory.
//       -suppress-stderr
//             Suppress standard error logging.
//       -log-mode value
//             Log mode for logs emitted globally (can be overridden using -log-filter).
//       -log-filter value
//             Comma-separated list of fname.go:mode settings for file-filtered logging.
//       -log-backtrace-at value
//             Comma-separated list of fname.go:N settings to emit backtraces.
//
//     $ kawa store-server -log-mode 'info|warn|error' \
//                         -log-dir /var/log/kawa \
//                         -log-filter gdrive.go:debug \
//                         -log-backtrace-at server.go:142
//
// The filters live in process-wide state rather than in the Logger, so a
// running server can also reconfigure them at runtime (through an RPC or a
// signal handler) via SetGlobalLogMode, SetFileLogMode and SetTracePoint.
//
// Basic use:
//
//      logger := log.New()
//      logger.Info("hello, world")
//
// Loggers are configured at construction with variadic options. A server
// writing synchronized, rotated logs while mirroring to stderr:
//
//      writer := log.MultiWriter(os.Stderr,
//              log.LogRotationWriter("/var/log/kawa", 50<<20 /* 50 MiB */))
//      writer = log.SynchronizedWriter(writer)
//
//      logger := log.New(
//              log.Writer(writer),
//              log.Flags(log.Lmode|log.Ldate|log.Ltime|log.Llongfile),
//              log.SkipBasePath())
package log
