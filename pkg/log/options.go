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

package log

import (
	"io"
	"runtime"
)

// Flag is a bitmask controlling what a Logger prepends to each statement.
type Flag int

const (
	// Lmode prefixes the statement with the mode tag (I, W, E, F or D).
	Lmode Flag = 1 << iota
	// Ldate prints the date as yymmdd.
	Ldate
	// Ltime prints the time as hh:mm:ss.
	Ltime
	// Lmicroseconds extends Ltime with microsecond resolution.
	Lmicroseconds
	// LUTC uses UTC rather than the local time zone.
	LUTC
	// Lshortfile prints the final element of the caller's file name, with
	// line number.
	Lshortfile
	// Llongfile prints the caller's full file path, with line number.
	// Overrides Lshortfile.
	Llongfile

	// LstdFlags produces headers of the form:
	//
	//   I180419 06:33:04.606396 server.go:42] message
	LstdFlags = Lmode | Ldate | Ltime | Lmicroseconds | Lshortfile
)

// option configures a Logger during construction.
type option func(l *Logger)

// Writer directs the Logger's output to w. Writers shared across goroutines
// should be wrapped with SynchronizedWriter.
func Writer(w io.Writer) option {
	return func(l *Logger) {
		l.w = w
	}
}

// Flags sets the Logger's header flags.
func Flags(f Flag) option {
	return func(l *Logger) {
		l.flag = f
	}
}

// SkipBasePath elides a path prefix from the file names printed under
// Llongfile. Given an explicit base, that prefix is elided. Called with no
// arguments it computes the longest directory prefix shared between the
// caller's source file and this package's, which for a caller inside the
// same repository is the repository root.
func SkipBasePath(base ...string) option {
	var prefix string
	switch {
	case len(base) > 0:
		prefix = base[0]
		if prefix != "" && prefix[len(prefix)-1] != '/' {
			prefix += "/"
		}
	default:
		_, here, _, hok := runtime.Caller(0)
		_, there, _, tok := runtime.Caller(1)
		if hok && tok {
			prefix = commonDir(here, there)
		}
	}
	return func(l *Logger) {
		l.basePath = prefix
	}
}

// commonDir returns the longest shared directory prefix of two file paths,
// trailing separator included. Empty if the paths share no directory.
func commonDir(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	shared := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			break
		}
		if a[i] == '/' {
			shared = i + 1
		}
	}
	return a[:shared]
}
