// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in licenses/BSD-golang.txt.

// Portions of this file are additionally subject to the following
// license and copyright.
//
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

// Portions of this code originated in the standard library 'log' package.

package log

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"
)

// Logger writes statements to an io.Writer, prefixing each with a header
// shaped by the configured flags. The zero value is not usable; construct
// with New.
type Logger struct {
	w        io.Writer
	flag     Flag
	basePath string // elided from file names under Llongfile
}

const newline = "\n"

// New returns a Logger writing to a synchronized os.Stderr with LstdFlags,
// reconfigured by the given options. The resulting header format is:
//
//   I180419 06:33:04.606396 server.go:42] message
func New(options ...option) *Logger {
	l := &Logger{
		w:    DefaultWriter(),
		flag: LstdFlags,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Discarder returns a Logger that discards all writes.
func Discarder() *Logger {
	return New(Writer(ioutil.Discard))
}

// Info logs to the INFO log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Info(v ...interface{}) {
	l.log(InfoMode, fmt.Sprintln(v...))
}

// Infof logs to the INFO log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(InfoMode, fmt.Sprintf(format+newline, v...))
}

// Warn logs to the WARN log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Warn(v ...interface{}) {
	l.log(WarnMode, fmt.Sprintln(v...))
}

// Warnf logs to the WARN log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(WarnMode, fmt.Sprintf(format+newline, v...))
}

// Error logs to the ERROR log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Error(v ...interface{}) {
	l.log(ErrorMode, fmt.Sprintln(v...))
}

// Errorf logs to the ERROR log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(ErrorMode, fmt.Sprintf(format+newline, v...))
}

// Fatal logs to the FATAL log and exits with status 255. Arguments are
// handled in the manner of fmt.Println. Fatal statements bypass mode
// filtering.
func (l *Logger) Fatal(v ...interface{}) {
	l.log(FatalMode, fmt.Sprintln(v...))
	os.Exit(255)
}

// Fatalf logs to the FATAL log and exits with status 255. Arguments are
// handled in the manner of fmt.Printf.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.log(FatalMode, fmt.Sprintf(format+newline, v...))
	os.Exit(255)
}

// Debug logs to the DEBUG log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Debug(v ...interface{}) {
	l.log(DebugMode, fmt.Sprintln(v...))
}

// Debugf logs to the DEBUG log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log(DebugMode, fmt.Sprintf(format+newline, v...))
}

// log is called only from the exported Logger.{Info,Warn,Error,Fatal,Debug}{,f}
// wrappers; a caller depth of two reaches past the wrapper to the user's
// statement.
func (l *Logger) log(lmode Mode, data string) {
	file, line := caller(2)
	bfile := filepath.Base(file)

	if GetTracePoint(fmt.Sprintf("%s:%d", bfile, line)) {
		// Tracepoints fire ahead of mode filtering. Skip log and the
		// exported wrapper so the backtrace starts at the statement.
		l.w.Write(stacktrace(2))
	}

	var emit bool
	if fmode, ok := GetFileLogMode(bfile); ok {
		// A registered override replaces the global mode for this file.
		emit = (fmode & lmode) != DisabledMode
	} else {
		emit = (GetGlobalLogMode() & lmode) != DisabledMode
	}
	if (lmode & FatalMode) != DisabledMode {
		emit = true
	}
	if !emit {
		return
	}

	// One buffered write per statement; interleaving is then up to the
	// configured writer.
	var buf bytes.Buffer
	buf.Write(l.header(lmode, time.Now(), file, line))
	buf.WriteString(data)
	l.w.Write(buf.Bytes())
}

// header renders the statement prefix for the configured flags, through to
// the "] " separator when a file flag is set.
func (l *Logger) header(lmode Mode, t time.Time, file string, line int) []byte {
	var b []byte
	buf := &b
	if l.flag&Lmode != 0 {
		*buf = append(*buf, lmode.byte())
	}
	if l.flag&LUTC != 0 {
		t = t.UTC()
	}
	if l.flag&Ldate != 0 {
		year, month, day := t.Date()
		if year < 2000 {
			year = 2000
		}
		itoa(buf, year-2000, 2)
		itoa(buf, int(month), 2)
		itoa(buf, day, 2)
	}
	if l.flag&(Ltime|Lmicroseconds) != 0 {
		if l.flag&Ldate != 0 {
			*buf = append(*buf, ' ')
		}
		hour, min, sec := t.Clock()
		itoa(buf, hour, 2)
		*buf = append(*buf, ':')
		itoa(buf, min, 2)
		*buf = append(*buf, ':')
		itoa(buf, sec, 2)
		if l.flag&Lmicroseconds != 0 {
			*buf = append(*buf, '.')
			itoa(buf, t.Nanosecond()/1e3, 6)
		}
	}

	*buf = append(*buf, ' ')

	if l.flag&(Lshortfile|Llongfile) != 0 {
		if l.basePath != "" && len(file) > len(l.basePath) && file[:len(l.basePath)] == l.basePath {
			file = file[len(l.basePath):]
		}
		if l.flag&Lshortfile != 0 {
			short := file
			for i := len(file) - 1; i > 0; i-- {
				if file[i] == '/' {
					short = file[i+1:]
					break
				}
			}
			file = short
		}
		*buf = append(*buf, file...)
		*buf = append(*buf, ':')
		itoa(buf, line, -1)
		*buf = append(*buf, "] "...)
	}
	return b
}

// Cheap integer to fixed-width decimal ASCII. Give a negative width to avoid
// zero-padding.
func itoa(buf *[]byte, i int, wid int) {
	// Assemble decimal in reverse order.
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	// i < 10
	b[bp] = byte('0' + i)
	*buf = append(*buf, b[bp:]...)
}

// stacktrace returns the current goroutine's stack with the innermost skip
// frames spliced out, so the trace begins at the frame skip levels above the
// caller. The "goroutine N [running]:" banner is kept.
func stacktrace(skip int) []byte {
	// debug.Stack output devotes two lines to each frame; the innermost
	// frames are debug.Stack itself and this function.
	skip *= 2
	skip += 4

	b := debug.Stack()
	bs := bytes.Split(b, []byte(newline))
	copy(bs[1:], bs[1+skip:])
	bs = bs[:len(bs)-skip]
	return bytes.Join(bs, []byte(newline))
}

// caller returns the file name and line number of the call site depth levels
// above the caller of caller itself.
func caller(depth int) (file string, line int) {
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		file = "[???]"
		line = -1
	}
	return file, line
}
