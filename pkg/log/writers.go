// Copyright 2013 Google Inc. All Rights Reserved.
// Copyright 2026 The Kawa Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Portions of this code originated in the github.com/golang/glog package.

package log

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"
)

// Stamped into rotated log file names.
var (
	program  = "?"
	hostname = "?"
	username = "?"
	pid      = -1
)

func init() {
	program = filepath.Base(os.Args[0])

	if host, err := os.Hostname(); err == nil {
		hostname = host
	}
	if current, err := user.Current(); err == nil {
		username = current.Username
	}
	pid = os.Getpid()
}

// DefaultWriter returns an os.Stderr writer that is safe for concurrent use.
func DefaultWriter() io.Writer {
	return SynchronizedWriter(os.Stderr)
}

// SynchronizedWriter serializes writes to w under a mutex.
func SynchronizedWriter(w io.Writer) io.Writer {
	return &synchronizedWriter{w: w}
}

// MultiWriter fans each write out to all the given writers.
func MultiWriter(w io.Writer, ws ...io.Writer) io.Writer {
	mw := &multiWriter{}
	mw.ws = append(mw.ws, w)
	mw.ws = append(mw.ws, ws...)
	return mw
}

// LogRotationWriter returns an io.Writer appending to files under dirname,
// rolling over to a fresh file once the current one would exceed
// sizeThreshold bytes. A "<program>.log" symlink inside the directory tracks
// the file currently being written.
//
// A single write larger than the threshold still lands in one file, so that
// one file may exceed the limit.
func LogRotationWriter(dirname string, sizeThreshold int) io.Writer {
	os.MkdirAll(dirname, os.ModePerm)
	return &logRotationWriter{
		dirname:       dirname,
		symlink:       fmt.Sprintf("%s.log", program),
		sizeThreshold: sizeThreshold,
	}
}

type logRotationWriter struct {
	dirname, symlink               string
	currentFileSize, sizeThreshold int

	currentFile *os.File
}

func (r *logRotationWriter) Write(b []byte) (n int, err error) {
	if r.currentFile == nil || r.currentFileSize+len(b) > r.sizeThreshold {
		fname := logFilename(time.Now())
		f, err := os.Create(filepath.Join(r.dirname, fname))
		if err != nil {
			return 0, err
		}

		r.currentFile = f
		r.currentFileSize = 0

		// Repoint the symlink at the new file; failures here are
		// cosmetic and deliberately ignored.
		os.Remove(filepath.Join(r.dirname, r.symlink))
		os.Symlink(fname, filepath.Join(r.dirname, r.symlink))
	}

	n, err = r.currentFile.Write(b)
	r.currentFileSize += n
	return n, err
}

// logFilename names a rotated log file, for example:
//
//   kawa.build-03.deploy.2026-04-10.22:43:54.717.7989.log
func logFilename(t time.Time) string {
	return fmt.Sprintf("%s.%s.%s.%s.%d.log",
		program, hostname, username,
		t.Format("2006-01-02.15:04:05.999"), pid,
	)
}

type synchronizedWriter struct {
	sync.Mutex
	w io.Writer
}

func (s *synchronizedWriter) Write(b []byte) (n int, err error) {
	s.Lock()
	n, err = s.w.Write(b)
	s.Unlock()
	return n, err
}

type multiWriter struct {
	ws []io.Writer
}

// Write reports the smallest byte count across the writers and the last
// error encountered, if any.
func (m *multiWriter) Write(b []byte) (n int, err error) {
	n = len(b)
	for _, w := range m.ws {
		nbytes, werr := w.Write(b)
		if nbytes < n {
			n = nbytes
		}
		if werr != nil {
			err = werr
		}
	}
	return n, err
}
