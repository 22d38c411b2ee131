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
	"sync"
	"sync/atomic"
)

// Process-wide filter state, shared by every Logger. Loggers consult it on
// every statement, so reads sit on the hot path while writes happen rarely
// (flag parsing, runtime reconfiguration). Readers load the current map
// without locking; writers copy the map, apply their change, and swap the
// copy in under mu. A reader holding the old map keeps a consistent view
// until it lets go of it.

// Tracepoints are keyed "fname.go:line", per-file mode overrides by base
// filename. Matching is by base name alone, so two files sharing a name in
// different packages also share their overrides and tracepoints.
type stringSet map[string]struct{}
type modeMap map[string]Mode

var global struct {
	mode        atomic.Value // Mode
	tracepoints struct {
		mu sync.Mutex
		m  atomic.Value // stringSet
	}
	fileModes struct {
		mu sync.Mutex
		m  atomic.Value // modeMap
	}
}

func init() {
	global.mode.Store(DefaultMode)
	global.tracepoints.m.Store(make(stringSet))
	global.fileModes.m.Store(make(modeMap))
}

// SetGlobalLogMode sets the global log mode. Statements with modes outside it
// are suppressed, except where a per-file override says otherwise.
func SetGlobalLogMode(m Mode) {
	global.mode.Store(m)
}

// GetGlobalLogMode returns the current global log mode.
func GetGlobalLogMode() Mode {
	return global.mode.Load().(Mode)
}

// SetTracePoint arms the given tracepoint. A tracepoint names a logging
// statement by position, "fname.go:line"; an armed statement emits a
// backtrace of the calling goroutine whenever it executes, whatever its mode
// and whatever the filters say.
func SetTracePoint(tp string) {
	global.tracepoints.mu.Lock()
	defer global.tracepoints.mu.Unlock()

	prev := global.tracepoints.m.Load().(stringSet)
	next := make(stringSet, len(prev)+1)
	for k := range prev {
		next[k] = struct{}{}
	}
	next[tp] = struct{}{}
	global.tracepoints.m.Store(next)
}

// ResetTracePoint disarms the given tracepoint.
func ResetTracePoint(tp string) {
	global.tracepoints.mu.Lock()
	defer global.tracepoints.mu.Unlock()

	prev := global.tracepoints.m.Load().(stringSet)
	next := make(stringSet, len(prev))
	for k := range prev {
		next[k] = struct{}{}
	}
	delete(next, tp)
	global.tracepoints.m.Store(next)
}

// GetTracePoint reports whether the given tracepoint is armed.
func GetTracePoint(tp string) bool {
	_, ok := global.tracepoints.m.Load().(stringSet)[tp]
	return ok
}

// SetFileLogMode overrides the log mode for statements in the named file.
// The override replaces the global mode for that file rather than extending
// it.
func SetFileLogMode(fname string, m Mode) {
	global.fileModes.mu.Lock()
	defer global.fileModes.mu.Unlock()

	prev := global.fileModes.m.Load().(modeMap)
	next := make(modeMap, len(prev)+1)
	for k, v := range prev {
		next[k] = v
	}
	next[fname] = m
	global.fileModes.m.Store(next)
}

// GetFileLogMode returns the mode override for the named file, if one is
// registered.
func GetFileLogMode(fname string) (m Mode, ok bool) {
	m, ok = global.fileModes.m.Load().(modeMap)[fname]
	return m, ok
}

// ResetFileLogMode removes the mode override for the named file; its
// statements fall back to the global mode.
func ResetFileLogMode(fname string) {
	global.fileModes.mu.Lock()
	defer global.fileModes.mu.Unlock()

	prev := global.fileModes.m.Load().(modeMap)
	next := make(modeMap, len(prev))
	for k, v := range prev {
		next[k] = v
	}
	delete(next, fname)
	global.fileModes.m.Store(next)
}
