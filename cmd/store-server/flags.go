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
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kawafs/kawa/pkg/log"
)

// flag.Value implementations for the -log-mode, -log-filter and
// -log-backtrace-at flags. Every server command carrying the logger flags
// keeps its own copy of these.

var (
	fileNameRegex   = regexp.MustCompile(`^[\w-]+\.go$`)
	lineNumberRegex = regexp.MustCompile(`^\d+$`)
)

type logMode struct {
	m   log.Mode
	set bool
}

func (l logMode) String() string {
	return modeToString(l.m)
}

func (l *logMode) Set(value string) error {
	m, err := modeFromString(value)
	if err != nil {
		return err
	}
	l.m, l.set = m, true
	return nil
}

type fileLogMode struct {
	fname string
	fmode log.Mode
}
type logFilter []fileLogMode

func (l logFilter) String() string {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, flm := range l {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(fmt.Sprintf("%s:%s", flm.fname, modeToString(flm.fmode)))
	}
	buf.WriteString("]")
	return buf.String()
}

func (l *logFilter) Set(value string) error {
	for _, filter := range strings.Split(value, ",") {
		parts := strings.Split(filter, ":")
		if len(parts) != 2 {
			return errors.New(
				fmt.Sprintf("improperly formatted filter: %s, expected fname.go:mode", filter))
		}

		fname, mode := parts[0], parts[1]
		if !fileNameRegex.MatchString(fname) {
			return errors.New(
				fmt.Sprintf("expected filename '%s' to match the regex '%s'", fname, fileNameRegex))
		}

		fmode, err := modeFromString(mode)
		if err != nil {
			return err
		}
		*l = append(*l, fileLogMode{fname: fname, fmode: fmode})
	}
	return nil
}

type backtracePoints []string

func (l *backtracePoints) String() string {
	return fmt.Sprint(*l)
}

func (l *backtracePoints) Set(value string) error {
	for _, point := range strings.Split(value, ",") {
		parts := strings.Split(point, ":")
		if len(parts) != 2 {
			return errors.New(
				fmt.Sprintf("improperly formatted trace point: %s, expected fname.go:line", point))
		}

		fname, lnumber := parts[0], parts[1]
		if !fileNameRegex.MatchString(fname) {
			return errors.New(
				fmt.Sprintf("expected filename '%s' to match the regex '%s'", fname, fileNameRegex))
		}
		if !lineNumberRegex.MatchString(lnumber) {
			return errors.New(
				fmt.Sprintf("expected line number '%s' to match the regex '%s'", lnumber, lineNumberRegex))
		}
		*l = append(*l, fmt.Sprintf("%s:%s", fname, lnumber))
	}
	return nil
}

func modeFromString(value string) (log.Mode, error) {
	// "disabled" stands alone; it zeroes the mask instead of setting a bit.
	if value == "disabled" {
		return log.DisabledMode, nil
	}

	var m log.Mode
	for _, mode := range strings.Split(value, "|") {
		switch mode {
		case "info":
			m |= log.InfoMode
		case "debug":
			m |= log.DebugMode
		case "warn":
			m |= log.WarnMode
		case "error":
			m |= log.ErrorMode
		case "disabled":
			return m, errors.New("mode 'disabled' cannot be combined with other modes")
		default:
			return m, errors.New(fmt.Sprintf("unrecognized mode: %s", mode))
		}
	}
	return m, nil
}

func modeToString(m log.Mode) string {
	if m == log.DisabledMode {
		return "disabled"
	}

	var modes []string
	if (m & log.InfoMode) != log.DisabledMode {
		modes = append(modes, "info")
	}
	if (m & log.WarnMode) != log.DisabledMode {
		modes = append(modes, "warn")
	}
	if (m & log.ErrorMode) != log.DisabledMode {
		modes = append(modes, "error")
	}
	if (m & log.DebugMode) != log.DisabledMode {
		modes = append(modes, "debug")
	}
	return strings.Join(modes, "|")
}
