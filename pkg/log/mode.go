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

// Mode is a bitmask selecting which classes of log statements get emitted.
// Every Logger.{Info,Warn,Error,Fatal,Debug}{,f} statement carries exactly
// one mode bit and is written out only if that bit is present in the
// effective mode: the per-file override when one is registered, the global
// mode otherwise. Fatal statements are exempt from filtering.
type Mode int

const (
	InfoMode Mode = 1 << iota
	WarnMode
	ErrorMode
	FatalMode
	DebugMode

	// DisabledMode is the zero value; (lmode & gmode) != DisabledMode checks
	// whether the statement mode lmode passes the filter gmode.
	DisabledMode = 0
	DefaultMode  = InfoMode | WarnMode | ErrorMode
)

// byte returns the single-character header tag for the mode.
func (m Mode) byte() byte {
	switch m {
	case InfoMode:
		return 'I'
	case WarnMode:
		return 'W'
	case ErrorMode:
		return 'E'
	case FatalMode:
		return 'F'
	case DebugMode:
		return 'D'
	default:
		return '?'
	}
}
