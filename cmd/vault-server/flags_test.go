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
	"testing"

	"github.com/kawafs/kawa/pkg/log"
)

func TestLogModeFlag(t *testing.T) {
	{
		var flag logMode
		if err := flag.Set("info|error"); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !flag.set {
			t.Errorf("expected the flag to record that it was set")
		}
		if flag.m != log.InfoMode|log.ErrorMode {
			t.Errorf("expected info|error, got: %v", flag.String())
		}
	}
	{
		var flag logMode
		if err := flag.Set("disabled"); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if flag.m != log.DisabledMode {
			t.Errorf("expected the disabled mode, got: %v", flag.String())
		}
	}
	{
		var flag logMode
		if err := flag.Set("disabled|info"); err == nil {
			t.Errorf("expected an error combining disabled with other modes")
		}
		if err := flag.Set("verbose"); err == nil {
			t.Errorf("expected an error for an unrecognized mode")
		}
	}
}

func TestLogFilterFlag(t *testing.T) {
	{
		var flag logFilter
		if err := flag.Set("vault.go:debug,run-loop.go:warn|error"); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(flag) != 2 {
			t.Fatalf("expected two filters, got: %d", len(flag))
		}
		if flag[0].fname != "vault.go" || flag[0].fmode != log.DebugMode {
			t.Errorf("unexpected first filter: %s:%s", flag[0].fname, modeToString(flag[0].fmode))
		}
		if flag[1].fname != "run-loop.go" || flag[1].fmode != log.WarnMode|log.ErrorMode {
			t.Errorf("unexpected second filter: %s:%s", flag[1].fname, modeToString(flag[1].fmode))
		}
	}
	{
		var flag logFilter
		if err := flag.Set("vault.go"); err == nil {
			t.Errorf("expected an error for a filter without a mode")
		}
		if err := flag.Set("vault.txt:debug"); err == nil {
			t.Errorf("expected an error for a non-go filename")
		}
		if err := flag.Set("vault.go:loud"); err == nil {
			t.Errorf("expected an error for an unrecognized mode")
		}
	}
}

func TestBacktracePointsFlag(t *testing.T) {
	{
		var flag backtracePoints
		if err := flag.Set("vault.go:117,fs.go:42"); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(flag) != 2 || flag[0] != "vault.go:117" || flag[1] != "fs.go:42" {
			t.Errorf("unexpected trace points: %v", flag)
		}
	}
	{
		var flag backtracePoints
		if err := flag.Set("vault.go"); err == nil {
			t.Errorf("expected an error for a point without a line")
		}
		if err := flag.Set("vault.go:abc"); err == nil {
			t.Errorf("expected an error for a non-numeric line")
		}
	}
}
