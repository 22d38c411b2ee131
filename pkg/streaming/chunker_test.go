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

package streaming

import (
	"bytes"
	"testing"
)

func TestChunker(t *testing.T) {
	parts := 16
	trailer := []byte("efghijk")
	chunk := bytes.Repeat([]byte("abcd"), ChunkSize/4)
	source := make([]byte, 0, len(chunk)*parts+len(trailer))
	for i := 0; i < parts; i++ {
		source = append(source, chunk...)
	}
	source = append(source, trailer...)

	chunker := NewChunker(source)
	for i := 0; i < parts; i++ {
		if !chunker.Next() {
			t.Fatalf("expected chunk %d to be available", i)
		}
		if !bytes.Equal(chunker.Value(), chunk) {
			t.Errorf("expected chunk %d to match the source slice", i)
		}
	}
	if !chunker.Next() {
		t.Fatal("expected the trailing chunk to be available")
	}
	if got := chunker.Value(); !bytes.Equal(got, trailer) {
		t.Errorf("expected trailing chunk %s, got: %s", trailer, got)
	}
	if chunker.Next() {
		t.Error("expected iteration to end after the trailing chunk")
	}
}

func TestChunkerShortSource(t *testing.T) {
	{
		chunker := NewChunker(nil)
		if chunker.Next() {
			t.Error("expected no chunks for an empty source")
		}
	}
	{
		source := []byte("shorter than a chunk")
		chunker := NewChunker(source)
		if !chunker.Next() {
			t.Fatal("expected a single chunk")
		}
		if got := chunker.Value(); !bytes.Equal(got, source) {
			t.Errorf("expected the whole source %s, got: %s", source, got)
		}
		if chunker.Next() {
			t.Error("expected a single chunk only")
		}
	}
	{
		// A source of exactly one chunk must not yield a trailing empty
		// chunk.
		source := bytes.Repeat([]byte{'x'}, ChunkSize)
		chunker := NewChunker(source)
		if !chunker.Next() {
			t.Fatal("expected a single chunk")
		}
		if got := len(chunker.Value()); got != ChunkSize {
			t.Errorf("expected a full chunk, got %d bytes", got)
		}
		if chunker.Next() {
			t.Error("expected no chunk past the aligned end")
		}
	}
}
