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

// Package streaming slices block payloads into the chunks carried by the
// store service's streaming RPCs.
package streaming

// Chunker iterates over a byte slice in ChunkSize pieces. The usual loop:
//
//	chunker := streaming.NewChunker(payload)
//	for chunker.Next() {
//		stream.Send(&spb.PutBlockStreamRequest{Key: key, Chunk: chunker.Value()})
//	}
type Chunker struct {
	part   int
	source []byte
}

// NewChunker returns a Chunker positioned before the first chunk; Next must
// be called before the first Value.
func NewChunker(source []byte) *Chunker {
	return &Chunker{part: -1, source: source}
}

// Value returns the current chunk. Every chunk is ChunkSize long except the
// last, which holds the remainder.
func (c *Chunker) Value() []byte {
	end := (c.part + 1) * ChunkSize
	if end >= len(c.source) {
		end = len(c.source)
	}
	return c.source[c.part*ChunkSize : end]
}

// Next advances the iterator and reports whether a chunk is available.
func (c *Chunker) Next() bool {
	c.part++
	return c.part*ChunkSize < len(c.source)
}
