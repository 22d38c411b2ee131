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

// Package xattr wraps the extended attribute syscalls with a uniform
// surface across linux and darwin. Kawa stores small pieces of metadata in
// attributes, like the volume label a vault stamps onto its database file.
package xattr

import (
	"golang.org/x/sys/unix"
)

// Getxattr reads the named attribute of path into dest, returning the
// attribute's size. A nil dest probes for the size alone.
func Getxattr(path, attr string, dest []byte) (sz int, err error) {
	return unix.Getxattr(path, attr, dest)
}

// Setxattr sets the named attribute of path. flags carries the platform's
// XATTR_CREATE/XATTR_REPLACE bits; zero upserts.
func Setxattr(path, attr string, data []byte, flags int) error {
	return unix.Setxattr(path, attr, data, flags)
}

// Listxattr reads the NUL-separated attribute name list of path into dest,
// returning its size. A nil dest probes for the size alone.
func Listxattr(path string, dest []byte) (sz int, err error) {
	return unix.Listxattr(path, dest)
}

// Removexattr removes the named attribute of path.
func Removexattr(path, attr string) error {
	return unix.Removexattr(path, attr)
}

// Get reads the whole value of the named attribute, sizing the buffer with a
// probe first. The attribute can grow between the probe and the read, so a
// short buffer retries.
func Get(path, attr string) ([]byte, error) {
	size, err := Getxattr(path, attr, nil)
	if err != nil {
		return nil, err
	}
	for {
		buf := make([]byte, size)
		n, err := Getxattr(path, attr, buf)
		if err == unix.ERANGE {
			size = size*2 + 8
			continue
		}
		if err != nil {
			return nil, err
		}
		if n > len(buf) {
			// A zero-length buffer acts as another probe; take the
			// reported size and go around again.
			size = n
			continue
		}
		return buf[:n], nil
	}
}

// AttrNotFound reports whether err is the platform's way of saying the
// attribute does not exist (ENODATA on linux, ENOATTR on darwin).
func AttrNotFound(err error) bool {
	return err == errAttrNotFound
}
