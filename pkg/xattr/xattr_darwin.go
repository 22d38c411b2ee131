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

package xattr

import "golang.org/x/sys/unix"

// The darwin syscalls take an extra position argument used only by the
// resource fork attribute; the wrappers in golang.org/x/sys/unix pass zero,
// which matches the linux behaviour for everything kawa touches.

const errAttrNotFound = unix.ENOATTR
