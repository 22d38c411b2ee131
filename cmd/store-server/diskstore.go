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
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/kawafs/kawa/pkg/log"
)

// diskStore keeps one file per block under a single directory. Writes land
// in a dot-prefixed temporary file first and get renamed into place, so a
// crashed write never leaves a half-written block behind a live key.
type diskStore struct {
	root   string
	logger *log.Logger
}

var _ Store = &diskStore{}

// NewDiskStore opens (creating if needed) a block store rooted at the
// given directory.
func NewDiskStore(logger *log.Logger, root string) (Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &diskStore{root: root, logger: logger}, nil
}

// keyPath rejects keys that would escape the store directory or collide
// with the temporary files.
func (d *diskStore) keyPath(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty block key")
	}
	if strings.ContainsAny(key, "/\\") || key == "." || key == ".." {
		return "", errors.New(fmt.Sprintf("block key %q contains a path separator", key))
	}
	if strings.HasPrefix(key, ".") {
		return "", errors.New(fmt.Sprintf("block key %q starts with a dot", key))
	}
	return filepath.Join(d.root, key), nil
}

func (d *diskStore) Read(key string) ([]byte, error) {
	path, err := d.keyPath(key)
	if err != nil {
		return nil, err
	}
	return ioutil.ReadFile(path)
}

func (d *diskStore) Write(key string, val []byte) error {
	path, err := d.keyPath(key)
	if err != nil {
		return err
	}

	tmp := filepath.Join(d.root, "."+key+".partial")
	if err := ioutil.WriteFile(tmp, val, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (d *diskStore) Has(key string) bool {
	path, err := d.keyPath(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (d *diskStore) Erase(key string) error {
	path, err := d.keyPath(key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (d *diskStore) Keys() ([]string, error) {
	infos, err := ioutil.ReadDir(d.root)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			continue
		}
		keys = append(keys, info.Name())
	}
	return keys, nil
}
