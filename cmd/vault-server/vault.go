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
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/btree"
	"github.com/kawafs/kawa/pkg/log"
	"github.com/kawafs/kawa/pkg/proquint"
	"github.com/kawafs/kawa/pkg/xattr"
)

// A vault is a single-file encrypted volume. Bolt holds four buckets:
//
//	meta     volume identity, the KDF salt, and the passphrase check
//	inodes   inode number -> JSON inode record
//	dirents  parent inode + name -> child inode
//	content  inode number -> sealed file contents
//
// Inode numbers come from the inodes bucket's sequence, so the root
// directory, created first, is always inode 1. Directory entries are
// mirrored into an in-memory btree so lookups and listings do not
// open a read transaction.
type vault struct {
	logger *log.Logger
	db     *bolt.DB
	path   string
	key    *[keyLen]byte

	mu       sync.RWMutex
	index    *btree.BTree
	volumeID string
}

var (
	metaBucket    = []byte("meta")
	inodeBucket   = []byte("inodes")
	direntBucket  = []byte("dirents")
	contentBucket = []byte("content")
)

var (
	volumeIDKey   = []byte("volume-id")
	saltKey       = []byte("salt")
	checkKey      = []byte("check")
	checkSentinel = []byte("kawa-vault")
)

// volumeLabelAttr is stamped onto the database file itself so a vault
// can be told apart from an ordinary bolt file without the passphrase.
const volumeLabelAttr = "user.kawa.volume"

const rootInode uint64 = 1

var (
	errNotFound = errors.New("no such vault entry")
	errExists   = errors.New("vault entry already exists")
	errNotEmpty = errors.New("vault directory not empty")
	errNotDir   = errors.New("vault entry is not a directory")
	errIsDir    = errors.New("vault entry is a directory")
)

// An inodeRecord is the decoded metadata of one inode. Contents live
// separately, in the content bucket.
type inodeRecord struct {
	Mode  os.FileMode `json:"mode"`
	Size  uint64      `json:"size"`
	Nlink uint32      `json:"nlink"`
	Uid   uint32      `json:"uid"`
	Gid   uint32      `json:"gid"`
	Atime int64       `json:"atime"`
	Mtime int64       `json:"mtime"`
	Ctime int64       `json:"ctime"`
}

// An indexEntry mirrors one dirent record into the in-memory btree,
// ordered by (parent, name).
type indexEntry struct {
	parent uint64
	name   string
	child  uint64
	dir    bool
}

func (e *indexEntry) Less(than btree.Item) bool {
	o := than.(*indexEntry)
	if e.parent != o.parent {
		return e.parent < o.parent
	}
	return e.name < o.name
}

func inodeKey(ino uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], ino)
	return b[:]
}

func direntKey(parent uint64, name string) []byte {
	b := make([]byte, 8+len(name))
	binary.BigEndian.PutUint64(b, parent)
	copy(b[8:], name)
	return b
}

func openVault(logger *log.Logger, path, passphrase string) (*vault, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	v := &vault{
		logger: logger,
		db:     db,
		path:   path,
		index:  btree.New(32),
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{metaBucket, inodeBucket, direntBucket, contentBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}

		meta := tx.Bucket(metaBucket)
		salt := meta.Get(saltKey)
		if salt == nil {
			return v.initialize(tx, passphrase)
		}
		return v.unlock(tx, passphrase, salt)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	if err := v.loadIndex(); err != nil {
		db.Close()
		return nil, err
	}

	v.stampVolumeLabel()
	return v, nil
}

// initialize sets up a fresh vault in tx: salt, passphrase check,
// volume ID, and the root directory.
func (v *vault) initialize(tx *bolt.Tx, passphrase string) error {
	var entropy [saltLen + 8]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		return err
	}
	salt := entropy[:saltLen]

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return err
	}
	v.key = key

	check, err := seal(key, checkSentinel)
	if err != nil {
		return err
	}

	v.volumeID = string(proquint.FromUint64(binary.BigEndian.Uint64(entropy[saltLen:])))

	meta := tx.Bucket(metaBucket)
	if err := meta.Put(saltKey, salt); err != nil {
		return err
	}
	if err := meta.Put(checkKey, check); err != nil {
		return err
	}
	if err := meta.Put(volumeIDKey, []byte(v.volumeID)); err != nil {
		return err
	}

	inodes := tx.Bucket(inodeBucket)
	ino, err := inodes.NextSequence()
	if err != nil {
		return err
	}
	if ino != rootInode {
		return errors.New("fresh vault did not allocate the root inode first")
	}

	now := time.Now().Unix()
	root := &inodeRecord{
		Mode:  os.ModeDir | 0755,
		Nlink: 2,
		Uid:   uint32(os.Getuid()),
		Gid:   uint32(os.Getgid()),
		Atime: now,
		Mtime: now,
		Ctime: now,
	}
	rec, err := json.Marshal(root)
	if err != nil {
		return err
	}
	if err := inodes.Put(inodeKey(rootInode), rec); err != nil {
		return err
	}

	v.logger.Infof("initialized vault %s: volume %s", v.path, v.volumeID)
	return nil
}

// unlock re-derives the key for an existing vault and proves it
// against the check record.
func (v *vault) unlock(tx *bolt.Tx, passphrase string, salt []byte) error {
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return err
	}

	meta := tx.Bucket(metaBucket)
	if _, err := unseal(key, meta.Get(checkKey)); err != nil {
		return errWrongPassphrase
	}

	v.key = key
	v.volumeID = string(meta.Get(volumeIDKey))
	return nil
}

// loadIndex mirrors the dirent bucket into the in-memory btree.
func (v *vault) loadIndex() error {
	return v.db.View(func(tx *bolt.Tx) error {
		inodes := tx.Bucket(inodeBucket)
		return tx.Bucket(direntBucket).ForEach(func(k, val []byte) error {
			child := binary.BigEndian.Uint64(val)
			rec, err := decodeInode(inodes.Get(inodeKey(child)))
			if err != nil {
				return err
			}
			v.index.ReplaceOrInsert(&indexEntry{
				parent: binary.BigEndian.Uint64(k[:8]),
				name:   string(k[8:]),
				child:  child,
				dir:    rec.Mode.IsDir(),
			})
			return nil
		})
	})
}

// stampVolumeLabel writes the volume ID onto the database file as an
// extended attribute. File systems without xattr support just miss
// out on the label.
func (v *vault) stampVolumeLabel() {
	if err := xattr.Setxattr(v.path, volumeLabelAttr, []byte(v.volumeID), 0); err != nil {
		v.logger.Debugf("volume label not stamped: %v", err)
		return
	}

	label, err := xattr.Get(v.path, volumeLabelAttr)
	if err != nil || string(label) != v.volumeID {
		v.logger.Debugf("volume label readback failed: %v", err)
	}
}

func (v *vault) Close() error {
	return v.db.Close()
}

func decodeInode(raw []byte) (*inodeRecord, error) {
	if raw == nil {
		return nil, errNotFound
	}
	var rec inodeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func putInode(tx *bolt.Tx, ino uint64, rec *inodeRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return tx.Bucket(inodeBucket).Put(inodeKey(ino), raw)
}

func (v *vault) getInode(ino uint64) (*inodeRecord, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var rec *inodeRecord
	err := v.db.View(func(tx *bolt.Tx) error {
		var err error
		rec, err = decodeInode(tx.Bucket(inodeBucket).Get(inodeKey(ino)))
		return err
	})
	return rec, err
}

func (v *vault) setInode(ino uint64, rec *inodeRecord) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(inodeBucket).Get(inodeKey(ino)) == nil {
			return errNotFound
		}
		return putInode(tx, ino, rec)
	})
}

func (v *vault) lookup(parent uint64, name string) (uint64, *inodeRecord, error) {
	v.mu.RLock()
	item := v.index.Get(&indexEntry{parent: parent, name: name})
	v.mu.RUnlock()

	if item == nil {
		return 0, nil, errNotFound
	}

	child := item.(*indexEntry).child
	rec, err := v.getInode(child)
	if err != nil {
		return 0, nil, err
	}
	return child, rec, nil
}

// A vaultEntry is one row of a directory listing.
type vaultEntry struct {
	name string
	ino  uint64
	dir  bool
}

func (v *vault) readDir(parent uint64) ([]vaultEntry, error) {
	rec, err := v.getInode(parent)
	if err != nil {
		return nil, err
	}
	if !rec.Mode.IsDir() {
		return nil, errNotDir
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	entries := make([]vaultEntry, 0)
	v.index.AscendGreaterOrEqual(&indexEntry{parent: parent}, func(item btree.Item) bool {
		e := item.(*indexEntry)
		if e.parent != parent {
			return false
		}
		entries = append(entries, vaultEntry{name: e.name, ino: e.child, dir: e.dir})
		return true
	})

	return entries, nil
}

// create allocates an inode under parent. Directory modes get an
// empty directory; everything else gets empty sealed content.
func (v *vault) create(parent uint64, name string, mode os.FileMode, uid, gid uint32) (uint64, *inodeRecord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.index.Has(&indexEntry{parent: parent, name: name}) {
		return 0, nil, errExists
	}

	var child uint64
	now := time.Now().Unix()
	rec := &inodeRecord{
		Mode:  mode,
		Nlink: 1,
		Uid:   uid,
		Gid:   gid,
		Atime: now,
		Mtime: now,
		Ctime: now,
	}
	if mode.IsDir() {
		rec.Nlink = 2
	}

	err := v.db.Update(func(tx *bolt.Tx) error {
		prec, err := decodeInode(tx.Bucket(inodeBucket).Get(inodeKey(parent)))
		if err != nil {
			return err
		}
		if !prec.Mode.IsDir() {
			return errNotDir
		}

		child, err = tx.Bucket(inodeBucket).NextSequence()
		if err != nil {
			return err
		}

		if err := putInode(tx, child, rec); err != nil {
			return err
		}

		if !mode.IsDir() {
			sealed, err := seal(v.key, nil)
			if err != nil {
				return err
			}
			if err := tx.Bucket(contentBucket).Put(inodeKey(child), sealed); err != nil {
				return err
			}
		} else {
			prec.Nlink++
		}

		prec.Mtime, prec.Ctime = now, now
		if err := putInode(tx, parent, prec); err != nil {
			return err
		}

		return tx.Bucket(direntBucket).Put(direntKey(parent, name), inodeKey(child))
	})
	if err != nil {
		return 0, nil, err
	}

	v.index.ReplaceOrInsert(&indexEntry{
		parent: parent,
		name:   name,
		child:  child,
		dir:    mode.IsDir(),
	})

	return child, rec, nil
}

func (v *vault) readFile(ino uint64) ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var content []byte
	err := v.db.View(func(tx *bolt.Tx) error {
		sealed := tx.Bucket(contentBucket).Get(inodeKey(ino))
		if sealed == nil {
			return errNotFound
		}

		var err error
		content, err = unseal(v.key, sealed)
		return err
	})
	return content, err
}

func (v *vault) writeFile(ino uint64, content []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.db.Update(func(tx *bolt.Tx) error {
		rec, err := decodeInode(tx.Bucket(inodeBucket).Get(inodeKey(ino)))
		if err != nil {
			return err
		}
		if rec.Mode.IsDir() {
			return errIsDir
		}

		sealed, err := seal(v.key, content)
		if err != nil {
			return err
		}
		if err := tx.Bucket(contentBucket).Put(inodeKey(ino), sealed); err != nil {
			return err
		}

		rec.Size = uint64(len(content))
		rec.Mtime = time.Now().Unix()
		return putInode(tx, ino, rec)
	})
}

func (v *vault) remove(parent uint64, name string, dir bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	item := v.index.Get(&indexEntry{parent: parent, name: name})
	if item == nil {
		return errNotFound
	}
	entry := item.(*indexEntry)

	if dir && !entry.dir {
		return errNotDir
	}
	if !dir && entry.dir {
		return errIsDir
	}
	if entry.dir && v.hasChildren(entry.child) {
		return errNotEmpty
	}

	err := v.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(direntBucket).Delete(direntKey(parent, name)); err != nil {
			return err
		}
		if err := tx.Bucket(inodeBucket).Delete(inodeKey(entry.child)); err != nil {
			return err
		}
		if !entry.dir {
			if err := tx.Bucket(contentBucket).Delete(inodeKey(entry.child)); err != nil {
				return err
			}
		}

		prec, err := decodeInode(tx.Bucket(inodeBucket).Get(inodeKey(parent)))
		if err != nil {
			return err
		}
		if entry.dir {
			prec.Nlink--
		}
		now := time.Now().Unix()
		prec.Mtime, prec.Ctime = now, now
		return putInode(tx, parent, prec)
	})
	if err != nil {
		return err
	}

	v.index.Delete(entry)
	return nil
}

// hasChildren reports whether any dirent names ino as its parent.
// Callers hold v.mu.
func (v *vault) hasChildren(ino uint64) bool {
	found := false
	v.index.AscendGreaterOrEqual(&indexEntry{parent: ino}, func(item btree.Item) bool {
		found = item.(*indexEntry).parent == ino
		return false
	})
	return found
}

func (v *vault) rename(oldParent uint64, oldName string, newParent uint64, newName string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	item := v.index.Get(&indexEntry{parent: oldParent, name: oldName})
	if item == nil {
		return errNotFound
	}
	entry := item.(*indexEntry)

	if oldParent == newParent && oldName == newName {
		return nil
	}

	var displaced *indexEntry
	if existing := v.index.Get(&indexEntry{parent: newParent, name: newName}); existing != nil {
		displaced = existing.(*indexEntry)
		if displaced.dir && v.hasChildren(displaced.child) {
			return errNotEmpty
		}
	}

	err := v.db.Update(func(tx *bolt.Tx) error {
		if displaced != nil {
			if err := tx.Bucket(inodeBucket).Delete(inodeKey(displaced.child)); err != nil {
				return err
			}
			if !displaced.dir {
				if err := tx.Bucket(contentBucket).Delete(inodeKey(displaced.child)); err != nil {
					return err
				}
			}
		}

		dirents := tx.Bucket(direntBucket)
		if err := dirents.Delete(direntKey(oldParent, oldName)); err != nil {
			return err
		}
		if err := dirents.Put(direntKey(newParent, newName), inodeKey(entry.child)); err != nil {
			return err
		}

		now := time.Now().Unix()
		rec, err := decodeInode(tx.Bucket(inodeBucket).Get(inodeKey(entry.child)))
		if err != nil {
			return err
		}
		rec.Ctime = now
		if err := putInode(tx, entry.child, rec); err != nil {
			return err
		}

		// A directory moving between parents takes its ".." link with
		// it; a displaced directory gives one up. Both parents get
		// fresh timestamps either way.
		deltas := map[uint64]int32{oldParent: 0, newParent: 0}
		if entry.dir && oldParent != newParent {
			deltas[oldParent]--
			deltas[newParent]++
		}
		if displaced != nil && displaced.dir {
			deltas[newParent]--
		}
		for ino, delta := range deltas {
			prec, err := decodeInode(tx.Bucket(inodeBucket).Get(inodeKey(ino)))
			if err != nil {
				return err
			}
			prec.Nlink = uint32(int32(prec.Nlink) + delta)
			prec.Mtime, prec.Ctime = now, now
			if err := putInode(tx, ino, prec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if displaced != nil {
		v.index.Delete(displaced)
	}
	v.index.Delete(entry)
	v.index.ReplaceOrInsert(&indexEntry{
		parent: newParent,
		name:   newName,
		child:  entry.child,
		dir:    entry.dir,
	})
	return nil
}

// stats reports inode and byte totals for statfs.
func (v *vault) stats() (files uint64, bytes uint64) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	v.db.View(func(tx *bolt.Tx) error {
		files = uint64(tx.Bucket(inodeBucket).Stats().KeyN)
		return nil
	})

	if fi, err := os.Stat(v.path); err == nil {
		bytes = uint64(fi.Size())
	}
	return files, bytes
}
