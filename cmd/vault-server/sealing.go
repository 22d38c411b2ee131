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
	"errors"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// Every record in the content bucket is an independent secretbox: a
// fresh 24-byte nonce, then the box. The key never touches the disk;
// it is re-derived from the passphrase on every open.

const (
	saltLen  = 16
	nonceLen = 24
	keyLen   = 32

	// Interactive-login scrypt parameters.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var (
	errMalformedBox    = errors.New("sealed record too short to carry a nonce")
	errOpenFailed      = errors.New("sealed record failed authentication")
	errWrongPassphrase = errors.New("passphrase does not match this vault")
)

func deriveKey(passphrase string, salt []byte) (*[keyLen]byte, error) {
	kb, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, err
	}

	var key [keyLen]byte
	copy(key[:], kb)
	return &key, nil
}

func seal(key *[keyLen]byte, plaintext []byte) ([]byte, error) {
	var nonce [nonceLen]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

func unseal(key *[keyLen]byte, sealed []byte) ([]byte, error) {
	if len(sealed) < nonceLen {
		return nil, errMalformedBox
	}

	var nonce [nonceLen]byte
	copy(nonce[:], sealed[:nonceLen])

	plaintext, ok := secretbox.Open(nil, sealed[nonceLen:], &nonce, key)
	if !ok {
		return nil, errOpenFailed
	}
	return plaintext, nil
}
