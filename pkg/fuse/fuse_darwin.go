// See the file LICENSE for copyright and licensing information.

package fuse

import "syscall"

const (
	// ENOATTR is the "no such attribute" error on OS X; Linux uses
	// ENODATA for the same purpose.
	ENOATTR = Errno(syscall.ENOATTR)
)

const (
	errNoXattr = ENOATTR
)

func init() {
	errnoNames[errNoXattr] = "ENOATTR"
}
