// See the file LICENSE for copyright and licensing information.

package fuse

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// MountpointDoesNotExistError is an error returned when the
// mountpoint does not exist.
type MountpointDoesNotExistError struct {
	Path string
}

var _ error = (*MountpointDoesNotExistError)(nil)

func (e *MountpointDoesNotExistError) Error() string {
	return fmt.Sprintf("mountpoint does not exist: %v", e.Path)
}

// mountHelperOutput is fed to Debug for every line the mount helper
// prints that we have no better use for.
type mountHelperOutput struct {
	Helper string
	Line   string
}

func (m mountHelperOutput) String() string {
	return fmt.Sprintf("%s: %q", m.Helper, m.Line)
}

func neverIgnoreLine(line string) bool {
	return false
}

func lineLogger(wg *sync.WaitGroup, helper string, ignore func(line string) (ignore bool), r io.ReadCloser) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if ignore(line) {
			continue
		}
		Debug(mountHelperOutput{Helper: helper, Line: line})
	}
	if err := scanner.Err(); err != nil {
		Debug(mountHelperOutput{Helper: helper, Line: "read error: " + err.Error()})
	}
}
