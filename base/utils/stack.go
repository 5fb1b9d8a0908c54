package utils

import (
	"bytes"
	"runtime"
)

// Stack returns the calling goroutine's stack trace, skipping the first
// skip frames which belong to the recovery plumbing itself.
func Stack(skip int) []byte {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	for i := 0; i < skip; i++ {
		idx := bytes.IndexByte(buf, '\n')
		if idx < 0 {
			break
		}
		buf = buf[idx+1:]
	}
	return buf
}
