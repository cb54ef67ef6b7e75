package nnclient

import "strconv"

// NNID is a Nintendo Network id, the user-chosen account name.
type NNID string

// PID is the numeric principal id associated with a Nintendo Network id.
type PID uint32

func (p PID) String() string {
	return strconv.FormatUint(uint64(p), 10)
}
