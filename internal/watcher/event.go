package watcher

import (
	"fmt"
	"strings"
)

// Kind is an inotify event mask.
// The bit values are the Linux ABI values so a Kind can be handed to
// inotify_add_watch unchanged; they are declared here so that builds for
// other platforms share the same vocabulary.
type Kind uint32

const (
	KindAccess       Kind = 0x00000001
	KindModify       Kind = 0x00000002
	KindAttrib       Kind = 0x00000004
	KindCloseWrite   Kind = 0x00000008
	KindCloseNoWrite Kind = 0x00000010
	KindOpen         Kind = 0x00000020
	KindMovedFrom    Kind = 0x00000040
	KindMovedTo      Kind = 0x00000080
	KindCreate       Kind = 0x00000100
	KindDelete       Kind = 0x00000200
	KindDeleteSelf   Kind = 0x00000400
	KindMoveSelf     Kind = 0x00000800
	KindUnmount      Kind = 0x00002000
	KindOverflow     Kind = 0x00004000
	KindIgnored      Kind = 0x00008000
	KindIsDir        Kind = 0x40000000
)

// InterestMask is the fixed set of kinds a watch subscribes to.
const InterestMask = KindCreate | KindDelete | KindAccess | KindModify | KindCloseWrite | KindMoveSelf

var kindNames = []struct {
	kind Kind
	name string
}{
	{KindAccess, "ACCESS"},
	{KindModify, "MODIFY"},
	{KindAttrib, "ATTRIB"},
	{KindCloseWrite, "CLOSE_WRITE"},
	{KindCloseNoWrite, "CLOSE_NOWRITE"},
	{KindOpen, "OPEN"},
	{KindMovedFrom, "MOVED_FROM"},
	{KindMovedTo, "MOVED_TO"},
	{KindCreate, "CREATE"},
	{KindDelete, "DELETE"},
	{KindDeleteSelf, "DELETE_SELF"},
	{KindMoveSelf, "MOVE_SELF"},
	{KindUnmount, "UNMOUNT"},
	{KindOverflow, "Q_OVERFLOW"},
	{KindIgnored, "IGNORED"},
	{KindIsDir, "ISDIR"},
}

// Has reports whether any bit of other is set in k.
func (k Kind) Has(other Kind) bool {
	return k&other != 0
}

// String returns the set bits joined with "|", e.g. "CREATE|ISDIR".
// Bits without a name are rendered in hex.
func (k Kind) String() string {
	if k == 0 {
		return "0"
	}

	var parts []string
	rest := k
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			parts = append(parts, kn.name)
			rest &^= kn.kind
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// WatchID identifies one watch within a queue (an inotify watch descriptor).
type WatchID int32

// Record is one event decoded from the queue's byte stream.
type Record struct {
	// WatchID is the watch the event was reported for.
	WatchID WatchID

	// Kind is the event mask.
	Kind Kind

	// Cookie links the two halves of a rename.
	Cookie uint32

	// NameLen is the length of the trailing name field, padding included.
	NameLen uint32

	// Name is the entry name within a watched directory, empty when the
	// event concerns the watched path itself.
	Name string
}

// Size is the number of stream bytes the record occupies.
func (r Record) Size() int {
	return HeaderSize + int(r.NameLen)
}
