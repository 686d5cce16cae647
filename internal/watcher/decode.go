package watcher

import (
	"encoding/binary"
	"iter"

	"github.com/listenupapp/watchdog/internal/errors"
)

const (
	// HeaderSize is the fixed part of a record: wd, mask, cookie, len.
	HeaderSize = 16

	// nameMax is NAME_MAX on Linux.
	nameMax = 255
)

// byteOrder is the host order the kernel writes records in.
var byteOrder = binary.NativeEndian

// Decode returns the records packed into buf[:n], in stream order.
//
// The sequence is lazy and bound to this buffer snapshot. Every record must
// fit entirely inside the first n bytes; a short header or a name field that
// runs past n ends the sequence with a CORRUPT_STREAM error instead of
// resynchronising. Records before the corrupt tail are still yielded.
func Decode(buf []byte, n int) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if n < 0 || n > len(buf) {
			yield(Record{}, errors.CorruptStreamf("valid length %d outside buffer of %d bytes", n, len(buf)))
			return
		}

		data := buf[:n]
		for off := 0; off < len(data); {
			rest := data[off:]
			if len(rest) < HeaderSize {
				yield(Record{}, errors.CorruptStreamf("%d bytes at offset %d are too short for a record header", len(rest), off))
				return
			}

			rec := Record{
				WatchID: WatchID(int32(byteOrder.Uint32(rest[0:4]))), //nolint:gosec // G115: wd is a signed field on the wire
				Kind:    Kind(byteOrder.Uint32(rest[4:8])),
				Cookie:  byteOrder.Uint32(rest[8:12]),
				NameLen: byteOrder.Uint32(rest[12:16]),
			}

			avail := len(rest) - HeaderSize
			if uint64(rec.NameLen) > uint64(avail) {
				yield(Record{}, errors.CorruptStreamf("record at offset %d declares %d name bytes but only %d remain", off, rec.NameLen, avail))
				return
			}

			name := rest[HeaderSize : HeaderSize+int(rec.NameLen)]
			rec.Name = string(name[:clen(name)])

			if !yield(rec, nil) {
				return
			}
			off += rec.Size()
		}
	}
}

// AppendRecord appends the wire form of r to dst.
// The name field is NUL terminated and padded to a multiple of HeaderSize the
// way the kernel pads it; a larger r.NameLen is honoured as extra padding.
func AppendRecord(dst []byte, r Record) []byte {
	nameLen := r.NameLen
	if need := paddedNameLen(r.Name); nameLen < need {
		nameLen = need
	}

	dst = byteOrder.AppendUint32(dst, uint32(r.WatchID)) //nolint:gosec // G115: round trip of a signed field
	dst = byteOrder.AppendUint32(dst, uint32(r.Kind))
	dst = byteOrder.AppendUint32(dst, r.Cookie)
	dst = byteOrder.AppendUint32(dst, nameLen)
	dst = append(dst, r.Name...)
	for i := uint32(len(r.Name)); i < nameLen; i++ {
		dst = append(dst, 0)
	}
	return dst
}

// paddedNameLen is the name field length for name, terminator included.
func paddedNameLen(name string) uint32 {
	if name == "" {
		return 0
	}
	n := len(name) + 1
	if rem := n % HeaderSize; rem != 0 {
		n += HeaderSize - rem
	}
	return uint32(n) //nolint:gosec // G115: names are bounded by NAME_MAX
}

// clen returns the length of a null-terminated byte slice.
func clen(n []byte) int {
	for i := 0; i < len(n); i++ {
		if n[i] == 0 {
			return i
		}
	}
	return len(n)
}
