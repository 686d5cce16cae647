package watcher

// Queue is one kernel event channel with a single watch registered on it.
type Queue interface {
	// AddWatch subscribes to the kinds in mask for path. A queue carries at
	// most one watch.
	AddWatch(path string, mask Kind) (WatchID, error)

	// Read blocks until at least one record is available and fills buf
	// with packed records. It returns the number of valid bytes.
	Read(buf []byte) (int, error)

	// Close cancels the watch and releases the channel. It must be called
	// at most once; a pending Read returns an error once Close has run.
	Close() error
}
