package watcher

const (
	// DefaultBufferSize is the 4 KiB read buffer used when none is configured.
	DefaultBufferSize = 4096

	// MinBufferSize holds one record with the longest possible name.
	// A smaller buffer makes inotify reads fail with EINVAL.
	MinBufferSize = HeaderSize + nameMax + 1
)

// Options configures how the queue is drained.
type Options struct {
	BufferSize int
}

// setDefaults applies default values to unset options.
func (o *Options) setDefaults() {
	if o.BufferSize == 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.BufferSize < MinBufferSize {
		o.BufferSize = MinBufferSize
	}
}

// NewBuffer allocates a read buffer sized by opts.
func NewBuffer(opts Options) []byte {
	opts.setDefaults()
	return make([]byte, opts.BufferSize)
}
