package sequence

import (
	"context"
	"encoding/binary"

	"github.com/ipfs/go-datastore"
)

// Counter is a monotonically increasing sequence number that persists to
// a datastore as it increments. The market uses it to record provider
// registration order, which is the deterministic tie-break during
// provider selection.
type Counter struct {
	ds   datastore.Datastore
	name datastore.Key
}

// New returns a new Counter for the given datastore and key
func New(ds datastore.Datastore, name datastore.Key) *Counter {
	return &Counter{ds, name}
}

// Next returns the next sequence value, updating it on disk in the
// process. If no value is present, it creates one and returns 0.
func (c *Counter) Next(ctx context.Context) (uint64, error) {
	has, err := c.ds.Has(ctx, c.name)
	if err != nil {
		return 0, err
	}

	var next uint64 = 0
	if has {
		curBytes, err := c.ds.Get(ctx, c.name)
		if err != nil {
			return 0, err
		}
		cur, _ := binary.Uvarint(curBytes)
		next = cur + 1
	}
	buf := make([]byte, binary.MaxVarintLen64)
	size := binary.PutUvarint(buf, next)

	return next, c.ds.Put(ctx, c.name, buf[:size])
}
