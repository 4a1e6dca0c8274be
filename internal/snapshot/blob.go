package snapshot

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/host"
)

var (
	blobEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	blobDecoder, _ = zstd.NewReader(nil)
)

// Blob is an opaque sub-system state kept compressed while it sits in the
// ring buffer. The zero Blob holds nothing and is skipped on restore.
type Blob struct {
	data []byte
	size int
	set  bool
}

// NewBlob compresses raw. A nil raw yields the zero Blob.
func NewBlob(raw []byte) Blob {
	if raw == nil {
		return Blob{}
	}
	return Blob{
		data: blobEncoder.EncodeAll(raw, nil),
		size: len(raw),
		set:  true,
	}
}

// IsZero reports whether the blob holds no state.
func (b Blob) IsZero() bool {
	return !b.set
}

// Size is the uncompressed length.
func (b Blob) Size() int {
	return b.size
}

// Bytes decompresses the blob.
func (b Blob) Bytes() ([]byte, error) {
	if !b.set {
		return nil, nil
	}
	raw, err := blobDecoder.DecodeAll(b.data, make([]byte, 0, b.size))
	if err != nil {
		return nil, fmt.Errorf("decoding blob: %w", err)
	}
	return raw, nil
}

// SaveBlob captures keeper's state. A nil keeper yields the zero Blob.
func SaveBlob(keeper host.StateKeeper) (Blob, error) {
	if keeper == nil {
		return Blob{}, nil
	}
	raw, err := keeper.SaveState()
	if err != nil {
		return Blob{}, err
	}
	return NewBlob(raw), nil
}

// LoadBlob hands b back to keeper. Zero blobs and nil keepers are no-ops.
func LoadBlob(keeper host.StateKeeper, b Blob) error {
	if keeper == nil || b.IsZero() {
		return nil
	}
	raw, err := b.Bytes()
	if err != nil {
		return err
	}
	return keeper.LoadState(raw)
}
