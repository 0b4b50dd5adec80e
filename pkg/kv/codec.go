package kv

import (
	"github.com/DataDog/zstd"
	"github.com/brafiq/bearmaps/pkg/datastructure"
	"github.com/kelindar/binary"
)

// EncodeWayBuckets serializes buckets and compresses the result with zstd.
func EncodeWayBuckets(buckets []datastructure.WayBucket) ([]byte, error) {
	encoded, err := binary.Marshal(buckets)
	if err != nil {
		return nil, err
	}
	return zstd.Compress(nil, encoded)
}

// DecodeWayBuckets reverses EncodeWayBuckets.
func DecodeWayBuckets(bb []byte) ([]datastructure.WayBucket, error) {
	raw, err := zstd.Decompress(nil, bb)
	if err != nil {
		return nil, err
	}
	var buckets []datastructure.WayBucket
	if err := binary.Unmarshal(raw, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
