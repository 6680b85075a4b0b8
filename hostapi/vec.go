package hostapi

import (
	"encoding/binary"

	"github.com/dharitri/dharitri-wasm-go/errors"
)

// HandleSize is the width of one handle in a packed handle list.
const HandleSize = 4

// PackHandles lays handles out as consecutive 4-byte big-endian values.
func PackHandles(handles []int32) []byte {
	out := make([]byte, 0, len(handles)*HandleSize)
	for _, h := range handles {
		out = binary.BigEndian.AppendUint32(out, uint32(h))
	}
	return out
}

// UnpackHandles reverses PackHandles.
func UnpackHandles(data []byte) ([]int32, error) {
	if len(data)%HandleSize != 0 {
		return nil, errors.InvalidData(errors.PhaseHost, []string{"handles"}, "packed handle list length is not a multiple of 4")
	}
	out := make([]int32, len(data)/HandleSize)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(data[i*HandleSize:]))
	}
	return out, nil
}
