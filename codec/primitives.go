package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dharitri/dharitri-wasm-go/errors"
)

// TopEncodeOrHandleErr writes the top-level encoding of v to out.
func TopEncodeOrHandleErr(v any, out TopEncodeOutput, h ErrorHandler) error {
	switch x := v.(type) {
	case TopEncoder:
		return x.TopEncodeOrHandleErr(out, h)
	case bool:
		if x {
			out.SetSlice([]byte{1})
		} else {
			out.SetSlice(nil)
		}
	case uint8:
		out.SetSlice(topEncodeUint64(uint64(x)))
	case uint16:
		out.SetSlice(topEncodeUint64(uint64(x)))
	case uint32:
		out.SetSlice(topEncodeUint64(uint64(x)))
	case uint64:
		out.SetSlice(topEncodeUint64(x))
	case uint:
		if uint64(x) > math.MaxUint32 {
			return h.HandleError(errors.ValueOutOfRange(errors.PhaseEncode, nil, x))
		}
		out.SetSlice(topEncodeUint64(uint64(x)))
	case int8:
		out.SetSlice(topEncodeInt64(int64(x)))
	case int16:
		out.SetSlice(topEncodeInt64(int64(x)))
	case int32:
		out.SetSlice(topEncodeInt64(int64(x)))
	case int64:
		out.SetSlice(topEncodeInt64(x))
	case int:
		if x > math.MaxInt32 || x < math.MinInt32 {
			return h.HandleError(errors.ValueOutOfRange(errors.PhaseEncode, nil, x))
		}
		out.SetSlice(topEncodeInt64(int64(x)))
	case []byte:
		out.SetSlice(x)
	case string:
		out.SetSlice([]byte(x))
	case NestedEncoder:
		var buf Buffer
		if err := x.DepEncodeOrHandleErr(&buf, h); err != nil {
			return err
		}
		out.SetSlice(buf.Bytes())
	default:
		return h.HandleError(errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("%T", v)))
	}
	return nil
}

// DepEncodeOrHandleErr appends the nested encoding of v to dest.
func DepEncodeOrHandleErr(v any, dest NestedEncodeOutput, h ErrorHandler) error {
	switch x := v.(type) {
	case NestedEncoder:
		return x.DepEncodeOrHandleErr(dest, h)
	case bool:
		if x {
			dest.PushByte(1)
		} else {
			dest.PushByte(0)
		}
	case uint8:
		dest.PushByte(x)
	case uint16:
		dest.Write(binary.BigEndian.AppendUint16(nil, x))
	case uint32:
		dest.Write(binary.BigEndian.AppendUint32(nil, x))
	case uint64:
		dest.Write(binary.BigEndian.AppendUint64(nil, x))
	case uint:
		if uint64(x) > math.MaxUint32 {
			return h.HandleError(errors.ValueOutOfRange(errors.PhaseEncode, nil, x))
		}
		dest.Write(binary.BigEndian.AppendUint32(nil, uint32(x)))
	case int8:
		dest.PushByte(byte(x))
	case int16:
		dest.Write(binary.BigEndian.AppendUint16(nil, uint16(x)))
	case int32:
		dest.Write(binary.BigEndian.AppendUint32(nil, uint32(x)))
	case int64:
		dest.Write(binary.BigEndian.AppendUint64(nil, uint64(x)))
	case int:
		if x > math.MaxInt32 || x < math.MinInt32 {
			return h.HandleError(errors.ValueOutOfRange(errors.PhaseEncode, nil, x))
		}
		dest.Write(binary.BigEndian.AppendUint32(nil, uint32(int32(x))))
	case []byte:
		return DepEncodeBytes(x, dest, h)
	case string:
		return DepEncodeBytes([]byte(x), dest, h)
	default:
		return h.HandleError(errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("%T", v)))
	}
	return nil
}

// DepEncodeBytes writes a length-prefixed byte string.
func DepEncodeBytes(b []byte, dest NestedEncodeOutput, h ErrorHandler) error {
	if uint64(len(b)) > math.MaxUint32 {
		return h.HandleError(errors.ValueTooLong(errors.PhaseEncode, nil, len(b)))
	}
	dest.Write(binary.BigEndian.AppendUint32(nil, uint32(len(b))))
	dest.Write(b)
	return nil
}

// TopDecodeOrHandleErr decodes the top-level payload in into dst, which must
// be a pointer to a supported type or implement TopDecoder.
func TopDecodeOrHandleErr(in TopDecodeInput, dst any, h ErrorHandler) error {
	switch d := dst.(type) {
	case TopDecoder:
		return d.TopDecodeOrHandleErr(in, h)
	case *bool:
		v, err := topDecodeUint64(in.Bytes(), 8, h)
		if err != nil {
			return err
		}
		switch v {
		case 0:
			*d = false
		case 1:
			*d = true
		default:
			return h.HandleError(errors.ValueOutOfRange(errors.PhaseDecode, nil, v))
		}
	case *uint8:
		v, err := topDecodeUint64(in.Bytes(), 1, h)
		if err != nil {
			return err
		}
		*d = uint8(v)
	case *uint16:
		v, err := topDecodeUint64(in.Bytes(), 2, h)
		if err != nil {
			return err
		}
		*d = uint16(v)
	case *uint32:
		v, err := topDecodeUint64(in.Bytes(), 4, h)
		if err != nil {
			return err
		}
		*d = uint32(v)
	case *uint64:
		v, err := topDecodeUint64(in.Bytes(), 8, h)
		if err != nil {
			return err
		}
		*d = v
	case *uint:
		v, err := topDecodeUint64(in.Bytes(), 4, h)
		if err != nil {
			return err
		}
		*d = uint(v)
	case *int8:
		v, err := topDecodeInt64(in.Bytes(), 1, h)
		if err != nil {
			return err
		}
		*d = int8(v)
	case *int16:
		v, err := topDecodeInt64(in.Bytes(), 2, h)
		if err != nil {
			return err
		}
		*d = int16(v)
	case *int32:
		v, err := topDecodeInt64(in.Bytes(), 4, h)
		if err != nil {
			return err
		}
		*d = int32(v)
	case *int64:
		v, err := topDecodeInt64(in.Bytes(), 8, h)
		if err != nil {
			return err
		}
		*d = v
	case *int:
		v, err := topDecodeInt64(in.Bytes(), 4, h)
		if err != nil {
			return err
		}
		*d = int(v)
	case *[]byte:
		b := in.Bytes()
		*d = append(make([]byte, 0, len(b)), b...)
	case *string:
		*d = string(in.Bytes())
	case NestedDecoder:
		r := NewReader(in.Bytes())
		if err := d.DepDecodeOrHandleErr(r, h); err != nil {
			return err
		}
		if r.Remaining() != 0 {
			return h.HandleError(errors.InputTooLong(errors.PhaseDecode, nil))
		}
	default:
		return h.HandleError(errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("%T", dst)))
	}
	return nil
}

// DepDecodeOrHandleErr decodes the next nested value from in into dst.
func DepDecodeOrHandleErr(in NestedDecodeInput, dst any, h ErrorHandler) error {
	switch d := dst.(type) {
	case NestedDecoder:
		return d.DepDecodeOrHandleErr(in, h)
	case *bool:
		b, err := readFixed(in, 1, h)
		if err != nil {
			return err
		}
		switch b[0] {
		case 0:
			*d = false
		case 1:
			*d = true
		default:
			return h.HandleError(errors.ValueOutOfRange(errors.PhaseDecode, nil, b[0]))
		}
	case *uint8:
		b, err := readFixed(in, 1, h)
		if err != nil {
			return err
		}
		*d = b[0]
	case *uint16:
		b, err := readFixed(in, 2, h)
		if err != nil {
			return err
		}
		*d = binary.BigEndian.Uint16(b)
	case *uint32:
		b, err := readFixed(in, 4, h)
		if err != nil {
			return err
		}
		*d = binary.BigEndian.Uint32(b)
	case *uint64:
		b, err := readFixed(in, 8, h)
		if err != nil {
			return err
		}
		*d = binary.BigEndian.Uint64(b)
	case *uint:
		b, err := readFixed(in, 4, h)
		if err != nil {
			return err
		}
		*d = uint(binary.BigEndian.Uint32(b))
	case *int8:
		b, err := readFixed(in, 1, h)
		if err != nil {
			return err
		}
		*d = int8(b[0])
	case *int16:
		b, err := readFixed(in, 2, h)
		if err != nil {
			return err
		}
		*d = int16(binary.BigEndian.Uint16(b))
	case *int32:
		b, err := readFixed(in, 4, h)
		if err != nil {
			return err
		}
		*d = int32(binary.BigEndian.Uint32(b))
	case *int64:
		b, err := readFixed(in, 8, h)
		if err != nil {
			return err
		}
		*d = int64(binary.BigEndian.Uint64(b))
	case *int:
		b, err := readFixed(in, 4, h)
		if err != nil {
			return err
		}
		*d = int(int32(binary.BigEndian.Uint32(b)))
	case *[]byte:
		b, err := DepDecodeBytes(in, h)
		if err != nil {
			return err
		}
		*d = append(make([]byte, 0, len(b)), b...)
	case *string:
		b, err := DepDecodeBytes(in, h)
		if err != nil {
			return err
		}
		*d = string(b)
	default:
		return h.HandleError(errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("%T", dst)))
	}
	return nil
}

// DepDecodeBytes reads a length-prefixed byte string. The result aliases the
// input.
func DepDecodeBytes(in NestedDecodeInput, h ErrorHandler) ([]byte, error) {
	lb, err := readFixed(in, 4, h)
	if err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lb)
	if uint64(n) > uint64(in.Remaining()) {
		return nil, h.HandleError(errors.InputTooShort(errors.PhaseDecode, nil))
	}
	b, _ := in.ReadSlice(int(n))
	return b, nil
}

func readFixed(in NestedDecodeInput, n int, h ErrorHandler) ([]byte, error) {
	b, ok := in.ReadSlice(n)
	if !ok {
		return nil, h.HandleError(errors.InputTooShort(errors.PhaseDecode, nil))
	}
	return b, nil
}

// topEncodeUint64 returns the big-endian bytes of v without leading zeros.
func topEncodeUint64(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	i := 0
	for i < 8 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// topEncodeInt64 returns the shortest two's complement big-endian bytes of v.
func topEncodeInt64(v int64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	i := 0
	if v >= 0 {
		for i < 8 && buf[i] == 0 {
			i++
		}
		if i > 0 && i < 8 && buf[i]&0x80 != 0 {
			i--
		}
		return buf[i:]
	}
	for i < 7 && buf[i] == 0xff && buf[i+1]&0x80 != 0 {
		i++
	}
	return buf[i:]
}

func topDecodeUint64(b []byte, width int, h ErrorHandler) (uint64, error) {
	if len(b) > width {
		return 0, h.HandleError(errors.InputTooLong(errors.PhaseDecode, nil))
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

func topDecodeInt64(b []byte, width int, h ErrorHandler) (int64, error) {
	if len(b) > width {
		return 0, h.HandleError(errors.InputTooLong(errors.PhaseDecode, nil))
	}
	if len(b) == 0 {
		return 0, nil
	}
	var v int64
	if b[0]&0x80 != 0 {
		v = -1
	}
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	return v, nil
}
