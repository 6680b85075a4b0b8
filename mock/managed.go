package mock

import (
	"bytes"
	"math/big"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// Invalid handles panic with an *errors.Error: typed wrappers only ever pass
// handles produced by this context.

func (c *TxContext) MBufferNew() api.BufferHandle {
	return c.buffers.Insert([]byte{})
}

func (c *TxContext) MBufferNewFromBytes(data []byte) api.BufferHandle {
	return c.newBuffer(data)
}

func (c *TxContext) MBufferLen(h api.BufferHandle) int {
	return len(c.buffer(h))
}

func (c *TxContext) MBufferGetBytes(h api.BufferHandle) []byte {
	return bytes.Clone(c.buffer(h))
}

func (c *TxContext) MBufferSetBytes(h api.BufferHandle, data []byte) {
	c.buffer(h)
	c.buffers.Set(h, append([]byte{}, data...))
}

func (c *TxContext) MBufferAppend(dest, src api.BufferHandle) {
	c.MBufferAppendBytes(dest, c.buffer(src))
}

func (c *TxContext) MBufferAppendBytes(dest api.BufferHandle, data []byte) {
	cur := c.buffer(dest)
	next := make([]byte, 0, len(cur)+len(data))
	next = append(append(next, cur...), data...)
	c.buffers.Set(dest, next)
}

func (c *TxContext) MBufferCopySlice(src api.BufferHandle, start, length int) (api.BufferHandle, bool) {
	data := c.buffer(src)
	if start < 0 || length < 0 || start+length > len(data) {
		return api.InvalidHandle, false
	}
	return c.newBuffer(data[start : start+length]), true
}

func (c *TxContext) MBufferEq(a, b api.BufferHandle) bool {
	return bytes.Equal(c.buffer(a), c.buffer(b))
}

func (c *TxContext) BigIntNew(v int64) api.BigIntHandle {
	return c.bigInts.Insert(big.NewInt(v))
}

func (c *TxContext) BigIntSetUnsignedBytes(dest api.BigIntHandle, data []byte) {
	c.bigInt(dest)
	c.bigInts.Set(dest, new(big.Int).SetBytes(data))
}

func (c *TxContext) BigIntGetUnsignedBytes(h api.BigIntHandle) []byte {
	return c.bigInt(h).Bytes()
}

func (c *TxContext) BigIntSetInt64(dest api.BigIntHandle, v int64) {
	c.bigInt(dest)
	c.bigInts.Set(dest, big.NewInt(v))
}

func (c *TxContext) BigIntIsInt64(h api.BigIntHandle) bool {
	return c.bigInt(h).IsInt64()
}

func (c *TxContext) BigIntGetInt64(h api.BigIntHandle) int64 {
	return c.bigInt(h).Int64()
}

func (c *TxContext) BigIntAdd(dest, x, y api.BigIntHandle) {
	c.bigInt(dest)
	c.bigInts.Set(dest, new(big.Int).Add(c.bigInt(x), c.bigInt(y)))
}

func (c *TxContext) BigIntSub(dest, x, y api.BigIntHandle) {
	c.bigInt(dest)
	c.bigInts.Set(dest, new(big.Int).Sub(c.bigInt(x), c.bigInt(y)))
}

func (c *TxContext) BigIntMul(dest, x, y api.BigIntHandle) {
	c.bigInt(dest)
	c.bigInts.Set(dest, new(big.Int).Mul(c.bigInt(x), c.bigInt(y)))
}

func (c *TxContext) BigIntTDiv(dest, x, y api.BigIntHandle) error {
	c.bigInt(dest)
	d := c.bigInt(y)
	if d.Sign() == 0 {
		return errors.NewAbort(errors.ExecutionFailed, errors.MsgDivisionByZero)
	}
	c.bigInts.Set(dest, new(big.Int).Quo(c.bigInt(x), d))
	return nil
}

func (c *TxContext) BigIntTMod(dest, x, y api.BigIntHandle) error {
	c.bigInt(dest)
	d := c.bigInt(y)
	if d.Sign() == 0 {
		return errors.NewAbort(errors.ExecutionFailed, errors.MsgDivisionByZero)
	}
	c.bigInts.Set(dest, new(big.Int).Rem(c.bigInt(x), d))
	return nil
}

func (c *TxContext) BigIntCmp(x, y api.BigIntHandle) int {
	return c.bigInt(x).Cmp(c.bigInt(y))
}

func (c *TxContext) BigIntSign(h api.BigIntHandle) int {
	return c.bigInt(h).Sign()
}

func (c *TxContext) ValidateTokenIdentifier(h api.BufferHandle) bool {
	return ValidTokenIdentifier(c.buffer(h))
}

// ValidTokenIdentifier reports whether id is a DCT identifier: a ticker of
// 3 to 10 upper case letters or digits, a dash, and 6 lower case hex
// characters.
func ValidTokenIdentifier(id []byte) bool {
	const randomLen = 6
	dash := bytes.IndexByte(id, '-')
	if dash < 3 || dash > 10 || len(id) != dash+1+randomLen {
		return false
	}
	for _, ch := range id[:dash] {
		if !(ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9') {
			return false
		}
	}
	for _, ch := range id[dash+1:] {
		if !(ch >= 'a' && ch <= 'f' || ch >= '0' && ch <= '9') {
			return false
		}
	}
	return true
}
