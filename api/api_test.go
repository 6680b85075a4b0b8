package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

func TestTokenTypeFromNonce(t *testing.T) {
	for _, nonce := range []uint64{0, 1, 2, 1 << 40} {
		want := NonFungible
		if nonce == 0 {
			want = Fungible
		}
		assert.Equal(t, want, TokenTypeFromNonce(nonce), "nonce %d", nonce)
	}
}

func TestTokenTypeFromCode(t *testing.T) {
	assert.Equal(t, Fungible, TokenTypeFromCode(0))
	assert.Equal(t, NonFungible, TokenTypeFromCode(1))
	assert.Equal(t, SemiFungible, TokenTypeFromCode(2))
	assert.Equal(t, Meta, TokenTypeFromCode(3))
	assert.Equal(t, Invalid, TokenTypeFromCode(4))
	assert.Equal(t, Invalid, TokenTypeFromCode(-1))
	assert.Equal(t, "NonFungible", NonFungible.String())
}

func TestCodeMetadata(t *testing.T) {
	m := CodeMetadataUpgradeable | CodeMetadataPayable
	assert.True(t, m.IsUpgradeable())
	assert.True(t, m.IsPayable())
	assert.False(t, m.IsReadable())
	assert.False(t, m.IsPayableBySC())
	assert.Equal(t, "upgradeable|payable", m.String())
	assert.Equal(t, "default", CodeMetadataDefault.String())

	top, err := codec.TopEncodeToBytes(m)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, top)

	nested, err := codec.DepEncodeToBytes(m)
	require.NoError(t, err)
	assert.Equal(t, top, nested)

	var back CodeMetadata
	require.NoError(t, codec.TopDecodeFromBytes(top, &back))
	assert.Equal(t, m, back)

	parsed, err := CodeMetadataFromBytes([]byte{0x04, 0x00})
	require.NoError(t, err)
	assert.Equal(t, CodeMetadataReadable, parsed)
}

func TestCodeMetadata_DecodeErrors(t *testing.T) {
	var m CodeMetadata
	err := codec.TopDecodeFromBytes([]byte{1}, &m)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInputTooShort})

	err = codec.TopDecodeFromBytes([]byte{1, 2, 3}, &m)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInputTooLong})

	_, err = CodeMetadataFromBytes(nil)
	assert.Error(t, err)
}

func TestHandleValid(t *testing.T) {
	assert.False(t, BufferHandle(InvalidHandle).Valid())
	assert.True(t, BufferHandle(1).Valid())
	assert.False(t, BigIntHandle(0).Valid())
}
