package endpoint

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// StorageBackend is the capability set of the storage helpers.
type StorageBackend interface {
	api.ManagedTypeAPI
	api.StorageAPI
}

// StorageSet top-encodes v under key. An empty encoding clears the key.
func StorageSet(b StorageBackend, key string, v any) error {
	var buf codec.Buffer
	if err := codec.TopEncodeOrHandleErr(v, &buf, codec.Exit(errors.MsgStorageEncode)); err != nil {
		return err
	}
	b.StorageStore(b.MBufferNewFromBytes([]byte(key)), b.MBufferNewFromBytes(buf.Bytes()))
	return nil
}

// StorageGet top-decodes the value under key into dst. A missing key
// decodes from empty input.
func StorageGet(b StorageBackend, key string, dst any) error {
	h := b.StorageLoad(b.MBufferNewFromBytes([]byte(key)))
	return codec.TopDecodeOrHandleErr(codec.RawInput(b.MBufferGetBytes(h)), dst, codec.Exit(errors.MsgStorageDecode))
}
