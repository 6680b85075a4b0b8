package vmhost_test

import "slices"

// A minimal wasm binary encoder for test contracts.

const (
	valI32 byte = 0x7f
	valI64 byte = 0x7e
)

type wasmImport struct {
	module  string
	name    string
	params  []byte
	results []byte
}

type wasmFunc struct {
	name    string
	params  []byte
	results []byte
	locals  []byte
	body    []byte
}

type wasmData struct {
	offset int32
	data   []byte
}

func uleb(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

func sleb(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0)
		if !done {
			b |= 0x80
		}
		out = append(out, b)
		if done {
			return out
		}
	}
}

func name(s string) []byte {
	return append(uleb(uint64(len(s))), s...)
}

func vec(items [][]byte) []byte {
	out := uleb(uint64(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func section(id byte, items [][]byte) []byte {
	content := vec(items)
	return slices.Concat([]byte{id}, uleb(uint64(len(content))), content)
}

func funcType(params, results []byte) []byte {
	return slices.Concat([]byte{0x60}, uleb(uint64(len(params))), params, uleb(uint64(len(results))), results)
}

// buildModule encodes a module with one page of exported memory. Functions
// are indexed after the imports, in order.
func buildModule(imports []wasmImport, funcs []wasmFunc, data []wasmData) []byte {
	var types, imps, fns, exports, codes, segments [][]byte

	for i, imp := range imports {
		types = append(types, funcType(imp.params, imp.results))
		imps = append(imps, slices.Concat(name(imp.module), name(imp.name), []byte{0x00}, uleb(uint64(i))))
	}
	exports = append(exports, slices.Concat(name("memory"), []byte{0x02, 0x00}))
	for j, f := range funcs {
		typeIdx := uint64(len(imports) + j)
		types = append(types, funcType(f.params, f.results))
		fns = append(fns, uleb(typeIdx))
		exports = append(exports, slices.Concat(name(f.name), []byte{0x00}, uleb(typeIdx)))

		var locals [][]byte
		for _, l := range f.locals {
			locals = append(locals, []byte{0x01, l})
		}
		body := slices.Concat(vec(locals), f.body, []byte{0x0b})
		codes = append(codes, slices.Concat(uleb(uint64(len(body))), body))
	}
	for _, d := range data {
		segments = append(segments, slices.Concat([]byte{0x00, 0x41}, sleb(int64(d.offset)), []byte{0x0b}, uleb(uint64(len(d.data))), d.data))
	}

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, section(1, types)...)
	if len(imps) > 0 {
		out = append(out, section(2, imps)...)
	}
	out = append(out, section(3, fns)...)
	out = append(out, section(5, [][]byte{{0x00, 0x01}})...)
	out = append(out, section(7, exports)...)
	out = append(out, section(10, codes)...)
	if len(segments) > 0 {
		out = append(out, section(11, segments)...)
	}
	return out
}

// Instructions.

func i32Const(v int32) []byte { return append([]byte{0x41}, sleb(int64(v))...) }
func i64Const(v int64) []byte { return append([]byte{0x42}, sleb(v)...) }
func localGet(i int) []byte   { return append([]byte{0x20}, uleb(uint64(i))...) }
func localSet(i int) []byte   { return append([]byte{0x21}, uleb(uint64(i))...) }

var (
	drop        = []byte{0x1a}
	unreachable = []byte{0x00}
)

func code(parts ...[]byte) []byte { return slices.Concat(parts...) }
