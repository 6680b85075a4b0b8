package vmhost

import (
	"github.com/tetratelabs/wazero/api"

	dharitriwasm "github.com/dharitri/dharitri-wasm-go"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// Memory adapts a guest's exported wazero memory. A module without memory
// yields a Memory whose every access fails.
type Memory struct {
	mem api.Memory
}

var (
	_ dharitriwasm.Memory      = (*Memory)(nil)
	_ dharitriwasm.MemorySizer = (*Memory)(nil)
)

func wrapMemory(mem api.Memory) *Memory {
	return &Memory{mem: mem}
}

func outOfBounds(op string, offset uint32, length int) error {
	return errors.New(errors.PhaseHost, errors.KindValueOutOfRange).
		Detail("memory %s out of bounds: offset=%d, length=%d", op, offset, length).
		Build()
}

func (m *Memory) noMemory() error {
	return errors.New(errors.PhaseHost, errors.KindNotFound).
		Detail("module exports no memory").
		Build()
}

// Size returns the memory size in bytes.
func (m *Memory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

// Read returns a view of guest memory. It is invalidated by memory growth.
func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	if m.mem == nil {
		return nil, m.noMemory()
	}
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, outOfBounds("read", offset, int(length))
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if m.mem == nil {
		return m.noMemory()
	}
	if !m.mem.Write(offset, data) {
		return outOfBounds("write", offset, len(data))
	}
	return nil
}

func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	if m.mem == nil {
		return 0, m.noMemory()
	}
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, outOfBounds("read", offset, 1)
	}
	return v, nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	if m.mem == nil {
		return 0, m.noMemory()
	}
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, outOfBounds("read", offset, 4)
	}
	return v, nil
}

func (m *Memory) ReadU64(offset uint32) (uint64, error) {
	if m.mem == nil {
		return 0, m.noMemory()
	}
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, outOfBounds("read", offset, 8)
	}
	return v, nil
}

func (m *Memory) WriteU8(offset uint32, value uint8) error {
	if m.mem == nil {
		return m.noMemory()
	}
	if !m.mem.WriteByte(offset, value) {
		return outOfBounds("write", offset, 1)
	}
	return nil
}

func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if m.mem == nil {
		return m.noMemory()
	}
	if !m.mem.WriteUint32Le(offset, value) {
		return outOfBounds("write", offset, 4)
	}
	return nil
}

func (m *Memory) WriteU64(offset uint32, value uint64) error {
	if m.mem == nil {
		return m.noMemory()
	}
	if !m.mem.WriteUint64Le(offset, value) {
		return outOfBounds("write", offset, 8)
	}
	return nil
}
