package codec

// Buffer is a growable byte output usable both as a top-level and as a
// nested encode output.
type Buffer struct {
	data []byte
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// SetSlice replaces the buffer contents.
func (b *Buffer) SetSlice(p []byte) {
	b.data = append(b.data[:0], p...)
}

// Write appends p.
func (b *Buffer) Write(p []byte) {
	b.data = append(b.data, p...)
}

// PushByte appends a single byte.
func (b *Buffer) PushByte(c byte) {
	b.data = append(b.data, c)
}

// Bytes returns the buffer contents. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// RawInput is a top-level input over a byte slice.
type RawInput []byte

// Bytes returns the payload.
func (r RawInput) Bytes() []byte {
	return r
}

// Reader is a nested decode input over a byte slice with position tracking.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadSlice returns the next n bytes. The slice aliases the reader's data.
func (r *Reader) ReadSlice(n int) ([]byte, bool) {
	if n < 0 || n > r.Remaining() {
		return nil, false
	}
	s := r.data[r.pos : r.pos+n]
	r.pos += n
	return s, true
}

// ArgsInput is a multi-value input over a list of top-level payloads.
type ArgsInput struct {
	args [][]byte
	next int
}

// NewArgsInput creates a multi-value input over args.
func NewArgsInput(args [][]byte) *ArgsInput {
	return &ArgsInput{args: args}
}

// HasNext reports whether items remain.
func (a *ArgsInput) HasNext() bool {
	return a.next < len(a.args)
}

// NextValueInput returns the next item.
func (a *ArgsInput) NextValueInput() (TopDecodeInput, bool) {
	if !a.HasNext() {
		return nil, false
	}
	v := RawInput(a.args[a.next])
	a.next++
	return v, true
}

// Remaining returns the number of unconsumed items.
func (a *ArgsInput) Remaining() int {
	return len(a.args) - a.next
}

// ArgsOutput collects top-level items as byte slices.
type ArgsOutput struct {
	Args [][]byte
}

// PushSingleValue top-encodes v and appends it.
func (a *ArgsOutput) PushSingleValue(v any, h ErrorHandler) error {
	var buf Buffer
	if err := TopEncodeOrHandleErr(v, &buf, h); err != nil {
		return err
	}
	item := make([]byte, buf.Len())
	copy(item, buf.Bytes())
	a.Args = append(a.Args, item)
	return nil
}
