package api

// ManagedTypeAPI allocates and manipulates managed values. Operations on
// valid handles never fail, except integer division by zero which aborts the
// call. Nothing is ever deallocated: the arena is reclaimed when the call
// context ends.
type ManagedTypeAPI interface {
	MBufferNew() BufferHandle
	MBufferNewFromBytes(data []byte) BufferHandle
	MBufferLen(h BufferHandle) int
	// MBufferGetBytes returns a copy of the buffer contents.
	MBufferGetBytes(h BufferHandle) []byte
	MBufferSetBytes(h BufferHandle, data []byte)
	MBufferAppend(dest, src BufferHandle)
	MBufferAppendBytes(dest BufferHandle, data []byte)
	// MBufferCopySlice allocates a buffer holding src[start:start+length].
	// It reports false when the range is out of bounds.
	MBufferCopySlice(src BufferHandle, start, length int) (BufferHandle, bool)
	MBufferEq(a, b BufferHandle) bool

	BigIntNew(v int64) BigIntHandle
	BigIntSetUnsignedBytes(dest BigIntHandle, data []byte)
	// BigIntGetUnsignedBytes returns the big-endian magnitude, empty for zero.
	BigIntGetUnsignedBytes(h BigIntHandle) []byte
	BigIntSetInt64(dest BigIntHandle, v int64)
	BigIntIsInt64(h BigIntHandle) bool
	BigIntGetInt64(h BigIntHandle) int64
	BigIntAdd(dest, x, y BigIntHandle)
	BigIntSub(dest, x, y BigIntHandle)
	BigIntMul(dest, x, y BigIntHandle)
	// BigIntTDiv divides truncating toward zero.
	BigIntTDiv(dest, x, y BigIntHandle) error
	BigIntTMod(dest, x, y BigIntHandle) error
	BigIntCmp(x, y BigIntHandle) int
	BigIntSign(h BigIntHandle) int

	ValidateTokenIdentifier(h BufferHandle) bool
}

// BlockchainAPI exposes the executing contract's environment.
type BlockchainAPI interface {
	// GetGasLeft is read live on every call.
	GetGasLeft() uint64
	GetSCAddress() BufferHandle
	GetCaller() BufferHandle
	GetBalance(address BufferHandle) BigIntHandle
	GetBlockNonce() uint64
	GetBlockTimestamp() uint64
}

// CallValueAPI exposes the value attached to the incoming call. Accessors
// that can fail return an *errors.Abort with status errors.ExecutionFailed.
// The single-transfer accessors require at most one DCT transfer.
type CallValueAPI interface {
	CheckNotPayable() error
	MoaxValue() BigIntHandle
	DctValue() (BigIntHandle, error)
	Token() (BufferHandle, error)
	DctTokenNonce() (uint64, error)
	DctTokenType() (TokenType, error)
	DctNumTransfers() int
	DctValueByIndex(index int) (BigIntHandle, error)
	TokenByIndex(index int) (BufferHandle, error)
	DctTokenNonceByIndex(index int) (uint64, error)
	DctTokenTypeByIndex(index int) (TokenType, error)
}

// SendAPI performs synchronous sub-calls. Each call blocks until the target
// has fully executed. A failed target aborts the caller with the target's
// status and message.
type SendAPI interface {
	DeployContract(gas uint64, value BigIntHandle, code BufferHandle, meta CodeMetadata, args []BufferHandle) (BufferHandle, []BufferHandle, error)
	DeployFromSourceContract(gas uint64, value BigIntHandle, source BufferHandle, meta CodeMetadata, args []BufferHandle) (BufferHandle, []BufferHandle, error)
	UpgradeContract(to BufferHandle, gas uint64, value BigIntHandle, code BufferHandle, meta CodeMetadata, args []BufferHandle) error
	UpgradeFromSourceContract(to BufferHandle, gas uint64, value BigIntHandle, source BufferHandle, meta CodeMetadata, args []BufferHandle) error
	ExecuteOnDestContext(to BufferHandle, gas uint64, value BigIntHandle, function BufferHandle, args []BufferHandle) ([]BufferHandle, error)
}

// EndpointAPI reads the call arguments and produces its results.
type EndpointAPI interface {
	GetNumArguments() int
	GetArgument(index int) (BufferHandle, error)
	Finish(h BufferHandle)
	// SignalError returns the user error abort that ends the call.
	SignalError(message []byte) error
}

// StorageAPI reads and writes the executing contract's storage.
type StorageAPI interface {
	StorageStore(key, value BufferHandle)
	// StorageLoad returns an empty buffer for a missing key.
	StorageLoad(key BufferHandle) BufferHandle
}

// Backend is the full capability surface available to contract logic.
type Backend interface {
	ManagedTypeAPI
	BlockchainAPI
	CallValueAPI
	SendAPI
	EndpointAPI
	StorageAPI
}
