package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode    Phase = "encode"    // Go value to wire bytes
	PhaseDecode    Phase = "decode"    // wire bytes to Go value
	PhaseManaged   Phase = "managed"   // managed value arena
	PhaseCallValue Phase = "callvalue" // incoming call value resolution
	PhaseSend      Phase = "send"      // deploy/upgrade/call dispatch
	PhaseHost      Phase = "host"      // VM import surface
	PhaseScenario  Phase = "scenario"  // scenario loading and checks
	PhaseLoad      Phase = "load"      // wasm module loading
)

// Kind categorizes the error
type Kind string

const (
	KindInputTooShort   Kind = "input_too_short"
	KindInputTooLong    Kind = "input_too_long"
	KindValueOutOfRange Kind = "value_out_of_range"
	KindValueTooLong    Kind = "value_too_long"
	KindInvalidData     Kind = "invalid_data"
	KindUnsupported     Kind = "unsupported"
	KindNotEnoughArgs   Kind = "not_enough_arguments"
	KindTooManyArgs     Kind = "too_many_arguments"
	KindTypeMismatch    Kind = "type_mismatch"
	KindInvalidHandle   Kind = "invalid_handle"
	KindNotFound        Kind = "not_found"
	KindInvalidInput    Kind = "invalid_input"
	KindMissingImport   Kind = "missing_import"
	KindInstantiation   Kind = "instantiation"
	KindExpectation     Kind = "expectation"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Message is the short wire-facing text of the error, used when an error is
// converted into an abort message. It is the detail when present, the kind
// otherwise.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return strings.ReplaceAll(string(e.Kind), "_", " ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InputTooShort creates an error for a nested input that ended early
func InputTooShort(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInputTooShort,
		Path:   path,
		Detail: "input too short",
	}
}

// InputTooLong creates an error for input left over after decoding
func InputTooLong(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInputTooLong,
		Path:   path,
		Detail: "input too long",
	}
}

// ValueOutOfRange creates an error for a decoded value outside its domain
func ValueOutOfRange(phase Phase, path []string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValueOutOfRange,
		Path:   path,
		Detail: "value out of range",
		Value:  value,
	}
}

// ValueTooLong creates an error for a value whose encoding exceeds its frame
func ValueTooLong(phase Phase, path []string, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValueTooLong,
		Path:   path,
		Detail: "value too long",
		Value:  length,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		GoType: goType,
		Detail: "unsupported operation",
	}
}

// NotEnoughArguments creates an error for a multi-value input that ran out
func NotEnoughArguments(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotEnoughArgs,
		Detail: "not enough arguments",
	}
}

// TooManyArguments creates an error for unconsumed multi-value items
func TooManyArguments(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTooManyArgs,
		Detail: "too many arguments",
	}
}

// InvalidHandle creates an error for a handle unknown to the current context
func InvalidHandle(phase Phase, kind string, handle int32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("invalid %s handle %d", kind, handle),
		Value:  handle,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingImport represents a single unresolved import
type MissingImport struct {
	Module   string // e.g., "env"
	Function string // e.g., "mBufferNew"
}

// MissingImportsError is returned when a guest module imports functions the
// host surface does not provide
type MissingImportsError struct {
	Imports []MissingImport
}

// NewMissingImportsError creates an error from a list of "module#function" strings
func NewMissingImportsError(imports []string) *MissingImportsError {
	result := &MissingImportsError{
		Imports: make([]MissingImport, 0, len(imports)),
	}
	for _, imp := range imports {
		mod, fn := parseImportKey(imp)
		result.Imports = append(result.Imports, MissingImport{
			Module:   mod,
			Function: fn,
		})
	}
	return result
}

func parseImportKey(key string) (module, function string) {
	mod, fn, found := strings.Cut(key, "#")
	if found {
		return mod, fn
	}
	return key, ""
}

func (e *MissingImportsError) Error() string {
	if len(e.Imports) == 0 {
		return "[load] missing_import: no imports specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("missing %d host function(s):\n", len(e.Imports)))

	byModule := make(map[string][]string)
	var order []string
	for _, imp := range e.Imports {
		if _, exists := byModule[imp.Module]; !exists {
			order = append(order, imp.Module)
		}
		byModule[imp.Module] = append(byModule[imp.Module], imp.Function)
	}

	for _, mod := range order {
		b.WriteString("\n  ")
		b.WriteString(mod)
		b.WriteString(":\n")
		for _, fn := range byModule[mod] {
			b.WriteString("    - ")
			b.WriteString(fn)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *MissingImportsError) Is(target error) bool {
	_, ok := target.(*MissingImportsError)
	return ok
}
