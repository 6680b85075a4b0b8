package codec

import (
	stderrors "errors"
	"testing"

	"github.com/dharitri/dharitri-wasm-go/errors"
)

func TestDefaultErrorHandler(t *testing.T) {
	var dst uint8
	err := TopDecodeOrHandleErr(RawInput{1, 2}, &dst, DefaultErrorHandler{})

	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if e.Kind != errors.KindInputTooLong {
		t.Fatalf("Kind = %v", e.Kind)
	}
	if _, ok := errors.AsAbort(err); ok {
		t.Fatal("default handler must not abort")
	}
}

func TestExitErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		handler ExitErrorHandler
		input   []byte
		status  errors.ReturnCode
		message string
	}{
		{
			name:    "argument decode",
			handler: Exit(errors.MsgArgDecodePrefix + "amount" + errors.MsgArgDecodeSuffix),
			input:   []byte{1, 2, 3, 4, 5, 6, 7, 8, 9},
			status:  errors.UserError,
			message: "argument decode error (amount): input too long",
		},
		{
			name:    "explicit status",
			handler: ExitErrorHandler{Prefix: "x: ", Status: errors.ExecutionFailed},
			input:   make([]byte, 9),
			status:  errors.ExecutionFailed,
			message: "x: input too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst uint64
			err := TopDecodeOrHandleErr(RawInput(tt.input), &dst, tt.handler)
			a, ok := errors.AsAbort(err)
			if !ok {
				t.Fatalf("expected abort, got %v", err)
			}
			if a.Status != tt.status {
				t.Errorf("Status = %v, want %v", a.Status, tt.status)
			}
			if string(a.Message) != tt.message {
				t.Errorf("Message = %q, want %q", a.Message, tt.message)
			}
		})
	}
}

func TestExitErrorHandler_Encode(t *testing.T) {
	var buf Buffer
	err := TopEncodeOrHandleErr(3.5, &buf, Exit(errors.MsgContractCallEncode))
	a, ok := errors.AsAbort(err)
	if !ok {
		t.Fatalf("expected abort, got %v", err)
	}
	if string(a.Message) != "contract call encode error: unsupported operation" {
		t.Fatalf("Message = %q", a.Message)
	}
}
