// Package callvalue resolves the value attached to an incoming call into
// managed wrappers.
//
// Every failing accessor returns an *errors.Abort produced by the backend.
// The simulation backend builds it locally; the host-bound backend receives
// it from the host trap. Callers return it unchanged.
package callvalue

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/types"
)

// Backend is the capability set a Resolver needs.
type Backend interface {
	api.ManagedTypeAPI
	api.CallValueAPI
}

// Resolver reads the call value of the current call.
type Resolver struct {
	b Backend
}

// New returns a resolver over b.
func New(b Backend) *Resolver {
	return &Resolver{b: b}
}

// CheckNotPayable aborts when the call carries MOAX or any DCT transfer.
func (r *Resolver) CheckNotPayable() error {
	return r.b.CheckNotPayable()
}

// MoaxValue returns the attached native coin amount, zero when none.
func (r *Resolver) MoaxValue() types.BigUint {
	return types.BigUintFromHandle(r.b, r.b.MoaxValue())
}

// NumTransfers returns the number of DCT transfers.
func (r *Resolver) NumTransfers() int {
	return r.b.DctNumTransfers()
}

// DctValue returns the amount of the single DCT transfer.
func (r *Resolver) DctValue() (types.BigUint, error) {
	h, err := r.b.DctValue()
	if err != nil {
		return types.BigUint{}, err
	}
	return types.BigUintFromHandle(r.b, h), nil
}

// Token returns the identifier of the single DCT transfer.
func (r *Resolver) Token() (types.TokenIdentifier, error) {
	h, err := r.b.Token()
	if err != nil {
		return types.TokenIdentifier{}, err
	}
	return types.TokenIdentifierFromHandle(r.b, h), nil
}

func (r *Resolver) DctTokenNonce() (uint64, error) {
	return r.b.DctTokenNonce()
}

func (r *Resolver) DctTokenType() (api.TokenType, error) {
	return r.b.DctTokenType()
}

func (r *Resolver) DctValueByIndex(index int) (types.BigUint, error) {
	h, err := r.b.DctValueByIndex(index)
	if err != nil {
		return types.BigUint{}, err
	}
	return types.BigUintFromHandle(r.b, h), nil
}

func (r *Resolver) TokenByIndex(index int) (types.TokenIdentifier, error) {
	h, err := r.b.TokenByIndex(index)
	if err != nil {
		return types.TokenIdentifier{}, err
	}
	return types.TokenIdentifierFromHandle(r.b, h), nil
}

func (r *Resolver) DctTokenNonceByIndex(index int) (uint64, error) {
	return r.b.DctTokenNonceByIndex(index)
}

func (r *Resolver) DctTokenTypeByIndex(index int) (api.TokenType, error) {
	return r.b.DctTokenTypeByIndex(index)
}

// PaymentByIndex assembles the transfer at index.
func (r *Resolver) PaymentByIndex(index int) (types.TokenPayment, error) {
	token, err := r.TokenByIndex(index)
	if err != nil {
		return types.TokenPayment{}, err
	}
	nonce, err := r.DctTokenNonceByIndex(index)
	if err != nil {
		return types.TokenPayment{}, err
	}
	amount, err := r.DctValueByIndex(index)
	if err != nil {
		return types.TokenPayment{}, err
	}
	return types.NewTokenPayment(token, nonce, amount), nil
}

// AllTransfers returns every DCT transfer in order.
func (r *Resolver) AllTransfers() ([]types.TokenPayment, error) {
	n := r.NumTransfers()
	out := make([]types.TokenPayment, 0, n)
	for i := 0; i < n; i++ {
		p, err := r.PaymentByIndex(i)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// SinglePayment returns the only DCT transfer. Any other count is a user
// error.
func (r *Resolver) SinglePayment() (types.TokenPayment, error) {
	if r.NumTransfers() != 1 {
		return types.TokenPayment{}, errors.NewAbort(errors.UserError, errors.MsgIncorrectNumDCT)
	}
	return r.PaymentByIndex(0)
}

// PaymentTokenPair returns the amount and token of the call payment: the
// MOAX value when no DCT was transferred, the single DCT transfer otherwise.
func (r *Resolver) PaymentTokenPair() (types.BigUint, types.TokenIdentifier, error) {
	if r.NumTransfers() == 0 {
		return r.MoaxValue(), types.MoaxToken(r.b), nil
	}
	token, err := r.Token()
	if err != nil {
		return types.BigUint{}, types.TokenIdentifier{}, err
	}
	amount, err := r.DctValue()
	if err != nil {
		return types.BigUint{}, types.TokenIdentifier{}, err
	}
	return amount, token, nil
}
