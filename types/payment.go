package types

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
)

// TokenPayment is one value transfer: token, nonce and amount.
type TokenPayment struct {
	Token  TokenIdentifier
	Nonce  uint64
	Amount BigUint
}

// NewTokenPayment builds a payment from its parts.
func NewTokenPayment(token TokenIdentifier, nonce uint64, amount BigUint) TokenPayment {
	return TokenPayment{Token: token, Nonce: nonce, Amount: amount}
}

// EmptyTokenPayment returns a payment bound to m, ready to be decoded into.
func EmptyTokenPayment(m api.ManagedTypeAPI) TokenPayment {
	return TokenPayment{Token: NewTokenIdentifier(m), Amount: NewBigUint(m)}
}

// TokenType classifies the payment by its nonce.
func (p TokenPayment) TokenType() api.TokenType {
	return api.TokenTypeFromNonce(p.Nonce)
}

func (p TokenPayment) DepEncodeOrHandleErr(dest codec.NestedEncodeOutput, h codec.ErrorHandler) error {
	if err := p.Token.DepEncodeOrHandleErr(dest, h); err != nil {
		return err
	}
	if err := codec.DepEncodeOrHandleErr(p.Nonce, dest, h); err != nil {
		return err
	}
	return p.Amount.DepEncodeOrHandleErr(dest, h)
}

func (p *TokenPayment) DepDecodeOrHandleErr(in codec.NestedDecodeInput, h codec.ErrorHandler) error {
	if err := p.Token.DepDecodeOrHandleErr(in, h); err != nil {
		return err
	}
	if err := codec.DepDecodeOrHandleErr(in, &p.Nonce, h); err != nil {
		return err
	}
	return p.Amount.DepDecodeOrHandleErr(in, h)
}

// MultiEncodeOrHandleErr pushes token, nonce and amount as three items.
func (p TokenPayment) MultiEncodeOrHandleErr(out codec.TopEncodeMultiOutput, h codec.ErrorHandler) error {
	if err := out.PushSingleValue(p.Token, h); err != nil {
		return err
	}
	if err := out.PushSingleValue(p.Nonce, h); err != nil {
		return err
	}
	return out.PushSingleValue(p.Amount, h)
}

// MultiDecodeOrHandleErr consumes token, nonce and amount.
func (p *TokenPayment) MultiDecodeOrHandleErr(in codec.TopDecodeMultiInput, h codec.ErrorHandler) error {
	if err := codec.MultiDecodeOrHandleErr(in, &p.Token, h); err != nil {
		return err
	}
	if err := codec.MultiDecodeOrHandleErr(in, &p.Nonce, h); err != nil {
		return err
	}
	return codec.MultiDecodeOrHandleErr(in, &p.Amount, h)
}
