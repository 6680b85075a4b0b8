package api

// TokenType classifies a DCT transfer.
type TokenType uint8

const (
	Fungible TokenType = iota
	NonFungible
	SemiFungible
	Meta
	Invalid
)

var tokenTypeNames = [...]string{
	Fungible:     "Fungible",
	NonFungible:  "NonFungible",
	SemiFungible: "SemiFungible",
	Meta:         "Meta",
	Invalid:      "Invalid",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "Invalid"
}

// TokenTypeFromNonce is the call value classification: nonce zero is
// fungible, anything else non-fungible. Semi-fungible and meta tokens are
// not distinguished at this layer.
func TokenTypeFromNonce(nonce uint64) TokenType {
	if nonce == 0 {
		return Fungible
	}
	return NonFungible
}

// TokenTypeFromCode maps the VM's numeric token type.
func TokenTypeFromCode(code int32) TokenType {
	if code < 0 || code >= int32(Invalid) {
		return Invalid
	}
	return TokenType(code)
}
