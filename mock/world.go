package mock

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/types"
)

// VMType is embedded in every derived contract address.
var VMType = []byte{0x05, 0x00}

// Endpoint is one contract entry point.
type Endpoint func(b api.Backend) error

// Contract maps endpoint names to their logic. Deploy and upgrade run the
// "init" endpoint when present.
type Contract map[string]Endpoint

// InitEndpoint is run on deploy and upgrade.
const InitEndpoint = "init"

// TokenKey identifies a DCT balance.
type TokenKey struct {
	Token string
	Nonce uint64
}

// Account is the simulated state of one address.
type Account struct {
	Address      []byte
	Nonce        uint64
	Balance      *big.Int
	DCT          map[TokenKey]*big.Int
	Storage      map[string][]byte
	Code         []byte
	CodeMetadata api.CodeMetadata
	Owner        []byte
}

// NewAccount creates an empty account.
func NewAccount(address []byte) *Account {
	return &Account{
		Address: bytes.Clone(address),
		Balance: new(big.Int),
		DCT:     make(map[TokenKey]*big.Int),
		Storage: make(map[string][]byte),
	}
}

// IsContract reports whether code is deployed at the account.
func (a *Account) IsContract() bool {
	return len(a.Code) > 0
}

// DCTBalance returns the balance of a token, zero when absent.
func (a *Account) DCTBalance(token string, nonce uint64) *big.Int {
	if v, ok := a.DCT[TokenKey{Token: token, Nonce: nonce}]; ok {
		return new(big.Int).Set(v)
	}
	return new(big.Int)
}

// SetDCTBalance overwrites the balance of a token.
func (a *Account) SetDCTBalance(token string, nonce uint64, value *big.Int) {
	key := TokenKey{Token: token, Nonce: nonce}
	if value.Sign() == 0 {
		delete(a.DCT, key)
		return
	}
	a.DCT[key] = new(big.Int).Set(value)
}

func (a *Account) clone() *Account {
	c := &Account{
		Address:      bytes.Clone(a.Address),
		Nonce:        a.Nonce,
		Balance:      new(big.Int).Set(a.Balance),
		DCT:          make(map[TokenKey]*big.Int, len(a.DCT)),
		Storage:      make(map[string][]byte, len(a.Storage)),
		Code:         bytes.Clone(a.Code),
		CodeMetadata: a.CodeMetadata,
		Owner:        bytes.Clone(a.Owner),
	}
	for k, v := range a.DCT {
		c.DCT[k] = new(big.Int).Set(v)
	}
	for k, v := range a.Storage {
		c.Storage[k] = bytes.Clone(v)
	}
	return c
}

type newAddressKey struct {
	creator string
	nonce   uint64
}

// World is the simulated chain state shared by every call of a test.
type World struct {
	accounts     map[string]*Account
	contracts    map[string]Contract
	newAddresses map[newAddressKey][]byte

	BlockNonce     uint64
	BlockTimestamp uint64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		accounts:     make(map[string]*Account),
		contracts:    make(map[string]Contract),
		newAddresses: make(map[newAddressKey][]byte),
	}
}

// RegisterContract makes c the logic executed by accounts holding code.
func (w *World) RegisterContract(code []byte, c Contract) {
	w.contracts[string(code)] = c
}

// SetAccount stores acc, replacing any account at the same address.
func (w *World) SetAccount(acc *Account) {
	w.accounts[string(acc.Address)] = acc
}

// CreateAccount stores a fresh account with the given MOAX balance.
func (w *World) CreateAccount(address []byte, balance *big.Int) *Account {
	acc := NewAccount(address)
	if balance != nil {
		acc.Balance.Set(balance)
	}
	w.SetAccount(acc)
	return acc
}

// Account returns the live account at address.
func (w *World) Account(address []byte) (*Account, bool) {
	acc, ok := w.accounts[string(address)]
	return acc, ok
}

// SetNewAddress forces the address a deploy by creator at nonce receives.
func (w *World) SetNewAddress(creator []byte, nonce uint64, address []byte) {
	w.newAddresses[newAddressKey{creator: string(creator), nonce: nonce}] = bytes.Clone(address)
}

// NewAddress derives the address of a contract deployed by creator at
// creatorNonce: eight zero bytes, the VM type, bytes 10..30 of
// keccak256(creator || nonce little-endian), then the last two bytes of the
// creator address.
func (w *World) NewAddress(creator []byte, creatorNonce uint64) []byte {
	if addr, ok := w.newAddresses[newAddressKey{creator: string(creator), nonce: creatorNonce}]; ok {
		return bytes.Clone(addr)
	}

	h := sha3.NewLegacyKeccak256()
	h.Write(creator)
	h.Write(binary.LittleEndian.AppendUint64(nil, creatorNonce))
	base := h.Sum(nil)

	addr := make([]byte, 0, types.AddressLen)
	addr = append(addr, make([]byte, 8)...)
	addr = append(addr, VMType...)
	addr = append(addr, base[10:30]...)
	if len(creator) >= 2 {
		addr = append(addr, creator[len(creator)-2:]...)
	} else {
		addr = append(addr, 0, 0)
	}
	return addr
}

func (w *World) snapshot() map[string]*Account {
	snap := make(map[string]*Account, len(w.accounts))
	for k, v := range w.accounts {
		snap[k] = v.clone()
	}
	return snap
}

func (w *World) restore(snap map[string]*Account) {
	w.accounts = snap
}

// addressField renders an address for logs, bech32 when it has the right
// length.
func addressField(key string, addr []byte) zap.Field {
	if len(addr) == types.AddressLen {
		if s, err := types.EncodeBech32(addr); err == nil {
			return zap.String(key, s)
		}
	}
	return zap.String(key, hex.EncodeToString(addr))
}
