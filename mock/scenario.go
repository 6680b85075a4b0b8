package mock

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/types"
)

// Step types.
const (
	StepSetState   = "setState"
	StepDeploy     = "scDeploy"
	StepCall       = "scCall"
	StepCheckState = "checkState"
)

// Scenario is a sequence of transactions and state checks run against a
// World. Values use the scenario notation:
//
//	address:<name>  32 byte user address, name padded with '_'
//	sc:<name>       contract address, 8 zero bytes then the padded name
//	moa1...         bech32 address
//	str:<text>      raw bytes
//	0x<hex>         raw bytes
//	<decimal>       minimal big-endian unsigned bytes
type Scenario struct {
	Name     string            `toml:"name"`
	Accounts []ScenarioAccount `toml:"accounts"`
	Steps    []Step            `toml:"steps"`
}

// ScenarioAccount describes an account to set or check. Empty fields are
// left untouched by setState and unchecked by checkState.
type ScenarioAccount struct {
	Address      string            `toml:"address"`
	Nonce        *uint64           `toml:"nonce"`
	Balance      string            `toml:"balance"`
	DCT          []ScenarioDCT     `toml:"dct"`
	Storage      map[string]string `toml:"storage"`
	Code         string            `toml:"code"`
	CodeMetadata uint16            `toml:"code_metadata"`
	Owner        string            `toml:"owner"`
}

// ScenarioDCT is a token balance or a token transfer.
type ScenarioDCT struct {
	Token string `toml:"token"`
	Nonce uint64 `toml:"nonce"`
	Value string `toml:"value"`
}

// Step is one scenario action.
type Step struct {
	Type string `toml:"type"`
	ID   string `toml:"id"`

	Accounts       []ScenarioAccount `toml:"accounts"`
	NewAddresses   []NewAddress      `toml:"new_addresses"`
	BlockNonce     *uint64           `toml:"block_nonce"`
	BlockTimestamp *uint64           `toml:"block_timestamp"`

	From         string        `toml:"from"`
	To           string        `toml:"to"`
	Value        string        `toml:"value"`
	DCT          []ScenarioDCT `toml:"dct"`
	Function     string        `toml:"function"`
	Code         string        `toml:"code"`
	CodeMetadata uint16        `toml:"code_metadata"`
	Args         []string      `toml:"args"`
	GasLimit     uint64        `toml:"gas_limit"`

	Expect *Expect `toml:"expect"`
}

// NewAddress forces the address a deploy receives.
type NewAddress struct {
	Creator string `toml:"creator"`
	Nonce   uint64 `toml:"nonce"`
	Address string `toml:"address"`
}

// Expect is the expected outcome of a transaction. A nil Out is unchecked.
type Expect struct {
	Status  uint64   `toml:"status"`
	Message string   `toml:"message"`
	Out     []string `toml:"out"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseScenario, errors.KindNotFound, err, "read scenario "+path)
	}
	return ParseScenario(string(data))
}

// ParseScenario decodes a scenario from TOML.
func ParseScenario(data string) (*Scenario, error) {
	var s Scenario
	md, err := toml.Decode(data, &s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseScenario, errors.KindInvalidData, err, "decode scenario")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.InvalidData(errors.PhaseScenario, nil, fmt.Sprintf("unknown scenario keys %v", undecoded))
	}
	return &s, nil
}

// ScenarioAddress parses the address notation.
func ScenarioAddress(s string) ([]byte, error) {
	switch {
	case strings.HasPrefix(s, "address:"):
		return padName(nil, strings.TrimPrefix(s, "address:"))
	case strings.HasPrefix(s, "sc:"):
		return padName(make([]byte, 8), strings.TrimPrefix(s, "sc:"))
	case strings.HasPrefix(s, types.AddressHRP+"1"):
		return types.DecodeBech32(s)
	case strings.HasPrefix(s, "0x"):
		b, err := hex.DecodeString(s[2:])
		if err != nil || len(b) != types.AddressLen {
			return nil, errors.InvalidData(errors.PhaseScenario, nil, "invalid address "+s)
		}
		return b, nil
	}
	return nil, errors.InvalidData(errors.PhaseScenario, nil, "invalid address "+s)
}

func padName(prefix []byte, name string) ([]byte, error) {
	if len(prefix)+len(name) > types.AddressLen {
		return nil, errors.InvalidData(errors.PhaseScenario, nil, "address name too long: "+name)
	}
	addr := append(prefix, name...)
	return append(addr, bytes.Repeat([]byte{'_'}, types.AddressLen-len(addr))...), nil
}

// ScenarioBytes parses the value notation.
func ScenarioBytes(s string) ([]byte, error) {
	switch {
	case s == "":
		return []byte{}, nil
	case strings.HasPrefix(s, "str:"):
		return []byte(strings.TrimPrefix(s, "str:")), nil
	case strings.HasPrefix(s, "0x"):
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, errors.Wrap(errors.PhaseScenario, errors.KindInvalidData, err, "invalid hex "+s)
		}
		return b, nil
	case strings.HasPrefix(s, "address:"), strings.HasPrefix(s, "sc:"), strings.HasPrefix(s, types.AddressHRP+"1"):
		return ScenarioAddress(s)
	}
	n, err := scenarioBig(s)
	if err != nil {
		return nil, err
	}
	return n.Bytes(), nil
}

func scenarioBig(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(strings.ReplaceAll(s, ",", ""), 10)
	if !ok || n.Sign() < 0 {
		return nil, errors.InvalidData(errors.PhaseScenario, nil, "invalid number "+s)
	}
	return n, nil
}

func scenarioArgs(args []string) ([][]byte, error) {
	out := make([][]byte, len(args))
	for i, a := range args {
		b, err := ScenarioBytes(a)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func scenarioTransfers(ds []ScenarioDCT) ([]DCTTransfer, error) {
	out := make([]DCTTransfer, len(ds))
	for i, d := range ds {
		v, err := scenarioBig(d.Value)
		if err != nil {
			return nil, err
		}
		out[i] = DCTTransfer{Token: []byte(d.Token), Nonce: d.Nonce, Value: v}
	}
	return out, nil
}

// Run executes every step in order. A failed step does not stop the
// scenario; all failures are returned together.
func (s *Scenario) Run(w *World) error {
	errs := s.Setup(w)
	for i := range s.Steps {
		errs = multierr.Append(errs, s.RunStep(w, i))
	}
	return errs
}

// Setup applies the scenario's initial accounts.
func (s *Scenario) Setup(w *World) error {
	if len(s.Accounts) == 0 {
		return nil
	}
	if err := w.setState(Step{Accounts: s.Accounts}); err != nil {
		return errors.Wrap(errors.PhaseScenario, errors.KindExpectation, err, "accounts")
	}
	return nil
}

// StepID names step i, falling back to its type and position.
func (s *Scenario) StepID(i int) string {
	if id := s.Steps[i].ID; id != "" {
		return id
	}
	return fmt.Sprintf("%s#%d", s.Steps[i].Type, i)
}

// RunStep executes step i alone.
func (s *Scenario) RunStep(w *World, i int) error {
	id := s.StepID(i)
	Logger().Debug("scenario step", zap.String("scenario", s.Name), zap.String("step", id))
	if err := w.runStep(s.Steps[i]); err != nil {
		return errors.Wrap(errors.PhaseScenario, errors.KindExpectation, err, id)
	}
	return nil
}

func (w *World) runStep(step Step) error {
	switch step.Type {
	case StepSetState:
		return w.setState(step)
	case StepDeploy:
		return w.deployStep(step)
	case StepCall:
		return w.callStep(step)
	case StepCheckState:
		return w.checkState(step)
	}
	return errors.InvalidData(errors.PhaseScenario, nil, "unknown step type "+step.Type)
}

func (w *World) setState(step Step) error {
	if step.BlockNonce != nil {
		w.BlockNonce = *step.BlockNonce
	}
	if step.BlockTimestamp != nil {
		w.BlockTimestamp = *step.BlockTimestamp
	}
	for _, na := range step.NewAddresses {
		creator, err := ScenarioAddress(na.Creator)
		if err != nil {
			return err
		}
		addr, err := ScenarioAddress(na.Address)
		if err != nil {
			return err
		}
		w.SetNewAddress(creator, na.Nonce, addr)
	}
	for _, sa := range step.Accounts {
		if err := w.setAccount(sa); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) setAccount(sa ScenarioAccount) error {
	addr, err := ScenarioAddress(sa.Address)
	if err != nil {
		return err
	}
	acc, ok := w.Account(addr)
	if !ok {
		acc = w.CreateAccount(addr, nil)
	}
	if sa.Nonce != nil {
		acc.Nonce = *sa.Nonce
	}
	if sa.Balance != "" {
		b, err := scenarioBig(sa.Balance)
		if err != nil {
			return err
		}
		acc.Balance = b
	}
	for _, d := range sa.DCT {
		v, err := scenarioBig(d.Value)
		if err != nil {
			return err
		}
		acc.SetDCTBalance(d.Token, d.Nonce, v)
	}
	for k, v := range sa.Storage {
		key, err := ScenarioBytes(k)
		if err != nil {
			return err
		}
		val, err := ScenarioBytes(v)
		if err != nil {
			return err
		}
		acc.Storage[string(key)] = val
	}
	if sa.Code != "" {
		acc.Code = []byte(sa.Code)
		acc.CodeMetadata = api.CodeMetadata(sa.CodeMetadata)
	}
	if sa.Owner != "" {
		owner, err := ScenarioAddress(sa.Owner)
		if err != nil {
			return err
		}
		acc.Owner = owner
	}
	return nil
}

func (w *World) deployStep(step Step) error {
	if err := w.setState(Step{NewAddresses: step.NewAddresses}); err != nil {
		return err
	}
	from, err := ScenarioAddress(step.From)
	if err != nil {
		return err
	}
	value, err := scenarioBig(step.Value)
	if err != nil {
		return err
	}
	args, err := scenarioArgs(step.Args)
	if err != nil {
		return err
	}
	res := w.Deploy(DeployInput{
		From:         from,
		Value:        value,
		Code:         []byte(step.Code),
		CodeMetadata: api.CodeMetadata(step.CodeMetadata),
		Args:         args,
		GasLimit:     step.GasLimit,
	})
	return checkResult(step.Expect, res)
}

func (w *World) callStep(step Step) error {
	from, err := ScenarioAddress(step.From)
	if err != nil {
		return err
	}
	to, err := ScenarioAddress(step.To)
	if err != nil {
		return err
	}
	value, err := scenarioBig(step.Value)
	if err != nil {
		return err
	}
	transfers, err := scenarioTransfers(step.DCT)
	if err != nil {
		return err
	}
	args, err := scenarioArgs(step.Args)
	if err != nil {
		return err
	}
	res := w.Execute(TxInput{
		From:      from,
		To:        to,
		MoaxValue: value,
		DCTValues: transfers,
		Function:  step.Function,
		Args:      args,
		GasLimit:  step.GasLimit,
	})
	return checkResult(step.Expect, res)
}

func mismatch(what string, want, got any) error {
	return errors.New(errors.PhaseScenario, errors.KindExpectation).
		Detail("%s: want %v, got %v", what, want, got).
		Build()
}

func checkResult(expect *Expect, res TxResult) error {
	if expect == nil {
		return nil
	}
	var errs error
	if uint64(res.Status) != expect.Status {
		errs = multierr.Append(errs, mismatch("status", expect.Status, uint64(res.Status)))
	}
	if res.Message != expect.Message {
		errs = multierr.Append(errs, mismatch("message", expect.Message, res.Message))
	}
	if expect.Out != nil {
		want, err := scenarioArgs(expect.Out)
		if err != nil {
			return multierr.Append(errs, err)
		}
		if len(want) != len(res.Out) {
			return multierr.Append(errs, mismatch("out length", len(want), len(res.Out)))
		}
		for i := range want {
			if !bytes.Equal(want[i], res.Out[i]) {
				errs = multierr.Append(errs, mismatch(fmt.Sprintf("out[%d]", i), hex.EncodeToString(want[i]), hex.EncodeToString(res.Out[i])))
			}
		}
	}
	return errs
}

func (w *World) checkState(step Step) error {
	var errs error
	for _, sa := range step.Accounts {
		errs = multierr.Append(errs, w.checkAccount(sa))
	}
	return errs
}

func (w *World) checkAccount(sa ScenarioAccount) error {
	addr, err := ScenarioAddress(sa.Address)
	if err != nil {
		return err
	}
	acc, ok := w.Account(addr)
	if !ok {
		return errors.NotFound(errors.PhaseScenario, "account", sa.Address)
	}
	var errs error
	if sa.Nonce != nil && acc.Nonce != *sa.Nonce {
		errs = multierr.Append(errs, mismatch(sa.Address+" nonce", *sa.Nonce, acc.Nonce))
	}
	if sa.Balance != "" {
		want, err := scenarioBig(sa.Balance)
		if err != nil {
			return multierr.Append(errs, err)
		}
		if want.Cmp(acc.Balance) != 0 {
			errs = multierr.Append(errs, mismatch(sa.Address+" balance", want, acc.Balance))
		}
	}
	for _, d := range sa.DCT {
		want, err := scenarioBig(d.Value)
		if err != nil {
			return multierr.Append(errs, err)
		}
		if got := acc.DCTBalance(d.Token, d.Nonce); want.Cmp(got) != 0 {
			errs = multierr.Append(errs, mismatch(sa.Address+" "+d.Token, want, got))
		}
	}
	for k, v := range sa.Storage {
		key, err := ScenarioBytes(k)
		if err != nil {
			return multierr.Append(errs, err)
		}
		want, err := ScenarioBytes(v)
		if err != nil {
			return multierr.Append(errs, err)
		}
		if got := acc.Storage[string(key)]; !bytes.Equal(want, got) {
			errs = multierr.Append(errs, mismatch(sa.Address+" storage "+k, hex.EncodeToString(want), hex.EncodeToString(got)))
		}
	}
	if sa.Code != "" && sa.Code != string(acc.Code) {
		errs = multierr.Append(errs, mismatch(sa.Address+" code", sa.Code, string(acc.Code)))
	}
	if sa.Owner != "" {
		owner, err := ScenarioAddress(sa.Owner)
		if err != nil {
			return multierr.Append(errs, err)
		}
		if !bytes.Equal(owner, acc.Owner) {
			errs = multierr.Append(errs, mismatch(sa.Address+" owner", sa.Owner, hex.EncodeToString(acc.Owner)))
		}
	}
	return errs
}
