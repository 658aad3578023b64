package bridge

import (
	"go.uber.org/zap"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// AllowMsg is the governance request to allow a cw20 contract.
type AllowMsg struct {
	Contract string  `json:"contract"`
	GasLimit *uint64 `json:"gas_limit,omitempty"`
	CodeHash *string `json:"code_hash,omitempty"`
}

// IsAllowed returns the policy for contract, or nil if it was never allowed.
func IsAllowed(s store.KVStore, contract string) (*types.AllowInfo, error) {
	var info types.AllowInfo
	found, err := store.GetJSON(s, allowKey(contract), &info)
	if err != nil || !found {
		return nil, err
	}
	return &info, nil
}

func saveAllowed(s store.KVStore, contract string, info types.AllowInfo) error {
	return store.SetJSON(s, allowKey(contract), info)
}

func (b *Bridge) allowInfo(msg AllowMsg) (string, types.AllowInfo, error) {
	contract, err := b.api.AddrValidate(msg.Contract)
	if err != nil {
		return "", types.AllowInfo{}, err
	}
	info := types.AllowInfo{GasLimit: msg.GasLimit}
	if msg.CodeHash != nil {
		h, err := normalizeCodeHash(*msg.CodeHash)
		if err != nil {
			return "", types.AllowInfo{}, err
		}
		info.CodeHash = &h
	}
	return contract, info, nil
}

// ExecuteAllow lets governance allow a new contract or change the gas limit of
// an allowed one. Entries are never removed, escrowed tokens must be able to
// come back.
func (b *Bridge) ExecuteAllow(s store.KVStore, info MessageInfo, msg AllowMsg) (*Response, error) {
	if err := nonpayable(info); err != nil {
		return nil, err
	}
	if err := b.gov.AssertAdmin(s, info.Sender); err != nil {
		return nil, err
	}

	contract, set, err := b.allowInfo(msg)
	if err != nil {
		return nil, err
	}

	prev, err := IsAllowed(s, contract)
	if err != nil {
		return nil, err
	}
	if prev != nil && lowersGasLimit(prev.GasLimit, set.GasLimit) {
		b.log.Warn("allow-list gas limit lowered",
			zap.String("contract", contract),
			zap.String("previous", optUint(prev.GasLimit)),
			zap.String("new", optUint(set.GasLimit)))
	}

	if err := saveAllowed(s, contract, set); err != nil {
		return nil, err
	}

	return NewResponse().
		AddAttribute("action", "allow").
		AddAttribute("contract", contract).
		AddAttribute("gas_limit", optUint(set.GasLimit)), nil
}

// an unset limit means "use the default", so going from a value to unset is not a decrease
func lowersGasLimit(prev, next *uint64) bool {
	return prev != nil && next != nil && *next < *prev
}
