package bridge

import (
	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// InitMsg sets up a fresh bridge.
type InitMsg struct {
	// seconds added to block time when a transfer names no timeout
	DefaultTimeout  uint64     `json:"default_timeout"`
	DefaultGasLimit *uint64    `json:"default_gas_limit,omitempty"`
	GovContract     string     `json:"gov_contract"`
	Allowlist       []AllowMsg `json:"allowlist"`
}

func (b *Bridge) Instantiate(s store.KVStore, info MessageInfo, msg InitMsg) (*Response, error) {
	if err := nonpayable(info); err != nil {
		return nil, err
	}
	if err := store.SetJSON(s, keyContractInfo, VersionInfo{Contract: ContractName, Version: ContractVersion}); err != nil {
		return nil, err
	}
	cfg := types.Config{
		DefaultTimeout:  msg.DefaultTimeout,
		DefaultGasLimit: msg.DefaultGasLimit,
	}
	if err := saveConfig(s, cfg); err != nil {
		return nil, err
	}

	admin, err := b.api.AddrValidate(msg.GovContract)
	if err != nil {
		return nil, err
	}
	if err := b.gov.SetAdmin(s, admin); err != nil {
		return nil, err
	}

	for _, allowed := range msg.Allowlist {
		contract, set, err := b.allowInfo(allowed)
		if err != nil {
			return nil, err
		}
		if err := saveAllowed(s, contract, set); err != nil {
			return nil, err
		}
	}
	return NewResponse().AddAttribute("action", "instantiate"), nil
}

// Instantiated reports whether Instantiate already ran against s.
func Instantiated(s store.KVStore) (bool, error) {
	return s.Has(keyConfig)
}
