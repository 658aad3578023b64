package bridge

import (
	"fmt"
	"strings"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

type ConfigResponse struct {
	DefaultTimeout  uint64  `json:"default_timeout"`
	DefaultGasLimit *uint64 `json:"default_gas_limit,omitempty"`
	GovContract     string  `json:"gov_contract"`
}

type AllowedResponse struct {
	IsAllowed bool    `json:"is_allowed"`
	GasLimit  *uint64 `json:"gas_limit,omitempty"`
}

type AdminResponse struct {
	Admin *string `json:"admin"`
}

type ChannelResponse struct {
	Info     types.ChannelInfo `json:"info"`
	Balances []DenomBalance    `json:"balances"`
}

type ListChannelsResponse struct {
	Channels []types.ChannelInfo `json:"channels"`
}

func (b *Bridge) QueryConfig(s store.KVStore) (ConfigResponse, error) {
	cfg, err := loadConfig(s)
	if err != nil {
		return ConfigResponse{}, err
	}
	admin, err := b.gov.Admin(s)
	if err != nil {
		return ConfigResponse{}, err
	}
	return ConfigResponse{
		DefaultTimeout:  cfg.DefaultTimeout,
		DefaultGasLimit: cfg.DefaultGasLimit,
		GovContract:     admin,
	}, nil
}

func (b *Bridge) QueryAllowed(s store.KVStore, contract string) (AllowedResponse, error) {
	addr, err := b.api.AddrValidate(contract)
	if err != nil {
		return AllowedResponse{}, err
	}
	info, err := IsAllowed(s, addr)
	if err != nil {
		return AllowedResponse{}, err
	}
	if info == nil {
		return AllowedResponse{IsAllowed: false}, nil
	}
	return AllowedResponse{IsAllowed: true, GasLimit: info.GasLimit}, nil
}

func (b *Bridge) QueryAdmin(s store.KVStore) (AdminResponse, error) {
	admin, err := b.gov.Admin(s)
	if err != nil {
		return AdminResponse{}, err
	}
	if admin == "" {
		return AdminResponse{}, nil
	}
	return AdminResponse{Admin: &admin}, nil
}

func (b *Bridge) QueryChannel(s store.KVStore, id string) (ChannelResponse, error) {
	info, err := loadChannelInfo(s, id)
	if err != nil {
		return ChannelResponse{}, err
	}
	if info == nil {
		return ChannelResponse{}, fmt.Errorf("channel %s: %w", id, types.ErrNotFound)
	}
	balances, err := channelBalances(s, id)
	if err != nil {
		return ChannelResponse{}, err
	}
	return ChannelResponse{Info: *info, Balances: balances}, nil
}

func (b *Bridge) QueryListChannels(s store.KVStore) (ListChannelsResponse, error) {
	keys, err := s.Keys(prefixChannelInfo)
	if err != nil {
		return ListChannelsResponse{}, err
	}
	res := ListChannelsResponse{Channels: make([]types.ChannelInfo, 0, len(keys))}
	for _, k := range keys {
		info, err := loadChannelInfo(s, strings.TrimPrefix(k, prefixChannelInfo))
		if err != nil {
			return ListChannelsResponse{}, err
		}
		if info != nil {
			res.Channels = append(res.Channels, *info)
		}
	}
	return res, nil
}

func (b *Bridge) QueryTransfer(s store.KVStore, channel string, sequence uint64) (types.TransferRecord, error) {
	rec, err := loadTransfer(s, channel, sequence)
	if err != nil {
		return types.TransferRecord{}, err
	}
	if rec == nil {
		return types.TransferRecord{}, fmt.Errorf("transfer %s/%d: %w", channel, sequence, types.ErrNotFound)
	}
	return *rec, nil
}

// QueryTransfers lists the transfers of channel, optionally only those in status.
func (b *Bridge) QueryTransfers(s store.KVStore, channel string, status types.TransferStatus) ([]types.TransferRecord, error) {
	keys, err := s.Keys(prefixTransfer + channel + ":")
	if err != nil {
		return nil, err
	}
	recs := make([]types.TransferRecord, 0, len(keys))
	for _, k := range keys {
		var rec types.TransferRecord
		if _, err := store.GetJSON(s, k, &rec); err != nil {
			return nil, err
		}
		if status == "" || rec.Status == status {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}
