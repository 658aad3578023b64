package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// TransferMsg is embedded in a cw20 Send and says where the tokens go.
type TransferMsg struct {
	Channel       string  `json:"channel"`
	RemoteAddress string  `json:"remote_address"`
	Timeout       *uint64 `json:"timeout,omitempty"` // seconds
}

// Cw20ReceiveMsg is the hook a cw20 contract calls after moving tokens to the bridge.
type Cw20ReceiveMsg struct {
	Sender string        `json:"sender"`
	Amount types.Uint128 `json:"amount"`
	Msg    []byte        `json:"msg"`
}

// ExecuteReceive handles a cw20 deposit. The caller is the token contract
// itself, so its address is the issuer of the deposited amount.
func (b *Bridge) ExecuteReceive(s store.KVStore, env Env, info MessageInfo, wrapper Cw20ReceiveMsg) (*Response, error) {
	if err := nonpayable(info); err != nil {
		return nil, err
	}

	var msg TransferMsg
	if err := json.Unmarshal(wrapper.Msg, &msg); err != nil {
		return nil, fmt.Errorf("%w: cannot decode transfer msg: %w", types.ErrInvalidRequest, err)
	}
	amount := types.NewCw20(wrapper.Amount, info.Sender)
	sender, err := b.api.AddrValidate(wrapper.Sender)
	if err != nil {
		return nil, err
	}
	return b.ExecuteTransfer(s, env, msg, amount, sender)
}

// ExecuteTransfer validates a deposit, escrows it on the channel ledger and
// emits the ICS-20 packet. The ledger is credited before delivery is known;
// OnDeliveryOutcome takes the credit back if the packet fails or times out.
// So the channel keeps working even if success acks are never relayed.
func (b *Bridge) ExecuteTransfer(s store.KVStore, env Env, msg TransferMsg, amount types.Amount, sender string) (*Response, error) {
	if amount.IsEmpty() {
		return nil, types.ErrNoFunds
	}
	// ensure the requested channel is registered
	exists, err := hasChannel(s, msg.Channel)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &types.NoSuchChannelError{ID: msg.Channel}
	}
	config, err := loadConfig(s)
	if err != nil {
		return nil, err
	}

	var issuer string
	switch a := amount.(type) {
	case types.Cw20Coin:
		if issuer, err = b.api.AddrValidate(a.Contract); err != nil {
			return nil, err
		}
		// denom and ledger key use the canonical issuer
		amount = types.NewCw20(a.Quantity, issuer)
	default:
		return nil, fmt.Errorf("%w: unsupported amount %T", types.ErrInvalidDenom, amount)
	}
	// with a default gas limit every cw20 is allowed
	if config.DefaultGasLimit == nil {
		allowed, err := IsAllowed(s, issuer)
		if err != nil {
			return nil, err
		}
		if allowed == nil {
			return nil, types.ErrNotOnAllowList
		}
	}

	timeoutDelta := config.DefaultTimeout
	if msg.Timeout != nil {
		timeoutDelta = *msg.Timeout
	}
	timeout, err := env.BlockTime.PlusSeconds(timeoutDelta)
	if err != nil {
		return nil, fmt.Errorf("timeout: %w", err)
	}

	packet := types.NewIcs20Packet(amount.Amount(), amount.Denom(), sender, msg.RemoteAddress)
	if err := packet.Validate(); err != nil {
		return nil, err
	}

	if err := IncreaseChannelBalance(s, msg.Channel, amount.Denom(), amount.Amount()); err != nil {
		return nil, err
	}

	seq, err := nextSequence(s, msg.Channel)
	if err != nil {
		return nil, err
	}
	rec := &types.TransferRecord{
		ID:        uuid.New().String(),
		Channel:   msg.Channel,
		Sequence:  seq,
		Denom:     packet.Denom,
		Amount:    packet.Amount,
		Sender:    packet.Sender,
		Receiver:  packet.Receiver,
		Status:    types.TransferPending,
		Timeout:   timeout,
		CreatedAt: env.BlockTime,
		UpdatedAt: env.BlockTime,
	}
	if err := saveTransfer(s, rec); err != nil {
		return nil, err
	}

	data, err := json.Marshal(packet)
	if err != nil {
		return nil, err
	}

	b.log.Info("transfer escrowed",
		zap.String("id", rec.ID),
		zap.String("channel", msg.Channel),
		zap.Uint64("sequence", seq),
		zap.String("denom", packet.Denom),
		zap.Stringer("amount", packet.Amount))

	return NewResponse().
		AddMessage(types.SendPacketMsg{
			ID:        rec.ID,
			ChannelID: msg.Channel,
			Sequence:  seq,
			Data:      data,
			Timeout:   timeout,
		}).
		AddAttribute("action", "transfer").
		AddAttribute("sender", packet.Sender).
		AddAttribute("receiver", packet.Receiver).
		AddAttribute("denom", packet.Denom).
		AddAttribute("amount", packet.Amount.String()), nil
}
