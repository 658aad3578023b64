package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// DeliveryOutcomeMsg reports what happened to a packet sent on Channel.
// Sequence is optional: when set the matching TransferRecord is finalized
// once and any later report for it is ignored.
type DeliveryOutcomeMsg struct {
	Channel  string        `json:"channel"`
	Sequence uint64        `json:"sequence,omitempty"`
	Denom    string        `json:"denom"`
	Amount   types.Uint128 `json:"amount"`
	Outcome  types.Outcome `json:"outcome"`
	Error    string        `json:"error,omitempty"`
}

// OnDeliveryOutcome reconciles the optimistic credit made by ExecuteTransfer.
// Success keeps the balance, an error ack or a timeout releases it.
func (b *Bridge) OnDeliveryOutcome(s store.KVStore, env Env, msg DeliveryOutcomeMsg) (*Response, error) {
	if !msg.Outcome.Valid() {
		return nil, fmt.Errorf("%w: unknown outcome %q", types.ErrInvalidRequest, msg.Outcome)
	}
	amount, err := types.AmountFromParts(msg.Denom, msg.Amount)
	if err != nil {
		return nil, err
	}
	issuer, err := b.api.AddrValidate(amount.Address())
	if err != nil {
		return nil, err
	}
	msg.Denom = types.NewCw20(msg.Amount, issuer).Denom()

	res := NewResponse().
		AddAttribute("action", actionFor(msg.Outcome)).
		AddAttribute("channel", msg.Channel).
		AddAttribute("denom", msg.Denom).
		AddAttribute("amount", msg.Amount.String()).
		AddAttribute("success", strconv.FormatBool(msg.Outcome == types.OutcomeSuccess))
	if msg.Error != "" {
		res.AddAttribute("error", msg.Error)
	}

	var rec *types.TransferRecord
	if msg.Sequence != 0 {
		rec, err = loadTransfer(s, msg.Channel, msg.Sequence)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, fmt.Errorf("transfer %s/%d: %w", msg.Channel, msg.Sequence, types.ErrNotFound)
		}
		if rec.Denom != msg.Denom || rec.Amount.Cmp(msg.Amount) != 0 {
			return nil, fmt.Errorf("%w: transfer %s/%d was %s %s, reported %s %s", types.ErrInvalidRequest,
				msg.Channel, msg.Sequence, rec.Amount, rec.Denom, msg.Amount, msg.Denom)
		}
		res.AddAttribute("sequence", strconv.FormatUint(msg.Sequence, 10))
		if rec.Status.Terminal() {
			b.log.Info("delivery outcome already applied",
				zap.String("channel", msg.Channel),
				zap.Uint64("sequence", msg.Sequence),
				zap.String("status", string(rec.Status)),
				zap.String("outcome", string(msg.Outcome)))
			return res.AddAttribute("duplicate", "true"), nil
		}
	}

	if msg.Outcome != types.OutcomeSuccess {
		if err := b.revert(s, msg); err != nil {
			return nil, err
		}
	}

	if rec != nil {
		rec.Status = types.TransferSettled
		if msg.Outcome != types.OutcomeSuccess {
			rec.Status = types.TransferReverted
		}
		rec.Message = msg.Error
		rec.UpdatedAt = env.BlockTime
		if err := saveTransfer(s, rec); err != nil {
			return nil, err
		}
		res.AddAttribute("status", string(rec.Status))
	}
	return res, nil
}

func (b *Bridge) revert(s store.KVStore, msg DeliveryOutcomeMsg) error {
	err := ReduceChannelBalance(s, msg.Channel, msg.Denom, msg.Amount)
	if err == nil {
		return nil
	}
	if !errors.Is(err, types.ErrInsufficientFunds) {
		return err
	}
	outstanding, berr := ChannelBalance(s, msg.Channel, msg.Denom)
	if berr != nil {
		return berr
	}
	uerr := &types.LedgerUnderflowError{
		Channel:     msg.Channel,
		Denom:       msg.Denom,
		Outstanding: outstanding,
		Requested:   msg.Amount,
	}
	b.log.Error("escrow ledger invariant violated",
		zap.Bool("alert", true),
		zap.String("channel", msg.Channel),
		zap.String("denom", msg.Denom),
		zap.Uint64("sequence", msg.Sequence),
		zap.Stringer("outstanding", outstanding),
		zap.Stringer("requested", msg.Amount),
		zap.String("outcome", string(msg.Outcome)))
	return uerr
}

func actionFor(o types.Outcome) string {
	if o == types.OutcomeTimeout {
		return "timeout"
	}
	return "acknowledge"
}

// OnPacketAck decodes the original packet and its acknowledgement and
// reconciles the transfer accordingly.
func (b *Bridge) OnPacketAck(s store.KVStore, env Env, channel string, sequence uint64, packetData, ack []byte) (*Response, error) {
	var packet types.Ics20Packet
	if err := json.Unmarshal(packetData, &packet); err != nil {
		return nil, fmt.Errorf("%w: cannot decode packet: %w", types.ErrInvalidRequest, err)
	}
	parsed, outcome, err := types.ParseAck(ack)
	if err != nil {
		return nil, err
	}
	return b.OnDeliveryOutcome(s, env, DeliveryOutcomeMsg{
		Channel:  channel,
		Sequence: sequence,
		Denom:    packet.Denom,
		Amount:   packet.Amount,
		Outcome:  outcome,
		Error:    parsed.Error,
	})
}

// OnPacketTimeout reverts the transfer carried by an expired packet.
func (b *Bridge) OnPacketTimeout(s store.KVStore, env Env, channel string, sequence uint64, packetData []byte) (*Response, error) {
	var packet types.Ics20Packet
	if err := json.Unmarshal(packetData, &packet); err != nil {
		return nil, fmt.Errorf("%w: cannot decode packet: %w", types.ErrInvalidRequest, err)
	}
	return b.OnDeliveryOutcome(s, env, DeliveryOutcomeMsg{
		Channel:  channel,
		Sequence: sequence,
		Denom:    packet.Denom,
		Amount:   packet.Amount,
		Outcome:  types.OutcomeTimeout,
	})
}
