package types

// Ics20Version is the only channel version the bridge speaks.
const Ics20Version = "ics20-1"

// Config is the bridge-wide policy set at instantiation.
// When DefaultGasLimit is set every cw20 contract is implicitly allowed.
type Config struct {
	DefaultTimeout  uint64  `json:"default_timeout"`
	DefaultGasLimit *uint64 `json:"default_gas_limit,omitempty"`
}

// AllowInfo is the governance policy for one cw20 contract.
type AllowInfo struct {
	GasLimit *uint64 `json:"gas_limit,omitempty"`
	CodeHash *string `json:"code_hash,omitempty"`
}

type IbcEndpoint struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
}

// ChannelInfo is written once when a channel is opened and is read only afterwards.
type ChannelInfo struct {
	ID                   string      `json:"id"`
	CounterpartyEndpoint IbcEndpoint `json:"counterparty_endpoint"`
	ConnectionID         string      `json:"connection_id"`
}

// ChannelState is the escrow ledger entry for one (channel, denom).
type ChannelState struct {
	Outstanding Uint128 `json:"outstanding"`
	TotalSent   Uint128 `json:"total_sent"`
}

type TransferStatus string

const (
	TransferPending  TransferStatus = "pending"
	TransferSettled  TransferStatus = "settled"
	TransferReverted TransferStatus = "reverted"
)

func (s TransferStatus) Terminal() bool {
	return s == TransferSettled || s == TransferReverted
}

// TransferRecord tracks the ledger contribution of one outbound packet
// from optimistic credit until its delivery outcome is known.
type TransferRecord struct {
	ID        string         `json:"id"`
	Channel   string         `json:"channel"`
	Sequence  uint64         `json:"sequence"`
	Denom     string         `json:"denom"`
	Amount    Uint128        `json:"amount"`
	Sender    string         `json:"sender"`
	Receiver  string         `json:"receiver"`
	Status    TransferStatus `json:"status"`
	Timeout   Timestamp      `json:"timeout"`
	CreatedAt Timestamp      `json:"created_at"`
	UpdatedAt Timestamp      `json:"updated_at"`
	Message   string         `json:"message,omitempty"` // error ack text, if any
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
	OutcomeTimeout Outcome = "timeout"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeSuccess, OutcomeError, OutcomeTimeout:
		return true
	}
	return false
}

// Coin is a native-asset payment attached to a call.
type Coin struct {
	Denom  string  `json:"denom"`
	Amount Uint128 `json:"amount"`
}
