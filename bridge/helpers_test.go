package bridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

const (
	defaultTimeout = 3600
	govContract    = "gov"
)

type allowed struct {
	contract string
	gasLimit uint64
}

var mockEnv = Env{BlockTime: types.Timestamp(1_571_797_419_879_305_533)}

func newTestBridge() *Bridge {
	return New(PlainAddresses{}, StoredAdmin{}, WithLogger(zap.NewNop()))
}

func u64(v uint64) *uint64 { return &v }

func deadline(t *testing.T, seconds uint64) types.Timestamp {
	ts, err := mockEnv.BlockTime.PlusSeconds(seconds)
	require.NoError(t, err)
	return ts
}

func openChannel(t *testing.T, b *Bridge, s store.KVStore, id string) {
	_, err := b.OpenChannel(s, ChannelOpenMsg{
		ChannelID:            id,
		CounterpartyEndpoint: types.IbcEndpoint{PortID: "transfer", ChannelID: "channel-35"},
		ConnectionID:         "connection-2",
		Order:                OrderUnordered,
		Version:              types.Ics20Version,
	})
	require.NoError(t, err)
}

// setup instantiates a bridge with the given channels and allow-list.
func setup(t *testing.T, channels []string, allow []allowed) (*Bridge, *store.Memory) {
	return setupWithGasLimit(t, channels, allow, nil)
}

func setupWithGasLimit(t *testing.T, channels []string, allow []allowed, gasLimit *uint64) (*Bridge, *store.Memory) {
	t.Helper()

	b := newTestBridge()
	s := store.NewMemory()

	msg := InitMsg{
		DefaultTimeout:  defaultTimeout,
		DefaultGasLimit: gasLimit,
		GovContract:     govContract,
	}
	for _, a := range allow {
		msg.Allowlist = append(msg.Allowlist, AllowMsg{Contract: a.contract, GasLimit: u64(a.gasLimit)})
	}
	res, err := b.Instantiate(s, MessageInfo{Sender: "creator"}, msg)
	require.NoError(t, err)
	require.Empty(t, res.Messages)

	for _, ch := range channels {
		openChannel(t, b, s, ch)
	}
	return b, s
}

func transferMsg(t *testing.T, channel, remote string, timeout *uint64) []byte {
	raw, err := json.Marshal(TransferMsg{Channel: channel, RemoteAddress: remote, Timeout: timeout})
	require.NoError(t, err)
	return raw
}

func decodePacket(t *testing.T, msg types.SendPacketMsg) types.Ics20Packet {
	var p types.Ics20Packet
	require.NoError(t, json.Unmarshal(msg.Data, &p))
	return p
}

func balance(t *testing.T, s store.KVStore, channel, denom string) string {
	bal, err := ChannelBalance(s, channel, denom)
	require.NoError(t, err)
	return bal.String()
}
