package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cw20ics20bridge/types"
)

func TestOpenChannelValidation(t *testing.T) {
	b, s := setup(t, []string{"channel-1"}, nil)

	good := ChannelOpenMsg{
		ChannelID:    "channel-2",
		ConnectionID: "connection-0",
		Order:        OrderUnordered,
		Version:      types.Ics20Version,
	}

	bad := good
	bad.Order = OrderOrdered
	_, err := b.OpenChannel(s, bad)
	require.ErrorIs(t, err, types.ErrInvalidChannel)

	bad = good
	bad.Version = "ics20-2"
	_, err = b.OpenChannel(s, bad)
	require.ErrorIs(t, err, types.ErrInvalidChannel)

	bad = good
	bad.ChannelID = "channel:2"
	_, err = b.OpenChannel(s, bad)
	require.ErrorIs(t, err, types.ErrInvalidChannel)

	bad = good
	bad.ChannelID = "channel-1"
	_, err = b.OpenChannel(s, bad)
	require.ErrorIs(t, err, types.ErrInvalidChannel)

	_, err = b.OpenChannel(s, good)
	require.NoError(t, err)
}

func TestQueries(t *testing.T) {
	b, s := setup(t, []string{"channel-3", "channel-7"}, []allowed{{"tok1", 42}})

	cfg, err := b.QueryConfig(s)
	require.NoError(t, err)
	require.Equal(t, ConfigResponse{DefaultTimeout: defaultTimeout, GovContract: govContract}, cfg)

	list, err := b.QueryListChannels(s)
	require.NoError(t, err)
	require.Len(t, list.Channels, 2)
	require.Equal(t, "channel-3", list.Channels[0].ID)
	require.Equal(t, "connection-2", list.Channels[0].ConnectionID)

	_, err = b.ExecuteTransfer(s, mockEnv,
		TransferMsg{Channel: "channel-7", RemoteAddress: "addr-x"},
		types.NewCw20(types.NewUint128(12), "tok1"), "acct-1")
	require.NoError(t, err)

	ch, err := b.QueryChannel(s, "channel-7")
	require.NoError(t, err)
	require.Equal(t, "transfer", ch.Info.CounterpartyEndpoint.PortID)
	require.Len(t, ch.Balances, 1)
	require.Equal(t, "12", ch.Balances[0].Outstanding.String())

	_, err = b.QueryChannel(s, "channel-9")
	require.ErrorIs(t, err, types.ErrNotFound)

	pending, err := b.QueryTransfers(s, "channel-7", types.TransferPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	settled, err := b.QueryTransfers(s, "channel-7", types.TransferSettled)
	require.NoError(t, err)
	require.Empty(t, settled)
}
