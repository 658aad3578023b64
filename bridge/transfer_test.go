package bridge

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

func TestProperChecksOnExecuteCw20(t *testing.T) {
	const sendChannel = "channel-15"
	const cw20Addr = "my-token"
	b, s := setup(t, []string{"channel-3", sendChannel}, []allowed{{cw20Addr, 123456}})

	msg := Cw20ReceiveMsg{
		Sender: "my-account",
		Amount: types.NewUint128(888777666),
		Msg:    transferMsg(t, sendChannel, "foreign-address", u64(7777)),
	}

	res, err := b.ExecuteReceive(s, mockEnv, MessageInfo{Sender: cw20Addr}, msg)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	out := res.Messages[0]
	require.Equal(t, sendChannel, out.ChannelID)
	require.Equal(t, deadline(t, 7777), out.Timeout)
	require.Equal(t, uint64(1), out.Sequence)

	packet := decodePacket(t, out)
	require.Equal(t, "888777666", packet.Amount.String())
	require.Equal(t, "cw20:"+cw20Addr, packet.Denom)
	require.Equal(t, "my-account", packet.Sender)
	require.Equal(t, "foreign-address", packet.Receiver)

	// reject with native funds
	_, err = b.ExecuteReceive(s, mockEnv, MessageInfo{
		Sender: "foobar",
		Funds:  []types.Coin{{Denom: "ucosm", Amount: types.NewUint128(1234567)}},
	}, msg)
	require.ErrorIs(t, err, types.ErrPaymentRejected)
}

func TestTransferScenario(t *testing.T) {
	b, s := setup(t, []string{"channel-15"}, []allowed{{"tok1", 500000}})

	res, err := b.ExecuteTransfer(s, mockEnv,
		TransferMsg{Channel: "channel-15", RemoteAddress: "addr-x"},
		types.NewCw20(types.NewUint128(1000), "tok1"), "acct-1")
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	out := res.Messages[0]
	require.Equal(t, deadline(t, defaultTimeout), out.Timeout)
	packet := decodePacket(t, out)
	require.Equal(t, types.NewIcs20Packet(types.NewUint128(1000), "cw20:tok1", "acct-1", "addr-x"), packet)
	require.Equal(t, "1000", balance(t, s, "channel-15", "cw20:tok1"))

	for key, want := range map[string]string{
		"action":   "transfer",
		"sender":   "acct-1",
		"receiver": "addr-x",
		"denom":    "cw20:tok1",
		"amount":   "1000",
	} {
		got, ok := res.Attribute(key)
		require.True(t, ok, key)
		require.Equal(t, want, got, key)
	}

	// the timeout reverts the optimistic credit
	_, err = b.OnDeliveryOutcome(s, mockEnv, DeliveryOutcomeMsg{
		Channel: "channel-15",
		Denom:   "cw20:tok1",
		Amount:  types.NewUint128(1000),
		Outcome: types.OutcomeTimeout,
	})
	require.NoError(t, err)
	require.Equal(t, "0", balance(t, s, "channel-15", "cw20:tok1"))
}

func TestTransferNotOnAllowList(t *testing.T) {
	b, s := setup(t, []string{"channel-15"}, []allowed{{"tok1", 500000}})

	_, err := b.ExecuteTransfer(s, mockEnv,
		TransferMsg{Channel: "channel-15", RemoteAddress: "addr-x"},
		types.NewCw20(types.NewUint128(1000), "tok2"), "acct-1")
	require.ErrorIs(t, err, types.ErrNotOnAllowList)
	require.Equal(t, "0", balance(t, s, "channel-15", "cw20:tok2"))
}

func TestTransferAllowedWithoutGasLimit(t *testing.T) {
	b, s := setup(t, []string{"channel-15"}, nil)

	_, err := b.ExecuteAllow(s, MessageInfo{Sender: govContract}, AllowMsg{Contract: "tok1"})
	require.NoError(t, err)

	_, err = b.ExecuteTransfer(s, mockEnv,
		TransferMsg{Channel: "channel-15", RemoteAddress: "addr-x"},
		types.NewCw20(types.NewUint128(5), "tok1"), "acct-1")
	require.NoError(t, err)
}

func TestDefaultGasLimitSkipsAllowList(t *testing.T) {
	b, s := setupWithGasLimit(t, []string{"channel-15"}, nil, u64(123456))

	res, err := b.ExecuteTransfer(s, mockEnv,
		TransferMsg{Channel: "channel-15", RemoteAddress: "addr-x"},
		types.NewCw20(types.NewUint128(77), "anything"), "acct-1")
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	require.Equal(t, "77", balance(t, s, "channel-15", "cw20:anything"))
}

func TestTransferRejections(t *testing.T) {
	tooBig, err := types.ParseUint128("18446744073709551616")
	require.NoError(t, err)

	cases := []struct {
		name    string
		channel string
		amount  types.Amount
		remote  string
		sender  string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "zero amount",
			channel: "channel-15",
			amount:  types.NewCw20(types.NewUint128(0), "tok1"),
			remote:  "addr-x",
			sender:  "acct-1",
			check:   func(t *testing.T, err error) { require.ErrorIs(t, err, types.ErrNoFunds) },
		},
		{
			name:    "unknown channel",
			channel: "channel-99",
			amount:  types.NewCw20(types.NewUint128(10), "tok1"),
			remote:  "addr-x",
			sender:  "acct-1",
			check: func(t *testing.T, err error) {
				var nsc *types.NoSuchChannelError
				require.True(t, errors.As(err, &nsc))
				require.Equal(t, "channel-99", nsc.ID)
			},
		},
		{
			name:    "unknown channel and issuer",
			channel: "channel-99",
			amount:  types.NewCw20(types.NewUint128(10), "tok2"),
			remote:  "addr-x",
			sender:  "acct-1",
			check: func(t *testing.T, err error) {
				var nsc *types.NoSuchChannelError
				require.ErrorAs(t, err, &nsc)
			},
		},
		{
			name:    "empty receiver",
			channel: "channel-15",
			amount:  types.NewCw20(types.NewUint128(10), "tok1"),
			remote:  "",
			sender:  "acct-1",
			check:   func(t *testing.T, err error) { require.ErrorIs(t, err, types.ErrPacketValidation) },
		},
		{
			name:    "amount above u64",
			channel: "channel-15",
			amount:  types.NewCw20(tooBig, "tok1"),
			remote:  "addr-x",
			sender:  "acct-1",
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, types.ErrPacketValidation)
				require.ErrorIs(t, err, types.ErrOverflow)
			},
		},
		{
			name:    "invalid issuer",
			channel: "channel-15",
			amount:  types.NewCw20(types.NewUint128(10), "Tok1"),
			remote:  "addr-x",
			sender:  "acct-1",
			check:   func(t *testing.T, err error) { require.ErrorIs(t, err, types.ErrInvalidAddress) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, mem := setup(t, []string{"channel-15"}, []allowed{{"tok1", 500000}})
			batch := store.NewBatch(mem)

			res, err := b.ExecuteTransfer(batch, mockEnv,
				TransferMsg{Channel: tc.channel, RemoteAddress: tc.remote},
				tc.amount, tc.sender)
			require.Nil(t, res)
			tc.check(t, err)
			require.False(t, batch.Dirty(), "rejected transfer must not touch state")
		})
	}
}

func TestTransferUsesSequencesPerChannel(t *testing.T) {
	b, s := setup(t, []string{"channel-1", "channel-2"}, []allowed{{"tok1", 1}})

	send := func(channel string) uint64 {
		res, err := b.ExecuteTransfer(s, mockEnv,
			TransferMsg{Channel: channel, RemoteAddress: "addr-x"},
			types.NewCw20(types.NewUint128(3), "tok1"), "acct-1")
		require.NoError(t, err)
		return res.Messages[0].Sequence
	}

	require.Equal(t, uint64(1), send("channel-1"))
	require.Equal(t, uint64(2), send("channel-1"))
	require.Equal(t, uint64(1), send("channel-2"))
	require.Equal(t, "6", balance(t, s, "channel-1", "cw20:tok1"))
	require.Equal(t, "3", balance(t, s, "channel-2", "cw20:tok1"))

	rec, err := b.QueryTransfer(s, "channel-1", 2)
	require.NoError(t, err)
	require.Equal(t, types.TransferPending, rec.Status)
	require.Equal(t, "cw20:tok1", rec.Denom)
}

func TestReceiveRejectsBadTransferMsg(t *testing.T) {
	b, s := setup(t, []string{"channel-15"}, []allowed{{"tok1", 1}})

	_, err := b.ExecuteReceive(s, mockEnv, MessageInfo{Sender: "tok1"}, Cw20ReceiveMsg{
		Sender: "acct-1",
		Amount: types.NewUint128(1),
		Msg:    []byte("{not json"),
	})
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestTransferRejectsTimeoutOverflow(t *testing.T) {
	b, mem := setup(t, []string{"channel-15"}, []allowed{{"tok1", 500000}})
	batch := store.NewBatch(mem)

	_, err := b.ExecuteReceive(batch, mockEnv, MessageInfo{Sender: "tok1"}, Cw20ReceiveMsg{
		Sender: "acct-1",
		Amount: types.NewUint128(10),
		Msg:    transferMsg(t, "channel-15", "addr-x", u64(math.MaxUint64/uint64(time.Second)+1)),
	})
	require.ErrorIs(t, err, types.ErrOverflow)
	require.False(t, batch.Dirty())

	// fits in nanoseconds on its own but not once added to block time
	_, err = b.ExecuteTransfer(batch, mockEnv,
		TransferMsg{Channel: "channel-15", RemoteAddress: "addr-x", Timeout: u64(math.MaxUint64 / uint64(time.Second))},
		types.NewCw20(types.NewUint128(10), "tok1"), "acct-1")
	require.ErrorIs(t, err, types.ErrOverflow)
	require.False(t, batch.Dirty())
	require.Equal(t, "0", balance(t, mem, "channel-15", "cw20:tok1"))
}

func TestEVMIssuerCasingSharesLedger(t *testing.T) {
	const (
		checksummed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
		lower       = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
		holder      = "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
	)
	b := New(EVMAddresses{}, StoredAdmin{}, WithLogger(zap.NewNop()))
	s := store.NewMemory()
	_, err := b.Instantiate(s, MessageInfo{}, InitMsg{
		DefaultTimeout: defaultTimeout,
		GovContract:    holder,
		Allowlist:      []AllowMsg{{Contract: lower}},
	})
	require.NoError(t, err)
	openChannel(t, b, s, "channel-15")

	var sent []types.SendPacketMsg
	for _, caller := range []string{checksummed, lower} {
		res, err := b.ExecuteReceive(s, mockEnv, MessageInfo{Sender: caller}, Cw20ReceiveMsg{
			Sender: holder,
			Amount: types.NewUint128(10),
			Msg:    transferMsg(t, "channel-15", "addr-x", nil),
		})
		require.NoError(t, err)
		denom, _ := res.Attribute("denom")
		require.Equal(t, "cw20:"+checksummed, denom)
		sent = append(sent, res.Messages[0])
	}

	ch, err := b.QueryChannel(s, "channel-15")
	require.NoError(t, err)
	require.Len(t, ch.Balances, 1)
	require.Equal(t, "20", ch.Balances[0].Outstanding.String())

	// an outcome naming the token in lowercase still finds the escrow
	_, err = b.OnDeliveryOutcome(s, mockEnv, DeliveryOutcomeMsg{
		Channel:  "channel-15",
		Sequence: sent[1].Sequence,
		Denom:    "cw20:" + lower,
		Amount:   types.NewUint128(10),
		Outcome:  types.OutcomeTimeout,
	})
	require.NoError(t, err)
	require.Equal(t, "10", balance(t, s, "channel-15", "cw20:"+checksummed))

	_, err = b.OnPacketTimeout(s, mockEnv, "channel-15", sent[0].Sequence, sent[0].Data)
	require.NoError(t, err)
	require.Equal(t, "0", balance(t, s, "channel-15", "cw20:"+checksummed))
}
