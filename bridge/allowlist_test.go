package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cw20ics20bridge/types"
)

func TestExecuteAllow(t *testing.T) {
	b, s := setup(t, nil, nil)

	allow := AllowMsg{Contract: "tok1", GasLimit: u64(500000)}

	_, err := b.ExecuteAllow(s, MessageInfo{Sender: "intruder"}, allow)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	res, err := b.ExecuteAllow(s, MessageInfo{Sender: govContract}, allow)
	require.NoError(t, err)
	gas, _ := res.Attribute("gas_limit")
	require.Equal(t, "500000", gas)

	// same input twice leaves the same state
	before, err := s.Get(allowKey("tok1"))
	require.NoError(t, err)
	_, err = b.ExecuteAllow(s, MessageInfo{Sender: govContract}, allow)
	require.NoError(t, err)
	after, err := s.Get(allowKey("tok1"))
	require.NoError(t, err)
	require.Equal(t, before, after)

	q, err := b.QueryAllowed(s, "tok1")
	require.NoError(t, err)
	require.True(t, q.IsAllowed)
	require.Equal(t, uint64(500000), *q.GasLimit)

	q, err = b.QueryAllowed(s, "tok2")
	require.NoError(t, err)
	require.False(t, q.IsAllowed)
	require.Nil(t, q.GasLimit)
}

func TestExecuteAllowWithoutGasLimit(t *testing.T) {
	b, s := setup(t, nil, nil)

	res, err := b.ExecuteAllow(s, MessageInfo{Sender: govContract}, AllowMsg{Contract: "tok1"})
	require.NoError(t, err)
	gas, _ := res.Attribute("gas_limit")
	require.Equal(t, "None", gas)

	info, err := IsAllowed(s, "tok1")
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Nil(t, info.GasLimit)
}

func TestExecuteAllowCodeHash(t *testing.T) {
	b, s := setup(t, nil, nil)

	hash := "0xAB" + "00112233445566778899aabbccddeeff00112233445566778899aabbccddee"
	_, err := b.ExecuteAllow(s, MessageInfo{Sender: govContract}, AllowMsg{Contract: "tok1", CodeHash: &hash})
	require.NoError(t, err)

	info, err := IsAllowed(s, "tok1")
	require.NoError(t, err)
	require.Equal(t, "ab00112233445566778899aabbccddeeff00112233445566778899aabbccddee", *info.CodeHash)

	// anything else is an opaque identifier kept as given
	opaque := "my-token-hash"
	_, err = b.ExecuteAllow(s, MessageInfo{Sender: govContract}, AllowMsg{Contract: "tok2", CodeHash: &opaque})
	require.NoError(t, err)
	info, err = IsAllowed(s, "tok2")
	require.NoError(t, err)
	require.Equal(t, "my-token-hash", *info.CodeHash)

	short := "0xABCD"
	_, err = b.ExecuteAllow(s, MessageInfo{Sender: govContract}, AllowMsg{Contract: "tok3", CodeHash: &short})
	require.NoError(t, err)
	info, err = IsAllowed(s, "tok3")
	require.NoError(t, err)
	require.Equal(t, "0xABCD", *info.CodeHash)

	blank := "  "
	_, err = b.ExecuteAllow(s, MessageInfo{Sender: govContract}, AllowMsg{Contract: "tok4", CodeHash: &blank})
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestExecuteAllowRejectsFunds(t *testing.T) {
	b, s := setup(t, nil, nil)

	_, err := b.ExecuteAllow(s, MessageInfo{
		Sender: govContract,
		Funds:  []types.Coin{{Denom: "ucosm", Amount: types.NewUint128(1)}},
	}, AllowMsg{Contract: "tok1"})
	require.ErrorIs(t, err, types.ErrPaymentRejected)
}

func TestLowersGasLimit(t *testing.T) {
	require.True(t, lowersGasLimit(u64(10), u64(9)))
	require.False(t, lowersGasLimit(u64(10), u64(10)))
	require.False(t, lowersGasLimit(u64(10), nil))
	require.False(t, lowersGasLimit(nil, u64(1)))
}

func TestUpdateAdmin(t *testing.T) {
	b, s := setup(t, nil, nil)

	_, err := b.ExecuteUpdateAdmin(s, MessageInfo{Sender: "intruder"}, "intruder")
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = b.ExecuteUpdateAdmin(s, MessageInfo{Sender: govContract}, "new-gov")
	require.NoError(t, err)

	admin, err := b.QueryAdmin(s)
	require.NoError(t, err)
	require.Equal(t, "new-gov", *admin.Admin)

	_, err = b.ExecuteAllow(s, MessageInfo{Sender: govContract}, AllowMsg{Contract: "tok1"})
	require.ErrorIs(t, err, types.ErrUnauthorized)
	_, err = b.ExecuteAllow(s, MessageInfo{Sender: "new-gov"}, AllowMsg{Contract: "tok1"})
	require.NoError(t, err)
}
