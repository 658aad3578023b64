package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cw20ics20bridge/types"
)

func TestPlainAddresses(t *testing.T) {
	v := PlainAddresses{}

	for _, ok := range []string{"tok1", "acct-1", "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"} {
		got, err := v.AddrValidate(ok)
		require.NoError(t, err, ok)
		require.Equal(t, ok, got)
	}
	for _, bad := range []string{"", "ab", "Tok1", "tok 1"} {
		_, err := v.AddrValidate(bad)
		require.ErrorIs(t, err, types.ErrInvalidAddress, bad)
	}
}

func TestEVMAddresses(t *testing.T) {
	v := EVMAddresses{}

	got, err := v.AddrValidate("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	require.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", got)

	got, err = v.AddrValidate("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)
	require.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", got)

	_, err = v.AddrValidate("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD")
	require.ErrorIs(t, err, types.ErrInvalidAddress)

	_, err = v.AddrValidate("tok1")
	require.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestNewAddressValidator(t *testing.T) {
	v, err := NewAddressValidator("")
	require.NoError(t, err)
	require.IsType(t, PlainAddresses{}, v)

	v, err = NewAddressValidator("evm")
	require.NoError(t, err)
	require.IsType(t, EVMAddresses{}, v)

	_, err = NewAddressValidator("bech32")
	require.Error(t, err)
}
