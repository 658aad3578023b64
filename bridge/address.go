package bridge

import (
	"fmt"
	"strings"
	"unicode"

	ethav "github.com/KOREAN139/ethereum-address-validator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"cw20ics20bridge/types"
)

// AddressValidator checks an address and returns its canonical form.
type AddressValidator interface {
	AddrValidate(addr string) (string, error)
}

// PlainAddresses accepts any lowercase identifier of at least three
// characters without whitespace. It is used for chains whose address
// format is validated upstream.
type PlainAddresses struct{}

func (PlainAddresses) AddrValidate(addr string) (string, error) {
	if len(addr) < 3 {
		return "", fmt.Errorf("%w: %q is too short", types.ErrInvalidAddress, addr)
	}
	if strings.IndexFunc(addr, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q contains whitespace", types.ErrInvalidAddress, addr)
	}
	if strings.ToLower(addr) != addr {
		return "", fmt.Errorf("%w: %q is not normalized", types.ErrInvalidAddress, addr)
	}
	return addr, nil
}

// EVMAddresses accepts 0x-prefixed 20 byte hex addresses. Mixed case input
// must carry a valid EIP-55 checksum. The canonical form is checksummed.
type EVMAddresses struct{}

func (EVMAddresses) AddrValidate(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("%w: %q is not a hex address", types.ErrInvalidAddress, addr)
	}
	checksummed := common.HexToAddress(addr).Hex()
	if err := ethav.Validate(checksummed); err != nil {
		return "", fmt.Errorf("%w: %q: %s", types.ErrInvalidAddress, addr, err.Error())
	}
	body := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	mixed := strings.ToLower(body) != body && strings.ToUpper(body) != body
	if mixed && addr != checksummed {
		return "", fmt.Errorf("%w: %q has a bad checksum", types.ErrInvalidAddress, addr)
	}
	return checksummed, nil
}

// NewAddressValidator picks a validator by format name: "plain" or "evm".
func NewAddressValidator(format string) (AddressValidator, error) {
	switch format {
	case "", "plain":
		return PlainAddresses{}, nil
	case "evm":
		return EVMAddresses{}, nil
	}
	return nil, fmt.Errorf("unknown address format %q", format)
}

// normalizeCodeHash keeps the code hash as an opaque identifier. A 32 byte
// hex hash, with or without 0x prefix, is stored lowercase without prefix so
// differently cased copies compare equal.
func normalizeCodeHash(h string) (string, error) {
	h = strings.TrimSpace(h)
	if h == "" {
		return "", fmt.Errorf("%w: empty code hash", types.ErrInvalidRequest)
	}
	raw, err := hexutil.Decode("0x" + strings.TrimPrefix(strings.ToLower(h), "0x"))
	if err != nil || len(raw) != common.HashLength {
		return h, nil
	}
	return strings.TrimPrefix(hexutil.Encode(raw), "0x"), nil
}
