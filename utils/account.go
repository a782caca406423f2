package utils

import (
	"bytes"
	"strings"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// AccountIDLen is the length of a substrate AccountId32
	AccountIDLen = 32

	ss58ChecksumLen = 2
	ss58MaxPrefix   = 16383
)

var ss58Prefix = []byte("SS58PRE")

// AccountID is the raw 32 byte public key of a substrate account.
type AccountID [AccountIDLen]byte

// ParseAccountID accepts either a 0x prefixed hex string or an SS58 address.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID
	s = strings.TrimSpace(s)
	if s == "" {
		return id, errors.Wrap(gerror.ErrInvalidAccount, "empty account")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := hexutil.Decode("0x" + s[2:])
		if err != nil {
			return id, errors.Wrapf(gerror.ErrInvalidAccount, "hex decode: %v", err)
		}
		if len(b) != AccountIDLen {
			return id, errors.Wrapf(gerror.ErrInvalidAccount, "expected %d bytes, got %d", AccountIDLen, len(b))
		}
		copy(id[:], b)
		return id, nil
	}
	_, pub, err := DecodeSS58(s)
	if err != nil {
		return id, err
	}
	if len(pub) != AccountIDLen {
		return id, errors.Wrapf(gerror.ErrInvalidAccount, "expected %d byte public key, got %d", AccountIDLen, len(pub))
	}
	copy(id[:], pub)
	return id, nil
}

// Hex returns the 0x prefixed hex encoding of the account id.
func (a AccountID) Hex() string {
	return hexutil.Encode(a[:])
}

// IsZero reports whether the account id is unset.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// SS58 encodes the account id as an address with the given network prefix.
func (a AccountID) SS58(prefix uint16) string {
	return EncodeSS58(prefix, a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountID) UnmarshalText(text []byte) error {
	id, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// DecodeSS58 decodes an SS58 address into its network prefix and public key.
func DecodeSS58(address string) (uint16, []byte, error) {
	data := base58.Decode(address)
	if len(data) < 1+ss58ChecksumLen {
		return 0, nil, errors.Wrap(gerror.ErrInvalidAccount, "ss58 address too short")
	}

	var (
		prefix    uint16
		prefixLen int
	)
	switch {
	case data[0] < 64: //nolint:gomnd
		prefix = uint16(data[0])
		prefixLen = 1
	case data[0] < 128: //nolint:gomnd
		if len(data) < 2+ss58ChecksumLen {
			return 0, nil, errors.Wrap(gerror.ErrInvalidAccount, "ss58 address too short")
		}
		lower := (data[0] << 2) | (data[1] >> 6) //nolint:gomnd
		upper := data[1] & 0b00111111
		prefix = uint16(lower) | uint16(upper)<<8 //nolint:gomnd
		prefixLen = 2
	default:
		return 0, nil, errors.Wrapf(gerror.ErrInvalidAccount, "invalid ss58 prefix byte %d", data[0])
	}

	body := data[:len(data)-ss58ChecksumLen]
	checksum := data[len(data)-ss58ChecksumLen:]
	expected := ss58Checksum(body)
	if !bytes.Equal(checksum, expected[:ss58ChecksumLen]) {
		return 0, nil, errors.Wrap(gerror.ErrInvalidAccount, "ss58 checksum mismatch")
	}
	return prefix, body[prefixLen:], nil
}

// EncodeSS58 encodes a public key with the given network prefix.
func EncodeSS58(prefix uint16, pub []byte) string {
	var body []byte
	if prefix < 64 { //nolint:gomnd
		body = append(body, byte(prefix))
	} else {
		if prefix > ss58MaxPrefix {
			prefix = ss58MaxPrefix
		}
		first := byte((prefix&0b0000_0000_1111_1100)>>2) | 0b01000000
		second := byte(prefix>>8) | byte((prefix&0b0000_0000_0000_0011)<<6)
		body = append(body, first, second)
	}
	body = append(body, pub...)
	checksum := ss58Checksum(body)
	return base58.Encode(append(body, checksum[:ss58ChecksumLen]...))
}

func ss58Checksum(body []byte) [blake2b.Size]byte {
	return blake2b.Sum512(append(append([]byte{}, ss58Prefix...), body...))
}
