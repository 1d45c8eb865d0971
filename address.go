package settle

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/settle/errors"
	"github.com/mr-tron/base58"
)

const (
	// AddressLength is the length of all addresses. Identities and
	// derived record addresses share the same size so that any of them
	// can own a ledger account.
	AddressLength = 32
)

// it must have (?s) flags, otherwise it errors when last section contains 0x20 (newline)
var perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition is a specially formatted array, containing
// information on who can authorize an action.
// It is of the format:
//
//	sprintf("%s/%s/%s", extension, type, data)
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse will extract the sections from the Condition bytes
// and verify it is properly formatted
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	// returns [all, match1, match2, match3]
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address will convert a Condition into an Address
func (c Condition) Address() Address {
	return NewAddress(c)
}

// Equals checks if two permissions are the same
func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String returns a human readable string.
// We keep the extension and type in ascii and
// hex-encode the binary data
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Validate returns an error if the Condition is not the proper format
func (c Condition) Validate() error {
	if !perm.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return nil
}

// Address represents a collision-free, one-way digest of a Condition or a
// derived record location. It is the identity type of this module.
//
// It will be of size AddressLength
type Address []byte

// NewAddress hashes data into an address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

// ParseAddress decodes the textual form produced by String. A "hex:" prefix
// selects hex decoding, otherwise base58 is used.
func ParseAddress(s string) (Address, error) {
	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(s, "hex:") {
		raw, err = hex.DecodeString(strings.TrimPrefix(s, "hex:"))
	} else {
		raw, err = base58.Decode(s)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode address %q: %s", s, err)
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share the underlying array.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// String returns the base58 representation, as used for public keys on
// Solana style ledgers.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return base58.Encode(a)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// MarshalJSON provides a base58 representation for JSON, to override the
// standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	// No value zero the address.
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// AddressSet is a small set of addresses with insertion order irrelevant
// membership. It is stored as a slice so it serializes with a fixed, bounded
// size.
type AddressSet []Address

// Contains returns true if addr is a member of the set.
func (s AddressSet) Contains(addr Address) bool {
	for _, a := range s {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// Insert returns a new set containing addr. It fails with ErrDuplicate if
// addr is already a member and with ErrOverflow if the set would exceed
// capacity.
func (s AddressSet) Insert(addr Address, capacity int) (AddressSet, error) {
	if s.Contains(addr) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "address %s", addr)
	}
	if len(s) >= capacity {
		return nil, errors.Wrapf(errors.ErrOverflow, "set capacity %d reached", capacity)
	}
	res := make(AddressSet, 0, len(s)+1)
	res = append(res, s...)
	return append(res, addr.Clone()), nil
}

// Clone returns a deep copy of the set.
func (s AddressSet) Clone() AddressSet {
	if s == nil {
		return nil
	}
	res := make(AddressSet, len(s))
	for i, a := range s {
		res[i] = a.Clone()
	}
	return res
}

// Validate ensures every member is a valid address and that no address is
// present twice.
func (s AddressSet) Validate() error {
	var errs error
	for i, a := range s {
		if err := a.Validate(); err != nil {
			errs = errors.AppendField(errs, fmt.Sprintf("%d", i), err)
			continue
		}
		for _, b := range s[:i] {
			if a.Equals(b) {
				errs = errors.AppendField(errs, fmt.Sprintf("%d", i),
					errors.Wrapf(errors.ErrDuplicate, "address %s", a))
				break
			}
		}
	}
	return errs
}
