package settle

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/settle/errors"
)

const (
	// MaxSeedLength is the maximum size of a single derivation seed.
	MaxSeedLength = 32

	// MaxSeeds is the maximum number of seeds, including the bump, that
	// can be used to derive an address.
	MaxSeeds = 16

	pdaMarker = "ProgramDerivedAddress"
)

// ProgramID identifies the settlement program. It is mixed into every
// derived address so that two programs never derive the same location.
// You can modify it in init() before any addresses are derived, but it must
// not change during the lifetime of the kvstore.
var ProgramID = NewAddress([]byte("iov-one/settle"))

// Derive returns the deterministic storage address for a record of the given
// kind (namespace tag) owned by owner. nonce is optional and may be nil.
//
// The same (tag, owner, nonce) triple always yields the same address and
// different namespace tags never collide, so records can be located without
// a central index.
func Derive(tag string, owner Address, nonce []byte) (Address, error) {
	if tag == "" {
		return nil, errors.Wrap(errors.ErrInput, "empty namespace tag")
	}
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	seeds := [][]byte{[]byte(tag), owner}
	if len(nonce) > 0 {
		seeds = append(seeds, nonce)
	}
	addr, _, err := FindProgramAddress(seeds, ProgramID)
	return addr, err
}

// FindProgramAddress searches for the first bump, starting at 255 and going
// down, for which the seeds hash to a point that is not on the ed25519
// curve. Such an address cannot have a private key and therefore can only be
// controlled by the program.
func FindProgramAddress(seeds [][]byte, programID Address) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return nil, 0, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, 0, errors.Wrapf(errors.ErrInput, "seed %d longer than %d bytes", i, MaxSeedLength)
		}
	}
	for bump := 255; bump > 0; bump-- {
		addr := createProgramAddress(seeds, uint8(bump), programID)
		if !IsOnCurve(addr) {
			return addr, uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrHuman, "no viable bump seed found")
}

func createProgramAddress(seeds [][]byte, bump uint8, programID Address) Address {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{bump})
	h.Write(programID)
	h.Write([]byte(pdaMarker))
	return h.Sum(nil)
}

// IsOnCurve returns true if the given 32 bytes decode into a valid ed25519
// point.
func IsOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
