package settle

import (
	"github.com/iov-one/settle/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc serializes concrete record and message types. It has no interface
// registrations; those belong to the transaction codec of the host.
var cdc = amino.NewCodec()

// MarshalBinary serializes a concrete value using the amino binary format.
// Every model and message of this module implements its Marshal method with
// this function.
func MarshalBinary(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "cannot marshal %T: %s", o, err)
	}
	return bz, nil
}

// UnmarshalBinary loads the amino binary representation into ptr.
func UnmarshalBinary(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrType, "cannot unmarshal %T: %s", ptr, err)
	}
	return nil
}
