package gconf

import (
	"reflect"

	settle "github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x"
)

// OwnedConfig is a configuration that only its owner may change.
type OwnedConfig interface {
	Unmarshaler
	ValidMarshaler
	GetOwner() settle.Address
}

// PatchMsg is a message carrying a configuration patch. Every non zero field
// of the patch replaces the stored value.
type PatchMsg interface {
	settle.Msg
	ConfigPatch() OwnedConfig
}

// UpdateConfigurationHandler applies configuration patches of a single
// package.
type UpdateConfigurationHandler struct {
	pkg       string
	newConfig func() OwnedConfig
	auth      x.Authenticator
	initAdmin func(settle.ReadOnlyKVStore) (settle.Address, error)
}

var _ settle.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler of PatchMsg messages for
// the configuration of pkg. newConfig must return a new zero configuration
// on every call.
//
// A stored configuration can only be changed by its owner. When nothing is
// stored yet, the identity returned by initAdmin may create the
// configuration. Without initAdmin a configuration must come from genesis.
func NewUpdateConfigurationHandler(
	pkg string,
	newConfig func() OwnedConfig,
	auth x.Authenticator,
	initAdmin func(settle.ReadOnlyKVStore) (settle.Address, error),
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		newConfig: newConfig,
		auth:      auth,
		initAdmin: initAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	if _, err := h.patched(ctx, db, tx); err != nil {
		return nil, err
	}
	return &settle.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	conf, err := h.patched(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	settle.GetLogger(ctx).Info("configuration updated", "package", h.pkg, "owner", conf.GetOwner())
	return &settle.DeliverResult{}, nil
}

// patched authorizes the caller and returns the stored configuration with
// the message patch applied.
func (h UpdateConfigurationHandler) patched(ctx settle.Context, db settle.ReadOnlyKVStore, tx settle.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	pmsg, ok := msg.(PatchMsg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T is not a configuration patch", msg)
	}
	if err := pmsg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	patch := pmsg.ConfigPatch()
	if patch == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "patch")
	}

	conf := h.newConfig()
	switch err := Load(db, h.pkg, conf); {
	case err == nil:
		owner := conf.GetOwner()
		if owner == nil || !h.auth.HasAddress(ctx, owner) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
		}
	case errors.ErrNotFound.Is(err):
		if h.initAdmin == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "configuration does not exist and cannot be initialized")
		}
		admin, err := h.initAdmin(db)
		if err != nil {
			return nil, errors.Wrap(err, "get init admin")
		}
		if !h.auth.HasAddress(ctx, admin) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "initialization admin signature required")
		}
	default:
		return nil, errors.Wrap(err, "load current configuration")
	}

	if err := apply(conf, patch); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "patched configuration")
	}
	return conf, nil
}

// apply copies every non zero field of patch into conf. Both must be
// pointers to the same struct type.
func apply(conf, patch OwnedConfig) error {
	if reflect.TypeOf(conf) != reflect.TypeOf(patch) {
		return errors.Wrapf(errors.ErrType, "patch %T does not match configuration %T", patch, conf)
	}
	dst := reflect.ValueOf(conf).Elem()
	src := reflect.ValueOf(patch).Elem()
	for i := 0; i < dst.NumField(); i++ {
		f := src.Field(i)
		if reflect.DeepEqual(f.Interface(), reflect.Zero(f.Type()).Interface()) {
			continue
		}
		dst.Field(i).Set(f)
	}
	return nil
}
