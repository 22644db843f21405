package gconf

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// OwnedConfig is a configuration that names who may change it.
type OwnedConfig interface {
	Configuration
	GetOwner() custody.Address
}

// PatchMsg is implemented by the configuration update message of every
// package. GetPatch returns nil when no patch was sent.
type PatchMsg interface {
	custody.Msg
	GetPatch() OwnedConfig
}

// UpdateConfigurationHandler applies a PatchMsg to the stored configuration
// of pkg. Only the current owner may sign it. Zero fields of the patch leave
// the stored value untouched.
type UpdateConfigurationHandler struct {
	pkg   string
	ctype reflect.Type
	auth  x.Authenticator
}

var _ custody.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler serves updates for pkg. example only
// provides the concrete configuration type and is never written to.
func NewUpdateConfigurationHandler(pkg string, example OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:   pkg,
		ctype: reflect.TypeOf(example).Elem(),
		auth:  auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("configuration updated", "pkg", h.pkg)
	return &custody.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) apply(ctx custody.Context, db custody.KVStore, tx custody.Tx) error {
	current := reflect.New(h.ctype).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, current); err != nil {
		return errors.Wrap(err, "load current configuration")
	}
	owner := current.GetOwner()
	if len(owner) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	}
	if err := x.RequireSigner(ctx, h.auth, owner, "configuration owner"); err != nil {
		return err
	}

	p, err := patchOf(tx)
	if err != nil {
		return err
	}
	if reflect.TypeOf(p) != reflect.TypeOf(current) {
		return errors.Wrapf(errors.ErrType, "patch %T for %T", p, current)
	}
	merge(reflect.ValueOf(current).Elem(), reflect.ValueOf(p).Elem())
	// Save validates the merged result.
	return Save(db, h.pkg, current)
}

func patchOf(tx custody.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	pm, ok := msg.(PatchMsg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T is not a configuration patch", msg)
	}
	if err := pm.Validate(); err != nil {
		return nil, err
	}
	p := pm.GetPatch()
	if p == nil || reflect.ValueOf(p).IsNil() {
		return nil, errors.Wrap(errors.ErrEmpty, "patch")
	}
	return p, nil
}

// merge copies every non zero field of src into dst.
func merge(dst, src reflect.Value) {
	for i := 0; i < src.NumField(); i++ {
		if f := src.Field(i); !f.IsZero() {
			dst.Field(i).Set(f)
		}
	}
}
