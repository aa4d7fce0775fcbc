package stake

import (
	"reflect"

	"github.com/iov-one/stake/errors"
)

// setMsg copies msg into the pointer held by dest. Both a pointer to a
// message pointer and a pointer to a message value are accepted.
func setMsg(dest interface{}, msg Msg) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a non nil pointer, got %T", dest)
	}
	target := dv.Elem()

	mv := reflect.ValueOf(msg)
	if mv.Type().AssignableTo(target.Type()) {
		target.Set(mv)
		return nil
	}
	if mv.Kind() == reflect.Ptr && !mv.IsNil() && mv.Elem().Type().AssignableTo(target.Type()) {
		target.Set(mv.Elem())
		return nil
	}
	return errors.Wrapf(errors.ErrType, "cannot load %T into %T", msg, dest)
}
