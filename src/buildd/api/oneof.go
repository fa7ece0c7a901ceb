package api

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoVariant is returned when a sum type carries none of its variants.
var ErrNoVariant = errors.New("api: no variant set")

// setVariant stores v in the pointer field of wire whose type is exactly v's type.
func setVariant(wire any, v any) error {
	vv := reflect.ValueOf(v)
	if !vv.IsValid() || vv.Kind() != reflect.Pointer || vv.IsNil() {
		return ErrNoVariant
	}
	rv := reflect.ValueOf(wire).Elem()
	for i := 0; i < rv.NumField(); i++ {
		if f := rv.Field(i); f.Type() == vv.Type() {
			f.Set(vv)
			return nil
		}
	}
	return fmt.Errorf("api: %T is not a variant of %T", v, wire)
}

// getVariant returns the only non-nil pointer field of wire.
func getVariant(wire any) (any, error) {
	rv := reflect.ValueOf(wire).Elem()
	var (
		found any
		names []string
	)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() != reflect.Pointer || f.IsNil() {
			continue
		}
		found = f.Interface()
		names = append(names, rv.Type().Field(i).Name)
	}
	switch len(names) {
	case 0:
		return nil, ErrNoVariant
	case 1:
		return found, nil
	}
	return nil, fmt.Errorf("api: %d variants set (%v), want exactly one", len(names), names)
}
