// Package defaults merges secure default values into component configs.
//
// Each component ships an immutable defaults struct; Apply fills the
// zero-valued fields of a user config from it. No package-level mutable
// state: the merge is a pure structural operation on two values of the
// same struct type.
package defaults

import (
	"fmt"
	"reflect"
)

// Apply copies each field of defaults into *cfg where the corresponding
// field of *cfg is the zero value. Non-zero user values always win.
//
// Slices, maps, and pointers are treated as a whole: a nil slice is filled
// from defaults, a non-empty one is kept as-is. Nested structs are merged
// recursively. cfg must be a non-nil pointer to a struct and defaults a
// value of the same struct type.
func Apply[T any](cfg *T, defaults T) error {
	if cfg == nil {
		return fmt.Errorf("defaults: nil config")
	}

	dst := reflect.ValueOf(cfg).Elem()
	src := reflect.ValueOf(defaults)
	if dst.Kind() != reflect.Struct {
		return fmt.Errorf("defaults: config must be a struct, got %s", dst.Kind())
	}

	mergeStruct(dst, src)
	return nil
}

func mergeStruct(dst, src reflect.Value) {
	for i := 0; i < dst.NumField(); i++ {
		field := dst.Field(i)
		if !field.CanSet() {
			continue
		}

		defVal := src.Field(i)

		// Recurse into plain nested structs so a partially filled section
		// still picks up the remaining defaults. Structs with custom
		// marshaling (intrinsics) are opaque values.
		if field.Kind() == reflect.Struct && !isOpaque(field) {
			mergeStruct(field, defVal)
			continue
		}

		if field.IsZero() {
			field.Set(defVal)
		}
	}
}

// isOpaque reports whether a struct value should be treated as a scalar
// during merging.
func isOpaque(v reflect.Value) bool {
	if !v.CanInterface() {
		return true
	}
	type marshaler interface{ MarshalJSON() ([]byte, error) }
	_, ok := v.Interface().(marshaler)
	return ok
}
