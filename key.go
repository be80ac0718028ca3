package lazycell

import "fmt"

// Key names a typed slot in a Registry. The type parameter T is encoded
// into the underlying key string, so different types with the same name
// will not collide.
type Key[T any] struct {
	name string
}

// NewKey creates a new typed slot key.
func NewKey[T any](name string) Key[T] {
	var zero T
	return Key[T]{name: fmt.Sprintf("%T:%s", zero, name)}
}

// Name returns the encoded key string, as reported in EventData.
func (k Key[T]) Name() string { return k.name }
