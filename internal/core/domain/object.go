package domain

import (
	"github.com/google/uuid"
	"go.trai.ch/zerr"
)

// objectNamespace seeds name-derived keys for hosts that have no stable ids of their own.
var objectNamespace = uuid.MustParse("6f1c5b8e-3a47-4f5e-9d2a-6a0c3e1d7b42")

// ObjectKey is the stable identity of a mesh-owning object.
// It never changes when the object is renamed.
type ObjectKey uuid.UUID

// NewObjectKey returns a random key.
func NewObjectKey() ObjectKey {
	return ObjectKey(uuid.New())
}

// ObjectKeyForName derives a deterministic key from a name. Hosts use it only when the
// object has no id of its own; renaming such an object yields a new identity.
func ObjectKeyForName(name string) ObjectKey {
	return ObjectKey(uuid.NewSHA1(objectNamespace, []byte(name)))
}

// ParseObjectKey parses the textual form of a key.
func ParseObjectKey(s string) (ObjectKey, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ObjectKey{}, zerr.With(zerr.Wrap(err, "invalid object key"), "key", s)
	}
	return ObjectKey(id), nil
}

// IsZero reports whether the key is unset.
func (k ObjectKey) IsZero() bool {
	return uuid.UUID(k) == uuid.Nil
}

func (k ObjectKey) String() string {
	return uuid.UUID(k).String()
}

// Short returns the first eight hex digits, for display.
func (k ObjectKey) Short() string {
	return k.String()[:8]
}
