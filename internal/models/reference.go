package models

import "gorm.io/datatypes"

// Typed reference identifiers. Each entity gets its own ID type so that a
// project reference can never be handed to an API expecting a user.
type (
	UserID    uint64
	ProjectID uint64
	TaskID    uint64
	ProfileID uint64
)

// Reference lists are denormalized ID lists stored as JSON columns on the
// owning document (datatypes.JSONSlice). The helpers below keep them
// duplicate-free; the repositories are responsible for updating them inside
// the same transaction as the primary write.

// AppendRef adds id to refs unless it is already present.
func AppendRef[T comparable](refs datatypes.JSONSlice[T], id T) datatypes.JSONSlice[T] {
	if ContainsRef(refs, id) {
		return refs
	}
	return append(refs, id)
}

// PullRef removes every occurrence of id from refs.
func PullRef[T comparable](refs datatypes.JSONSlice[T], id T) datatypes.JSONSlice[T] {
	out := make(datatypes.JSONSlice[T], 0, len(refs))
	for _, ref := range refs {
		if ref != id {
			out = append(out, ref)
		}
	}
	return out
}

// ContainsRef reports whether id is present in refs.
func ContainsRef[T comparable](refs datatypes.JSONSlice[T], id T) bool {
	for _, ref := range refs {
		if ref == id {
			return true
		}
	}
	return false
}
