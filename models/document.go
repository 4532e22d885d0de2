package models

import "time"

// Document is a schemaless record as stored in, and read back from, a collection.
type Document map[string]any

// Keys the persistence layer owns on every stored document.
const (
	IDField        = "_id"
	CreatedAtField = "created_at"
	UpdatedAtField = "updated_at"
)

// ID returns the opaque identifier of a stored document, or "" if it has none.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Clone returns a shallow copy so callers can stamp metadata without
// touching the caller's map.
func (d Document) Clone() Document {
	out := make(Document, len(d)+3)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// WithTimestamps returns a copy of d stamped with created_at and updated_at.
func (d Document) WithTimestamps(now time.Time) Document {
	out := d.Clone()
	now = now.UTC()
	out[CreatedAtField] = now
	out[UpdatedAtField] = now
	return out
}
