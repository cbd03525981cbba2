package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Reserved attribute names present on every flat representation.
const (
	AttrClass     = "__class__"
	AttrID        = "id"
	AttrCreatedAt = "created_at"
	AttrUpdatedAt = "updated_at"
)

// TimeFormat is the layout of persisted and displayed timestamps.
const TimeFormat = "2006-01-02T15:04:05.000000"

// Entity is implemented by every kind in the closed set of entity kinds.
type Entity interface {
	// Kind returns the entity kind name, e.g. "Place".
	Kind() string

	// Base returns the identity and timestamp fields shared by all kinds.
	Base() *BaseModel

	attributes() []attribute
}

// BaseModel holds the identity contract shared by all entity kinds. It is
// also a kind in its own right with no declared attributes.
type BaseModel struct {
	ID        string         // UUID, generated on creation and never changed.
	CreatedAt time.Time      // Set once at construction.
	UpdatedAt time.Time      // Refreshed on every persisted mutation.
	Extra     map[string]any // Attributes outside the kind's declared schema.
}

// Kind returns KindBaseModel.
func (b *BaseModel) Kind() string { return KindBaseModel }

// Base returns b.
func (b *BaseModel) Base() *BaseModel { return b }

func (b *BaseModel) attributes() []attribute { return nil }

// Touch refreshes UpdatedAt.
func (b *BaseModel) Touch() {
	b.UpdatedAt = now()
}

func (b *BaseModel) setExtra(name string, value any) {
	if b.Extra == nil {
		b.Extra = make(map[string]any)
	}
	b.Extra[name] = value
}

// now returns the current time at the precision the store persists, so a
// freshly created entity equals its reloaded copy.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// New constructs a fresh entity of the given kind with a newly generated id
// and CreatedAt equal to UpdatedAt. Returns ErrUnknownKind for kinds outside
// the recognized set.
func New(kind string) (Entity, error) {
	e, err := blank(kind)
	if err != nil {
		return nil, err
	}
	b := e.Base()
	b.ID = uuid.NewString()
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
	return e, nil
}

// Reconstruct rebuilds an entity from a flat attribute dictionary previously
// produced by Flatten, preserving its id and timestamps. Declared attributes
// are coerced to their schema type; anything else lands in Extra.
func Reconstruct(kind string, attrs map[string]any) (Entity, error) {
	e, err := blank(kind)
	if err != nil {
		return nil, err
	}
	b := e.Base()

	b.ID, err = cast.ToStringE(attrs[AttrID])
	if err != nil || b.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidData)
	}
	if b.CreatedAt, err = parseTime(attrs[AttrCreatedAt]); err != nil {
		return nil, fmt.Errorf("%w: created_at: %v", ErrInvalidData, err)
	}
	if b.UpdatedAt, err = parseTime(attrs[AttrUpdatedAt]); err != nil {
		return nil, fmt.Errorf("%w: updated_at: %v", ErrInvalidData, err)
	}

	declared := declaredAttributes(e)
	for name, value := range attrs {
		if isReserved(name) {
			continue
		}
		if a, ok := declared[name]; ok {
			if err := a.assign(value); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, name, err)
			}
			continue
		}
		b.setExtra(name, value)
	}
	return e, nil
}

// Key returns the composite store key of e.
func Key(e Entity) string {
	return CompositeKey(e.Kind(), e.Base().ID)
}

// CompositeKey joins a kind and an id into the "Kind.id" store key.
func CompositeKey(kind, id string) string {
	return kind + "." + id
}

func parseTime(v any) (time.Time, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(TimeFormat, s)
	if err == nil {
		return t, nil
	}
	// Accept RFC 3339 for files written by other tools.
	if t, rfcErr := time.Parse(time.RFC3339Nano, s); rfcErr == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}

func isReserved(name string) bool {
	switch name {
	case AttrClass, AttrID, AttrCreatedAt, AttrUpdatedAt:
		return true
	}
	return false
}
