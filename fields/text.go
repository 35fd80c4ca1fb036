package fields

import (
	"net/mail"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"field-marshaller/marshal"
	"field-marshaller/primitive"
)

// EmailField serializes strings holding a bare email address.
type EmailField struct{ base }

func Email(opts ...Option) *EmailField {
	return &EmailField{base: newBase(primitive.CategoryNone, opts)}
}

func (f *EmailField) Serialize(value any, _ string, _ any) (any, error) {
	v, ok := f.prepare(value)
	if !ok {
		return nil, nil
	}

	if v, ok = indirect(v); !ok {
		return nil, nil
	}

	s, err := primitive.Convert(v, primitive.KindString, f.categories)
	if err != nil {
		return nil, marshal.NewValidationError(MsgInvalidEmail)
	}

	addr, err := mail.ParseAddress(s.(string))
	if err != nil || addr.Name != "" || addr.Address != s {
		return nil, marshal.NewValidationError(MsgInvalidEmail)
	}

	return addr.Address, nil
}

// UUIDField serializes UUIDs in their canonical string form.
type UUIDField struct{ base }

// UUID accepts uuid.UUID, 16-byte arrays and slices, and any string uuid.Parse accepts.
func UUID(opts ...Option) *UUIDField {
	return &UUIDField{base: newBase(primitive.CategoryNone, opts)}
}

func (f *UUIDField) Serialize(value any, _ string, _ any) (any, error) {
	v, ok := f.prepare(value)
	if !ok {
		return nil, nil
	}

	if v, ok = indirect(v); !ok {
		return nil, nil
	}

	id, err := toUUID(v)
	if err != nil {
		return nil, marshal.NewValidationError(MsgInvalidUUID)
	}

	return id.String(), nil
}

func toUUID(v any) (uuid.UUID, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u, nil
	case [16]byte:
		return uuid.UUID(u), nil
	case []byte:
		if len(u) == 16 {
			return uuid.FromBytes(u)
		}
		return uuid.ParseBytes(u)
	case string:
		return uuid.Parse(u)
	}

	return uuid.Nil, errors.Newf("%T is not a uuid value", v)
}
