package semantic

import "github.com/kolkov/radish/internal/types"

// Type is the statically known type of an expression.
type Type uint8

const (
	TypeUnknown Type = iota // Not determinable (follows an error)
	TypeNumber
	TypeBoolean
	TypeString
)

// String returns the type name as used in diagnostics.
func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Kind maps the static type to the runtime kind. Unknown maps to KindNil.
func (t Type) Kind() types.Kind {
	switch t {
	case TypeNumber:
		return types.KindNumber
	case TypeBoolean:
		return types.KindBoolean
	case TypeString:
		return types.KindString
	default:
		return types.KindNil
	}
}
