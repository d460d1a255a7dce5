package registry

// PropertyType enumerates the value types a schema property may declare.
type PropertyType string

const (
	TypeString  PropertyType = "string"
	TypeInteger PropertyType = "integer"
	TypeNumber  PropertyType = "number"
	TypeBoolean PropertyType = "boolean"
	TypeArray   PropertyType = "array"
	TypeObject  PropertyType = "object"
)

// PropertySpec declares the type, default and constraints of a single
// configuration property.
type PropertySpec struct {
	Type    PropertyType
	Default any
	// Minimum, when set, is the inclusive lower bound for numeric values.
	Minimum *float64
	// Enum, when non-empty, restricts the value to the listed alternatives.
	Enum []any
	// Nullable permits an explicit null in place of a typed value.
	Nullable bool
	// Properties declares nested defaults and constraints for object values.
	// Nested defaults merge into partially specified sub-objects rather than
	// replacing them.
	Properties map[string]PropertySpec
}

// Dependency declares that a component's owner depends on another role, with
// the named variant used when the configuration omits that role's section.
type Dependency struct {
	Role        Role
	DefaultName string
}

// Schema is the declared configuration contract of a component variant.
// Unknown properties are always rejected.
type Schema struct {
	Properties   map[string]PropertySpec
	Dependencies []Dependency
	// RequiresInput marks an algorithm that needs the external input artifact
	// at construction time. The artifact is never passed to dependencies.
	RequiresInput bool
}

// Min is a convenience for building Minimum constraints inline.
func Min(v float64) *float64 {
	return &v
}
