package noise

// Type selects a noise family.
type Type int

const (
	TypeValue Type = iota
	TypePerlin
	TypeSimplex
	TypeRidged
	TypeWarped
	TypeCellular
)

// String returns the config-file name of the noise type.
func (t Type) String() string {
	switch t {
	case TypeValue:
		return "value"
	case TypePerlin:
		return "perlin"
	case TypeSimplex:
		return "simplex"
	case TypeRidged:
		return "ridged"
	case TypeWarped:
		return "warped"
	case TypeCellular:
		return "cellular"
	}
	return "unknown"
}

// ParseType maps a config-file name to a noise type. Unknown names fall
// back to value noise rather than erroring; generation is fail-soft.
func ParseType(s string) Type {
	switch s {
	case "perlin":
		return TypePerlin
	case "simplex":
		return TypeSimplex
	case "ridged":
		return TypeRidged
	case "warped":
		return TypeWarped
	case "cellular":
		return TypeCellular
	default:
		return TypeValue
	}
}

// Settings is a pure value type describing one layered noise evaluation.
// It is always copied by value; blended settings are fresh copies and
// never alias a shared instance.
type Settings struct {
	Type        Type
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Offset      float64
}

// DefaultSettings are reasonable terrain defaults, matching the values
// the generator falls back to when the config leaves them zero.
func DefaultSettings() Settings {
	return Settings{
		Type:        TypeValue,
		Scale:       1.0 / 64.0,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}
