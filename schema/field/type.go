package field

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// A Type represents a field type.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeJSON
	TypeUUID
	TypeBytes
	TypeEnum
	TypeString
	TypeDecimal
	TypeOther
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
	TypeJSON:    "json.RawMessage",
	TypeUUID:    "uuid.UUID",
	TypeBytes:   "[]byte",
	TypeEnum:    "string",
	TypeString:  "string",
	TypeDecimal: "apd.Decimal",
	TypeOther:   "other",
	TypeInt:     "int",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeUint:    "uint",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
}

// names accepted by ParseType, in addition to the Go type names above.
var typeAliases = map[string]Type{
	"bool":      TypeBool,
	"boolean":   TypeBool,
	"time":      TypeTime,
	"timestamp": TypeTime,
	"json":      TypeJSON,
	"uuid":      TypeUUID,
	"bytes":     TypeBytes,
	"binary":    TypeBytes,
	"enum":      TypeEnum,
	"string":    TypeString,
	"text":      TypeString,
	"decimal":   TypeDecimal,
	"numeric":   TypeDecimal,
	"other":     TypeOther,
	"int":       TypeInt,
	"integer":   TypeInt,
	"int8":      TypeInt8,
	"int16":     TypeInt16,
	"int32":     TypeInt32,
	"int64":     TypeInt64,
	"long":      TypeInt64,
	"uint":      TypeUint,
	"uint8":     TypeUint8,
	"uint16":    TypeUint16,
	"uint32":    TypeUint32,
	"uint64":    TypeUint64,
	"float32":   TypeFloat32,
	"float":     TypeFloat32,
	"float64":   TypeFloat64,
	"double":    TypeFloat64,
}

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type if known type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t < endTypes
}

// Integer reports if the given type is an integral type.
func (t Type) Integer() bool {
	return t.Numeric() && t != TypeFloat32 && t != TypeFloat64
}

// Float reports if the given type is a float type.
func (t Type) Float() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// ParseType parses a type name as written in metadata documents.
// Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	if t, ok := typeAliases[fold(s)]; ok {
		return t, nil
	}
	return TypeInvalid, fmt.Errorf("field: unknown type %q", s)
}

// Temporal qualifies how a time value is stored.
type Temporal uint8

// Temporal qualifiers. TemporalNone on a time field is stored as a timestamp.
const (
	TemporalNone Temporal = iota
	TemporalDate
	TemporalTime
	TemporalTimestamp
)

var temporalNames = [...]string{
	TemporalNone:      "",
	TemporalDate:      "date",
	TemporalTime:      "time",
	TemporalTimestamp: "timestamp",
}

// String returns the qualifier name, or an empty string for TemporalNone.
func (t Temporal) String() string {
	if int(t) < len(temporalNames) {
		return temporalNames[t]
	}
	return fmt.Sprintf("temporal(%d)", t)
}

// ParseTemporal parses a temporal qualifier name. The empty string is TemporalNone.
func ParseTemporal(s string) (Temporal, error) {
	f := fold(s)
	for i, name := range temporalNames {
		if f == name {
			return Temporal(i), nil
		}
	}
	return TemporalNone, fmt.Errorf("field: unknown temporal qualifier %q", s)
}

// GenerationType is the declared strategy for generating identifier values.
type GenerationType uint8

// Generation strategies.
const (
	GenerationAuto GenerationType = iota
	GenerationIdentity
	GenerationSequence
	GenerationTable
)

var generationNames = [...]string{
	GenerationAuto:     "auto",
	GenerationIdentity: "identity",
	GenerationSequence: "sequence",
	GenerationTable:    "table",
}

// String returns the strategy name.
func (g GenerationType) String() string {
	if int(g) < len(generationNames) {
		return generationNames[g]
	}
	return fmt.Sprintf("generation(%d)", g)
}

// ParseGenerationType parses a strategy name. The empty string is GenerationAuto.
func ParseGenerationType(s string) (GenerationType, error) {
	f := fold(s)
	if f == "" {
		return GenerationAuto, nil
	}
	for i, name := range generationNames {
		if f == name {
			return GenerationType(i), nil
		}
	}
	return GenerationAuto, fmt.Errorf("field: unknown generation strategy %q", s)
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
