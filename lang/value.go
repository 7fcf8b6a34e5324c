package lang

import (
	"strconv"
	"strings"
)

// ValueKind identifies the runtime type of an evaluated value.
type ValueKind int

const (
	// KindNumberValue is a floating-point number.
	KindNumberValue ValueKind = iota

	// KindSequenceValue is an ordered list of values.
	KindSequenceValue

	// KindMappingValue is an ordered list of key-value entries.
	KindMappingValue
)

// String returns the type name used in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindNumberValue:
		return "number"
	case KindSequenceValue:
		return "sequence"
	case KindMappingValue:
		return "mapping"
	default:
		return "unknown"
	}
}

// MapEntry is a single entry of a mapping value. Entries preserve source
// order.
type MapEntry struct {
	Key   string
	Value Value
}

// Value is a fully evaluated value. Exactly one of Number, Sequence, or
// Entries is meaningful, selected by Kind.
type Value struct {
	Kind     ValueKind
	Number   float64
	Sequence []Value
	Entries  []MapEntry
}

// NumberValue constructs a number value.
func NumberValue(n float64) Value {
	return Value{Kind: KindNumberValue, Number: n}
}

// SequenceValue constructs a sequence value.
func SequenceValue(elems ...Value) Value {
	return Value{Kind: KindSequenceValue, Sequence: elems}
}

// MappingValue constructs a mapping value.
func MappingValue(entries ...MapEntry) Value {
	return Value{Kind: KindMappingValue, Entries: entries}
}

// String returns a compact single-line representation used in diagnostics
// and error attributes.
func (v Value) String() string {
	var b strings.Builder

	v.write(&b)

	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case KindNumberValue:
		b.WriteString(strconv.FormatFloat(v.Number, 'f', -1, 64))

	case KindSequenceValue:
		b.WriteRune('[')

		for i, elem := range v.Sequence {
			if i > 0 {
				b.WriteString("; ")
			}

			elem.write(b)
		}

		b.WriteRune(']')

	case KindMappingValue:
		b.WriteRune('{')

		for i, entry := range v.Entries {
			if i > 0 {
				b.WriteString("; ")
			}

			b.WriteString(entry.Key)
			b.WriteString(" = ")
			entry.Value.write(b)
		}

		b.WriteRune('}')
	}
}
