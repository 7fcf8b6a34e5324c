package lang

import (
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Document is the ordered result of evaluating a program. Entries appear
// in the order their statements first produced them; redefining a name
// replaces the value in place.
type Document struct {
	entries []MapEntry
	index   map[string]int
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{index: make(map[string]int)}
}

// Set adds or replaces an entry. A key set before keeps its original
// position; only its value is replaced.
func (d *Document) Set(key string, value Value) {
	if i, ok := d.index[key]; ok {
		d.entries[i].Value = value

		return
	}

	d.index[key] = len(d.entries)
	d.entries = append(d.entries, MapEntry{Key: key, Value: value})
}

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.entries) }

// Entries returns the ordered entries. The slice is shared with the
// document and must not be modified.
func (d *Document) Entries() []MapEntry { return d.entries }

// Get returns the value bound to key and whether the key exists.
func (d *Document) Get(key string) (Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}

	return d.entries[i].Value, true
}

// EncodeYAML renders the document as YAML, preserving entry order.
// Indent values less than 1 fall back to the default of 2. With flow
// enabled, sequences and mappings use inline bracket syntax.
func (d *Document) EncodeYAML(indent int, flow bool) (string, error) {
	if indent < 1 {
		indent = 2
	}

	out, err := yaml.MarshalWithOptions(
		d.mapSlice(),
		yaml.Indent(indent),
		yaml.Flow(flow),
	)
	if err != nil {
		return "", WrapError(err)
	}

	return string(out), nil
}

// mapSlice converts the document to an order-preserving structure the
// YAML encoder understands.
func (d *Document) mapSlice() yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, len(d.entries))

	for _, entry := range d.entries {
		ms = append(ms, yaml.MapItem{
			Key:   entry.Key,
			Value: yamlValue(entry.Value),
		})
	}

	return ms
}

func yamlValue(v Value) any {
	switch v.Kind {
	case KindSequenceValue:
		seq := make([]any, 0, len(v.Sequence))
		for _, elem := range v.Sequence {
			seq = append(seq, yamlValue(elem))
		}

		return seq

	case KindMappingValue:
		ms := make(yaml.MapSlice, 0, len(v.Entries))
		for _, entry := range v.Entries {
			ms = append(ms, yaml.MapItem{
				Key:   entry.Key,
				Value: yamlValue(entry.Value),
			})
		}

		return ms

	default:
		return v.Number
	}
}

// EncodeJSON renders the document as JSON, preserving entry order.
// A positive indent produces one entry per line at that indent width;
// zero or negative produces compact single-line output.
func (d *Document) EncodeJSON(indent int) string {
	var b strings.Builder

	writeJSONEntries(&b, d.entries, indent, 0)
	b.WriteRune('\n')

	return b.String()
}

func writeJSONEntries(b *strings.Builder, entries []MapEntry, indent, depth int) {
	if len(entries) == 0 {
		b.WriteString("{}")

		return
	}

	b.WriteRune('{')

	for i, entry := range entries {
		if i > 0 {
			b.WriteRune(',')
		}

		jsonNewline(b, indent, depth+1)
		b.WriteString(strconv.Quote(entry.Key))
		b.WriteString(": ")
		writeJSONValue(b, entry.Value, indent, depth+1)
	}

	jsonNewline(b, indent, depth)
	b.WriteRune('}')
}

func writeJSONValue(b *strings.Builder, v Value, indent, depth int) {
	switch v.Kind {
	case KindSequenceValue:
		if len(v.Sequence) == 0 {
			b.WriteString("[]")

			return
		}

		b.WriteRune('[')

		for i, elem := range v.Sequence {
			if i > 0 {
				b.WriteRune(',')
			}

			jsonNewline(b, indent, depth+1)
			writeJSONValue(b, elem, indent, depth+1)
		}

		jsonNewline(b, indent, depth)
		b.WriteRune(']')

	case KindMappingValue:
		writeJSONEntries(b, v.Entries, indent, depth)

	default:
		b.WriteString(strconv.FormatFloat(v.Number, 'f', -1, 64))
	}
}

func jsonNewline(b *strings.Builder, indent, depth int) {
	if indent <= 0 {
		return
	}

	b.WriteRune('\n')

	for range indent * depth {
		b.WriteRune(' ')
	}
}
