package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Label accepts any JSON value and keeps its display text. The service sends
// years and periods both as strings and numbers; other scalars, arrays and
// objects render through scalarText.
type Label string

// UnmarshalJSON implements json.Unmarshaler.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*l = Label(n.String())
		return nil
	}
	*l = Label(scalarText(data))
	return nil
}

// String returns the label text.
func (l Label) String() string { return string(l) }

// walkObject calls fn for each member of a JSON object in document order.
func walkObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dashboard: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("dashboard: unexpected key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// NamedNumber is one member of an ordered numeric object.
type NamedNumber struct {
	Name  string
	Value *float64
}

// NumberList decodes an object of numbers, keeping member order.
type NumberList []NamedNumber

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberList) UnmarshalJSON(data []byte) error {
	out := NumberList{}
	err := walkObject(data, func(key string, raw json.RawMessage) error {
		var v *float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("dashboard: %s: %w", key, err)
		}
		out = append(out, NamedNumber{Name: key, Value: v})
		return nil
	})
	if err != nil {
		return err
	}
	*n = out
	return nil
}

// QuarterStats holds the per-quarter figures.
type QuarterStats struct {
	Mean *float64 `json:"ortalama"`
	Min  *float64 `json:"minimum"`
	Max  *float64 `json:"maksimum"`
}

// QuarterStatsEntry pairs a quarter label with its figures.
type QuarterStatsEntry struct {
	Quarter string
	Stats   QuarterStats
}

// QuarterStatsList decodes the per-quarter object, keeping member order.
type QuarterStatsList []QuarterStatsEntry

// UnmarshalJSON implements json.Unmarshaler.
func (q *QuarterStatsList) UnmarshalJSON(data []byte) error {
	out := QuarterStatsList{}
	err := walkObject(data, func(key string, raw json.RawMessage) error {
		var stats QuarterStats
		if err := json.Unmarshal(raw, &stats); err != nil {
			return fmt.Errorf("dashboard: quarter %s: %w", key, err)
		}
		out = append(out, QuarterStatsEntry{Quarter: key, Stats: stats})
		return nil
	})
	if err != nil {
		return err
	}
	*q = out
	return nil
}

// KeyValue is one entry of a free-form key/value object. Nested objects
// decode into Children one level deep; anything deeper is flattened to text.
type KeyValue struct {
	Key      string
	Value    string
	Children []KeyValue
}

// Nested reports whether the entry holds child pairs instead of a value.
func (kv KeyValue) Nested() bool {
	return kv.Children != nil
}

// KeyValues decodes a free-form object, keeping member order.
type KeyValues []KeyValue

// UnmarshalJSON implements json.Unmarshaler.
// A value that is not an object becomes a single entry with an empty key.
func (kvs *KeyValues) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*kvs = nil
		return nil
	}
	if trimmed[0] != '{' {
		*kvs = KeyValues{{Value: scalarText(trimmed)}}
		return nil
	}
	out, err := decodeKeyValues(trimmed, 0)
	if err != nil {
		return err
	}
	*kvs = out
	return nil
}

const maxKeyValueDepth = 1

func decodeKeyValues(data []byte, depth int) (KeyValues, error) {
	out := KeyValues{}
	err := walkObject(data, func(key string, raw json.RawMessage) error {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '{' && depth < maxKeyValueDepth {
			children, err := decodeKeyValues(trimmed, depth+1)
			if err != nil {
				return err
			}
			out = append(out, KeyValue{Key: key, Children: children})
			return nil
		}
		out = append(out, KeyValue{Key: key, Value: scalarText(trimmed)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	case 'n':
		return ""
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, scalarText(bytes.TrimSpace(item)))
			}
			return strings.Join(parts, ", ")
		}
	case '{':
		var buf bytes.Buffer
		if json.Compact(&buf, raw) == nil {
			return buf.String()
		}
	default:
		var n json.Number
		if json.Unmarshal(raw, &n) == nil {
			if f, err := n.Float64(); err == nil {
				return strconv.FormatFloat(f, 'f', -1, 64)
			}
			return n.String()
		}
	}
	return string(raw)
}
