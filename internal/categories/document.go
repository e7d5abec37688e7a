package categories

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// document is the on-disk shape of the category store: a JSON object
// mapping category name -> keyword list. Object key order is meaningful
// (it is the classification precedence), so decoding walks the token
// stream instead of unmarshaling into a map.
type document struct {
	names    []string
	keywords map[string][]string
}

func (d *document) has(name string) bool {
	_, ok := d.keywords[name]
	return ok
}

func (d *document) append(name string) {
	if d.keywords == nil {
		d.keywords = make(map[string][]string)
	}
	d.names = append(d.names, name)
	d.keywords[name] = nil
}

func (d *document) prepend(name string) {
	if d.keywords == nil {
		d.keywords = make(map[string][]string)
	}
	d.names = append([]string{name}, d.names...)
	d.keywords[name] = nil
}

// MarshalJSON writes the object with keys in insertion order.
func (d *document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		kws := d.keywords[name]
		if kws == nil {
			kws = []string{}
		}
		val, err := json.Marshal(kws)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object preserving key order.
func (d *document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	d.names = nil
	d.keywords = make(map[string][]string)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var kws []string
		if err := dec.Decode(&kws); err != nil {
			return fmt.Errorf("decoding keywords for %q: %w", name, err)
		}

		if _, seen := d.keywords[name]; !seen {
			d.names = append(d.names, name)
		}
		d.keywords[name] = kws
	}

	// Trailing '}'.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
