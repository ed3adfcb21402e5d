package exapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text is a string field that upstream sometimes emits as a number, a
// boolean or null. Numbers and booleans keep their literal form; null,
// objects and arrays decode to the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 'n', '{', '[':
		*t = ""
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the text.
func (t Text) String() string { return string(t) }

// Count is an integer field that upstream emits either as a number or as a
// numeric string. Anything else decodes to zero.
type Count int

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(t.String()), 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Count(int(f))
	return nil
}

// Int returns the count as an int.
func (c Count) Int() int { return int(c) }
