package extract

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeList unmarshals a JSON array of T. A single JSON object is accepted
// as a one-element list.
func decodeList[T any](raw string) ([]T, error) {
	data := []byte(stripFences(raw))
	if bytes.HasPrefix(data, []byte("{")) {
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, err
		}
		return []T{one}, nil
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// text accepts a JSON string, number or null.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(strings.TrimSpace(s))
	default:
		*t = text(b)
	}
	return nil
}

var leadingNumberRe = regexp.MustCompile(`^-?\d+(\.\d+)?`)

// number accepts a JSON number, a numeric string ("12", "12g", "~300") or null.
type number int

func (n *number) UnmarshalJSON(b []byte) error {
	var t text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	s := strings.TrimLeft(string(t), "~≈ ")
	m := leadingNumberRe.FindString(s)
	if m == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return err
	}
	*n = number(math.Round(f))
	return nil
}
