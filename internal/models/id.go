package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID identifies a user. Seed files may carry it as a JSON number or string,
// while form posts always deliver a string, so equality goes through Equal
// rather than ==.
type ID string

// String returns the id as stored.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is blank after trimming.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Equal compares two ids by value. Both sides are trimmed; when both parse
// as finite numbers they are compared numerically ("3", "3.0" and 3 are the
// same id), otherwise the trimmed strings must match exactly. A blank id
// equals nothing.
func (id ID) Equal(other ID) bool {
	a := strings.TrimSpace(string(id))
	b := strings.TrimSpace(string(other))
	if a == "" || b == "" {
		return false
	}
	if af, ok := parseNumericID(a); ok {
		if bf, ok := parseNumericID(b); ok {
			return af == bf
		}
	}
	return a == b
}

func parseNumericID(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar node.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("id must be a scalar, line %d", node.Line)
	}
	*id = ID(node.Value)
	return nil
}
