package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// QuestionID identifies a question. Banks may use numbers or strings for ids;
// the textual form is kept so 1 and "1" refer to the same question.
type QuestionID string

func (id QuestionID) String() string {
	return string(id)
}

// UnmarshalJSON accepts any JSON scalar.
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuestionID(s)
	case '{', '[':
		return fmt.Errorf("question id must be a scalar, got %s", data)
	default:
		*id = QuestionID(data)
	}
	return nil
}

// MarshalJSON writes numeric ids back as numbers.
func (id QuestionID) MarshalJSON() ([]byte, error) {
	if id.isNumber() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalYAML accepts any YAML scalar.
func (id *QuestionID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("question id must be a scalar (line %d)", value.Line)
	}
	*id = QuestionID(value.Value)
	return nil
}

func (id QuestionID) isNumber() bool {
	if id == "" {
		return false
	}
	c := id[0]
	if c != '-' && (c < '0' || c > '9') {
		return false
	}
	raw := []byte(id)
	if len(bytes.TrimSpace(raw)) != len(raw) {
		return false
	}
	return json.Valid(raw)
}
