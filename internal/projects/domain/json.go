package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

var jsonNull = []byte("null")

// UnmarshalJSON rejects null for featured, tags and tag entries. Plain
// decoding would leave the zero value in place and store false or "".
func (p *ProjectInput) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil {
		if raw, ok := fields["featured"]; ok && isNull(raw) {
			return &ValidationError{Field: "featured", Message: "must be of type bool"}
		}
		if raw, ok := fields["tags"]; ok {
			if isNull(raw) {
				return &ValidationError{Field: "tags", Message: "must be a list of strings"}
			}
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err == nil {
				for i, item := range items {
					if isNull(item) {
						return &ValidationError{Field: "tags." + strconv.Itoa(i), Message: "must be of type string"}
					}
				}
			}
		}
	}

	type plain ProjectInput
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*p = ProjectInput(out)
	return nil
}

// UnmarshalJSON decodes the id and hands the rest to ProjectInput, whose
// method would otherwise be promoted and drop the id.
func (p *Project) UnmarshalJSON(data []byte) error {
	var id struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	if err := p.ProjectInput.UnmarshalJSON(data); err != nil {
		return err
	}
	p.ID = id.ID
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}
