package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON field from an explicit
// null, which a plain *string cannot. Folder and document moves need
// all three states of parentId/folderId:
//   - Present=false: field absent, leave the current value alone
//   - Present=true, Value=nil: explicit null, move to the root
//   - Present=true, Value=&s: move under s
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only invoked for fields that appear in the payload,
// which is what makes the absent state detectable.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
