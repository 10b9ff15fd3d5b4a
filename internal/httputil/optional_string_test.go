package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringTriState(t *testing.T) {
	type payload struct {
		ParentID OptionalString `json:"parentId"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantNil     bool
		wantValue   string
	}{
		{"absent", `{}`, false, true, ""},
		{"null", `{"parentId": null}`, true, true, ""},
		{"empty string", `{"parentId": ""}`, true, false, ""},
		{"value", `{"parentId": "abc-123"}`, true, false, "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.ParentID.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.ParentID.Present, tt.wantPresent)
			}
			if (p.ParentID.Value == nil) != tt.wantNil {
				t.Errorf("Value nil = %v, want %v", p.ParentID.Value == nil, tt.wantNil)
			}
			if p.ParentID.Value != nil && *p.ParentID.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", *p.ParentID.Value, tt.wantValue)
			}
		})
	}
}

func TestOptionalStringRejectsNonString(t *testing.T) {
	var o OptionalString
	if err := o.UnmarshalJSON([]byte(`42`)); err == nil {
		t.Error("expected error for numeric value")
	}
}
