package decode_test

import (
	"encoding/json"
	"testing"

	"github.com/JaimeStill/catalog-lab/pkg/decode"
)

type payload struct {
	Name  string               `json:"name"`
	Phone decode.Field[string] `json:"phone,omitzero"`
}

func TestField_Unmarshal(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValid   bool
		wantValue   string
	}{
		{"absent", `{"name":"acme"}`, false, false, ""},
		{"explicit null", `{"name":"acme","phone":null}`, true, false, ""},
		{"value", `{"name":"acme","phone":"+1-555-0100"}`, true, true, "+1-555-0100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			if p.Phone.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.Phone.Present, tt.wantPresent)
			}
			if p.Phone.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", p.Phone.Valid, tt.wantValid)
			}
			if p.Phone.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", p.Phone.Value, tt.wantValue)
			}
		})
	}
}

func TestField_Marshal(t *testing.T) {
	tests := []struct {
		name  string
		field decode.Field[string]
		want  string
	}{
		{"absent omitted", decode.Field[string]{}, `{"name":"acme"}`},
		{"null emitted", decode.Null[string](), `{"name":"acme","phone":null}`},
		{"value emitted", decode.Set("+1-555-0100"), `{"name":"acme","phone":"+1-555-0100"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(payload{Name: "acme", Phone: tt.field})
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("Marshal() = %s, want %s", b, tt.want)
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	got, err := decode.FromMap[payload](map[string]any{
		"name":  "acme",
		"phone": "+1-555-0100",
	})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if got.Name != "acme" {
		t.Errorf("Name = %q", got.Name)
	}
	if !got.Phone.Valid || got.Phone.Value != "+1-555-0100" {
		t.Errorf("Phone = %+v", got.Phone)
	}
}
