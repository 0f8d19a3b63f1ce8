package validation

import (
	"testing"
)

type toggleBody struct {
	Section string `json:"section" validate:"required,section"`
	Field   string `json:"field" validate:"required,oneof=view edit delete"`
}

type loginBody struct {
	Login string `json:"login" validate:"notblank"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		wantErr string
	}{
		{"valid toggle", toggleBody{Section: "chat", Field: "edit"}, ""},
		{"unknown section", toggleBody{Section: "kassa", Field: "edit"}, `section: unknown section "kassa"`},
		{"missing section", toggleBody{Field: "edit"}, "section is required"},
		{"bad field", toggleBody{Section: "chat", Field: "approve"}, "field must be one of: view edit delete"},
		{"blank login", loginBody{Login: "   "}, "login is required"},
		{"login", loginBody{Login: "aziza"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Struct() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
