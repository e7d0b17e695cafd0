package validation

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr     string
		wantType string
		required bool
	}{
		{"string", "String", false},
		{"Boolean()", "Boolean", false},
		{"int", "Integer", false},
		{"filepath", "Filepath", false},
		{"arrayOf(integer)", "[Integer]", false},
		{"arrayOf()", "[]", false},
		{"objectOf", "{}", false},
		{"arrayOrSingle(path)", "Filepath / [Filepath]", false},
		{"oneOf(string, boolean)", "String / Boolean", false},
		{"required(arrayOf(oneOf(string, boolean)))", "[String / Boolean]", true},
		{"required", "", true},
		{"match(`^a+$`)", "/^a+$/", false},
		{"  objectOf( required( regexp ) ) ", "{RegExp}", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.expr, err)
			}
			desc := v.Describe()
			if desc.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", desc.Type, tt.wantType)
			}
			if desc.Required != tt.required {
				t.Errorf("Required = %v, want %v", desc.Required, tt.required)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		"",
		"unknown",
		"arrayOf(string",
		"arrayOf(string, boolean)",
		"string boolean",
		"match(string)",
		`match("(")`,
		"oneOf(,)",
		"string(integer)",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", expr)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("error %T is not a *ParseError", err)
			}
		})
	}
}

func TestParse_EmptyOneOfIsMisconfiguration(t *testing.T) {
	_, err := Parse("oneOf()")
	if !errors.Is(err, ErrMisconfigured) {
		t.Errorf("err = %v, want ErrMisconfigured", err)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic")
		}
	}()
	MustParse("nope")
}
