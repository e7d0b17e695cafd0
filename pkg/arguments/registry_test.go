package arguments

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/openfroyo/argcheck/pkg/validation"
)

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{
			name: "valid command",
			cmd: Command{
				Name: "build",
				Arguments: []ArgumentSpec{
					{Name: "target", Validator: validation.String},
					{Name: "count", Validator: validation.Integer, Default: 1},
				},
			},
		},
		{
			name: "command without arguments",
			cmd:  Command{Name: "version"},
		},
		{
			name:    "missing command name",
			cmd:     Command{},
			wantErr: ErrInvalidDeclaration,
		},
		{
			name: "missing argument name",
			cmd: Command{
				Name:      "build",
				Arguments: []ArgumentSpec{{Validator: validation.String}},
			},
			wantErr: ErrInvalidDeclaration,
		},
		{
			name: "duplicate argument names",
			cmd: Command{
				Name:      "build",
				Arguments: []ArgumentSpec{{Name: "a"}, {Name: "a"}},
			},
			wantErr: ErrInvalidDeclaration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(tt.cmd)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if _, err := r.Lookup(tt.cmd.Name); err != nil {
					t.Errorf("Lookup after Register: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Command{Name: "build"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(Command{Name: "build"}); !errors.Is(err, ErrDuplicateCommand) {
		t.Errorf("err = %v, want ErrDuplicateCommand", err)
	}
}

func TestRegistry_LookupAndNames(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"test", "build", "dev"} {
		if err := r.Register(Command{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := r.Lookup("deploy"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("err = %v, want ErrUnknownCommand", err)
	}

	if diff := cmp.Diff([]string{"build", "dev", "test"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
