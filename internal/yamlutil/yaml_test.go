package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Depth int    `yaml:"depth"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		opts    []DecodeOption
		wantErr error
		want    sample
	}{
		{
			name: "valid document",
			data: []byte("name: litdoc\ndepth: 3\n"),
			dest: &sample{},
			want: sample{Name: "litdoc", Depth: 3},
		},
		{
			name: "unknown field ignored without strict",
			data: []byte("name: x\nextra: true\n"),
			dest: &sample{},
			want: sample{Name: "x"},
		},
		{
			name:    "unknown field rejected with strict",
			data:    []byte("name: x\nextra: true\n"),
			dest:    &sample{},
			opts:    []DecodeOption{Strict()},
			wantErr: errAny,
		},
		{
			name:    "empty data",
			data:    nil,
			dest:    &sample{},
			wantErr: ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: x\n"),
			dest:    nil,
			wantErr: ErrNilDestination,
		},
		{
			name:    "too large",
			data:    []byte("name: " + strings.Repeat("x", MaxInputSize)),
			dest:    &sample{},
			wantErr: ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Decode(tt.data, tt.dest, tt.opts...)
			switch {
			case tt.wantErr == errAny:
				if err == nil {
					t.Fatal("Decode() expected error, got nil")
				}
				return
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			case err != nil:
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if got := *tt.dest.(*sample); got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

var errAny = errors.New("any error")

func TestEncode(t *testing.T) {
	t.Parallel()

	out, err := Encode(sample{Name: "litdoc", Depth: 2})
	if err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "name: litdoc") || !strings.Contains(string(out), "depth: 2") {
		t.Errorf("Encode() = %q", out)
	}
}
