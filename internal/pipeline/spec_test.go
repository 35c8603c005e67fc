package pipeline

import (
	"errors"
	"testing"
)

func TestParseSpec(t *testing.T) {
	data := []byte(`{
		"name": "fetch-annotations",
		"steps": [
			{
				"kind": "items.list",
				"inputs": [{"name": "dataset", "from": "dataset", "type": "object"}],
				"kwargs": {"remote_path": "/train"},
				"outputs": [{"name": "items", "type": "list"}]
			},
			{
				"kind": "annotations.get_batch",
				"inputs": [{"name": "items", "from": "items", "type": "list"}],
				"outputs": [{"name": "annotations", "type": "list"}]
			}
		]
	}`)

	spec, err := ParseSpec(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spec.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(spec.Steps))
	}
	// Незаполненный by нормализуется в ref.
	if spec.Steps[0].Inputs[0].By != BindingRef {
		t.Fatalf("expected ref binding, got %q", spec.Steps[0].Inputs[0].By)
	}
}

func TestParseSpec_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "no steps",
			data:    `{"steps": []}`,
			wantErr: ErrEmptySteps,
		},
		{
			name:    "empty kind",
			data:    `{"steps": [{"name": "s1"}]}`,
			wantErr: ErrEmptyStepKind,
		},
		{
			name: "bad binding",
			data: `{"steps": [{"kind": "items.get",
				"inputs": [{"name": "dataset", "from": "d", "by": "pointer"}]}]}`,
			wantErr: ErrInvalidBinding,
		},
		{
			name: "bad value type",
			data: `{"steps": [{"kind": "items.get",
				"inputs": [{"name": "dataset", "from": "d", "type": "tuple"}]}]}`,
			wantErr: ErrInvalidValueType,
		},
		{
			name: "value binding with non-string type",
			data: `{"steps": [{"kind": "items.get",
				"inputs": [{"name": "item_id", "from": "abc", "by": "value", "type": "object"}]}]}`,
			wantErr: ErrInvalidBinding,
		},
		{
			name: "input without from",
			data: `{"steps": [{"kind": "items.get",
				"inputs": [{"name": "dataset"}]}]}`,
			wantErr: ErrInvalidBinding,
		},
		{
			name: "duplicate output",
			data: `{"steps": [{"kind": "items.get",
				"outputs": [{"name": "item"}, {"name": "item"}]}]}`,
			wantErr: ErrDuplicateOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestParseSpec_MalformedJSON(t *testing.T) {
	if _, err := ParseSpec([]byte(`{"steps": [`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParseBinding(t *testing.T) {
	if b, err := ParseBinding(""); err != nil || b != BindingRef {
		t.Fatalf("empty binding: %v, %v", b, err)
	}
	if b, err := ParseBinding("value"); err != nil || b != BindingValue {
		t.Fatalf("value binding: %v, %v", b, err)
	}
	if _, err := ParseBinding("copy"); !errors.Is(err, ErrInvalidBinding) {
		t.Fatalf("expected ErrInvalidBinding, got %v", err)
	}
}
