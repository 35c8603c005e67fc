package pipeline

import (
	"encoding/json"
	"fmt"
)

// Binding — способ связывания input'а со значением.
type Binding string

const (
	// BindingRef — значение берётся из контекста по ключу from.
	BindingRef Binding = "ref"

	// BindingValue — поле from содержит литерал, контекст не читается.
	BindingValue Binding = "value"
)

// ParseBinding парсит строку в Binding. Пустая строка — BindingRef.
func ParseBinding(s string) (Binding, error) {
	switch s {
	case "", "ref":
		return BindingRef, nil
	case "value":
		return BindingValue, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBinding, s)
	}
}

// InputSpec — описание одного входа шага.
type InputSpec struct {
	// Name — имя параметра, под которым значение попадёт в kwargs.
	Name string `json:"name"`

	// From — ключ контекста (binding ref) либо литерал (binding value).
	From string `json:"from"`

	// By — способ связывания. Пустое значение означает ref.
	By Binding `json:"by,omitempty"`

	// Type — объявленный тип значения. Пустое значение — без проверки.
	Type ValueType `json:"type,omitempty"`
}

// OutputSpec — описание одного выхода шага.
type OutputSpec struct {
	// Name — ключ контекста, под которым сохранится результат.
	Name string `json:"name"`

	// Type — объявленный тип результата. Пустое значение — без проверки.
	Type ValueType `json:"type,omitempty"`
}

// StepSpec — описание одного шага пайплайна.
type StepSpec struct {
	// Kind — тип шага, определяет операцию (например "items.get").
	Kind string `json:"kind"`

	// Name — имя шага для логов и ошибок. По умолчанию — kind.
	Name string `json:"name,omitempty"`

	// Inputs — входы шага.
	Inputs []InputSpec `json:"inputs,omitempty"`

	// Args — позиционные аргументы операции.
	Args []any `json:"args,omitempty"`

	// Kwargs — именованные аргументы операции.
	Kwargs map[string]any `json:"kwargs,omitempty"`

	// Outputs — выходы шага, записываются в контекст по порядку.
	Outputs []OutputSpec `json:"outputs,omitempty"`
}

// withDefaultShape возвращает спецификацию со встроенной формой kind'а:
// когда дескриптор не объявляет ни inputs, ни outputs, шаг принимает
// форму по умолчанию. Kind, Name, Args и Kwargs берутся из дескриптора.
func withDefaultShape(spec, def StepSpec) StepSpec {
	if len(spec.Inputs) > 0 || len(spec.Outputs) > 0 {
		return spec
	}
	spec.Inputs = def.Inputs
	spec.Outputs = def.Outputs
	return spec
}

// DisplayName возвращает имя шага для логов.
func (s StepSpec) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Kind
}

// Spec — спецификация пайплайна: упорядоченный список шагов.
type Spec struct {
	Name  string     `json:"name,omitempty"`
	Steps []StepSpec `json:"steps"`
}

// ParseSpec парсит JSON спецификацию пайплайна и валидирует её.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse pipeline spec: %w", err)
	}
	spec.normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// normalize проставляет значения по умолчанию.
func (s *Spec) normalize() {
	for i := range s.Steps {
		for j := range s.Steps[i].Inputs {
			if s.Steps[i].Inputs[j].By == "" {
				s.Steps[i].Inputs[j].By = BindingRef
			}
		}
	}
}

// Validate проверяет структурную корректность спецификации.
//
// Проверяются только описания шагов; существование kind'ов
// в реестре проверяет executor при сборке.
func (s *Spec) Validate() error {
	if len(s.Steps) == 0 {
		return NewValidationError("", "steps", "pipeline spec has no steps", ErrEmptySteps)
	}
	for i, step := range s.Steps {
		name := step.DisplayName()
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if step.Kind == "" {
			return NewValidationError(name, "kind", "step has empty kind", ErrEmptyStepKind)
		}
		if err := validateInputs(name, step.Inputs); err != nil {
			return err
		}
		if err := validateOutputs(name, step.Outputs); err != nil {
			return err
		}
	}
	return nil
}

func validateInputs(step string, inputs []InputSpec) error {
	for _, in := range inputs {
		if in.Name == "" {
			return NewValidationError(step, "inputs", "input has empty name", ErrInvalidBinding)
		}
		if in.From == "" {
			return NewValidationError(step, "inputs",
				fmt.Sprintf("input %q has empty from", in.Name), ErrInvalidBinding)
		}
		if _, err := ParseBinding(string(in.By)); err != nil {
			return NewValidationError(step, "inputs",
				fmt.Sprintf("input %q: invalid binding %q", in.Name, in.By), ErrInvalidBinding)
		}
		if in.Type != "" {
			if _, err := in.Type.Kind(); err != nil {
				return NewValidationError(step, "inputs",
					fmt.Sprintf("input %q: invalid type %q", in.Name, in.Type), ErrInvalidValueType)
			}
		}
		// Литеральный binding всегда даёт строку.
		if in.By == BindingValue && in.Type != "" && in.Type != TypeString {
			return NewValidationError(step, "inputs",
				fmt.Sprintf("input %q: value binding requires string type, got %q", in.Name, in.Type),
				ErrInvalidBinding)
		}
	}
	return nil
}

func validateOutputs(step string, outputs []OutputSpec) error {
	seen := make(map[string]struct{}, len(outputs))
	for _, out := range outputs {
		if out.Name == "" {
			return NewValidationError(step, "outputs", "output has empty name", ErrDuplicateOutput)
		}
		if _, ok := seen[out.Name]; ok {
			return NewValidationError(step, "outputs",
				fmt.Sprintf("duplicate output %q", out.Name), ErrDuplicateOutput)
		}
		seen[out.Name] = struct{}{}
		if out.Type != "" {
			if _, err := out.Type.Kind(); err != nil {
				return NewValidationError(step, "outputs",
					fmt.Sprintf("output %q: invalid type %q", out.Name, out.Type), ErrInvalidValueType)
			}
		}
	}
	return nil
}
