package pipeline

import "errors"

// Ошибки выполнения шагов.
var (
	// ErrMissingInput — ключ input'а отсутствует в контексте.
	ErrMissingInput = errors.New("input key missing from pipeline context")

	// ErrAmbiguousPrimary — primary-объект не найден или найден более одного раза.
	ErrAmbiguousPrimary = errors.New("ambiguous primary input")

	// ErrOutputArity — количество результатов не совпадает с количеством outputs.
	ErrOutputArity = errors.New("step output arity mismatch")

	// ErrTypeMismatch — значение в контексте не того типа, который объявлен.
	ErrTypeMismatch = errors.New("context value type mismatch")
)

// Ошибки валидации спецификации.
var (
	// ErrEmptySteps — спецификация не содержит шагов.
	ErrEmptySteps = errors.New("pipeline spec has no steps")

	// ErrEmptyStepKind — шаг не имеет kind.
	ErrEmptyStepKind = errors.New("step has empty kind")

	// ErrUnknownStepKind — kind шага не найден в реестре.
	ErrUnknownStepKind = errors.New("unknown step kind")

	// ErrInvalidBinding — недопустимое значение поля by (не ref и не value).
	ErrInvalidBinding = errors.New("invalid input binding")

	// ErrInvalidValueType — недопустимый тип значения в описании input/output.
	ErrInvalidValueType = errors.New("invalid value type")

	// ErrDuplicateOutput — несколько outputs с одинаковым именем.
	ErrDuplicateOutput = errors.New("duplicate output name")
)

// ValidationError — ошибка валидации спецификации с контекстом.
type ValidationError struct {
	Step    string // имя шага, где произошла ошибка
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.Step != "" {
		return "step " + e.Step + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(step, field, message string, err error) *ValidationError {
	return &ValidationError{
		Step:    step,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
