package pipeline

import (
	"context"
	"fmt"
)

// Step — один шаг пайплайна.
//
// Execute читает inputs из контекста пайплайна, выполняет операцию
// и записывает результаты по ключам outputs. До успешного завершения
// шаг не изменяет контекст.
type Step interface {
	// Name возвращает имя шага для логов и ошибок.
	Name() string

	// Kind возвращает тип шага.
	Kind() string

	// Arguments возвращает необязательные параметры операции
	// с их значениями по умолчанию. Используется инструментами
	// для предзаполнения kwargs.
	Arguments() map[string]any

	// Execute выполняет шаг над контекстом пайплайна.
	Execute(ctx context.Context, pc *Context) error
}

// base — общая механика связывания inputs/outputs для всех шагов.
type base struct {
	spec StepSpec
}

func (b *base) Name() string {
	return b.spec.DisplayName()
}

func (b *base) Kind() string {
	return b.spec.Kind
}

// requireInputs проверяет, что все ref-inputs присутствуют в контексте.
//
// Проверка выполняется до любых побочных эффектов: при отсутствии
// хотя бы одного ключа шаг не выполняется и контекст не меняется.
func (b *base) requireInputs(pc *Context) error {
	for _, in := range b.spec.Inputs {
		if in.By != BindingRef {
			continue
		}
		if !pc.Has(in.From) {
			return fmt.Errorf("%w: step %s input %q (key %q)",
				ErrMissingInput, b.Name(), in.Name, in.From)
		}
	}
	return nil
}

// primary находит единственный input с зарезервированным именем
// и возвращает его значение из контекста. defaultType применяется,
// когда тип в спецификации не объявлен.
func (b *base) primary(pc *Context, primaryName string, defaultType ValueType) (Value, error) {
	var found []InputSpec
	for _, in := range b.spec.Inputs {
		if in.Name == primaryName {
			found = append(found, in)
		}
	}
	if len(found) != 1 {
		return Value{}, fmt.Errorf("%w: step %s expects exactly one input named %q, got %d",
			ErrAmbiguousPrimary, b.Name(), primaryName, len(found))
	}
	in := found[0]
	if in.By != BindingRef {
		return Value{}, fmt.Errorf("%w: step %s primary input %q must be a ref binding",
			ErrInvalidBinding, b.Name(), primaryName)
	}
	typ := in.Type
	if typ == "" {
		typ = defaultType
	}
	return pc.GetTyped(in.From, typ)
}

// kwargs собирает именованные аргументы операции: сначала статические
// kwargs из спецификации, затем значения всех inputs кроме primary.
// Спецификация при этом не изменяется.
func (b *base) kwargs(pc *Context, primaryName string) (map[string]Value, error) {
	out := make(map[string]Value, len(b.spec.Kwargs)+len(b.spec.Inputs))
	for k, raw := range b.spec.Kwargs {
		out[k] = FromAny(raw)
	}
	for _, in := range b.spec.Inputs {
		if in.Name == primaryName {
			continue
		}
		switch in.By {
		case BindingValue:
			out[in.Name] = StringValue(in.From)
		default:
			if in.Type != "" {
				v, err := pc.GetTyped(in.From, in.Type)
				if err != nil {
					return nil, fmt.Errorf("step %s input %q: %w", b.Name(), in.Name, err)
				}
				out[in.Name] = v
				continue
			}
			v, ok := pc.Get(in.From)
			if !ok {
				return nil, fmt.Errorf("%w: step %s input %q (key %q)",
					ErrMissingInput, b.Name(), in.Name, in.From)
			}
			out[in.Name] = v
		}
	}
	return out, nil
}

// argString возвращает позиционный аргумент как строку.
func (b *base) argString(i int) (string, bool, error) {
	if i >= len(b.spec.Args) {
		return "", false, nil
	}
	s, ok := b.spec.Args[i].(string)
	if !ok {
		return "", false, fmt.Errorf("%w: step %s arg #%d is not a string",
			ErrTypeMismatch, b.Name(), i)
	}
	return s, true, nil
}

// storeOutputs записывает результаты в контекст по ключам outputs.
//
// Количество результатов обязано совпадать с количеством outputs,
// иначе шаг завершается ошибкой и контекст не изменяется.
func (b *base) storeOutputs(pc *Context, results []Value) error {
	if len(results) != len(b.spec.Outputs) {
		return fmt.Errorf("%w: step %s produced %d results, declared %d outputs",
			ErrOutputArity, b.Name(), len(results), len(b.spec.Outputs))
	}
	for i, out := range b.spec.Outputs {
		if out.Type != "" {
			kind, err := out.Type.Kind()
			if err != nil {
				return err
			}
			if results[i].Kind() != kind {
				return fmt.Errorf("%w: step %s output %q is %s, declared %s",
					ErrTypeMismatch, b.Name(), out.Name, results[i].Kind(), kind)
			}
		}
	}
	for i, out := range b.spec.Outputs {
		pc.Put(out.Name, results[i])
	}
	return nil
}

// kwargString достаёт строковый kwarg. Отсутствие ключа — не ошибка.
func kwargString(kwargs map[string]Value, key string) (string, bool, error) {
	v, ok := kwargs[key]
	if !ok {
		return "", false, nil
	}
	s, err := v.AsString()
	if err != nil {
		return "", false, fmt.Errorf("kwarg %q: %w", key, err)
	}
	return s, true, nil
}

// kwargInt достаёт целочисленный kwarg. JSON числа приходят как float64.
func kwargInt(kwargs map[string]Value, key string) (int, bool, error) {
	v, ok := kwargs[key]
	if !ok {
		return 0, false, nil
	}
	raw, err := v.AsObject()
	if err != nil {
		return 0, false, fmt.Errorf("kwarg %q: %w", key, err)
	}
	switch n := raw.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case float64:
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("%w: kwarg %q is not a number", ErrTypeMismatch, key)
	}
}
