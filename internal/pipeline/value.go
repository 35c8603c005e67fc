package pipeline

import "fmt"

// ValueKind — вариант значения в контексте пайплайна.
type ValueKind int

const (
	// KindObject — одиночный доменный объект (dataset, item и т.д.).
	KindObject ValueKind = iota

	// KindList — упорядоченный список значений.
	KindList

	// KindString — строковое значение.
	KindString

	// KindRecord — структурированная запись вида ключ-значение.
	KindRecord
)

// String возвращает имя варианта.
func (k ValueKind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindString:
		return "string"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// ValueType — тип значения, объявленный в спецификации шага.
type ValueType string

const (
	TypeObject ValueType = "object"
	TypeList   ValueType = "list"
	TypeString ValueType = "string"
	TypeRecord ValueType = "record"
)

// Kind возвращает вариант значения, соответствующий объявленному типу.
func (t ValueType) Kind() (ValueKind, error) {
	switch t {
	case TypeObject:
		return KindObject, nil
	case TypeList:
		return KindList, nil
	case TypeString:
		return KindString, nil
	case TypeRecord:
		return KindRecord, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidValueType, string(t))
	}
}

// Value — значение в контексте пайплайна.
//
// Закрытое множество вариантов: object, list, string, record.
// Вариант фиксируется конструктором и далее не меняется,
// доступ через As* возвращает ошибку при несовпадении варианта.
type Value struct {
	kind   ValueKind
	obj    any
	list   []Value
	str    string
	record map[string]any
}

// ObjectValue оборачивает одиночный доменный объект.
func ObjectValue(obj any) Value {
	return Value{kind: KindObject, obj: obj}
}

// ListValue оборачивает список значений.
func ListValue(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// StringValue оборачивает строку.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// RecordValue оборачивает структурированную запись.
func RecordValue(record map[string]any) Value {
	return Value{kind: KindRecord, record: record}
}

// Kind возвращает вариант значения.
func (v Value) Kind() ValueKind {
	return v.kind
}

// AsObject возвращает объект или ошибку, если вариант другой.
func (v Value) AsObject() (any, error) {
	if v.kind != KindObject {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrTypeMismatch, v.kind)
	}
	return v.obj, nil
}

// AsList возвращает список или ошибку, если вариант другой.
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, fmt.Errorf("%w: expected list, got %s", ErrTypeMismatch, v.kind)
	}
	return v.list, nil
}

// AsString возвращает строку или ошибку, если вариант другой.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("%w: expected string, got %s", ErrTypeMismatch, v.kind)
	}
	return v.str, nil
}

// AsRecord возвращает запись или ошибку, если вариант другой.
func (v Value) AsRecord() (map[string]any, error) {
	if v.kind != KindRecord {
		return nil, fmt.Errorf("%w: expected record, got %s", ErrTypeMismatch, v.kind)
	}
	return v.record, nil
}

// Unwrap возвращает значение как any для сериализации и логов.
func (v Value) Unwrap() any {
	switch v.kind {
	case KindObject:
		return v.obj
	case KindList:
		out := make([]any, len(v.list))
		for i, el := range v.list {
			out[i] = el.Unwrap()
		}
		return out
	case KindString:
		return v.str
	case KindRecord:
		return v.record
	default:
		return nil
	}
}

// FromAny приводит произвольное значение к Value.
//
// Строки становятся string, map[string]any — record, слайсы — list
// (поэлементно рекурсивно), всё остальное — object.
func FromAny(raw any) Value {
	switch val := raw.(type) {
	case Value:
		return val
	case string:
		return StringValue(val)
	case map[string]any:
		return RecordValue(val)
	case []any:
		items := make([]Value, len(val))
		for i, el := range val {
			items[i] = FromAny(el)
		}
		return ListValue(items...)
	case []Value:
		return ListValue(val...)
	default:
		return ObjectValue(val)
	}
}
