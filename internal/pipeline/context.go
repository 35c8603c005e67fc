package pipeline

import (
	"fmt"
	"sort"
)

// Context — разделяемый словарь значений пайплайна.
//
// Шаги читают из него inputs по ключам from и записывают
// результаты по ключам outputs. Повторная запись по существующему
// ключу перезаписывает значение.
//
// Context не потокобезопасен: executor выполняет шаги строго
// последовательно, конкурентного доступа нет.
type Context struct {
	values map[string]Value
}

// NewContext создаёт пустой контекст.
func NewContext() *Context {
	return &Context{values: make(map[string]Value)}
}

// Get возвращает значение по ключу.
func (c *Context) Get(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetTyped возвращает значение по ключу с проверкой объявленного типа.
func (c *Context) GetTyped(key string, typ ValueType) (Value, error) {
	v, ok := c.values[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrMissingInput, key)
	}
	kind, err := typ.Kind()
	if err != nil {
		return Value{}, err
	}
	if v.kind != kind {
		return Value{}, fmt.Errorf("%w: key %q holds %s, declared %s",
			ErrTypeMismatch, key, v.kind, kind)
	}
	return v, nil
}

// Put записывает значение по ключу, перезаписывая существующее.
func (c *Context) Put(key string, v Value) {
	c.values[key] = v
}

// Has возвращает true, если ключ присутствует в контексте.
func (c *Context) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Len возвращает количество ключей в контексте.
func (c *Context) Len() int {
	return len(c.values)
}

// Keys возвращает отсортированный список ключей.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot возвращает содержимое контекста как обычную map
// для сериализации и диагностики.
func (c *Context) Snapshot() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v.Unwrap()
	}
	return out
}

// Seed заполняет контекст начальными значениями через FromAny.
func (c *Context) Seed(initial map[string]any) {
	for k, raw := range initial {
		c.values[k] = FromAny(raw)
	}
}
