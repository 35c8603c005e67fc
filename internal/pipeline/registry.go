package pipeline

import (
	"fmt"
	"sort"
	"sync"
)

// Factory создаёт шаг из его спецификации.
type Factory func(spec StepSpec) (Step, error)

// Registry — реестр типов шагов.
//
// Потокобезопасен: регистрация и сборка могут выполняться
// из разных горутин.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register добавляет фабрику шага. Повторная регистрация
// перезаписывает предыдущую.
func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Build создаёт шаг по его спецификации.
func (r *Registry) Build(spec StepSpec) (Step, error) {
	r.mu.RLock()
	factory, ok := r.factories[spec.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStepKind, spec.Kind)
	}
	return factory(spec)
}

// Kinds возвращает отсортированный список зарегистрированных kind'ов.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Arguments возвращает карту необязательных параметров kind'а.
// Для неизвестного kind'а возвращается ошибка.
func (r *Registry) Arguments(kind string) (map[string]any, error) {
	step, err := r.Build(StepSpec{Kind: kind})
	if err != nil {
		return nil, err
	}
	return step.Arguments(), nil
}

// DefaultRegistry возвращает реестр со всеми встроенными шагами.
func DefaultRegistry(deps Deps) *Registry {
	r := NewRegistry()
	r.Register(KindDatasetsGet, func(spec StepSpec) (Step, error) {
		return NewDatasetsGetStep(spec, deps.Datasets)
	})
	r.Register(KindItemsGet, func(spec StepSpec) (Step, error) {
		return NewItemsGetStep(spec, deps.Items)
	})
	r.Register(KindItemsList, func(spec StepSpec) (Step, error) {
		return NewItemsListStep(spec, deps.Items)
	})
	r.Register(KindAnnotationsGetBatch, func(spec StepSpec) (Step, error) {
		return NewAnnotationsGetBatchStep(spec, deps.Annotations)
	})
	return r
}
