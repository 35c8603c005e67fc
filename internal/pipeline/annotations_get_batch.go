package pipeline

import (
	"context"
	"fmt"

	"github.com/shaiso/Annotata/internal/domain"
)

// KindAnnotationsGetBatch — получение аннотаций для списка items.
const KindAnnotationsGetBatch = "annotations.get_batch"

// AnnotationsGetBatchStep собирает аннотации для каждого item'а
// входного списка.
//
// Primary: items (list of object). Outputs: один — список списков
// аннотаций, в том же порядке, что и входные items.
type AnnotationsGetBatchStep struct {
	base
	annotations AnnotationLister
}

// defaultAnnotationsGetBatchSpec — форма шага без явного дескриптора.
func defaultAnnotationsGetBatchSpec() StepSpec {
	return StepSpec{
		Kind: KindAnnotationsGetBatch,
		Inputs: []InputSpec{
			{Name: primaryItems, From: primaryItems, By: BindingRef, Type: TypeList},
		},
		Outputs: []OutputSpec{{Name: "annotations", Type: TypeList}},
	}
}

// NewAnnotationsGetBatchStep создаёт шаг annotations.get_batch.
func NewAnnotationsGetBatchStep(spec StepSpec, annotations AnnotationLister) (Step, error) {
	spec = withDefaultShape(spec, defaultAnnotationsGetBatchSpec())
	return &AnnotationsGetBatchStep{base: base{spec: spec}, annotations: annotations}, nil
}

// Arguments возвращает необязательные параметры операции.
func (s *AnnotationsGetBatchStep) Arguments() map[string]any {
	return map[string]any{}
}

// Execute выполняет шаг.
func (s *AnnotationsGetBatchStep) Execute(ctx context.Context, pc *Context) error {
	if err := s.requireInputs(pc); err != nil {
		return err
	}

	primary, err := s.primary(pc, primaryItems, TypeList)
	if err != nil {
		return err
	}
	elements, err := primary.AsList()
	if err != nil {
		return err
	}

	batch := make([]Value, len(elements))
	for i, el := range elements {
		obj, err := el.AsObject()
		if err != nil {
			return fmt.Errorf("step %s items[%d]: %w", s.Name(), i, err)
		}
		item, ok := obj.(*domain.Item)
		if !ok {
			return fmt.Errorf("%w: step %s items[%d] is %T, expected *domain.Item",
				ErrTypeMismatch, s.Name(), i, obj)
		}

		annotations, err := s.annotations.ListByItem(ctx, item.DatasetID, item.ID)
		if err != nil {
			return err
		}
		perItem := make([]Value, len(annotations))
		for j := range annotations {
			perItem[j] = ObjectValue(&annotations[j])
		}
		batch[i] = ListValue(perItem...)
	}

	return s.storeOutputs(pc, []Value{ListValue(batch...)})
}
