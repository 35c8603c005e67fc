package pipeline

import (
	"context"
	"fmt"

	"github.com/shaiso/Annotata/internal/domain"
)

// KindItemsGet — получение item'а по идентификатору.
const KindItemsGet = "items.get"

// ItemsGetStep возвращает item датасета по идентификатору.
//
// Primary: dataset (object). Kwargs: item_id (либо args[0]).
// Outputs: один — найденный item.
type ItemsGetStep struct {
	base
	items ItemGetter
}

// defaultItemsGetSpec — форма шага без явного дескриптора.
func defaultItemsGetSpec() StepSpec {
	return StepSpec{
		Kind: KindItemsGet,
		Inputs: []InputSpec{
			{Name: primaryDataset, From: primaryDataset, By: BindingRef, Type: TypeObject},
			{Name: "item_id", From: "item_id", By: BindingRef, Type: TypeString},
		},
		Outputs: []OutputSpec{{Name: "item", Type: TypeObject}},
	}
}

// NewItemsGetStep создаёт шаг items.get.
func NewItemsGetStep(spec StepSpec, items ItemGetter) (Step, error) {
	spec = withDefaultShape(spec, defaultItemsGetSpec())
	return &ItemsGetStep{base: base{spec: spec}, items: items}, nil
}

// Arguments возвращает необязательные параметры операции.
func (s *ItemsGetStep) Arguments() map[string]any {
	return map[string]any{
		"item_id": "",
	}
}

// Execute выполняет шаг.
func (s *ItemsGetStep) Execute(ctx context.Context, pc *Context) error {
	if err := s.requireInputs(pc); err != nil {
		return err
	}
	primary, err := s.primary(pc, primaryDataset, TypeObject)
	if err != nil {
		return err
	}
	obj, err := primary.AsObject()
	if err != nil {
		return err
	}
	dataset, ok := obj.(*domain.Dataset)
	if !ok {
		return fmt.Errorf("%w: step %s primary is %T, expected *domain.Dataset",
			ErrTypeMismatch, s.Name(), obj)
	}

	kwargs, err := s.kwargs(pc, primaryDataset)
	if err != nil {
		return err
	}
	itemID, ok, err := kwargString(kwargs, "item_id")
	if err != nil {
		return err
	}
	if !ok {
		if itemID, ok, err = s.argString(0); err != nil {
			return err
		}
	}
	if !ok || itemID == "" {
		return fmt.Errorf("%w: step %s requires item_id", ErrMissingInput, s.Name())
	}

	item, err := s.items.Get(ctx, dataset.ID, itemID)
	if err != nil {
		return err
	}
	return s.storeOutputs(pc, []Value{ObjectValue(item)})
}
