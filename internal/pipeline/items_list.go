package pipeline

import (
	"context"
	"fmt"

	"github.com/shaiso/Annotata/internal/domain"
)

// KindItemsList — листинг items датасета.
const KindItemsList = "items.list"

// ItemsListStep возвращает список items датасета.
//
// Primary: dataset (object). Kwargs: remote_path, mime_type,
// page, page_size. Outputs: один — список items.
type ItemsListStep struct {
	base
	items ItemLister
}

// defaultItemsListSpec — форма шага без явного дескриптора.
func defaultItemsListSpec() StepSpec {
	return StepSpec{
		Kind: KindItemsList,
		Inputs: []InputSpec{
			{Name: primaryDataset, From: primaryDataset, By: BindingRef, Type: TypeObject},
		},
		Outputs: []OutputSpec{{Name: "items", Type: TypeList}},
	}
}

// NewItemsListStep создаёт шаг items.list.
func NewItemsListStep(spec StepSpec, items ItemLister) (Step, error) {
	spec = withDefaultShape(spec, defaultItemsListSpec())
	return &ItemsListStep{base: base{spec: spec}, items: items}, nil
}

// Arguments возвращает необязательные параметры операции.
func (s *ItemsListStep) Arguments() map[string]any {
	return map[string]any{
		"remote_path": "",
		"mime_type":   "",
		"page":        0,
		"page_size":   0,
	}
}

// Execute выполняет шаг.
func (s *ItemsListStep) Execute(ctx context.Context, pc *Context) error {
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
	var filters domain.ItemFilters
	if filters.RemotePath, _, err = kwargString(kwargs, "remote_path"); err != nil {
		return err
	}
	if filters.MimeType, _, err = kwargString(kwargs, "mime_type"); err != nil {
		return err
	}
	if filters.Page, _, err = kwargInt(kwargs, "page"); err != nil {
		return err
	}
	if filters.PageSize, _, err = kwargInt(kwargs, "page_size"); err != nil {
		return err
	}

	items, err := s.items.List(ctx, dataset.ID, filters)
	if err != nil {
		return err
	}
	result := make([]Value, len(items))
	for i := range items {
		result[i] = ObjectValue(&items[i])
	}
	return s.storeOutputs(pc, []Value{ListValue(result...)})
}
