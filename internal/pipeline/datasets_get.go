package pipeline

import (
	"context"
	"fmt"

	"github.com/shaiso/Annotata/internal/domain"
)

// KindDatasetsGet — получение датасета по имени внутри проекта.
const KindDatasetsGet = "datasets.get"

// Зарезервированные имена primary-объектов.
const (
	primaryProject = "project"
	primaryDataset = "dataset"
	primaryItems   = "items"
)

// DatasetsGetStep находит датасет по имени.
//
// Primary: project (object). Kwargs: dataset_name (либо args[0]).
// Outputs: один — найденный датасет.
type DatasetsGetStep struct {
	base
	datasets DatasetGetter
}

// defaultDatasetsGetSpec — форма шага без явного дескриптора.
func defaultDatasetsGetSpec() StepSpec {
	return StepSpec{
		Kind: KindDatasetsGet,
		Inputs: []InputSpec{
			{Name: primaryProject, From: primaryProject, By: BindingRef, Type: TypeObject},
			{Name: "dataset_name", From: "dataset_name", By: BindingRef, Type: TypeString},
		},
		Outputs: []OutputSpec{{Name: "dataset", Type: TypeObject}},
	}
}

// NewDatasetsGetStep создаёт шаг datasets.get.
func NewDatasetsGetStep(spec StepSpec, datasets DatasetGetter) (Step, error) {
	spec = withDefaultShape(spec, defaultDatasetsGetSpec())
	return &DatasetsGetStep{base: base{spec: spec}, datasets: datasets}, nil
}

// Arguments возвращает необязательные параметры операции.
func (s *DatasetsGetStep) Arguments() map[string]any {
	return map[string]any{
		"dataset_name": "",
	}
}

// Execute выполняет шаг.
func (s *DatasetsGetStep) Execute(ctx context.Context, pc *Context) error {
	if err := s.requireInputs(pc); err != nil {
		return err
	}
	primary, err := s.primary(pc, primaryProject, TypeObject)
	if err != nil {
		return err
	}
	obj, err := primary.AsObject()
	if err != nil {
		return err
	}
	project, ok := obj.(*domain.Project)
	if !ok {
		return fmt.Errorf("%w: step %s primary is %T, expected *domain.Project",
			ErrTypeMismatch, s.Name(), obj)
	}

	kwargs, err := s.kwargs(pc, primaryProject)
	if err != nil {
		return err
	}
	name, ok, err := kwargString(kwargs, "dataset_name")
	if err != nil {
		return err
	}
	if !ok {
		if name, ok, err = s.argString(0); err != nil {
			return err
		}
	}
	if !ok || name == "" {
		return fmt.Errorf("%w: step %s requires dataset_name", ErrMissingInput, s.Name())
	}

	dataset, err := s.datasets.GetByName(ctx, project.ID, name)
	if err != nil {
		return err
	}
	return s.storeOutputs(pc, []Value{ObjectValue(dataset)})
}
