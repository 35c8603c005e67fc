package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shaiso/Annotata/internal/domain"
)

// fakePlatform — заглушка платформенных операций для тестов шагов.
type fakePlatform struct {
	datasets    map[string]*domain.Dataset     // projectID/name
	items       map[string]*domain.Item        // datasetID/itemID
	listed      map[string][]domain.Item       // datasetID
	annotations map[string][]domain.Annotation // itemID
	err         error
	calls       []string
}

func (f *fakePlatform) GetByName(_ context.Context, projectID, name string) (*domain.Dataset, error) {
	f.calls = append(f.calls, "datasets.get")
	if f.err != nil {
		return nil, f.err
	}
	ds, ok := f.datasets[projectID+"/"+name]
	if !ok {
		return nil, fmt.Errorf("dataset %q not found", name)
	}
	return ds, nil
}

func (f *fakePlatform) Get(_ context.Context, datasetID, itemID string) (*domain.Item, error) {
	f.calls = append(f.calls, "items.get")
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[datasetID+"/"+itemID]
	if !ok {
		return nil, fmt.Errorf("item %q not found", itemID)
	}
	return item, nil
}

func (f *fakePlatform) List(_ context.Context, datasetID string, _ domain.ItemFilters) ([]domain.Item, error) {
	f.calls = append(f.calls, "items.list")
	if f.err != nil {
		return nil, f.err
	}
	return f.listed[datasetID], nil
}

func (f *fakePlatform) ListByItem(_ context.Context, _, itemID string) ([]domain.Annotation, error) {
	f.calls = append(f.calls, "annotations.list")
	if f.err != nil {
		return nil, f.err
	}
	return f.annotations[itemID], nil
}

func (f *fakePlatform) deps() Deps {
	return Deps{Datasets: f, Items: f, Annotations: f}
}

func testPlatform() *fakePlatform {
	return &fakePlatform{
		datasets: map[string]*domain.Dataset{
			"p1/train": {ID: "d1", ProjectID: "p1", Name: "train"},
		},
		items: map[string]*domain.Item{
			"d1/i1": {ID: "i1", DatasetID: "d1", Name: "cat.jpg"},
			"d1/i2": {ID: "i2", DatasetID: "d1", Name: "dog.jpg"},
		},
		listed: map[string][]domain.Item{
			"d1": {
				{ID: "i1", DatasetID: "d1", Name: "cat.jpg"},
				{ID: "i2", DatasetID: "d1", Name: "dog.jpg"},
			},
		},
		annotations: map[string][]domain.Annotation{
			"i1": {
				{ID: "a1", ItemID: "i1", Type: domain.AnnotationTypeBox, Label: "cat"},
				{ID: "a2", ItemID: "i1", Type: domain.AnnotationTypeBox, Label: "tail"},
			},
			"i2": {
				{ID: "a3", ItemID: "i2", Type: domain.AnnotationTypeBox, Label: "dog"},
			},
		},
	}
}

// Сценарий: items.list → annotations.get_batch через общий контекст.
func TestSteps_ListThenAnnotations(t *testing.T) {
	platform := testPlatform()
	registry := DefaultRegistry(platform.deps())
	pc := NewContext()
	pc.Put("dataset", ObjectValue(&domain.Dataset{ID: "d1", ProjectID: "p1", Name: "train"}))

	spec, err := ParseSpec([]byte(`{"steps": [
		{
			"kind": "items.list",
			"inputs": [{"name": "dataset", "from": "dataset", "type": "object"}],
			"outputs": [{"name": "items", "type": "list"}]
		},
		{
			"kind": "annotations.get_batch",
			"inputs": [{"name": "items", "from": "items", "type": "list"}],
			"outputs": [{"name": "annotations", "type": "list"}]
		}
	]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := NewExecutor(registry).Run(context.Background(), spec, pc); err != nil {
		t.Fatalf("run: %v", err)
	}

	v, err := pc.GetTyped("annotations", TypeList)
	if err != nil {
		t.Fatalf("annotations: %v", err)
	}
	batch, _ := v.AsList()
	if len(batch) != 2 {
		t.Fatalf("expected 2 per-item lists, got %d", len(batch))
	}
	// Порядок соответствует порядку items.
	first, _ := batch[0].AsList()
	if len(first) != 2 {
		t.Fatalf("expected 2 annotations for first item, got %d", len(first))
	}
	obj, _ := first[0].AsObject()
	if ann := obj.(*domain.Annotation); ann.Label != "cat" {
		t.Fatalf("expected label cat, got %q", ann.Label)
	}
	second, _ := batch[1].AsList()
	if len(second) != 1 {
		t.Fatalf("expected 1 annotation for second item, got %d", len(second))
	}
}

// Сценарий: dataset + item_id из контекста → items.get.
func TestSteps_ItemsGet(t *testing.T) {
	platform := testPlatform()
	step, err := NewItemsGetStep(StepSpec{
		Kind: KindItemsGet,
		Inputs: []InputSpec{
			{Name: "dataset", From: "dataset", By: BindingRef, Type: TypeObject},
			{Name: "item_id", From: "wanted_item", By: BindingRef, Type: TypeString},
		},
		Outputs: []OutputSpec{{Name: "item", Type: TypeObject}},
	}, platform)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	pc := NewContext()
	pc.Put("dataset", ObjectValue(&domain.Dataset{ID: "d1"}))
	pc.Put("wanted_item", StringValue("i2"))

	if err := step.Execute(context.Background(), pc); err != nil {
		t.Fatalf("execute: %v", err)
	}
	v, _ := pc.Get("item")
	obj, _ := v.AsObject()
	if item := obj.(*domain.Item); item.Name != "dog.jpg" {
		t.Fatalf("expected dog.jpg, got %q", item.Name)
	}
}

// Сценарий: отсутствующий ключ контекста — ошибка, контекст не изменён.
func TestSteps_MissingInput(t *testing.T) {
	platform := testPlatform()
	step, _ := NewItemsListStep(StepSpec{
		Kind: KindItemsList,
		Inputs: []InputSpec{
			{Name: "dataset", From: "dataset", By: BindingRef, Type: TypeObject},
		},
		Outputs: []OutputSpec{{Name: "items", Type: TypeList}},
	}, platform)

	pc := NewContext()
	err := step.Execute(context.Background(), pc)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if pc.Len() != 0 {
		t.Fatal("context must remain unchanged on failure")
	}
	if len(platform.calls) != 0 {
		t.Fatal("platform must not be called when input is missing")
	}
}

func TestSteps_AmbiguousPrimary(t *testing.T) {
	platform := testPlatform()
	step, _ := NewItemsGetStep(StepSpec{
		Kind: KindItemsGet,
		Inputs: []InputSpec{
			{Name: "dataset", From: "a", By: BindingRef},
			{Name: "dataset", From: "b", By: BindingRef},
		},
	}, platform)

	pc := NewContext()
	pc.Put("a", ObjectValue(&domain.Dataset{ID: "d1"}))
	pc.Put("b", ObjectValue(&domain.Dataset{ID: "d2"}))

	if err := step.Execute(context.Background(), pc); !errors.Is(err, ErrAmbiguousPrimary) {
		t.Fatalf("expected ErrAmbiguousPrimary, got %v", err)
	}
}

func TestSteps_OutputArity(t *testing.T) {
	platform := testPlatform()
	step, _ := NewItemsGetStep(StepSpec{
		Kind: KindItemsGet,
		Inputs: []InputSpec{
			{Name: "dataset", From: "dataset", By: BindingRef},
			{Name: "item_id", From: "i1", By: BindingValue},
		},
		Outputs: []OutputSpec{{Name: "item"}, {Name: "extra"}},
	}, platform)

	pc := NewContext()
	pc.Put("dataset", ObjectValue(&domain.Dataset{ID: "d1"}))

	err := step.Execute(context.Background(), pc)
	if !errors.Is(err, ErrOutputArity) {
		t.Fatalf("expected ErrOutputArity, got %v", err)
	}
	// Частичной записи outputs не происходит.
	if pc.Has("item") || pc.Has("extra") {
		t.Fatal("no outputs must be written on arity mismatch")
	}
}

// Литеральный binding: from содержит значение, контекст не читается.
func TestSteps_ValueBinding(t *testing.T) {
	platform := testPlatform()
	step, _ := NewDatasetsGetStep(StepSpec{
		Kind: KindDatasetsGet,
		Inputs: []InputSpec{
			{Name: "project", From: "project", By: BindingRef, Type: TypeObject},
			{Name: "dataset_name", From: "train", By: BindingValue},
		},
		Outputs: []OutputSpec{{Name: "dataset", Type: TypeObject}},
	}, platform)

	pc := NewContext()
	pc.Put("project", ObjectValue(&domain.Project{ID: "p1"}))

	if err := step.Execute(context.Background(), pc); err != nil {
		t.Fatalf("execute: %v", err)
	}
	v, _ := pc.Get("dataset")
	obj, _ := v.AsObject()
	if ds := obj.(*domain.Dataset); ds.ID != "d1" {
		t.Fatalf("expected d1, got %q", ds.ID)
	}
}

// Ошибка платформы возвращается без оборачивания.
func TestSteps_PlatformErrorPassthrough(t *testing.T) {
	sentinel := errors.New("platform unavailable")
	platform := testPlatform()
	platform.err = sentinel

	step, _ := NewItemsListStep(StepSpec{
		Kind: KindItemsList,
		Inputs: []InputSpec{
			{Name: "dataset", From: "dataset", By: BindingRef},
		},
		Outputs: []OutputSpec{{Name: "items"}},
	}, platform)

	pc := NewContext()
	pc.Put("dataset", ObjectValue(&domain.Dataset{ID: "d1"}))

	if err := step.Execute(context.Background(), pc); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel passthrough, got %v", err)
	}
}

func TestSteps_PrimaryTypeMismatch(t *testing.T) {
	platform := testPlatform()
	step, _ := NewItemsGetStep(StepSpec{
		Kind: KindItemsGet,
		Inputs: []InputSpec{
			{Name: "dataset", From: "dataset", By: BindingRef},
			{Name: "item_id", From: "i1", By: BindingValue},
		},
		Outputs: []OutputSpec{{Name: "item"}},
	}, platform)

	pc := NewContext()
	// Item вместо Dataset под primary-ключом.
	pc.Put("dataset", ObjectValue(&domain.Item{ID: "i1"}))

	if err := step.Execute(context.Background(), pc); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

// Дескриптор без inputs/outputs принимает встроенную форму kind'а:
// annotations.get_batch читает items и пишет annotations.
func TestSteps_AnnotationsBatchDefaultShape(t *testing.T) {
	platform := testPlatform()
	registry := DefaultRegistry(platform.deps())

	step, err := registry.Build(StepSpec{Kind: KindAnnotationsGetBatch})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	pc := NewContext()
	pc.Put("items", ListValue(
		ObjectValue(&domain.Item{ID: "i1", DatasetID: "d1"}),
		ObjectValue(&domain.Item{ID: "i2", DatasetID: "d1"}),
	))

	if err := step.Execute(context.Background(), pc); err != nil {
		t.Fatalf("execute: %v", err)
	}

	v, err := pc.GetTyped("annotations", TypeList)
	if err != nil {
		t.Fatalf("annotations: %v", err)
	}
	batch, _ := v.AsList()
	if len(batch) != 2 {
		t.Fatalf("expected 2 per-item lists, got %d", len(batch))
	}
	first, _ := batch[0].AsList()
	if len(first) != 2 {
		t.Fatalf("expected 2 annotations for i1, got %d", len(first))
	}
}

// Встроенная форма items.get: dataset и item_id из контекста, item на выходе.
func TestSteps_ItemsGetDefaultShape(t *testing.T) {
	platform := testPlatform()
	registry := DefaultRegistry(platform.deps())

	step, err := registry.Build(StepSpec{Kind: KindItemsGet})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	pc := NewContext()
	pc.Put("dataset", ObjectValue(&domain.Dataset{ID: "d1"}))
	pc.Put("item_id", StringValue("i1"))

	if err := step.Execute(context.Background(), pc); err != nil {
		t.Fatalf("execute: %v", err)
	}
	v, _ := pc.Get("item")
	obj, _ := v.AsObject()
	if item := obj.(*domain.Item); item.Name != "cat.jpg" {
		t.Fatalf("expected cat.jpg, got %q", item.Name)
	}
}

// Встроенная форма тоже требует свои ключи: без dataset в контексте
// items.get падает с missing-input, называя ключ.
func TestSteps_DefaultShapeMissingInput(t *testing.T) {
	platform := testPlatform()
	step, _ := NewItemsGetStep(StepSpec{Kind: KindItemsGet}, platform)

	pc := NewContext()
	err := step.Execute(context.Background(), pc)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "dataset") {
		t.Fatalf("error must name the missing dataset key, got %v", err)
	}
	if pc.Len() != 0 {
		t.Fatal("context must remain unchanged on failure")
	}
}

// Явный дескриптор имеет приоритет над встроенной формой.
func TestSteps_ExplicitShapeWins(t *testing.T) {
	platform := testPlatform()
	step, _ := NewItemsListStep(StepSpec{
		Kind: KindItemsList,
		Inputs: []InputSpec{
			{Name: "dataset", From: "train_set", By: BindingRef, Type: TypeObject},
		},
		Outputs: []OutputSpec{{Name: "train_items", Type: TypeList}},
	}, platform)

	pc := NewContext()
	pc.Put("train_set", ObjectValue(&domain.Dataset{ID: "d1"}))

	if err := step.Execute(context.Background(), pc); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if pc.Has("items") {
		t.Fatal("default output key must not be used with an explicit descriptor")
	}
	v, err := pc.GetTyped("train_items", TypeList)
	if err != nil {
		t.Fatalf("train_items: %v", err)
	}
	if list, _ := v.AsList(); len(list) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list))
	}
}

// Повторное выполнение шага перезаписывает его output-ключи.
func TestSteps_RerunOverwritesOutputs(t *testing.T) {
	platform := testPlatform()
	step, _ := NewItemsGetStep(StepSpec{
		Kind: KindItemsGet,
		Inputs: []InputSpec{
			{Name: "dataset", From: "dataset", By: BindingRef},
			{Name: "item_id", From: "wanted_item", By: BindingRef, Type: TypeString},
		},
		Outputs: []OutputSpec{{Name: "item", Type: TypeObject}},
	}, platform)

	pc := NewContext()
	pc.Put("dataset", ObjectValue(&domain.Dataset{ID: "d1"}))
	pc.Put("wanted_item", StringValue("i1"))

	if err := step.Execute(context.Background(), pc); err != nil {
		t.Fatalf("first run: %v", err)
	}
	pc.Put("wanted_item", StringValue("i2"))
	if err := step.Execute(context.Background(), pc); err != nil {
		t.Fatalf("second run: %v", err)
	}

	v, _ := pc.Get("item")
	obj, _ := v.AsObject()
	if item := obj.(*domain.Item); item.ID != "i2" {
		t.Fatalf("expected output overwritten with i2, got %q", item.ID)
	}
	if pc.Len() != 3 {
		t.Fatalf("expected 3 keys in context, got %d", pc.Len())
	}
}

func TestRegistry_Arguments(t *testing.T) {
	registry := DefaultRegistry(testPlatform().deps())

	args, err := registry.Arguments(KindItemsList)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"remote_path", "mime_type", "page", "page_size"} {
		if _, ok := args[key]; !ok {
			t.Errorf("missing argument %q", key)
		}
	}

	if _, err := registry.Arguments("items.delete"); !errors.Is(err, ErrUnknownStepKind) {
		t.Fatalf("expected ErrUnknownStepKind, got %v", err)
	}
}
