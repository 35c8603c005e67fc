package domain

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки валидации dpk.
var (
	// ErrInvalidIOType — неизвестный тип входа/выхода функции.
	ErrInvalidIOType = errors.New("invalid function io type")

	// ErrInvalidIOName — имя входа не соответствует его типу.
	ErrInvalidIOName = errors.New("invalid function io name")

	// ErrInvalidIOValue — значение входа не соответствует его типу.
	ErrInvalidIOValue = errors.New("invalid function io value")
)

// DpkScope — область видимости dpk-приложения.
type DpkScope string

// Области видимости.
const (
	DpkScopeOrganization DpkScope = "organization"
	DpkScopeProject      DpkScope = "project"
	DpkScopePublic       DpkScope = "public"
)

// Dpk — пакет приложения, публикуемый в app-registry платформы.
//
// Dpk описывается манифестом dpk.json и содержит ссылку на codebase —
// zip-архив с исходниками, загружаемый в object storage.
type Dpk struct {
	// ID — уникальный идентификатор dpk.
	ID string `json:"id"`

	// Name — машинное имя dpk.
	Name string `json:"name"`

	// DisplayName — человекочитаемое имя.
	DisplayName string `json:"display_name,omitempty"`

	// Version — версия dpk (semver-строка, например "1.0.0").
	Version string `json:"version"`

	// Scope — область видимости: organization, project или public.
	Scope DpkScope `json:"scope,omitempty"`

	// Description — описание назначения.
	Description string `json:"description,omitempty"`

	// Categories — категории для каталога приложений.
	Categories []string `json:"categories,omitempty"`

	// Icon — путь к иконке.
	Icon string `json:"icon,omitempty"`

	// ProjectID — ссылка на проект-владелец.
	ProjectID string `json:"project_id,omitempty"`

	// CodebaseKey — ключ архива с исходниками в object storage.
	CodebaseKey string `json:"codebase_key,omitempty"`

	// Modules — модули с функциями, которые экспортирует dpk.
	Modules []DpkModule `json:"modules,omitempty"`

	// Creator — email автора.
	Creator string `json:"creator,omitempty"`

	// CreatedAt — время публикации.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего обновления.
	UpdatedAt time.Time `json:"updated_at"`
}

// DpkModule — модуль внутри dpk: точка входа и набор функций.
type DpkModule struct {
	// Name — имя модуля.
	Name string `json:"name"`

	// EntryPoint — файл точки входа внутри codebase.
	EntryPoint string `json:"entry_point,omitempty"`

	// ClassName — имя класса-раннера внутри точки входа.
	ClassName string `json:"class_name,omitempty"`

	// Functions — функции модуля.
	Functions []DpkFunction `json:"functions,omitempty"`
}

// DpkFunction — функция модуля с типизированными входами и выходами.
type DpkFunction struct {
	// Name — имя функции.
	Name string `json:"name"`

	// Description — описание функции.
	Description string `json:"description,omitempty"`

	// Inputs — входы функции.
	Inputs []FunctionIO `json:"inputs,omitempty"`

	// Outputs — выходы функции.
	Outputs []FunctionIO `json:"outputs,omitempty"`
}

// IOType — тип входа/выхода функции.
type IOType string

// Типы входов/выходов.
const (
	IOTypeJSON       IOType = "Json"
	IOTypeDataset    IOType = "Dataset"
	IOTypeItem       IOType = "Item"
	IOTypeAnnotation IOType = "Annotation"
)

// FunctionIO — типизированный вход или выход функции.
//
// Для ссылочных типов (Dataset, Item, Annotation) значение — record
// с идентификаторами ресурса: {"dataset_id": ..., "item_id": ...}.
type FunctionIO struct {
	// Type — тип значения.
	Type IOType `json:"type"`

	// Name — логическое имя параметра.
	Name string `json:"name"`

	// Value — значение (для execution inputs).
	Value any `json:"value,omitempty"`
}

// expectedIOName возвращает каноническое имя параметра для типа.
func expectedIOName(t IOType) string {
	switch t {
	case IOTypeItem:
		return "item"
	case IOTypeDataset:
		return "dataset"
	case IOTypeAnnotation:
		return "annotation"
	default:
		return "config"
	}
}

// DefaultIOName возвращает имя параметра по умолчанию для типа.
func DefaultIOName(t IOType) string {
	return expectedIOName(t)
}

// Validate проверяет согласованность типа, имени и значения.
func (io FunctionIO) Validate() error {
	switch io.Type {
	case IOTypeJSON, IOTypeDataset, IOTypeItem, IOTypeAnnotation:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidIOType, io.Type)
	}

	// Для ссылочных типов имя фиксировано.
	if io.Type != IOTypeJSON && io.Name != expectedIOName(io.Type) {
		return fmt.Errorf("%w: type %s expects name %q, got %q",
			ErrInvalidIOName, io.Type, expectedIOName(io.Type), io.Name)
	}

	if io.Value == nil {
		return nil
	}
	return io.validateValue()
}

// validateValue проверяет, что значение содержит идентификаторы,
// обязательные для ссылочного типа.
func (io FunctionIO) validateValue() error {
	var required []string
	switch io.Type {
	case IOTypeDataset:
		required = []string{"dataset_id"}
	case IOTypeItem:
		required = []string{"dataset_id", "item_id"}
	case IOTypeAnnotation:
		required = []string{"dataset_id", "item_id", "annotation_id"}
	default:
		// Json — любое значение.
		return nil
	}

	rec, ok := io.Value.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: type %s expects a record with %v",
			ErrInvalidIOValue, io.Type, required)
	}
	for _, key := range required {
		if _, ok := rec[key]; !ok {
			return fmt.Errorf("%w: type %s requires key %q",
				ErrInvalidIOValue, io.Type, key)
		}
	}
	return nil
}
