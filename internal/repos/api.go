package repos

import (
	"github.com/shaiso/Annotata/internal/client"
	"github.com/shaiso/Annotata/internal/pipeline"
)

// Репозитории реализуют интерфейсы шагов пайплайна.
var (
	_ pipeline.DatasetGetter    = (*Datasets)(nil)
	_ pipeline.ItemAPI          = (*Items)(nil)
	_ pipeline.AnnotationLister = (*Annotations)(nil)
)

// PipelineDeps собирает зависимости шагов пайплайна из репозиториев.
func (a *API) PipelineDeps() pipeline.Deps {
	return pipeline.Deps{
		Datasets:    a.Datasets,
		Items:       a.Items,
		Annotations: a.Annotations,
	}
}

// API — набор всех репозиториев поверх одного клиента.
type API struct {
	Projects    *Projects
	Datasets    *Datasets
	Items       *Items
	Annotations *Annotations
	Dpks        *Dpks
	Pipelines   *Pipelines
	Executions  *Executions
	Triggers    *Triggers
}

// NewAPI создаёт репозитории поверх клиента платформы.
func NewAPI(c *client.Client) *API {
	return &API{
		Projects:    &Projects{client: c},
		Datasets:    &Datasets{client: c},
		Items:       &Items{client: c},
		Annotations: &Annotations{client: c},
		Dpks:        &Dpks{client: c},
		Pipelines:   &Pipelines{client: c},
		Executions:  &Executions{client: c},
		Triggers:    &Triggers{client: c},
	}
}
