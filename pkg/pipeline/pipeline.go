package pipeline

import (
	"encoding/json"
	"fmt"

	"ingest/pkg/api"
	"ingest/pkg/broker"
	"ingest/pkg/events"
	"ingest/pkg/metrics"
	"ingest/pkg/store"
	"ingest/pkg/util/context"

	"github.com/pkg/errors"
)

// Operations, as reported in metrics.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Service defines the operations available on pipelines.
// Every operation reads and writes the store directly, nothing is cached between calls.
type Service interface {
	// List returns all the pipelines sorted by name.
	List(ctx context.Context) ([]api.Pipeline, error)

	// Get returns the pipeline with the given name.
	Get(ctx context.Context, name string) (api.Pipeline, error)

	// Create creates a pipeline. It fails with a conflict if the pipeline already exists.
	Create(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error)

	// Update overwrites an existing pipeline and returns the store response unmodified.
	// The pipeline is read first: if the read fails, the failure is returned and nothing is written.
	Update(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error)

	// Delete deletes the given pipelines, one after the other.
	Delete(ctx context.Context, names []string) api.DeleteResult
}

// New returns a new instance of Service
func New(s store.Store, b broker.Broker) (Service, error) {
	if s == nil {
		return nil, errors.New("store is required")
	}
	if b == nil {
		b = broker.NewNoneBroker()
	}
	return &pipelineService{
		s: s,
		b: b,
	}, nil
}

type pipelineService struct {
	s store.Store
	b broker.Broker
}

func (p *pipelineService) List(ctx context.Context) ([]api.Pipeline, error) {
	res, err := p.list(ctx)
	observe(OperationList, err)
	return res, err
}

func (p *pipelineService) list(ctx context.Context) ([]api.Pipeline, error) {
	raw, err := p.s.ListPipelines(ctx)
	if err != nil {
		// Store reports not found when there is no pipeline at all
		if store.IsNotFound(err) {
			return []api.Pipeline{}, nil
		}
		return nil, errors.Wrap(err, "cannot list pipelines")
	}
	return api.FromStoreList(raw)
}

func (p *pipelineService) Get(ctx context.Context, name string) (api.Pipeline, error) {
	res, err := p.get(ctx, name)
	observe(OperationGet, err)
	return res, err
}

func (p *pipelineService) get(ctx context.Context, name string) (api.Pipeline, error) {
	raw, err := p.s.GetPipeline(ctx, name)
	if err != nil {
		return api.Pipeline{}, errors.Wrapf(err, "cannot get pipeline %s", name)
	}
	return api.FromStore(name, raw)
}

func (p *pipelineService) Create(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error) {
	res, err := p.create(ctx, name, req)
	observe(OperationCreate, err)
	return res, err
}

func (p *pipelineService) create(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error) {
	ctx.Logger().Infof("creating pipeline %s", name)
	_, err := p.s.GetPipeline(ctx, name)
	if err == nil {
		return nil, store.ConflictError(fmt.Sprintf("There is already a pipeline with name '%s'.", name))
	}
	if !store.IsNotFound(err) {
		return nil, errors.Wrapf(err, "cannot check existence of pipeline %s", name)
	}

	res, err := p.s.PutPipeline(ctx, name, req.StoreBody())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create pipeline %s", name)
	}
	p.publish(ctx, events.TypeCreated, name)
	return res, nil
}

func (p *pipelineService) Update(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error) {
	res, err := p.update(ctx, name, req)
	observe(OperationUpdate, err)
	return res, err
}

func (p *pipelineService) update(ctx context.Context, name string, req api.PipelineRequest) (json.RawMessage, error) {
	ctx.Logger().Infof("updating pipeline %s", name)
	// Existence check, the store fails the read if the pipeline does not exist.
	// The definition read is not used.
	if _, err := p.s.GetPipeline(ctx, name); err != nil {
		return nil, errors.Wrapf(err, "cannot get pipeline %s", name)
	}

	res, err := p.s.PutPipeline(ctx, name, req.StoreBody())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot update pipeline %s", name)
	}
	p.publish(ctx, events.TypeUpdated, name)
	return res, nil
}

func (p *pipelineService) Delete(ctx context.Context, names []string) api.DeleteResult {
	res := api.DeleteResult{
		ItemsDeleted: []string{},
		Errors:       []api.DeleteError{},
	}
	for _, name := range names {
		ctx := context.WithPipelineName(ctx, name)
		ctx.Logger().Infof("deleting pipeline %s", name)
		_, err := p.s.DeletePipeline(ctx, name)
		observe(OperationDelete, err)
		if err != nil {
			ctx.Logger().Warnf("cannot delete pipeline %s: %s", name, err)
			res.Errors = append(res.Errors, api.DeleteError{
				Name:  name,
				Error: errorBody(err),
			})
			continue
		}
		res.ItemsDeleted = append(res.ItemsDeleted, name)
		p.publish(ctx, events.TypeDeleted, name)
	}
	return res
}

// publish publishes a change event. A failure is logged and does not fail the operation.
func (p *pipelineService) publish(ctx context.Context, t events.EventType, name string) {
	evt := events.New(t, name, ctx.RequestID())
	if err := p.b.Publish(ctx, evt); err != nil {
		ctx.Logger().Errorf("cannot publish event %s: %s", evt, err)
	}
}

// errorBody returns the body describing err, the store body for store errors.
func errorBody(err error) interface{} {
	if se, ok := store.IsStoreError(err); ok {
		return se.Body
	}
	return map[string]interface{}{
		"message": err.Error(),
	}
}

func observe(operation string, err error) {
	metrics.ObserveOperation(operation, Outcome(err))
}

// Outcome classifies the result of an operation.
func Outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	if _, ok := store.IsStoreError(err); ok {
		return metrics.OutcomeStoreError
	}
	return metrics.OutcomeInternalError
}
