package api

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// Processor is one step of a pipeline definition. Its content is only interpreted by the store.
type Processor map[string]interface{}

// Pipeline is the client facing representation of an ingest pipeline.
type Pipeline struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Processors  []Processor  `json:"processors"`
	Version     *json.Number `json:"version,omitempty"`
	OnFailure   []Processor  `json:"onFailure,omitempty"`
}

// StorePipeline is a pipeline definition as persisted by the store.
type StorePipeline struct {
	Description string       `json:"description,omitempty"`
	Processors  []Processor  `json:"processors"`
	Version     *json.Number `json:"version,omitempty"`
	OnFailure   []Processor  `json:"on_failure,omitempty"`
}

// PipelineRequest is the body of the create and update endpoints.
type PipelineRequest struct {
	Description string                `json:"description"`
	Processors  []Processor           `json:"processors"`
	Version     Optional[json.Number] `json:"version"`
	OnFailure   Optional[[]Processor] `json:"onFailure"`
}

// StoreBody returns the body sent to the store.
// onFailure is renamed to on_failure, absent optional fields are left out.
func (r PipelineRequest) StoreBody() map[string]interface{} {
	body := map[string]interface{}{
		"description": r.Description,
		"processors":  r.Processors,
	}
	if v, ok := r.Version.Get(); ok {
		body["version"] = v
	}
	if f, ok := r.OnFailure.Get(); ok {
		body["on_failure"] = f
	}
	return body
}

// Fields returns the request as sent by API clients, absent optional fields are left out.
func (r PipelineRequest) Fields() map[string]interface{} {
	body := map[string]interface{}{
		"description": r.Description,
		"processors":  r.Processors,
	}
	if v, ok := r.Version.Get(); ok {
		body["version"] = v
	}
	if f, ok := r.OnFailure.Get(); ok {
		body["onFailure"] = f
	}
	return body
}

// MarshalJSON omits absent optional fields.
func (r PipelineRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

// FromStore converts the definition returned by the store into a Pipeline.
func FromStore(name string, raw json.RawMessage) (Pipeline, error) {
	var sp StorePipeline
	if err := decode(raw, &sp); err != nil {
		return Pipeline{}, errors.Wrapf(err, "cannot decode pipeline %s", name)
	}
	processors := sp.Processors
	if processors == nil {
		processors = []Processor{}
	}
	return Pipeline{
		Name:        name,
		Description: sp.Description,
		Processors:  processors,
		Version:     sp.Version,
		OnFailure:   sp.OnFailure,
	}, nil
}

// FromStoreList converts a map of definitions keyed by name into Pipelines sorted by name.
func FromStoreList(raw map[string]json.RawMessage) ([]Pipeline, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	res := make([]Pipeline, 0, len(raw))
	for _, name := range names {
		p, err := FromStore(name, raw[name])
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

// DeleteResult is the response of the delete endpoint.
type DeleteResult struct {
	ItemsDeleted []string      `json:"itemsDeleted"`
	Errors       []DeleteError `json:"errors"`
}

// DeleteError describes a pipeline that could not be deleted.
type DeleteError struct {
	Name  string      `json:"name"`
	Error interface{} `json:"error"`
}
