package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const (
	processorsSchema = `{"type": "array", "items": {"type": "object"}}`

	updateSchema = `{
		"type": "object",
		"additionalProperties": false,
		"required": ["description", "processors"],
		"properties": {
			"description": {"type": "string"},
			"processors": ` + processorsSchema + `,
			"version": {"type": "number"},
			"onFailure": ` + processorsSchema + `
		}
	}`

	createSchema = `{
		"type": "object",
		"additionalProperties": false,
		"required": ["name", "description", "processors"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"processors": ` + processorsSchema + `,
			"version": {"type": "number"},
			"onFailure": ` + processorsSchema + `
		}
	}`
)

var (
	updateValidator = mustSchema(updateSchema)
	createValidator = mustSchema(createSchema)
)

// ErrValidation is the error returned when a request body does not match its schema.
type ErrValidation struct {
	errs *multierror.Error
}

func (err ErrValidation) Error() string {
	msgs := make([]string, 0, len(err.errs.Errors))
	for _, e := range err.errs.Errors {
		msgs = append(msgs, e.Error())
	}
	return "[request body]: " + strings.Join(msgs, "; ")
}

// Violations returns every schema violation found.
func (err ErrValidation) Violations() []error {
	return err.errs.Errors
}

// ValidateName validates the pipeline name given as path parameter.
// Wildcards and comma separated lists are rejected: the store would read several pipelines at once.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("[request params.name]: expected a non empty string")
	}
	if strings.ContainsAny(name, "*,") {
		return errors.Errorf("[request params.name]: %s must name a single pipeline, '*' and ',' are not allowed", name)
	}
	return nil
}

// DecodePipelineRequest validates the body of an update request and decodes it.
func DecodePipelineRequest(body []byte) (PipelineRequest, error) {
	if err := validate(updateValidator, body); err != nil {
		return PipelineRequest{}, err
	}
	var req PipelineRequest
	if err := decode(body, &req); err != nil {
		return PipelineRequest{}, errors.Wrap(err, "cannot decode request body")
	}
	return req, nil
}

// DecodeCreateRequest validates the body of a create request and decodes it.
// It returns the name of the pipeline to create with its definition.
func DecodeCreateRequest(body []byte) (string, PipelineRequest, error) {
	if err := validate(createValidator, body); err != nil {
		return "", PipelineRequest{}, err
	}
	var named struct {
		Name string `json:"name"`
	}
	if err := decode(body, &named); err != nil {
		return "", PipelineRequest{}, errors.Wrap(err, "cannot decode request body")
	}
	// name is the only field not part of the definition
	var fields map[string]json.RawMessage
	if err := decode(body, &fields); err != nil {
		return "", PipelineRequest{}, errors.Wrap(err, "cannot decode request body")
	}
	delete(fields, "name")
	def, err := json.Marshal(fields)
	if err != nil {
		return "", PipelineRequest{}, errors.Wrap(err, "cannot encode pipeline definition")
	}
	var req PipelineRequest
	if err := decode(def, &req); err != nil {
		return "", PipelineRequest{}, errors.Wrap(err, "cannot decode request body")
	}
	return named.Name, req, nil
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return ErrValidation{multierror.Append(nil, errors.Wrap(err, "invalid JSON"))}
	}
	if res.Valid() {
		return nil
	}
	var errs *multierror.Error
	for _, re := range res.Errors() {
		errs = multierror.Append(errs, errors.New(re.String()))
	}
	return ErrValidation{errs}
}

func decode(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(errors.Wrap(err, "cannot compile request schema"))
	}
	return schema
}
