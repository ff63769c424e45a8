package api

const (
	// HeaderRequestID is header for RequestID
	HeaderRequestID = "x-request-id"
	// HeaderPipelineName is header for the pipeline name
	HeaderPipelineName = "x-pipeline-name"
	// HeaderEventType is header for the type of a published event
	HeaderEventType = "x-event-type"
)
