package api

// ModifyResponse reports the outcome of a state-changing operation.
// Modified is false when the resource was already in the requested state.
type ModifyResponse struct {
	Message  string `json:"message" doc:"Human-readable status message"`
	Modified bool   `json:"modified" doc:"Whether the resource was changed"`
}

// ModifyOutput wraps a modify response for huma.
type ModifyOutput struct {
	Body ModifyResponse
}
