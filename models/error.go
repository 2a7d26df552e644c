package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// ChatErrorResponse is the structured error returned for rejected chat
// submissions. Code is one of the pipeline categories: UNAUTHENTICATED,
// FORBIDDEN or BAD_REQUEST.
type ChatErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
