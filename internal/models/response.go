package models

// Status is the outcome carried by every response envelope.
type Status string

const (
	StatusOK Status = "OK"
	StatusKO Status = "KO"
)

// ErrorMessage describes a failed webhook call.
type ErrorMessage struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// ResponseMessage is returned by every webhook route.
// Error is set if and only if Status is KO.
type ResponseMessage struct {
	Status Status        `json:"status"`
	Error  *ErrorMessage `json:"error,omitempty"`
}

// NewOKResponse returns the success envelope.
func NewOKResponse() ResponseMessage {
	return ResponseMessage{Status: StatusOK}
}

// NewErrorResponse returns a KO envelope wrapping the given error details.
func NewErrorResponse(code, description, message string) ResponseMessage {
	return ResponseMessage{
		Status: StatusKO,
		Error: &ErrorMessage{
			Code:        code,
			Description: description,
			Message:     message,
		},
	}
}

// IsOK reports whether the envelope is a success envelope.
func (r ResponseMessage) IsOK() bool {
	return r.Status == StatusOK && r.Error == nil
}
