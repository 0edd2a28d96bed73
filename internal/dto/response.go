package dto

// APIResponse is the uniform success envelope returned by every handler.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// NewAPIResponse builds a success envelope; Success mirrors statusCode < 400.
func NewAPIResponse(statusCode int, data any, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// APIErrorResponse is the uniform error envelope.
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}
