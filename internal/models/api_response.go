package models

// ApiResponse is the uniform envelope returned by every endpoint,
// success and failure alike.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// NewApiResponse builds an envelope; Success is derived from the code.
func NewApiResponse(statusCode int, data interface{}, message string) *ApiResponse {
	return &ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}
