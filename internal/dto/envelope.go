package dto

// Envelope is the uniform response body every endpoint returns, success or
// failure.
type Envelope struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	IsSuccess  bool        `json:"isSuccess"`
	Result     interface{} `json:"result,omitempty"`
}

func Success(code int, message string, result interface{}) Envelope {
	return Envelope{
		Status:     "success",
		StatusCode: code,
		Message:    message,
		IsSuccess:  true,
		Result:     result,
	}
}

func Failure(code int, message string) Envelope {
	return Envelope{
		Status:     "failed",
		StatusCode: code,
		Message:    message,
		IsSuccess:  false,
	}
}
