package schemas

type ApiResponse struct {
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ValidateResponse struct {
	Message   string `json:"message"`
	Validated bool   `json:"validated"`
}
