package dto

// ErrorResponse cuerpo JSON de error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Tipos de flash; el layout los usa como clases CSS.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash es un mensaje de un solo uso que se muestra en la siguiente página.
type Flash struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}
