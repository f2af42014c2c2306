package dto

// OddsResponse é a resposta de sucesso de GET /odds.
// Result fica vazio quando nada pôde ser determinado.
type OddsResponse struct {
	OK     bool           `json:"ok"`
	Result map[string]any `json:"result"`
}

// ErrorResponse cobre 400 e 500.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// HealthResponse é a resposta de GET /.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}
