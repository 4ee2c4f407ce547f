package dto

import (
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
)

// ListRequestLogsParams defines query parameters for listing request logs.
// Without Limit the full history is returned.
type ListRequestLogsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// RequestLogResponse is one audit entry as returned by GET /api/logs.
type RequestLogResponse struct {
	ID              int64     `json:"id"`
	APIKey          string    `json:"apiKey"`
	FromCurrency    string    `json:"fromCurrency"`
	ToCurrency      string    `json:"toCurrency"`
	Amount          float64   `json:"amount"`
	ConvertedAmount float64   `json:"convertedAmount"`
	Timestamp       time.Time `json:"timestamp"`
}

// ToRequestLogResponse converts a domain.RequestLog to its response DTO
func ToRequestLogResponse(l domain.RequestLog) RequestLogResponse {
	return RequestLogResponse{
		ID:              l.ID,
		APIKey:          l.APIKey,
		FromCurrency:    l.FromCurrency,
		ToCurrency:      l.ToCurrency,
		Amount:          l.Amount,
		ConvertedAmount: l.ConvertedAmount,
		Timestamp:       l.Timestamp.UTC(),
	}
}

// ToListRequestLogResponse converts logs, never returning nil so the body is
// always a JSON array.
func ToListRequestLogResponse(logs []domain.RequestLog) []RequestLogResponse {
	out := make([]RequestLogResponse, len(logs))
	for i, l := range logs {
		out[i] = ToRequestLogResponse(l)
	}
	return out
}
