package domain

import "time"

// RequestLog is the audit record of one successful conversion. Rows are
// append-only and also serve as the input of the per-key rate limits.
type RequestLog struct {
	ID              int64     `json:"id"`
	APIKey          string    `json:"apiKey"`
	FromCurrency    string    `json:"fromCurrency"`
	ToCurrency      string    `json:"toCurrency"`
	Amount          float64   `json:"amount"`
	ConvertedAmount float64   `json:"convertedAmount"`
	Timestamp       time.Time `json:"timestamp"`
}

// LogCursor marks a position in the (timestamp, id) ordering of a key's logs.
type LogCursor struct {
	Timestamp time.Time
	ID        int64
}
