package dto

// ConvertRequest holds the query parameters of GET /api/convert.
type ConvertRequest struct {
	From   string   `form:"from" binding:"required,currencycode"`
	To     string   `form:"to" binding:"required,currencycode"`
	Amount *float64 `form:"amount" binding:"required"`
}

// ConvertResponse is the body of a successful conversion.
type ConvertResponse struct {
	ConvertedAmount float64 `json:"convertedAmount"`
}
