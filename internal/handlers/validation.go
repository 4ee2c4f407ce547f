package handlers

import (
	"errors"
	"math"
	"regexp"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// registerValidators adds the custom binding tags to gin's validator engine.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return currencyCodePattern.MatchString(fl.Field().String())
	})
}

// classifyConvertRequest reports the first problem with a bound ConvertRequest
// in check order: missing parameters, then the amount, then currency shape.
// from and to are the raw query values, echoed back in currency errors.
func classifyConvertRequest(req *dto.ConvertRequest, bindErr error, from, to string) error {
	var verrs validator.ValidationErrors
	if bindErr != nil && !errors.As(bindErr, &verrs) {
		// Binding failed before validation ran, which only the amount parse can cause.
		return apperrors.Wrap(apperrors.KindInvalidAmount, apperrors.MsgInvalidAmount, bindErr)
	}

	badCurrency := false
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return apperrors.MissingParameter(formName(fe.Field()))
		case "currencycode":
			badCurrency = true
		}
	}

	if req.Amount == nil || !isPositiveFinite(*req.Amount) {
		return apperrors.NewAppError(apperrors.KindInvalidAmount, apperrors.MsgInvalidAmount)
	}
	if badCurrency {
		return apperrors.InvalidCurrency(from, to)
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func formName(field string) string {
	switch field {
	case "From":
		return "from"
	case "To":
		return "to"
	case "Amount":
		return "amount"
	case "Name":
		return "name"
	}
	return field
}
