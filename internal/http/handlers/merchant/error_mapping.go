package merchant

import (
	"errors"

	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps one business error onto an API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrNotOwned, code: response.CodeForbidden, msg: "product belongs to another retailer"},
	{target: service.ErrRetailerNotFound, code: response.CodeNotFound, msg: "retailer not found"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "status transition not allowed"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrRetailerNotFound, code: response.CodeNotFound, msg: "retailer not found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}
