package merchant

import (
	handlershared "github.com/abhinandan-jain01/NearMart/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getRetailerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "retailer_id")
}
