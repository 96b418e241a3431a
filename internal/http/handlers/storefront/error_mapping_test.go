package storefront

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

func decodeErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (int, map[string]interface{}) {
	t.Helper()
	var body struct {
		StatusCode int                    `json:"status_code"`
		Msg        string                 `json:"msg"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return body.StatusCode, body.Data
}

func TestRespondCartErrorStockShortagePayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("POST", "/api/v1/cart/items", nil)

	respondCartError(c, &service.StockShortageError{
		ProductID:   12,
		ProductName: "rice",
		Requested:   5,
		Available:   2,
		IsAvailable: true,
	})

	code, data := decodeErrorEnvelope(t, rec)
	if code != response.CodeBadRequest {
		t.Fatalf("status code want %d got %d", response.CodeBadRequest, code)
	}
	if data["available"] != float64(2) || data["is_available"] != true {
		t.Fatalf("stock state missing from payload: %v", data)
	}
	if data["requested"] != float64(5) || data["product_id"] != float64(12) {
		t.Fatalf("shortage payload unexpected: %v", data)
	}
}

func TestRespondCartErrorUnavailablePayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("POST", "/api/v1/cart/items", nil)

	respondCartError(c, &service.ProductUnavailableError{
		ProductID:   12,
		ProductName: "rice",
		Available:   2,
		IsAvailable: false,
	})

	code, data := decodeErrorEnvelope(t, rec)
	if code != response.CodeBadRequest {
		t.Fatalf("status code want %d got %d", response.CodeBadRequest, code)
	}
	if data["available"] != float64(2) || data["is_available"] != false {
		t.Fatalf("availability state missing from payload: %v", data)
	}
}
