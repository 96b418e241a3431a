package service

import (
	"time"

	"github.com/abhinandan-jain01/NearMart/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// CustomerClaims is the token payload for the storefront audience.
type CustomerClaims struct {
	CustomerID uint   `json:"customer_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// RetailerClaims is the token payload for the merchant audience.
type RetailerClaims struct {
	RetailerID uint   `json:"retailer_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// IssueCustomerToken signs a customer token. Production issuance lives in
// the identity service; this is used by the seed tool and tests.
func IssueCustomerToken(cfg config.JWTConfig, customerID uint, email string) (string, error) {
	claims := CustomerClaims{
		CustomerID: customerID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.ExpireHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// IssueRetailerToken signs a retailer token.
func IssueRetailerToken(cfg config.JWTConfig, retailerID uint, email string) (string, error) {
	claims := RetailerClaims{
		RetailerID: retailerID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.ExpireHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}
