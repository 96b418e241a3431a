package service

import (
	"github.com/abhinandan-jain01/NearMart/internal/models"

	"github.com/shopspring/decimal"
)

// Pricing holds the checkout pricing knobs. Tax applies to the discounted
// subtotal; the delivery fee is flat and never taxed.
type Pricing struct {
	TaxRate     decimal.Decimal
	DeliveryFee models.Money
}

// NewPricing builds a Pricing from config floats.
func NewPricing(taxRate, deliveryFee float64) Pricing {
	return Pricing{
		TaxRate:     decimal.NewFromFloat(taxRate),
		DeliveryFee: models.NewMoneyFromFloat(deliveryFee),
	}
}

// Quote computes tax and total for a discounted subtotal. The discount is
// clamped to the subtotal so the taxable base never goes negative.
func (p Pricing) Quote(subtotal, discount models.Money) (tax models.Money, total models.Money) {
	taxable := subtotal.Sub(discount.Decimal)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax = models.NewMoneyFromDecimal(taxable.Mul(p.TaxRate))
	total = models.NewMoneyFromDecimal(taxable.Add(tax.Decimal).Add(p.DeliveryFee.Decimal))
	return tax, total
}

// ClampDiscount limits a stored discount to the current subtotal.
func ClampDiscount(subtotal, discount models.Money) models.Money {
	if discount.IsNegative() {
		return models.NewMoneyFromFloat(0)
	}
	if discount.GreaterThan(subtotal.Decimal) {
		return subtotal
	}
	return discount
}
