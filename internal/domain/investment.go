// internal/domain/investment.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a user-owned holding. Prices are int64 cents; the quantity is
// a decimal because holdings can be fractional shares. Market value and
// gain/loss are derived, never stored.
type Investment struct {
	ID                 int64           `db:"id" json:"id"`
	UserID             int64           `db:"user_id" json:"user_id"`
	Symbol             string          `db:"symbol" json:"symbol"`
	Name               string          `db:"name" json:"name"`
	Quantity           decimal.Decimal `db:"quantity" json:"quantity"`
	PurchasePriceCents int64           `db:"purchase_price_cents" json:"purchase_price_cents"`
	CurrentPriceCents  *int64          `db:"current_price_cents" json:"current_price_cents,omitempty"`
	PurchaseDate       time.Time       `db:"purchase_date" json:"purchase_date"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// EffectivePriceCents returns the current price, falling back to the purchase
// price when no market price has been supplied.
func (i *Investment) EffectivePriceCents() int64 {
	if i.CurrentPriceCents != nil {
		return *i.CurrentPriceCents
	}
	return i.PurchasePriceCents
}

// MarketValueCents returns quantity x effective price, rounded half-up to
// whole cents.
func (i *Investment) MarketValueCents() int64 {
	return scaleCents(i.Quantity, i.EffectivePriceCents())
}

// CostBasisCents returns quantity x purchase price, rounded half-up to whole
// cents.
func (i *Investment) CostBasisCents() int64 {
	return scaleCents(i.Quantity, i.PurchasePriceCents)
}

// GainLossCents returns market value minus cost basis.
func (i *Investment) GainLossCents() int64 {
	return i.MarketValueCents() - i.CostBasisCents()
}

func scaleCents(qty decimal.Decimal, priceCents int64) int64 {
	return qty.Mul(decimal.NewFromInt(priceCents)).Round(0).IntPart()
}

// NewInvestment creates a new Investment instance.
func NewInvestment(userID int64, symbol, name string, quantity decimal.Decimal, purchasePriceCents int64, currentPriceCents *int64, purchaseDate time.Time) *Investment {
	now := time.Now().UTC()
	return &Investment{
		UserID:             userID,
		Symbol:             symbol,
		Name:               name,
		Quantity:           quantity,
		PurchasePriceCents: purchasePriceCents,
		CurrentPriceCents:  currentPriceCents,
		PurchaseDate:       purchaseDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
