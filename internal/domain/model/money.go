package model

import "github.com/shopspring/decimal"

func init() {
	// 金額はJSONで数値として返す（"120.00" ではなく 120）
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	// 送料（カートが空でなければ固定）
	ShippingFlat = decimal.NewFromInt(120)
	// 税率 5%
	TaxRate = decimal.NewFromFloat(0.05)
)

// 送料・税・合計の計算。カートと注文で同じ規則を使う。
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func Summarize(subtotal decimal.Decimal, itemCount int) Summary {
	if itemCount == 0 {
		return Summary{Subtotal: decimal.Zero, Shipping: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero}
	}
	tax := Tax(subtotal)
	return Summary{
		Subtotal: subtotal,
		Shipping: ShippingFlat,
		Tax:      tax,
		Total:    subtotal.Add(ShippingFlat).Add(tax),
	}
}

// 税額は小計の5%を整数に丸める
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(0)
}

func LineTotal(price decimal.Decimal, qty int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(qty))
}
