package model

// マイグレーション対象（依存の少ない順）
func All() []any {
	return []any{
		&User{},
		&Session{},
		&Category{},
		&Artisan{},
		&Product{},
		&CartItem{},
		&Favorite{},
		&Order{},
		&OrderItem{},
		&OrderPayment{},
	}
}
