package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"

	"github.com/shopspring/decimal"
)

// 在庫不足時の扱い
type StockPolicy string

const (
	// 注文全体を取り消す
	StockPolicyStrict StockPolicy = "strict"
	// 警告ログだけ出して続行（売り越しを許す）
	StockPolicyLenient StockPolicy = "lenient"
)

func ParseStockPolicy(s string) (StockPolicy, error) {
	switch StockPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StockPolicyStrict:
		return StockPolicyStrict, nil
	case StockPolicyLenient:
		return StockPolicyLenient, nil
	}
	return "", fmt.Errorf("unknown stock policy %q", s)
}

const (
	maxOrderNumberAttempts = 20
	orderListLimit         = 50
)

// 注文番号の採番（テストで差し替える）
type OrderNumberGenerator interface {
	Next(now time.Time) string
}

// ORD + YYYYMMDD + 4桁乱数(1-9999)
type RandomOrderNumber struct{}

func (RandomOrderNumber) Next(now time.Time) string {
	return fmt.Sprintf("ORD%s%04d", now.Format("20060102"), rand.Intn(9999)+1)
}

type OrderUsecase struct {
	tx      repo.TransactionManager
	orders  repo.OrderRepository
	items   repo.OrderItemRepository
	policy  StockPolicy
	numbers OrderNumberGenerator
	now     func() time.Time
	log     Logger
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	policy StockPolicy,
	numbers OrderNumberGenerator,
	now func() time.Time,
	log Logger,
) *OrderUsecase {
	if numbers == nil {
		numbers = RandomOrderNumber{}
	}
	if now == nil {
		now = time.Now
	}
	return &OrderUsecase{
		tx:      tx,
		orders:  orders,
		items:   items,
		policy:  policy,
		numbers: numbers,
		now:     now,
		log:     log,
	}
}

type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type AddressInput struct {
	FullAddress string `json:"full_address"`
	Address     string `json:"address"`
	Apartment   string `json:"apartment"`
	City        string `json:"city"`
	Division    string `json:"division"`
	PostalCode  string `json:"postal_code"`
}

// full_address が無ければ各項目を ", " で連結（空は飛ばす）
func (a AddressInput) Text() string {
	if s := strings.TrimSpace(a.FullAddress); s != "" {
		return s
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Address, a.Apartment, a.City, a.Division, a.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (a AddressInput) hasAddress() bool {
	return strings.TrimSpace(a.Address) != "" || strings.TrimSpace(a.FullAddress) != ""
}

type OrderItemInput struct {
	ProductID int64               `json:"product_id"`
	ID        int64               `json:"id"`
	Quantity  int64               `json:"quantity"`
	Price     decimal.NullDecimal `json:"price"`
}

// product_id を優先し、無ければ id
func (i OrderItemInput) ResolvedProductID() int64 {
	if i.ProductID != 0 {
		return i.ProductID
	}
	return i.ID
}

type OrderSummaryInput struct {
	Subtotal     decimal.NullDecimal `json:"subtotal"`
	ShippingCost decimal.NullDecimal `json:"shipping_cost"`
	Tax          decimal.NullDecimal `json:"tax"`
	Total        decimal.NullDecimal `json:"total"`
}

type PlaceOrderInput struct {
	CustomerInfo    CustomerInfo      `json:"customer_info"`
	ShippingAddress AddressInput      `json:"shipping_address"`
	BillingAddress  *AddressInput     `json:"billing_address"`
	OrderItems      []OrderItemInput  `json:"order_items"`
	OrderSummary    OrderSummaryInput `json:"order_summary"`
	ShippingMethod  string            `json:"shipping_method"`
	PaymentMethod   string            `json:"payment_method"`
	PaymentDetails  map[string]any    `json:"payment_details"`
	OrderNotes      string            `json:"order_notes"`
}

type PlaceOrderOutput struct {
	OrderID     int64             `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Status      model.OrderStatus `json:"status"`
}

// トランザクションを開く前の入力チェック
func (in PlaceOrderInput) validate() error {
	if len(in.OrderItems) == 0 {
		return NewHTTPError(http.StatusBadRequest, "Order items are required")
	}
	if strings.TrimSpace(in.CustomerInfo.Email) == "" {
		return NewHTTPError(http.StatusBadRequest, "Email address is required")
	}
	if !in.ShippingAddress.hasAddress() {
		return NewHTTPError(http.StatusBadRequest, "Shipping address is required")
	}
	for _, it := range in.OrderItems {
		if it.ResolvedProductID() <= 0 {
			return NewHTTPError(http.StatusBadRequest, "Invalid product_id")
		}
		if it.Quantity < 1 {
			return NewHTTPError(http.StatusBadRequest, "Invalid quantity")
		}
	}
	switch in.PaymentMethod {
	case model.PaymentMethodCash, model.PaymentMethodCard, model.PaymentMethodMobile:
	default:
		return NewHTTPError(http.StatusBadRequest, "Invalid payment method")
	}
	return nil
}

// 注文確定。注文・明細・在庫・カート削除は1トランザクション
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if in.ShippingMethod == "" {
		in.ShippingMethod = model.ShippingMethodStandard
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = model.PaymentMethodCash
	}
	if err := in.validate(); err != nil {
		return PlaceOrderOutput{}, err
	}

	shipping := in.ShippingAddress.Text()
	billing := shipping
	if in.BillingAddress != nil && in.BillingAddress.hasAddress() {
		billing = in.BillingAddress.Text()
	}

	//金額はクライアントの集計をそのまま使う
	subtotal := orDefault(in.OrderSummary.Subtotal, decimal.Zero)
	shippingCost := orDefault(in.OrderSummary.ShippingCost, model.ShippingFlat)
	tax := orDefault(in.OrderSummary.Tax, decimal.Zero)
	total := orDefault(in.OrderSummary.Total, subtotal.Add(shippingCost).Add(tax))

	order := &model.Order{
		UserID:          userID,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		TaxAmount:       tax,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		CustomerEmail:   strings.TrimSpace(in.CustomerInfo.Email),
		CustomerPhone:   strings.TrimSpace(in.CustomerInfo.Phone),
		ShippingMethod:  in.ShippingMethod,
		OrderNotes:      in.OrderNotes,
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := u.insertOrder(ctx, r, order); err != nil {
			return err
		}

		for _, it := range in.OrderItems {
			if err := u.insertItem(ctx, r, order.ID, it); err != nil {
				return err
			}
		}

		//支払い記録の失敗は注文を止めない
		payment := u.buildPayment(order, in.PaymentDetails)
		err := r.WithinSavepoint(ctx, func(sp repo.TxRepos) error {
			return sp.OrderPayments().Create(ctx, payment)
		})
		if err != nil {
			u.log.Errorf("order %s: record payment: %v", order.OrderNumber, err)
		} else {
			u.log.Infof("order %s: payment %s %s amount=%s", order.OrderNumber, payment.PaymentMethod, payment.TransactionID, payment.Amount)
		}

		//送信された明細に関係なくカートを空にする
		if _, err := r.Carts().ClearByUser(ctx, userID); err != nil {
			return internalError(u.log, "clear cart", err)
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return PlaceOrderOutput{}, err
		}
		return PlaceOrderOutput{}, internalError(u.log, "place order", err)
	}

	u.log.Infof("order created: number=%s user=%d total=%s", order.OrderNumber, userID, order.TotalAmount)
	return PlaceOrderOutput{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	}, nil
}

func orDefault(v decimal.NullDecimal, def decimal.Decimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return def
}

// 未使用の番号を探してINSERT。同時採番で衝突したらSAVEPOINTまで戻して引き直す
func (u *OrderUsecase) insertOrder(ctx context.Context, r repo.TxRepos, order *model.Order) error {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		number := u.numbers.Next(u.now())

		exists, err := r.Orders().ExistsByNumber(ctx, number)
		if err != nil {
			return internalError(u.log, "check order number", err)
		}
		if exists {
			continue
		}

		order.ID = 0
		order.OrderNumber = number
		err = r.WithinSavepoint(ctx, func(sp repo.TxRepos) error {
			return sp.Orders().Create(ctx, order)
		})
		if errors.Is(err, repo.ErrDuplicate) {
			continue
		}
		if err != nil {
			return internalError(u.log, "create order", err)
		}
		return nil
	}
	return internalError(u.log, "create order", errors.New("order number attempts exhausted"))
}

func (u *OrderUsecase) insertItem(ctx context.Context, r repo.TxRepos, orderID int64, it OrderItemInput) error {
	productID := it.ResolvedProductID()

	p, err := r.Products().FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid product_id in order item: %d", productID))
	}
	if err != nil {
		return internalError(u.log, "find product", err)
	}

	price := orDefault(it.Price, p.Price)
	item := &model.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  it.Quantity,
		Price:     price,
		Total:     model.LineTotal(price, it.Quantity),
	}
	if err := r.OrderItems().Create(ctx, item); err != nil {
		return internalError(u.log, "create order item", err)
	}

	ok, err := r.Inventory().DecreaseStockIfEnough(ctx, productID, it.Quantity)
	if err != nil {
		return internalError(u.log, "decrease stock", err)
	}
	if !ok {
		if u.policy == StockPolicyLenient {
			u.log.Warnf("order %d: insufficient stock for product %d (qty %d), continuing", orderID, productID, it.Quantity)
			return nil
		}
		return NewHTTPError(http.StatusConflict, fmt.Sprintf("insufficient stock for product %d", productID))
	}
	return nil
}

// 支払い方法ごとの取引IDとメモ
func (u *OrderUsecase) buildPayment(order *model.Order, details map[string]any) *model.OrderPayment {
	now := u.now()
	p := &model.OrderPayment{
		OrderID:       order.ID,
		PaymentMethod: order.PaymentMethod,
		Status:        order.PaymentStatus,
		Amount:        order.TotalAmount,
		PaymentDate:   now,
	}

	switch order.PaymentMethod {
	case model.PaymentMethodCard:
		if number := detailString(details, "card_number"); number != "" {
			p.CardLastFour = lastN(digitsOnly(number), 4)
			p.CardType = detailString(details, "card_type")
			if p.CardType == "" {
				p.CardType = "unknown"
			}
			p.TransactionID = fmt.Sprintf("CARD_%s_%d", p.CardLastFour, now.Unix())
			p.Notes = "Card payment processed on " + now.Format("2006-01-02 15:04:05")
		}
	case model.PaymentMethodMobile:
		p.Provider = detailString(details, "provider")
		if p.Provider == "" {
			p.Provider = "unknown"
		}
		p.TransactionID = detailString(details, "transaction_id")
		if p.TransactionID == "" {
			p.TransactionID = fmt.Sprintf("MOB_%d", now.Unix())
		}
		p.Notes = "Mobile banking payment via " + p.Provider
	case model.PaymentMethodCash:
		p.TransactionID = fmt.Sprintf("COD_%d", now.Unix())
		p.Notes = "Cash on delivery payment"
	}

	p.PaymentDetails = maskPaymentDetails(details)
	return p
}

// カード番号は下4桁だけ残し、CVVは保存しない
func maskPaymentDetails(details map[string]any) string {
	masked := make(map[string]any, len(details))
	for k, v := range details {
		switch k {
		case "cvv", "cvc", "card_cvv":
			continue
		case "card_number":
			if s, ok := v.(string); ok {
				v = "**** **** **** " + lastN(digitsOnly(s), 4)
			}
		}
		masked[k] = v
	}
	b, err := json.Marshal(masked)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func detailString(details map[string]any, key string) string {
	v, ok := details[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

type OrderLineOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderSummaryOutput struct {
	model.Order
	ItemCount    int               `json:"item_count"`
	ItemsSummary string            `json:"items_summary"`
	Items        []OrderLineOutput `json:"items"`
}

// 本人の注文（新しい順、最大50件）
func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]OrderSummaryOutput, error) {
	orders, err := u.orders.ListByUserID(ctx, userID, orderListLimit)
	if err != nil {
		return nil, internalError(u.log, "list orders", err)
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	rows, err := u.items.ListByOrderIDs(ctx, ids)
	if err != nil {
		return nil, internalError(u.log, "list order items", err)
	}

	byOrder := make(map[int64][]repo.OrderItemRow, len(orders))
	for _, r := range rows {
		byOrder[r.OrderID] = append(byOrder[r.OrderID], r)
	}

	out := make([]OrderSummaryOutput, 0, len(orders))
	for _, o := range orders {
		items := byOrder[o.ID]
		lines := make([]OrderLineOutput, 0, len(items))
		names := make([]string, 0, len(items))
		for _, it := range items {
			lines = append(lines, OrderLineOutput{
				ProductID: it.ProductID,
				Name:      it.Name,
				Image:     it.Image,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
			names = append(names, fmt.Sprintf("%s (%d)", it.Name, it.Quantity))
		}
		out = append(out, OrderSummaryOutput{
			Order:        o,
			ItemCount:    len(items),
			ItemsSummary: strings.Join(names, ", "),
			Items:        lines,
		})
	}
	return out, nil
}

type OrderDetailOutput struct {
	Order model.Order         `json:"order"`
	Items []repo.OrderItemRow `json:"items"`
}

func (u *OrderUsecase) GetMine(ctx context.Context, userID int64, orderID int64) (OrderDetailOutput, error) {
	if orderID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "Order ID is required")
	}

	o, err := u.orders.FindByIDForUser(ctx, orderID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return OrderDetailOutput{}, internalError(u.log, "get order", err)
	}

	items, err := u.items.ListByOrderIDs(ctx, []int64{o.ID})
	if err != nil {
		return OrderDetailOutput{}, internalError(u.log, "list order items", err)
	}
	return OrderDetailOutput{Order: o, Items: items}, nil
}
