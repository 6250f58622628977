package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"
	"handicrafts/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// Logger
// =====================

type testLogger struct {
	mu     sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func (l *testLogger) Infof(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *testLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *testLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

var _ usecase.Logger = (*testLogger)(nil)

// =====================
// TxManager / TxRepos
// =====================

// WithinTx の中で渡す repos を固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	orderPayments repo.OrderPaymentRepository
	carts         repo.CartRepository
	inventory     repo.InventoryRepository
	products      repo.ProductRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository               { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *TxReposMock) OrderPayments() repo.OrderPaymentRepository { return r.orderPayments }
func (r *TxReposMock) Carts() repo.CartRepository                 { return r.carts }
func (r *TxReposMock) Inventory() repo.InventoryRepository        { return r.inventory }
func (r *TxReposMock) Products() repo.ProductRepository           { return r.products }

// SAVEPOINTは同じreposでそのまま実行
func (r *TxReposMock) WithinSavepoint(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(r)
}

var (
	_ repo.TransactionManager = (*TxManagerMock)(nil)
	_ repo.TxRepos            = (*TxReposMock)(nil)
)

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListActive(ctx context.Context, page repo.Page) ([]repo.ProductRow, int64, error) {
	args := m.Called(ctx, page)
	rows, _ := args.Get(0).([]repo.ProductRow)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindActiveDetail(ctx context.Context, productID int64) (repo.ProductDetail, error) {
	args := m.Called(ctx, productID)
	d, _ := args.Get(0).(repo.ProductDetail)
	return d, args.Error(1)
}

func (m *ProductRepoMock) ListActiveByCategory(ctx context.Context, categoryID int64) ([]repo.ProductRow, error) {
	args := m.Called(ctx, categoryID)
	rows, _ := args.Get(0).([]repo.ProductRow)
	return rows, args.Error(1)
}

func (m *ProductRepoMock) ListActiveByArtisan(ctx context.Context, artisanID int64) ([]model.Product, error) {
	args := m.Called(ctx, artisanID)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) Search(ctx context.Context, q repo.SearchQuery) ([]repo.SearchRow, int64, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]repo.SearchRow)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) Filter(ctx context.Context, q repo.FilterQuery) ([]repo.ProductRow, int64, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]repo.ProductRow)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FacetCounts(ctx context.Context, q repo.FilterQuery) (repo.FacetCounts, error) {
	args := m.Called(ctx, q)
	fc, _ := args.Get(0).(repo.FacetCounts)
	return fc, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

type ArtisanRepoMock struct{ mock.Mock }

func (m *ArtisanRepoMock) List(ctx context.Context) ([]model.Artisan, error) {
	args := m.Called(ctx)
	as, _ := args.Get(0).([]model.Artisan)
	return as, args.Error(1)
}

func (m *ArtisanRepoMock) FindByID(ctx context.Context, artisanID int64) (model.Artisan, error) {
	args := m.Called(ctx, artisanID)
	a, _ := args.Get(0).(model.Artisan)
	return a, args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) ListLines(ctx context.Context, userID int64) ([]repo.CartLine, error) {
	args := m.Called(ctx, userID)
	ls, _ := args.Get(0).([]repo.CartLine)
	return ls, args.Error(1)
}

func (m *CartRepoMock) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartRepoMock) FindOwned(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID, userID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartRepoMock) Create(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteOwned(ctx context.Context, cartItemID int64, userID int64) error {
	args := m.Called(ctx, cartItemID, userID)
	return args.Error(0)
}

func (m *CartRepoMock) ClearByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartRepoMock) SumQuantity(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type FavoriteRepoMock struct{ mock.Mock }

func (m *FavoriteRepoMock) List(ctx context.Context, userID int64) ([]repo.FavoriteRow, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]repo.FavoriteRow)
	return rows, args.Error(1)
}

func (m *FavoriteRepoMock) Exists(ctx context.Context, userID int64, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepoMock) Add(ctx context.Context, userID int64, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *FavoriteRepoMock) Remove(ctx context.Context, userID int64, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteRepoMock) Count(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) ExistsByNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	args := m.Called(ctx, userID, limit)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUser(ctx context.Context, orderID int64, userID int64) (model.Order, error) {
	args := m.Called(ctx, orderID, userID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) Create(ctx context.Context, item *model.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]repo.OrderItemRow, error) {
	args := m.Called(ctx, orderIDs)
	rows, _ := args.Get(0).([]repo.OrderItemRow)
	return rows, args.Error(1)
}

type OrderPaymentRepoMock struct{ mock.Mock }

func (m *OrderPaymentRepoMock) Create(ctx context.Context, p *model.OrderPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	args := m.Called(ctx, email, userID)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) TouchLastLogin(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateProfile(ctx context.Context, userID int64, in repo.ProfileUpdate) error {
	args := m.Called(ctx, userID, in)
	return args.Error(0)
}

func (m *UserRepoMock) UpdatePassword(ctx context.Context, userID int64, hashed string) error {
	args := m.Called(ctx, userID, hashed)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateProfileImage(ctx context.Context, userID int64, path string) error {
	args := m.Called(ctx, userID, path)
	return args.Error(0)
}

var (
	_ repo.ProductRepository      = (*ProductRepoMock)(nil)
	_ repo.CategoryRepository     = (*CategoryRepoMock)(nil)
	_ repo.ArtisanRepository      = (*ArtisanRepoMock)(nil)
	_ repo.CartRepository         = (*CartRepoMock)(nil)
	_ repo.FavoriteRepository     = (*FavoriteRepoMock)(nil)
	_ repo.OrderRepository        = (*OrderRepoMock)(nil)
	_ repo.OrderItemRepository    = (*OrderItemRepoMock)(nil)
	_ repo.OrderPaymentRepository = (*OrderPaymentRepoMock)(nil)
	_ repo.InventoryRepository    = (*InventoryRepoMock)(nil)
	_ repo.UserRepository         = (*UserRepoMock)(nil)
)

// =====================
// その他
// =====================

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

type VerifierMock struct{ mock.Mock }

func (m *VerifierMock) Verify(plain string, hashed string) bool {
	args := m.Called(plain, hashed)
	return args.Bool(0)
}

type AvatarStoreMock struct{ mock.Mock }

func (m *AvatarStoreMock) Save(name string, data []byte) (string, error) {
	args := m.Called(name, data)
	return args.String(0), args.Error(1)
}

func (m *AvatarStoreMock) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

// 決まった番号を順に返す
type seqOrderNumbers struct {
	numbers []string
	i       int
}

func (s *seqOrderNumbers) Next(time.Time) string {
	n := s.numbers[s.i%len(s.numbers)]
	s.i++
	return n
}

var (
	_ usecase.PasswordHasher       = (*HasherMock)(nil)
	_ usecase.PasswordVerifier     = (*VerifierMock)(nil)
	_ usecase.AvatarStore          = (*AvatarStoreMock)(nil)
	_ usecase.OrderNumberGenerator = (*seqOrderNumbers)(nil)
)
