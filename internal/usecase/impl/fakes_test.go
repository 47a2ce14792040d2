package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"workbuddy/internal/domain/entity"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repository fakes ---

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
	findErr  error
	saveErr  error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string, userType entity.UserType) (*entity.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, account := range r.accounts {
		if account.Email == email && account.UserType() == userType {
			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) List(_ context.Context, userType entity.UserType) ([]*entity.Account, error) {
	var accounts []*entity.Account
	for _, account := range r.accounts {
		if account.UserType() == userType {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	for _, existing := range r.accounts {
		if existing.Email == account.Email && existing.UserType() == account.UserType() {
			return repository.ErrDuplicateEmail
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts[account.ID] = account

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	r.accounts[account.ID] = account

	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.accounts, id)

	return nil
}

type fakeProductRepo struct {
	products  map[uuid.UUID]*entity.Product
	ratingAvg map[uuid.UUID]float64
	ratingCnt map[uuid.UUID]int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:  make(map[uuid.UUID]*entity.Product),
		ratingAvg: make(map[uuid.UUID]float64),
		ratingCnt: make(map[uuid.UUID]int),
	}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	var products []*entity.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			products = append(products, product)
		}
	}

	return products, nil
}

func (r *fakeProductRepo) List(_ context.Context, category string) ([]*entity.Product, error) {
	var products []*entity.Product
	for _, product := range r.products {
		if category == "" || product.Category == category {
			products = append(products, product)
		}
	}

	return products, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[product.ID] = product

	return nil
}

func (r *fakeProductRepo) UpdateRating(_ context.Context, id uuid.UUID, average float64, count int) error {
	r.ratingAvg[id] = average
	r.ratingCnt[id] = count
	if product, ok := r.products[id]; ok {
		product.AverageRating = average
		product.NumberOfReviews = count
	}

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

type fakeCartRepo struct {
	carts   map[uuid.UUID]*entity.Cart
	saveErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]*entity.Cart)}
}

func (r *fakeCartRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Cart, error) {
	cart, ok := r.carts[id]
	if !ok {
		return nil, repository.ErrCartNotFound
	}

	return cart, nil
}

func (r *fakeCartRepo) FindByClientID(_ context.Context, clientID uuid.UUID) (*entity.Cart, error) {
	for _, cart := range r.carts {
		if cart.ClientID == clientID && cart.State == "active" {
			return cart, nil
		}
	}

	return nil, repository.ErrCartNotFound
}

func (r *fakeCartRepo) List(_ context.Context) ([]*entity.Cart, error) {
	var carts []*entity.Cart
	for _, cart := range r.carts {
		carts = append(carts, cart)
	}

	return carts, nil
}

func (r *fakeCartRepo) Create(_ context.Context, cart *entity.Cart) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	r.carts[cart.ID] = cart

	return nil
}

func (r *fakeCartRepo) Update(_ context.Context, cart *entity.Cart) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.carts[cart.ID]; !ok {
		return repository.ErrCartNotFound
	}
	r.carts[cart.ID] = cart

	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.carts[id]; !ok {
		return repository.ErrCartNotFound
	}
	delete(r.carts, id)

	return nil
}

type fakeDiscountCodeRepo struct {
	codes map[uuid.UUID]*entity.DiscountCode
}

func newFakeDiscountCodeRepo() *fakeDiscountCodeRepo {
	return &fakeDiscountCodeRepo{codes: make(map[uuid.UUID]*entity.DiscountCode)}
}

func (r *fakeDiscountCodeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.DiscountCode, error) {
	dc, ok := r.codes[id]
	if !ok {
		return nil, repository.ErrDiscountCodeNotFound
	}

	return dc, nil
}

func (r *fakeDiscountCodeRepo) FindByCode(_ context.Context, code string) (*entity.DiscountCode, error) {
	for _, dc := range r.codes {
		if dc.Code == code {
			return dc, nil
		}
	}

	return nil, repository.ErrDiscountCodeNotFound
}

func (r *fakeDiscountCodeRepo) List(_ context.Context) ([]*entity.DiscountCode, error) {
	var codes []*entity.DiscountCode
	for _, dc := range r.codes {
		codes = append(codes, dc)
	}

	return codes, nil
}

func (r *fakeDiscountCodeRepo) Create(_ context.Context, dc *entity.DiscountCode) error {
	for _, existing := range r.codes {
		if existing.Code == dc.Code {
			return repository.ErrDuplicateCode
		}
	}
	if dc.ID == uuid.Nil {
		dc.ID = uuid.New()
	}
	r.codes[dc.ID] = dc

	return nil
}

func (r *fakeDiscountCodeRepo) Update(_ context.Context, dc *entity.DiscountCode) error {
	if _, ok := r.codes[dc.ID]; !ok {
		return repository.ErrDiscountCodeNotFound
	}
	r.codes[dc.ID] = dc

	return nil
}

func (r *fakeDiscountCodeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.codes[id]; !ok {
		return repository.ErrDiscountCodeNotFound
	}
	delete(r.codes, id)

	return nil
}

type fakeOfferRepo struct {
	offers map[uuid.UUID]*entity.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[uuid.UUID]*entity.Offer)}
}

func (r *fakeOfferRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Offer, error) {
	offer, ok := r.offers[id]
	if !ok {
		return nil, repository.ErrOfferNotFound
	}

	return offer, nil
}

func (r *fakeOfferRepo) List(_ context.Context, productID *uuid.UUID) ([]*entity.Offer, error) {
	var offers []*entity.Offer
	for _, offer := range r.offers {
		if productID == nil || offer.ProductID == *productID {
			offers = append(offers, offer)
		}
	}

	return offers, nil
}

func (r *fakeOfferRepo) Create(_ context.Context, offer *entity.Offer) error {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	r.offers[offer.ID] = offer

	return nil
}

func (r *fakeOfferRepo) Update(_ context.Context, offer *entity.Offer) error {
	if _, ok := r.offers[offer.ID]; !ok {
		return repository.ErrOfferNotFound
	}
	r.offers[offer.ID] = offer

	return nil
}

func (r *fakeOfferRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.offers[id]; !ok {
		return repository.ErrOfferNotFound
	}
	delete(r.offers, id)

	return nil
}

type fakeOrderRepo struct {
	orders  map[uuid.UUID]*entity.Order
	saveErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	clone := *order

	return &clone, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range r.orders {
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	var matches []*entity.Order
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && order.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && order.CreatedAt.After(filter.To) {
			continue
		}
		matches = append(matches, order)
	}

	total := int64(len(matches))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matches) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matches) {
		end = len(matches)
	}

	return matches[start:end], total, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	clone := *order
	r.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	clone := *order
	r.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.orders, id)

	return nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}

	return review, nil
}

func (r *fakeReviewRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}

	return reviews, nil
}

func (r *fakeReviewRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for _, review := range r.reviews {
		if review.ClientID == clientID {
			reviews = append(reviews, review)
		}
	}

	return reviews, nil
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, existing := range r.reviews {
		if existing.ClientID == review.ClientID && existing.ProductID == review.ProductID {
			return repository.ErrDuplicateReview
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	r.reviews[review.ID] = review

	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	r.reviews[review.ID] = review

	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(r.reviews, id)

	return nil
}

type fakeFavoritesRepo struct {
	docs map[string]*entity.Favorites
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{docs: make(map[string]*entity.Favorites)}
}

func favKey(userID uuid.UUID, userType entity.UserType) string {
	return userID.String() + "/" + string(userType)
}

func (r *fakeFavoritesRepo) FindOrCreate(_ context.Context, userID uuid.UUID, userType entity.UserType) (*entity.Favorites, error) {
	key := favKey(userID, userType)
	if doc, ok := r.docs[key]; ok {
		return doc, nil
	}
	doc := &entity.Favorites{ID: uuid.New(), UserID: userID, UserType: userType}
	r.docs[key] = doc

	return doc, nil
}

func (r *fakeFavoritesRepo) Update(_ context.Context, favorites *entity.Favorites) error {
	r.docs[favKey(favorites.UserID, favorites.UserType)] = favorites

	return nil
}

type fakeSettingsRepo struct {
	docs map[string]*entity.UserSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{docs: make(map[string]*entity.UserSettings)}
}

func (r *fakeSettingsRepo) FindOrCreate(_ context.Context, userID uuid.UUID, userType entity.UserType) (*entity.UserSettings, error) {
	key := favKey(userID, userType)
	if doc, ok := r.docs[key]; ok {
		return doc, nil
	}
	doc := &entity.UserSettings{
		ID:          uuid.New(),
		UserID:      userID,
		UserType:    userType,
		Preferences: entity.DefaultPreferences(),
	}
	r.docs[key] = doc

	return doc, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, settings *entity.UserSettings) error {
	r.docs[favKey(settings.UserID, settings.UserType)] = settings

	return nil
}

// fakeTxManager runs the function directly against a factory backed by
// the same in-memory fakes, with no transactional semantics.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

type fakeRepoFactory struct {
	accountRepo *fakeAccountRepo
	productRepo *fakeProductRepo
	cartRepo    *fakeCartRepo
	orderRepo   *fakeOrderRepo
	reviewRepo  *fakeReviewRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

func (f *fakeRepoFactory) NewAccountRepository() repository.AccountRepository { return f.accountRepo }
func (f *fakeRepoFactory) NewProductRepository() repository.ProductRepository { return f.productRepo }
func (f *fakeRepoFactory) NewCartRepository() repository.CartRepository       { return f.cartRepo }
func (f *fakeRepoFactory) NewOrderRepository() repository.OrderRepository     { return f.orderRepo }
func (f *fakeRepoFactory) NewReviewRepository() repository.ReviewRepository   { return f.reviewRepo }

// --- service fakes ---

// fakePasswordHasher marks hashes with a prefix so tests can tell a
// stored hash from a plaintext credential.
type fakePasswordHasher struct {
	hashErr error
}

func (h *fakePasswordHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "$2fake$" + password, nil
}

func (h *fakePasswordHasher) Check(password, hash string) bool {
	return hash == "$2fake$"+password
}

func (h *fakePasswordHasher) IsHash(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

type fakeTokenService struct {
	sessionErr error
	codeErr    error
}

func (s *fakeTokenService) GenerateSessionToken(userID, userType string) (string, error) {
	if s.sessionErr != nil {
		return "", s.sessionErr
	}

	return "session:" + userID + ":" + userType, nil
}

func (s *fakeTokenService) ValidateSessionToken(tokenString string) (*service.SessionClaims, error) {
	parts := strings.Split(tokenString, ":")
	if len(parts) != 3 || parts[0] != "session" {
		return nil, errFakeTokenInvalid
	}

	return &service.SessionClaims{UserID: parts[1], UserType: parts[2]}, nil
}

func (s *fakeTokenService) GenerateCodeToken(email, code string, _ time.Duration) (string, error) {
	if s.codeErr != nil {
		return "", s.codeErr
	}

	return "code:" + email + ":" + code, nil
}

func (s *fakeTokenService) ValidateCodeToken(tokenString string) (*service.CodeClaims, error) {
	parts := strings.Split(tokenString, ":")
	if len(parts) != 3 || parts[0] != "code" {
		return nil, errFakeTokenInvalid
	}

	return &service.CodeClaims{Email: parts[1], Code: parts[2]}, nil
}

func (s *fakeTokenService) GetSessionDuration() time.Duration {
	return time.Hour
}

var errFakeTokenInvalid = errors.New("malformed fake token")

type sentMail struct {
	kind    string
	to      string
	code    string
	orderID string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, to, _, code string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{kind: "verification", to: to, code: code})

	return nil
}

func (m *fakeMailer) SendRecoveryCode(_ context.Context, to, code string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{kind: "recovery", to: to, code: code})

	return nil
}

func (m *fakeMailer) SendPaymentCompleted(_ context.Context, to, _, orderID string, _ decimal.Decimal) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{kind: "payment", to: to, orderID: orderID})

	return nil
}

func (m *fakeMailer) SendOrderStatusUpdate(_ context.Context, to, _, orderID, status string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{kind: "status:" + status, to: to, orderID: orderID})

	return nil
}

type fakePaymentGateway struct {
	charge         *service.Charge
	createErr      error
	captureStatus  string
	captureErr     error
	statusResult   string
	captured       []string
	chargedAmounts []decimal.Decimal
}

func (g *fakePaymentGateway) CreateCharge(_ context.Context, orderID string, amount decimal.Decimal, _ string) (*service.Charge, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.chargedAmounts = append(g.chargedAmounts, amount)
	if g.charge != nil {
		return g.charge, nil
	}

	return &service.Charge{ID: "charge-" + orderID, ApproveURL: "https://pay.example.com/" + orderID}, nil
}

func (g *fakePaymentGateway) CaptureCharge(_ context.Context, chargeID string) (*service.CaptureResult, error) {
	if g.captureErr != nil {
		return nil, g.captureErr
	}
	g.captured = append(g.captured, chargeID)
	status := g.captureStatus
	if status == "" {
		status = service.CaptureStatusCompleted
	}

	return &service.CaptureResult{Status: status}, nil
}

func (g *fakePaymentGateway) GetCharge(_ context.Context, _ string) (*service.CaptureResult, error) {
	status := g.statusResult
	if status == "" {
		status = service.CaptureStatusCompleted
	}

	return &service.CaptureResult{Status: status}, nil
}

type fakeMediaStore struct {
	uploads   map[string]string
	deleted   []string
	uploadErr error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{uploads: make(map[string]string)}
}

func (s *fakeMediaStore) Upload(_ context.Context, key, contentType string, _ io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	url := "https://media.example.com/" + key
	s.uploads[key] = contentType

	return url, nil
}

func (s *fakeMediaStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.uploads, key)

	return nil
}

type fakeCodeImage struct {
	payloads []string
}

func (g *fakeCodeImage) GeneratePNG(payload string, _ int) ([]byte, error) {
	g.payloads = append(g.payloads, payload)

	return []byte("png:" + payload), nil
}
