package impl

import (
	"context"
	"testing"
	"time"

	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	service     usecase.OrderUsecase
	orderRepo   *fakeOrderRepo
	cartRepo    *fakeCartRepo
	accountRepo *fakeAccountRepo
	productRepo *fakeProductRepo
	codeRepo    *fakeDiscountCodeRepo
	mailer      *fakeMailer
}

func createTestOrderService(t *testing.T) *orderServiceFixture {
	t.Helper()

	orderRepo := newFakeOrderRepo()
	cartRepo := newFakeCartRepo()
	accountRepo := newFakeAccountRepo()
	productRepo := newFakeProductRepo()
	codeRepo := newFakeDiscountCodeRepo()
	mailer := &fakeMailer{}

	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		accountRepo: accountRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		reviewRepo:  newFakeReviewRepo(),
	}}

	service := NewOrderService(OrderServiceParams{
		OrderRepo:   orderRepo,
		CartRepo:    cartRepo,
		AccountRepo: accountRepo,
		CodeRepo:    codeRepo,
		TxManager:   txManager,
		Mailer:      mailer,
		Logger:      newDiscardLogger(),
	})

	return &orderServiceFixture{
		service:     service,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		accountRepo: accountRepo,
		productRepo: productRepo,
		codeRepo:    codeRepo,
		mailer:      mailer,
	}
}

func completeAddress() usecase.ShippingAddressInput {
	return usecase.ShippingAddressInput{
		Street:     "1 Main St",
		City:       "San Salvador",
		State:      "SS",
		PostalCode: "1101",
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	fixture := createTestOrderService(t)

	product := seedProduct(t, fixture.productRepo, "27.50")
	cart := &entity.Cart{
		ClientID: uuid.New(),
		Lines: []entity.CartLine{
			{ProductID: product.ID, Quantity: 2, Product: product},
		},
		State: "active",
	}
	require.NoError(t, fixture.cartRepo.Create(context.Background(), cart))

	order, err := fixture.service.CreateOrder(context.Background(), &usecase.CreateOrderInput{
		CartID:          cart.ID,
		UserID:          cart.ClientID,
		UserType:        entity.UserTypeClient,
		ShippingAddress: completeAddress(),
		PaymentMethod:   "paypal",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentInfo.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("55.00")), "total %s", order.TotalAmount)
}

func TestOrderService_CreateOrder_IgnoresStaleStoredTotal(t *testing.T) {
	fixture := createTestOrderService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")
	cart := &entity.Cart{
		ClientID: uuid.New(),
		Lines: []entity.CartLine{
			{ProductID: product.ID, Quantity: 3, Product: product},
		},
		Total: decimal.RequireFromString("0.01"),
		State: "active",
	}
	require.NoError(t, fixture.cartRepo.Create(context.Background(), cart))

	order, err := fixture.service.CreateOrder(context.Background(), &usecase.CreateOrderInput{
		CartID:          cart.ID,
		UserID:          cart.ClientID,
		UserType:        entity.UserTypeClient,
		ShippingAddress: completeAddress(),
		PaymentMethod:   "paypal",
	})

	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("30.00")), "total %s", order.TotalAmount)
}

func TestOrderService_CreateOrder_AppliesDiscountCode(t *testing.T) {
	fixture := createTestOrderService(t)

	product := seedProduct(t, fixture.productRepo, "50.00")
	code := &entity.DiscountCode{Code: "SAVE20", Percentage: 20, IsActive: true}
	require.NoError(t, fixture.codeRepo.Create(context.Background(), code))

	cart := &entity.Cart{
		ClientID: uuid.New(),
		Lines: []entity.CartLine{
			{ProductID: product.ID, Quantity: 2, Product: product},
		},
		DiscountCodeID: &code.ID,
		State:          "active",
	}
	require.NoError(t, fixture.cartRepo.Create(context.Background(), cart))

	order, err := fixture.service.CreateOrder(context.Background(), &usecase.CreateOrderInput{
		CartID:          cart.ID,
		UserID:          cart.ClientID,
		UserType:        entity.UserTypeClient,
		ShippingAddress: completeAddress(),
		PaymentMethod:   "paypal",
	})

	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("80.00")), "total %s", order.TotalAmount)
}

func TestOrderService_CreateOrder_IncompleteAddress(t *testing.T) {
	fixture := createTestOrderService(t)

	address := completeAddress()
	address.PostalCode = ""

	_, err := fixture.service.CreateOrder(context.Background(), &usecase.CreateOrderInput{
		CartID:          uuid.New(),
		UserID:          uuid.New(),
		ShippingAddress: address,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShippingAddressIncomplete))
}

func TestOrderService_CreateOrder_UnknownCart(t *testing.T) {
	fixture := createTestOrderService(t)

	_, err := fixture.service.CreateOrder(context.Background(), &usecase.CreateOrderInput{
		CartID:          uuid.New(),
		UserID:          uuid.New(),
		ShippingAddress: completeAddress(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartNotFound))
}

func TestOrderService_CreateOrderForClient_Success(t *testing.T) {
	fixture := createTestOrderService(t)

	product := seedProduct(t, fixture.productRepo, "12.50")
	clientID := uuid.New()

	order, err := fixture.service.CreateOrderForClient(context.Background(), &usecase.AdminCreateOrderInput{
		ClientID:        clientID,
		Items:           []usecase.CartItemInput{{ProductID: product.ID, Quantity: 4}},
		ShippingAddress: completeAddress(),
		PaymentMethod:   "paypal",
	})

	require.NoError(t, err)
	assert.Equal(t, clientID, order.UserID)
	assert.Equal(t, entity.UserTypeClient, order.UserType)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("50.00")), "total %s", order.TotalAmount)

	cart, err := fixture.cartRepo.FindByID(context.Background(), order.CartID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
}

func TestOrderService_CreateOrderForClient_UnknownProduct(t *testing.T) {
	fixture := createTestOrderService(t)

	_, err := fixture.service.CreateOrderForClient(context.Background(), &usecase.AdminCreateOrderInput{
		ClientID:        uuid.New(),
		Items:           []usecase.CartItemInput{{ProductID: uuid.New(), Quantity: 1}},
		ShippingAddress: completeAddress(),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
	assert.Empty(t, fixture.cartRepo.carts)
}

func TestOrderService_UpdateStatus_LegalTransition(t *testing.T) {
	fixture := createTestOrderService(t)

	buyer := seedClient(t, fixture.accountRepo, "buyer@workbuddy.test", "pass")
	order := &entity.Order{
		UserID: buyer.ID,
		Status: entity.OrderStatusPaid,
	}
	require.NoError(t, fixture.orderRepo.Create(context.Background(), order))

	got, err := fixture.service.UpdateStatus(context.Background(), order.ID, entity.OrderStatusProcessing)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, got.Status)

	require.Len(t, fixture.mailer.sent, 1)
	assert.Equal(t, "status:processing", fixture.mailer.sent[0].kind)
	assert.Equal(t, "buyer@workbuddy.test", fixture.mailer.sent[0].to)
}

func TestOrderService_UpdateStatus_IllegalTransition(t *testing.T) {
	fixture := createTestOrderService(t)

	order := &entity.Order{Status: entity.OrderStatusDelivered}
	require.NoError(t, fixture.orderRepo.Create(context.Background(), order))

	_, err := fixture.service.UpdateStatus(context.Background(), order.ID, entity.OrderStatusPending)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderTransition))
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	fixture := createTestOrderService(t)

	_, err := fixture.service.UpdateStatus(context.Background(), uuid.New(), entity.OrderStatus("misplaced"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderTransition))
}

func TestOrderService_UpdateStatus_MailFailureIsNotFatal(t *testing.T) {
	fixture := createTestOrderService(t)
	fixture.mailer.sendErr = errors.New("smtp down")

	order := &entity.Order{Status: entity.OrderStatusPending, UserID: uuid.New()}
	require.NoError(t, fixture.orderRepo.Create(context.Background(), order))

	got, err := fixture.service.UpdateStatus(context.Background(), order.ID, entity.OrderStatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)
}

func TestOrderService_DeleteOrder_OnlyPending(t *testing.T) {
	fixture := createTestOrderService(t)

	pending := &entity.Order{Status: entity.OrderStatusPending}
	require.NoError(t, fixture.orderRepo.Create(context.Background(), pending))
	shipped := &entity.Order{Status: entity.OrderStatusShipped}
	require.NoError(t, fixture.orderRepo.Create(context.Background(), shipped))

	require.NoError(t, fixture.service.DeleteOrder(context.Background(), pending.ID))

	err := fixture.service.DeleteOrder(context.Background(), shipped.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotDeletable))
}

func TestOrderService_ListUserOrders_Paginates(t *testing.T) {
	fixture := createTestOrderService(t)

	userID := uuid.New()
	for range 5 {
		order := &entity.Order{UserID: userID, Status: entity.OrderStatusPending, CreatedAt: time.Now()}
		require.NoError(t, fixture.orderRepo.Create(context.Background(), order))
	}

	output, err := fixture.service.ListUserOrders(context.Background(), userID, repository.OrderFilter{
		Page:  2,
		Limit: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), output.Total)
	assert.Equal(t, 2, output.Page)
	assert.Equal(t, 3, output.TotalPages)
	assert.Len(t, output.Orders, 2)
}

func TestOrderService_ListUserOrders_DefaultsPageAndLimit(t *testing.T) {
	fixture := createTestOrderService(t)

	output, err := fixture.service.ListUserOrders(context.Background(), uuid.New(), repository.OrderFilter{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Page)
	assert.Zero(t, output.Total)
	assert.Zero(t, output.TotalPages)
}
