package impl

import (
	"context"
	"testing"

	"workbuddy/config"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentServiceFixture struct {
	service     usecase.PaymentUsecase
	orderRepo   *fakeOrderRepo
	cartRepo    *fakeCartRepo
	accountRepo *fakeAccountRepo
	productRepo *fakeProductRepo
	codeRepo    *fakeDiscountCodeRepo
	gateway     *fakePaymentGateway
	mailer      *fakeMailer
}

func createTestPaymentService(t *testing.T) *paymentServiceFixture {
	t.Helper()

	orderRepo := newFakeOrderRepo()
	cartRepo := newFakeCartRepo()
	accountRepo := newFakeAccountRepo()
	productRepo := newFakeProductRepo()
	codeRepo := newFakeDiscountCodeRepo()
	gateway := &fakePaymentGateway{}
	mailer := &fakeMailer{}

	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		accountRepo: accountRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		reviewRepo:  newFakeReviewRepo(),
	}}

	cfg := &config.Config{
		PayPal: &config.PayPalConfig{Currency: "USD"},
	}

	service := NewPaymentService(PaymentServiceParams{
		OrderRepo:   orderRepo,
		CartRepo:    cartRepo,
		AccountRepo: accountRepo,
		CodeRepo:    codeRepo,
		TxManager:   txManager,
		Gateway:     gateway,
		Mailer:      mailer,
		Config:      cfg,
		Logger:      newDiscardLogger(),
	})

	return &paymentServiceFixture{
		service:     service,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		accountRepo: accountRepo,
		productRepo: productRepo,
		codeRepo:    codeRepo,
		gateway:     gateway,
		mailer:      mailer,
	}
}

func seedPendingOrder(t *testing.T, fixture *paymentServiceFixture, buyerID uuid.UUID) *entity.Order {
	t.Helper()

	order := &entity.Order{
		UserID:      buyerID,
		Status:      entity.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("75.00"),
		PaymentInfo: entity.PaymentInfo{
			Method: "paypal",
			Status: entity.PaymentStatusPending,
		},
	}
	require.NoError(t, fixture.orderRepo.Create(context.Background(), order))

	return order
}

func TestPaymentService_CreatePayment_Success(t *testing.T) {
	fixture := createTestPaymentService(t)

	order := seedPendingOrder(t, fixture, uuid.New())

	output, err := fixture.service.CreatePayment(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, order.ID, output.OrderID)
	assert.NotEmpty(t, output.TransactionID)
	assert.NotEmpty(t, output.ApproveURL)

	stored, err := fixture.orderRepo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, output.TransactionID, stored.PaymentInfo.TransactionID)
}

func TestPaymentService_CreatePayment_NotPending(t *testing.T) {
	fixture := createTestPaymentService(t)

	order := seedPendingOrder(t, fixture, uuid.New())
	order.PaymentInfo.Status = entity.PaymentStatusCompleted
	require.NoError(t, fixture.orderRepo.Update(context.Background(), order))

	_, err := fixture.service.CreatePayment(context.Background(), order.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentNotPending))
}

func TestPaymentService_CreatePayment_GatewayFailure(t *testing.T) {
	fixture := createTestPaymentService(t)
	fixture.gateway.createErr = errors.New("provider unavailable")

	order := seedPendingOrder(t, fixture, uuid.New())

	_, err := fixture.service.CreatePayment(context.Background(), order.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentGatewayFailed))

	// The provider failure reaches the caller in the error details.
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "provider unavailable")
}

func TestPaymentService_CreatePayment_ComputesMissingTotal(t *testing.T) {
	fixture := createTestPaymentService(t)

	product := seedProduct(t, fixture.productRepo, "12.50")
	cart := &entity.Cart{
		ClientID: uuid.New(),
		Lines: []entity.CartLine{
			{ProductID: product.ID, Quantity: 2, Product: product},
		},
		State: "active",
	}
	require.NoError(t, fixture.cartRepo.Create(context.Background(), cart))

	order := &entity.Order{
		CartID: cart.ID,
		UserID: cart.ClientID,
		Status: entity.OrderStatusPending,
		PaymentInfo: entity.PaymentInfo{
			Method: "paypal",
			Status: entity.PaymentStatusPending,
		},
	}
	require.NoError(t, fixture.orderRepo.Create(context.Background(), order))

	_, err := fixture.service.CreatePayment(context.Background(), order.ID)

	require.NoError(t, err)
	require.Len(t, fixture.gateway.chargedAmounts, 1)
	assert.True(t, fixture.gateway.chargedAmounts[0].Equal(decimal.RequireFromString("25.00")),
		"charged %s", fixture.gateway.chargedAmounts[0])

	stored, err := fixture.orderRepo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("25.00")), "total %s", stored.TotalAmount)
}

func TestPaymentService_CreatePayment_UnknownOrder(t *testing.T) {
	fixture := createTestPaymentService(t)

	_, err := fixture.service.CreatePayment(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestPaymentService_CapturePayment_Success(t *testing.T) {
	fixture := createTestPaymentService(t)

	buyer := seedClient(t, fixture.accountRepo, "buyer@workbuddy.test", "pass")
	order := seedPendingOrder(t, fixture, buyer.ID)
	order.PaymentInfo.TransactionID = "charge-1"
	require.NoError(t, fixture.orderRepo.Update(context.Background(), order))

	got, err := fixture.service.CapturePayment(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, got.Status)
	assert.Equal(t, entity.PaymentStatusCompleted, got.PaymentInfo.Status)
	require.NotNil(t, got.PaymentInfo.PaymentDate)

	require.Len(t, fixture.mailer.sent, 1)
	assert.Equal(t, "payment", fixture.mailer.sent[0].kind)
	assert.Equal(t, "buyer@workbuddy.test", fixture.mailer.sent[0].to)

	stored, err := fixture.orderRepo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.NotificationSent)
}

func TestPaymentService_CapturePayment_NoCharge(t *testing.T) {
	fixture := createTestPaymentService(t)

	order := seedPendingOrder(t, fixture, uuid.New())

	_, err := fixture.service.CapturePayment(context.Background(), order.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentNotPending))
	assert.Empty(t, fixture.gateway.captured)
}

func TestPaymentService_CapturePayment_ProviderIncomplete(t *testing.T) {
	fixture := createTestPaymentService(t)
	fixture.gateway.captureStatus = "PENDING"

	order := seedPendingOrder(t, fixture, uuid.New())
	order.PaymentInfo.TransactionID = "charge-1"
	require.NoError(t, fixture.orderRepo.Update(context.Background(), order))

	_, err := fixture.service.CapturePayment(context.Background(), order.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentGatewayFailed))

	stored, err := fixture.orderRepo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
}

func TestPaymentService_CapturePayment_MailedAtMostOnce(t *testing.T) {
	fixture := createTestPaymentService(t)

	buyer := seedClient(t, fixture.accountRepo, "buyer@workbuddy.test", "pass")
	order := seedPendingOrder(t, fixture, buyer.ID)
	order.PaymentInfo.TransactionID = "charge-1"
	order.NotificationSent = true
	require.NoError(t, fixture.orderRepo.Update(context.Background(), order))

	_, err := fixture.service.CapturePayment(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Empty(t, fixture.mailer.sent)
}

func TestPaymentService_CapturePayment_MailFailureIsNotFatal(t *testing.T) {
	fixture := createTestPaymentService(t)
	fixture.mailer.sendErr = errors.New("smtp down")

	buyer := seedClient(t, fixture.accountRepo, "buyer@workbuddy.test", "pass")
	order := seedPendingOrder(t, fixture, buyer.ID)
	order.PaymentInfo.TransactionID = "charge-1"
	require.NoError(t, fixture.orderRepo.Update(context.Background(), order))

	got, err := fixture.service.CapturePayment(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, got.Status)

	// The flag stays clear so a later capture retry can mail again.
	stored, err := fixture.orderRepo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, stored.NotificationSent)
}

func TestPaymentService_CapturePayment_ResolvesBuyerThroughCart(t *testing.T) {
	fixture := createTestPaymentService(t)

	buyer := seedClient(t, fixture.accountRepo, "buyer@workbuddy.test", "pass")
	cart := &entity.Cart{ClientID: buyer.ID, State: "active"}
	require.NoError(t, fixture.cartRepo.Create(context.Background(), cart))

	// Order whose user reference does not resolve to an account.
	order := &entity.Order{
		UserID:      uuid.New(),
		CartID:      cart.ID,
		Status:      entity.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("10.00"),
		PaymentInfo: entity.PaymentInfo{
			Status:        entity.PaymentStatusPending,
			TransactionID: "charge-1",
		},
	}
	require.NoError(t, fixture.orderRepo.Create(context.Background(), order))

	_, err := fixture.service.CapturePayment(context.Background(), order.ID)

	require.NoError(t, err)
	require.Len(t, fixture.mailer.sent, 1)
	assert.Equal(t, "buyer@workbuddy.test", fixture.mailer.sent[0].to)
}

func TestPaymentService_CancelPayment(t *testing.T) {
	fixture := createTestPaymentService(t)

	order := seedPendingOrder(t, fixture, uuid.New())
	order.Status = entity.OrderStatusPaid
	require.NoError(t, fixture.orderRepo.Update(context.Background(), order))

	got, err := fixture.service.CancelPayment(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)
	assert.Equal(t, entity.PaymentStatusFailed, got.PaymentInfo.Status)
}

func TestPaymentService_PaymentStatus(t *testing.T) {
	fixture := createTestPaymentService(t)
	fixture.gateway.statusResult = "CREATED"

	order := seedPendingOrder(t, fixture, uuid.New())
	order.PaymentInfo.TransactionID = "charge-1"
	require.NoError(t, fixture.orderRepo.Update(context.Background(), order))

	output, err := fixture.service.PaymentStatus(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, output.PaymentStatus)
	assert.Equal(t, "CREATED", output.ProviderStatus)
}

func TestPaymentService_PaymentStatus_NoCharge(t *testing.T) {
	fixture := createTestPaymentService(t)

	order := seedPendingOrder(t, fixture, uuid.New())

	output, err := fixture.service.PaymentStatus(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Empty(t, output.ProviderStatus)
}
