package impl

import (
	"context"
	"testing"

	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartServiceFixture struct {
	service     usecase.CartUsecase
	cartRepo    *fakeCartRepo
	productRepo *fakeProductRepo
	codeRepo    *fakeDiscountCodeRepo
}

func createTestCartService(t *testing.T) *cartServiceFixture {
	t.Helper()

	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo()
	codeRepo := newFakeDiscountCodeRepo()

	service := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		CodeRepo:    codeRepo,
		Logger:      newDiscardLogger(),
	})

	return &cartServiceFixture{
		service:     service,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		codeRepo:    codeRepo,
	}
}

func seedProduct(t *testing.T, repo *fakeProductRepo, price string) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:  "Widget",
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, repo.Create(context.Background(), product))

	return product
}

// seedCart stores a cart whose lines carry resolved product references,
// the shape the repository returns after a preload.
func seedCart(t *testing.T, fixture *cartServiceFixture, clientID uuid.UUID, lines ...entity.CartLine) *entity.Cart {
	t.Helper()

	cart := &entity.Cart{
		ClientID: clientID,
		Lines:    lines,
		State:    "active",
	}
	require.NoError(t, fixture.cartRepo.Create(context.Background(), cart))

	return cart
}

func TestCartService_GetCart_RecomputesTotal(t *testing.T) {
	fixture := createTestCartService(t)

	product := seedProduct(t, fixture.productRepo, "10.50")
	cart := seedCart(t, fixture, uuid.New(), entity.CartLine{
		ProductID: product.ID,
		Quantity:  3,
		Product:   product,
	})

	got, err := fixture.service.GetCart(context.Background(), cart.ID)

	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("31.50")), "total %s", got.Total)
}

func TestCartService_GetCart_NotFound(t *testing.T) {
	fixture := createTestCartService(t)

	_, err := fixture.service.GetCart(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartNotFound))
}

func TestCartService_GetClientCart_NotFound(t *testing.T) {
	fixture := createTestCartService(t)

	_, err := fixture.service.GetClientCart(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartNotFound))
}

func TestCartService_CreateCart_RejectsNonPositiveQuantity(t *testing.T) {
	fixture := createTestCartService(t)

	_, err := fixture.service.CreateCart(context.Background(), &usecase.CreateCartInput{
		ClientID: uuid.New(),
		Items:    []usecase.CartItemInput{{ProductID: uuid.New(), Quantity: 0}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQuantity))
}

func TestCartService_AddItem_MergesQuantities(t *testing.T) {
	fixture := createTestCartService(t)

	product := seedProduct(t, fixture.productRepo, "5.00")
	cart := seedCart(t, fixture, uuid.New(), entity.CartLine{
		ProductID: product.ID,
		Quantity:  2,
		Product:   product,
	})

	got, err := fixture.service.AddItem(context.Background(), cart.ID, &usecase.CartItemInput{
		ProductID: product.ID,
		Quantity:  3,
	})

	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 5, got.Lines[0].Quantity)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("25.00")), "total %s", got.Total)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	fixture := createTestCartService(t)

	cart := seedCart(t, fixture, uuid.New())

	_, err := fixture.service.AddItem(context.Background(), cart.ID, &usecase.CartItemInput{
		ProductID: uuid.New(),
		Quantity:  1,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCartService_UpdateItem_MissingLine(t *testing.T) {
	fixture := createTestCartService(t)

	cart := seedCart(t, fixture, uuid.New())

	_, err := fixture.service.UpdateItem(context.Background(), cart.ID, &usecase.CartItemInput{
		ProductID: uuid.New(),
		Quantity:  2,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartLineNotFound))
}

func TestCartService_RemoveItem(t *testing.T) {
	fixture := createTestCartService(t)

	product := seedProduct(t, fixture.productRepo, "5.00")
	cart := seedCart(t, fixture, uuid.New(), entity.CartLine{
		ProductID: product.ID,
		Quantity:  2,
		Product:   product,
	})

	got, err := fixture.service.RemoveItem(context.Background(), cart.ID, product.ID)

	require.NoError(t, err)
	assert.Empty(t, got.Lines)
	assert.True(t, got.Total.IsZero(), "total %s", got.Total)

	_, err = fixture.service.RemoveItem(context.Background(), cart.ID, product.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartLineNotFound))
}

func TestCartService_ApplyDiscountCode_Success(t *testing.T) {
	fixture := createTestCartService(t)

	clientID := uuid.New()
	product := seedProduct(t, fixture.productRepo, "100.00")
	cart := seedCart(t, fixture, clientID, entity.CartLine{
		ProductID: product.ID,
		Quantity:  1,
		Product:   product,
	})

	dc := &entity.DiscountCode{Code: "SAVE20", Percentage: 20, IsActive: true}
	require.NoError(t, fixture.codeRepo.Create(context.Background(), dc))

	got, err := fixture.service.ApplyDiscountCode(context.Background(), cart.ID, "SAVE20")

	require.NoError(t, err)
	require.NotNil(t, got.DiscountCodeID)
	assert.Equal(t, dc.ID, *got.DiscountCodeID)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("80.00")), "total %s", got.Total)
}

func TestCartService_ApplyDiscountCode_Inactive(t *testing.T) {
	fixture := createTestCartService(t)

	cart := seedCart(t, fixture, uuid.New())
	dc := &entity.DiscountCode{Code: "OLD", Percentage: 10, IsActive: false}
	require.NoError(t, fixture.codeRepo.Create(context.Background(), dc))

	_, err := fixture.service.ApplyDiscountCode(context.Background(), cart.ID, "OLD")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountCodeInactive))
}

func TestCartService_ApplyDiscountCode_NotEligible(t *testing.T) {
	fixture := createTestCartService(t)

	cart := seedCart(t, fixture, uuid.New())
	dc := &entity.DiscountCode{
		Code:       "VIP",
		Percentage: 50,
		IsActive:   true,
		ClientIDs:  []uuid.UUID{uuid.New()},
	}
	require.NoError(t, fixture.codeRepo.Create(context.Background(), dc))

	_, err := fixture.service.ApplyDiscountCode(context.Background(), cart.ID, "VIP")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountCodeNotEligible))
}

func TestCartService_ApplyDiscountCode_Unknown(t *testing.T) {
	fixture := createTestCartService(t)

	cart := seedCart(t, fixture, uuid.New())

	_, err := fixture.service.ApplyDiscountCode(context.Background(), cart.ID, "NOPE")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountCodeNotFound))
}

func TestCartService_Total_SkipsUnresolvableLines(t *testing.T) {
	fixture := createTestCartService(t)

	product := seedProduct(t, fixture.productRepo, "7.25")
	cart := seedCart(t, fixture, uuid.New(),
		entity.CartLine{ProductID: product.ID, Quantity: 2, Product: product},
		entity.CartLine{ProductID: uuid.New(), Quantity: 4, Product: nil},
	)

	got, err := fixture.service.GetCart(context.Background(), cart.ID)

	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("14.50")), "total %s", got.Total)
}

func TestCartService_Total_IgnoresDeletedDiscountCode(t *testing.T) {
	fixture := createTestCartService(t)

	product := seedProduct(t, fixture.productRepo, "40.00")
	missing := uuid.New()
	cart := &entity.Cart{
		ClientID:       uuid.New(),
		Lines:          []entity.CartLine{{ProductID: product.ID, Quantity: 1, Product: product}},
		DiscountCodeID: &missing,
		State:          "active",
	}
	require.NoError(t, fixture.cartRepo.Create(context.Background(), cart))

	got, err := fixture.service.GetCart(context.Background(), cart.ID)

	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("40.00")), "total %s", got.Total)
}

func TestCartService_DeleteCart_NotFound(t *testing.T) {
	fixture := createTestCartService(t)

	err := fixture.service.DeleteCart(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCartNotFound))
}
