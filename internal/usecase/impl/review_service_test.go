package impl

import (
	"context"
	"testing"

	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewServiceFixture struct {
	service     usecase.ReviewUsecase
	reviewRepo  *fakeReviewRepo
	productRepo *fakeProductRepo
}

func createTestReviewService(t *testing.T) *reviewServiceFixture {
	t.Helper()

	reviewRepo := newFakeReviewRepo()
	productRepo := newFakeProductRepo()

	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		accountRepo: newFakeAccountRepo(),
		productRepo: productRepo,
		cartRepo:    newFakeCartRepo(),
		orderRepo:   newFakeOrderRepo(),
		reviewRepo:  reviewRepo,
	}}

	service := NewReviewService(ReviewServiceParams{
		ReviewRepo:  reviewRepo,
		ProductRepo: productRepo,
		TxManager:   txManager,
		Logger:      newDiscardLogger(),
	})

	return &reviewServiceFixture{
		service:     service,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func reviewInput(clientID, productID uuid.UUID, score int) *usecase.CreateReviewInput {
	return &usecase.CreateReviewInput{
		ClientID:  clientID,
		ProductID: productID,
		Score:     score,
		Comment:   "does the job",
	}
}

func TestReviewService_CreateReview_RecomputesRating(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")

	_, err := fixture.service.CreateReview(context.Background(), reviewInput(uuid.New(), product.ID, 5))
	require.NoError(t, err)

	_, err = fixture.service.CreateReview(context.Background(), reviewInput(uuid.New(), product.ID, 2))
	require.NoError(t, err)

	assert.InDelta(t, 3.5, fixture.productRepo.ratingAvg[product.ID], 0.001)
	assert.Equal(t, 2, fixture.productRepo.ratingCnt[product.ID])
}

func TestReviewService_CreateReview_InvalidScore(t *testing.T) {
	fixture := createTestReviewService(t)

	for _, score := range []int{0, 6, -1} {
		_, err := fixture.service.CreateReview(context.Background(), reviewInput(uuid.New(), uuid.New(), score))

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrReviewScoreInvalid), "score %d", score)
	}
}

func TestReviewService_CreateReview_EmptyComment(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")

	for _, comment := range []string{"", "   "} {
		input := reviewInput(uuid.New(), product.ID, 4)
		input.Comment = comment

		_, err := fixture.service.CreateReview(context.Background(), input)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "comment %q", comment)
	}
}

func TestReviewService_CreateReview_UnknownProduct(t *testing.T) {
	fixture := createTestReviewService(t)

	_, err := fixture.service.CreateReview(context.Background(), reviewInput(uuid.New(), uuid.New(), 4))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestReviewService_CreateReview_Duplicate(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")
	clientID := uuid.New()

	_, err := fixture.service.CreateReview(context.Background(), reviewInput(clientID, product.ID, 4))
	require.NoError(t, err)

	_, err = fixture.service.CreateReview(context.Background(), reviewInput(clientID, product.ID, 1))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReviewAlreadyExists))
}

func TestReviewService_UpdateReview_RecomputesRating(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")
	clientID := uuid.New()

	review, err := fixture.service.CreateReview(context.Background(), reviewInput(clientID, product.ID, 5))
	require.NoError(t, err)

	newScore := 1
	newComment := "broke after a week"
	got, err := fixture.service.UpdateReview(context.Background(), review.ID, clientID, &usecase.UpdateReviewInput{
		Score:   &newScore,
		Comment: &newComment,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, "broke after a week", got.Comment)
	assert.InDelta(t, 1.0, fixture.productRepo.ratingAvg[product.ID], 0.001)
}

func TestReviewService_UpdateReview_PartialLeavesCommentAlone(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")
	clientID := uuid.New()

	input := reviewInput(clientID, product.ID, 3)
	input.Comment = "decent"
	review, err := fixture.service.CreateReview(context.Background(), input)
	require.NoError(t, err)

	newScore := 4
	got, err := fixture.service.UpdateReview(context.Background(), review.ID, clientID, &usecase.UpdateReviewInput{
		Score: &newScore,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, got.Score)
	assert.Equal(t, "decent", got.Comment)
}

func TestReviewService_UpdateReview_NotOwned(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")

	review, err := fixture.service.CreateReview(context.Background(), reviewInput(uuid.New(), product.ID, 5))
	require.NoError(t, err)

	newScore := 1
	_, err = fixture.service.UpdateReview(context.Background(), review.ID, uuid.New(), &usecase.UpdateReviewInput{
		Score: &newScore,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReviewNotOwned))
}

func TestReviewService_UpdateReview_StaffMayModerate(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")

	review, err := fixture.service.CreateReview(context.Background(), reviewInput(uuid.New(), product.ID, 5))
	require.NoError(t, err)

	newScore := 2
	got, err := fixture.service.UpdateReview(context.Background(), review.ID, uuid.Nil, &usecase.UpdateReviewInput{
		Score: &newScore,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got.Score)
}

func TestReviewService_UpdateReview_NotFound(t *testing.T) {
	fixture := createTestReviewService(t)

	newScore := 3
	_, err := fixture.service.UpdateReview(context.Background(), uuid.New(), uuid.Nil, &usecase.UpdateReviewInput{
		Score: &newScore,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReviewNotFound))
}

func TestReviewService_DeleteReview_ZeroesRatingWhenLastOneGoes(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")
	clientID := uuid.New()

	review, err := fixture.service.CreateReview(context.Background(), reviewInput(clientID, product.ID, 5))
	require.NoError(t, err)

	require.NoError(t, fixture.service.DeleteReview(context.Background(), review.ID, clientID))

	assert.Zero(t, fixture.productRepo.ratingAvg[product.ID])
	assert.Zero(t, fixture.productRepo.ratingCnt[product.ID])
}

func TestReviewService_DeleteReview_NotOwned(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")

	review, err := fixture.service.CreateReview(context.Background(), reviewInput(uuid.New(), product.ID, 5))
	require.NoError(t, err)

	err = fixture.service.DeleteReview(context.Background(), review.ID, uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReviewNotOwned))
	assert.Equal(t, 1, fixture.productRepo.ratingCnt[product.ID])
}

func TestReviewService_ListProductReviews(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")
	other := seedProduct(t, fixture.productRepo, "20.00")

	for _, productID := range []uuid.UUID{product.ID, product.ID, other.ID} {
		_, err := fixture.service.CreateReview(context.Background(), reviewInput(uuid.New(), productID, 4))
		require.NoError(t, err)
	}

	reviews, err := fixture.service.ListProductReviews(context.Background(), product.ID)

	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestReviewService_ListClientReviews(t *testing.T) {
	fixture := createTestReviewService(t)

	product := seedProduct(t, fixture.productRepo, "10.00")
	other := seedProduct(t, fixture.productRepo, "20.00")
	clientID := uuid.New()

	for _, productID := range []uuid.UUID{product.ID, other.ID} {
		_, err := fixture.service.CreateReview(context.Background(), reviewInput(clientID, productID, 4))
		require.NoError(t, err)
	}

	reviews, err := fixture.service.ListClientReviews(context.Background(), clientID)

	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
