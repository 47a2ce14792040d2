package impl

import (
	"context"
	"log/slog"
	"path"

	deliverycontext "workbuddy/internal/delivery/context"
	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
	mediaStore  service.MediaStore
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	MediaStore  service.MediaStore
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: params.ProductRepo,
		mediaStore:  params.MediaStore,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns the catalog, optionally filtered by category.
func (srv *catalogService) ListProducts(ctx context.Context, category string) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx, category)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct retrieves one product.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// CreateProduct stores a product, uploading its image first when one is
// attached.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("name", input.Name))

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
	}

	if input.Image != nil {
		url, key, err := srv.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = url
		product.ImageKey = key
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if product.ImageKey != "" {
			// Best effort; an orphaned object is harmless.
			_ = srv.mediaStore.Delete(ctx, product.ImageKey)
		}

		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// UpdateProduct applies the non-nil input fields, replacing the stored
// image when a new one is uploaded.
func (srv *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	oldKey := ""
	if input.Image != nil {
		url, key, err := srv.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		oldKey = product.ImageKey
		product.ImageURL = url
		product.ImageKey = key
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product update failed")
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	if oldKey != "" {
		if err := srv.mediaStore.Delete(ctx, oldKey); err != nil {
			srv.log(ctx).Warn("Failed to delete replaced product image", slog.String("key", oldKey), slog.Any("error", err))
		}
	}

	return product, nil
}

// DeleteProduct removes the product and its stored image.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	if product.ImageKey != "" {
		if err := srv.mediaStore.Delete(ctx, product.ImageKey); err != nil {
			srv.log(ctx).Warn("Failed to delete product image", slog.String("key", product.ImageKey), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))

	return nil
}

func (srv *catalogService) storeImage(ctx context.Context, image *usecase.ProductImage) (url, key string, err error) {
	key = "products/" + uuid.New().String() + path.Ext(image.Filename)

	url, err = srv.mediaStore.Upload(ctx, key, image.ContentType, image.Reader)
	if err != nil {
		return "", "", errors.Wrap(domainerrors.ErrImageUploadFailed, err.Error())
	}

	return url, key, nil
}
