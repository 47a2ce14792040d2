package impl

import (
	"context"
	"log/slog"
	"strings"

	"workbuddy/config"
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

// discountService implements the DiscountCodeUsecase interface.
type discountService struct {
	codeRepo  repository.DiscountCodeRepository
	codeImage service.CodeImageService
	qrCfg     *config.QRCodeConfig
	logger    *slog.Logger
}

// DiscountServiceParams holds dependencies for discountService, injected by Fx.
type DiscountServiceParams struct {
	fx.In

	CodeRepo  repository.DiscountCodeRepository
	CodeImage service.CodeImageService
	Config    *config.Config
	Logger    *slog.Logger
}

// NewDiscountService is the constructor for discountService.
func NewDiscountService(params DiscountServiceParams) usecase.DiscountCodeUsecase {
	var qrCfg *config.QRCodeConfig
	if params.Config != nil {
		qrCfg = params.Config.QRCode
	}

	return &discountService{
		codeRepo:  params.CodeRepo,
		codeImage: params.CodeImage,
		qrCfg:     qrCfg,
		logger:    params.Logger,
	}
}

func (srv *discountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCodes returns all discount codes.
func (srv *discountService) ListCodes(ctx context.Context) ([]*entity.DiscountCode, error) {
	codes, err := srv.codeRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list discount codes")
	}

	return codes, nil
}

// GetCode retrieves one discount code.
func (srv *discountService) GetCode(ctx context.Context, id uuid.UUID) (*entity.DiscountCode, error) {
	dc, err := srv.codeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountCodeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrDiscountCodeNotFound, "discount code lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find discount code")
	}

	return dc, nil
}

// CreateCode stores a new discount code.
func (srv *discountService) CreateCode(ctx context.Context, input *usecase.DiscountCodeInput) (*entity.DiscountCode, error) {
	if err := validateDiscountInput(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Creating discount code", slog.String("code", input.Code))

	dc := &entity.DiscountCode{
		Code:       strings.TrimSpace(input.Code),
		Percentage: input.Percentage,
		IsActive:   input.IsActive,
		ClientIDs:  input.ClientIDs,
	}

	if err := srv.codeRepo.Create(ctx, dc); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, errors.Wrap(domainerrors.ErrDiscountCodeExists, "discount code creation failed")
		}

		return nil, errors.Wrap(err, "failed to create discount code")
	}

	return dc, nil
}

// UpdateCode replaces the mutable fields of a discount code, including
// its client eligibility list.
func (srv *discountService) UpdateCode(ctx context.Context, id uuid.UUID, input *usecase.DiscountCodeInput) (*entity.DiscountCode, error) {
	if err := validateDiscountInput(input); err != nil {
		return nil, err
	}

	dc, err := srv.GetCode(ctx, id)
	if err != nil {
		return nil, err
	}

	dc.Code = strings.TrimSpace(input.Code)
	dc.Percentage = input.Percentage
	dc.IsActive = input.IsActive
	dc.ClientIDs = input.ClientIDs

	if err := srv.codeRepo.Update(ctx, dc); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, errors.Wrap(domainerrors.ErrDiscountCodeExists, "discount code update failed")
		}

		return nil, errors.Wrap(err, "failed to update discount code")
	}

	return dc, nil
}

// DeleteCode removes a discount code. Carts still referencing it simply
// stop discounting on the next total computation.
func (srv *discountService) DeleteCode(ctx context.Context, id uuid.UUID) error {
	if err := srv.codeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDiscountCodeNotFound) {
			return errors.Wrap(domainerrors.ErrDiscountCodeNotFound, "discount code delete failed")
		}

		return errors.Wrap(err, "failed to delete discount code")
	}

	srv.log(ctx).Info("Discount code deleted", slog.Any("codeID", id))

	return nil
}

// CodeImage renders the discount code as a PNG QR image.
func (srv *discountService) CodeImage(ctx context.Context, id uuid.UUID, size int) ([]byte, error) {
	dc, err := srv.GetCode(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := dc.Code
	if srv.qrCfg != nil && srv.qrCfg.BaseURL != "" {
		payload = strings.TrimSuffix(srv.qrCfg.BaseURL, "/") + "/" + dc.Code
	}
	if size <= 0 && srv.qrCfg != nil {
		size = srv.qrCfg.Size
	}

	png, err := srv.codeImage.GeneratePNG(payload, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render discount code image")
	}

	return png, nil
}

func validateDiscountInput(input *usecase.DiscountCodeInput) error {
	if strings.TrimSpace(input.Code) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "discount code must not be empty")
	}
	if input.Percentage < 0 || input.Percentage > 100 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "discount percentage must be between 0 and 100")
	}

	return nil
}
