package postgres

import (
	"context"

	"workbuddy/internal/domain/entity"
	domainerrors "workbuddy/internal/domain/errors"
	"workbuddy/internal/domain/repository"
	"workbuddy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultOrderPageSize = 20

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// FindByID retrieves an order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// List returns all orders, newest first.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// ListByUser returns a page of the user's orders matching the filter,
// newest first, together with the total match count.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at <= ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultOrderPageSize
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var orderModels []*model.OrderModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// Create persists a new order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order references unknown cart or user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrShippingAddressIncomplete
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// Update modifies an existing order.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"shipping_street":        orderM.ShippingStreet,
			"shipping_city":          orderM.ShippingCity,
			"shipping_state":         orderM.ShippingState,
			"shipping_postal_code":   orderM.ShippingPostalCode,
			"payment_method":         orderM.PaymentMethod,
			"payment_status":         orderM.PaymentStatus,
			"payment_transaction_id": orderM.PaymentTransactionID,
			"payment_date":           orderM.PaymentDate,
			"status":                 orderM.Status,
			"total_amount":           orderM.TotalAmount,
			"notification_sent":      orderM.NotificationSent,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes the order.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OrderModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:       data.ID,
		CartID:   data.CartID,
		UserID:   data.UserID,
		UserType: entity.UserType(data.UserType),
		ShippingAddress: entity.ShippingAddress{
			Street:     data.ShippingStreet,
			City:       data.ShippingCity,
			State:      data.ShippingState,
			PostalCode: data.ShippingPostalCode,
		},
		PaymentInfo: entity.PaymentInfo{
			Method:        data.PaymentMethod,
			Status:        entity.PaymentStatus(data.PaymentStatus),
			TransactionID: data.PaymentTransactionID,
			PaymentDate:   data.PaymentDate,
		},
		Status:           entity.OrderStatus(data.Status),
		TotalAmount:      data.TotalAmount,
		NotificationSent: data.NotificationSent,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:                   data.ID,
		CartID:               data.CartID,
		UserID:               data.UserID,
		UserType:             string(data.UserType),
		ShippingStreet:       data.ShippingAddress.Street,
		ShippingCity:         data.ShippingAddress.City,
		ShippingState:        data.ShippingAddress.State,
		ShippingPostalCode:   data.ShippingAddress.PostalCode,
		PaymentMethod:        data.PaymentInfo.Method,
		PaymentStatus:        string(data.PaymentInfo.Status),
		PaymentTransactionID: data.PaymentInfo.TransactionID,
		PaymentDate:          data.PaymentInfo.PaymentDate,
		Status:               string(data.Status),
		TotalAmount:          data.TotalAmount,
		NotificationSent:     data.NotificationSent,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}
