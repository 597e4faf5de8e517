package usecase

import (
	"context"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/stretchr/testify/mock"
)

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) FindOpenCart(ctx context.Context, userID int64) (*domain.Order, error) {
	args := m.Called(ctx, userID)
	return orderArg(args.Get(0)), args.Error(1)
}

func (m *orderRepoMock) CreateOpenCart(ctx context.Context, userID int64) (*domain.Order, error) {
	args := m.Called(ctx, userID)
	return orderArg(args.Get(0)), args.Error(1)
}

func (m *orderRepoMock) RefreshTotal(ctx context.Context, orderID int64) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *orderRepoMock) UpsertLine(ctx context.Context, orderID, dishID int64, qty int, unitPriceCents int64) error {
	return m.Called(ctx, orderID, dishID, qty, unitPriceCents).Error(0)
}

func (m *orderRepoMock) DeleteLine(ctx context.Context, orderID, dishID int64) error {
	return m.Called(ctx, orderID, dishID).Error(0)
}

func (m *orderRepoMock) ClearLines(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *orderRepoMock) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	return orderArg(args.Get(0)), args.Error(1)
}

func (m *orderRepoMock) PlaceIf(ctx context.Context, orderID int64, address string) (bool, error) {
	args := m.Called(ctx, orderID, address)
	return args.Bool(0), args.Error(1)
}

func (m *orderRepoMock) ClaimIf(ctx context.Context, orderID, courierID int64) (bool, error) {
	args := m.Called(ctx, orderID, courierID)
	return args.Bool(0), args.Error(1)
}

func (m *orderRepoMock) UpdateStatusIf(ctx context.Context, orderID int64, from, to domain.Status) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *orderRepoMock) CompleteIf(ctx context.Context, orderID int64) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *orderRepoMock) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return listArg(args.Get(0)), args.Error(1)
}

func (m *orderRepoMock) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return listArg(args.Get(0)), args.Error(1)
}

func (m *orderRepoMock) ListByCourier(ctx context.Context, courierID int64) ([]domain.Order, error) {
	args := m.Called(ctx, courierID)
	return listArg(args.Get(0)), args.Error(1)
}

func orderArg(v any) *domain.Order {
	if v == nil {
		return nil
	}
	return v.(*domain.Order)
}

func listArg(v any) []domain.Order {
	if v == nil {
		return nil
	}
	return v.([]domain.Order)
}

type userDirectoryMock struct{ mock.Mock }

func (m *userDirectoryMock) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type dishCatalogMock struct{ mock.Mock }

func (m *dishCatalogMock) GetDish(ctx context.Context, id int64) (*domain.Dish, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Dish), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *dishCatalogMock) ListDishes(ctx context.Context, restaurantID int64) ([]domain.Dish, error) {
	args := m.Called(ctx, restaurantID)
	if v := args.Get(0); v != nil {
		return v.([]domain.Dish), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *dishCatalogMock) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *dishCatalogMock) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]domain.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

type dishCacheMock struct{ mock.Mock }

func (m *dishCacheMock) Get(ctx context.Context, dishID int64) (*domain.Dish, bool, error) {
	args := m.Called(ctx, dishID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Dish), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *dishCacheMock) Set(ctx context.Context, dish *domain.Dish) error {
	return m.Called(ctx, dish).Error(0)
}

type eventPublisherMock struct{ mock.Mock }

func (m *eventPublisherMock) PublishStatusChanged(ctx context.Context, msg StatusChangedMsg) error {
	return m.Called(ctx, msg).Error(0)
}

type dispatchQueueMock struct{ mock.Mock }

func (m *dispatchQueueMock) PublishPlaced(ctx context.Context, msg OrderPlacedMsg) error {
	return m.Called(ctx, msg).Error(0)
}

type statusCacheMock struct{ mock.Mock }

func (m *statusCacheMock) SetStatus(ctx context.Context, orderID int64, status string) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *statusCacheMock) GetStatus(ctx context.Context, orderID int64) (string, bool, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Bool(1), args.Error(2)
}
