package usecase

import (
	"context"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
)

// Cart manages the single open cart per user: find-or-create, line
// aggregation and total recomputation.
type Cart struct {
	repo    OrderRepo
	catalog DishCatalog
	cache   DishCache
}

func NewCart(repo OrderRepo, catalog DishCatalog, cache DishCache) *Cart {
	return &Cart{repo: repo, catalog: catalog, cache: cache}
}

// GetOrCreate returns the user's open cart, creating an empty one if needed.
// The stored total is refreshed from the current lines before returning, so
// any drift heals on read.
func (uc *Cart) GetOrCreate(ctx context.Context, userID int64) (*domain.Order, error) {
	cart, err := uc.repo.FindOpenCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return uc.repo.CreateOpenCart(ctx, userID)
	}
	total, err := uc.repo.RefreshTotal(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.TotalCents = total
	return cart, nil
}

// AddLine puts qty units of a dish into the cart. A repeated add increments
// the existing line; the unit price is snapshotted on first insertion only.
func (uc *Cart) AddLine(ctx context.Context, userID, dishID int64, qty int) (*domain.Order, error) {
	if qty < 1 {
		return nil, domain.InvalidInput("quantity must be at least 1")
	}

	dish, err := uc.resolveDish(ctx, dishID)
	if err != nil {
		return nil, err
	}

	cart, err := uc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpsertLine(ctx, cart.ID, dishID, qty, dish.PriceCents); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, cart.ID)
}

// RemoveLine deletes the dish's line entirely, regardless of quantity.
func (uc *Cart) RemoveLine(ctx context.Context, userID, dishID int64) (*domain.Order, error) {
	cart, err := uc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.DeleteLine(ctx, cart.ID, dishID); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, cart.ID)
}

// Clear drops every line from the cart. Idempotent.
func (uc *Cart) Clear(ctx context.Context, userID int64) error {
	cart, err := uc.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return uc.repo.ClearLines(ctx, cart.ID)
}

func (uc *Cart) resolveDish(ctx context.Context, dishID int64) (*domain.Dish, error) {
	if uc.cache != nil {
		if dish, ok, err := uc.cache.Get(ctx, dishID); err == nil && ok {
			return dish, nil
		}
	}
	dish, err := uc.catalog.GetDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, dish) // best-effort
	}
	return dish, nil
}
