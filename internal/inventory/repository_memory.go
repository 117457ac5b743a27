package inventory

import (
	"context"
	"sync"
)

// InMemoryRepository backs tests and local development without Postgres.
type InMemoryRepository struct {
	mu        sync.Mutex
	food      map[int]*FoodLevel
	itemTypes map[int]*ItemTypeLevel
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		food:      make(map[int]*FoodLevel),
		itemTypes: make(map[int]*ItemTypeLevel),
	}
}

func (r *InMemoryRepository) SetFoodLevel(foodID int, name string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.food[foodID] = &FoodLevel{FoodID: foodID, Name: name, Quantity: quantity}
}

func (r *InMemoryRepository) SetItemTypeLevel(itemID int, name string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itemTypes[itemID] = &ItemTypeLevel{ItemID: itemID, Name: name, Quantity: quantity}
}

func (r *InMemoryRepository) DecrementByFood(ctx context.Context, foodID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	level, ok := r.food[foodID]
	if !ok {
		return ErrUnknownReference
	}
	level.Quantity--
	return nil
}

func (r *InMemoryRepository) DecrementByItemType(ctx context.Context, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	level, ok := r.itemTypes[itemID]
	if !ok {
		return ErrUnknownReference
	}
	level.Quantity--
	return nil
}

func (r *InMemoryRepository) ListFoodLevels(ctx context.Context) ([]FoodLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var levels []FoodLevel
	for _, level := range r.food {
		levels = append(levels, *level)
	}
	return levels, nil
}

func (r *InMemoryRepository) ListItemTypeLevels(ctx context.Context) ([]ItemTypeLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var levels []ItemTypeLevel
	for _, level := range r.itemTypes {
		levels = append(levels, *level)
	}
	return levels, nil
}
