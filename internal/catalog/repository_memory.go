package catalog

import "context"

// InMemoryRepository backs tests and local development without Postgres.
type InMemoryRepository struct {
	items     map[string]MenuItem // keyed by name
	baseItems map[string]struct {
		ID    int
		Price float64
	}
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items: make(map[string]MenuItem),
		baseItems: make(map[string]struct {
			ID    int
			Price float64
		}),
	}
}

func (r *InMemoryRepository) AddItem(item MenuItem) {
	r.items[item.Name] = item
}

func (r *InMemoryRepository) AddBaseItem(name string, id int, price float64) {
	r.baseItems[name] = struct {
		ID    int
		Price float64
	}{ID: id, Price: price}
}

func (r *InMemoryRepository) GetMenu(
	ctx context.Context,
	category Category,
) ([]MenuItem, error) {

	var items []MenuItem
	for _, item := range r.items {
		if item.Category == category {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *InMemoryRepository) GetItem(
	ctx context.Context,
	name string,
) (*MenuItem, error) {

	item, ok := r.items[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *InMemoryRepository) GetPrice(
	ctx context.Context,
	name string,
) (float64, error) {

	if base, ok := r.baseItems[name]; ok {
		return base.Price, nil
	}
	if item, ok := r.items[name]; ok {
		return item.BasePrice, nil
	}
	return 0, ErrNotFound
}

func (r *InMemoryRepository) GetBaseItemID(
	ctx context.Context,
	name string,
) (int, error) {

	base, ok := r.baseItems[name]
	if !ok {
		return 0, ErrNotFound
	}
	return base.ID, nil
}

func (r *InMemoryRepository) GetFoodID(
	ctx context.Context,
	name string,
) (int, error) {

	item, ok := r.items[name]
	if !ok {
		return 0, ErrNotFound
	}
	return item.FoodID, nil
}

func (r *InMemoryRepository) GetPremiumEntrees(
	ctx context.Context,
) ([]string, error) {

	var names []string
	for _, item := range r.items {
		if item.Category == CategoryEntree && item.IsPremium {
			names = append(names, item.Name)
		}
	}
	return names, nil
}
