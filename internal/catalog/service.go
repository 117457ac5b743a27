package catalog

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AvailableMenu returns the in-stock items of a category. Out-of-stock
// items are excluded here, at the source, so they never reach a
// selection in the first place.
func (s *Service) AvailableMenu(
	ctx context.Context,
	category Category,
) ([]MenuItem, error) {

	items, err := s.repo.GetMenu(ctx, category)
	if err != nil {
		return nil, err
	}

	available := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if item.InStock {
			available = append(available, item)
		}
	}
	return available, nil
}

func (s *Service) Item(ctx context.Context, name string) (*MenuItem, error) {
	return s.repo.GetItem(ctx, name)
}

func (s *Service) Price(ctx context.Context, name string) (float64, error) {
	return s.repo.GetPrice(ctx, name)
}

func (s *Service) BaseItemID(ctx context.Context, name string) (int, error) {
	return s.repo.GetBaseItemID(ctx, name)
}

func (s *Service) FoodID(ctx context.Context, name string) (int, error) {
	return s.repo.GetFoodID(ctx, name)
}

func (s *Service) PremiumEntrees(ctx context.Context) ([]string, error) {
	return s.repo.GetPremiumEntrees(ctx)
}
