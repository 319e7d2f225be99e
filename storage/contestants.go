package storage

import "context"

type ContestantStorage interface {
	Get(ctx context.Context, id string) (*Contestant, error)
	GetAll(ctx context.Context) ([]*Contestant, error)
	GetByCategory(ctx context.Context, categoryID string) ([]*Contestant, error)
	Create(ctx context.Context, contestant *Contestant) error
	Update(ctx context.Context, contestant *Contestant) error
	Delete(ctx context.Context, id string) error
}

type DocumentContestantStorage struct {
	repo listRepository[Contestant]
}

func NewContestantStorage(store DocumentStore) *DocumentContestantStorage {
	return &DocumentContestantStorage{repo: listRepository[Contestant]{
		store:      store,
		collection: CollectionContestants,
		id:         func(c *Contestant) string { return c.ID },
		area:       "CONTESTANT",
	}}
}

func (s *DocumentContestantStorage) Get(ctx context.Context, id string) (*Contestant, error) {
	return s.repo.get(ctx, id)
}

func (s *DocumentContestantStorage) GetAll(ctx context.Context) ([]*Contestant, error) {
	return s.repo.all(ctx)
}

// GetByCategory keeps the stored list order.
func (s *DocumentContestantStorage) GetByCategory(ctx context.Context, categoryID string) ([]*Contestant, error) {
	all, err := s.repo.all(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByCategory(all, categoryID), nil
}

func (s *DocumentContestantStorage) Create(ctx context.Context, contestant *Contestant) error {
	return s.repo.create(ctx, contestant)
}

func (s *DocumentContestantStorage) Update(ctx context.Context, contestant *Contestant) error {
	return s.repo.update(ctx, contestant)
}

func (s *DocumentContestantStorage) Delete(ctx context.Context, id string) error {
	return s.repo.delete(ctx, id)
}

func FilterByCategory(contestants []*Contestant, categoryID string) []*Contestant {
	filtered := make([]*Contestant, 0)
	for _, c := range contestants {
		if c.CategoryID == categoryID {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
