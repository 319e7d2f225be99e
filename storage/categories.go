package storage

import "context"

type CategoryStorage interface {
	Get(ctx context.Context, id string) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}

type DocumentCategoryStorage struct {
	repo listRepository[Category]
}

func NewCategoryStorage(store DocumentStore) *DocumentCategoryStorage {
	return &DocumentCategoryStorage{repo: listRepository[Category]{
		store:      store,
		collection: CollectionCategories,
		id:         func(c *Category) string { return c.ID },
		area:       "CATEGORY",
	}}
}

func (s *DocumentCategoryStorage) Get(ctx context.Context, id string) (*Category, error) {
	return s.repo.get(ctx, id)
}

func (s *DocumentCategoryStorage) GetAll(ctx context.Context) ([]*Category, error) {
	return s.repo.all(ctx)
}

func (s *DocumentCategoryStorage) Create(ctx context.Context, category *Category) error {
	return s.repo.create(ctx, category)
}

func (s *DocumentCategoryStorage) Update(ctx context.Context, category *Category) error {
	return s.repo.update(ctx, category)
}

func (s *DocumentCategoryStorage) Delete(ctx context.Context, id string) error {
	return s.repo.delete(ctx, id)
}
