package storage

import "context"

type JudgeStorage interface {
	Get(ctx context.Context, id string) (*Judge, error)
	GetByUsername(ctx context.Context, username string) (*Judge, error)
	GetAll(ctx context.Context) ([]*Judge, error)
	Create(ctx context.Context, judge *Judge) error
	Update(ctx context.Context, judge *Judge) error
	Delete(ctx context.Context, id string) error
}

type DocumentJudgeStorage struct {
	repo listRepository[Judge]
}

func NewJudgeStorage(store DocumentStore) *DocumentJudgeStorage {
	return &DocumentJudgeStorage{repo: listRepository[Judge]{
		store:      store,
		collection: CollectionJudges,
		id:         func(j *Judge) string { return j.ID },
		area:       "JUDGE",
	}}
}

func (s *DocumentJudgeStorage) Get(ctx context.Context, id string) (*Judge, error) {
	return s.repo.get(ctx, id)
}

func (s *DocumentJudgeStorage) GetByUsername(ctx context.Context, username string) (*Judge, error) {
	all, err := s.repo.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, j := range all {
		if j.Username == username {
			return j, nil
		}
	}
	return nil, nil
}

func (s *DocumentJudgeStorage) GetAll(ctx context.Context) ([]*Judge, error) {
	return s.repo.all(ctx)
}

func (s *DocumentJudgeStorage) Create(ctx context.Context, judge *Judge) error {
	return s.repo.create(ctx, judge)
}

func (s *DocumentJudgeStorage) Update(ctx context.Context, judge *Judge) error {
	return s.repo.update(ctx, judge)
}

func (s *DocumentJudgeStorage) Delete(ctx context.Context, id string) error {
	return s.repo.delete(ctx, id)
}

type AdminStorage interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetAll(ctx context.Context) ([]*Admin, error)
	Create(ctx context.Context, admin *Admin) error
}

type DocumentAdminStorage struct {
	repo listRepository[Admin]
}

func NewAdminStorage(store DocumentStore) *DocumentAdminStorage {
	return &DocumentAdminStorage{repo: listRepository[Admin]{
		store:      store,
		collection: CollectionAdmins,
		id:         func(a *Admin) string { return a.ID },
		area:       "ADMIN",
	}}
}

func (s *DocumentAdminStorage) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	all, err := s.repo.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (s *DocumentAdminStorage) GetAll(ctx context.Context) ([]*Admin, error) {
	return s.repo.all(ctx)
}

func (s *DocumentAdminStorage) Create(ctx context.Context, admin *Admin) error {
	return s.repo.create(ctx, admin)
}
