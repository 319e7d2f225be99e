package storage

import (
	"context"
	"strings"
)

type AudienceStorage interface {
	Get(ctx context.Context, id string) (*AudienceMember, error)
	GetByLoginCode(ctx context.Context, code string) (*AudienceMember, error)
	GetAll(ctx context.Context) ([]*AudienceMember, error)
	Create(ctx context.Context, member *AudienceMember) error
	Update(ctx context.Context, member *AudienceMember) error
	Delete(ctx context.Context, id string) error
}

type DocumentAudienceStorage struct {
	repo listRepository[AudienceMember]
}

func NewAudienceStorage(store DocumentStore) *DocumentAudienceStorage {
	return &DocumentAudienceStorage{repo: listRepository[AudienceMember]{
		store:      store,
		collection: CollectionAudience,
		id:         func(m *AudienceMember) string { return m.ID },
		area:       "AUDIENCE",
	}}
}

func (s *DocumentAudienceStorage) Get(ctx context.Context, id string) (*AudienceMember, error) {
	return s.repo.get(ctx, id)
}

// GetByLoginCode matches codes case-insensitively.
func (s *DocumentAudienceStorage) GetByLoginCode(ctx context.Context, code string) (*AudienceMember, error) {
	all, err := s.repo.all(ctx)
	if err != nil {
		return nil, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, m := range all {
		if m.LoginCode == code {
			return m, nil
		}
	}
	return nil, nil
}

func (s *DocumentAudienceStorage) GetAll(ctx context.Context) ([]*AudienceMember, error) {
	return s.repo.all(ctx)
}

func (s *DocumentAudienceStorage) Create(ctx context.Context, member *AudienceMember) error {
	return s.repo.create(ctx, member)
}

func (s *DocumentAudienceStorage) Update(ctx context.Context, member *AudienceMember) error {
	return s.repo.update(ctx, member)
}

func (s *DocumentAudienceStorage) Delete(ctx context.Context, id string) error {
	return s.repo.delete(ctx, id)
}
