package storage

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

// NewID returns a fresh entity ID.
func NewID() string {
	return uuid.NewString()
}

type listDocument[T any] struct {
	List []*T `json:"list"`
}

func (d *listDocument[T]) normalize() {
	if d.List == nil {
		d.List = []*T{}
	}
}

// listRepository is the whole-document CRUD shared by every `{list: [...]}` collection.
type listRepository[T any] struct {
	store      DocumentStore
	collection Collection
	id         func(*T) string
	area       string
}

func (r *listRepository[T]) load(ctx context.Context) (*listDocument[T], error) {
	doc := &listDocument[T]{}
	if err := readDocument(ctx, r.store, r.collection, doc); err != nil {
		logging.Log.Errorf("%s: failed to load %s: %v", r.area, r.collection, err)
		return nil, err
	}
	return doc, nil
}

func (r *listRepository[T]) index(doc *listDocument[T], id string) int {
	return slices.IndexFunc(doc.List, func(item *T) bool { return r.id(item) == id })
}

func (r *listRepository[T]) all(ctx context.Context) ([]*T, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.List, nil
}

// get returns nil, nil when the item does not exist.
func (r *listRepository[T]) get(ctx context.Context, id string) (*T, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := r.index(doc, id); i >= 0 {
		return doc.List[i], nil
	}
	logging.Log.Debugf("%s: no item found with ID %s", r.area, id)
	return nil, nil
}

func (r *listRepository[T]) create(ctx context.Context, item *T) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	if r.index(doc, r.id(item)) >= 0 {
		logging.Log.Warnf("%s: item with ID %s already exists", r.area, r.id(item))
		return ErrItemWithIDAlreadyExists
	}
	doc.List = append(doc.List, item)
	if err := r.store.Write(ctx, r.collection, doc); err != nil {
		logging.Log.Errorf("%s: failed to create item %s: %v", r.area, r.id(item), err)
		return err
	}
	return nil
}

func (r *listRepository[T]) update(ctx context.Context, item *T) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := r.index(doc, r.id(item))
	if i < 0 {
		return ErrItemNotFound
	}
	doc.List[i] = item
	if err := r.store.Write(ctx, r.collection, doc); err != nil {
		logging.Log.Errorf("%s: failed to update item %s: %v", r.area, r.id(item), err)
		return err
	}
	return nil
}

func (r *listRepository[T]) delete(ctx context.Context, id string) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := r.index(doc, id)
	if i < 0 {
		return ErrItemNotFound
	}
	doc.List = slices.Delete(doc.List, i, i+1)
	if err := r.store.Write(ctx, r.collection, doc); err != nil {
		logging.Log.Errorf("%s: failed to delete item %s: %v", r.area, id, err)
		return err
	}
	logging.Log.Infof("%s: deleted item with ID %s", r.area, id)
	return nil
}
