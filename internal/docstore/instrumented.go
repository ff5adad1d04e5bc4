package docstore

import (
	"context"
	"time"
)

// QueryObserver receives the duration of each store call labelled "<collection>.<op>".
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

type instrumentedStore struct {
	next     Store
	observer QueryObserver
}

// Instrument reports every call on store to observer. A nil observer returns store unchanged.
func Instrument(store Store, observer QueryObserver) Store {
	if observer == nil {
		return store
	}
	return &instrumentedStore{next: store, observer: observer}
}

func (s *instrumentedStore) observe(collection, op string, start time.Time) {
	s.observer.ObserveDBQuery(collection+"."+op, time.Since(start))
}

func (s *instrumentedStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	defer s.observe(collection, "get", time.Now())
	return s.next.Get(ctx, collection, id)
}

func (s *instrumentedStore) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	defer s.observe(collection, "list", time.Now())
	return s.next.List(ctx, collection, q)
}

func (s *instrumentedStore) Create(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	defer s.observe(collection, "create", time.Now())
	return s.next.Create(ctx, collection, data)
}

func (s *instrumentedStore) Update(ctx context.Context, collection, id string, data map[string]interface{}, merge bool) error {
	defer s.observe(collection, "update", time.Now())
	return s.next.Update(ctx, collection, id, data, merge)
}

func (s *instrumentedStore) Delete(ctx context.Context, collection, id string) error {
	defer s.observe(collection, "delete", time.Now())
	return s.next.Delete(ctx, collection, id)
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}
