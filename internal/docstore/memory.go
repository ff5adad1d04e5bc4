package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryDoc struct {
	seq  int64
	data map[string]interface{}
}

// MemoryStore keeps documents in process. Used for tests and ENV=test.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         int64
	collections map[string]map[string]*memoryDoc
	// failWith, when set, is returned by every operation.
	failWith error
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]*memoryDoc)}
}

// FailWith makes every following call fail with err wrapped as ErrUnavailable. nil restores normal behaviour.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, unavailable("get", s.failWith)
	}
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{ID: id, Data: copyData(doc.data)}, nil
}

func (s *MemoryStore) List(_ context.Context, collection string, q Query) ([]Document, error) {
	if err := validateQuery(q); err != nil {
		return nil, unavailable("list", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, unavailable("list", s.failWith)
	}

	type entry struct {
		id  string
		doc *memoryDoc
	}
	entries := make([]entry, 0, len(s.collections[collection]))
outer:
	for id, doc := range s.collections[collection] {
		for _, f := range q.Where {
			if !matches(doc.data, f) {
				continue outer
			}
		}
		if q.OrderBy != "" {
			if _, ok := doc.data[q.OrderBy]; !ok {
				continue
			}
		}
		entries = append(entries, entry{id: id, doc: doc})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if q.OrderBy != "" {
			cmp, ok := compareValues(entries[i].doc.data[q.OrderBy], entries[j].doc.data[q.OrderBy])
			if ok && cmp != 0 {
				if q.Direction == Desc {
					return cmp > 0
				}
				return cmp < 0
			}
		}
		return entries[i].doc.seq < entries[j].doc.seq
	})

	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}

	docs := make([]Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, Document{ID: e.id, Data: copyData(e.doc.data)})
	}
	return docs, nil
}

func (s *MemoryStore) Create(_ context.Context, collection string, data map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return "", unavailable("create", s.failWith)
	}
	id := uuid.NewString()
	s.put(collection, id, copyData(data))
	return id, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, data map[string]interface{}, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return unavailable("update", s.failWith)
	}
	existing, ok := s.collections[collection][id]
	if ok && merge {
		for k, v := range data {
			existing.data[k] = v
		}
		return nil
	}
	if ok {
		existing.data = copyData(data)
		return nil
	}
	s.put(collection, id, copyData(data))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return unavailable("delete", s.failWith)
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len reports the number of documents in a collection.
func (s *MemoryStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func (s *MemoryStore) put(collection, id string, data map[string]interface{}) {
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]*memoryDoc)
		s.collections[collection] = coll
	}
	s.seq++
	coll[id] = &memoryDoc{seq: s.seq, data: data}
}
