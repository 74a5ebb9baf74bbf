// File: internal/docstore/memory.go
package docstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"sync"

	"civic-reports/internal/apperr"

	"github.com/google/uuid"
)

// MemoryStore 記憶體版 Store，測試時取代 PostgresStore
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	order       map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
		order:       make(map[string][]string),
	}
}

func (s *MemoryStore) Collection(name string) Collection {
	return &memCollection{store: s, name: name}
}

type memCollection struct {
	store *MemoryStore
	name  string
}

// normalize 經由 JSON 來回轉換，讓存取值與 Postgres 實作的型別一致
func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = normalize(v)
	}
	return out
}

func (c *memCollection) Add(_ context.Context, fields map[string]any) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	col := c.store.collections[c.name]
	if col == nil {
		col = make(map[string]map[string]any)
		c.store.collections[c.name] = col
	}
	id := uuid.NewString()
	col[id] = cloneFields(fields)
	c.store.order[c.name] = append(c.store.order[c.name], id)
	return id, nil
}

func (c *memCollection) Get(_ context.Context, id string) (*Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	fields, ok := c.store.collections[c.name][id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &Document{ID: id, Data: cloneFields(fields)}, nil
}

func (c *memCollection) Query(_ context.Context, eq map[string]any) ([]Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	var docs []Document
	for _, id := range c.ids() {
		fields := c.store.collections[c.name][id]
		if matches(fields, eq) {
			docs = append(docs, Document{ID: id, Data: cloneFields(fields)})
		}
	}
	return docs, nil
}

func (c *memCollection) Update(_ context.Context, id string, fields map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	doc, ok := c.store.collections[c.name][id]
	if !ok {
		return apperr.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = normalize(v)
	}
	return nil
}

func (c *memCollection) Delete(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if _, ok := c.store.collections[c.name][id]; !ok {
		return apperr.ErrNotFound
	}
	delete(c.store.collections[c.name], id)
	ids := c.store.order[c.name]
	for i, v := range ids {
		if v == id {
			c.store.order[c.name] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (c *memCollection) Scan(_ context.Context) ([]Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	var docs []Document
	for _, id := range c.ids() {
		docs = append(docs, Document{ID: id, Data: cloneFields(c.store.collections[c.name][id])})
	}
	return docs, nil
}

// ids 回傳插入順序的 id 列表
func (c *memCollection) ids() []string {
	if ids, ok := c.store.order[c.name]; ok {
		return ids
	}
	var ids []string
	for id := range c.store.collections[c.name] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func matches(fields map[string]any, eq map[string]any) bool {
	for k, want := range eq {
		got, ok := fields[k]
		if !ok || !reflect.DeepEqual(got, normalize(want)) {
			return false
		}
	}
	return true
}
