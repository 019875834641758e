package entity

import (
	"reflect"
	"sort"

	gocache "github.com/patrickmn/go-cache"
	"github.com/viant/postboard/internal/collection"
)

// Kind represents an entity kind
type Kind string

const (
	Users Kind = "Users"
	Posts Kind = "Posts"
)

// Identifiable represents an entity with an id
type Identifiable interface {
	EntityID() string
}

// Cache represents kind -> id -> entity snapshot mapping
type Cache struct {
	kinds *collection.SyncMap[Kind, *gocache.Cache]
}

func (c *Cache) bucket(kind Kind) *gocache.Cache {
	return c.kinds.GetOrPut(kind, func() *gocache.Cache {
		return gocache.New(gocache.NoExpiration, 0)
	})
}

// AddEntries merges entries into the kind mapping, last write wins
func (c *Cache) AddEntries(kind Kind, entries ...Identifiable) {
	if len(entries) == 0 {
		return
	}
	bucket := c.bucket(kind)
	for _, entry := range entries {
		if isNil(entry) {
			continue
		}
		id := entry.EntityID()
		if id == "" {
			continue
		}
		bucket.Set(id, snapshot(entry), gocache.NoExpiration)
	}
}

// DeleteEntity removes the whole kind
func (c *Cache) DeleteEntity(kind Kind) {
	c.kinds.Delete(kind)
}

// DeleteEntry removes a single entity
func (c *Cache) DeleteEntry(kind Kind, id string) {
	if bucket, ok := c.kinds.Get(kind); ok {
		bucket.Delete(id)
	}
}

// ResetStore removes all kinds
func (c *Cache) ResetStore() {
	c.kinds.Clear()
}

// Lookup returns cached entity
func (c *Cache) Lookup(kind Kind, id string) (Identifiable, bool) {
	bucket, ok := c.kinds.Get(kind)
	if !ok {
		return nil, false
	}
	value, ok := bucket.Get(id)
	if !ok {
		return nil, false
	}
	entity, ok := value.(Identifiable)
	if !ok {
		return nil, false
	}
	return snapshot(entity), true
}

// Entries returns a copy of the kind mapping
func (c *Cache) Entries(kind Kind) map[string]Identifiable {
	ret := map[string]Identifiable{}
	bucket, ok := c.kinds.Get(kind)
	if !ok {
		return ret
	}
	for id, item := range bucket.Items() {
		if entity, ok := item.Object.(Identifiable); ok {
			ret[id] = snapshot(entity)
		}
	}
	return ret
}

// Count returns number of cached entities of kind
func (c *Cache) Count(kind Kind) int {
	if bucket, ok := c.kinds.Get(kind); ok {
		return bucket.ItemCount()
	}
	return 0
}

// Kinds returns sorted cached kinds
func (c *Cache) Kinds() []Kind {
	var ret []Kind
	c.kinds.Range(func(kind Kind, _ *gocache.Cache) bool {
		ret = append(ret, kind)
		return true
	})
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

func isNil(entry Identifiable) bool {
	if entry == nil {
		return true
	}
	value := reflect.ValueOf(entry)
	return value.Kind() == reflect.Ptr && value.IsNil()
}

// snapshot returns a shallow copy of a pointer entity; values are already copies
func snapshot(entry Identifiable) Identifiable {
	value := reflect.ValueOf(entry)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return entry
	}
	cloned := reflect.New(value.Elem().Type())
	cloned.Elem().Set(value.Elem())
	if ret, ok := cloned.Interface().(Identifiable); ok {
		return ret
	}
	return entry
}

// New creates an empty cache
func New() *Cache {
	return &Cache{kinds: collection.NewSyncMap[Kind, *gocache.Cache]()}
}

// Add merges typed entries
func Add[T Identifiable](c *Cache, kind Kind, entries []T) {
	items := make([]Identifiable, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entry)
	}
	c.AddEntries(kind, items...)
}

// Get returns typed cached entity
func Get[T Identifiable](c *Cache, kind Kind, id string) (T, bool) {
	var zero T
	entity, ok := c.Lookup(kind, id)
	if !ok {
		return zero, false
	}
	ret, ok := entity.(T)
	if !ok {
		return zero, false
	}
	return ret, true
}
