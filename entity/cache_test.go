package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/postboard/schema"
)

func user(id, name string) *schema.User {
	return &schema.User{BaseEntity: schema.BaseEntity{ID: id}, Username: name, Role: schema.RoleUser}
}

func TestCache_AddEntries(t *testing.T) {
	cache := New()
	u1 := user("1", "alice")
	u2 := user("2", "bob")
	Add(cache, Users, []*schema.User{u1, u2})
	u2Updated := user("2", "robert")
	Add(cache, Users, []*schema.User{u2Updated})

	assert.Equal(t, 2, cache.Count(Users))
	entries := cache.Entries(Users)
	assert.Len(t, entries, 2)
	assert.Equal(t, u1, entries["1"])
	assert.Equal(t, u2Updated, entries["2"])

	got, ok := Get[*schema.User](cache, Users, "2")
	assert.True(t, ok)
	assert.Equal(t, "robert", got.Username)
}

func TestCache_AddEntries_SkipsEmptyID(t *testing.T) {
	cache := New()
	cache.AddEntries(Users, user("", "ghost"), nil, user("1", "alice"))
	assert.Equal(t, 1, cache.Count(Users))
	cache.AddEntries(Posts)
	assert.Equal(t, []Kind{Users}, cache.Kinds())
}

func TestCache_Delete(t *testing.T) {
	cache := New()
	Add(cache, Users, []*schema.User{user("1", "alice"), user("2", "bob")})
	Add(cache, Posts, []*schema.Post{{BaseEntity: schema.BaseEntity{ID: "p1"}, Title: "hello"}})

	cache.DeleteEntry(Users, "1")
	cache.DeleteEntry(Users, "missing")
	cache.DeleteEntry("Unknown", "1")
	assert.Equal(t, 1, cache.Count(Users))
	_, ok := cache.Lookup(Users, "1")
	assert.False(t, ok)

	cache.DeleteEntity(Posts)
	cache.DeleteEntity("Unknown")
	assert.Equal(t, 0, cache.Count(Posts))
	assert.Empty(t, cache.Entries(Posts))
	assert.Equal(t, []Kind{Users}, cache.Kinds())
}

func TestCache_ResetStore(t *testing.T) {
	cache := New()
	Add(cache, Users, []*schema.User{user("1", "alice")})
	Add(cache, Posts, []*schema.Post{{BaseEntity: schema.BaseEntity{ID: "p1"}}})
	cache.ResetStore()
	for _, kind := range []Kind{Users, Posts} {
		assert.Equal(t, 0, cache.Count(kind))
		assert.Empty(t, cache.Entries(kind))
	}
	assert.Empty(t, cache.Kinds())

	_, ok := Get[*schema.Post](cache, Posts, "p1")
	assert.False(t, ok)
}

func TestGet_TypeMismatch(t *testing.T) {
	cache := New()
	Add(cache, Users, []*schema.User{user("1", "alice")})
	_, ok := Get[*schema.Post](cache, Users, "1")
	assert.False(t, ok)
}

func TestCache_StoresSnapshots(t *testing.T) {
	cache := New()
	source := user("1", "alice")
	var missing *schema.User
	Add(cache, Users, []*schema.User{source, missing})
	assert.Equal(t, 1, cache.Count(Users))

	source.Username = "changed-after-add"
	got, ok := Get[*schema.User](cache, Users, "1")
	assert.True(t, ok)
	assert.Equal(t, "alice", got.Username)

	got.Username = "changed-after-get"
	again, _ := Get[*schema.User](cache, Users, "1")
	assert.Equal(t, "alice", again.Username)

	entries := cache.Entries(Users)
	entries["1"].(*schema.User).Role = schema.RoleOwner
	again, _ = Get[*schema.User](cache, Users, "1")
	assert.Equal(t, schema.RoleUser, again.Role)
}
