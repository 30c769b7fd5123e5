package cache

import (
	"context"
	"time"

	gocache "github.com/Code-Hex/go-generics-cache"
)

const defaultTTL = time.Minute * 5

var store = gocache.NewContext[string, any](context.Background())

func Get[T any](key string) *T {
	v, ok := store.Get(key)
	if !ok {
		return nil
	}
	return v.(*T)
}

func Set[T any](key string, value *T) {
	store.Set(key, value, gocache.WithExpiration(defaultTTL))
}

func GetOrSet[T any](key string, factory func() (*T, error)) (*T, error) {
	v := Get[T](key)
	if v != nil {
		return v, nil
	}
	v, err := factory()
	if err != nil {
		return nil, err
	}
	Set(key, v)
	return v, nil
}
