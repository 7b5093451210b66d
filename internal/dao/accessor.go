package dao

import (
	"fmt"
	"slices"
	"sync"
)

// AccessorFunc builds a fresh, uninitialized accessor.
type AccessorFunc func() Accessor

var (
	registry   = make(map[ResourceID]AccessorFunc)
	registryMx sync.RWMutex
)

// RegisterAccessor makes a resource available under its id.
// A second registration for the same id replaces the first.
func RegisterAccessor(rid *ResourceID, fn AccessorFunc) {
	registryMx.Lock()
	defer registryMx.Unlock()

	registry[*rid] = fn
}

// AccessorFor returns an initialized accessor for the resource.
// Every call hands out a new instance bound to the factory.
func AccessorFor(f Factory, rid *ResourceID) (Accessor, error) {
	if rid == nil {
		return nil, fmt.Errorf("%w: resource id is required", ErrUnknownResource)
	}

	registryMx.RLock()
	fn, ok := registry[*rid]
	registryMx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, rid)
	}
	acc := fn()
	acc.Init(f, rid)

	return acc, nil
}

// ListAccessors returns the registered resources ordered by id.
func ListAccessors() []*ResourceID {
	registryMx.RLock()
	rids := make([]*ResourceID, 0, len(registry))
	for rid := range registry {
		rids = append(rids, &rid)
	}
	registryMx.RUnlock()

	slices.SortFunc(rids, func(a, b *ResourceID) int {
		switch sa, sb := a.String(), b.String(); {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})

	return rids
}
