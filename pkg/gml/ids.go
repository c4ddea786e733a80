package gml

import (
	"fmt"

	errs "github.com/matzehuels/gmlexport/pkg/errors"
)

// idAssigner hands out GML ids for one kind of element during a single
// export. Without a provider it counts up from 1 in first-seen order. With a
// provider it calls the provider once per element and remembers the answer.
type idAssigner[T comparable] struct {
	kind     ElementKind
	provider func(T) int
	ids      map[T]int
	owners   map[int]T
	next     int
}

func newIDAssigner[T comparable](kind ElementKind, provider func(T) int) *idAssigner[T] {
	return &idAssigner[T]{
		kind:     kind,
		provider: provider,
		ids:      make(map[T]int),
		owners:   make(map[int]T),
		next:     1,
	}
}

// assign returns the id of x, allocating one on first sight.
func (a *idAssigner[T]) assign(x T) (int, error) {
	if id, ok := a.ids[x]; ok {
		return id, nil
	}

	var id int
	if a.provider == nil {
		id = a.next
		a.next++
	} else {
		id = a.provider(x)
		if id <= 0 {
			return 0, errs.New(errs.ErrCodeInvalidID, "%s %v: id %d is not positive", a.kind, x, id)
		}
		if prev, taken := a.owners[id]; taken {
			return 0, &DuplicateIDError{Kind: a.kind, ID: id, First: fmt.Sprint(prev), Second: fmt.Sprint(x)}
		}
	}

	a.ids[x] = id
	a.owners[id] = x
	return id, nil
}

// lookup returns the id previously assigned to x.
func (a *idAssigner[T]) lookup(x T) (int, bool) {
	id, ok := a.ids[x]
	return id, ok
}
