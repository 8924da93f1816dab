package memory

import (
	"memberclub-rental/internal/repository"
)

// Store bundles the in-memory repositories of one console session.
// Nothing survives a restart.
type Store struct {
	repository.ItemRepository
	repository.MemberRepository
	repository.RentalRepository
	repository.RevenueRepository
	repository.OperatorRepository
}

func NewStore() *Store {
	return &Store{
		ItemRepository:     NewItemRepository(),
		MemberRepository:   NewMemberRepository(),
		RentalRepository:   NewRentalRepository(),
		RevenueRepository:  NewRevenueRepository(),
		OperatorRepository: NewOperatorRepository(),
	}
}

// table keeps values keyed by id and remembers insertion order for listings
type table[K comparable, V any] struct {
	rows  map[K]V
	order []K
}

func newTable[K comparable, V any]() table[K, V] {
	return table[K, V]{rows: make(map[K]V)}
}

func (t *table[K, V]) put(k K, v V) {
	if _, ok := t.rows[k]; !ok {
		t.order = append(t.order, k)
	}
	t.rows[k] = v
}

func (t *table[K, V]) remove(k K) {
	delete(t.rows, k)
	for i, id := range t.order {
		if id == k {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

func (t *table[K, V]) each(fn func(V)) {
	for _, k := range t.order {
		fn(t.rows[k])
	}
}
