package match

import (
	"sync"

	"github.com/dolthub/swiss"
	"github.com/google/uuid"
)

// Registry keeps finished match verdicts. Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	verdicts *swiss.Map[uuid.UUID, Verdict]
}

func NewRegistry(sizeHint uint32) *Registry {
	return &Registry{
		verdicts: swiss.NewMap[uuid.UUID, Verdict](sizeHint),
	}
}

func (r *Registry) Add(v Verdict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verdicts.Put(v.ID, v)
}

func (r *Registry) Get(id uuid.UUID) (Verdict, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verdicts.Get(id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verdicts.Count()
}

// Number of matches per result.
func (r *Registry) Tally() map[Result]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	tally := make(map[Result]int, 3)
	r.verdicts.Iter(func(_ uuid.UUID, v Verdict) (stop bool) {
		tally[v.Winner]++
		return
	})

	return tally
}
