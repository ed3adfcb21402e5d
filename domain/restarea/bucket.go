package restarea

// Buckets groups records by key. Records keep their input order inside a
// bucket and keys keep their first-seen order.
type Buckets[T any] struct {
	keys   []string
	groups map[string][]T
}

// GroupBy buckets records by the key returned from keyFn.
func GroupBy[T any](records []T, keyFn func(T) string) *Buckets[T] {
	b := &Buckets[T]{groups: make(map[string][]T)}
	for _, rec := range records {
		b.Add(keyFn(rec), rec)
	}
	return b
}

// Add appends rec to the bucket for key.
func (b *Buckets[T]) Add(key string, rec T) {
	if _, ok := b.groups[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.groups[key] = append(b.groups[key], rec)
}

// Get returns the records for key in input order, or nil.
func (b *Buckets[T]) Get(key string) []T {
	if b == nil {
		return nil
	}
	return b.groups[key]
}

// First returns the first record for key.
func (b *Buckets[T]) First(key string) (T, bool) {
	var zero T
	recs := b.Get(key)
	if len(recs) == 0 {
		return zero, false
	}
	return recs[0], true
}

// Keys returns the keys in first-seen order.
func (b *Buckets[T]) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len returns the number of distinct keys.
func (b *Buckets[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}
