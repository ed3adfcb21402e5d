package restarea

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyed struct {
	key string
	val int
}

func TestGroupBy_PreservesOrder(t *testing.T) {
	records := []keyed{
		{"b", 1}, {"a", 2}, {"b", 3}, {"c", 4}, {"a", 5},
	}
	b := GroupBy(records, func(k keyed) string { return k.key })

	assert.Equal(t, []string{"b", "a", "c"}, b.Keys())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []keyed{{"b", 1}, {"b", 3}}, b.Get("b"))
	assert.Equal(t, []keyed{{"a", 2}, {"a", 5}}, b.Get("a"))
	assert.Nil(t, b.Get("missing"))

	first, ok := b.First("a")
	assert.True(t, ok)
	assert.Equal(t, 2, first.val)

	_, ok = b.First("missing")
	assert.False(t, ok)
}

func TestBuckets_Nil(t *testing.T) {
	var b *Buckets[keyed]
	assert.Nil(t, b.Get("x"))
	assert.Nil(t, b.Keys())
	assert.Equal(t, 0, b.Len())
}
