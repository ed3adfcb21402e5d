package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwrest/restarea/domain/dataset"
	"github.com/hwrest/restarea/domain/region"
)

type sequenceLoader struct {
	sets []dataset.Dataset
	err  error
	n    int
}

func (l *sequenceLoader) Load(context.Context) (dataset.Dataset, error) {
	if l.err != nil {
		return dataset.Dataset{}, l.err
	}
	ds := l.sets[min(l.n, len(l.sets)-1)]
	l.n++
	return ds, nil
}

func TestCatalogHolder_Reload(t *testing.T) {
	regions, err := region.NewTable()
	require.NoError(t, err)

	first := NewAssembler(WithClock(fixedClock)).Assemble(sampleRaw())
	second := NewAssembler(WithClock(fixedClock)).Assemble(RawDataset{Locations: sampleRaw().Locations[:1]})
	loader := &sequenceLoader{sets: []dataset.Dataset{first, second}}
	h := NewCatalogHolder(loader, regions)

	assert.Nil(t, h.Catalog())

	require.NoError(t, h.Reload(context.Background()))
	assert.Len(t, h.Catalog().All(), len(first.RestAreas))

	require.NoError(t, h.Reload(context.Background()))
	assert.Len(t, h.Catalog().All(), 1)
}

func TestCatalogHolder_ReloadFailureKeepsPrevious(t *testing.T) {
	regions, err := region.NewTable()
	require.NoError(t, err)

	h := NewCatalogHolder(&sequenceLoader{err: errors.New("disk gone")}, regions)
	prev := NewCatalog(NewAssembler(WithClock(fixedClock)).Assemble(sampleRaw()), regions)
	h.Set(prev)

	err = h.Reload(context.Background())
	require.Error(t, err)
	assert.Same(t, prev, h.Catalog())
}

type countingLoader struct {
	ds    dataset.Dataset
	calls atomic.Int32
	gate  chan struct{}
}

func (l *countingLoader) Load(context.Context) (dataset.Dataset, error) {
	l.calls.Add(1)
	<-l.gate
	return l.ds, nil
}

func TestCatalogHolder_ConcurrentReloadSharesLoad(t *testing.T) {
	regions, err := region.NewTable()
	require.NoError(t, err)

	loader := &countingLoader{ds: NewAssembler(WithClock(fixedClock)).Assemble(sampleRaw()), gate: make(chan struct{})}
	h := NewCatalogHolder(loader, regions)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.Reload(context.Background()))
		}()
	}
	require.Eventually(t, func() bool { return loader.calls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(loader.gate)
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
	assert.NotNil(t, h.Catalog())
}
