package live

import (
	"context"
	"testing"

	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(logger.NewNopLogger())
}

func TestQueryGetEvaluatesLazily(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	reads := 0
	q := NewQuery(reg, []Collection{CollectionInvoices}, func(ctx context.Context) (int, error) {
		reads++
		return reads, nil
	})
	defer q.Close()

	assert.Equal(t, 0, reads)

	v, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// cached until a dependent write invalidates it
	v, err = q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, reads)
}

func TestPublishRecomputesDependentQueries(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	// the "store": a value the read closure observes
	status := "pending"
	q := NewQuery(reg, []Collection{CollectionInvoices}, func(ctx context.Context) (string, error) {
		return status, nil
	})
	defer q.Close()

	var seen []string
	cancel := q.OnChange(func(v string) {
		seen = append(seen, v)
	})
	defer cancel()

	first, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pending", first)

	// the write and its publish happen before the caller continues, so
	// the fresh value is already visible here
	status = "paid"
	reg.Publish(ctx, CollectionInvoices)

	v, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "paid", v)
	assert.Equal(t, []string{"paid"}, seen)
}

func TestPublishIgnoresUnrelatedCollections(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	reads := 0
	q := NewQuery(reg, []Collection{CollectionCustomers}, func(ctx context.Context) (int, error) {
		reads++
		return reads, nil
	})
	defer q.Close()

	_, err := q.Get(ctx)
	require.NoError(t, err)

	reg.Publish(ctx, CollectionInvoices)
	reg.Publish(ctx, CollectionProfile)
	assert.Equal(t, 1, reads)

	reg.Publish(ctx, CollectionCustomers)
	assert.Equal(t, 2, reads)
}

func TestQueryWithMultipleDependencies(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	reads := 0
	q := NewQuery(reg, []Collection{CollectionInvoices, CollectionCustomers}, func(ctx context.Context) (int, error) {
		reads++
		return reads, nil
	})
	defer q.Close()

	reg.Publish(ctx, CollectionInvoices)
	reg.Publish(ctx, CollectionCustomers)
	// publishing both at once recomputes once
	reg.Publish(ctx, CollectionInvoices, CollectionCustomers)
	assert.Equal(t, 3, reads)
}

func TestOnChangeCancelRemovesOneObserver(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	q := NewQuery(reg, []Collection{CollectionInvoices}, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	defer q.Close()

	var a, b int
	cancelA := q.OnChange(func(int) { a++ })
	q.OnChange(func(int) { b++ })

	reg.Publish(ctx, CollectionInvoices)
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	cancelA()
	reg.Publish(ctx, CollectionInvoices)
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestCloseStopsRecomputation(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	reads := 0
	q := NewQuery(reg, []Collection{CollectionInvoices}, func(ctx context.Context) (int, error) {
		reads++
		return reads, nil
	})

	_, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.SubscriberCount())

	q.Close()
	assert.Equal(t, 0, reg.SubscriberCount())

	reg.Publish(ctx, CollectionInvoices)
	assert.Equal(t, 1, reads)
}

func TestObserversNotNotifiedOnReadError(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	fail := false
	q := NewQuery(reg, []Collection{CollectionInvoices}, func(ctx context.Context) (string, error) {
		if fail {
			return "", assert.AnError
		}
		return "ok", nil
	})
	defer q.Close()

	notified := 0
	q.OnChange(func(string) { notified++ })

	reg.Publish(ctx, CollectionInvoices)
	assert.Equal(t, 1, notified)

	fail = true
	reg.Publish(ctx, CollectionInvoices)
	assert.Equal(t, 1, notified)

	_, err := q.Get(ctx)
	assert.Error(t, err)
}
