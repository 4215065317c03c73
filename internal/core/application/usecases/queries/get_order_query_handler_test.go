package queries_test

import (
	"testing"
	"time"

	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	s := newStore(t)
	o := s.order(kernel.NewUUID(), order.Confirmed, testNow, "1.20", "0.35")
	shortage, err := order.NewUnavailableItem("sku-1", "Product 1", 1, order.SubstitutionSimilarProduct)
	require.NoError(t, err)
	require.NoError(t, o.ReportUnavailable([]order.UnavailableItem{shortage}, testNow.Add(time.Minute)))
	require.NoError(t, s.uow.OrderRepository().Update(t.Context(), o))

	query, err := queries.NewGetOrderQuery(o.ID())
	require.NoError(t, err)

	result, err := queries.NewGetOrderQueryHandler(s.db).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, o.ID(), result.ID)
	assert.Equal(t, o.BranchID(), result.BranchID)
	assert.Equal(t, "confirmed", result.Status)
	require.Len(t, result.Items, 2)
	assert.True(t, decimal.RequireFromString("1.20").Equal(result.Items[0].Price))
	assert.Equal(t, 2, result.Items[1].Quantity)
	assert.True(t, decimal.RequireFromString("1.90").Equal(result.Total), result.Total.String())
	require.Len(t, result.UnavailableItems, 1)
	assert.Equal(t, "similar_product", result.UnavailableItems[0].SubstitutionPreference)
	assert.Equal(t, "Main st 1", result.Shipping.Address)
	assert.Equal(t, "ring twice", result.Shipping.Notes)
	assert.True(t, testNow.Add(time.Minute).Equal(result.UpdatedAt))
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	s := newStore(t)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	require.NoError(t, err)

	_, err = queries.NewGetOrderQueryHandler(s.db).Handle(t.Context(), query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrdersQueryHandler_Handle_Board(t *testing.T) {
	s := newStore(t)
	branch := kernel.NewUUID()
	first := s.order(branch, order.Ready, testNow.Add(-2*time.Hour), "1.00")
	second := s.order(branch, order.Pending, testNow.Add(-time.Hour), "1.00")
	third := s.order(branch, order.Ready, testNow, "1.00")
	s.order(kernel.NewUUID(), order.Ready, testNow, "1.00")

	t.Run("whole branch oldest first", func(t *testing.T) {
		query, err := queries.NewGetOrdersQuery(branch, nil)
		require.NoError(t, err)

		result, err := queries.NewGetOrdersQueryHandler(s.db).Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, first.ID(), result[0].ID)
		assert.Equal(t, second.ID(), result[1].ID)
		assert.Equal(t, third.ID(), result[2].ID)
	})

	t.Run("one status", func(t *testing.T) {
		ready := order.Ready
		query, err := queries.NewGetOrdersQuery(branch, &ready)
		require.NoError(t, err)

		result, err := queries.NewGetOrdersQueryHandler(s.db).Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, first.ID(), result[0].ID)
		assert.Equal(t, third.ID(), result[1].ID)
	})
}

func TestNewGetOrdersQuery_InvalidStatus(t *testing.T) {
	unknown := order.Unknown
	_, err := queries.NewGetOrdersQuery(kernel.NewUUID(), &unknown)
	require.Error(t, err)
}
