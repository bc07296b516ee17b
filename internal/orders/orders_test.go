package orders

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenroots/storefront/internal/model"
)

type fakeOrdersAPI struct {
	orders    []model.Order
	listErr   error
	cancelErr error

	listCalls   int
	cancelCalls int
}

func (f *fakeOrdersAPI) MyOrders(_ context.Context, _ url.Values) ([]model.Order, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeOrdersAPI) GetOrder(_ context.Context, id uuid.UUID) (*model.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			out := o
			return &out, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeOrdersAPI) CancelOrder(_ context.Context, id uuid.UUID) (*model.Order, error) {
	f.cancelCalls++
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	for _, o := range f.orders {
		if o.ID == id {
			out := o
			out.OrderStatus = model.OrderCancelled
			out.StatusHistory = append(out.StatusHistory, model.StatusChange{Status: model.OrderCancelled})
			return &out, nil
		}
	}
	return nil, assert.AnError
}

func order(status model.OrderStatus) model.Order {
	return model.Order{ID: uuid.New(), OrderStatus: status}
}

func TestHistory_FetchComputesCounts(t *testing.T) {
	fake := &fakeOrdersAPI{orders: []model.Order{
		order(model.OrderProcessing),
		order(model.OrderProcessing),
		order(model.OrderDelivered),
		order(model.OrderCancelled),
	}}
	h := NewHistory(fake, nil)

	st := h.Fetch(context.Background())
	assert.Len(t, st.Orders, 4)
	assert.Equal(t, Counts{Processing: 2, Delivered: 1, Cancelled: 1}, st.Counts)
	assert.False(t, st.Loading)
}

func TestHistory_FetchErrorKeepsPriorList(t *testing.T) {
	fake := &fakeOrdersAPI{orders: []model.Order{order(model.OrderProcessing)}}
	h := NewHistory(fake, nil)
	h.Fetch(context.Background())

	fake.listErr = assert.AnError
	st := h.Fetch(context.Background())
	assert.Equal(t, assert.AnError.Error(), st.Err)
	assert.Len(t, st.Orders, 1)
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(order(model.OrderProcessing)))
	assert.False(t, CanCancel(order(model.OrderDelivered)))
	assert.False(t, CanCancel(order(model.OrderCancelled)))
}

func TestHistory_CancelPatchesLocallyWithoutRefetch(t *testing.T) {
	target := order(model.OrderProcessing)
	fake := &fakeOrdersAPI{orders: []model.Order{target, order(model.OrderDelivered)}}
	h := NewHistory(fake, nil)
	h.Fetch(context.Background())
	require.Equal(t, 1, fake.listCalls)

	st := h.Cancel(context.Background(), target.ID)
	assert.Equal(t, model.OrderCancelled, st.Orders[0].OrderStatus)
	assert.Equal(t, Counts{Delivered: 1, Cancelled: 1}, st.Counts)
	assert.Equal(t, 1, fake.listCalls, "no re-fetch on cancel")
	assert.NotEmpty(t, st.Orders[0].StatusHistory)
}

func TestHistory_CancelRefusedOutsideProcessing(t *testing.T) {
	target := order(model.OrderDelivered)
	fake := &fakeOrdersAPI{orders: []model.Order{target}}
	h := NewHistory(fake, nil)
	h.Fetch(context.Background())

	st := h.Cancel(context.Background(), target.ID)
	assert.Equal(t, "Only processing orders can be cancelled", st.Err)
	assert.Equal(t, model.OrderDelivered, st.Orders[0].OrderStatus)
	assert.Zero(t, fake.cancelCalls)
}

func TestHistory_CancelFailureLeavesStatusUnchanged(t *testing.T) {
	target := order(model.OrderProcessing)
	fake := &fakeOrdersAPI{orders: []model.Order{target}, cancelErr: assert.AnError}
	h := NewHistory(fake, nil)
	h.Fetch(context.Background())

	st := h.Cancel(context.Background(), target.ID)
	assert.Equal(t, assert.AnError.Error(), st.Err)
	assert.Equal(t, model.OrderProcessing, st.Orders[0].OrderStatus)
	assert.Equal(t, Counts{Processing: 1}, st.Counts)
}

func TestDetail_LoadAndCancel(t *testing.T) {
	target := order(model.OrderProcessing)
	fake := &fakeOrdersAPI{orders: []model.Order{target}}
	d := NewDetail(fake, nil)

	require.NoError(t, d.Load(context.Background(), target.ID))
	require.NotNil(t, d.Order())
	assert.True(t, CanCancel(*d.Order()))

	require.NoError(t, d.Cancel(context.Background()))
	assert.Equal(t, model.OrderCancelled, d.Order().OrderStatus)
	assert.Equal(t, 1, fake.cancelCalls)
}

func TestDetail_CancelRefusedWhenDelivered(t *testing.T) {
	target := order(model.OrderDelivered)
	fake := &fakeOrdersAPI{orders: []model.Order{target}}
	d := NewDetail(fake, nil)
	require.NoError(t, d.Load(context.Background(), target.ID))

	require.NoError(t, d.Cancel(context.Background()))
	assert.Equal(t, "Only processing orders can be cancelled", d.Err())
	assert.Zero(t, fake.cancelCalls)
}

func TestDetail_Refresh(t *testing.T) {
	target := order(model.OrderProcessing)
	fake := &fakeOrdersAPI{orders: []model.Order{target}}
	d := NewDetail(fake, nil)
	require.NoError(t, d.Load(context.Background(), target.ID))

	fake.orders[0].OrderStatus = model.OrderDelivered
	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, model.OrderDelivered, d.Order().OrderStatus)
}

func TestHistory_ConcurrentCancelAndReads(t *testing.T) {
	list := []model.Order{order(model.OrderProcessing), order(model.OrderProcessing)}
	fake := &fakeOrdersAPI{orders: list}
	h := NewHistory(fake, nil)
	h.Fetch(context.Background())

	var wg sync.WaitGroup
	for _, o := range list {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			h.Cancel(context.Background(), id)
		}(o.ID)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.State()
		}()
	}
	wg.Wait()

	st := h.State()
	assert.Equal(t, 2, st.Counts.Cancelled)
	assert.Equal(t, 2, fake.cancelCalls)
}
