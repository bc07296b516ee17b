package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/greenroots/storefront/internal/model"
)

type fakeCatalogAPI struct {
	products []model.Product
	err      error
}

func (f *fakeCatalogAPI) ListProducts(_ context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalogAPI) GetProduct(_ context.Context, id uuid.UUID) (*model.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, assert.AnError
}

func TestView_FilterByCategory(t *testing.T) {
	fake := &fakeCatalogAPI{products: []model.Product{
		{ID: uuid.New(), Name: "Biogas Plant 2m3", Type: model.ProductBiogas},
		{ID: uuid.New(), Name: "Organic Compost 5kg", Type: model.ProductFertilizer},
		{ID: uuid.New(), Name: "Biogas Stove", Type: model.ProductBiogas},
	}}
	view := NewView(fake, nil)
	view.Fetch(context.Background())

	assert.Len(t, view.Visible(), 3)

	view.SetFilter(FilterBiogas)
	assert.Len(t, view.Visible(), 2)

	view.SetFilter(FilterFertilizer)
	visible := view.Visible()
	assert.Len(t, visible, 1)
	assert.Equal(t, "Organic Compost 5kg", visible[0].Name)
}

func TestView_FetchError(t *testing.T) {
	view := NewView(&fakeCatalogAPI{err: assert.AnError}, nil)
	st := view.Fetch(context.Background())
	assert.Equal(t, assert.AnError.Error(), st.Err)
	assert.Empty(t, view.Visible())
}

func TestView_ConcurrentFetchAndRead(t *testing.T) {
	fake := &fakeCatalogAPI{products: []model.Product{
		{ID: uuid.New(), Name: "Biogas Plant 2m3", Type: model.ProductBiogas},
		{ID: uuid.New(), Name: "Organic Compost 5kg", Type: model.ProductFertilizer},
	}}
	view := NewView(fake, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			view.Fetch(context.Background())
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = view.Visible()
			_ = view.State()
		}()
	}
	wg.Wait()

	assert.Len(t, view.State().Products, 2)
	assert.Len(t, view.Visible(), 2)
}
