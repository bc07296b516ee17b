package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRef_UnmarshalBareID(t *testing.T) {
	id := uuid.New()
	var ref ProductRef
	require.NoError(t, json.Unmarshal([]byte(`"`+id.String()+`"`), &ref))

	assert.True(t, ref.Resolvable())
	assert.Equal(t, id, ref.ID)
	assert.Nil(t, ref.Product)
}

func TestProductRef_UnmarshalPopulated(t *testing.T) {
	id := uuid.New()
	raw := []byte(`{"id":"` + id.String() + `","name":"Biogas Plant 2m3","type":"biogas","price":"14500"}`)

	var ref ProductRef
	require.NoError(t, json.Unmarshal(raw, &ref))

	assert.True(t, ref.Resolvable())
	assert.Equal(t, id, ref.ID)
	require.NotNil(t, ref.Product)
	assert.Equal(t, "Biogas Plant 2m3", ref.Name())
}

func TestProductRef_UnmarshalNull(t *testing.T) {
	var ref ProductRef
	require.NoError(t, json.Unmarshal([]byte(`null`), &ref))
	assert.False(t, ref.Resolvable())
}

func TestProductRef_MarshalRoundTrip(t *testing.T) {
	id := uuid.New()
	ref := ProductRef{ID: id, Product: &Product{ID: id, Name: "Compost"}}

	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+id.String()+`"`, string(data))

	empty := ProductRef{}
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestCartItem_UnmarshalFromServerPayload(t *testing.T) {
	id := uuid.New()
	raw := []byte(`{"id":"` + uuid.NewString() + `","productId":"` + id.String() + `","quantity":2,"price":"350.50"}`)

	var item CartItem
	require.NoError(t, json.Unmarshal(raw, &item))
	assert.Equal(t, id, item.ProductID.ID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "350.5", item.Price.String())
}
