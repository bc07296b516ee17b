package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ProductRef is a cart line's link to its product. The server sends either a
// bare product id or, when the reference was populated server-side, the full
// product object. Deleted products come through as null, which leaves the ref
// unresolvable.
type ProductRef struct {
	ID      uuid.UUID
	Product *Product
}

func (r ProductRef) Resolvable() bool {
	return r.ID != uuid.Nil
}

// Name returns the product name when the ref was populated, empty otherwise.
func (r ProductRef) Name() string {
	if r.Product != nil {
		return r.Product.Name
	}
	return ""
}

func (r ProductRef) MarshalJSON() ([]byte, error) {
	if !r.Resolvable() {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

func (r *ProductRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ProductRef{}
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Product = nil
		return nil
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	r.ID = p.ID
	r.Product = &p
	return nil
}
