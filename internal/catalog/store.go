package catalog

import (
	"context"
	"fmt"
)

// Store holds the product collection in insertion order.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, error)
	// Create assigns the id and appends.
	Create(ctx context.Context, p Product) (Product, error)
	// Update replaces the record in place; the stored id is always id.
	Update(ctx context.Context, id int, p Product) (Product, error)
	Delete(ctx context.Context, id int) error
	Len(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// IDStrategy decides the id handed to a newly created product.
type IDStrategy string

const (
	// IDMaxPlusOne keeps ids unique after deletions.
	IDMaxPlusOne IDStrategy = "max"
	// IDLength uses len(collection)+1, which can repeat an id once
	// something has been deleted.
	IDLength IDStrategy = "length"
)

func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(s) {
	case IDMaxPlusOne, "":
		return IDMaxPlusOne, nil
	case IDLength:
		return IDLength, nil
	default:
		return "", fmt.Errorf("unknown id strategy %q", s)
	}
}
