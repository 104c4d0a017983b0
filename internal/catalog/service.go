package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Service is the catalog: validation and image handling in front of a Store.
type Service struct {
	store    Store
	images   ImageResolver
	validate *validator.Validate
	metrics  *Metrics
}

func NewService(store Store, images ImageResolver, metrics *Metrics) *Service {
	s := &Service{
		store:    store,
		images:   images,
		validate: newValidator(images),
		metrics:  metrics,
	}

	if n, err := store.Len(context.Background()); err == nil {
		metrics.setProducts(n)
	}
	return s
}

func (s *Service) ImagePolicy() ImagePolicy { return s.images.Policy() }

func (s *Service) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (Product, error) {
	return s.store.Get(ctx, id)
}

// Create validates c, stores an uploaded image if one was accepted, and
// appends the product. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, c Candidate, up *Upload) (Product, error) {
	staged, err := s.prepare(c, up)
	if err != nil {
		return Product{}, err
	}
	if staged != nil {
		c.Image = staged.Ref
	}

	p, err := s.store.Create(ctx, c.product(0))
	if err != nil {
		staged.Discard()
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	s.refreshCount(ctx)
	return p, nil
}

// Update replaces product id with c, keeping its position. The id in the
// path always wins over anything in the payload.
func (s *Service) Update(ctx context.Context, id int, c Candidate, up *Upload) (Product, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return Product{}, err
	}

	staged, err := s.prepare(c, up)
	if err != nil {
		return Product{}, err
	}
	if staged != nil {
		c.Image = staged.Ref
	}

	p, err := s.store.Update(ctx, id, c.product(id))
	if err != nil {
		staged.Discard()
		return Product{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshCount(ctx)
	return nil
}

// prepare stages the upload, validates the candidate with the staged
// reference in place, then writes the file.
func (s *Service) prepare(c Candidate, up *Upload) (*StagedImage, error) {
	staged, err := s.images.Stage(up)
	if err != nil {
		s.metrics.upload("rejected")
		return nil, err
	}
	if staged != nil {
		c.Image = staged.Ref
	}

	if err := check(s.validate, c); err != nil {
		return nil, err
	}

	if staged != nil {
		if err := staged.Commit(); err != nil {
			s.metrics.upload("failed")
			return nil, err
		}
		s.metrics.upload("stored")
	}
	return staged, nil
}

func (s *Service) refreshCount(ctx context.Context) {
	if n, err := s.store.Len(ctx); err == nil {
		s.metrics.setProducts(n)
	}
}
