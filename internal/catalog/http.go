package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SunCatalog/pkg/kit"
)

const (
	msgCreated  = "Product added successfully!"
	msgUpdated  = "Product updated successfully!"
	msgDeleted  = "Product deleted successfully!"
	msgNotFound = "Product not found"
)

type Server struct {
	Service        *Service
	Log            *zap.Logger
	MaxUploadBytes int64
}

type productEnvelope struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

type messageBody struct {
	Message string `json:"message"`
}

// Routes mounts the product API. Write endpoints get the extra middleware,
// reads never do.
func (s *Server) Routes(writeMW ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)

	r.Group(func(wr chi.Router) {
		wr.Use(writeMW...)
		wr.Post("/products", s.create)
		wr.Put("/products/{id}", s.update)
		wr.Delete("/products/{id}", s.remove)
	})

	return r
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Service.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Service.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	p, err := s.Service.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	c, up, err := decodeRequest(w, r, s.maxUpload())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	p, err := s.Service.Create(r.Context(), c, up)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger().Info("product created", zap.Int("id", p.ID), zap.String("name", p.Name))
	kit.WriteJSON(w, http.StatusCreated, productEnvelope{Message: msgCreated, Product: p})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	c, up, err := decodeRequest(w, r, s.maxUpload())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	p, err := s.Service.Update(r.Context(), id, c, up)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger().Info("product updated", zap.Int("id", p.ID))
	kit.WriteJSON(w, http.StatusOK, productEnvelope{Message: msgUpdated, Product: p})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	if err := s.Service.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger().Info("product deleted", zap.Int("id", id))
	kit.WriteJSON(w, http.StatusOK, messageBody{Message: msgDeleted})
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *ValidationError
		uerr *UploadError
	)

	switch {
	case errors.As(err, &verr):
		kit.WriteError(w, r, http.StatusBadRequest, verr.Message)
	case errors.As(err, &uerr):
		kit.WriteError(w, r, http.StatusBadRequest, uerr.Message)
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound)
	default:
		s.logger().Error("catalog request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		kit.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) maxUpload() int64 {
	if s.MaxUploadBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return s.MaxUploadBytes
}

// productID parses the {id} path segment. Anything that is not a positive
// integer cannot name a product.
func productID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
