package handler

import (
	"errors"
	"net/http"

	"github.com/wildwave/safari-admin/internal/server/store"
)

// list serves every record of c.
func list[T any](h *Handler, c *store.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := c.List(r.Context())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, r, http.StatusOK, items)
	}
}

// create decodes an In body, builds a record from it and stores it.
func create[In, T any](h *Handler, c *store.Collection[T], build func(In) T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decode(r, &in); err != nil {
			h.writeError(w, r, err)
			return
		}
		rec, err := c.Create(r.Context(), build(in))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, r, http.StatusCreated, rec)
	}
}

// update decodes an In body and applies it to the record named by the
// path id.
func update[In, T any](h *Handler, c *store.Collection[T], kind string, apply func(*T, In)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decode(r, &in); err != nil {
			h.writeError(w, r, err)
			return
		}
		id := pathID(r)
		rec, err := c.Update(r.Context(), id, func(v *T) error {
			apply(v, in)
			return nil
		})
		if errors.Is(err, store.ErrNotFound) {
			err = notFound(kind, id)
		}
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, r, http.StatusOK, rec)
	}
}

// remove deletes the record named by the path id.
func remove[T any](h *Handler, c *store.Collection[T], kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		err := c.Delete(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			err = notFound(kind, id)
		}
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeMessage(w, r, http.StatusOK, kind+" deleted")
	}
}
