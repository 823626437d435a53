package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/repository"
	"github.com/Dan9191/finance-tracker/internal/utils"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

// recordStore is the per-kind repository surface a Resource serves.
type recordStore[R, P, In any] interface {
	List(ctx context.Context, userID string) ([]R, error)
	Get(ctx context.Context, userID, id string) (*R, error)
	Create(ctx context.Context, userID string, in In) (*R, error)
	Update(ctx context.Context, userID, id string, p P) (*R, error)
	Delete(ctx context.Context, userID, id string) error
}

// syncable is an input element of a bulk sync: it updates when it carries an
// id and creates otherwise.
type syncable[P any] interface {
	RecordID() string
	AsPatch() P
}

// Resource serves the CRUD routes of one record kind.
type Resource[R, P any, In syncable[P]] struct {
	h     *Handler
	kind  string
	store recordStore[R, P, In]
}

func newResource[R, P any, In syncable[P]](h *Handler, kind string, store recordStore[R, P, In]) *Resource[R, P, In] {
	return &Resource[R, P, In]{h: h, kind: kind, store: store}
}

// List handles GET /{kind}
func (res *Resource[R, P, In]) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := res.h.userID(w, r)
	if !ok {
		return
	}
	items, err := res.store.List(r.Context(), userID)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, nonNil(items))
}

// Get handles GET /{kind}/{id}
func (res *Resource[R, P, In]) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := res.h.userID(w, r)
	if !ok {
		return
	}
	item, err := res.store.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

// Create handles POST /{kind}
func (res *Resource[R, P, In]) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := res.h.userID(w, r)
	if !ok {
		return
	}
	var in In
	if err := res.h.decodeAndValidate(w, r, &in); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	item, err := res.store.Create(r.Context(), userID, in)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	res.h.log.WithField("user_id", userID).Debugf("Created %s", res.kind)
	utils.WriteJSON(w, http.StatusOK, item)
}

// Sync handles PUT /{kind}: every element with an id is updated, every element
// without one is created. Writes run concurrently and are not atomic; the
// response is the caller's full list.
func (res *Resource[R, P, In]) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := res.h.userID(w, r)
	if !ok {
		return
	}
	var items []In
	if err := decode(w, r, &items); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	var fieldErrs []FieldError
	for i := range items {
		fieldErrs = append(fieldErrs, res.h.check(&items[i], fmt.Sprintf("[%d].", i))...)
	}
	if len(fieldErrs) > 0 {
		res.h.writeError(w, r, &ValidationError{Errors: fieldErrs})
		return
	}

	ctx := r.Context()
	var g errgroup.Group
	for _, item := range items {
		item := item
		g.Go(func() error {
			if id := item.RecordID(); id != "" {
				_, err := res.store.Update(ctx, userID, id, item.AsPatch())
				return err
			}
			_, err := res.store.Create(ctx, userID, item)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			err = fmt.Errorf("sync %s: %w", res.kind, err)
		}
		res.h.writeError(w, r, err)
		return
	}

	all, err := res.store.List(ctx, userID)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	res.h.log.WithField("user_id", userID).Debugf("Synced %d %s records", len(items), res.kind)
	utils.WriteJSON(w, http.StatusOK, nonNil(all))
}

// Patch handles PATCH /{kind}/{id}
func (res *Resource[R, P, In]) Patch(w http.ResponseWriter, r *http.Request) {
	userID, ok := res.h.userID(w, r)
	if !ok {
		return
	}
	var p P
	if err := res.h.decodeAndValidate(w, r, &p); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	item, err := res.store.Update(r.Context(), userID, mux.Vars(r)["id"], p)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /{kind}/{id}
func (res *Resource[R, P, In]) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := res.h.userID(w, r)
	if !ok {
		return
	}
	if err := res.store.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
