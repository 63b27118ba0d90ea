package pos

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/novalabs/novapos-backend/internal/modules/auth"
	"github.com/novalabs/novapos-backend/internal/modules/checkout"
)

// Handler exposes the register session HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/pos/sessions", func(r chi.Router) {
		r.Post("/", h.openSession)
		r.Route("/{sid}", func(r chi.Router) {
			r.Delete("/", h.closeSession)
			r.Get("/cart", h.getCart)
			r.Post("/cart/items", h.addItem)
			r.Put("/cart/items/{product_id}", h.setQuantity)
			r.Delete("/cart/items/{product_id}", h.removeItem)
			r.Delete("/cart", h.clearCart)
			r.Post("/keys", h.keyPress)
			r.Post("/checkout", h.doCheckout)
		})
	})
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	id := h.service.OpenSession()
	respond(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	h.service.CloseSession(chi.URLParam(r, "sid"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Cart(chi.URLParam(r, "sid"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view, err := h.service.AddItem(chi.URLParam(r, "sid"), req.ProductID, req.Quantity)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view, err := h.service.SetQuantity(chi.URLParam(r, "sid"), chi.URLParam(r, "product_id"), req.Quantity)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveItem(chi.URLParam(r, "sid"), chi.URLParam(r, "product_id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ClearCart(chi.URLParam(r, "sid"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) keyPress(w http.ResponseWriter, r *http.Request) {
	var ev KeyEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	at := time.Now()
	if ev.TsMs > 0 {
		at = time.UnixMilli(ev.TsMs)
	}
	result, err := h.service.KeyPress(chi.URLParam(r, "sid"), ev.Key, at)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) doCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	tx, err := h.service.Checkout(r.Context(), chi.URLParam(r, "sid"), userID,
		checkout.PaymentMethod(req.PaymentMethod))
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrInvalidPaymentMethod):
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			// Transaction may be partially recorded; the cart is preserved
			// so the cashier can retry.
			respond(w, http.StatusBadGateway, map[string]string{"error": "checkout failed: " + err.Error()})
		}
		return
	}
	respond(w, http.StatusCreated, tx)
}

func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
