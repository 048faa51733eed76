package http

import (
	"errors"
	"net/http"

	"example.com/tienda-online/internal/domain/catalog"
	"example.com/tienda-online/internal/obs"
	checkoutuc "example.com/tienda-online/internal/usecase/checkout"
)

// ProductID carries no validation: an id that matches nothing, zero
// included, is handled by the tolerant unknown-line policy downstream.
type cartLineRequest struct {
	ProductID int64 `json:"id"`
	Quantity  int64 `json:"cantidad" validate:"required,gt=0"`
}

type checkoutRequest struct {
	Token       string            `json:"token"`
	Cart        []cartLineRequest `json:"carrito" validate:"dive"`
	ClientTotal float64           `json:"total_cliente"`
}

func (a *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respond(w, http.StatusOK, false, "Datos inválidos", nil)
		return
	}

	// The token travels in the body, not a header, for compatibility with
	// the existing browser client. Verified before any catalog access.
	if err := a.tokenSvc.Verify(req.Token); err != nil {
		respond(w, http.StatusUnauthorized, false, "Sesión no válida o expirada", nil)
		return
	}

	cart := make([]catalog.CartLine, 0, len(req.Cart))
	for _, line := range req.Cart {
		cart = append(cart, catalog.CartLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	settlement, err := a.checkoutSvc.Settle(r.Context(), cart, req.ClientTotal)
	if err != nil {
		a.respondCheckoutError(w, err)
		return
	}

	obs.Logger.Info("checkout settled",
		"receipt", settlement.Receipt.ID,
		"total", settlement.ValidatedTotal,
		"lines", len(settlement.Receipt.Lines),
	)
	respond(w, http.StatusOK, true, "Compra realizada con éxito", map[string]any{
		"total_validado": settlement.ValidatedTotal,
		"recibo":         settlement.Receipt.ID,
		"data":           settlement.Catalog,
	})
}

func (a *API) respondCheckoutError(w http.ResponseWriter, err error) {
	var mismatch *checkoutuc.PriceMismatchError
	switch {
	case errors.Is(err, checkoutuc.ErrEmptyCart):
		respond(w, http.StatusOK, false, "El carrito está vacío", nil)
	case errors.As(err, &mismatch):
		respond(w, http.StatusOK, false,
			"El precio de los productos ha cambiado o es incorrecto. Se han actualizado los datos.",
			map[string]any{"data": mismatch.Catalog})
	case errors.Is(err, checkoutuc.ErrInsufficientStock):
		respond(w, http.StatusOK, false, "No hay suficiente stock para algunos productos.", nil)
	case errors.Is(err, checkoutuc.ErrUnknownProduct):
		respond(w, http.StatusOK, false, "Algunos productos del carrito ya no existen.", nil)
	case errors.Is(err, checkoutuc.ErrNothingSettled):
		respond(w, http.StatusOK, false, "No se pudo procesar ningún producto", nil)
	case errors.Is(err, catalog.ErrVersionConflict):
		respond(w, http.StatusConflict, false, "La tienda está ocupada, inténtalo de nuevo.", nil)
	case errors.Is(err, checkoutuc.ErrNotPersisted):
		obs.Logger.Error("settlement persist failed", "error", err)
		respond(w, http.StatusOK, false, "Error al guardar los datos de la compra", nil)
	case errors.Is(err, catalog.ErrCatalogNotFound),
		errors.Is(err, catalog.ErrCatalogCorrupt):
		respond(w, http.StatusOK, false, "Error del servidor: Base de datos no encontrada", nil)
	default:
		obs.Logger.Error("checkout failed", "error", err)
		respond(w, http.StatusInternalServerError, false, "Error del servidor", nil)
	}
}
