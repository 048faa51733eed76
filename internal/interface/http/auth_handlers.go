package http

import (
	"errors"
	"net/http"

	"example.com/tienda-online/internal/domain/catalog"
	domuser "example.com/tienda-online/internal/domain/user"
	authuc "example.com/tienda-online/internal/usecase/auth"
)

type loginRequest struct {
	Username string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respond(w, http.StatusBadRequest, false, "Datos inválidos", nil)
		return
	}

	result, err := a.authSvc.Login(r.Context(), authuc.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domuser.ErrUsersUnavailable),
			errors.Is(err, catalog.ErrCatalogNotFound),
			errors.Is(err, catalog.ErrCatalogCorrupt):
			respond(w, http.StatusOK, false, "Error del servidor: Archivos de datos no encontrados.", nil)
		case errors.Is(err, domuser.ErrUnauthorized),
			errors.Is(err, domuser.ErrInvalidCredential),
			errors.Is(err, domuser.ErrUserNotFound):
			respond(w, http.StatusUnauthorized, false, "Usuario o contraseña incorrectos", nil)
		default:
			respond(w, http.StatusInternalServerError, false, "Error del servidor", nil)
		}
		return
	}

	respond(w, http.StatusOK, true, "Login correcto", map[string]any{
		"token": result.Token,
		"data":  result.Catalog,
	})
}
