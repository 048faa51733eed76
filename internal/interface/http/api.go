package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	authuc "example.com/tienda-online/internal/usecase/auth"
	checkoutuc "example.com/tienda-online/internal/usecase/checkout"
)

type API struct {
	authSvc     *authuc.Service
	checkoutSvc *checkoutuc.Service
	tokenSvc    authuc.TokenService
	validator   *validator.Validate
}

type Dependencies struct {
	AuthService     *authuc.Service
	CheckoutService *checkoutuc.Service
	TokenService    authuc.TokenService
}

func NewAPI(deps Dependencies) *API {
	return &API{
		authSvc:     deps.AuthService,
		checkoutSvc: deps.CheckoutService,
		tokenSvc:    deps.TokenService,
		validator:   validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(corsHeaders)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", a.handleLogin)
		r.Post("/carrito", a.handleCheckout)
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respond shapes the {success, message, ...} envelope every endpoint speaks.
func respond(w http.ResponseWriter, status int, success bool, message string, extra map[string]any) {
	payload := map[string]any{
		"success": success,
		"message": message,
	}
	for k, v := range extra {
		payload[k] = v
	}
	writeJSON(w, status, payload)
}
