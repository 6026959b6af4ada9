package http

import (
	"net/http"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model/auth"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type AuthUseCase = usecase.AuthUseCaseInterface

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userMeResponse struct {
	Sub   string     `json:"sub"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  types.Role `json:"role"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      userMeResponse `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func meOf(token *auth.Token) userMeResponse {
	return userMeResponse{
		Sub:   token.Sub,
		Email: token.Email,
		Name:  token.Name,
		Role:  token.Role,
	}
}

// authRoutes registers the public login route and the authenticated
// session routes.
func (s *Server) authRoutes(r chi.Router) {
	r.Post("/login", authLoginHandler(s.authUC))

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))
		r.Get("/me", authMeHandler)
		r.Post("/logout", authLogoutHandler(s.authUC))
		r.Post("/register", placeholder("User registration"))
	})
}

// authLoginHandler exchanges e-mail and password for a signed token
func authLoginHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		signed, token, err := authUC.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respond(w, r, http.StatusOK, loginResponse{
			Token:     signed,
			ExpiresAt: token.ExpiresAt,
			User:      meOf(token),
		})
	}
}

// authMeHandler returns the authenticated user
func authMeHandler(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromContext(r.Context())
	if token == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("not authenticated"), http.StatusUnauthorized)
		return
	}
	respond(w, r, http.StatusOK, meOf(token))
}

// authLogoutHandler revokes the session of the presented token
func authLogoutHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromContext(r.Context())
		if token != nil && !token.IsAnonymous() {
			if err := authUC.Logout(r.Context(), token.ID); err != nil {
				handleError(w, r, err)
				return
			}
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
