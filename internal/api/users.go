package api

import (
	"errors"
	"net/http"

	"github.com/huertohogar/huerto-api/internal/auth"
)

// handleMe returns the profile of the authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Usuario no autenticado")
		return
	}

	user, err := s.users.GetByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			// Token outlives the account: no revocation, so a deleted user
			// still presents a valid signature.
			writeNotFound(w, "Usuario no encontrado")
			return
		}
		s.logger.Error("profile lookup failed", "error", err, "user_id", claims.Subject)
		writeInternalError(w, "Error al obtener el perfil")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserResponse(user),
	})
}

// handleListUsers returns all registered users. Admin only.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error("user list failed", "error", err)
		writeInternalError(w, "Error al obtener los usuarios")
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": out,
		"total": len(out),
	})
}
