package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/huertohogar/huerto-api/internal/auth"
)

// registerRequest is the request body for POST /api/auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// userResponse is the public view of a user. The password hash never
// leaves the server.
type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// sessionResponse is the body returned by register and login.
type sessionResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

func toUserResponse(user *auth.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
	}
}

// handleRegister creates a new account and returns a session token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Cuerpo de la petición inválido")
		return
	}

	if req.Email == "" || req.Password == "" || req.Username == "" {
		writeBadRequest(w, "Email, password y username son requeridos")
		return
	}
	if !auth.IsValidEmail(req.Email) {
		writeBadRequest(w, "El formato del email no es válido")
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		writeBadRequest(w, fmt.Sprintf("La contraseña debe tener al menos %d caracteres", auth.MinPasswordLength))
		return
	}

	role := auth.RoleUser
	if req.Role != "" {
		role = auth.Role(req.Role)
		if !auth.IsValidRole(role) {
			writeBadRequest(w, "Rol inválido")
			return
		}
	}

	session, err := s.auth.Register(r.Context(), req.Email, req.Password, req.Username, role)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeBadRequest(w, "El email ya está registrado")
			return
		}
		s.logger.Error("registration failed", "error", err, "email", req.Email)
		writeInternalError(w, "Error al registrar el usuario")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Message: "Usuario registrado exitosamente",
		Token:   session.Token,
		User:    toUserResponse(session.User),
	})
}

// loginRequest is the request body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin authenticates a user and returns a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Cuerpo de la petición inválido")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "Email y password son requeridos")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeUnauthorized(w, "Credenciales inválidas")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeInternalError(w, "Error al iniciar sesión")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Message: "Login exitoso",
		Token:   session.Token,
		User:    toUserResponse(session.User),
	})
}
