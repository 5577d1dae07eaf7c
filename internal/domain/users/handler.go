package users

import (
	"errors"
	"net/http"

	"petplus/internal/domain/media"
	"petplus/internal/middleware"
	"petplus/internal/platform/respond"
	"petplus/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, uploadLimit int64) {
	r.Post("/auth/register", registerHandler(svc, uploadLimit))
	r.Post("/auth/login", loginHandler(svc))

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Get("/users/me", getProfileHandler(svc))
		pr.Put("/users/me", updateProfileHandler(svc, uploadLimit))

		// alias que usa el cliente web
		pr.Get("/auth/profile", getProfileHandler(svc))
		pr.Put("/auth/profile", updateProfileHandler(svc, uploadLimit))
	})
}

// registerRequest documenta los campos; también se aceptan como multipart (+ photo).
type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	RemovePhoto     bool   `json:"removePhoto"`
}

// userResponse es la vista pública de un usuario (sin hash).
type userResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	PhotoURL *string `json:"photoUrl"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    auth.Claims `json:"user"`
}

type profileUpdatedResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea una cuenta. Acepta JSON o multipart/form-data con una foto opcional en el campo `photo` (jpg, jpeg, png, webp; máx. 5 MiB).
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Param payload body registerRequest true "Datos de registro"
// @Success 201 {object} registerResponse
// @Failure 400 {object} respond.ErrorBody "campos faltantes / passwords / foto rechazada / email ya registrado"
// @Failure 413 {object} respond.ErrorBody "file too large"
// @Failure 502 {object} respond.ErrorBody "image upload failed"
// @Router /auth/register [post]
func registerHandler(svc *Service, uploadLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, photo, err := media.ReadFields(w, r, uploadLimit)
		if err != nil {
			writeError(w, r, err)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:            fields.Get("name"),
			Email:           fields.Get("email"),
			Phone:           fields.Get("phone"),
			Password:        fields.Raw("password"),
			ConfirmPassword: fields.Raw("confirmPassword"),
			Photo:           photo,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusCreated, registerResponse{
			Message: "registration successful",
			User:    toUserResponse(u),
		})
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Devuelve un token HS256 válido por 24 horas y los claims de la sesión.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 400 {object} respond.ErrorBody "all fields are required"
// @Failure 401 {object} respond.ErrorBody "invalid credentials"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, _, err := media.ReadFields(w, r, 0)
		if err != nil {
			writeError(w, r, err)
			return
		}

		res, err := svc.Login(r.Context(), fields.Get("email"), fields.Raw("password"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, loginResponse{
			Message: "welcome, " + res.Claims.Name + "!",
			Token:   res.Token,
			User:    res.Claims,
		})
	}
}

// getProfileHandler godoc
// @Summary Ver mi perfil
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Success 200 {object} userResponse
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "user not found"
// @Router /users/me [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		u, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, toUserResponse(u))
	}
}

// updateProfileHandler godoc
// @Summary Actualizar mi perfil
// @Description name y phone son obligatorios. password (+confirmPassword) y photo son opcionales; removePhoto=true borra la foto actual. Lo que no se envía queda como está.
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body updateProfileRequest true "Campos del perfil"
// @Success 200 {object} profileUpdatedResponse
// @Failure 400 {object} respond.ErrorBody "validación / foto rechazada"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "user not found"
// @Failure 502 {object} respond.ErrorBody "image upload failed"
// @Router /users/me [put]
func updateProfileHandler(svc *Service, uploadLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		fields, photo, err := media.ReadFields(w, r, uploadLimit)
		if err != nil {
			writeError(w, r, err)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), userID, UpdateProfileInput{
			Name:            fields.Get("name"),
			Phone:           fields.Get("phone"),
			Password:        fields.Raw("password"),
			ConfirmPassword: fields.Raw("confirmPassword"),
			Photo:           photo,
			RemovePhoto:     fields.Bool("removePhoto"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, profileUpdatedResponse{
			Message: "profile updated",
			User:    toUserResponse(u),
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status, msg, ok := media.HTTPStatus(err); ok {
		respond.Error(w, status, msg)
		return
	}

	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrProfileFields),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrEmailTaken):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	default:
		respond.Internal(w, r, err)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		PhotoURL: u.PhotoURL,
	}
}
