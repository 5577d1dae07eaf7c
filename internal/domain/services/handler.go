package services

import (
	"errors"
	"net/http"
	"time"

	"petplus/internal/domain/media"
	"petplus/internal/middleware"
	"petplus/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/services", func(sr chi.Router) {
		sr.Get("/", listServicesHandler(svc))

		sr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)

			ar.Post("/", createServiceHandler(svc))
			ar.Delete("/{serviceID}", deleteServiceHandler(svc))
		})
	})
}

type serviceRequest struct {
	Name         string `json:"name"`
	Professional string `json:"professional"`
	Description  string `json:"description"`
	Phone        string `json:"phone"`
}

type serviceResponse struct {
	ID            string    `json:"id"`
	ProviderID    string    `json:"providerId"`
	Name          string    `json:"name"`
	Professional  string    `json:"professional"`
	Description   string    `json:"description"`
	Phone         string    `json:"phone"`
	ContactHidden bool      `json:"contactHidden"`
	CreatedAt     time.Time `json:"createdAt"`
}

// listServicesHandler godoc
// @Summary Listar servicios
// @Description Público. Sin sesión el teléfono viene vacío y contactHidden=true.
// @Tags services
// @Produce json
// @Param Authorization header string false "Bearer <token> (opcional, muestra el contacto)"
// @Success 200 {array} serviceResponse
// @Router /services [get]
func listServicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, _ := middleware.UserID(r.Context())

		items, err := svc.List(r.Context(), viewerID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		out := make([]serviceResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toServiceResponse(v))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// createServiceHandler godoc
// @Summary Publicar servicio
// @Tags services
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body serviceRequest true "Datos del servicio"
// @Success 201 {object} serviceResponse
// @Failure 400 {object} respond.ErrorBody "name and phone are required"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Router /services [post]
func createServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		fields, _, err := media.ReadFields(w, r, 0)
		if err != nil {
			writeError(w, r, err)
			return
		}

		l, err := svc.Create(r.Context(), userID, CreateInput{
			Name:         fields.Get("name"),
			Professional: fields.Get("professional"),
			Description:  fields.Get("description"),
			Phone:        fields.Get("phone"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusCreated, toServiceResponse(View{Listing: l}))
	}
}

// deleteServiceHandler godoc
// @Summary Borrar servicio
// @Description Solo el proveedor que lo publicó. Ajeno o inexistente responde 404.
// @Tags services
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param serviceID path string true "ID del servicio"
// @Success 200 {object} respond.MessageBody
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "service not found"
// @Router /services/{serviceID} [delete]
func deleteServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "serviceID"), userID); err != nil {
			writeError(w, r, err)
			return
		}

		respond.Message(w, http.StatusOK, "service deleted")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status, msg, ok := media.HTTPStatus(err); ok {
		respond.Error(w, status, msg)
		return
	}

	switch {
	case errors.Is(err, ErrRequired), errors.Is(err, ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	default:
		respond.Internal(w, r, err)
	}
}

func toServiceResponse(v View) serviceResponse {
	return serviceResponse{
		ID:            v.ID,
		ProviderID:    v.ProviderID,
		Name:          v.Name,
		Professional:  v.Professional,
		Description:   v.Description,
		Phone:         v.Phone,
		ContactHidden: v.ContactHidden,
		CreatedAt:     v.CreatedAt,
	}
}
