package vaccines

import (
	"errors"
	"net/http"
	"time"

	"petplus/internal/domain/media"
	"petplus/internal/middleware"
	"petplus/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes espera el router ya montado en /pets.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/{petID}/vaccines", func(vr chi.Router) {
		vr.Use(middleware.RequireAuth)

		vr.Post("/", createVaccineHandler(svc))
		vr.Put("/{vaccineID}", updateVaccineHandler(svc))
		vr.Delete("/{vaccineID}", deleteVaccineHandler(svc))
	})
}

// vaccineRequest es el cuerpo de alta y edición. Fechas en formato YYYY-MM-DD.
type vaccineRequest struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	NextDate string `json:"nextDate"`
	Vet      string `json:"vet"`
	Notes    string `json:"notes"`
}

// Response es la vacuna tal como se embebe en los listados de pets.
type Response struct {
	ID        string    `json:"id"`
	PetID     string    `json:"petId"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	NextDate  *string   `json:"nextDate"`
	Vet       string    `json:"vet"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// createVaccineHandler godoc
// @Summary Registrar vacuna
// @Description Solo el dueño del pet. Pet inexistente o ajeno responde 403.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param petID path string true "ID del pet"
// @Param payload body vaccineRequest true "Datos de la vacuna"
// @Success 201 {object} Response
// @Failure 400 {object} respond.ErrorBody "name/date faltantes o fechas inválidas"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 403 {object} respond.ErrorBody "permission denied"
// @Router /pets/{petID}/vaccines [post]
func createVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		in, err := readInput(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		v, err := svc.Create(r.Context(), chi.URLParam(r, "petID"), userID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusCreated, ToResponse(v))
	}
}

// updateVaccineHandler godoc
// @Summary Editar vacuna
// @Description Reemplaza los campos de la vacuna. Pet ajeno o vacuna de otro pet responde 403.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param petID path string true "ID del pet"
// @Param vaccineID path string true "ID de la vacuna"
// @Param payload body vaccineRequest true "Datos de la vacuna"
// @Success 200 {object} Response
// @Failure 400 {object} respond.ErrorBody "validación"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 403 {object} respond.ErrorBody "permission denied"
// @Router /pets/{petID}/vaccines/{vaccineID} [put]
func updateVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		in, err := readInput(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "vaccineID"), userID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, ToResponse(v))
	}
}

// deleteVaccineHandler godoc
// @Summary Borrar vacuna
// @Tags vaccines
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param petID path string true "ID del pet"
// @Param vaccineID path string true "ID de la vacuna"
// @Success 200 {object} respond.MessageBody
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 403 {object} respond.ErrorBody "permission denied"
// @Router /pets/{petID}/vaccines/{vaccineID} [delete]
func deleteVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "vaccineID"), userID); err != nil {
			writeError(w, r, err)
			return
		}

		respond.Message(w, http.StatusOK, "vaccine deleted")
	}
}

func readInput(w http.ResponseWriter, r *http.Request) (Input, error) {
	fields, _, err := media.ReadFields(w, r, 0)
	if err != nil {
		return Input{}, err
	}
	return Input{
		Name:     fields.Get("name"),
		Date:     fields.Get("date"),
		NextDate: fields.Get("nextDate"),
		Vet:      fields.Get("vet"),
		Notes:    fields.Get("notes"),
	}, nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status, msg, ok := media.HTTPStatus(err); ok {
		respond.Error(w, status, msg)
		return
	}

	switch {
	case errors.Is(err, ErrNameDateRequired),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidNextDate),
		errors.Is(err, ErrNextBeforeDate):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		respond.Error(w, http.StatusForbidden, err.Error())
	default:
		respond.Internal(w, r, err)
	}
}

func ToResponse(v Vaccine) Response {
	out := Response{
		ID:        v.ID,
		PetID:     v.PetID,
		Name:      v.Name,
		Date:      v.Date.Format(DateLayout),
		Vet:       v.Vet,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
	}
	if v.NextDate != nil {
		nd := v.NextDate.Format(DateLayout)
		out.NextDate = &nd
	}
	return out
}

func ToResponses(vs []Vaccine) []Response {
	out := make([]Response, 0, len(vs))
	for _, v := range vs {
		out = append(out, ToResponse(v))
	}
	return out
}
