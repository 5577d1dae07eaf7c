package pets

import (
	"errors"
	"net/http"
	"time"

	"petplus/internal/domain/media"
	"petplus/internal/domain/vaccines"
	"petplus/internal/middleware"
	"petplus/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /pets; nested registra subrutas bajo el mismo router (p.ej. vacunas).
func RegisterRoutes(r chi.Router, svc *Service, uploadLimit int64, nested ...func(chi.Router)) {
	r.Route("/pets", func(pr chi.Router) {
		// Público: búsqueda de adopción
		pr.Get("/adoption", searchAdoptionHandler(svc))

		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)

			ar.Get("/mypets", listMyPetsHandler(svc))
			ar.Post("/", createPetHandler(svc, uploadLimit))
			ar.Put("/{petID}", updatePetHandler(svc, uploadLimit))
			ar.Delete("/{petID}", deletePetHandler(svc))
			ar.Put("/{petID}/adopt", adoptPetHandler(svc))
		})

		for _, register := range nested {
			register(pr)
		}
	})
}

// petRequest documenta los campos aceptados (JSON o multipart con `photo`).
type petRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Age         string `json:"age"`
	Size        string `json:"size"`
	Gender      string `json:"gender"`
	Type        Type   `json:"type" enums:"adoption,personal"`
	Description string `json:"description"`
	RemovePhoto bool   `json:"removePhoto"` // solo en edición
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	Age         string    `json:"age"`
	Size        string    `json:"size"`
	Gender      string    `json:"gender"`
	Type        Type      `json:"type"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	PhotoURL    *string   `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// listingResponse agrega contacto del dueño (solo adopción) y vacunas (siempre un array).
type listingResponse struct {
	petResponse
	OwnerName  string              `json:"ownerName,omitempty"`
	OwnerPhone string              `json:"ownerPhone,omitempty"`
	OwnerEmail string              `json:"ownerEmail,omitempty"`
	Vaccines   []vaccines.Response `json:"vaccines"`
}

type adoptResponse struct {
	Message string      `json:"message"`
	Pet     petResponse `json:"pet"`
}

// searchAdoptionHandler godoc
// @Summary Buscar pets en adopción
// @Description Solo publicaciones de adopción disponibles, más nuevas primero. species, size y age filtran por igualdad; search busca en nombre o raza sin distinguir mayúsculas.
// @Tags pets
// @Produce json
// @Param species query string false "Especie exacta"
// @Param size query string false "Tamaño exacto"
// @Param age query string false "Edad exacta"
// @Param search query string false "Texto en nombre o raza"
// @Success 200 {array} listingResponse
// @Router /pets/adoption [get]
func searchAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		items, err := svc.SearchAdoption(r.Context(), SearchFilter{
			Species: q.Get("species"),
			Size:    q.Get("size"),
			Age:     q.Get("age"),
			Search:  q.Get("search"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, toListingResponses(items))
	}
}

// listMyPetsHandler godoc
// @Summary Mis pets
// @Description Pets del usuario autenticado con sus vacunas, más nuevos primero.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Success 200 {array} listingResponse
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Router /pets/mypets [get]
func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		items, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, toListingResponses(items))
	}
}

// createPetHandler godoc
// @Summary Registrar pet
// @Description name y species son obligatorios. type por defecto es personal; adoption publica el pet como disponible.
// @Tags pets
// @Accept json,mpfd
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body petRequest true "Datos del pet"
// @Success 201 {object} petResponse
// @Failure 400 {object} respond.ErrorBody "validación / foto rechazada"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 413 {object} respond.ErrorBody "file too large"
// @Failure 502 {object} respond.ErrorBody "image upload failed"
// @Router /pets [post]
func createPetHandler(svc *Service, uploadLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		fields, photo, err := media.ReadFields(w, r, uploadLimit)
		if err != nil {
			writeError(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), userID, CreateInput{
			Name:        fields.Get("name"),
			Species:     fields.Get("species"),
			Breed:       fields.Get("breed"),
			Age:         fields.Get("age"),
			Size:        fields.Get("size"),
			Gender:      fields.Get("gender"),
			Type:        fields.Get("type"),
			Description: fields.Get("description"),
			Photo:       photo,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Editar pet
// @Description Update parcial: solo se modifican los campos enviados. Una foto nueva reemplaza la actual; removePhoto=true la borra. Pet ajeno o inexistente responde 404.
// @Tags pets
// @Accept json,mpfd
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param petID path string true "ID del pet"
// @Param payload body petRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} respond.ErrorBody "validación / foto rechazada"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "pet not found"
// @Failure 502 {object} respond.ErrorBody "image upload failed"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, uploadLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		fields, photo, err := media.ReadFields(w, r, uploadLimit)
		if err != nil {
			writeError(w, r, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), userID, UpdateInput{
			Name:        optional(fields, "name"),
			Species:     optional(fields, "species"),
			Breed:       optional(fields, "breed"),
			Age:         optional(fields, "age"),
			Size:        optional(fields, "size"),
			Gender:      optional(fields, "gender"),
			Type:        optional(fields, "type"),
			Description: optional(fields, "description"),
			Photo:       photo,
			RemovePhoto: fields.Bool("removePhoto"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Borrar pet
// @Description Borrado definitivo; sus vacunas se borran en cascada.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param petID path string true "ID del pet"
// @Success 200 {object} respond.MessageBody
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), userID); err != nil {
			writeError(w, r, err)
			return
		}

		respond.Message(w, http.StatusOK, "pet deleted")
	}
}

// adoptPetHandler godoc
// @Summary Marcar pet como adoptado
// @Description Lo ejecuta quien publicó el pet. Solo aplica a publicaciones de adopción disponibles.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param petID path string true "ID del pet"
// @Success 200 {object} adoptResponse
// @Failure 400 {object} respond.ErrorBody "pet is not available for adoption"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "pet not found"
// @Router /pets/{petID}/adopt [put]
func adoptPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		p, err := svc.Adopt(r.Context(), chi.URLParam(r, "petID"), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, adoptResponse{Message: "pet adopted", Pet: toPetResponse(p)})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status, msg, ok := media.HTTPStatus(err); ok {
		respond.Error(w, status, msg)
		return
	}

	switch {
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrEmptyFieldSent),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrNotAdoptable),
		errors.Is(err, ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	default:
		respond.Internal(w, r, err)
	}
}

// optional distingue "no enviado" (nil) de "enviado vacío".
func optional(f media.Fields, key string) *string {
	if !f.Has(key) {
		return nil
	}
	v := f.Get(key)
	return &v
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Age:         p.Age,
		Size:        p.Size,
		Gender:      p.Gender,
		Type:        p.Type,
		Status:      p.Status,
		Description: p.Description,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
	}
}

func toListingResponses(items []Listing) []listingResponse {
	out := make([]listingResponse, 0, len(items))
	for _, it := range items {
		lr := listingResponse{
			petResponse: toPetResponse(it.Pet),
			Vaccines:    vaccines.ToResponses(it.Vaccines),
		}
		if it.Owner != nil {
			lr.OwnerName = it.Owner.Name
			lr.OwnerPhone = it.Owner.Phone
			lr.OwnerEmail = it.Owner.Email
		}
		out = append(out, lr)
	}
	return out
}
