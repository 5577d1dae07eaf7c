package posts

import (
	"errors"
	"net/http"
	"time"

	"petplus/internal/domain/media"
	"petplus/internal/middleware"
	"petplus/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, uploadLimit int64) {
	r.Route("/blog", func(br chi.Router) {
		br.Get("/", feedHandler(svc))

		br.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)

			ar.Post("/", createPostHandler(svc, uploadLimit))
			ar.Delete("/{postID}", deletePostHandler(svc))
			ar.Put("/{postID}/like", toggleLikeHandler(svc))
		})
	})
}

// postRequest documenta los campos (JSON o multipart con `photo`).
type postRequest struct {
	Content  string `json:"content"`
	Location string `json:"location"`
}

type postResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	OwnerName     string    `json:"ownerName"`
	OwnerPhotoURL *string   `json:"ownerPhotoUrl"`
	Content       string    `json:"content"`
	PhotoURL      *string   `json:"photoUrl"`
	Location      *string   `json:"location"`
	Likes         []string  `json:"likes"`
	CreatedAt     time.Time `json:"createdAt"`
}

type likeResponse struct {
	Liked bool     `json:"liked"`
	Likes []string `json:"likes"`
}

// feedHandler godoc
// @Summary Feed del blog
// @Description Público, más nuevos primero. likes es la lista de ids de usuarios.
// @Tags blog
// @Produce json
// @Success 200 {array} postResponse
// @Router /blog [get]
func feedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Feed(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		out := make([]postResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toPostResponse(it))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// createPostHandler godoc
// @Summary Publicar en el blog
// @Tags blog
// @Accept json,mpfd
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param payload body postRequest true "Contenido del post"
// @Success 201 {object} postResponse
// @Failure 400 {object} respond.ErrorBody "content is required / foto rechazada"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 502 {object} respond.ErrorBody "image upload failed"
// @Router /blog [post]
func createPostHandler(svc *Service, uploadLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		fields, photo, err := media.ReadFields(w, r, uploadLimit)
		if err != nil {
			writeError(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Content:  fields.Get("content"),
			Location: fields.Get("location"),
			Photo:    photo,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		item := FeedItem{Post: p, OwnerName: claims.Name, Likes: []string{}}
		if claims.PhotoURL != "" {
			item.OwnerPhotoURL = &claims.PhotoURL
		}
		respond.JSON(w, http.StatusCreated, toPostResponse(item))
	}
}

// deletePostHandler godoc
// @Summary Borrar post
// @Description Solo el autor. Los likes se borran en cascada.
// @Tags blog
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param postID path string true "ID del post"
// @Success 200 {object} respond.MessageBody
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "post not found"
// @Router /blog/{postID} [delete]
func deletePostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "postID"), userID); err != nil {
			writeError(w, r, err)
			return
		}

		respond.Message(w, http.StatusOK, "post deleted")
	}
}

// toggleLikeHandler godoc
// @Summary Like / unlike
// @Description Alterna el like del usuario autenticado.
// @Tags blog
// @Produce json
// @Param Authorization header string true "Bearer <token>"
// @Param postID path string true "ID del post"
// @Success 200 {object} likeResponse
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "post not found"
// @Router /blog/{postID}/like [put]
func toggleLikeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())

		liked, likes, err := svc.ToggleLike(r.Context(), chi.URLParam(r, "postID"), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, likeResponse{Liked: liked, Likes: likes})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status, msg, ok := media.HTTPStatus(err); ok {
		respond.Error(w, status, msg)
		return
	}

	switch {
	case errors.Is(err, ErrContentRequired), errors.Is(err, ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	default:
		respond.Internal(w, r, err)
	}
}

func toPostResponse(it FeedItem) postResponse {
	likes := it.Likes
	if likes == nil {
		likes = []string{}
	}
	return postResponse{
		ID:            it.ID,
		OwnerID:       it.OwnerUserID,
		OwnerName:     it.OwnerName,
		OwnerPhotoURL: it.OwnerPhotoURL,
		Content:       it.Content,
		PhotoURL:      it.PhotoURL,
		Location:      it.Location,
		Likes:         likes,
		CreatedAt:     it.CreatedAt,
	}
}
