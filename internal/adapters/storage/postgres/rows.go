package postgres

import (
	"time"

	"petplus/internal/domain/pets"
	"petplus/internal/domain/posts"
	"petplus/internal/domain/services"
	"petplus/internal/domain/users"
	"petplus/internal/domain/vaccines"
)

// Filas tal como salen de sqlx; se traducen a modelos de dominio en cada repo.

type userRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	PasswordHash string    `db:"password_hash"`
	PhotoURL     *string   `db:"photo_url"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toDomain() users.User {
	return users.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		PasswordHash: r.PasswordHash,
		PhotoURL:     r.PhotoURL,
		CreatedAt:    r.CreatedAt,
	}
}

type petRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Name        string    `db:"name"`
	Species     string    `db:"species"`
	Breed       string    `db:"breed"`
	Age         string    `db:"age"`
	Size        string    `db:"size"`
	Gender      string    `db:"gender"`
	Type        string    `db:"type"`
	Status      string    `db:"status"`
	Description string    `db:"description"`
	PhotoURL    *string   `db:"photo_url"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r petRow) toDomain() pets.Pet {
	return pets.Pet{
		ID:          r.ID,
		OwnerUserID: r.OwnerID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		Age:         r.Age,
		Size:        r.Size,
		Gender:      r.Gender,
		Type:        pets.Type(r.Type),
		Status:      pets.Status(r.Status),
		Description: r.Description,
		PhotoURL:    r.PhotoURL,
		CreatedAt:   r.CreatedAt,
	}
}

type listingRow struct {
	petRow
	OwnerName  string `db:"owner_name"`
	OwnerPhone string `db:"owner_phone"`
	OwnerEmail string `db:"owner_email"`
}

type vaccineRow struct {
	ID        string     `db:"id"`
	PetID     string     `db:"pet_id"`
	Name      string     `db:"name"`
	Date      time.Time  `db:"date"`
	NextDate  *time.Time `db:"next_date"`
	Vet       string     `db:"vet"`
	Notes     string     `db:"notes"`
	CreatedAt time.Time  `db:"created_at"`
}

func (r vaccineRow) toDomain() vaccines.Vaccine {
	return vaccines.Vaccine{
		ID:        r.ID,
		PetID:     r.PetID,
		Name:      r.Name,
		Date:      r.Date,
		NextDate:  r.NextDate,
		Vet:       r.Vet,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

type serviceRow struct {
	ID           string    `db:"id"`
	ProviderID   string    `db:"provider_id"`
	Name         string    `db:"name"`
	Professional string    `db:"professional"`
	Description  string    `db:"description"`
	Phone        string    `db:"phone"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r serviceRow) toDomain() services.Listing {
	return services.Listing{
		ID:           r.ID,
		ProviderID:   r.ProviderID,
		Name:         r.Name,
		Professional: r.Professional,
		Description:  r.Description,
		Phone:        r.Phone,
		CreatedAt:    r.CreatedAt,
	}
}

type postRow struct {
	ID            string    `db:"id"`
	OwnerID       string    `db:"owner_id"`
	Content       string    `db:"content"`
	PhotoURL      *string   `db:"photo_url"`
	Location      *string   `db:"location"`
	CreatedAt     time.Time `db:"created_at"`
	OwnerName     string    `db:"owner_name"`
	OwnerPhotoURL *string   `db:"owner_photo_url"`
}

func (r postRow) toDomain() posts.Post {
	return posts.Post{
		ID:          r.ID,
		OwnerUserID: r.OwnerID,
		Content:     r.Content,
		PhotoURL:    r.PhotoURL,
		Location:    r.Location,
		CreatedAt:   r.CreatedAt,
	}
}
