// Package ownership concentra el chequeo "¿el actor es dueño del recurso?"
// que aplican todos los servicios antes de mutar.
package ownership

import (
	"errors"
	"strings"
)

// ErrNotOwned se devuelve tanto si el recurso no existe como si es de otro:
// el caller no puede distinguir los dos casos.
var ErrNotOwned = errors.New("resource not owned by actor")

// Owned lo implementa cualquier recurso con dueño registrado.
type Owned interface {
	OwnerID() string
}

// Allowed responde si actorID puede mutar res. Un recurso nil o sin dueño nunca es mutable.
func Allowed(res Owned, actorID string) bool {
	if res == nil {
		return false
	}
	owner := strings.TrimSpace(res.OwnerID())
	actorID = strings.TrimSpace(actorID)
	return owner != "" && actorID != "" && owner == actorID
}

// Check es Allowed en forma de error, para encadenar en los servicios.
func Check(res Owned, actorID string) error {
	if !Allowed(res, actorID) {
		return ErrNotOwned
	}
	return nil
}

// Owner adapta un id de dueño ya resuelto (p.ej. el de un recurso padre) a Owned.
type Owner string

func (o Owner) OwnerID() string { return string(o) }
