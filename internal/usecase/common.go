package usecase

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// Clock returns the current instant. Services take one so window checks can be pinned in tests.
type Clock func() time.Time

// User-facing messages shared across services
const (
	msgUserNotFound       = "No se pudo encontrar al usuario con ese id."
	msgPlayerNotFound     = "No se ha encontrado a un jugador con ese id."
	msgOfferNotFound      = "No se pudo encontrar la oferta con ese id."
	msgInvalidAmount      = "La cantidad debe ser mayor que cero."
	msgTransactionFailed  = "Algo fue mal, inténtelo de nuevo."
	msgUserLookupFailed   = "Algo fue mal, no se pudo encontrar al usuario."
	msgPlayerLookupFailed = "Algo fue mal, no se pudo encontrar al jugador."
	msgOfferLookupFailed  = "La obtención de ofertas falló, inténtelo de nuevo."
	msgPlayerListFailed   = "Fallo en la obtención de jugadores, inténtelo de nuevo."
)

// begin opens a unit of work; callers defer Rollback on the returned value.
func begin(ctx context.Context, factory domain.UnitOfWorkFactory) (domain.UnitOfWork, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceError("begin", msgTransactionFailed, err)
	}
	return uow, nil
}

// commit finishes a unit of work, converting a failed commit into a persistence failure.
func commit(operation string, uow domain.UnitOfWork, message string) error {
	if err := uow.Commit(); err != nil {
		return persistenceError(operation, message, err)
	}
	return nil
}

// persistenceError logs a store failure and hides it behind a user-facing message.
func persistenceError(operation, message string, err error) error {
	log.WithError(err).WithField("operation", operation).Error("Persistence failure")
	return domain.WrapPersistence(message, err)
}

func notFound(message string) error {
	return domain.NewError(domain.CodeNotFound, message)
}

func validationError(message string) error {
	return domain.NewError(domain.CodeValidationFailed, message)
}

func systemClock() time.Time {
	return time.Now()
}
