package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/IsmaelSWO/league-backend/internal/domain"
)

const (
	requestTimeout = 5 * time.Second

	// maxAmount is the largest integer a JSON client number holds exactly
	maxAmount int64 = 1<<53 - 1

	msgRouteNotFound     = "No se ha podido encontrar la ruta."
	msgUnknownError      = "Ha ocurrido un error desconocido."
	msgInvalidPayload    = "Datos de entrada inválidos, por favor, revíselos."
	msgInvalidAmount     = "La cantidad debe ser un número entero mayor que cero."
	msgInvalidCheckQuery = "La cantidad debe ser un número entero no negativo."
	msgAmountMismatch    = "La cantidad de la oferta no coincide con la de la ruta."
	msgDone              = "Operación realizada con éxito."
	msgPlayerDeleted     = "Deleted player."
	msgOfferDeleted      = "Deleted oferta."
)

// MessageResponse is the body of every error and of plain acknowledgements
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusFor maps a domain error code to the HTTP status the league clients expect.
// Business refusals keep the historical 404/401 statuses.
func StatusFor(code domain.Code) int {
	switch code {
	case domain.CodeNotFound,
		domain.CodeInsufficientFunds,
		domain.CodeRosterLimitExceeded,
		domain.CodeMarketClosed,
		domain.CodeClauseBuyoutWindowClosed:
		return http.StatusNotFound
	case domain.CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case domain.CodeClauseDecreaseForbidden,
		domain.CodeListingExceedsClause,
		domain.CodeForbidden,
		domain.CodeUnauthenticated:
		return http.StatusUnauthorized
	case domain.CodeInvalidCredentials:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorHandler writes every error as {"message": ...}. Domain errors carry
// their own status and message; causes are logged, never sent.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := msgUnknownError

	var de *domain.Error
	var he *echo.HTTPError
	switch {
	case errors.As(err, &de):
		status = StatusFor(de.Code)
		message = de.Message
	case errors.As(err, &he):
		status = he.Code
		switch {
		case status == http.StatusNotFound:
			message = msgRouteNotFound
		case status == http.StatusMethodNotAllowed:
			status = http.StatusNotFound
			message = msgRouteNotFound
		default:
			message = fmt.Sprint(he.Message)
		}
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request().Method,
			"path":   c.Request().URL.Path,
		}).Error("Request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, MessageResponse{Message: message})
	}
	if writeErr != nil {
		log.WithError(writeErr).Warn("Failed to write error response")
	}
}

// MessageOK sends a 200 with a plain message
func MessageOK(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func invalidInput(message string) error {
	return domain.NewError(domain.CodeValidationFailed, message)
}

// bindJSON decodes the request body, mapping decode failures to a 422
func bindJSON(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		log.WithError(err).WithField("path", c.Path()).Debug("Rejected request body")
		return invalidInput(msgInvalidPayload)
	}
	return nil
}

// uuidParam parses a path parameter; malformed ids resolve to nothing
func uuidParam(c echo.Context, name, notFoundMessage string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domain.NewError(domain.CodeNotFound, notFoundMessage)
	}
	return id, nil
}

// amountParam parses a strictly positive integer amount from the path
func amountParam(c echo.Context, name string) (int64, error) {
	return boundedAmountParam(c, name, 1, msgInvalidAmount)
}

// nonNegativeAmountParam is amountParam that also accepts zero
func nonNegativeAmountParam(c echo.Context, name string) (int64, error) {
	return boundedAmountParam(c, name, 0, msgInvalidCheckQuery)
}

func boundedAmountParam(c echo.Context, name string, least int64, message string) (int64, error) {
	amount, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || amount < least || amount > maxAmount {
		return 0, invalidInput(message)
	}
	return amount, nil
}
