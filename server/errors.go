// MODUL: errors
// ZWECK: Fehler-Mapping und Error-Handler fuer die Batch-API
// INPUT: Fehler aus calib/vision, gin.Context
// OUTPUT: JSON-formatierte Fehler-Responses mit HTTP-Status
// NEBENEFFEKTE: HTTP-Responses schreiben
// ABHAENGIGKEITEN: gin (extern), calib, vision
// HINWEISE: Reihenfolge der Tabelle ist relevant, der erste Treffer gewinnt

package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/7blacky7/calibprep/calib"
	"github.com/7blacky7/calibprep/vision"
)

var (
	// errBadParameter: Pfad- oder Query-Parameter ist ungueltig
	errBadParameter = errors.New("bad parameter")

	// errForbiddenHost: Host-Header zeigt nicht auf diese Maschine
	errForbiddenHost = errors.New("forbidden host")
)

// APIError ist die JSON-Form eines Fehlers
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implementiert das error Interface.
func (e APIError) Error() string {
	return e.Message
}

// errorCodes mappt Sentinel-Fehler auf API-Code und HTTP-Status
var errorCodes = []struct {
	err    error
	code   string
	status int
}{
	{calib.ErrIndexOutOfRange, "INDEX_OUT_OF_RANGE", http.StatusNotFound},
	{vision.ErrFileNotFound, "FILE_NOT_FOUND", http.StatusNotFound},
	{vision.ErrDecode, "DECODE_ERROR", http.StatusUnprocessableEntity},
	{vision.ErrInvalidDimension, "INVALID_DIMENSION", http.StatusUnprocessableEntity},
	{vision.ErrCropOutOfBounds, "CROP_OUT_OF_BOUNDS", http.StatusUnprocessableEntity},
	{vision.ErrChannelMismatch, "CHANNEL_MISMATCH", http.StatusUnprocessableEntity},
	{calib.ErrRaggedBatch, "RAGGED_BATCH", http.StatusUnprocessableEntity},
	{errBadParameter, "BAD_PARAMETER", http.StatusBadRequest},
	{errForbiddenHost, "FORBIDDEN_HOST", http.StatusForbidden},
}

// errorCode gibt API-Code und HTTP-Status fuer einen Fehler zurueck.
func errorCode(err error) (string, int) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code, e.status
		}
	}
	return "INTERNAL_ERROR", http.StatusInternalServerError
}

// writeError schreibt einen Fehler als JSON Response und bricht die Kette ab.
func writeError(c *gin.Context, err error) {
	code, status := errorCode(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}

	c.AbortWithStatusJSON(status, APIError{Code: code, Message: err.Error()})
}
