package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/gladiaflow/errors"
	"github.com/kbukum/gladiaflow/httpclient"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError writes the error envelope for err. AppErrors carry their
// own status; transport errors from the transcription service map to 502
// with the transport message in details; anything else is a 500. A 502 is
// retryable only when the upstream error is.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	var httpErr *httpclient.Error
	if errors.As(err, &httpErr) {
		resp := apperrors.ExternalServiceError("transcription", err).
			WithDetail("reason", httpErr.Message).
			WithDetail("upstream_status", httpErr.StatusCode)
		resp.Retryable = httpclient.IsRetryable(err)
		if httpclient.IsAuth(err) {
			resp.Message = "The transcription service rejected the configured API key."
		}
		c.JSON(resp.HTTPStatus, resp.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}
