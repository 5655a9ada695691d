package handlers

import (
	"errors"
	"net/http"

	"github.com/weichunauto/apigate/services"
	"github.com/weichunauto/apigate/utils"
	"go.uber.org/zap"
)

// HandleError maps request and service errors to HTTP responses
func HandleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	var writeErr error

	var validationErr *utils.ValidationError
	var domainErr *services.DomainError
	switch {
	case errors.As(err, &validationErr):
		logger.Debug("request rejected",
			zap.String("source", validationErr.Source),
			zap.String("reason", validationErr.Message))
		writeErr = utils.WriteBadRequest(w, validationErr.Message)

	case errors.As(err, &domainErr):
		switch domainErr.Type {
		case services.ErrorTypeBusiness:
			writeErr = utils.WriteBizError(w, domainErr.Message)
		default:
			logger.Error("internal server error", zap.Error(err))
			writeErr = utils.WriteInternalServerError(w, "")
		}

	default:
		logger.Error("unhandled error type", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "")
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}
