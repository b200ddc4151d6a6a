package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/helpers"
)

const (
	statusSuccess = "Success"
	statusError   = "Error"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

func writeSuccess(r *render.Render, w http.ResponseWriter, message string, result interface{}) {
	_ = r.JSON(w, http.StatusOK, Response{
		Code:    http.StatusOK,
		Status:  statusSuccess,
		Message: message,
		Result:  result,
	})
}

func writeError(r *render.Render, w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		_ = r.JSON(w, appErr.Code, Response{
			Code:    appErr.Code,
			Status:  statusError,
			Message: appErr.Message,
		})
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		_ = r.JSON(w, http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Status:  statusError,
			Message: "Validation failed",
			Result:  helpers.FormatValidationErrors(validationErrs),
		})
		return
	}

	logrus.Errorf("unhandled error: %v", err)
	_ = r.JSON(w, http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Status:  statusError,
		Message: "Internal server error",
	})
}

func writeBadRequest(r *render.Render, w http.ResponseWriter, message string) {
	_ = r.JSON(w, http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Status:  statusError,
		Message: message,
	})
}
