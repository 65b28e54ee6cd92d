package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	HooksErrorBadInput        = "HOOKS_BAD_INPUT"
	HooksErrorUnauthorized    = "HOOKS_UNAUTHORIZED"
	HooksErrorNotFound        = "HOOKS_NOT_FOUND"
	HooksErrorConflict        = "HOOKS_CONFLICT"
	HooksErrorOperationFailed = "HOOKS_OPERATION_FAILED"
	HooksErrorInternal        = "HOOKS_INTERNAL_ERROR"
)

func hooksErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureHooksErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "signature"), strings.Contains(msg, "authenticate"):
		return newHooksError(err.Error(), goerrors.CategoryAuth, HooksErrorUnauthorized)
	case strings.Contains(msg, "not registered"), strings.Contains(msg, "not found"):
		return newHooksError(err.Error(), goerrors.CategoryNotFound, HooksErrorNotFound)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newHooksError(err.Error(), goerrors.CategoryBadInput, HooksErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureHooksErrorEnvelope(mapped)
}

func newHooksError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureHooksErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureHooksErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = hooksHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultHooksTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultHooksTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return HooksErrorBadInput
	case goerrors.CategoryAuth:
		return HooksErrorUnauthorized
	case goerrors.CategoryNotFound:
		return HooksErrorNotFound
	case goerrors.CategoryConflict:
		return HooksErrorConflict
	case goerrors.CategoryOperation, goerrors.CategoryExternal:
		return HooksErrorOperationFailed
	default:
		return HooksErrorInternal
	}
}

func hooksHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryOperation, goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
