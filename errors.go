package hooks

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-hooks/core"
)

// errServiceNotConfigured stays off the factory: it covers the nil-receiver
// path where no configured Service exists to carry one.
func errServiceNotConfigured() error {
	return goerrors.New("hooks: service is not configured", goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.HooksErrorInternal)
}

func (s *Service) errEnvelopedSecretWithoutProvider() error {
	return s.newError(
		"hooks: webhook secret is enveloped but no secret provider is configured",
		goerrors.CategoryBadInput,
	).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.HooksErrorBadInput)
}

func (s *Service) newError(message string, category goerrors.Category) *goerrors.Error {
	if s != nil && s.errorFactory != nil {
		return s.errorFactory(message, category)
	}
	return goerrors.New(message, category)
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
