package auth

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-hooks/core"
)

func malformedSignatureError(signature string) error {
	return goerrors.New("auth: signature is not a hex digest with algorithm tag", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.HooksErrorBadInput).
		WithMetadata(map[string]any{
			"signature_length": len(signature),
		})
}

func authenticationFailedError() error {
	return goerrors.New("auth: signature digest mismatch", goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.HooksErrorUnauthorized)
}

func rejectReason(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryBadInput {
		return core.RejectReasonMalformedSignature
	}
	return core.RejectReasonDigestMismatch
}
