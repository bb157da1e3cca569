package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/pkg/response"
)

// statusFor maps a domain error code to its HTTP status. Codes are the
// machine-readable strings exposed to clients; internal causes never leak.
func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeConflict:
		return http.StatusConflict
	case domain.ErrCodeInvalid, domain.ErrCodeWeakCredential, domain.ErrCodeTokenInvalid:
		return http.StatusBadRequest
	case domain.ErrCodeTokenInactive:
		return http.StatusGone
	case domain.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case domain.ErrCodeInactiveAccount:
		return http.StatusForbidden
	case domain.ErrCodeIllegalTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a domain failure as a stable status + code envelope.
func writeError(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	msg := "internal error"
	if code != domain.ErrCodeInternal {
		msg = err.Error()
	}
	response.ErrorCode[any](c, statusFor(code), string(code), msg, nil)
}
