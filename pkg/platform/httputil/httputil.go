package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/requestcontext"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error       string         `json:"error"`
	Reason      string         `json:"reason,omitempty"`
	Description string         `json:"error_description,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// WriteError centralizes domain error translation to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		resp := ErrorResponse{
			Error:   string(domainErr.Code),
			Reason:  string(domainErr.Reason),
			Details: stringifyDetails(domainErr.Details),
		}
		// Internal failures never leak their message.
		if domainErr.Code != dErrors.CodeInternal {
			resp.Description = domainErr.Message
		}
		WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), resp)
		return
	}

	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: string(dErrors.CodeInternal)})
}

// stringifyDetails renders typed ids through their String method so clients
// get stable JSON regardless of the concrete id type.
func stringifyDetails(details map[string]any) map[string]any {
	if len(details) == 0 {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		if s, ok := v.(interface{ String() string }); ok {
			out[k] = s.String()
			continue
		}
		out[k] = v
	}
	return out
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeInvalidInput, dErrors.CodeUnsupportedAsset:
		return http.StatusBadRequest
	case dErrors.CodeTerminalState, dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeCapacityExceeded, dErrors.CodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	case dErrors.CodePrecondition:
		return http.StatusPreconditionFailed
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// RequirePrincipal extracts the authenticated caller from context.
// The auth middleware guarantees it on protected routes, so a miss is an
// internal wiring error.
func RequirePrincipal(ctx context.Context, logger *slog.Logger) (domain.Address, error) {
	addr, ok := requestcontext.Principal(ctx)
	if !ok {
		if logger != nil {
			logger.ErrorContext(ctx, "principal missing from context despite auth middleware",
				"request_id", requestcontext.RequestID(ctx))
		}
		return "", dErrors.New(dErrors.CodeInternal, "authentication context error")
	}
	return addr, nil
}
