package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SamMurshed/MedQT/internal/store"
)

type patientContextKey struct{}

// AuthMiddleware resolves the caller's session into a patient identity and
// places it in the request context. The session itself is issued elsewhere;
// this service only trusts the identity the lookup yields.
func AuthMiddleware(sessions store.AppointmentStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicEndpoint(r) {
			next.ServeHTTP(w, r)
			return
		}

		sessionID := sessionIDFromRequest(r)
		if sessionID == "" {
			writeError(w, requestIDFromRequest(r), http.StatusUnauthorized, "unauthorized", "missing session")
			return
		}

		session, err := sessions.GetSession(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				writeError(w, requestIDFromRequest(r), http.StatusUnauthorized, "unauthorized", "invalid session")
				return
			}
			writeError(w, requestIDFromRequest(r), http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), patientContextKey{}, session.PatientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func patientFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(patientContextKey{})
	if value == nil {
		return "", false
	}
	patientID, ok := value.(string)
	if !ok || patientID == "" {
		return "", false
	}
	return patientID, true
}

func sessionIDFromRequest(r *http.Request) string {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	return strings.TrimSpace(r.Header.Get("X-Session-ID"))
}

func requestIDFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Request-ID"))
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

func isPublicEndpoint(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/metrics":
		return true
	default:
		return r.Method == http.MethodOptions
	}
}
