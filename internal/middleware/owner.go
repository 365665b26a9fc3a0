package middleware

import (
	"net/http"
	"strings"

	"tripfolio/internal/utils"
)

// Owner extracts the authenticated owner id forwarded by the gateway in
// the X-Owner-ID header. Authentication itself happens upstream; this
// service trusts the header.
func Owner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := strings.TrimSpace(r.Header.Get("X-Owner-ID"))
		if ownerID == "" {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "X-Owner-ID header required")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithOwnerID(r.Context(), ownerID)))
	}
}
