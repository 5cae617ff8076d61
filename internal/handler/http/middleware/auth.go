package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/plantops/attendance-backend-go/internal/domain/auth"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			name, ok := claims["name"].(string)
			if !ok || name == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// CallerName extracts the verified employee name from the access token.
// Every approval and administrative action trusts this name, never a name
// from the request body.
func CallerName(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	name, ok := claims["name"].(string)
	if !ok || name == "" {
		return "", auth.ErrInvalidToken
	}
	return name, nil
}
