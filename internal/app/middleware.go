package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

		ctx := context.WithValue(r.Context(), loggerContextKey, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate resolves the identity token, when present, into the user id
// and role the core trusts as given. Requests without a token proceed as
// anonymous; requireAuthentication gates the endpoints that need identity.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		if authorizationHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		token, err := jwt.Parse(
			headerParts[1],
			func(token *jwt.Token) (any, error) {
				return []byte(app.config.jwt.secret), nil
			},
			jwt.WithValidMethods([]string{"HS256"}),
		)
		if err != nil || !token.Valid {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		subject, err := claims.GetSubject()
		if err != nil {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		userId, err := strconv.Atoi(subject)
		if err != nil || userId < 1 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		role, _ := claims["role"].(string)
		if role != string(domain.RoleAdmin) {
			role = string(domain.RoleUser)
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userId)
		ctx = context.WithValue(ctx, roleContextKey, domain.Role(role))

		if email, ok := claims["email"].(string); ok {
			ctx = context.WithValue(ctx, emailContextKey, email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(userIDContextKey).(int)
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
