package controllers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/curaious/taskhive/internal/api/authenticator"
	"github.com/curaious/taskhive/internal/perrors"
	"github.com/curaious/taskhive/internal/services"
	user2 "github.com/curaious/taskhive/internal/services/user"
)

// requireAdmin resolves the caller and rejects anyone without the ADMIN role.
// The role comes from the database record, not the token claim, so a revoked
// admin loses access as soon as the row changes.
func requireAdmin(ctx *fasthttp.RequestCtx, stdCtx context.Context, svc *services.Services) bool {
	u, err := svc.User.LoadByLoginIdentifier(stdCtx, principal(ctx))
	if err != nil || u.Role != user2.RoleAdmin {
		writeError(ctx, stdCtx, "Access denied.", perrors.NewErrForbidden("Access denied.", errors.New("admin role required")))
		return false
	}

	return true
}

func RegisterAdminRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	// List all users
	r.GET("/api/admin/all", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		if !requireAdmin(ctx, stdCtx, svc) {
			return
		}

		users, err := svc.User.List(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to retrieve users.", perrors.NewErrInternalServerError("Failed to retrieve users.", err))
			return
		}

		message := "Users retrieved successfully."
		if len(users) == 0 {
			message = "No users found."
		}

		writeOK(ctx, stdCtx, message, users)
	})

	// Register a new ADMIN account
	r.POST("/api/admin/registerAdmin", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		if !requireAdmin(ctx, stdCtx, svc) {
			return
		}

		var body user2.RegisterUserRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Email == "" || body.Password == "" {
			writeError(ctx, stdCtx, "Email and password are required", perrors.NewErrInvalidRequest("Email and password are required", errors.New("missing credentials")))
			return
		}

		created, err := svc.User.RegisterAdmin(stdCtx, body.Username, body.Email, body.Password)
		if err != nil {
			// Internal detail never reaches the client, even here.
			switch {
			case errors.Is(err, user2.ErrEmailInUse):
				writeError(ctx, stdCtx, "Email already in use!", perrors.NewErrInvalidRequest("Email already in use!", err))
			default:
				writeError(ctx, stdCtx, "Registration failed.", perrors.NewErrInvalidRequest("Registration failed.", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Admin registered successfully.", map[string]string{
			"username": created.Name,
			"email":    created.Email,
			"role":     string(created.Role),
		})
	})
}
