package controllers

import (
	"errors"
	"strings"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"

	"github.com/curaious/taskhive/internal/api/authenticator"
	"github.com/curaious/taskhive/internal/perrors"
	"github.com/curaious/taskhive/internal/services"
	user2 "github.com/curaious/taskhive/internal/services/user"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the login payload the UI consumes. The message is repeated
// inside the payload on top of the envelope's own message field.
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

func RegisterAuthRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	// Register a new USER account
	r.POST("/api/register", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var body user2.RegisterUserRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Email == "" || body.Password == "" {
			writeError(ctx, stdCtx, "Email and password are required", perrors.NewErrInvalidRequest("Email and password are required", errors.New("missing credentials")))
			return
		}

		if body.ConfirmPassword != "" && body.ConfirmPassword != body.Password {
			writeError(ctx, stdCtx, "Passwords do not match", perrors.NewErrInvalidRequest("Passwords do not match", errors.New("password confirmation mismatch")))
			return
		}

		if strings.EqualFold(body.Role, string(user2.RoleAdmin)) {
			writeError(ctx, stdCtx, "Cannot register as ADMIN directly.", perrors.NewErrForbidden("Cannot register as ADMIN directly.", errors.New("admin self-registration rejected")))
			return
		}

		if _, err := svc.User.Register(stdCtx, body.Username, body.Email, body.Password); err != nil {
			switch {
			case errors.Is(err, user2.ErrEmailInUse):
				writeError(ctx, stdCtx, "Email already in use!", perrors.NewErrInvalidRequest("Email already in use!", err))
			default:
				writeError(ctx, stdCtx, "Failed to register user.", perrors.NewErrInternalServerError("Failed to register user.", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "User registered successfully.", nil)
	})

	// Login with email/password
	r.POST("/api/login", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req LoginRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		// The lookup is an exact email match; login identifiers are only
		// folded case-insensitively once a token exists.
		u, err := svc.User.GetByEmail(stdCtx, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, user2.ErrUserNotFound):
				writeError(ctx, stdCtx, "User not found with the provided email.", perrors.NewErrNotFound("User not found with the provided email.", err))
			default:
				writeError(ctx, stdCtx, "An unexpected error occurred. Please try again later.", perrors.NewErrInternalServerError("An unexpected error occurred. Please try again later.", err))
			}
			return
		}

		// Credential comparison happens here, not in the service.
		cred := u.Credential()
		if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
			writeError(ctx, stdCtx, "Incorrect password. Please try again.", perrors.NewErrUnauthorized("Incorrect password. Please try again.", err))
			return
		}

		token, err := auth.GenerateToken(u.Name, cred.Email, string(cred.Role))
		if err != nil {
			writeError(ctx, stdCtx, "An unexpected error occurred. Please try again later.", perrors.NewErrInternalServerError("Failed to generate token", err))
			return
		}

		// Full validation runs once, right after issuance.
		if !auth.ValidateToken(token, cred.Email) {
			writeError(ctx, stdCtx, "An unexpected error occurred. Please try again later.", perrors.NewErrInternalServerError("Issued token failed validation", errors.New("token validation failed")))
			return
		}

		writeOK(ctx, stdCtx, "Login successful.", LoginResponse{
			Message:  "Login successful.",
			Token:    token,
			Username: u.Name,
			Role:     string(cred.Role),
			Email:    cred.Email,
		})
	})
}
