package response

import (
	"context"
	"errors"
	"net/http"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/curaious/taskhive/internal/perrors"
)

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func TestWriteSuccessEnvelope(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	NewResponse(context.Background(), "Tasks retrieved successfully.", []string{"a", "b"}).Write(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	env := decode(t, ctx)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "Tasks retrieved successfully.", env.Message)
	assert.Equal(t, []any{"a", "b"}, env.Data)
}

// The transport status and the envelope status are always the same value.
func TestWriteErrorStatusMatchesEnvelope(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	NewResponse[any](context.Background(), "Task not available.", nil).
		WithError(perrors.NewErrNotFound("Task not available.", errors.New("no row"))).
		Write(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())

	env := decode(t, ctx)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Task not available.", env.Message)
	assert.Nil(t, env.Data)
}

// A plain error is surfaced as a 500 with the envelope's own message; the
// internal error text never reaches the body.
func TestWriteUncodedErrorBecomesInternal(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	NewResponse[any](context.Background(), "Failed to retrieve tasks.", nil).
		WithError(errors.New("pq: connection refused")).
		Write(ctx)

	assert.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())

	env := decode(t, ctx)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, "Failed to retrieve tasks.", env.Message)
	assert.NotContains(t, string(ctx.Response.Body()), "connection refused")
}

func TestWithStatusOverridesDefault(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	NewResponse(context.Background(), "Task created successfully.", map[string]string{"id": "1"}).
		WithStatus(http.StatusCreated).
		Write(ctx)

	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	env := decode(t, ctx)
	assert.Equal(t, http.StatusCreated, env.Status)
}
