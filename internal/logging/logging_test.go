package logging

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromCtx_FallsBackToBase(t *testing.T) {
	assert.Same(t, Base(), FromCtx(context.Background()))
}

func TestWith_PropagatesToRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	l := New("test")
	With(c, l)

	assert.Same(t, l, From(c))
	assert.Same(t, l, FromCtx(c.Request.Context()))
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("debug")
	assert.Equal(t, slog.LevelDebug, level.Level())
	SetLevel("WARN")
	assert.Equal(t, slog.LevelWarn, level.Level())
	SetLevel("bogus")
	assert.Equal(t, slog.LevelInfo, level.Level())
}
