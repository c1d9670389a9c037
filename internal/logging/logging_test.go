package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/chatauth/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNew_JSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.Global{Env: config.EnvProduction, LogLevel: "debug"}, &buf)

	logger.WithField("k", "v").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNew_TextInDevelopment(t *testing.T) {
	logger := NewWithOutput(config.Global{Env: config.EnvDevelopment, LogLevel: "info"}, &bytes.Buffer{})

	_, ok := logger.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

func TestNew_UnknownLevel(t *testing.T) {
	logger := NewWithOutput(config.Global{LogLevel: "chatty"}, &bytes.Buffer{})

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "/ok", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
	assert.Equal(t, rr.Header().Get(RequestIDHeader), entry.Data["request_id"])

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRequestLogger_PropagatesIncomingID(t *testing.T) {
	logger, _ := test.NewNullLogger()

	var seen string
	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/", func(c *gin.Context) {
		seen = c.GetString(ContextKeyRequestID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}
