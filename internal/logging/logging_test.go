package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(GinLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, p := range []string{"/ok", "/missing?clues=X"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries=%d, want 2", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("levels: %v %v", entries[0].Level, entries[1].Level)
	}
	fields := entries[1].ContextMap()
	if fields["path"] != "/missing" || fields["query"] != "clues=X" {
		t.Fatalf("fields: %v", fields)
	}
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{true, false} {
		logger, err := New(dev)
		if err != nil {
			t.Fatalf("New(%v): %v", dev, err)
		}
		_ = logger.Sync()
	}
}
