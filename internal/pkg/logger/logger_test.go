package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "console to stderr", cfg: Config{Level: "debug", Format: "console", Output: "stderr"}},
		{name: "file output", cfg: Config{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "app.log")}},
		{name: "unknown level", cfg: Config{Level: "verbose"}, wantErr: true},
		{name: "unknown format", cfg: Config{Format: "xml"}, wantErr: true},
		{name: "unwritable file", cfg: Config{Output: filepath.Join(t.TempDir(), "missing", "app.log")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, log)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := ParseLevel(tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	t.Run("missing logger falls back to no-op", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
		assert.Empty(t, RequestID(context.Background()))
		assert.Empty(t, ActorID(context.Background()))
	})

	t.Run("request and actor ids are carried", func(t *testing.T) {
		ctx, _ := WithRequestID(context.Background(), base, "req-1")
		ctx, _ = WithActorID(ctx, FromContext(ctx), "user-7")

		assert.Equal(t, "req-1", RequestID(ctx))
		assert.Equal(t, "user-7", ActorID(ctx))

		FromContext(ctx).Info("hello")
		logs := recorded.TakeAll()
		require.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "user-7", fields["actor_id"])
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog := NewGormLogger(zap.NewNop(), gormlogger.Info)
	warn := gormLog.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gormLog.level)
	cloned, ok := warn.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, cloned.level)
}

func TestGormLogger_Trace(t *testing.T) {
	fc := func() (string, int64) {
		return `SELECT * FROM "deliveries" WHERE is_deleted = false`, 3
	}

	t.Run("errors are logged", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Error)

		gormLog.Trace(context.Background(), time.Now(), fc, errors.New("boom"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
		assert.Equal(t, "sql error", logs[0].Message)
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Error)

		gormLog.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("slow statements warn", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "slow sql")
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Silent)

		gormLog.Trace(context.Background(), time.Now(), fc, errors.New("boom"))

		assert.Empty(t, recorded.All())
	})

	t.Run("request id is attached", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gormLog := NewGormLogger(zap.New(core), gormlogger.Info)
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-42")

		gormLog.Trace(ctx, time.Now(), fc, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "req-42", logs[0].ContextMap()["request_id"])
	})
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLevel("whatever"))
}

func TestEchoMiddleware(t *testing.T) {
	t.Run("propagates the request id and logs the status", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		e := echo.New()
		e.Use(EchoMiddleware(zap.New(core)))

		var seen string
		e.GET("/ping", func(c echo.Context) error {
			seen = RequestID(c.Request().Context())
			return c.NoContent(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderXRequestID, "abc")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", rec.Header().Get(echo.HeaderXRequestID))
		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, int64(http.StatusNoContent), logs[0].ContextMap()["status"])
	})

	t.Run("errors are logged with the final status", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		e := echo.New()
		e.Use(EchoMiddleware(zap.New(core)))
		e.GET("/missing", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusNotFound, "nope")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})
}
