package logger

import (
	"testing"

	"github.com/deppfellow/issuetrack/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	require.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("anything"))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	require.Equal(t, tracelog.LogLevelDebug, GetPgxTraceLogLevel(zerolog.DebugLevel))
	require.Equal(t, tracelog.LogLevelInfo, GetPgxTraceLogLevel(zerolog.InfoLevel))
	require.Equal(t, tracelog.LogLevelError, GetPgxTraceLogLevel(zerolog.FatalLevel))
	require.Equal(t, tracelog.LogLevelNone, GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestLoggerService_WithoutLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	svc, err := NewLoggerService(cfg)
	require.NoError(t, err)
	require.Nil(t, svc.GetApplication())
	svc.Shutdown()

	var nilSvc *LoggerService
	require.Nil(t, nilSvc.GetApplication())
}

func TestNewLoggerWithService_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "json"

	l := NewLoggerWithService(cfg, &LoggerService{})
	require.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestWithTraceContext_NilTxn(t *testing.T) {
	l := zerolog.Nop()
	require.Equal(t, l, WithTraceContext(l, nil))
}
