package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// SetupTracing configures the global tracer from JAEGER_* environment
// variables. Tracing stays disabled when no agent is configured.
func SetupTracing(serviceName string) io.Closer {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		logrus.Warnf("tracing disabled: %v", err)
		return nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		logrus.Warnf("tracing disabled: %v", err)
		return nil
	}
	opentracing.SetGlobalTracer(tracer)
	return closer
}
