package tracing

import (
	"caseflow/common"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// TracingIngress opens a server span per request, continuing the caller's
// trace when the request carries one, and hands the span down through the
// request context.
func TracingIngress() gin.HandlerFunc {
	serviceName := common.GetServiceName()

	return func(ctx *gin.Context) {
		tracer := opentracing.GlobalTracer()
		callerCtx, _ := tracer.Extract(opentracing.HTTPHeaders,
			opentracing.HTTPHeadersCarrier(ctx.Request.Header))

		span := tracer.StartSpan(ctx.Request.Method+" "+ctx.FullPath(), ext.RPCServerOption(callerCtx))
		ext.Component.Set(span, serviceName)
		ext.HTTPMethod.Set(span, ctx.Request.Method)
		ext.HTTPUrl.Set(span, ctx.Request.RequestURI)

		ctx.Request = ctx.Request.WithContext(opentracing.ContextWithSpan(ctx.Request.Context(), span))
		ctx.Next()

		ext.HTTPStatusCode.Set(span, uint16(ctx.Writer.Status()))
		span.Finish()
	}
}
