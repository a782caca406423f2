package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/metrics"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/gin-gonic/gin"
)

// NewTraceIDInterceptor attaches a trace id to the request context and the
// response headers
func NewTraceIDInterceptor() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(utils.TraceID)
		if traceID == "" {
			traceID = utils.GenerateTraceID()
		}
		c.Request = c.Request.WithContext(utils.WithTraceID(c.Request.Context(), traceID))
		c.Header(utils.TraceID, traceID)
		c.Next()
	}
}

// NewRequestLogInterceptor logs every request with its outcome
func NewRequestLogInterceptor() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		duration := time.Since(startTime)
		log.WithFields(utils.TraceID, c.Request.Context().Value(utils.CtxTraceID)).
			Infof("method[%v] path[%v] status[%v] code[%v] msg[%v] processTime[%v]",
				c.Request.Method, c.FullPath(), c.Writer.Status(), c.GetInt64(respCodeKey), c.GetString(respMsgKey), duration.String())
	}
}

// NewRequestMetricsInterceptor records the request metrics to prometheus
func NewRequestMetricsInterceptor() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		duration := time.Since(startTime)
		methodName := c.Request.Method + " " + c.FullPath()
		isSuccess := c.Writer.Status() < http.StatusBadRequest && c.GetInt64(respCodeKey) == defaultSuccessCode
		metrics.RecordRequest(methodName, isSuccess)
		metrics.RecordRequestLatency(methodName, duration, isSuccess)
	}
}

// NewIPCheckInterceptor blocks the requests coming from a blocklisted IP
func NewIPCheckInterceptor(blocklist []string) gin.HandlerFunc {
	blocked := make(map[string]struct{}, len(blocklist))
	for _, ip := range blocklist {
		blocked[strings.TrimSpace(ip)] = struct{}{}
	}
	return func(c *gin.Context) {
		if len(blocked) == 0 {
			c.Next()
			return
		}
		ip := getIPAddrFromHeaders(c.Request.Header)
		if ip == "" {
			ip = c.ClientIP()
		}
		log.Debugf("path[%v] client IP: %v", c.FullPath(), ip)
		if _, ok := blocked[ip]; ok {
			c.Set(respCodeKey, int64(codeIPRestricted))
			c.AbortWithStatusJSON(http.StatusForbidden, Response{Code: codeIPRestricted, Msg: ipRestrictionErrorMsg})
			return
		}

		// Not restricted, continue the flow
		c.Next()
	}
}

func getIPAddrFromHeaders(headers http.Header) string {
	ipHeaders := []string{"x-real-ip", "x-forwarded-for", "Proxy-Client-IP", "WL-Proxy-Client-IP"}

	// Check each header in order
	for _, h := range ipHeaders {
		// Find the first valid IP address from the headers
		val := headers.Get(h)
		if val == "" {
			continue
		}
		ipArray := strings.Split(val, ",")
		ip := strings.TrimSpace(ipArray[0])
		// Return the first valid IP address found
		if ip != "" && strings.ToLower(ip) != "unknown" {
			return ip
		}
	}

	return ""
}
