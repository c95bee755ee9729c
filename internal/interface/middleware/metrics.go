package middleware

import (
	"expvar"
	"strconv"

	"github.com/gin-gonic/gin"
)

var httpResponses = expvar.NewMap("http_responses")

// Metrics counts responses per status code, published under /debug/vars.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		httpResponses.Add(strconv.Itoa(c.Writer.Status()), 1)
	}
}
