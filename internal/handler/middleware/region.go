package middleware

import (
	"net/http"

	"car-auction/internal/domain/region"
	"car-auction/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const (
	RegionHeader    = "X-Region"
	callerRegionKey = "caller_region"
)

// CallerRegion moves the X-Region header into the request context. Requests
// without the header fall back to the simulator's default region.
func CallerRegion() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(RegionHeader)
		if raw == "" {
			c.Next()
			return
		}
		r, err := region.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown region in "+RegionHeader+" header", nil)
			return
		}
		c.Set(callerRegionKey, r)
		c.Request = c.Request.WithContext(region.WithCaller(c.Request.Context(), r))
		c.Next()
	}
}

func GetCallerRegion(c *gin.Context) (region.Region, bool) {
	v, ok := c.Get(callerRegionKey)
	if !ok {
		return "", false
	}
	r, ok := v.(region.Region)
	return r, ok
}
