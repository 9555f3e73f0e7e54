package httperr

import (
	"car-auction/internal/domain/region"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	// Region is the caller region the request was served for, when it sent one.
	Region string `json:"region,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

func NewResponse(c *gin.Context, status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	if c != nil && c.Request != nil {
		if r, ok := region.CallerFrom(c.Request.Context()); ok {
			resp.Region = r.String()
		}
	}
	return resp
}

// AbortWithError keeps err on the gin context for the logging middleware and
// writes the public message.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(c, status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
