package httpresp

import "github.com/gin-gonic/gin"

// Todas las respuestas exitosas llevan success=true junto al payload.

func OK(c *gin.Context, payload gin.H) {
	c.JSON(200, withSuccess(payload))
}

func Created(c *gin.Context, payload gin.H) {
	c.JSON(201, withSuccess(payload))
}

func withSuccess(payload gin.H) gin.H {
	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	return out
}
