package handlers

import "github.com/gin-gonic/gin"

// fail renders the single JSON error shape used by every endpoint and
// stops the handler chain.
func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}
