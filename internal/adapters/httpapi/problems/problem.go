// Package problems renders RFC 7807 style error bodies.
package problems

import (
	"github.com/gin-gonic/gin"
)

type Problem struct {
	Type   string `json:"type" example:"validation_error"`
	Title  string `json:"title" example:"Validation error"`
	Status int    `json:"status" example:"400"`
	Detail string `json:"detail,omitempty" example:"Code must be at least 3 characters"`
}

func WriteProblem(c *gin.Context, p Problem) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(p.Status, p)
}

// AbortWithProblem writes p and stops the handler chain.
func AbortWithProblem(c *gin.Context, p Problem) {
	WriteProblem(c, p)
	c.Abort()
}
