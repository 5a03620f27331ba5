package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

const notFoundPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Link not found</title></head>
<body>
<h1>404</h1>
<p>This short link does not exist or has been deleted.</p>
<p><a href="/">Back to home</a></p>
</body>
</html>
`

func (h *Handler) Redirect(c *gin.Context) {
	code := c.Param("code")

	// paths like /favicon.ico can never be codes
	if domain.ValidateCode(code) != nil {
		h.notFoundPage(c)

		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), h.visitTimeout)
	defer cancel()

	link, err := h.svc.Visit(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.notFoundPage(c)

			return
		}

		h.fail(c, err)

		return
	}

	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, link.TargetURL)
}

func (h *Handler) notFoundPage(c *gin.Context) {
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
}
