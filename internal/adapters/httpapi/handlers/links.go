package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/dto"
)

const deletedMessage = "Link deleted successfully"

type CreateLinkRequest struct {
	TargetURL  string `json:"targetUrl" validate:"required,max=2048" example:"https://example.com"`
	CustomCode string `json:"customCode" validate:"omitempty,min=3,max=20,linkcode" example:"docs"`
}

func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest

	if err := decodeCreateBody(c, &req); err != nil {
		writeBodyError(c, err)

		return
	}

	req.TargetURL = strings.TrimSpace(req.TargetURL)
	req.CustomCode = strings.TrimSpace(req.CustomCode)

	if detail, ok := validateStruct(req); ok {
		writeValidationError(c, detail)

		return
	}

	link, err := h.svc.Create(c.Request.Context(), req.TargetURL, req.CustomCode)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.Header("Location", "/api/links/"+link.Code)
	c.JSON(http.StatusCreated, dto.FromCreated(link, h.baseURL))
}

func (h *Handler) GetLink(c *gin.Context) {
	link, err := h.svc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, dto.FromDomain(link))
}

func (h *Handler) ListLinks(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, dto.FromList(items))
}

func (h *Handler) DeleteLink(c *gin.Context) {
	code := c.Param("code")

	if err := h.svc.Delete(c.Request.Context(), code); err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, dto.DeletedLinkResponse{
		Success: true,
		Message: deletedMessage,
		Code:    code,
	})
}
