package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/problems"
)

// maxCreateBody leaves room for a 2048 byte URL, a custom code and escaping.
const maxCreateBody = 8 << 10

var (
	errEmptyBody    = errors.New("empty body")
	errTrailingData = errors.New("extra data after JSON object")
)

// decodeCreateBody reads exactly one JSON object with known fields from a
// body of at most maxCreateBody bytes.
func decodeCreateBody(c *gin.Context, dst *CreateLinkRequest) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return errEmptyBody
	}

	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxCreateBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}

		return err
	}

	if dec.More() {
		return errTrailingData
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return errTrailingData
		}

		return err
	}

	return nil
}

func writeBodyError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		problems.WriteProblem(c, problems.Problem{
			Type:   problems.ProblemTypeTooLarge,
			Title:  problems.TitlePayloadTooLarge,
			Status: http.StatusRequestEntityTooLarge,
			Detail: problems.DetailBodyTooLarge,
		})

		return
	}

	problems.WriteProblem(c, problems.Problem{
		Type:   problems.ProblemTypeInvalidJSON,
		Title:  problems.TitleBadRequest,
		Status: http.StatusBadRequest,
		Detail: problems.DetailInvalidJSON,
	})
}
