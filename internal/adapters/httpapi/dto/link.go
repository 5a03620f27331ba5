package dto

import (
	"time"

	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

type CreatedLinkResponse struct {
	Code      string    `json:"code" example:"abc123"`
	TargetURL string    `json:"targetUrl" example:"https://example.com"`
	ShortURL  string    `json:"shortUrl" example:"http://localhost:8080/abc123"`
	CreatedAt time.Time `json:"createdAt" example:"2026-01-02T03:04:05Z"`
}

type LinkResponse struct {
	Code          string     `json:"code" example:"abc123"`
	TargetURL     string     `json:"targetUrl" example:"https://example.com"`
	TotalClicks   int64      `json:"totalClicks" example:"3"`
	LastClickedAt *time.Time `json:"lastClickedAt" example:"2026-01-02T03:04:05Z"`
	CreatedAt     time.Time  `json:"createdAt" example:"2026-01-02T03:04:05Z"`
}

type LinksResponse struct {
	Links []LinkResponse `json:"links"`
}

type DeletedLinkResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Link deleted successfully"`
	Code    string `json:"code" example:"abc123"`
}

func ShortURL(baseURL, code string) string {
	return baseURL + "/" + code
}

func FromCreated(link domain.Link, baseURL string) CreatedLinkResponse {
	return CreatedLinkResponse{
		Code:      link.Code,
		TargetURL: link.TargetURL,
		ShortURL:  ShortURL(baseURL, link.Code),
		CreatedAt: link.CreatedAt,
	}
}

func FromDomain(link domain.Link) LinkResponse {
	return LinkResponse{
		Code:          link.Code,
		TargetURL:     link.TargetURL,
		TotalClicks:   link.TotalClicks,
		LastClickedAt: link.LastClickedAt,
		CreatedAt:     link.CreatedAt,
	}
}

func FromList(items []domain.Link) LinksResponse {
	out := make([]LinkResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromDomain(it))
	}

	return LinksResponse{Links: out}
}
