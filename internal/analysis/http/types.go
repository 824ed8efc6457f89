package http

import (
	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/camel-tools-api/camel-api/internal/analysis/service"
)

// Handler handles HTTP requests for text analysis
type Handler struct {
	analysisService *service.AnalysisService
}

// New creates a new Handler
func New(analysisService *service.AnalysisService) *Handler {
	return &Handler{analysisService: analysisService}
}

// analyzeBody uses pointers so that an absent field can be told apart from
// an empty string.
type analyzeBody struct {
	Text *string `json:"text" binding:"required"`
	Flag *string `json:"flag" binding:"required"`
}

func (b analyzeBody) toRequest() domain.AnalysisRequest {
	return domain.AnalysisRequest{Text: *b.Text, Flag: *b.Flag}
}

type batchBody struct {
	Requests []analyzeBody `json:"requests" binding:"required,min=1,dive"`
}

type batchResponse struct {
	Results []domain.BatchItemResult `json:"results"`
}

type operationsResponse struct {
	Operations []domain.Operation `json:"operations"`
}

type errorResponse struct {
	Error *domain.ErrorBody `json:"error"`
}
