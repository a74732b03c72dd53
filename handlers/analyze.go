package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"citybrain/pipeline"
	"citybrain/types"

	"github.com/gin-gonic/gin"
)

const recentIssuesLimit = 5

// Analyzer runs the city pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, city string) pipeline.Result
}

type analyzeRequest struct {
	City string `json:"city" binding:"required"`
}

type analyzeResponse struct {
	City         []float64             `json:"city"`
	CityCenter   []float64             `json:"city_center"`
	MapMarkers   []types.Marker        `json:"map_markers"`
	GovData      types.GovData         `json:"gov_data"`
	CitizenStats types.CitizenStats    `json:"citizen_stats"`
	RecentIssues []types.CitizenReport `json:"recent_issues"`
}

// AnalyzeCity runs a full analysis and returns the dashboard payload. It
// succeeds with whatever subset of data could be gathered. Only a malformed
// request body or a blank city is rejected, before any analysis starts.
func AnalyzeCity(c *gin.Context, analyzer Analyzer) {
	var request analyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// A blank name has no cache key worth keeping.
	if strings.TrimSpace(request.City) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city must not be blank"})
		return
	}

	log.Printf("Received request to analyze %s", request.City)
	res := analyzer.Analyze(c.Request.Context(), request.City)

	recent := res.Reports
	if len(recent) > recentIssuesLimit {
		recent = recent[:recentIssuesLimit]
	}
	if recent == nil {
		recent = []types.CitizenReport{}
	}

	c.Header("X-Analysis-ID", res.Bundle.AnalysisID)
	c.JSON(http.StatusOK, analyzeResponse{
		City:         res.Center.Pair(),
		CityCenter:   res.Center.Pair(),
		MapMarkers:   res.Bundle.Markers,
		GovData:      res.Bundle.GovData,
		CitizenStats: res.Bundle.CitizenStats,
		RecentIssues: recent,
	})
}
