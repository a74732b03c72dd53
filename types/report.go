package types

// CitizenReport is one normalized issue document from the citizen app.
type CitizenReport struct {
	ID           string  `json:"id"`
	LocationName string  `json:"location_name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Street       string  `json:"street"`
	Photo        string  `json:"photo"`
	Timestamp    string  `json:"timestamp"`
	Source       string  `json:"source"`
	Lat          float64 `json:"lat,omitempty"`
	Lng          float64 `json:"lng,omitempty"`
	HasCoords    bool    `json:"has_coords"`
}

type CitizenStats struct {
	TotalReports      int            `json:"total_reports"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}

// StatsFromReports counts reports per category.
func StatsFromReports(reports []CitizenReport) CitizenStats {
	breakdown := make(map[string]int)
	for _, r := range reports {
		breakdown[r.Category]++
	}
	return CitizenStats{TotalReports: len(reports), CategoryBreakdown: breakdown}
}
