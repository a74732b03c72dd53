package db

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"citybrain/types"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/grpc/status"
)

const issuesCollection = "issues"

// IssueDoc is one raw document from the issues collection.
type IssueDoc struct {
	ID   string
	Data map[string]any
}

// IssueScanner lists every stored issue document.
type IssueScanner interface {
	ScanIssues(ctx context.Context) ([]IssueDoc, error)
}

// FirestoreIssues scans the issues collection of a Firestore database.
type FirestoreIssues struct {
	Client *firestore.Client
}

func (f FirestoreIssues) ScanIssues(ctx context.Context) ([]IssueDoc, error) {
	if f.Client == nil {
		return nil, fmt.Errorf("firestore client not initialized")
	}

	iter := f.Client.Collection(issuesCollection).Documents(ctx)
	defer iter.Stop()

	var docs []IssueDoc
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate %s (code %s): %w", issuesCollection, status.Code(err), err)
		}
		docs = append(docs, IssueDoc{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return docs, nil
}

// ReportCollector reads citizen issue documents and normalizes them.
type ReportCollector struct {
	scanner IssueScanner
}

func NewReportCollector(scanner IssueScanner) *ReportCollector {
	return &ReportCollector{scanner: scanner}
}

// Collect returns every stored report. The store has no city field, so no
// filtering happens here. A failed scan yields an empty list.
func (r *ReportCollector) Collect(ctx context.Context, city string) []types.CitizenReport {
	log.Printf("[DB] fetching citizen reports for %s", city)

	docs, err := r.scanner.ScanIssues(ctx)
	if err != nil {
		log.Printf("[DB] citizen report fetch failed: %v", err)
		return []types.CitizenReport{}
	}

	reports := make([]types.CitizenReport, 0, len(docs))
	located := 0
	for _, d := range docs {
		report := NormalizeIssue(d)
		if report.HasCoords {
			located++
		}
		reports = append(reports, report)
	}

	log.Printf("[DB] loaded %d citizen reports (%d with coordinates)", len(reports), located)
	return reports
}

// NormalizeIssue maps a raw issue document onto a CitizenReport.
func NormalizeIssue(d IssueDoc) types.CitizenReport {
	loc, _ := d.Data["location"].(map[string]any)

	report := types.CitizenReport{
		ID:           d.ID,
		LocationName: stringOr(loc["neighborhood"], "Unknown"),
		Description:  stringOr(d.Data["description"], "Issue reported"),
		Category:     stringOr(d.Data["category"], "general"),
		Street:       stringOr(loc["streetName"], ""),
		Photo:        stringOr(d.Data["photoUrl"], ""),
		Timestamp:    timestampString(d.Data["createdAt"]),
		Source:       "citizen_app",
	}

	if lat, lng, ok := geopoint(loc["geopoint"]); ok {
		report.Lat = lat
		report.Lng = lng
		report.HasCoords = true
	}
	return report
}

func stringOr(v any, def string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func timestampString(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case string:
		return t
	}
	return ""
}

// geopoint accepts the Firestore GeoPoint type and the plain map form that
// older app builds wrote.
func geopoint(v any) (float64, float64, bool) {
	switch g := v.(type) {
	case *latlng.LatLng:
		if g == nil {
			return 0, 0, false
		}
		return g.GetLatitude(), g.GetLongitude(), true
	case map[string]any:
		lat, latOK := g["latitude"].(float64)
		lng, lngOK := g["longitude"].(float64)
		if latOK && lngOK {
			return lat, lng, true
		}
	}
	return 0, 0, false
}
