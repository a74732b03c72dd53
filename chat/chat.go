package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"citybrain/cache"
	"citybrain/metrics"
	"citybrain/types"
)

const (
	notAnalyzedReply = "I don't have the data for %s loaded yet. Please click 'Analyze City' on the dashboard first."
	failureReply     = "I'm having trouble processing that request right now."

	systemPrompt = "You are the 'City Brain' AI assistant. You answer questions about a city using only the data you are given."
)

// Answerer produces a reply from a system and user prompt.
type Answerer interface {
	Answer(ctx context.Context, system, prompt string) (string, error)
}

// Responder answers chat questions from cached analyses only. It never
// touches a live data source.
type Responder struct {
	cache    *cache.Store
	answerer Answerer
	metrics  *metrics.Metrics
}

func NewResponder(store *cache.Store, answerer Answerer, m *metrics.Metrics) *Responder {
	return &Responder{cache: store, answerer: answerer, metrics: m}
}

// Reply answers message for city. A city that was never analyzed gets the
// fixed instructional reply.
func (r *Responder) Reply(ctx context.Context, city, message string) string {
	key := types.NormalizeCity(city)
	bundle, ok := r.cache.Get(key)
	if !ok {
		r.countLookup("miss")
		return NotAnalyzedReply(city)
	}
	r.countLookup("hit")

	log.Printf("[AI] chat query for %s using cached analysis %s", key, bundle.AnalysisID)

	prompt, err := buildPrompt(city, message, bundle)
	if err != nil {
		log.Printf("[AI] chat prompt build failed: %v", err)
		return failureReply
	}

	reply, err := r.answerer.Answer(ctx, systemPrompt, prompt)
	if r.metrics != nil {
		r.metrics.LLMCalls.WithLabelValues("chat", metrics.Outcome(err)).Inc()
	}
	if err != nil {
		log.Printf("[AI] chat error: %v", err)
		return failureReply
	}
	return reply
}

// NotAnalyzedReply is the answer for a city with no cached analysis.
func NotAnalyzedReply(city string) string {
	return fmt.Sprintf(notAnalyzedReply, city)
}

func (r *Responder) countLookup(result string) {
	if r.metrics != nil {
		r.metrics.ChatLookups.WithLabelValues(result).Inc()
	}
}

func buildPrompt(city, message string, bundle types.CityResultBundle) (string, error) {
	gov, err := json.MarshalIndent(bundle.GovData, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal gov data: %w", err)
	}
	breakdown, err := json.MarshalIndent(bundle.CitizenStats.CategoryBreakdown, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal category breakdown: %w", err)
	}

	return fmt.Sprintf(`You are the 'City Brain' AI Assistant for %s.

--- REAL-TIME GOVT SENSOR DATA ---
%s

--- CITIZEN ISSUE REPORT STATS ---
Total Reports: %d
Breakdown: %s

--- USER QUESTION ---
%q

--- INSTRUCTIONS ---
1. Answer the question using ONLY the data above.
2. If the user asks about Air Quality (AQI), use the exact number from the sensor data.
3. If the user asks about problems, cite the citizen report statistics.
4. Keep it helpful, professional, and concise.`,
		city, gov, bundle.CitizenStats.TotalReports, breakdown, message), nil
}
