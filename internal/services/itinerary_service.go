package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

const (
	itineraryModel       = "llama-3.3-70b-versatile"
	itineraryTemperature = 0.5
	itineraryTimeout     = 60 * time.Second

	defaultDailyRate = 200
)

var dailyRates = map[string]int{
	models.BudgetEconomy:  100,
	models.BudgetStandard: 250,
	models.BudgetLuxury:   500,
}

var nonDigits = regexp.MustCompile(`[^\d]`)

// BaselineCost is the fallback budget estimate: a per-day rate for the tier
// multiplied by the trip length.
func BaselineCost(budgetType string, days int) int {
	rate, ok := dailyRates[budgetType]
	if !ok {
		rate = defaultDailyRate
	}
	return rate * days
}

// ItineraryService generates a day-by-day plan with a language model. Every
// failure mode degrades to an empty plan and the baseline cost so trip
// creation never fails because of the model.
type ItineraryService struct {
	Client   ChatCompletionClient
	Model    string
	ErrorLog *log.Logger
}

func NewItineraryService(client ChatCompletionClient, model string, errorLog *log.Logger) *ItineraryService {
	if model == "" {
		model = itineraryModel
	}
	return &ItineraryService{Client: client, Model: model, ErrorLog: errorLog}
}

// Generate returns the itinerary payload to store (raw JSON text, possibly
// empty) and the cost estimate for the trip.
func (s *ItineraryService) Generate(ctx context.Context, destination string, days int, budgetType, interests string) (string, int) {
	cost := BaselineCost(budgetType, days)
	if s == nil || s.Client == nil {
		return "", cost
	}

	ctx, cancel := context.WithTimeout(ctx, itineraryTimeout)
	defer cancel()

	resp, err := s.Client.Complete(ctx, ChatCompletionRequest{
		Model:        s.Model,
		Temperature:  itineraryTemperature,
		JSONResponse: true,
		Messages: []ChatMessage{
			{Role: "system", Content: "You are a JSON generator."},
			{Role: "user", Content: buildItineraryPrompt(destination, days, budgetType, interests)},
		},
	})
	if err != nil {
		s.logError("itinerary generation failed: %v", err)
		return "", cost
	}

	payload := stripCodeFences(resp.Content)

	var plan models.ItineraryPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		s.logError("itinerary response was not valid JSON: %v", err)
		return "", cost
	}

	if parsed, ok := reconcileCost(plan.EstimatedCost); ok {
		cost = parsed
	}
	return payload, cost
}

func (s *ItineraryService) logError(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}

func buildItineraryPrompt(destination string, days int, budgetType, interests string) string {
	rate, ok := dailyRates[budgetType]
	if !ok {
		rate = defaultDailyRate
	}
	return fmt.Sprintf(`Create a %d-day travel itinerary for %s.
Budget tier: %s (around $%d per day in total). Traveler interests: %s.

Respond with ONLY a JSON object, no prose, in exactly this structure:
{
  "estimated_cost": <total trip cost in USD as a number>,
  "currency": "USD",
  "days": [
    {
      "day": 1,
      "title": "<short theme for the day>",
      "activities": [
        {
          "time": "09:00",
          "title": "<activity name>",
          "description": "<one or two sentences>",
          "location": "<place name>",
          "type": "<food|sightseeing|culture|nature|shopping|transport>",
          "icon": "<a single emoji>",
          "cost": "<approximate cost like $20>"
        }
      ]
    }
  ]
}
Include 3-5 activities per day and keep the plan realistic for the budget tier.`,
		days, destination, budgetType, rate*days, interests)
}

// stripCodeFences removes markdown code fences some models wrap around JSON.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// reconcileCost extracts a usable integer from whatever the model put in
// estimated_cost: a number, a string like "$1,200", or garbage. A value that
// is plainly zero or negative never overrides the baseline.
func reconcileCost(raw json.RawMessage) (int, bool) {
	text := strings.TrimSpace(string(raw))
	text = strings.Trim(text, `"`)
	if text == "" || text == "null" {
		return 0, false
	}

	if n, err := strconv.Atoi(text); err == nil {
		if n > 0 {
			return n, true
		}
		return 0, false
	}

	digits := nonDigits.ReplaceAllString(text, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
