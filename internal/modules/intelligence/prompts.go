package intelligence

import (
	"fmt"
	"strings"

	"trailbook/internal/modules/trip"
)

const summarySystemPrompt = `Role: You are a travel writer summarising a user's journal of one trip.
Reply with VALID JSON ONLY, no prose outside it, in exactly this schema:
{
  "title": "string (evocative title for the trip)",
  "summary": "string (2-4 paragraph narrative summary)",
  "highlights": ["string (memorable moment or place)"],
  "recommendations": ["string (advice for a future visit)"]
}`

const itinerarySystemPrompt = `Role: You are a travel planner building a day-by-day itinerary.
Reply with VALID JSON ONLY, no prose outside it, in exactly this schema:
{
  "destination": "string",
  "country": "string",
  "durationDays": integer,
  "days": [
    {
      "day": integer (1-based),
      "title": "string",
      "activities": [
        {"time": "string (e.g. morning, 14:00)", "name": "string", "description": "string", "location": "string"}
      ]
    }
  ],
  "tips": ["string (practical local advice)"],
  "estimatedBudget": "string (rough daily figure for the requested budget tier)"
}`

const recommendSystemPrompt = `Role: You are a travel advisor recommending new destinations based on a user's travel history.
Suggest 5 to 7 destinations the user has NOT already visited.
Reply with VALID JSON ONLY, no prose outside it, in exactly this schema:
{
  "recommendations": [
    {
      "destination": "string (city or region)",
      "country": "string",
      "reason": "string (why it fits this user's history and interests)",
      "bestTime": "string (best season or months to go)",
      "highlights": ["string (thing to see or do there)"]
    }
  ]
}`

func buildSummaryPrompt(t *trip.Trip, entries []trip.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trip: %s\n", t.Name)
	if t.StartDate != nil && t.EndDate != nil {
		fmt.Fprintf(&b, "Dates: %s to %s\n", t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Journal entries (%d):\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(&b, "\n--- Entry %d ---\n", i+1)
		fmt.Fprintf(&b, "Date: %s\n", e.Date.Format("2006-01-02"))
		fmt.Fprintf(&b, "Title: %s\n", e.Title)
		if e.LocationLabel != "" {
			fmt.Fprintf(&b, "Location: %s", e.LocationLabel)
			if e.Country != "" {
				fmt.Fprintf(&b, ", %s", e.Country)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Type: %s\n", e.Category)
		if e.Content != "" {
			fmt.Fprintf(&b, "Text: %s\n", e.Content)
		}
	}
	return b.String()
}

func buildItineraryPrompt(req ItineraryRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-day trip to %s, %s.\n", req.DurationDays, req.Destination, req.Country)
	if req.StartDate != "" {
		fmt.Fprintf(&b, "Starting on: %s\n", req.StartDate)
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "Traveller interests: %s\n", strings.Join(req.Interests, ", "))
	}
	fmt.Fprintf(&b, "Budget tier: %s\n", req.BudgetTier)
	return b.String()
}

func buildRecommendPrompt(profile *trip.UserProfile, trips []trip.Trip, entries []trip.Entry) string {
	var b strings.Builder
	b.WriteString("Traveller profile:\n")
	if profile.HomeCountry != "" {
		fmt.Fprintf(&b, "Home country: %s\n", profile.HomeCountry)
	}
	if len(profile.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(profile.Interests, ", "))
	}
	if len(profile.Stats.CountriesVisited) > 0 {
		fmt.Fprintf(&b, "Countries visited: %s\n", strings.Join(profile.Stats.CountriesVisited, ", "))
	}

	if len(trips) > recommendationHistoryCap {
		trips = trips[:recommendationHistoryCap]
	}
	fmt.Fprintf(&b, "\nRecent trips (%d):\n", len(trips))
	for _, t := range trips {
		fmt.Fprintf(&b, "- %s\n", t.Name)
	}

	// Entries condense to place lines; full journal text would blow the
	// prompt budget without improving the suggestions.
	seen := map[string]bool{}
	b.WriteString("\nPlaces journaled:\n")
	for _, e := range entries {
		if e.LocationLabel == "" && e.Country == "" {
			continue
		}
		line := strings.TrimPrefix(e.LocationLabel+", "+e.Country, ", ")
		line = strings.TrimSuffix(line, ", ")
		if seen[line] {
			continue
		}
		seen[line] = true
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}
