// README: small CLI that generates one itinerary against the live Gemini API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"trailbook/internal/ai"
	"trailbook/internal/modules/intelligence"
)

func main() {
	destination := flag.String("destination", "Kyoto", "destination city")
	country := flag.String("country", "Japan", "destination country")
	days := flag.Int("days", 3, "trip length in days")
	interests := flag.String("interests", "food,temples", "comma-separated interests")
	budget := flag.String("budget", "moderate", "budget tier: budget, moderate, luxury")
	flag.Parse()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey, os.Getenv("TRAILBOOK_GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	svc := intelligence.NewService(provider, nil, 0)
	itinerary, err := svc.GenerateItinerary(ctx, intelligence.ItineraryRequest{
		Destination:  *destination,
		Country:      *country,
		DurationDays: *days,
		Interests:    strings.Split(*interests, ","),
		BudgetTier:   *budget,
	})
	if err != nil {
		log.Fatalf("Error generating itinerary: %v", err)
	}

	fmt.Printf("%s, %s — %d days\n", itinerary.Destination, itinerary.Country, itinerary.DurationDays)
	for _, day := range itinerary.Days {
		fmt.Printf("\nDay %d: %s\n", day.Day, day.Title)
		for _, act := range day.Activities {
			fmt.Printf("  %s  %s (%s)\n", act.Time, act.Name, act.Location)
		}
	}
	if len(itinerary.Tips) > 0 {
		fmt.Println("\nTips:")
		for _, tip := range itinerary.Tips {
			fmt.Printf("  - %s\n", tip)
		}
	}
	if itinerary.EstimatedBudget != "" {
		fmt.Printf("\nEstimated budget: %s\n", itinerary.EstimatedBudget)
	}
}
