package main

import (
	"log"
	"os"
	"time"

	"tobago-concierge-be/internal/model"
	"tobago-concierge-be/pkg/database"
	"tobago-concierge-be/pkg/qcache"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// faqSeeds are the questions first-time visitors ask most. Pre-warming the
// answer cache means the very first visitor of the season gets an instant
// reply instead of waiting on the model.
var faqSeeds = []struct {
	Question string
	Answer   string
}{
	{
		Question: "Where can I get good food in Tobago?",
		Answer:   "You have great options! For seafood right on the beach, try Store Bay's famous crab and dumpling stalls. Miss Jean's and Miss Esmie's are local legends there. If you want a sit-down meal, the Seahorse Inn near Stonehaven Bay does excellent fresh fish. And do not leave without trying curry crab, it is the island specialty!",
	},
	{
		Question: "What is the best beach in Tobago?",
		Answer:   "Pigeon Point is the postcard beach, calm turquoise water and that famous thatched jetty. Store Bay is livelier with food stalls right on the sand. If you want something quieter, Englishman's Bay is a gorgeous hidden cove on the leeward coast, and Castara Bay gives you a real fishing-village feel.",
	},
	{
		Question: "What is there to do in Tobago?",
		Answer:   "Plenty! Glass-bottom boat tours to the Buccoo Reef and the Nylon Pool are a must. The rainforest at Main Ridge is the oldest protected forest in the western hemisphere, great for birdwatching and waterfall hikes. Sunday School in Buccoo is the big weekly street party, and Little Tobago island is a fantastic day trip for seabirds.",
	},
	{
		Question: "How do I get to Tobago?",
		Answer:   "Most visitors fly into A.N.R. Robinson International Airport at Crown Point, with direct flights from Trinidad and several international routes. The inter-island ferry from Port of Spain is a budget-friendly option, and cruise ships call at the Scarborough port during the season.",
	},
	{
		Question: "Is Tobago safe for tourists?",
		Answer:   "Tobago is one of the more relaxed islands in the Caribbean and most visits are completely trouble-free. Use the usual common sense: keep valuables out of sight, take licensed taxis at night, and check conditions before swimming on the Atlantic side where currents are stronger.",
	},
}

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	success := color.New(color.FgGreen)
	skip := color.New(color.FgYellow)

	log.Println("Seeding Answer Cache...")

	created, skipped := 0, 0
	for _, seed := range faqSeeds {
		hash := qcache.Normalize(seed.Question)

		var existing model.CachedAnswer
		if err := db.Where("question_hash = ?", hash).First(&existing).Error; err == nil {
			skip.Printf("  cached answer for %q already exists, skipping\n", seed.Question)
			skipped++
			continue
		}

		answer := model.CachedAnswer{
			QuestionHash:   hash,
			QuestionText:   seed.Question,
			Answer:         seed.Answer,
			LastAccessedAt: time.Now(),
		}
		if err := db.Create(&answer).Error; err != nil {
			log.Printf("Error creating cached answer for %q: %v", seed.Question, err)
			continue
		}
		success.Printf("  seeded answer for %q\n", seed.Question)
		created++
	}

	success.Printf("Answer cache seeding completed: %d created, %d skipped\n", created, skipped)
}
