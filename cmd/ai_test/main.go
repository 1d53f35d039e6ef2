package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"go-glints-harvester/internal/ai"
	"go-glints-harvester/internal/scraper"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		godotenv.Load("../../.env")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("GEMINI_API_KEY environment variable not set. Running with the mock classifier.")
	}

	client := ai.NewClient(apiKey, "gemini-2.5-flash")

	job := scraper.Job{
		Title:    "Social Media Specialist",
		Company:  "PT Maju Jaya",
		Location: "Jakarta Selatan, Jakarta, Indonesia",
		Salary:   "Rp5.000.000 - Rp7.000.000",
		Tags:     []string{"Penuh Waktu", "1 - 3 tahun pengalaman"},
	}

	fmt.Println("Sending a sample job to the classifier...")

	cls, err := client.ClassifyJob(context.Background(), job)
	if err != nil {
		log.Fatalf("ClassifyJob failed: %v", err)
	}

	fmt.Println("\nSuccess! Classification:")
	fmt.Printf("  Cluster:    %s\n", cls.Cluster)
	fmt.Printf("  Category:   %s\n", cls.Category)
	fmt.Printf("  Seniority:  %s\n", cls.Seniority)
	fmt.Printf("  Work mode:  %s\n", cls.WorkMode)
	fmt.Printf("  Languages:  %v\n", cls.Languages)
	fmt.Printf("  Confidence: %.2f\n", cls.Confidence)
}
