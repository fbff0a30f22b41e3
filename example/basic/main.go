package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/finraglabs/finrag"
	"github.com/finraglabs/finrag/helper"
	"github.com/finraglabs/finrag/model"
)

// A tiny corpus: a few MD&A sentences from two fictional filings.
var sampleSentences = []*model.SentenceRecord{
	{
		SentenceID:           "320193_2022_ITEM_7_0000",
		SentencePos:          0,
		CIKInt:               320193,
		ReportYear:           2022,
		SectionName:          "ITEM_7",
		DocID:                "320193_2022_10K",
		CompanyName:          "Apple Inc.",
		Text:                 "Total net sales increased 8% or $28.5 billion during 2022 compared to 2021.",
		SectionSentenceCount: 3,
	},
	{
		SentenceID:           "320193_2022_ITEM_7_0001",
		SentencePos:          1,
		CIKInt:               320193,
		ReportYear:           2022,
		SectionName:          "ITEM_7",
		DocID:                "320193_2022_10K",
		CompanyName:          "Apple Inc.",
		Text:                 "The growth was driven primarily by higher net sales of iPhone and Services.",
		SectionSentenceCount: 3,
	},
	{
		SentenceID:           "320193_2022_ITEM_7_0002",
		SentencePos:          2,
		CIKInt:               320193,
		ReportYear:           2022,
		SectionName:          "ITEM_7",
		DocID:                "320193_2022_10K",
		CompanyName:          "Apple Inc.",
		Text:                 "Gross margin percentage increased during 2022 compared to 2021.",
		SectionSentenceCount: 3,
	},
	{
		SentenceID:           "789019_2022_ITEM_1A_0000",
		SentencePos:          0,
		CIKInt:               789019,
		ReportYear:           2022,
		SectionName:          "ITEM_1A",
		DocID:                "789019_2022_10K",
		CompanyName:          "Microsoft Corporation",
		Text:                 "Cyberattacks and security vulnerabilities could lead to reduced revenue and increased costs.",
		SectionSentenceCount: 1,
	},
}

var sampleCompanies = []*model.CompanyInfo{
	{CompanyID: "c-320193", CIKInt: 320193, CIKStr: "0000320193", Ticker: "AAPL", Name: "Apple Inc."},
	{CompanyID: "c-789019", CIKInt: 789019, CIKStr: "0000789019", Ticker: "MSFT", Name: "Microsoft Corporation"},
}

var sampleSections = []*model.SectionInfo{
	{SectionID: "s-1a", SecItemCanonical: "ITEM_1A", SectionName: "Risk Factors", PartNumber: 1},
	{SectionID: "s-7", SecItemCanonical: "ITEM_7", SectionName: "Management's Discussion and Analysis", PartNumber: 2},
}

func main() {
	ctx := context.Background()

	// Start a test PostgreSQL container with pgvector
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(ctx)

	os.Setenv("FINRAG_DB_HOST", "localhost")
	os.Setenv("FINRAG_DB_PORT", dbPort)
	os.Setenv("FINRAG_DB_DATABASE", "finrag_test")
	os.Setenv("FINRAG_DB_USERNAME", "postgres")
	os.Setenv("FINRAG_DB_PASSWORD", "postgres")

	f, err := finrag.New(nil)
	if err != nil {
		log.Fatalf("Failed to create finrag: %v", err)
	}
	defer f.Close()

	// Load the dimension tables and the corpus
	fmt.Println("Ingesting corpus...")
	if err := f.AddCompanies(ctx, sampleCompanies); err != nil {
		log.Fatalf("Failed to insert companies: %v", err)
	}
	if err := f.AddSections(ctx, sampleSections); err != nil {
		log.Fatalf("Failed to insert sections: %v", err)
	}
	embeddingID, err := f.AddSentences(ctx, sampleSentences, "")
	if err != nil {
		log.Fatalf("Failed to insert sentences: %v", err)
	}
	fmt.Printf("Inserted %d sentences under embedding run %s\n", len(sampleSentences), embeddingID)

	// Ask a question; the extractor picks up the company, year and section
	query := "What was Apple's revenue in 2022?"
	fmt.Printf("\nQuerying: %s\n", query)

	entities, err := f.ExtractEntities(query)
	if err != nil {
		log.Fatalf("Failed to extract entities: %v", err)
	}
	fmt.Printf("Extracted CIKs %v, years %v, metrics %v\n",
		entities.Companies.CIKsInt, entities.Years.Years, entities.Metrics.Metrics)

	contextText, records, err := f.SearchWithContext(ctx, query)
	if err != nil {
		log.Fatalf("Failed to search: %v", err)
	}

	fmt.Printf("\nExpanded %d sentences into context:\n\n%s\n", len(records), contextText)
	fmt.Println("\nBasic example completed successfully!")
}
