package retrieval

import (
	"testing"

	"github.com/finraglabs/finrag/model"
	"github.com/stretchr/testify/assert"
)

func assemblerRecord(company string, year int, section string, pos int, text string) *model.SentenceRecord {
	return &model.SentenceRecord{
		SentenceID:  text,
		SentencePos: pos,
		ReportYear:  year,
		SectionName: section,
		DocID:       "doc-1",
		CompanyName: company,
		Text:        text,
	}
}

func TestAssemblerAssemble(t *testing.T) {
	assembler := NewAssembler()

	t.Run("Empty input produces empty context", func(t *testing.T) {
		assert.Equal(t, "", assembler.Assemble(nil))
		assert.Equal(t, "", assembler.Assemble([]*model.SentenceRecord{}))
	})

	t.Run("Single group renders header and joined sentences", func(t *testing.T) {
		context := assembler.Assemble([]*model.SentenceRecord{
			assemblerRecord("Apple Inc.", 2022, "ITEM_7", 1, "Second sentence."),
			assemblerRecord("Apple Inc.", 2022, "ITEM_7", 0, "First sentence."),
		})
		assert.Equal(t,
			"=== Apple Inc. | 2022 | ITEM_7 ===\nFirst sentence.\nSecond sentence.",
			context,
			"Expected sentences in position order under one header",
		)
	})

	t.Run("Groups are separated by a blank line", func(t *testing.T) {
		context := assembler.Assemble([]*model.SentenceRecord{
			assemblerRecord("Apple Inc.", 2022, "ITEM_7", 0, "Revenue grew."),
			assemblerRecord("Apple Inc.", 2022, "ITEM_1A", 0, "Risks remain."),
		})
		assert.Equal(t,
			"=== Apple Inc. | 2022 | ITEM_1A ===\nRisks remain.\n\n=== Apple Inc. | 2022 | ITEM_7 ===\nRevenue grew.",
			context,
		)
	})

	t.Run("Newer filings come before older ones", func(t *testing.T) {
		context := assembler.Assemble([]*model.SentenceRecord{
			assemblerRecord("Apple Inc.", 2020, "ITEM_7", 0, "Older filing."),
			assemblerRecord("Apple Inc.", 2022, "ITEM_7", 0, "Newer filing."),
		})
		assert.Equal(t,
			"=== Apple Inc. | 2022 | ITEM_7 ===\nNewer filing.\n\n=== Apple Inc. | 2020 | ITEM_7 ===\nOlder filing.",
			context,
		)
	})

	t.Run("Companies are ordered alphabetically", func(t *testing.T) {
		context := assembler.Assemble([]*model.SentenceRecord{
			assemblerRecord("Microsoft Corporation", 2022, "ITEM_7", 0, "Cloud revenue grew."),
			assemblerRecord("Apple Inc.", 2022, "ITEM_7", 0, "Product revenue grew."),
		})
		assert.Equal(t,
			"=== Apple Inc. | 2022 | ITEM_7 ===\nProduct revenue grew.\n\n=== Microsoft Corporation | 2022 | ITEM_7 ===\nCloud revenue grew.",
			context,
		)
	})
}
