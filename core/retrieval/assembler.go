package retrieval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/finraglabs/finrag/model"
)

// Assembler renders expanded sentences into a single context string,
// grouped per filing section with newest filings first.
type Assembler struct{}

// NewAssembler returns an assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble sorts the sentences by company, year (newest first), section and
// position, then renders one header block per (company, year, section)
// group with the sentences joined as prose.
func (a *Assembler) Assemble(records []*model.SentenceRecord) string {
	if len(records) == 0 {
		return ""
	}

	sorted := append([]*model.SentenceRecord{}, records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		x, y := sorted[i], sorted[j]
		if x.CompanyName != y.CompanyName {
			return x.CompanyName < y.CompanyName
		}
		if x.ReportYear != y.ReportYear {
			return x.ReportYear > y.ReportYear
		}
		if x.SectionName != y.SectionName {
			return x.SectionName < y.SectionName
		}
		if x.DocID != y.DocID {
			return x.DocID < y.DocID
		}
		return x.SentencePos < y.SentencePos
	})

	var blocks []string
	var currentHeader string
	var currentLines []string

	flush := func() {
		if currentHeader == "" {
			return
		}
		blocks = append(blocks, currentHeader+"\n"+strings.Join(currentLines, "\n"))
		currentLines = nil
	}

	for _, record := range sorted {
		header := fmt.Sprintf("=== %s | %d | %s ===", record.CompanyName, record.ReportYear, record.SectionName)
		if header != currentHeader {
			flush()
			currentHeader = header
		}
		currentLines = append(currentLines, record.Text)
	}
	flush()

	return strings.Join(blocks, "\n\n")
}
