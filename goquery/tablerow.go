package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	dirscrape "github.com/AnanthHariharan/directory-scraper"
)

// extractRow extracts a record from a table row. When the enclosing table
// has a header row, columns are aligned to fields by header-label scoring;
// otherwise cells are classified by content and position.
func (e *Extractor) extractRow(row *goquery.Selection, schema dirscrape.FieldSchema, base *url.URL) dirscrape.Record {
	cells := splitSelection(row.ChildrenFiltered("td, th"))
	if len(cells) == 0 {
		rec := dirscrape.NewRecord(schema)
		for _, f := range schema {
			rec[f.Name] = e.extractField(row, f, base)
		}
		return rec
	}

	if headers := tableHeaders(row); len(headers) > 0 {
		return e.extractRowWithHeaders(cells, headers, schema, base)
	}
	return e.extractRowByContent(row, cells, schema, base)
}

// tableHeaders returns the header labels of the row's enclosing table: the
// th texts of the first row that carries header cells. The row itself never
// contributes its own cells.
func tableHeaders(row *goquery.Selection) []string {
	table := row.Closest("table")
	if table.Length() == 0 {
		return nil
	}

	rowNode := row.Nodes[0]
	var headers []string
	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if tr.Nodes[0] == rowNode {
			return true
		}
		ths := tr.ChildrenFiltered("th")
		if ths.Length() == 0 {
			return true
		}
		ths.Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, cleanText(th.Text()))
		})
		return false
	})
	return headers
}

// extractRowWithHeaders aligns columns to fields by scoring each header
// label against each field name. A header may feed multiple fields; values
// landing on an already-filled field are appended unless they repeat the
// existing text exactly.
func (e *Extractor) extractRowWithHeaders(cells []*goquery.Selection, headers []string, schema dirscrape.FieldSchema, base *url.URL) dirscrape.Record {
	rec := dirscrape.NewRecord(schema)

	colFields := make(map[int]dirscrape.FieldSchema)
	for col, header := range headers {
		if col >= len(cells) {
			break
		}
		for _, f := range schema {
			if e.headerScore(header, f.Name) > e.Config.HeaderAcceptScore {
				colFields[col] = append(colFields[col], f)
			}
		}
	}

	for col, cell := range cells {
		for _, f := range colFields[col] {
			value := e.extractField(cell, f, base)
			if value == "" {
				continue
			}
			switch cur := rec[f.Name]; {
			case cur == "":
				rec[f.Name] = value
			case cur != value:
				rec[f.Name] = cur + " " + value
			}
		}
	}
	return rec
}

// headerScore rates how well a header label matches a field name.
// Synonym pairings override the textual comparison.
func (e *Extractor) headerScore(header, fieldName string) int {
	header = strings.ToLower(header)
	fieldName = strings.ToLower(fieldName)

	score := 0
	switch {
	case header == fieldName:
		score = e.Config.HeaderExactScore
	case strings.Contains(header, fieldName):
		score = e.Config.HeaderContainsScore
	case strings.Contains(fieldName, header):
		score = e.Config.FieldContainsScore
	}

	containsAny := func(s string, terms []string) bool {
		for _, t := range terms {
			if strings.Contains(s, t) {
				return true
			}
		}
		return false
	}
	for _, syn := range e.Config.Synonyms {
		if containsAny(header, syn.Header) && containsAny(fieldName, syn.Field) {
			score = e.Config.SynonymScore
			break
		}
	}
	return score
}

// extractRowByContent maps cells to fields without headers: contact-typed
// cells are claimed first (email, phone, URL), then remaining cells match
// remaining fields left to right by simple content rules. Fields left
// without a cell fall back to the generic extractor over the whole row.
func (e *Extractor) extractRowByContent(row *goquery.Selection, cells []*goquery.Selection, schema dirscrape.FieldSchema, base *url.URL) dirscrape.Record {
	assigned := make(map[string]int)  // field name -> cell index
	claimed := make(map[int]bool)     // cell index -> taken

	urlField := ""
	for _, f := range schema {
		lower := strings.ToLower(f.Name)
		if strings.Contains(lower, "url") || strings.Contains(lower, "link") || strings.Contains(lower, "website") {
			urlField = f.Name
			break
		}
	}

	for i, cell := range cells {
		text := cleanText(cell.Text())

		if schema.Has("email") {
			if _, done := assigned["email"]; !done {
				if cell.Find(`a[href^="mailto:"]`).Length() > 0 || findEmail(text) != "" {
					assigned["email"] = i
					claimed[i] = true
					continue
				}
			}
		}

		if schema.Has("phone") {
			if _, done := assigned["phone"]; !done {
				if cell.Find(`a[href^="tel:"]`).Length() > 0 || findPhone(text) != "" {
					assigned["phone"] = i
					claimed[i] = true
					continue
				}
			}
		}

		if urlField != "" {
			if _, done := assigned[urlField]; !done {
				hasLink := false
				cell.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
					if followable(a.AttrOr("href", "")) {
						hasLink = true
						return false
					}
					return true
				})
				if hasLink {
					assigned[urlField] = i
					claimed[i] = true
					continue
				}
			}
		}
	}

	// Positional pass over whatever is left.
	for i, cell := range cells {
		if claimed[i] {
			continue
		}
		text := cleanText(cell.Text())
		if len(text) < 2 {
			continue
		}

		for _, f := range schema {
			if _, done := assigned[f.Name]; done {
				continue
			}
			lower := strings.ToLower(f.Name)

			switch {
			case e.isNameField(lower):
				if len(text) > e.Config.NameMinLen && len(text) < e.Config.NameMaxLen {
					assigned[f.Name] = i
					claimed[i] = true
				}
			case strings.Contains(lower, "bio") || strings.Contains(lower, "description"):
				if len(text) > e.Config.BioMinLen {
					assigned[f.Name] = i
					claimed[i] = true
				}
			default:
				assigned[f.Name] = i
				claimed[i] = true
			}

			if claimed[i] {
				break
			}
		}
	}

	rec := dirscrape.NewRecord(schema)
	for _, f := range schema {
		if i, ok := assigned[f.Name]; ok {
			rec[f.Name] = e.extractField(cells[i], f, base)
		} else {
			rec[f.Name] = e.extractField(row, f, base)
		}
	}
	return rec
}

// isNameField reports whether a lowered field name is one of the
// name/title-style fields.
func (e *Extractor) isNameField(lower string) bool {
	for _, n := range e.Config.NameFields {
		if lower == n {
			return true
		}
	}
	return false
}
