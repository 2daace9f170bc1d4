// Package medical holds the static abbreviation and drug reference tables
// with exact/substring lookup and whole-word abbreviation expansion. Tables
// are loaded once at construction and read-only on every request path; the
// append operations exist for future extensibility and are not routed.
package medical

import (
	"regexp"
	"sort"
	"strings"
)

type Table struct {
	abbreviations []Abbreviation
	drugs         []Drug
	expansions    []expansion
}

type expansion struct {
	pattern     *regexp.Regexp
	replacement string
	tokenLen    int
}

// NewTable builds the lookup table from the built-in reference data.
func NewTable() *Table {
	t := &Table{
		abbreviations: append([]Abbreviation(nil), defaultAbbreviations...),
		drugs:         append([]Drug(nil), defaultDrugs...),
	}
	t.compileExpansions()
	return t
}

// FindAbbreviation does a case-insensitive exact match on the abbreviation
// token. Returns nil when unknown.
func (t *Table) FindAbbreviation(code string) *Abbreviation {
	code = strings.ToLower(strings.TrimSpace(code))
	for i := range t.abbreviations {
		if strings.ToLower(t.abbreviations[i].Abbreviation) == code {
			return &t.abbreviations[i]
		}
	}
	return nil
}

// FindDrug does a case-insensitive exact match against the canonical name,
// generic name, or any brand alias. When several records could match, the
// first in table order wins.
func (t *Table) FindDrug(name string) *Drug {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	for i := range t.drugs {
		d := &t.drugs[i]
		if strings.ToLower(d.Name) == name || strings.ToLower(d.GenericName) == name {
			return d
		}
		for _, brand := range d.BrandNames {
			if strings.ToLower(brand) == name {
				return d
			}
		}
	}
	return nil
}

// SearchDrugs returns every record whose name, generic name, brand alias, or
// category contains the query, case-insensitively, in table order.
func (t *Table) SearchDrugs(query string) []Drug {
	query = strings.ToLower(strings.TrimSpace(query))
	matches := []Drug{}
	if query == "" {
		return matches
	}
	for _, d := range t.drugs {
		if t.drugMatches(d, query) {
			matches = append(matches, d)
		}
	}
	return matches
}

func (t *Table) drugMatches(d Drug, query string) bool {
	if strings.Contains(strings.ToLower(d.Name), query) ||
		strings.Contains(strings.ToLower(d.GenericName), query) ||
		strings.Contains(strings.ToLower(d.Category), query) {
		return true
	}
	for _, brand := range d.BrandNames {
		if strings.Contains(strings.ToLower(brand), query) {
			return true
		}
	}
	return false
}

// ExpandAbbreviations replaces every whole-word, case-insensitive occurrence
// of a known abbreviation with its expansion. Longer tokens are applied
// first so an abbreviation that is a substring of another's token can never
// rewrite text inside it; equal-length tokens keep table order.
func (t *Table) ExpandAbbreviations(text string) string {
	for _, e := range t.expansions {
		text = e.pattern.ReplaceAllString(text, e.replacement)
	}
	return text
}

// AddAbbreviation appends to the abbreviation table and recompiles the
// expansion patterns.
func (t *Table) AddAbbreviation(a Abbreviation) {
	t.abbreviations = append(t.abbreviations, a)
	t.compileExpansions()
}

// AddDrug appends to the drug table.
func (t *Table) AddDrug(d Drug) {
	t.drugs = append(t.drugs, d)
}

func (t *Table) compileExpansions() {
	exps := make([]expansion, 0, len(t.abbreviations))
	for _, a := range t.abbreviations {
		exps = append(exps, expansion{
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(a.Abbreviation) + `\b`),
			replacement: a.Expansion,
			tokenLen:    len(a.Abbreviation),
		})
	}
	sort.SliceStable(exps, func(i, j int) bool {
		return exps[i].tokenLen > exps[j].tokenLen
	})
	t.expansions = exps
}
