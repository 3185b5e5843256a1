package compare

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/sheetmap/internal/sheet"
)

// SheetTerms counts the terms of one sheet.
type SheetTerms struct {
	Sheet    string `json:"sheet"`
	Distinct int    `json:"distinct"`
	Unique   int    `json:"unique"` // terms found in no other sheet
}

// Pair compares the term sets of two sheets.
type Pair struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Shared  int     `json:"shared"`
	Jaccard float64 `json:"jaccard"`
}

// Report is the term overlap across a set of sheets.
type Report struct {
	Sheets      []SheetTerms `json:"sheets"`
	Pairs       []Pair       `json:"pairs"`
	SharedByAll int          `json:"shared_by_all"`
	Common      []string     `json:"common"` // terms in every sheet, as first spelled
}

// termKey is the form terms are compared in: trimmed, NFC, case folded.
type termKey struct {
	fold cases.Caser
}

func newTermKey() *termKey {
	return &termKey{fold: cases.Fold()}
}

func (k *termKey) of(term string) string {
	t := strings.TrimSpace(term)
	if t == "" {
		return ""
	}
	return k.fold.String(norm.NFC.String(t))
}

// Overlap compares the terms of sets. Blank terms are ignored and repeated terms
// count once per sheet. Pairs are listed in input order (0-1, 0-2, ..., 1-2, ...).
func Overlap(sets []sheet.RecordSet) Report {
	key := newTermKey()
	spelling := make(map[string]string)
	termSets := make([]map[string]struct{}, len(sets))
	for i, rs := range sets {
		terms := make(map[string]struct{})
		for _, r := range rs.Records {
			k := key.of(r.Term)
			if k == "" {
				continue
			}
			terms[k] = struct{}{}
			if _, ok := spelling[k]; !ok {
				spelling[k] = strings.TrimSpace(r.Term)
			}
		}
		termSets[i] = terms
	}

	// Number of sheets each term appears in.
	seenIn := make(map[string]int)
	for _, terms := range termSets {
		for k := range terms {
			seenIn[k]++
		}
	}

	rep := Report{
		Sheets: make([]SheetTerms, len(sets)),
		Pairs:  make([]Pair, 0, len(sets)*(len(sets)-1)/2),
		Common: []string{},
	}
	for i, terms := range termSets {
		st := SheetTerms{Sheet: sets[i].Sheet, Distinct: len(terms)}
		for k := range terms {
			if seenIn[k] == 1 {
				st.Unique++
			}
		}
		rep.Sheets[i] = st
	}

	for i := range termSets {
		for j := i + 1; j < len(termSets); j++ {
			shared := intersect(termSets[i], termSets[j])
			union := len(termSets[i]) + len(termSets[j]) - shared
			p := Pair{A: sets[i].Sheet, B: sets[j].Sheet, Shared: shared}
			if union > 0 {
				p.Jaccard = float64(shared) / float64(union)
			}
			rep.Pairs = append(rep.Pairs, p)
		}
	}

	if len(sets) > 0 {
		for k, n := range seenIn {
			if n == len(sets) {
				rep.Common = append(rep.Common, spelling[k])
			}
		}
		sort.Strings(rep.Common)
		rep.SharedByAll = len(rep.Common)
	}
	return rep
}

func intersect(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
