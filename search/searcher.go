package search

import (
	"math"
	"sort"

	"github.com/simon200418/songindex/core"
	"github.com/simon200418/songindex/index"
	"github.com/simon200418/songindex/query"
)

// BM25 parameters. Standard values; a field's length normalization uses
// that field's own average length.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// Search evaluates a query tree against a generation and returns at most
// limit results ordered by descending score, document id ascending on
// ties. A non-positive limit returns every match. A query that matches
// nothing returns an empty slice.
func Search(gen *index.Generation, node query.Node, limit int) ([]core.SearchResult, error) {
	return SearchWithMonitor(gen, node, limit, nil)
}

// SearchWithMonitor is Search with observation hooks. A nil monitor is
// replaced with a no-op.
func SearchWithMonitor(gen *index.Generation, node query.Node, limit int, monitor SearchMonitor) ([]core.SearchResult, error) {
	if gen == nil {
		return nil, ErrGenerationRequired
	}
	if node == nil {
		return nil, ErrQueryRequired
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(node)

	scores := evaluate(gen, node, monitor)

	results := make([]core.SearchResult, 0, len(scores))
	for docID, score := range scores {
		fields, _ := gen.StoredFields(docID)
		results = append(results, core.SearchResult{
			DocID:  docID,
			Score:  score,
			Fields: fields,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	monitor.Finish(results)
	return results, nil
}

// evaluate returns per-document scores for one node.
func evaluate(gen *index.Generation, node query.Node, monitor SearchMonitor) map[string]float64 {
	switch n := node.(type) {
	case query.Term:
		return evaluateTerm(gen, n, monitor)
	case query.Phrase:
		return evaluatePhrase(gen, n, monitor)
	case query.Or:
		return evaluateOr(gen, n.Children, monitor)
	case query.And:
		return evaluateAnd(gen, n.Children, monitor)
	default:
		return nil
	}
}

func evaluateTerm(gen *index.Generation, n query.Term, monitor SearchMonitor) map[string]float64 {
	postings := gen.Postings(n.Field, n.Term)
	monitor.TermPostings(n.Field, n.Term, len(postings))
	if len(postings) == 0 {
		return nil
	}

	idf := inverseDocFreq(gen.DocCount(), len(postings))
	scores := make(map[string]float64, len(postings))
	for _, p := range postings {
		scores[p.DocID] = bm25(gen, n.Field, p.DocID, float64(p.Frequency), idf)
	}
	return scores
}

// evaluatePhrase scores documents where the phrase terms occur at adjacent
// positions. The occurrence count takes the place of term frequency; the
// idf is that of the rarest member term, so a phrase never scores higher
// than its most selective word would alone.
func evaluatePhrase(gen *index.Generation, n query.Phrase, monitor SearchMonitor) map[string]float64 {
	if len(n.Terms) == 0 {
		return nil
	}

	lists := make([]core.PostingList, len(n.Terms))
	minDocFreq := math.MaxInt
	for i, term := range n.Terms {
		lists[i] = gen.Postings(n.Field, term)
		monitor.TermPostings(n.Field, term, len(lists[i]))
		if len(lists[i]) == 0 {
			return nil
		}
		if len(lists[i]) < minDocFreq {
			minDocFreq = len(lists[i])
		}
	}

	idf := inverseDocFreq(gen.DocCount(), minDocFreq)
	scores := make(map[string]float64)
	for _, first := range lists[0] {
		positions := positionsInDoc(lists, first.DocID)
		if positions == nil {
			continue
		}
		occurrences := countAdjacent(positions)
		if occurrences == 0 {
			continue
		}
		scores[first.DocID] = bm25(gen, n.Field, first.DocID, float64(occurrences), idf)
	}
	return scores
}

func evaluateOr(gen *index.Generation, children []query.Node, monitor SearchMonitor) map[string]float64 {
	scores := make(map[string]float64)
	for _, child := range children {
		for docID, score := range evaluate(gen, child, monitor) {
			scores[docID] += score
		}
	}
	return scores
}

func evaluateAnd(gen *index.Generation, children []query.Node, monitor SearchMonitor) map[string]float64 {
	var scores map[string]float64
	for _, child := range children {
		childScores := evaluate(gen, child, monitor)
		if len(childScores) == 0 {
			return nil
		}
		if scores == nil {
			scores = childScores
			continue
		}
		for docID, score := range scores {
			childScore, ok := childScores[docID]
			if !ok {
				delete(scores, docID)
				continue
			}
			scores[docID] = score + childScore
		}
		if len(scores) == 0 {
			return nil
		}
	}
	return scores
}

// inverseDocFreq is the BM25 idf with the +1 inside the log, which keeps
// it positive even when a term occurs in most documents.
func inverseDocFreq(docCount, docFreq int) float64 {
	n := float64(docCount)
	df := float64(docFreq)
	return math.Log((n-df+0.5)/(df+0.5) + 1)
}

// bm25 scores one document for one field given a raw frequency and idf.
func bm25(gen *index.Generation, field, docID string, freq, idf float64) float64 {
	norm := 1.0
	if avg := gen.AvgFieldLen(field); avg > 0 {
		norm = 1 - bm25B + bm25B*float64(gen.FieldLen(docID, field))/avg
	}
	return idf * (freq * (bm25K1 + 1)) / (freq + bm25K1*norm)
}

// positionsInDoc collects each term's position list for one document, or
// nil when any term is absent from it.
func positionsInDoc(lists []core.PostingList, docID string) [][]uint32 {
	positions := make([][]uint32, len(lists))
	for i, list := range lists {
		idx := sort.Search(len(list), func(j int) bool {
			return list[j].DocID >= docID
		})
		if idx == len(list) || list[idx].DocID != docID {
			return nil
		}
		positions[i] = list[idx].Positions
	}
	return positions
}

// countAdjacent counts starts where every following term occurs exactly
// one position after its predecessor.
func countAdjacent(positions [][]uint32) int {
	chains := positions[0]
	for _, next := range positions[1:] {
		var advanced []uint32
		for _, pos := range chains {
			if containsPosition(next, pos+1) {
				advanced = append(advanced, pos+1)
			}
		}
		if len(advanced) == 0 {
			return 0
		}
		chains = advanced
	}
	return len(chains)
}

func containsPosition(sorted []uint32, pos uint32) bool {
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i] >= pos
	})
	return idx < len(sorted) && sorted[idx] == pos
}
