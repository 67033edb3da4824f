package service

import (
	"math/rand"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/srijan-y/Playing-with-Ngrams/internal/model/ngram"
)

// Outcome is one full n-gram observed under a context, with its raw count.
type Outcome struct {
	Gram  ngram.NGram
	Count int64
}

// FreqTable accumulates outcome counts for a single context. Outcomes keep
// insertion order so that identical token streams build identical tables.
type FreqTable struct {
	Outcomes []Outcome
	Total    int64

	index map[string]int // gram string -> position in Outcomes
}

func newFreqTable() *FreqTable {
	return &FreqTable{index: make(map[string]int)}
}

func (ft *FreqTable) add(gram ngram.NGram) {
	key := gram.String()
	if i, ok := ft.index[key]; ok {
		ft.Outcomes[i].Count++
	} else {
		ft.index[key] = len(ft.Outcomes)
		ft.Outcomes = append(ft.Outcomes, Outcome{Gram: gram, Count: 1})
	}
	ft.Total++
}

// ConditionalDist is a smoothed conditional distribution over full n-grams,
// keyed by the space-joined context. A bloom filter fronts the context map;
// it has no false negatives, so a filter miss is a definite unknown context
// and generation-time probes for unseen contexts skip the map lookup.
type ConditionalDist struct {
	order    int // width of the stored n-grams
	contexts map[string]*FreqTable
	smoother Smoother
	filter   *bloom.BloomFilter
}

func newConditionalDist(order int, smoother Smoother) *ConditionalDist {
	return &ConditionalDist{
		order:    order,
		contexts: make(map[string]*FreqTable),
		smoother: smoother,
		filter:   bloom.NewWithEstimates(100000, 0.01),
	}
}

// observe records one full n-gram window under its n-1 token context.
// Windows of the wrong width are ignored.
func (d *ConditionalDist) observe(window ngram.NGram) {
	if len(window) != d.order {
		return
	}
	key := window.Context().String()
	ft := d.contexts[key]
	if ft == nil {
		ft = newFreqTable()
		d.contexts[key] = ft
		d.filter.AddString(key)
	}
	ft.add(window)
}

// restore installs a context's frequency table, used when loading a saved model.
func (d *ConditionalDist) restore(key string, outcomes []Outcome) {
	ft := newFreqTable()
	for _, o := range outcomes {
		ft.index[o.Gram.String()] = len(ft.Outcomes)
		ft.Outcomes = append(ft.Outcomes, o)
		ft.Total += o.Count
	}
	d.contexts[key] = ft
	d.filter.AddString(key)
}

// Table returns the frequency table for a context, or nil if the context was
// never observed.
func (d *ConditionalDist) Table(context ngram.NGram) *FreqTable {
	key := context.String()
	if !d.filter.TestString(key) {
		return nil
	}
	return d.contexts[key]
}

// Sample draws one full n-gram for the context, weighted by smoothed counts.
// The second return value is false when the context was never observed; an
// unknown context has no defined distribution.
func (d *ConditionalDist) Sample(rng *rand.Rand, context ngram.NGram) (ngram.NGram, bool) {
	ft := d.Table(context)
	if ft == nil || len(ft.Outcomes) == 0 {
		return nil, false
	}

	total := 0.0
	for _, o := range ft.Outcomes {
		total += d.smoother.Weight(o.Count)
	}

	target := rng.Float64() * total
	for _, o := range ft.Outcomes {
		target -= d.smoother.Weight(o.Count)
		if target <= 0 {
			return o.Gram, true
		}
	}

	// Floating point residue; the last outcome takes the remainder.
	return ft.Outcomes[len(ft.Outcomes)-1].Gram, true
}

// Probability returns the smoothed probability of a full n-gram under its
// context, or 0 if the context was never observed.
func (d *ConditionalDist) Probability(gram ngram.NGram) float64 {
	ft := d.Table(gram.Context())
	if ft == nil {
		return 0.0
	}

	var count int64
	if i, ok := ft.index[gram.String()]; ok {
		count = ft.Outcomes[i].Count
	}
	return d.smoother.Probability(count, ft.Total, len(ft.Outcomes))
}

// Contexts returns the number of distinct contexts in the distribution.
func (d *ConditionalDist) Contexts() int {
	return len(d.contexts)
}
