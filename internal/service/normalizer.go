package service

import (
	"math"
	"sort"

	"surveypulse/internal/model"
)

// Normalize rescales a set of metrics records so their combined
// totalResponses equals desiredTotal exactly, preserving each record's
// internal percentage consistency. Records that had responses are never
// zeroed out, and records with zero responses stay at zero: the rounding
// remainder goes to the last record that had responses. The input order
// matters for rounding, so callers must pass a stable, deterministic
// order; input records are not mutated.
//
// desiredTotal must be at least the number of records with a nonzero
// total, otherwise the min-1 floor and the exact-sum constraint cannot
// both hold and a ValidationError is returned.
func Normalize(records []*model.MetricsRecord, desiredTotal int) ([]*model.MetricsRecord, error) {
	currentTotal := 0
	nonzero := 0
	for _, r := range records {
		currentTotal += r.TotalResponses
		if r.TotalResponses > 0 {
			nonzero++
		}
	}
	if currentTotal == 0 || currentTotal == desiredTotal {
		return records, nil
	}
	if desiredTotal < nonzero {
		return nil, NewValidationError("desired total %d is below the %d surveys with responses", desiredTotal, nonzero)
	}

	scale := float64(desiredTotal) / float64(currentTotal)

	// The remainder absorber is the last record with responses; trailing
	// zero-total records must not pick up rounding remainder.
	lastNonzero := -1
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].TotalResponses > 0 {
			lastNonzero = i
			break
		}
	}

	// nonzeroAfter[i] = records after index i that still need their
	// floor of 1; earlier allocations are capped to leave room for it.
	nonzeroAfter := make([]int, len(records))
	for i := len(records) - 2; i >= 0; i-- {
		nonzeroAfter[i] = nonzeroAfter[i+1]
		if records[i+1].TotalResponses > 0 {
			nonzeroAfter[i]++
		}
	}

	out := make([]*model.MetricsRecord, len(records))
	assigned := 0
	for i, r := range records {
		cp := r.Clone()

		var newTotal int
		if i == lastNonzero {
			// Takes the exact remainder, absorbing all rounding error
			// accumulated so far.
			newTotal = desiredTotal - assigned
		} else {
			newTotal = int(math.Round(float64(r.TotalResponses) * scale))
			if r.TotalResponses > 0 && newTotal < 1 {
				newTotal = 1
			}
			if capTotal := desiredTotal - assigned - nonzeroAfter[i]; newTotal > capTotal {
				newTotal = capTotal
			}
		}
		assigned += newTotal

		rescaleRecord(cp, newTotal, scale)
		out[i] = cp
	}
	return out, nil
}

// rescaleRecord rewrites one record against its new response total.
// Confidence averages are sample-size independent and stay untouched.
func rescaleRecord(r *model.MetricsRecord, newTotal int, scale float64) {
	r.TotalResponses = newTotal

	// Deterministic label order: rounded counts are trimmed against the
	// new total and map iteration order must not influence the result.
	labels := make([]string, 0, len(r.Classifications))
	for label := range r.Classifications {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	counted := 0
	for _, label := range labels {
		st := r.Classifications[label]
		st.Count = int(math.Round(float64(st.Count) * scale))
		if st.Count > newTotal-counted {
			st.Count = newTotal - counted
		}
		counted += st.Count
		if newTotal > 0 {
			st.Percentage = float64(st.Count) / float64(newTotal) * 100
		} else {
			st.Percentage = 0
		}
		r.Classifications[label] = st
	}

	// Neutral absorbs the sentiment rounding error so the three buckets
	// sum exactly to the new total.
	pos := int(math.Round(float64(r.SentimentTotals.Positive) * scale))
	neg := int(math.Round(float64(r.SentimentTotals.Negative) * scale))
	r.SentimentTotals = model.SentimentTotals{
		Positive: pos,
		Negative: neg,
		Neutral:  max(0, newTotal-pos-neg),
	}
}
