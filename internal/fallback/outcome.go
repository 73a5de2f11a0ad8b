package fallback

import (
	"fmt"

	"dicas-api/pkg/api"
)

// SuggestionErrorPrefix starts every failure note attached to fallback suggestions.
const SuggestionErrorPrefix = "Erro ao gerar sugestões"

// Outcome is the result of one upstream attempt: either items, or a reason
// explaining why there are none.
type Outcome struct {
	Items  []string
	Reason api.FailureReason
	Err    error
}

// Succeeded wraps upstream items. An empty list is recorded as ReasonEmpty.
func Succeeded(items []string) Outcome {
	if len(items) == 0 {
		return Outcome{Reason: api.ReasonEmpty}
	}
	return Outcome{Items: items, Reason: api.ReasonNone}
}

// Failed records an upstream error together with its classified reason.
func Failed(err error) Outcome {
	return Outcome{Reason: api.ClassifyError(err), Err: err}
}

// From builds an Outcome from a client's (items, error) return pair.
func From(items []string, err error) Outcome {
	if err != nil {
		return Failed(err)
	}
	return Succeeded(items)
}

// OK reports whether the outcome carries usable upstream data.
func (o Outcome) OK() bool {
	return o.Reason == api.ReasonNone && len(o.Items) > 0
}

// TrendsDecision is what the trends endpoint serves.
type TrendsDecision struct {
	Trends       []string
	UsedFallback bool
	Reason       api.FailureReason
}

// MergeTrends serves upstream data when present and the static list otherwise.
// Failures are not annotated in the result; callers log them.
func MergeTrends(o Outcome) TrendsDecision {
	if o.OK() {
		return TrendsDecision{Trends: o.Items, Reason: api.ReasonNone}
	}
	return TrendsDecision{Trends: Trends(), UsedFallback: true, Reason: o.Reason}
}

// SuggestionsDecision is what the suggestions endpoint serves.
type SuggestionsDecision struct {
	Suggestions  []string
	Error        string
	UsedFallback bool
	Reason       api.FailureReason
}

// MergeSuggestions serves upstream titles when present. Otherwise it serves
// the templated titles for topic and a human-readable note on what failed.
func MergeSuggestions(topic string, o Outcome) SuggestionsDecision {
	if o.OK() {
		return SuggestionsDecision{Suggestions: o.Items, Reason: api.ReasonNone}
	}

	return SuggestionsDecision{
		Suggestions:  Suggestions(topic),
		Error:        suggestionError(o),
		UsedFallback: true,
		Reason:       o.Reason,
	}
}

func suggestionError(o Outcome) string {
	if o.Err != nil {
		return fmt.Sprintf("%s: %s", SuggestionErrorPrefix, o.Err.Error())
	}
	return fmt.Sprintf("%s: %s", SuggestionErrorPrefix, api.ErrEmptyCompletion.Error())
}
