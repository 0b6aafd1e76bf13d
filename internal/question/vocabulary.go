package question

import "strings"

// Vocabulary holds the configured word sets used by question analysis.
type Vocabulary struct {
	UninformativeVerbs map[string]struct{}
	CommandVerbs       map[string]struct{}
}

func NewVocabulary(uninformative, command []string) Vocabulary {
	return Vocabulary{
		UninformativeVerbs: toSet(uninformative),
		CommandVerbs:       toSet(command),
	}
}

func (v Vocabulary) IsUninformative(lemma string) bool {
	_, ok := v.UninformativeVerbs[strings.ToLower(lemma)]
	return ok
}

func (v Vocabulary) IsCommand(lemma string) bool {
	_, ok := v.CommandVerbs[strings.ToLower(lemma)]
	return ok
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
