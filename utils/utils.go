package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// NormalizeAnswer prepares a free-form answer for comparison: surrounding
// whitespace is insignificant, everything else is compared exactly.
func NormalizeAnswer(s string) string {
	return strings.TrimSpace(s)
}

// FormAnswers extracts positional answers from exam form fields. Choice
// forms post q0..qN, computational forms post q0Answer..qNAnswer; both map
// to the same position index.
func FormAnswers(values url.Values) map[int]string {
	answers := make(map[int]string)
	for key, vals := range values {
		if len(vals) == 0 || !strings.HasPrefix(key, "q") {
			continue
		}
		idxStr := strings.TrimSuffix(strings.TrimPrefix(key, "q"), "Answer")
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			continue
		}
		answers[idx] = vals[0]
	}
	return answers
}

// AnswersFromJSON converts the string-keyed answer map of an API submission
// into the positional map the scorer takes. Non-numeric keys are dropped.
func AnswersFromJSON(in map[string]string) map[int]string {
	answers := make(map[int]string, len(in))
	for key, val := range in {
		idx, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		answers[idx] = val
	}
	return answers
}
