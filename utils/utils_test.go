package utils

import (
	"net/url"
	"testing"
)

func TestNormalizeAnswer(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"42", "42"},
		{"  42  ", "42"},
		{"\t4 2\n", "4 2"}, // inner whitespace is significant
		{"", ""},
	}
	for _, tc := range testCases {
		if got := NormalizeAnswer(tc.in); got != tc.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormAnswers(t *testing.T) {
	values := url.Values{
		"q0":       {"A"},
		"q1":       {"C"},
		"q2Answer": {" 42 "},
		"topicId":  {"1"},  // non-answer fields are ignored
		"qxAnswer": {"no"}, // non-numeric positions are ignored
	}
	answers := FormAnswers(values)
	if len(answers) != 3 {
		t.Fatalf("Expected 3 answers, got %d: %v", len(answers), answers)
	}
	if answers[0] != "A" || answers[1] != "C" || answers[2] != " 42 " {
		t.Errorf("Parsed answers wrong: %v", answers)
	}
}

func TestAnswersFromJSON(t *testing.T) {
	answers := AnswersFromJSON(map[string]string{"0": "A", "7": "B", "x": "C"})
	if len(answers) != 2 {
		t.Fatalf("Expected 2 answers, got %d: %v", len(answers), answers)
	}
	if answers[0] != "A" || answers[7] != "B" {
		t.Errorf("Parsed answers wrong: %v", answers)
	}
}
