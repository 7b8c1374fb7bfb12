package ingestion

import (
	"testing"

	"aira-server/models"
)

func TestParseTopics(t *testing.T) {
	data := []byte(`
topics:
  - topic_id: 1
    topic_name: Algebra
    subject: Engineering Mathematics
    kind: choice
    bank: algebra_mcq.yaml
  - topic_id: 12
    topic_name: Algebra (Computational)
    subject: Engineering Mathematics
    kind: computational
    bank: algebra_computational.yaml
`)
	topics, err := ParseTopics(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(topics))
	}
	if topics[0].ID != 1 || topics[0].Name != "Algebra" || topics[0].Kind != "choice" {
		t.Errorf("First topic parsed wrong: %+v", topics[0])
	}
	if topics[1].Bank != "algebra_computational.yaml" {
		t.Errorf("Second topic bank parsed wrong: %+v", topics[1])
	}
}

func TestParseTopicsRejectsBadCatalogs(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"duplicate id", `
topics:
  - {topic_id: 1, topic_name: A, subject: S, kind: choice, bank: a.yaml}
  - {topic_id: 1, topic_name: B, subject: S, kind: choice, bank: b.yaml}
`},
		{"missing bank", `
topics:
  - {topic_id: 1, topic_name: A, subject: S, kind: choice}
`},
		{"unknown kind", `
topics:
  - {topic_id: 1, topic_name: A, subject: S, kind: essay, bank: a.yaml}
`},
		{"non-positive id", `
topics:
  - {topic_id: 0, topic_name: A, subject: S, kind: choice, bank: a.yaml}
`},
		{"not yaml", `{{{`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseTopics([]byte(tc.yaml)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestParseBank(t *testing.T) {
	data := []byte(`
questions:
  - question: "Solve for x: 2x = 8"
    options:
      A: "2"
      B: "4"
      C: "6"
      D: "8"
    correct_option: B
  - question: "Evaluate 7 * 6."
    answer: "42"
`)
	bank, err := ParseBank(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(bank) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(bank))
	}
	if bank[0].Options["B"] != "4" || bank[0].CorrectOption != "B" {
		t.Errorf("Choice question parsed wrong: %+v", bank[0])
	}
	if bank[1].Answer != "42" {
		t.Errorf("Computational question parsed wrong: %+v", bank[1])
	}
}

func TestValidateQuestion(t *testing.T) {
	fullOptions := map[string]string{"A": "1", "B": "2", "C": "3", "D": "4"}
	testCases := []struct {
		name  string
		q     BankQuestion
		kind  models.QuestionKind
		valid bool
	}{
		{"valid choice", BankQuestion{Question: "q", Options: fullOptions, CorrectOption: "A"}, models.KindChoice, true},
		{"missing option", BankQuestion{Question: "q", Options: map[string]string{"A": "1"}, CorrectOption: "A"}, models.KindChoice, false},
		{"correct option out of range", BankQuestion{Question: "q", Options: fullOptions, CorrectOption: "E"}, models.KindChoice, false},
		{"choice without correct option", BankQuestion{Question: "q", Options: fullOptions}, models.KindChoice, false},
		{"valid computational", BankQuestion{Question: "q", Answer: "42"}, models.KindComputational, true},
		{"computational without answer", BankQuestion{Question: "q"}, models.KindComputational, false},
		{"empty prompt", BankQuestion{Answer: "42"}, models.KindComputational, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuestion(tc.q, tc.kind)
			if tc.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
