package exam

import (
	"errors"
	"testing"
	"time"

	"aira-server/models"
)

func choiceQuestion(id int, correct string) models.Question {
	return models.Question{
		ID:            id,
		TopicID:       1,
		Prompt:        "pick one",
		Kind:          models.KindChoice,
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectOption: correct,
	}
}

func computationalQuestion(id int, answer string) models.Question {
	return models.Question{
		ID:             id,
		TopicID:        12,
		Prompt:         "compute",
		Kind:           models.KindComputational,
		ExpectedAnswer: answer,
	}
}

func instanceOf(qs ...models.Question) models.ExamInstance {
	topicID := 0
	if len(qs) > 0 {
		topicID = qs[0].TopicID
	}
	return models.ExamInstance{TopicID: topicID, Questions: qs, DrawnAt: time.Now()}
}

func TestScoreChoiceQuestions(t *testing.T) {
	inst := instanceOf(
		choiceQuestion(1, "A"),
		choiceQuestion(2, "B"),
		choiceQuestion(3, "C"),
	)

	testCases := []struct {
		name    string
		answers map[int]string
		want    int
	}{
		{"all correct", map[int]string{0: "A", 1: "B", 2: "C"}, 3},
		{"one wrong", map[int]string{0: "A", 1: "B", 2: "D"}, 2},
		{"missing answer is wrong", map[int]string{0: "A", 2: "C"}, 2},
		{"lowercase letter does not match", map[int]string{0: "a", 1: "B", 2: "C"}, 2},
		{"no answers at all", map[int]string{}, 0},
		{"unknown positions are ignored", map[int]string{0: "A", 7: "B", 99: "C"}, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score, total, err := Score(inst, tc.answers)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if total != 3 {
				t.Errorf("Expected total 3, got %d", total)
			}
			if score != tc.want {
				t.Errorf("Expected score %d, got %d", tc.want, score)
			}
		})
	}
}

func TestScoreComputationalNormalization(t *testing.T) {
	inst := instanceOf(computationalQuestion(1, "42"))

	testCases := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{"exact match", "42", true},
		{"surrounding whitespace trimmed", "  42  ", true},
		{"numeric equivalence is not accepted", "42.0", false},
		{"case sensitive", "fortytwo", false},
		{"empty answer", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score, total, err := Score(inst, map[int]string{0: tc.submitted})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if total != 1 {
				t.Errorf("Expected total 1, got %d", total)
			}
			want := 0
			if tc.correct {
				want = 1
			}
			if score != want {
				t.Errorf("Expected score %d for %q, got %d", want, tc.submitted, score)
			}
		})
	}
}

func TestScoreMixedKinds(t *testing.T) {
	inst := instanceOf(
		choiceQuestion(1, "D"),
		computationalQuestion(2, "3.14"),
		choiceQuestion(3, "A"),
	)
	score, total, err := Score(inst, map[int]string{0: "D", 1: " 3.14", 2: "B"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if total != 3 || score != 2 {
		t.Errorf("Expected 2/3, got %d/%d", score, total)
	}
}

func TestScoreEmptyInstance(t *testing.T) {
	_, _, err := Score(models.ExamInstance{}, map[int]string{0: "A"})
	if !errors.Is(err, ErrNoActiveExam) {
		t.Fatalf("Expected ErrNoActiveExam, got %v", err)
	}
}

func TestScoreDoesNotMutateInputs(t *testing.T) {
	inst := instanceOf(choiceQuestion(1, "A"))
	answers := map[int]string{0: "A"}
	if _, _, err := Score(inst, answers); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if inst.Questions[0].CorrectOption != "A" || answers[0] != "A" {
		t.Error("Score mutated its inputs")
	}
}
