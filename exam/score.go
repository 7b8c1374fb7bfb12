package exam

import (
	"aira-server/models"
	"aira-server/utils"
)

// Score grades a submission against the bound exam instance. Answers are
// looked up by question position; a missing answer counts as incorrect.
// Pure function: no I/O, no mutation of its inputs.
func Score(inst models.ExamInstance, answers map[int]string) (score, total int, err error) {
	if len(inst.Questions) == 0 {
		return 0, 0, ErrNoActiveExam
	}
	for i, q := range inst.Questions {
		submitted, ok := answers[i]
		if !ok {
			continue
		}
		if answerCorrect(q, submitted) {
			score++
		}
	}
	return score, len(inst.Questions), nil
}

func answerCorrect(q models.Question, submitted string) bool {
	switch q.Kind {
	case models.KindChoice:
		// Case-sensitive single-letter match against A-D.
		return submitted == q.CorrectOption
	case models.KindComputational:
		return utils.NormalizeAnswer(submitted) == utils.NormalizeAnswer(q.ExpectedAnswer)
	default:
		return false
	}
}
