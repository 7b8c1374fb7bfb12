package exam

import (
	"context"
	"log"
	"sort"
	"time"

	"aira-server/models"
)

// QuestionSource supplies questions for a topic in already-randomized
// order. Randomization is the source's responsibility (ORDER BY RANDOM()
// at the database level).
type QuestionSource interface {
	ListQuestions(ctx context.Context, topicID, limit int) ([]models.Question, error)
}

// AssessmentStore persists graded attempts. The table is append-only; the
// engine never updates or deletes rows.
type AssessmentStore interface {
	Insert(ctx context.Context, a models.Assessment) (models.Assessment, error)
	ListByUser(ctx context.Context, userID int) ([]models.Assessment, error)
}

// TopicCatalog resolves human-readable topic names.
type TopicCatalog interface {
	TopicName(ctx context.Context, topicID int) (string, error)
}

// SessionStore holds each session's current exam instance. One slot per
// session key; a new draw overwrites, grading clears.
type SessionStore interface {
	Get(key string) (models.ExamInstance, bool)
	Set(key string, inst models.ExamInstance)
	Clear(key string)
}

// Engine binds drawn exams to sessions, grades submissions, records
// assessments and derives weak areas. All storage is injected.
type Engine struct {
	questions   QuestionSource
	assessments AssessmentStore
	topics      TopicCatalog
	sessions    SessionStore

	drawSize      int
	weakThreshold float64
}

const (
	defaultDrawSize      = 10
	defaultWeakThreshold = 60.0
)

// NewEngine wires an Engine. Non-positive policy values fall back to the
// defaults (10-question draws, 60% mastery threshold).
func NewEngine(questions QuestionSource, assessments AssessmentStore, topics TopicCatalog, sessions SessionStore, drawSize int, weakThreshold float64) *Engine {
	if drawSize <= 0 {
		drawSize = defaultDrawSize
	}
	if weakThreshold <= 0 {
		weakThreshold = defaultWeakThreshold
	}
	return &Engine{
		questions:     questions,
		assessments:   assessments,
		topics:        topics,
		sessions:      sessions,
		drawSize:      drawSize,
		weakThreshold: weakThreshold,
	}
}

// DrawExam draws min(drawSize, available) questions for the topic and
// binds them to the session as the authoritative exam instance, replacing
// any prior uncompleted draw. Submissions are graded against this bound
// set only, never against client-supplied question identities.
func (e *Engine) DrawExam(ctx context.Context, sessionKey string, topicID int) (models.ExamInstance, error) {
	qs, err := e.questions.ListQuestions(ctx, topicID, e.drawSize)
	if err != nil {
		return models.ExamInstance{}, &StorageError{Op: "list questions", Err: err}
	}
	if len(qs) == 0 {
		return models.ExamInstance{}, ErrTopicNotFound
	}
	inst := models.ExamInstance{
		TopicID:   topicID,
		Questions: qs,
		DrawnAt:   time.Now(),
	}
	e.sessions.Set(sessionKey, inst)
	return inst, nil
}

// Record persists one immutable assessment row. The timestamp is assigned
// by the store.
func (e *Engine) Record(ctx context.Context, userID, topicID, score, total int) (models.Assessment, error) {
	a, err := e.assessments.Insert(ctx, models.Assessment{
		UserID:         userID,
		TopicID:        topicID,
		Score:          score,
		TotalQuestions: total,
	})
	if err != nil {
		return models.Assessment{}, &StorageError{Op: "insert assessment", Err: err}
	}
	return a, nil
}

// Submit grades the session's bound exam against the submitted answers,
// records the assessment and consumes the instance. On a failed write the
// instance is left bound so the user can retry instead of losing answers.
func (e *Engine) Submit(ctx context.Context, sessionKey string, userID int, answers map[int]string) (models.Assessment, error) {
	inst, ok := e.sessions.Get(sessionKey)
	if !ok {
		return models.Assessment{}, ErrNoActiveExam
	}
	score, total, err := Score(inst, answers)
	if err != nil {
		return models.Assessment{}, err
	}
	a, err := e.Record(ctx, userID, inst.TopicID, score, total)
	if err != nil {
		return models.Assessment{}, err
	}
	e.sessions.Clear(sessionKey)
	return a, nil
}

// Analyze aggregates the user's full assessment history per topic and
// returns the topics whose cumulative average falls strictly below the
// mastery threshold, weakest first. An empty history is a normal outcome.
func (e *Engine) Analyze(ctx context.Context, userID int) ([]models.WeakArea, error) {
	history, err := e.assessments.ListByUser(ctx, userID)
	if err != nil {
		return nil, &StorageError{Op: "list assessments", Err: err}
	}

	type tally struct {
		sumScore int
		sumTotal int
		attempts int
	}
	tallies := make(map[int]*tally)
	for _, a := range history {
		t := tallies[a.TopicID]
		if t == nil {
			t = &tally{}
			tallies[a.TopicID] = t
		}
		t.sumScore += a.Score
		t.sumTotal += a.TotalQuestions
		t.attempts++
	}

	weak := []models.WeakArea{}
	for topicID, t := range tallies {
		if t.sumTotal == 0 {
			continue
		}
		avg := 100 * float64(t.sumScore) / float64(t.sumTotal)
		if avg >= e.weakThreshold {
			continue
		}
		name, err := e.topics.TopicName(ctx, topicID)
		if err != nil {
			// The name is presentational; a failed lookup does not
			// invalidate the signal itself.
			log.Printf("Could not resolve name for topic %d: %v", topicID, err)
		}
		weak = append(weak, models.WeakArea{
			TopicID:             topicID,
			TopicName:           name,
			AverageScorePercent: avg,
			Attempts:            t.attempts,
		})
	}

	sort.Slice(weak, func(i, j int) bool {
		if weak[i].AverageScorePercent != weak[j].AverageScorePercent {
			return weak[i].AverageScorePercent < weak[j].AverageScorePercent
		}
		return weak[i].TopicID < weak[j].TopicID
	})
	return weak, nil
}
