// --- aira-server/db/stores.go ---
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aira-server/models"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// QuestionStore serves questions from the bank. Implements
// exam.QuestionSource.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

// ListQuestions returns up to limit questions for the topic, randomized at
// the database level so each draw is a fresh uniform sample without
// replacement.
func (s *QuestionStore) ListQuestions(ctx context.Context, topicID, limit int) ([]models.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, topic_id, question, kind,
		       COALESCE(option_a, ''), COALESCE(option_b, ''),
		       COALESCE(option_c, ''), COALESCE(option_d, ''),
		       COALESCE(correct_option, ''), COALESCE(answer, '')
		FROM questions
		WHERE topic_id = $1
		ORDER BY RANDOM()
		LIMIT $2
	`, topicID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions for topic %d: %w", topicID, err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(
			&q.ID, &q.TopicID, &q.Prompt, &q.Kind,
			&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectOption, &q.ExpectedAnswer,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// AssessmentStore persists graded attempts. Implements
// exam.AssessmentStore. The table is append-only.
type AssessmentStore struct {
	pool *pgxpool.Pool
}

func NewAssessmentStore(pool *pgxpool.Pool) *AssessmentStore {
	return &AssessmentStore{pool: pool}
}

// Insert writes one assessment row; the timestamp is server-assigned.
func (s *AssessmentStore) Insert(ctx context.Context, a models.Assessment) (models.Assessment, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO assessments (user_id, topic_id, score, total_questions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.UserID, a.TopicID, a.Score, a.TotalQuestions).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("failed to insert assessment: %w", err)
	}
	return a, nil
}

// ListByUser returns the user's full assessment history, newest first,
// with topic names resolved for presentation.
func (s *AssessmentStore) ListByUser(ctx context.Context, userID int) ([]models.Assessment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.topic_id, a.score, a.total_questions, a.created_at, t.topic_name
		FROM assessments a
		JOIN topics t ON a.topic_id = t.topic_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments for user %d: %w", userID, err)
	}
	defer rows.Close()

	var assessments []models.Assessment
	for rows.Next() {
		var a models.Assessment
		if err := rows.Scan(&a.ID, &a.UserID, &a.TopicID, &a.Score, &a.TotalQuestions, &a.CreatedAt, &a.TopicName); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// TopicStore serves the topic catalog. Implements exam.TopicCatalog.
type TopicStore struct {
	pool *pgxpool.Pool
}

func NewTopicStore(pool *pgxpool.Pool) *TopicStore {
	return &TopicStore{pool: pool}
}

// TopicName resolves the display name for a topic id.
func (s *TopicStore) TopicName(ctx context.Context, topicID int) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx, `SELECT topic_name FROM topics WHERE topic_id = $1`, topicID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query topic %d: %w", topicID, err)
	}
	return name, nil
}

// ListTopics returns the full catalog ordered by subject then name.
func (s *TopicStore) ListTopics(ctx context.Context) ([]models.Topic, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT topic_id, topic_name, subject, kind
		FROM topics
		ORDER BY subject, topic_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan topic row: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// UserStore manages student accounts.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Create inserts a new user and returns it with the assigned id.
func (s *UserStore) Create(ctx context.Context, u models.User) (models.User, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (firstname, surname, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.FirstName, u.Surname, u.Email, u.PasswordHash).Scan(&u.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// GetByEmail looks up a user for login.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, firstname, surname, email, password
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.FirstName, &u.Surname, &u.Email, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user by email: %w", err)
	}
	return u, nil
}
