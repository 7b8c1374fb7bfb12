// --- aira-server/ingestion/ingestion.go ---
package ingestion

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"aira-server/models"
)

// TopicEntry describes one topic in topics.yaml and names its bank file.
type TopicEntry struct {
	ID      int    `yaml:"topic_id"`
	Name    string `yaml:"topic_name"`
	Subject string `yaml:"subject"`
	Kind    string `yaml:"kind"`
	Bank    string `yaml:"bank"`
}

type topicsFile struct {
	Topics []TopicEntry `yaml:"topics"`
}

// BankQuestion is one question row in a bank file.
type BankQuestion struct {
	Question      string            `yaml:"question"`
	Options       map[string]string `yaml:"options"`
	CorrectOption string            `yaml:"correct_option"`
	Answer        string            `yaml:"answer"`
}

type bankFile struct {
	Questions []BankQuestion `yaml:"questions"`
}

// ParseTopics decodes and validates a topics.yaml payload.
func ParseTopics(data []byte) ([]TopicEntry, error) {
	var f topicsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse topics file: %w", err)
	}
	seen := make(map[int]bool)
	for _, t := range f.Topics {
		if t.ID <= 0 {
			return nil, fmt.Errorf("topic %q has invalid topic_id %d", t.Name, t.ID)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate topic_id %d", t.ID)
		}
		seen[t.ID] = true
		if t.Name == "" || t.Subject == "" || t.Bank == "" {
			return nil, fmt.Errorf("topic %d is missing name, subject or bank", t.ID)
		}
		if k := models.QuestionKind(t.Kind); k != models.KindChoice && k != models.KindComputational {
			return nil, fmt.Errorf("topic %d has unknown kind %q", t.ID, t.Kind)
		}
	}
	return f.Topics, nil
}

// ParseBank decodes a bank file payload. Invalid questions are not an
// error here; ValidateQuestion is applied per row during loading so one
// bad row does not sink the whole bank.
func ParseBank(data []byte) ([]BankQuestion, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse bank file: %w", err)
	}
	return f.Questions, nil
}

// ValidateQuestion checks one bank row against its topic's kind.
func ValidateQuestion(q BankQuestion, kind models.QuestionKind) error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	switch kind {
	case models.KindChoice:
		for _, opt := range []string{"A", "B", "C", "D"} {
			if q.Options[opt] == "" {
				return fmt.Errorf("choice question is missing option %s", opt)
			}
		}
		switch q.CorrectOption {
		case "A", "B", "C", "D":
		default:
			return fmt.Errorf("correct_option %q is not one of A-D", q.CorrectOption)
		}
	case models.KindComputational:
		if q.Answer == "" {
			return fmt.Errorf("computational question has no answer")
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	return nil
}

// LoadBanks reads topics.yaml plus every referenced bank file from bankDir
// and upserts the catalog and questions. Existing questions are updated in
// place (matched on topic + text); rows that fail validation are logged
// and skipped.
func LoadBanks(pool *pgxpool.Pool, bankDir string) error {
	data, err := os.ReadFile(filepath.Join(bankDir, "topics.yaml"))
	if err != nil {
		return fmt.Errorf("failed to read topics file: %w", err)
	}
	topics, err := ParseTopics(data)
	if err != nil {
		return err
	}

	for _, t := range topics {
		if err := upsertTopic(pool, t); err != nil {
			return err
		}
		bankData, err := os.ReadFile(filepath.Join(bankDir, t.Bank))
		if err != nil {
			return fmt.Errorf("failed to read bank for topic %d: %w", t.ID, err)
		}
		bank, err := ParseBank(bankData)
		if err != nil {
			return fmt.Errorf("bank for topic %d: %w", t.ID, err)
		}

		loaded, skipped := 0, 0
		for _, q := range bank {
			if err := ValidateQuestion(q, models.QuestionKind(t.Kind)); err != nil {
				log.Printf("Skipping invalid question in %s: %v", t.Bank, err)
				skipped++
				continue
			}
			if err := upsertQuestion(pool, t, q); err != nil {
				return err
			}
			loaded++
		}
		log.Printf("Loaded bank for topic %d (%s): %d questions, %d skipped", t.ID, t.Name, loaded, skipped)
	}
	return nil
}

func upsertTopic(pool *pgxpool.Pool, t TopicEntry) error {
	_, err := pool.Exec(context.Background(), `
		INSERT INTO topics (topic_id, topic_name, subject, kind)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (topic_id) DO UPDATE SET
			topic_name = EXCLUDED.topic_name,
			subject = EXCLUDED.subject,
			kind = EXCLUDED.kind
	`, t.ID, t.Name, t.Subject, t.Kind)
	if err != nil {
		return fmt.Errorf("failed to upsert topic %d: %w", t.ID, err)
	}
	return nil
}

func upsertQuestion(pool *pgxpool.Pool, t TopicEntry, q BankQuestion) error {
	_, err := pool.Exec(context.Background(), `
		INSERT INTO questions (topic_id, question, kind, option_a, option_b, option_c, option_d, correct_option, answer)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
		ON CONFLICT (topic_id, question) DO UPDATE SET
			kind = EXCLUDED.kind,
			option_a = EXCLUDED.option_a,
			option_b = EXCLUDED.option_b,
			option_c = EXCLUDED.option_c,
			option_d = EXCLUDED.option_d,
			correct_option = EXCLUDED.correct_option,
			answer = EXCLUDED.answer
	`, t.ID, q.Question, t.Kind, q.Options["A"], q.Options["B"], q.Options["C"], q.Options["D"], q.CorrectOption, q.Answer)
	if err != nil {
		return fmt.Errorf("failed to upsert question for topic %d: %w", t.ID, err)
	}
	return nil
}
