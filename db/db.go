// --- aira-server/db/db.go ---
package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDB initializes the PostgreSQL database connection pool
func InitDB(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Ping the database to verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL database!")
	return pool, nil
}

// CreateSchema sets up the tables the portal needs.
// In a production environment, use a proper migration tool (e.g., golang-migrate).
func CreateSchema(pool *pgxpool.Pool) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		firstname VARCHAR(255) NOT NULL,
		surname VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS topics (
		topic_id INT PRIMARY KEY,
		topic_name VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		kind VARCHAR(50) NOT NULL CHECK (kind IN ('choice', 'computational'))
	);

	CREATE TABLE IF NOT EXISTS questions (
		id SERIAL PRIMARY KEY,
		topic_id INT NOT NULL,
		question TEXT NOT NULL,
		kind VARCHAR(50) NOT NULL CHECK (kind IN ('choice', 'computational')),
		option_a TEXT,
		option_b TEXT,
		option_c TEXT,
		option_d TEXT,
		correct_option VARCHAR(1) CHECK (correct_option IN ('A', 'B', 'C', 'D')),
		answer TEXT,
		FOREIGN KEY (topic_id) REFERENCES topics(topic_id) ON DELETE CASCADE,
		UNIQUE (topic_id, question)
	);

	CREATE TABLE IF NOT EXISTS assessments (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		topic_id INT NOT NULL,
		score INT NOT NULL CHECK (score >= 0),
		total_questions INT NOT NULL CHECK (total_questions > 0),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (topic_id) REFERENCES topics(topic_id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_assessments_user ON assessments(user_id);
	`
	_, err := pool.Exec(context.Background(), schemaSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}
	return nil
}
