package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection, ensures the schema exists, and
// returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS agents (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'online',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id SERIAL PRIMARY KEY,
			agent_id INTEGER NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
			message TEXT NOT NULL,
			sender TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS document_chunks (
			id SERIAL PRIMARY KEY,
			filename TEXT NOT NULL,
			content TEXT NOT NULL,
			page_number INTEGER,
			chunk_index INTEGER NOT NULL,
			embedding TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_document_chunks_filename ON document_chunks (filename)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_agent ON chat_messages (agent_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// --- Agents ---

// ListAgents returns all agents ordered by creation.
func (s *PostgresStore) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	query := `SELECT id, name, role, avatar, color, description, status, created_at
	          FROM agents ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var a domain.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Role, &a.Avatar, &a.Color, &a.Description, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// GetAgent retrieves an agent by ID.
func (s *PostgresStore) GetAgent(ctx context.Context, id int) (*domain.Agent, error) {
	query := `SELECT id, name, role, avatar, color, description, status, created_at
	          FROM agents WHERE id = $1`

	var a domain.Agent
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Role, &a.Avatar, &a.Color, &a.Description, &a.Status, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return &a, nil
}

// CreateAgent inserts a new agent record.
func (s *PostgresStore) CreateAgent(ctx context.Context, a *domain.Agent) (*domain.Agent, error) {
	if a.Status == "" {
		a.Status = "online"
	}
	query := `INSERT INTO agents (name, role, avatar, color, description, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, name, role, avatar, color, description, status, created_at`

	var created domain.Agent
	err := s.db.QueryRowContext(ctx, query,
		a.Name, a.Role, a.Avatar, a.Color, a.Description, a.Status,
	).Scan(
		&created.ID, &created.Name, &created.Role, &created.Avatar,
		&created.Color, &created.Description, &created.Status, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return &created, nil
}

// UpdateAgent applies a partial update; nil patch fields keep their value.
func (s *PostgresStore) UpdateAgent(ctx context.Context, id int, patch domain.AgentPatch) (*domain.Agent, error) {
	query := `UPDATE agents SET
	            name = COALESCE($2, name),
	            role = COALESCE($3, role),
	            avatar = COALESCE($4, avatar),
	            color = COALESCE($5, color),
	            description = COALESCE($6, description),
	            status = COALESCE($7, status)
	          WHERE id = $1
	          RETURNING id, name, role, avatar, color, description, status, created_at`

	var a domain.Agent
	err := s.db.QueryRowContext(ctx, query, id,
		patch.Name, patch.Role, patch.Avatar, patch.Color, patch.Description, patch.Status,
	).Scan(&a.ID, &a.Name, &a.Role, &a.Avatar, &a.Color, &a.Description, &a.Status, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}
	return &a, nil
}

// DeleteAgent removes an agent and its messages.
func (s *PostgresStore) DeleteAgent(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	if n == 0 {
		return port.ErrAgentNotFound
	}
	return nil
}

// --- Chat messages ---

// ListMessages returns all messages for an agent in chronological order.
func (s *PostgresStore) ListMessages(ctx context.Context, agentID int) ([]domain.ChatMessage, error) {
	query := `SELECT id, agent_id, message, sender, timestamp
	          FROM chat_messages WHERE agent_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.AgentID, &m.Message, &m.Sender, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CreateMessage inserts a chat message.
func (s *PostgresStore) CreateMessage(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	query := `INSERT INTO chat_messages (agent_id, message, sender)
	          VALUES ($1, $2, $3)
	          RETURNING id, agent_id, message, sender, timestamp`

	var created domain.ChatMessage
	err := s.db.QueryRowContext(ctx, query, m.AgentID, m.Message, m.Sender).Scan(
		&created.ID, &created.AgentID, &created.Message, &created.Sender, &created.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &created, nil
}
