// Package queue wraps hibiken/asynq for background work that must not block
// an HTTP request.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"yildizli-agac-api/core/config"
	"yildizli-agac-api/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TypeProposalSubmitted = "proposal:submitted"

	defaultMaxRetry = 5
	defaultTimeout  = time.Minute
)

// ProposalSubmittedPayload is the body of a TypeProposalSubmitted task.
type ProposalSubmittedPayload struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	UserID       uuid.UUID `json:"user_id"`
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(redisOpt(cfg))}
}

// EnqueueProposalSubmitted schedules the publish/overlap task for one
// submission. The task id is derived from the submission, so enqueueing the
// same submission twice is not an error.
func (c *Client) EnqueueProposalSubmitted(ctx context.Context, p ProposalSubmittedPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeProposalSubmitted, body)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.TaskID(TypeProposalSubmitted+":"+p.SubmissionID.String()),
		asynq.MaxRetry(defaultMaxRetry),
		asynq.Timeout(defaultTimeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		logger.Info("Queue:EnqueueProposalSubmitted:AlreadyQueued", "submission_id", p.SubmissionID)
		return nil
	}
	if err != nil {
		logger.Error("Queue:EnqueueProposalSubmitted:Error", "submission_id", p.SubmissionID, "error", err)
		return fmt.Errorf("enqueue %s: %w", TypeProposalSubmitted, err)
	}

	logger.Info("Queue:EnqueueProposalSubmitted", "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// DecodeProposalSubmitted reads a task payload. Malformed payloads are
// wrapped with asynq.SkipRetry since retrying cannot fix them.
func DecodeProposalSubmitted(t *asynq.Task) (ProposalSubmittedPayload, error) {
	var p ProposalSubmittedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if p.SubmissionID == uuid.Nil {
		return p, fmt.Errorf("decode %s payload: missing submission_id: %w", t.Type(), asynq.SkipRetry)
	}
	return p, nil
}

// Server runs task handlers registered on its mux.
type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewServer(redis config.RedisConfig, cfg config.QueueConfig) *Server {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(redisOpt(redis), asynq.Config{
		Concurrency: concurrency,
		Logger:      asynqLogger{},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Task:Failed", "type", task.Type(), "error", err)
		}),
	})
	return &Server{srv: srv, mux: asynq.NewServeMux()}
}

func (s *Server) Handle(taskType string, fn func(context.Context, *asynq.Task) error) {
	s.mux.HandleFunc(taskType, fn)
}

// Start runs the workers in the background.
func (s *Server) Start() error {
	return s.srv.Start(s.mux)
}

func (s *Server) Shutdown() {
	s.srv.Shutdown()
}

// asynqLogger routes asynq's own logs through the service logger.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug(fmt.Sprint(args...), "component", "asynq") }
func (asynqLogger) Info(args ...any)  { logger.Info(fmt.Sprint(args...), "component", "asynq") }
func (asynqLogger) Warn(args ...any)  { logger.Warn(fmt.Sprint(args...), "component", "asynq") }
func (asynqLogger) Error(args ...any) { logger.Error(fmt.Sprint(args...), "component", "asynq") }
func (asynqLogger) Fatal(args ...any) {
	logger.Error(fmt.Sprint(args...), "component", "asynq", "fatal", true)
}
