package queue

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func TestDecodeProposalSubmitted(t *testing.T) {
	want := ProposalSubmittedPayload{SubmissionID: uuid.New(), UserID: uuid.New()}
	body, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := DecodeProposalSubmitted(asynq.NewTask(TypeProposalSubmitted, body))
	if err != nil {
		t.Fatalf("DecodeProposalSubmitted error: %v", err)
	}
	if got != want {
		t.Fatalf("payload = %+v, want %+v", got, want)
	}
}

func TestDecodeProposalSubmitted_SkipsRetryOnBadPayload(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"not json", []byte("{")},
		{"missing id", []byte(`{"user_id":"` + uuid.NewString() + `"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProposalSubmitted(asynq.NewTask(TypeProposalSubmitted, tt.body))
			if !errors.Is(err, asynq.SkipRetry) {
				t.Fatalf("error = %v, want SkipRetry", err)
			}
		})
	}
}
