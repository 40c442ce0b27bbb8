package services

import (
	"context"
	"errors"
	"testing"

	"github.com/quizrank/scoring-service/internal/models"
	"github.com/quizrank/scoring-service/internal/validator"
)

func TestAnswerService_Submit(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	group := repo.seedGroup("chat-1")
	problem := repo.seedProblem(50, "b")

	svc := NewAnswerService(repo, testLogger(), validator.New())

	username := "alice"
	req := &SubmitAnswerRequest{
		ProblemID:  problem.ID,
		Group:      models.GroupByID(group.ID),
		ChatUserID: "tg-100",
		Username:   &username,
		Option:     "B",
	}

	t.Run("creates participant and record on first contact", func(t *testing.T) {
		answer, err := svc.Submit(ctx, req)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if !answer.Right {
			t.Error("Expected option B to be derived as right")
		}
		if *answer.Option != "b" {
			t.Errorf("Expected normalized option b, got %q", *answer.Option)
		}
		if answer.Processed {
			t.Error("New answer must be unprocessed")
		}

		participant, err := repo.Participant().GetByChatUserID(ctx, "tg-100")
		if err != nil {
			t.Fatalf("Participant not created: %v", err)
		}
		if _, err := repo.Record().GetByParticipantGroup(ctx, participant.ID, group.ID); err != nil {
			t.Fatalf("Record not created: %v", err)
		}
	})

	t.Run("reuses existing participant and record", func(t *testing.T) {
		if _, err := svc.Submit(ctx, req); err != nil {
			t.Fatalf("Second submit failed: %v", err)
		}

		records, err := repo.Record().ListByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListByGroup failed: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("Expected 1 record, got %d", len(records))
		}
	})

	t.Run("wrong option is stored as not right", func(t *testing.T) {
		wrong := *req
		wrong.Option = "a"
		answer, err := svc.Submit(ctx, &wrong)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if answer.Right {
			t.Error("Expected option a to be derived as wrong")
		}
	})

	t.Run("unknown option is rejected", func(t *testing.T) {
		bad := *req
		bad.Option = "z"
		if _, err := svc.Submit(ctx, &bad); !errors.Is(err, ErrUnknownOption) {
			t.Fatalf("Expected ErrUnknownOption, got %v", err)
		}
	})

	t.Run("missing problem", func(t *testing.T) {
		bad := *req
		bad.ProblemID = 9999
		if _, err := svc.Submit(ctx, &bad); !errors.Is(err, ErrProblemNotFound) {
			t.Fatalf("Expected ErrProblemNotFound, got %v", err)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		bad := *req
		bad.ChatUserID = ""
		var validationErrs validator.ValidationErrors
		if _, err := svc.Submit(ctx, &bad); !errors.As(err, &validationErrs) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
	})
}

func TestAnswerService_Process_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	group := repo.seedGroup("chat-1")
	problem := repo.seedProblem(50, "a")
	participant := repo.seedParticipant("tg-1", "Alice", 0)
	record := repo.seedRecord(participant, group, 0)
	answer := repo.seedAnswer(problem, record, "a", true)

	svc := NewAnswerService(repo, testLogger(), validator.New())

	outcome, err := svc.Process(ctx, answer.ID)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if outcome.Status != ProcessAwarded {
		t.Fatalf("Expected awarded, got %s", outcome.Status)
	}
	if outcome.Points != 50 {
		t.Errorf("Expected 50 points, got %d", outcome.Points)
	}

	// A second settlement reports already_processed and changes nothing.
	outcome, err = svc.Process(ctx, answer.ID)
	if err != nil {
		t.Fatalf("Second process failed: %v", err)
	}
	if outcome.Status != ProcessAlreadyProcessed {
		t.Fatalf("Expected already_processed, got %s", outcome.Status)
	}

	got, _ := repo.Record().GetByID(ctx, record.ID)
	if got.Score != 50 {
		t.Errorf("Expected score 50 after repeat processing, got %d", got.Score)
	}
	p, _ := repo.Participant().GetByID(ctx, participant.ID)
	if p.TotalScore != 50 {
		t.Errorf("Expected lifetime 50 after repeat processing, got %d", p.TotalScore)
	}
}

func TestAnswerService_Process_WrongAnswer(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	group := repo.seedGroup("chat-1")
	problem := repo.seedProblem(50, "a")
	participant := repo.seedParticipant("tg-1", "Alice", 0)
	record := repo.seedRecord(participant, group, 0)
	answer := repo.seedAnswer(problem, record, "b", false)

	svc := NewAnswerService(repo, testLogger(), validator.New())

	outcome, err := svc.Process(ctx, answer.ID)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if outcome.Status != ProcessNoAward {
		t.Fatalf("Expected no_award, got %s", outcome.Status)
	}

	got, _ := repo.Record().GetByID(ctx, record.ID)
	if got.Score != 0 {
		t.Errorf("Wrong answer must not award points, score is %d", got.Score)
	}
}

func TestAnswerService_Process_NotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := NewAnswerService(repo, testLogger(), validator.New())

	if _, err := svc.Process(context.Background(), 42); !errors.Is(err, ErrAnswerNotFound) {
		t.Fatalf("Expected ErrAnswerNotFound, got %v", err)
	}
}
