package services

import (
	"context"
	"testing"

	"github.com/quizrank/scoring-service/internal/models"
)

func TestExportService_ExportStandings(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedLadder(repo)
	group := repo.seedGroup("chat-1")

	pa := repo.seedParticipant("tg-a", "Ann", 0)
	pb := repo.seedParticipant("tg-b", "Ben", 0)
	ra := repo.seedRecord(pa, group, 500)
	repo.seedRecord(pb, group, 100)

	expert, _ := repo.Role().GetByTag(ctx, "expert")
	_ = repo.Binding().Create(ctx, &models.RoleBinding{RecordID: ra.ID, RoleID: expert.ID})

	svc := NewExportService(repo, testLogger())

	file, err := svc.ExportStandings(ctx, models.GroupByID(group.ID))
	if err != nil {
		t.Fatalf("ExportStandings failed: %v", err)
	}
	defer file.Close()

	cell := func(ref string) string {
		value, err := file.GetCellValue("Standings", ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", ref, err)
		}
		return value
	}

	if cell("A1") != "Position" || cell("D1") != "Role" {
		t.Errorf("Unexpected header row: %s, %s", cell("A1"), cell("D1"))
	}

	// Rows come out in score order; roles fall back to the guest name.
	if cell("A2") != "1" || cell("B2") != "Ann" || cell("C2") != "500" || cell("D2") != "Expert" {
		t.Errorf("Unexpected first row: %s %s %s %s", cell("A2"), cell("B2"), cell("C2"), cell("D2"))
	}
	if cell("A3") != "2" || cell("B3") != "Ben" || cell("D3") != "Guest" {
		t.Errorf("Unexpected second row: %s %s %s", cell("A3"), cell("B3"), cell("D3"))
	}
}
