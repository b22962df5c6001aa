package injury

import (
	"context"
	"testing"

	"github.com/gridiron-projections/engine/internal/nflverse"
)

type fakeNflverseClient struct {
	injuries []nflverse.Injury
}

func (f fakeNflverseClient) FetchInjuries(ctx context.Context, season, week int) ([]nflverse.Injury, error) {
	return f.injuries, nil
}

func TestNflverseSource_ConvertsStatusAndLookup(t *testing.T) {
	client := fakeNflverseClient{injuries: []nflverse.Injury{
		{Season: 2024, Week: 5, TeamAbbr: "KC", Position: "QB", PlayerName: "Pat Mahomes", ReportStatus: "Out", DateModified: "2024-10-01"},
	}}
	src := NewNflverseSource(client, 2024, 5)

	records, err := src.CurrentInjuries(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Status != "Out" {
		t.Fatalf("expected one Out record, got %+v", records)
	}

	out, err := src.IsPlayerOut(context.Background(), "pat mahomes")
	if err != nil {
		t.Fatal(err)
	}
	if !out {
		t.Fatal("expected IsPlayerOut to report true for Out status, case-insensitive")
	}
}
