package coach

import "testing"

func TestFallback_ThresholdAndOrder(t *testing.T) {
	pool := []ChampionData{
		{Name: "A", Games: 10, Wins: 7, WinRate: 70},
		{Name: "B", Games: 5, Wins: 1, WinRate: 20},
		{Name: "C", Games: 2, Wins: 2, WinRate: 100},
	}

	card := Fallback(pool)

	if len(card.Picks) != 2 {
		t.Fatalf("Picks len = %d, want 2", len(card.Picks))
	}
	if card.Picks[0].Champion != "A" || card.Picks[1].Champion != "B" {
		t.Errorf("Picks = %+v, want A then B", card.Picks)
	}
	if card.Picks[0].Confidence != 85 || card.Picks[1].Confidence != 78 {
		t.Errorf("confidences = %d, %d, want 85, 78", card.Picks[0].Confidence, card.Picks[1].Confidence)
	}
	if card.Picks[0].Reason != "70% win rate over 10 games" {
		t.Errorf("reason = %q", card.Picks[0].Reason)
	}
	if card.Avoid.Champion != "B" || card.Avoid.Reason != "Only 20% win rate" {
		t.Errorf("Avoid = %+v, want B", card.Avoid)
	}
	for _, p := range card.Picks {
		if p.Champion == "C" {
			t.Error("C has fewer than 3 games and must not be picked")
		}
	}
	if card.Ban.Champion == "C" || card.Ban.Champion != "Nautilus" {
		t.Errorf("Ban = %+v", card.Ban)
	}
	if card.Build.For != "A" || len(card.Build.Items) != 6 || card.Build.Boots != "Berserker's Greaves" {
		t.Errorf("Build = %+v", card.Build)
	}
}

func TestFallback_TopThreeOnly(t *testing.T) {
	pool := []ChampionData{
		{Name: "A", Games: 4, WinRate: 50},
		{Name: "B", Games: 4, WinRate: 75},
		{Name: "C", Games: 4, WinRate: 25},
		{Name: "D", Games: 4, WinRate: 100},
	}

	card := Fallback(pool)

	want := []string{"D", "B", "A"}
	for i, p := range card.Picks {
		if p.Champion != want[i] {
			t.Errorf("Picks[%d] = %s, want %s", i, p.Champion, want[i])
		}
	}
	if card.Picks[2].Confidence != 71 {
		t.Errorf("third confidence = %d, want 71", card.Picks[2].Confidence)
	}
	if card.Avoid.Champion != "C" {
		t.Errorf("Avoid = %s, want C", card.Avoid.Champion)
	}
}

func TestFallback_NoQualifyingChampions(t *testing.T) {
	card := Fallback([]ChampionData{{Name: "A", Games: 1, WinRate: 100}})

	if len(card.Picks) != 0 {
		t.Errorf("Picks = %+v, want none", card.Picks)
	}
	if card.Avoid.Champion != "None" || card.Avoid.Reason != "No data" {
		t.Errorf("Avoid = %+v, want None/No data", card.Avoid)
	}
	if card.Build.For != "Unknown" {
		t.Errorf("Build.For = %s, want Unknown", card.Build.For)
	}
}
