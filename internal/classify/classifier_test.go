package classify

import (
	"testing"

	"github.com/JinojiLock/Airlines/internal/model"
)

func TestClassify_Defunct(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantYear   string
		wantConf   model.Confidence
	}{
		{
			name:     "ceased with year",
			text:     "The airline ceased operations in 1998 after bankruptcy proceedings.",
			wantYear: "1998",
			wantConf: model.ConfidenceHigh,
		},
		{
			name:     "ceased with date words before year",
			text:     "It ceased operations on 5 May 2010.",
			wantYear: "2010",
			wantConf: model.ConfidenceHigh,
		},
		{
			name:     "defunct without year",
			text:     "The carrier is now defunct.",
			wantYear: "",
			wantConf: model.ConfidenceMedium,
		},
		{
			name:     "liquidated without year",
			text:     "The company was liquidated following a court order.",
			wantYear: "",
			wantConf: model.ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("Test Air", tt.text)
			if got.Status != model.StatusDefunct {
				t.Errorf("Status = %s, want %s", got.Status, model.StatusDefunct)
			}
			if got.CeasedYear != tt.wantYear {
				t.Errorf("CeasedYear = %q, want %q", got.CeasedYear, tt.wantYear)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %s, want %s", got.Confidence, tt.wantConf)
			}
			if got.SuccessorName != "" {
				t.Errorf("SuccessorName = %q, want empty", got.SuccessorName)
			}
		})
	}
}

func TestClassify_Operating(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantConf model.Confidence
	}{
		{
			name:     "currently operating",
			text:     "The airline is currently operating flights to 40 destinations.",
			wantConf: model.ConfidenceHigh,
		},
		{
			name:     "operating without currently",
			text:     "It operates flights between Oslo and Bergen.",
			wantConf: model.ConfidenceMedium,
		},
		{
			name:     "active airline",
			text:     "An active airline based in Reykjavik.",
			wantConf: model.ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("Test Air", tt.text)
			if got.Status != model.StatusOperating {
				t.Errorf("Status = %s, want %s", got.Status, model.StatusOperating)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %s, want %s", got.Confidence, tt.wantConf)
			}
			if got.CeasedYear != "" {
				t.Errorf("CeasedYear = %q, want empty", got.CeasedYear)
			}
		})
	}
}

func TestClassify_Renamed(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantSuccessor string
	}{
		{
			name:          "renamed to, period boundary",
			text:          "The airline was renamed to Delta Airlines.",
			wantSuccessor: "Delta Airlines",
		},
		{
			name:          "merged with, in boundary",
			text:          "The carrier merged with Delta in 2008",
			wantSuccessor: "Delta",
		},
		{
			name:          "acquired by, comma boundary",
			text:          "It was acquired by Lufthansa Group, a German holding.",
			wantSuccessor: "Lufthansa Group",
		},
		{
			name:          "rebranded as, end of text",
			text:          "In March the company rebranded as ITA Airways",
			wantSuccessor: "ITA Airways",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("Test Air", tt.text)
			if got.Status != model.StatusRenamed {
				t.Fatalf("Status = %s, want %s", got.Status, model.StatusRenamed)
			}
			if got.SuccessorName != tt.wantSuccessor {
				t.Errorf("SuccessorName = %q, want %q", got.SuccessorName, tt.wantSuccessor)
			}
			if got.Confidence != model.ConfidenceLow {
				t.Errorf("Confidence = %s, want %s", got.Confidence, model.ConfidenceLow)
			}
		})
	}
}

func TestClassify_RenamedWithoutSuccessorIsUnknown(t *testing.T) {
	// A renamed phrase with no capitalized name after it must not
	// produce a renamed status.
	got := Classify("Test Air", "The company became profitable in later years.")
	if got.Status != model.StatusUnknown {
		t.Errorf("Status = %s, want %s", got.Status, model.StatusUnknown)
	}
	if got.SuccessorName != "" {
		t.Errorf("SuccessorName = %q, want empty", got.SuccessorName)
	}
	if got.Confidence != model.ConfidenceLow {
		t.Errorf("Confidence = %s, want %s", got.Confidence, model.ConfidenceLow)
	}
}

func TestClassify_DefunctWinsOverOperatingAndRenamed(t *testing.T) {
	// All three sets match; defunct takes precedence.
	text := "The airline ceased operations in 2001 although it is currently operating flights under a subsidiary that was renamed to Norse Atlantic."
	got := Classify("Test Air", text)
	if got.Status != model.StatusDefunct {
		t.Errorf("Status = %s, want %s", got.Status, model.StatusDefunct)
	}
	if got.CeasedYear != "2001" {
		t.Errorf("CeasedYear = %q, want %q", got.CeasedYear, "2001")
	}
	if got.Confidence != model.ConfidenceHigh {
		t.Errorf("Confidence = %s, want %s", got.Confidence, model.ConfidenceHigh)
	}
}

func TestClassify_OperatingWinsOverRenamed(t *testing.T) {
	text := "The airline operates flights across Asia and was rebranded as AirAsia X for long-haul routes."
	got := Classify("Test Air", text)
	if got.Status != model.StatusOperating {
		t.Errorf("Status = %s, want %s", got.Status, model.StatusOperating)
	}
	if got.SuccessorName != "AirAsia X" {
		t.Errorf("SuccessorName = %q, want %q", got.SuccessorName, "AirAsia X")
	}
}

func TestClassify_DefunctKeepsSuccessorName(t *testing.T) {
	// A defunct airline absorbed by another carrier reports both the
	// ceased year and who took over.
	text := "The airline ceased operations in 2001 after it was acquired by Delta Air Lines."
	got := Classify("Test Air", text)
	if got.Status != model.StatusDefunct {
		t.Fatalf("Status = %s, want %s", got.Status, model.StatusDefunct)
	}
	if got.CeasedYear != "2001" {
		t.Errorf("CeasedYear = %q, want %q", got.CeasedYear, "2001")
	}
	if got.SuccessorName != "Delta Air Lines" {
		t.Errorf("SuccessorName = %q, want %q", got.SuccessorName, "Delta Air Lines")
	}
}

func TestClassify_EmptyText(t *testing.T) {
	got := Classify("Test Air", "")
	if got.Status != model.StatusUnknown {
		t.Errorf("Status = %s, want %s", got.Status, model.StatusUnknown)
	}
	if got.Confidence != model.ConfidenceLow {
		t.Errorf("Confidence = %s, want %s", got.Confidence, model.ConfidenceLow)
	}
	if got.SuccessorName != "" || got.CeasedYear != "" {
		t.Errorf("expected no extractions, got successor=%q year=%q", got.SuccessorName, got.CeasedYear)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "The airline ceased operations in 1998. It was acquired by Horizon Air, which still flies the routes."
	first := Classify("Test Air", text)
	for i := 0; i < 10; i++ {
		if got := Classify("Test Air", text); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}
