package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finassess/assessment-engine/internal/config"
	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/finassess/assessment-engine/internal/output"
)

func TestSaveConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assessment.yaml")
	if err := output.SaveConfiguration(config.NewInputParser().CreateExampleConfiguration(), path); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	loaded, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		t.Fatalf("saved configuration does not load: %v", err)
	}
	if loaded.Name == "" {
		t.Fatalf("expected name to survive the round trip")
	}
}

func TestRenderAndGenerateReport(t *testing.T) {
	report := &domain.AssessmentReport{Name: "empty"}
	if _, err := output.Render(report, "json"); err != nil {
		t.Fatalf("Render json error: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	if err := output.GenerateReport(report, "csv"); err != nil {
		t.Fatalf("GenerateReport csv error: %v", err)
	}
	if err := output.GenerateReport(report, "all"); err != nil {
		t.Fatalf("GenerateReport all error: %v", err)
	}
	matches, _ := filepath.Glob("assessment_report_*")
	if len(matches) == 0 {
		t.Fatalf("expected report files to be written")
	}
}
