package call

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

func buildTestCall() *entities.ScheduledCall {
	return entities.NewScheduledCall(uuid.New(), uuid.New(), uuid.New(),
		time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
}

func TestBuildProcess(t *testing.T) {
	transcript := "Primero el cliente presenta su solicitud en ventanilla. " +
		"Luego el área técnica revisa la factibilidad. " +
		"Después se emite el contrato. " +
		"Finalmente se programa la instalación. " +
		"El problema es la demora en la revisión técnica. " +
		"Hay un cuello de botella cuando falta personal."

	process := BuildProcess(buildTestCall(), &entities.Transcription{
		ID:      uuid.New(),
		Content: transcript,
	})

	if process.Name != "Proceso de entrevista - 15/03/2026" {
		t.Errorf("unexpected process name %q", process.Name)
	}
	if process.Status != entities.ProcessStatusActive {
		t.Errorf("expected active status, got %s", process.Status)
	}
	if process.TranscriptionID == nil {
		t.Error("expected transcription back-reference")
	}
	if process.Description == nil || *process.Description == "" {
		t.Error("expected a description")
	}

	var diagram struct {
		Nodes []map[string]interface{} `json:"nodes"`
		Edges []map[string]interface{} `json:"edges"`
	}
	if err := json.Unmarshal(process.DiagramData, &diagram); err != nil {
		t.Fatalf("diagram is not valid JSON: %v", err)
	}
	if len(diagram.Nodes) != 4 {
		t.Errorf("expected 4 step nodes, got %d", len(diagram.Nodes))
	}
	if len(diagram.Edges) != 3 {
		t.Errorf("expected 3 edges, got %d", len(diagram.Edges))
	}

	var improvements struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(process.ImprovementsData, &improvements); err != nil {
		t.Fatalf("improvements is not valid JSON: %v", err)
	}
	if len(improvements.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(improvements.Suggestions))
	}

	// 4 steps and 2 frictions: 85 - 14 + 5
	if process.EfficiencyScore == nil || *process.EfficiencyScore != 76 {
		t.Errorf("expected efficiency 76, got %v", process.EfficiencyScore)
	}
}

func TestBuildProcess_EmptyTranscript(t *testing.T) {
	process := BuildProcess(buildTestCall(), &entities.Transcription{ID: uuid.New()})

	if len(process.DiagramData) != 0 {
		t.Errorf("expected no diagram for an empty transcript, got %s", process.DiagramData)
	}
	if len(process.ImprovementsData) != 0 {
		t.Errorf("expected no improvements, got %s", process.ImprovementsData)
	}
	if process.EfficiencyScore == nil || *process.EfficiencyScore != 85 {
		t.Errorf("expected baseline efficiency 85, got %v", process.EfficiencyScore)
	}
}

func TestBuildProcess_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("El operador registra la lectura del medidor. ", 30)
	process := BuildProcess(buildTestCall(), &entities.Transcription{
		ID:      uuid.New(),
		Content: long,
	})
	if process.Description == nil {
		t.Fatal("expected a description")
	}
	if !strings.HasSuffix(*process.Description, "…") {
		t.Error("expected truncated description to end with an ellipsis")
	}
	if got := len([]rune(*process.Description)); got > maxDescription+1 {
		t.Errorf("description exceeds %d runes: %d", maxDescription+1, got)
	}
}

func TestEfficiencyScoreBounds(t *testing.T) {
	if got := efficiencyScore(0, 10); got != 40 {
		t.Errorf("expected floor 40, got %d", got)
	}
	if got := efficiencyScore(8, 0); got != 90 {
		t.Errorf("expected 90 for many steps and no friction, got %d", got)
	}
}
