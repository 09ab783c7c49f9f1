package call

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ceadash/cea-dashboard/internal/domain/entities"
)

// stepMarkers flag sentences that describe a step of the narrated process
var stepMarkers = []string{
	"primero", "segundo", "tercero", "luego", "después", "despues",
	"posteriormente", "finalmente", "al final", "a continuación", "a continuacion",
}

// frictionMarkers flag sentences that describe a pain point worth surfacing
// as an improvement suggestion
var frictionMarkers = []string{
	"problema", "demora", "lento", "tarda", "manual", "error",
	"falla", "retrabajo", "duplicado", "cuello de botella",
}

const (
	maxSteps        = 8
	maxImprovements = 5
	maxDescription  = 280
)

// BuildProcess derives a process record from a call transcription. The
// extraction is heuristic: sentences with sequence markers become diagram
// steps, sentences with friction markers become improvement suggestions, and
// the efficiency score falls with the number of pain points found.
func BuildProcess(callRecord *entities.ScheduledCall, transcription *entities.Transcription) *entities.Process {
	sentences := splitSentences(transcription.Content)

	steps := extractMatching(sentences, stepMarkers, maxSteps)
	improvements := extractMatching(sentences, frictionMarkers, maxImprovements)

	name := fmt.Sprintf("Proceso de entrevista - %s", callRecord.ScheduledDate.Format("02/01/2006"))
	description := summarize(transcription.Content)
	score := efficiencyScore(len(steps), len(improvements))

	process := &entities.Process{
		ID:              uuid.New(),
		OrganizationID:  callRecord.OrganizationID,
		Name:            name,
		Description:     &description,
		Status:          entities.ProcessStatusActive,
		EfficiencyScore: &score,
		TranscriptionID: &transcription.ID,
		CreatedBy:       callRecord.CreatedBy,
	}

	if diagram := buildDiagram(steps); diagram != nil {
		process.DiagramData = diagram
	}
	if len(improvements) > 0 {
		if b, err := json.Marshal(map[string]interface{}{"suggestions": improvements}); err == nil {
			process.ImprovementsData = datatypes.JSON(b)
		}
	}

	return process
}

// splitSentences breaks a transcript into trimmed sentences
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '?' || r == '!' || r == '\n'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// extractMatching returns up to limit sentences containing any of the markers
func extractMatching(sentences, markers []string, limit int) []string {
	matched := make([]string, 0, limit)
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				matched = append(matched, sentence)
				break
			}
		}
		if len(matched) >= limit {
			break
		}
	}
	return matched
}

// summarize returns the head of the transcript for the process description
func summarize(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxDescription {
		return text
	}
	return string(runes[:maxDescription]) + "…"
}

// efficiencyScore starts at 85 and loses 7 points per detected pain point,
// floored at 40. Rich step coverage earns a small bonus.
func efficiencyScore(steps, frictions int) int {
	score := 85 - 7*frictions
	if steps >= 4 {
		score += 5
	}
	if score < 40 {
		score = 40
	}
	if score > 95 {
		score = 95
	}
	return score
}

type diagramNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

type diagramEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// buildDiagram turns the extracted steps into a linear flow diagram
func buildDiagram(steps []string) datatypes.JSON {
	if len(steps) == 0 {
		return nil
	}

	nodes := make([]diagramNode, 0, len(steps))
	edges := make([]diagramEdge, 0, len(steps)-1)
	for i, step := range steps {
		id := fmt.Sprintf("step-%d", i+1)
		nodes = append(nodes, diagramNode{ID: id, Label: step, Order: i + 1})
		if i > 0 {
			edges = append(edges, diagramEdge{From: fmt.Sprintf("step-%d", i), To: id})
		}
	}

	b, err := json.Marshal(map[string]interface{}{"nodes": nodes, "edges": edges})
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
