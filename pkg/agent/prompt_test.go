package agent

import (
	"strings"
	"testing"
)

func TestApplyTemplate_FillsEmptyFields(t *testing.T) {
	setup := CallSetup{ProcessType: "ventas"}
	setup.ApplyTemplate()

	if len(setup.Objectives) == 0 {
		t.Fatalf("objectives not filled from template")
	}
	if len(setup.SpecificQuestions) == 0 {
		t.Fatalf("questions not filled from template")
	}
}

func TestApplyTemplate_KeepsProvidedFields(t *testing.T) {
	setup := CallSetup{
		ProcessType: "ventas",
		Objectives:  []string{"objetivo propio"},
	}
	setup.ApplyTemplate()

	if len(setup.Objectives) != 1 || setup.Objectives[0] != "objetivo propio" {
		t.Fatalf("caller objectives overwritten: %v", setup.Objectives)
	}
	if len(setup.SpecificQuestions) == 0 {
		t.Fatalf("questions should still come from the template")
	}
}

func TestApplyTemplate_UnknownProcessTypeIsNoOp(t *testing.T) {
	setup := CallSetup{ProcessType: "desconocido"}
	setup.ApplyTemplate()
	if len(setup.Objectives) != 0 || len(setup.SpecificQuestions) != 0 {
		t.Fatalf("unknown process type filled fields")
	}
}

func TestFirstMessage_MentionsContactAndProcess(t *testing.T) {
	msg := FirstMessage(CallSetup{ContactName: "María", ProcessType: "facturacion"})
	if !strings.Contains(msg, "María") {
		t.Fatalf("first message missing contact name: %s", msg)
	}
	if !strings.Contains(msg, "facturacion") {
		t.Fatalf("first message missing process type: %s", msg)
	}
}

func TestInterviewPrompt_ContainsSetup(t *testing.T) {
	setup := CallSetup{
		ContactName:       "Juan Pérez",
		ContactCompany:    "CEA Querétaro",
		ProcessType:       "facturacion",
		Industry:          "servicios públicos",
		Objectives:        []string{"Mapear el ciclo de facturación"},
		SpecificQuestions: []string{"¿Qué sistema de facturación usan?"},
		DurationMinutes:   45,
	}

	prompt := InterviewPrompt(setup)
	for _, want := range []string{
		"Juan Pérez",
		"CEA Querétaro",
		"facturacion",
		"servicios públicos",
		"45 minutos",
		"Mapear el ciclo de facturación",
		"¿Qué sistema de facturación usan?",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestInterviewPrompt_DefaultQuestions(t *testing.T) {
	prompt := InterviewPrompt(CallSetup{ContactName: "Ana", ProcessType: "otro"})
	if !strings.Contains(prompt, "¿Cuáles son los principales desafíos en este proceso?") {
		t.Fatalf("default questions missing when none provided")
	}
}
