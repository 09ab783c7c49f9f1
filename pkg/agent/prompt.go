package agent

import (
	"fmt"
	"strings"
)

// CallSetup carries the interview parameters used to build an agent configuration
type CallSetup struct {
	ContactName       string
	ContactEmail      string
	ContactCompany    string
	ProcessType       string
	Industry          string
	Objectives        []string
	SpecificQuestions []string
	DurationMinutes   int
	Language          string
}

// ProcessTemplate provides default objectives and questions for a process type
type ProcessTemplate struct {
	Objectives        []string
	SpecificQuestions []string
}

// ProcessTemplates are predefined interview templates for common business processes
var ProcessTemplates = map[string]ProcessTemplate{
	"onboarding": {
		Objectives: []string{
			"Mapear el proceso de incorporación de nuevos empleados",
			"Identificar documentos y sistemas necesarios",
			"Optimizar tiempos de integración",
		},
		SpecificQuestions: []string{
			"¿Cuáles son los primeros pasos cuando llega un nuevo empleado?",
			"¿Qué documentos deben completar?",
			"¿Cuánto tiempo toma el proceso completo?",
			"¿Qué sistemas necesitan acceso?",
		},
	},
	"ventas": {
		Objectives: []string{
			"Documentar el proceso de ventas desde lead hasta cierre",
			"Identificar puntos de fricción en el embudo",
			"Optimizar conversión y tiempo de ciclo",
		},
		SpecificQuestions: []string{
			"¿Cómo califican los leads?",
			"¿Cuáles son las etapas del proceso de ventas?",
			"¿Qué herramientas utilizan para seguimiento?",
			"¿Cuál es el tiempo promedio de cierre?",
		},
	},
	"soporte": {
		Objectives: []string{
			"Mapear el proceso de atención al cliente",
			"Identificar tipos de tickets y escalaciones",
			"Mejorar tiempos de respuesta",
		},
		SpecificQuestions: []string{
			"¿Cómo reciben las solicitudes de soporte?",
			"¿Cuáles son los niveles de escalación?",
			"¿Qué métricas de SLA manejan?",
			"¿Cómo priorizan los tickets?",
		},
	},
}

// ApplyTemplate fills empty objectives/questions from the process-type template
func (s *CallSetup) ApplyTemplate() {
	tmpl, ok := ProcessTemplates[s.ProcessType]
	if !ok {
		return
	}
	if len(s.Objectives) == 0 {
		s.Objectives = tmpl.Objectives
	}
	if len(s.SpecificQuestions) == 0 {
		s.SpecificQuestions = tmpl.SpecificQuestions
	}
}

// FirstMessage builds the agent's opening line for the interview
func FirstMessage(setup CallSetup) string {
	return fmt.Sprintf("¡Hola %s! Soy el asistente de CEA especializado en mapeo de procesos. Estoy aquí para ayudarte a documentar y optimizar tu proceso de %s. ¿Estás listo para comenzar?",
		setup.ContactName, setup.ProcessType)
}

// InterviewPrompt builds the full system prompt for the interview agent,
// parameterized by contact, process type, industry, objectives and duration
func InterviewPrompt(setup CallSetup) string {
	var b strings.Builder

	b.WriteString("Eres un asistente especializado de CEA (Centro de Excelencia en Automatización) diseñado para mapear y optimizar procesos empresariales.\n")

	b.WriteString("\nCONTEXTO DE LA LLAMADA:\n")
	fmt.Fprintf(&b, "- Contacto: %s de %s\n", setup.ContactName, setup.ContactCompany)
	fmt.Fprintf(&b, "- Tipo de proceso: %s\n", setup.ProcessType)
	fmt.Fprintf(&b, "- Industria: %s\n", setup.Industry)
	fmt.Fprintf(&b, "- Duración estimada: %d minutos\n", setup.DurationMinutes)

	b.WriteString("\nOBJETIVOS PRINCIPALES:\n")
	for _, obj := range setup.Objectives {
		fmt.Fprintf(&b, "- %s\n", obj)
	}

	b.WriteString("\nINSTRUCCIONES ESPECÍFICAS:\n")
	b.WriteString("1. Saluda cordialmente al contacto por su nombre\n")
	b.WriteString("2. Explica brevemente el propósito de la llamada\n")
	fmt.Fprintf(&b, "3. Guía la conversación para mapear el proceso \"%s\"\n", setup.ProcessType)
	b.WriteString("4. Haz preguntas específicas sobre:\n")
	b.WriteString("   - Pasos actuales del proceso\n")
	b.WriteString("   - Personas involucradas y roles\n")
	b.WriteString("   - Herramientas y sistemas utilizados\n")
	b.WriteString("   - Puntos de dolor e ineficiencias\n")
	b.WriteString("   - Tiempo promedio del proceso\n")
	b.WriteString("   - Frecuencia de ejecución\n")
	b.WriteString("5. Mantén un tono profesional pero amigable\n")
	b.WriteString("6. Toma notas detalladas de cada paso mencionado\n")
	b.WriteString("7. Al final, resume los puntos clave identificados\n")
	b.WriteString("8. Pregunta si hay algo más que agregar\n")

	b.WriteString("\nPREGUNTAS ESPECÍFICAS A INCLUIR:\n")
	if len(setup.SpecificQuestions) > 0 {
		for _, q := range setup.SpecificQuestions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	} else {
		b.WriteString("- ¿Cuáles son los principales desafíos en este proceso?\n")
		b.WriteString("- ¿Qué herramientas utilizan actualmente?\n")
		b.WriteString("- ¿Cuánto tiempo toma completar este proceso?\n")
	}

	b.WriteString("\nIMPORTANTE:\n")
	b.WriteString("- Mantén la conversación enfocada en el mapeo del proceso\n")
	b.WriteString("- Si el contacto se desvía del tema, redirige amablemente\n")
	b.WriteString("- Asegúrate de capturar todos los detalles técnicos mencionados\n")
	b.WriteString("- Al finalizar, confirma que tienes toda la información necesaria\n")

	return b.String()
}
