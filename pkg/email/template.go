package email

import (
	"fmt"
	"strings"
	"time"
)

// SchedulingEmail carries the fields rendered into the notification template
type SchedulingEmail struct {
	To               string
	ContactName      string
	ScheduledDate    time.Time
	AdminName        string
	BotConnectionURL string
	ProcessType      string
	DurationMinutes  int
	CC               []string
}

var processTypeLabels = map[string]string{
	"agua_potable":      "Gestión de Agua Potable",
	"saneamiento":       "Saneamiento y Alcantarillado",
	"tratamiento":       "Tratamiento de Aguas Residuales",
	"mantenimiento":     "Mantenimiento de Infraestructura",
	"atencion_ciudadana": "Atención Ciudadana",
	"facturacion":       "Facturación y Cobranza",
	"operacion":         "Operación de Sistemas",
	"calidad_agua":      "Control de Calidad del Agua",
	"medicion":          "Medición y Macromedición",
	"fugas":             "Detección y Reparación de Fugas",
	"rrhh":              "Recursos Humanos",
	"administracion":    "Administración General",
	"compras":           "Adquisiciones y Compras",
	"almacen":           "Almacén e Inventarios",
	"finanzas":          "Finanzas y Contabilidad",
	"juridico":          "Área Jurídica",
	"planeacion":        "Planeación y Proyectos",
	"ventas":            "Ventas",
	"onboarding":        "Incorporación de Personal",
	"soporte":           "Atención al Cliente",
	"otro":              "Otras operaciones",
}

// ProcessTypeLabel returns the display label for a process type
func ProcessTypeLabel(processType string) string {
	if label, ok := processTypeLabels[processType]; ok {
		return label
	}
	return "Operaciones de la CEA"
}

// Subject builds the notification subject line
func Subject(processType string) string {
	return fmt.Sprintf("Entrevista CEA programada - %s", ProcessTypeLabel(processType))
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

func formatSpanishDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[int(t.Weekday())], t.Day(), spanishMonths[int(t.Month())-1], t.Year())
}

// RenderTemplate renders the scheduling notification HTML body
func RenderTemplate(data SchedulingEmail) string {
	duration := data.DurationMinutes
	if duration <= 0 {
		duration = 30
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; padding: 20px;">
    <h2>Entrevista CEA Programada</h2>
`)
	fmt.Fprintf(&b, "    <p>Hola <strong>%s</strong>,</p>\n", data.ContactName)
	fmt.Fprintf(&b, "    <p>La Comisión Estatal de Agua te ha programado una entrevista con nuestro asistente virtual para conocer más sobre tus operaciones en <strong>%s</strong>.</p>\n", ProcessTypeLabel(data.ProcessType))
	b.WriteString("    <p><strong>Detalles:</strong></p>\n    <ul>\n")
	fmt.Fprintf(&b, "        <li>Fecha: %s</li>\n", formatSpanishDate(data.ScheduledDate))
	fmt.Fprintf(&b, "        <li>Hora: %s</li>\n", data.ScheduledDate.Format("15:04"))
	fmt.Fprintf(&b, "        <li>Duración: %d minutos</li>\n", duration)
	fmt.Fprintf(&b, "        <li>Coordinador: %s</li>\n", data.AdminName)
	b.WriteString("    </ul>\n")
	b.WriteString("    <p><strong>Para conectarte a la hora programada, haz clic aquí:</strong></p>\n")
	fmt.Fprintf(&b, "    <p><a href=\"%s\" style=\"color: #2563eb; font-size: 18px;\">%s</a></p>\n", data.BotConnectionURL, data.BotConnectionURL)
	b.WriteString("    <p>El asistente te hará preguntas sobre tu trabajo diario, herramientas que utilizas, y desafíos que enfrentas. Tu feedback es muy valioso para mejorar las operaciones de la CEA.</p>\n")
	fmt.Fprintf(&b, "    <p>Si necesitas reprogramar, responde a este email o contacta a %s.</p>\n", data.AdminName)
	b.WriteString(`    <hr style="margin: 20px 0; border: none; border-top: 1px solid #ccc;">
    <p style="font-size: 12px; color: #666;">Comisión Estatal de Agua - Sistema de entrevistas</p>
</body>
</html>`)
	return b.String()
}
