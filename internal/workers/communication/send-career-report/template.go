// internal/workers/communication/send-career-report/template.go
package sendcareerreport

import (
	"fmt"
	"html"
	"strings"
)

const emailSubject = "Your career fit report"

func greeting(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Hello,"
	}
	return fmt.Sprintf("Hello %s,", strings.TrimSpace(name))
}

func renderEmailText(input *Input, maxCareers int) string {
	var sb strings.Builder
	sb.WriteString(greeting(input.Name))
	sb.WriteString("\n\nBased on your activities, assessments and practice sessions, these careers fit you best:\n\n")
	for i, p := range topPredictions(input.Predictions, maxCareers) {
		fmt.Fprintf(&sb, "%d. %s - %d%% match", i+1, p.Career, p.MatchScore)
		if p.Growth != "" {
			fmt.Fprintf(&sb, " (%s growth)", p.Growth)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nLog in to see skill gaps, recommendations and learning resources for each career.\n")
	return sb.String()
}

func renderEmailHTML(input *Input, maxCareers int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(greeting(input.Name)))
	sb.WriteString("<p>Based on your activities, assessments and practice sessions, these careers fit you best:</p><ol>")
	for _, p := range topPredictions(input.Predictions, maxCareers) {
		fmt.Fprintf(&sb, "<li><strong>%s</strong> - %d%% match</li>", html.EscapeString(p.Career), p.MatchScore)
	}
	sb.WriteString("</ol><p>Log in to see skill gaps, recommendations and learning resources for each career.</p>")
	return sb.String()
}

func renderSMS(input *Input) string {
	top := input.Predictions[0]
	return fmt.Sprintf("Your top career match is %s (%d%%). Check your email for the full report.", top.Career, top.MatchScore)
}

func topPredictions(predictions []ReportPrediction, n int) []ReportPrediction {
	if len(predictions) > n {
		return predictions[:n]
	}
	return predictions
}
