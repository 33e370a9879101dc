package router

import (
	"fmt"
	"strings"

	"github.com/fieldlens/concierge/domain"
)

// Synthesizer renders capability payloads into the user-facing answer
// text. Formatting is deterministic per payload type so answers never
// leak raw record dumps.
type Synthesizer struct{}

func NewSynthesizer() *Synthesizer { return &Synthesizer{} }

// Synthesize builds the answer body from completed calls. Failed calls
// contribute an apology line instead of data; when every call failed the
// caller should treat the whole query as a capability failure.
func (s *Synthesizer) Synthesize(q domain.Query, calls []domain.CapabilityCall) string {
	var sections []string
	var consulted []string

	for _, call := range calls {
		if call.Err != nil {
			sections = append(sections,
				fmt.Sprintf("I wasn't able to complete the %s lookup this time.", shortName(call.Capability)))
			continue
		}
		if call.Payload == nil {
			continue
		}
		consulted = append(consulted, shortName(call.Capability))
		sections = append(sections, renderPayload(call.Payload))
	}

	if len(sections) == 0 {
		return "I couldn't find anything for that request."
	}

	body := strings.Join(sections, "\n\n")
	if len(consulted) > 0 {
		body += "\n\nData sources consulted: " + strings.Join(consulted, ", ") + "."
	}
	return body
}

func shortName(capability string) string {
	name, _, _ := strings.Cut(capability, ".")
	return name
}

func renderPayload(p domain.Payload) string {
	switch v := p.(type) {
	case domain.OrderSummary:
		return renderOrders(v)
	case domain.EngagementInfo:
		return renderEngagement(v)
	case domain.ComplianceStatus:
		return renderCompliance(v)
	case domain.AnalyticsReport:
		return renderAnalytics(v)
	case domain.KnowledgeAnswer:
		return renderKnowledge(v)
	default:
		return fmt.Sprintf("Result available from the %s lookup.", p.Kind())
	}
}

func renderOrders(sum domain.OrderSummary) string {
	if sum.TotalOrders == 0 {
		who := "that doctor"
		if sum.Doctor != "" {
			who = sum.Doctor
		}
		return fmt.Sprintf("I found no orders for %s.", who)
	}

	var b strings.Builder
	subject := "across all doctors"
	if sum.Doctor != "" {
		subject = "for " + properDoctor(sum.Doctor)
	}
	fmt.Fprintf(&b, "There are %d orders %s totaling $%.2f.", sum.TotalOrders, subject, sum.TotalValue)

	if len(sum.StatusCounts) > 0 {
		var parts []string
		for _, status := range []string{"Completed", "Processing", "On Hold", "Cancelled"} {
			if n := sum.StatusCounts[status]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(status)))
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, " Status breakdown: %s.", strings.Join(parts, ", "))
		}
	}

	for _, ord := range sum.RecentOrders {
		fmt.Fprintf(&b, "\n- %s: %s (%s, $%.2f on %s)",
			ord.OrderID, ord.Product, ord.Status, ord.Amount, ord.Date)
	}
	return b.String()
}

func renderEngagement(info domain.EngagementInfo) string {
	if info.NoData {
		return fmt.Sprintf("I have no engagement records for %s.", properDoctor(info.Doctor))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The most recent engagement with %s was a %s on %s. Outcome: %s.",
		info.Doctor, strings.ToLower(info.Type), info.LastDate, info.Outcome)

	if len(info.TalkingPoints) > 0 {
		b.WriteString("\nTalking points covered:")
		for _, tp := range info.TalkingPoints {
			fmt.Fprintf(&b, "\n- %s", tp)
		}
	}
	if len(info.ContactsMade) > 0 {
		b.WriteString("\nBusiness contacts made:")
		for _, c := range info.ContactsMade {
			fmt.Fprintf(&b, "\n- %s (%s, %s): %s",
				c.Contact, strings.ReplaceAll(c.ContactType, "_", " "), c.Date, c.Purpose)
		}
	}
	return b.String()
}

func renderCompliance(status domain.ComplianceStatus) string {
	if status.NoData {
		return fmt.Sprintf("I have no compliance records for %s.", properDoctor(status.Doctor))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s has spent $%.2f of the $%.2f annual limit (%.1f%% used, $%.2f remaining). Risk level: %s.",
		status.Doctor, status.CurrentSpent, status.AnnualLimit,
		status.PercentageUsed, status.Remaining, status.Risk)
	for _, rec := range status.Recommendations {
		fmt.Fprintf(&b, "\n- %s", rec)
	}
	if status.LastUpdated != "" {
		fmt.Fprintf(&b, "\nLast updated %s.", status.LastUpdated)
	}
	return b.String()
}

func renderAnalytics(report domain.AnalyticsReport) string {
	var b strings.Builder
	switch report.Mode {
	case domain.AnalyticsRegional:
		b.WriteString("Regional performance this month:")
		for _, r := range report.Regions {
			fmt.Fprintf(&b, "\n- %s: %d orders, $%.0f revenue, %.1f%% growth (%d key accounts)",
				r.Region, r.TotalOrders, r.Revenue, r.GrowthPct, r.KeyAccounts)
		}
	case domain.AnalyticsInsights:
		b.WriteString("Key insights:")
		for _, line := range report.Insights {
			fmt.Fprintf(&b, "\n- %s", line)
		}
	default:
		b.WriteString("Product trends this month:")
		for _, t := range report.Trends {
			fmt.Fprintf(&b, "\n- %s: %d orders, %.1f%% completion, %.1f%% growth, %.1f day avg turnaround",
				t.Product, t.Orders, t.CompletionRate, t.GrowthPct, t.AvgTurnaround)
		}
	}
	return b.String()
}

func renderKnowledge(ans domain.KnowledgeAnswer) string {
	text := strings.TrimSpace(ans.Text)
	if text == "" {
		return "The knowledge base returned no answer for that question."
	}
	if ans.Fallback {
		return text + "\n(Knowledge base temporarily unavailable; this answer may be incomplete.)"
	}
	return text
}

// properDoctor prefixes bare surnames so answers read naturally.
func properDoctor(name string) string {
	if name == "" {
		return "that doctor"
	}
	if strings.HasPrefix(strings.ToLower(name), "dr") {
		return name
	}
	return "Dr. " + name
}
