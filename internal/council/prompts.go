package council

import (
	"fmt"
	"strings"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/ranking"
)

const writerSystemPrompt = `You are a senior corporate communications writer. You write press
releases that are accurate, newsworthy, and ready for distribution: a
strong headline, a dateline lead that answers who/what/when/where/why, two
or three body paragraphs, a supporting quote, and a boilerplate section.
Write in clean, professional prose. Output only the press release itself.`

func writerUserPrompt(input string) string {
	return fmt.Sprintf(`Write a complete press release based on the following request.

Request:
%s`, input)
}

// blendSeverity skews the run-level severity by the persona's base
// strictness, which is centered on the default level: a base-5 trade
// reporter reviews harder than a base-2 TV reporter at the same run
// severity. Saturates at the ends of the scale.
func blendSeverity(base, severity int) int {
	lvl := catalog.ClampSeverity(severity) + catalog.ClampSeverity(base) - catalog.DefaultSeverity
	if lvl < catalog.MinSeverity {
		return catalog.MinSeverity
	}
	if lvl > catalog.MaxSeverity {
		return catalog.MaxSeverity
	}
	return lvl
}

// severityInstruction maps the 1-5 strictness scale to reviewer guidance.
func severityInstruction(level int) string {
	switch catalog.ClampSeverity(level) {
	case 1:
		return "Be generous: highlight what works and keep criticism to the single most important issue."
	case 2:
		return "Lean positive: note weaknesses briefly but give drafts the benefit of the doubt."
	case 4:
		return "Be demanding: challenge weak claims, vague numbers, and buried news."
	case 5:
		return "Be exacting: scrutinize every claim, figure, and phrase as if your outlet's credibility depended on it."
	default:
		return "Apply your usual professional standard: praise what earns it, criticize what doesn't."
	}
}

func reviewerSystemPrompt(profile *catalog.Profile, severity int) string {
	return fmt.Sprintf(`You are a journalist reviewing competing press-release drafts.

Persona: %s (%s, e.g. %s)
Focus areas: %s
Tone of your outlet: %s
%s

%s

Review every draft against your focus areas. You must finish your review
with a section in exactly this format, ranking ALL drafts from best to
worst by their labels:

FINAL RANKING:
%sC, %sA, %sB (sample order: use your own judgment)`,
		profile.Name, profile.MediaType, profile.Outlet,
		strings.Join(profile.FocusAreas, ", "),
		profile.Tone,
		profile.Description,
		severityInstruction(blendSeverity(profile.SeverityBase, severity)),
		ranking.LabelPrefix, ranking.LabelPrefix, ranking.LabelPrefix)
}

// reviewerUserPrompt renders the drafts for an evaluator. Each draft
// appears under its anonymized label only; the originating backend's
// identity never reaches the evaluator.
func reviewerUserPrompt(drafts []Draft, labels *ranking.LabelMap) string {
	var b strings.Builder
	b.WriteString("Here are the candidate press-release drafts:\n")
	for i, d := range drafts {
		fmt.Fprintf(&b, "\n=== %s ===\n%s\n", labels.Labels()[i], d.Content)
	}
	b.WriteString("\nReview each draft from your persona's point of view, then give your FINAL RANKING.")
	return b.String()
}

const editorSystemPrompt = `You are the editor-in-chief of a corporate newsroom. Several writers
have drafted a press release for the same request, and a panel of
journalists has reviewed and ranked the drafts. Synthesize the single
best final press release: start from the strongest draft, fold in the
best elements of the others, and fix everything the reviewers flagged.
Output only the final press release.`

func editorUserPrompt(request string, drafts []Draft, evals []Evaluation, rows []ranking.Row, labels *ranking.LabelMap) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Original request:\n%s\n", request)

	b.WriteString("\n## Drafts\n")
	for i, d := range drafts {
		fmt.Fprintf(&b, "\n=== %s ===\n%s\n", labels.Labels()[i], d.Content)
	}

	if len(rows) > 0 {
		b.WriteString("\n## Aggregate ranking (lower mean is better)\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "- %s: mean position %.2f across %d rankings\n", row.Label, row.Mean, row.Count)
		}
	}

	if len(evals) > 0 {
		b.WriteString("\n## Reviews\n")
		for _, ev := range evals {
			fmt.Fprintf(&b, "\n--- %s ---\n%s\n", ev.ProfileName, ev.Verdict)
		}
	}

	b.WriteString("\nProduce the final press release now.")
	return b.String()
}

const titlePrompt = `Summarize the following press-release request as a short title of at
most five words. Output only the title, no quotes.

%s`
