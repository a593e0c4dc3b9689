package usecase

import (
	"context"
	"strings"

	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/ports"
)

// LocalizeResult translates the user-facing strings of a result into lang.
// Follow-up prompts stay in English. The input is never modified.
func LocalizeResult(ctx context.Context, tr ports.TranslatorPort, result domain.AdviceResult, lang domain.LanguageProfile) domain.AdviceResult {
	out := result.Clone()
	if tr == nil || !lang.NeedsTranslation() {
		return out
	}

	var (
		texts   []string
		setters []func(string)
	)
	enqueue := func(text string, set func(string)) {
		if strings.TrimSpace(text) == "" {
			return
		}
		texts = append(texts, text)
		setters = append(setters, set)
	}

	enqueue(out.Summary, func(v string) { out.Summary = v })
	for i := range out.Actions {
		enqueue(out.Actions[i].Label, func(v string) { out.Actions[i].Label = v })
	}
	for i := range out.Table.Columns {
		enqueue(out.Table.Columns[i], func(v string) { out.Table.Columns[i] = v })
	}
	for _, row := range out.Table.Rows {
		// category and note cells; date and amount are already locale-formatted
		for _, col := range []int{1, 2} {
			if col < len(row) {
				enqueue(row[col], func(v string) { row[col] = v })
			}
		}
	}
	for i := range out.Chart.Labels {
		enqueue(out.Chart.Labels[i], func(v string) { out.Chart.Labels[i] = v })
	}

	if len(texts) == 0 {
		return out
	}
	translated := tr.Translate(ctx, texts, lang.TranslatorCode)
	if len(translated) != len(texts) {
		return out
	}
	for i, v := range translated {
		setters[i](v)
	}
	out.Pie.Labels = append([]string{}, out.Chart.Labels...)
	return out
}
