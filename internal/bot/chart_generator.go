package bot

import (
	"fmt"
	"time"

	"github.com/go-analyze/charts"
	"gitlab.com/yelinaung/budget-bot/internal/repository"
)

// GenerateSpendingChart creates a pie chart of category totals for the
// given salary period. Returns PNG image bytes.
func GenerateSpendingChart(totals []repository.CategoryTotal, period string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	values := make([]float64, 0, len(totals))
	names := make([]string, 0, len(totals))
	for _, total := range totals {
		names = append(names, total.Category)
		values = append(values, float64(total.TotalCents)/100)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Spending by category - %s", period),
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// chartFilename creates a filename like "spending_2026-09-01.png".
func chartFilename(today time.Time) string {
	return fmt.Sprintf("spending_%s.png", today.Format("2006-01-02"))
}
