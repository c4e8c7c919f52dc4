// Package static renders the non-interactive tables of instab: the instance
// list and the tab list of one instance.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/instab/internal/ui/styles"
)

// RenderTable renders rows under headers without borders.
//
// Column 0 is the marker column: the row marked with styles.CurrentMarker
// (the active instance or the current tab) is drawn bold with an accented
// marker. The last column holds URLs and is muted.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	last := len(headers) - 1
	cell := lipgloss.NewStyle().PaddingRight(2)

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			marked := row < len(rows) && isMarked(rows[row])
			switch {
			case col == 0 && marked:
				return styles.AccentStyle.PaddingRight(2)
			case col == last && last > 0:
				return cell.Foreground(styles.Muted).Bold(marked)
			default:
				return cell.Bold(marked)
			}
		})

	var out strings.Builder
	out.WriteString(t.String())
	out.WriteString("\n")
	return out.String()
}

func isMarked(row []string) bool {
	return len(row) > 0 && row[0] == styles.CurrentMarker
}
