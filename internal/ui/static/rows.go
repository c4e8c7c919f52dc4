package static

import (
	"strconv"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/instab/internal/instance"
	"github.com/raphi011/instab/internal/tab"
	"github.com/raphi011/instab/internal/ui/styles"
)

// InstanceHeaders are the column headers matching InstanceTableRow.
var InstanceHeaders = []string{"", "PREFIX", "COLOR", "TABS", "HOME"}

// TabHeaders are the column headers matching TabTableRow.
var TabHeaders = []string{"", "#", "TITLE", "URL"}

const maxTitleLen = 40

// InstanceTableRow builds one row for the instance list. The active
// instance is marked in the first column.
func InstanceTableRow(inst *instance.Instance, active bool) []string {
	return []string{
		marker(active),
		styles.Tag(inst.Prefix(), inst.Color()),
		styles.Swatch(inst.Color()),
		strconv.Itoa(inst.Len()),
		inst.HomeURL(),
	}
}

// TabTableRow builds one row for the tab list of an instance.
func TabTableRow(index int, t *tab.Tab, current bool) []string {
	return []string{
		marker(current),
		strconv.Itoa(index),
		ansi.Truncate(t.Title(), maxTitleLen, "..."),
		t.PersistURL(),
	}
}

// marker returns the plain marker cell; RenderTable styles it.
func marker(current bool) string {
	if current {
		return styles.CurrentMarker
	}
	return styles.OtherMarker
}
