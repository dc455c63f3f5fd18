package gdialog

import (
	"github.com/sqweek/dialog"
)

// ShowError blocks on a native error box.
func ShowError(title string, err error) {
	if err == nil {
		return
	}
	dialog.Message("%s", err.Error()).Title(title).Error()
}

// Confirm asks a yes/no question.
func Confirm(title, msg string) bool {
	return dialog.Message("%s", msg).Title(title).YesNo()
}
