package display

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/sentinel/internal/model"
)

// appLabelOverrides holds dock labels that title casing gets wrong.
var appLabelOverrides = map[model.AppContext]string{
	model.ContextQR: "QR Scanner",
}

// AppLabel returns the dock label of an app context, e.g. "Messages".
func AppLabel(ctx model.AppContext) string {
	if label, ok := appLabelOverrides[ctx]; ok {
		return label
	}
	return cases.Title(language.English).String(string(ctx))
}
