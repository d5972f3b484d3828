package config

// Labels are the user-facing default strings for one locale.
type Labels struct {
	NewGroup    string
	NewTask     string
	CreateTask  string
	CreateGroup string
	Delete      string
}

var labelsByLocale = map[string]Labels{
	"en": {
		NewGroup:    "New group",
		NewTask:     "New task",
		CreateTask:  "+ Create task",
		CreateGroup: "+ New group",
		Delete:      "✕",
	},
	"ru": {
		NewGroup:    "Новая группа",
		NewTask:     "Новая задача",
		CreateTask:  "+ Создать задачу",
		CreateGroup: "+ Новая группа",
		Delete:      "✕",
	},
}

// LabelsFor returns the labels for locale, defaulting to English.
func LabelsFor(locale string) Labels {
	if l, ok := labelsByLocale[locale]; ok {
		return l
	}
	return labelsByLocale["en"]
}
