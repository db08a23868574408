package frontend_domain

// CommonTemplateData holds fields shared by every page template.
// Templates reach it as .Common via the handler's TemplateData wrapper.
type CommonTemplateData struct {
	Error            string
	Success          string
	CSRFToken        string
	Authenticated    bool
	Section          string // active navigation entry
	EmailPlaceholder string // pre-filled login email (from a flash cookie)
	Validation       ValidationData
}

// ValidationData is the single source of form limits shown in templates.
type ValidationData struct {
	MaxImageSizeMB float64
	AcceptedImages string
	MinRate        int
	MaxRate        int
}
