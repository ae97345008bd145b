package assets

const (
	DefaultStyleName    = "tufte"
	DefaultTemplateName = "page"
)

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in style.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in page template.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// StyleNames lists the built-in styles, sorted.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
