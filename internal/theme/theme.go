package theme

type Theme interface {
	// Session is the SGR applied for the whole session.
	Session() string
	// Style resolves a named segment style.
	Style(name string) (string, bool)
}
