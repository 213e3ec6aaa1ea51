package ui

// Toggle controls the visibility of a collapsible section. The post list
// owns one for the new-post form and closes it after a successful submit.
type Toggle struct {
	visible bool
}

// Close hides the section.
func (t *Toggle) Close() { t.visible = false }

// Flip inverts visibility and returns the new state.
func (t *Toggle) Flip() bool {
	t.visible = !t.visible
	return t.visible
}

// Visible reports whether the section is shown.
func (t Toggle) Visible() bool { return t.visible }
