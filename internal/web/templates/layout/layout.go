package layout

// FlashMessage is a one-shot notice shown on the next page render
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData is shared by every page rendered inside the base layout
type PageData struct {
	Title    string
	Username string // empty when anonymous
	Flash    *FlashMessage
}

// LoggedIn reports whether the page is rendered for a signed-in user
func (p PageData) LoggedIn() bool {
	return p.Username != ""
}
