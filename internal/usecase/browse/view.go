package browse

// Button is one inline keyboard button. Exactly one of Token and URL is
// set: Token buttons route back through Decode, URL buttons open the
// article in the browser.
type Button struct {
	Text  string
	Token string
	URL   string
}

// ArticleView is the render of one article message: photo, caption and
// inline keyboard rows. The same structure serves both toggle states.
type ArticleView struct {
	ArticleID int64
	PhotoURL  string
	Caption   string
	Buttons   [][]Button
}

// PageView is one page of a source's articles plus the pagination row.
type PageView struct {
	Articles   []*ArticleView
	Controls   []Button
	Page       int
	TotalPages int
}
