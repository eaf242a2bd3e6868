package domain

// Article is a stored news article, projected down to the four fields the
// review needs.
type Article struct {
	URL           string `bson:"url" json:"url"`
	Title         string `bson:"title" json:"title"`
	Text          string `bson:"text" json:"text"`
	PublishedDate string `bson:"published_date" json:"published_date"`
}
