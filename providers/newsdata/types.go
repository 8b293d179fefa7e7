package newsdata

// response is the relevant part of a NewsData.io API response.
type response struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Results []result `json:"results"`
}

type result struct {
	Title    string   `json:"title"`
	Link     string   `json:"link"`
	Content  string   `json:"content"`
	Desc     string   `json:"description"`
	ImageURL string   `json:"image_url"`
	PubDate  string   `json:"pubDate"`
	Category []string `json:"category"`
	Keywords []string `json:"keywords"`
}
