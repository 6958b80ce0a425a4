package models

// Post is a feed item. The client only reads posts during priming.
type Post struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	UserPost  int64   `json:"userPost"`
	CreatedAt string  `json:"created_on"`
	Image     string  `json:"img"`
	LikedBy   []int64 `json:"liked"`
}

// Comment belongs to a post.
type Comment struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	UserComment int64  `json:"userComment"`
	Post        int64  `json:"post"`
}
