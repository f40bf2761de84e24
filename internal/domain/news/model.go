package news

import "time"

type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     *string   `json:"summary"`
	ImageURL    *string   `json:"imageUrl"`
	Category    *string   `json:"category"`
	Source      *string   `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
}
