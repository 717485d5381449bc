package item

// Item represents a saved restaurant listing. Owner references the creating
// user's ID and is set from the authenticated identity, never from the
// request body.
type Item struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Address string `json:"address"`
	Image   string `json:"image"`
	Website string `json:"website"`
	Owner   string `json:"owner"`
}
