package todo

// State represents an item's completion state.
type State string

const (
	StateNotFinished State = "NotFinished"
	StateFinished    State = "Finished"
)

// Item is a single entry in the todo list.
type Item struct {
	Content string `json:"content"`
	State   State  `json:"state"`
}

// NewItem returns an open item with the given content.
func NewItem(content string) Item {
	return Item{Content: content, State: StateNotFinished}
}

// Done reports whether the item is finished.
func (i Item) Done() bool {
	return i.State == StateFinished
}

// File is the on-disk document.
type File struct {
	List []Item `json:"list"`
}
