package ui

// Focus targets inside the catalog view.
const (
	focusTable  = "table"
	focusSearch = "search"
)

// FocusManager tracks which widget receives keys and rotates between them.
type FocusManager struct {
	Current  string   // ID of the focused widget
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// Next advances focus to the next widget in order and returns its ID.
func (f *FocusManager) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := -1
	for i, id := range f.Order {
		if id == f.Current {
			idx = i
			break
		}
	}
	f.move(f.Order[(idx+1)%len(f.Order)])
	return f.Current
}

// SetFocus focuses the given widget. Returns false if id is not in Order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.move(id)
			return true
		}
	}
	return false
}

// Is reports whether id has focus.
func (f *FocusManager) Is(id string) bool {
	return f.Current == id
}

func (f *FocusManager) move(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
