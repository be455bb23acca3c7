package entity

// Language is a spoken language an employee may know.
type Language struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name" validate:"notblank"`
}

func (l Language) Key() int { return l.ID }

func (l Language) Option() Option { return Option{ID: l.ID, Name: l.Name} }
