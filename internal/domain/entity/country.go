package entity

// Country is a top-level place reference.
type Country struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name" validate:"notblank"`
}

func (c Country) Key() int { return c.ID }

func (c Country) Option() Option { return Option{ID: c.ID, Name: c.Name} }

// State belongs to one Country.
type State struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name" validate:"notblank"`
	CountryID int    `json:"countryId" validate:"required"`
}

func (s State) Key() int { return s.ID }

func (s State) Option() Option { return Option{ID: s.ID, Name: s.Name, ParentID: s.CountryID} }

// District belongs to one State.
type District struct {
	ID      int    `json:"id,omitempty"`
	Name    string `json:"name" validate:"notblank"`
	StateID int    `json:"stateId" validate:"required"`
}

func (d District) Key() int { return d.ID }

func (d District) Option() Option { return Option{ID: d.ID, Name: d.Name, ParentID: d.StateID} }
