package entity

// Gender is a fixed in-memory enum; the backend has no collection for it.
type Gender int

const (
	GenderMale Gender = iota + 1
	GenderFemale
	GenderOther
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	}
	return ""
}

// GenderOptions lists every gender as dropdown options.
func GenderOptions() []Option {
	return []Option{
		{ID: int(GenderMale), Name: GenderMale.String()},
		{ID: int(GenderFemale), Name: GenderFemale.String()},
		{ID: int(GenderOther), Name: GenderOther.String()},
	}
}
