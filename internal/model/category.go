package model

// Categories is the canonical category order. Stored rating keys are these
// names, so the list must not be reordered or renamed without migrating
// existing rows.
var Categories = []string{
	"School life",
	"Finances",
	"Health",
	"Family and Friends",
	"Romance",
	"Personal Growth",
	"Fun and Recreation",
	"Physical Environment",
}

const (
	MinRating = 0
	MaxRating = 10
)

// CategoryAt returns the category name for index, or false when out of range.
func CategoryAt(index int) (string, bool) {
	if index < 0 || index >= len(Categories) {
		return "", false
	}
	return Categories[index], true
}

func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
