// internal/models/category.go
package models

// CategoryIcon is a closed tag set. Unknown values never reach the database:
// validation rejects them and rendering falls back to IconBookOpen.
type CategoryIcon string

const (
	IconCode          CategoryIcon = "code"
	IconMicroscope    CategoryIcon = "microscope"
	IconCalculator    CategoryIcon = "calculator"
	IconPalette       CategoryIcon = "palette"
	IconGlobe         CategoryIcon = "globe"
	IconGraduationCap CategoryIcon = "graduation-cap"
	IconBookOpen      CategoryIcon = "book-open"
	IconFileText      CategoryIcon = "file-text"
)

var categoryIcons = map[CategoryIcon]struct{}{
	IconCode:          {},
	IconMicroscope:    {},
	IconCalculator:    {},
	IconPalette:       {},
	IconGlobe:         {},
	IconGraduationCap: {},
	IconBookOpen:      {},
	IconFileText:      {},
}

// ValidIcon reports whether tag is a member of the closed icon set.
// The empty tag is valid; icons are optional.
func ValidIcon(tag CategoryIcon) bool {
	if tag == "" {
		return true
	}
	_, ok := categoryIcons[tag]
	return ok
}

// ResolveIcon maps a stored tag to the icon clients should render,
// substituting the default for anything outside the closed set.
func ResolveIcon(tag CategoryIcon) CategoryIcon {
	if _, ok := categoryIcons[tag]; ok {
		return tag
	}
	return IconBookOpen
}

type Category struct {
	BaseModel
	Name        string       `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Icon        CategoryIcon `json:"icon,omitempty" gorm:"size:50"`

	// Relationships
	Books []Book `json:"books,omitempty" gorm:"foreignKey:CategoryID"`
	PDFs  []PDF  `json:"pdfs,omitempty" gorm:"foreignKey:CategoryID"`
}
