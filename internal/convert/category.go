package convert

//go:generate go tool stringer -type=Category -trimprefix=Category -output=category_string.go

// Category is the semantic group a vCard property is mapped by.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryName
	CategorySpeakToAs
	CategoryAddress
	CategoryOrganization
	CategoryPhone
	CategoryEmail
	CategoryOnlineService
	CategoryLanguage
	CategoryScheduling
	CategoryResource
	CategoryAnniversary
	CategoryPersonalInfo
	CategoryRelation
	CategoryNote
	CategoryIgnored
	CategoryExtension
	numCategories
)

var categories = map[string]Category{
	"UID":        CategoryGeneral,
	"KIND":       CategoryGeneral,
	"MEMBER":     CategoryGeneral,
	"PRODID":     CategoryGeneral,
	"REV":        CategoryGeneral,
	"CREATED":    CategoryGeneral,
	"LANGUAGE":   CategoryGeneral,
	"CATEGORIES": CategoryGeneral,

	"FN":       CategoryName,
	"N":        CategoryName,
	"NICKNAME": CategoryName,

	"GRAMGENDER": CategorySpeakToAs,
	"PRONOUNS":   CategorySpeakToAs,

	"ADR": CategoryAddress,
	"GEO": CategoryAddress,
	"TZ":  CategoryAddress,

	"ORG":   CategoryOrganization,
	"TITLE": CategoryOrganization,
	"ROLE":  CategoryOrganization,

	"TEL":   CategoryPhone,
	"EMAIL": CategoryEmail,

	"IMPP":          CategoryOnlineService,
	"SOCIALPROFILE": CategoryOnlineService,

	"LANG":      CategoryLanguage,
	"CALADRURI": CategoryScheduling,

	"URL":           CategoryResource,
	"CONTACT-URI":   CategoryResource,
	"PHOTO":         CategoryResource,
	"LOGO":          CategoryResource,
	"SOUND":         CategoryResource,
	"KEY":           CategoryResource,
	"CALURI":        CategoryResource,
	"FBURL":         CategoryResource,
	"ORG-DIRECTORY": CategoryResource,
	"SOURCE":        CategoryResource,

	"BDAY":        CategoryAnniversary,
	"ANNIVERSARY": CategoryAnniversary,
	"DEATHDATE":   CategoryAnniversary,
	"BIRTHPLACE":  CategoryAnniversary,
	"DEATHPLACE":  CategoryAnniversary,

	"EXPERTISE": CategoryPersonalInfo,
	"HOBBY":     CategoryPersonalInfo,
	"INTEREST":  CategoryPersonalInfo,

	"RELATED": CategoryRelation,
	"NOTE":    CategoryNote,

	"BEGIN":   CategoryIgnored,
	"END":     CategoryIgnored,
	"VERSION": CategoryIgnored,
}

// CategoryOf returns the category of a property name. Names without a
// structured mapping are extensions.
func CategoryOf(name string) Category {
	if c, ok := categories[name]; ok {
		return c
	}

	return CategoryExtension
}

// mapperFunc maps all properties of one category, keyed by property name.
type mapperFunc func(s *state, props map[string][]indexed) error

var mappers = [numCategories]mapperFunc{
	CategoryGeneral:       mapGeneral,
	CategoryName:          mapName,
	CategorySpeakToAs:     mapSpeakToAs,
	CategoryAddress:       mapAddress,
	CategoryOrganization:  mapOrganization,
	CategoryPhone:         mapPhone,
	CategoryEmail:         mapEmail,
	CategoryOnlineService: mapOnlineService,
	CategoryLanguage:      mapLanguage,
	CategoryScheduling:    mapScheduling,
	CategoryResource:      mapResource,
	CategoryAnniversary:   mapAnniversary,
	CategoryPersonalInfo:  mapPersonalInfo,
	CategoryRelation:      mapRelation,
	CategoryNote:          mapNote,
	CategoryIgnored:       func(*state, map[string][]indexed) error { return nil },
	CategoryExtension:     mapExtension,
}

// singleCardinality lists properties that may appear at most once per
// ALTID group. Their extension paths omit the index when they appear once.
var singleCardinality = map[string]bool{
	"UID":         true,
	"KIND":        true,
	"N":           true,
	"BDAY":        true,
	"ANNIVERSARY": true,
	"DEATHDATE":   true,
	"BIRTHPLACE":  true,
	"DEATHPLACE":  true,
	"GRAMGENDER":  true,
	"PRODID":      true,
	"REV":         true,
	"CREATED":     true,
	"LANGUAGE":    true,
	"GENDER":      true,
}
