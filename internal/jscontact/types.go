package jscontact

// Context tokens.
const (
	ContextPrivate = "private"
	ContextWork    = "work"
)

// NameComponent is one part of a structured name.
type NameComponent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Name is the contact's name.
type Name struct {
	Type       string            `json:"@type,omitempty"`
	Components []NameComponent   `json:"components,omitempty"`
	IsOrdered  bool              `json:"isOrdered,omitempty"`
	Full       string            `json:"full,omitempty"`
	SortAs     map[string]string `json:"sortAs,omitempty"`
}

// Component returns the value of the first component of the given kind.
func (n *Name) Component(kind string) string {
	for _, c := range n.Components {
		if c.Kind == kind {
			return c.Value
		}
	}

	return ""
}

// Nickname is an informal name.
type Nickname struct {
	Type     string          `json:"@type,omitempty"`
	Name     string          `json:"name"`
	Contexts map[string]bool `json:"contexts,omitempty"`
	Pref     int             `json:"pref,omitempty"`
}

// SpeakToAs holds grammatical gender and pronoun preferences.
type SpeakToAs struct {
	Type              string               `json:"@type,omitempty"`
	GrammaticalGender string               `json:"grammaticalGender,omitempty"`
	Pronouns          map[string]*Pronouns `json:"pronouns,omitempty"`
}

// Pronouns is one set of preferred pronouns.
type Pronouns struct {
	Type     string          `json:"@type,omitempty"`
	Pronouns string          `json:"pronouns"`
	Contexts map[string]bool `json:"contexts,omitempty"`
	Pref     int             `json:"pref,omitempty"`
}

// OrgUnit is an organizational unit.
type OrgUnit struct {
	Type   string `json:"@type,omitempty"`
	Name   string `json:"name"`
	SortAs string `json:"sortAs,omitempty"`
}

// Organization is a company or institution the contact belongs to.
type Organization struct {
	Type     string          `json:"@type,omitempty"`
	Name     string          `json:"name,omitempty"`
	Units    []OrgUnit       `json:"units,omitempty"`
	SortAs   string          `json:"sortAs,omitempty"`
	Contexts map[string]bool `json:"contexts,omitempty"`
}

// Title kinds.
const (
	TitleKindTitle = "title"
	TitleKindRole  = "role"
)

// Title is a job title or role.
type Title struct {
	Type           string `json:"@type,omitempty"`
	Name           string `json:"name"`
	Kind           string `json:"kind,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// EmailAddress is an email address.
type EmailAddress struct {
	Type     string          `json:"@type,omitempty"`
	Address  string          `json:"address"`
	Contexts map[string]bool `json:"contexts,omitempty"`
	Pref     int             `json:"pref,omitempty"`
	Label    string          `json:"label,omitempty"`
}

// OnlineService is an instant messaging or social account.
type OnlineService struct {
	Type     string          `json:"@type,omitempty"`
	Service  string          `json:"service,omitempty"`
	URI      string          `json:"uri,omitempty"`
	User     string          `json:"user,omitempty"`
	Contexts map[string]bool `json:"contexts,omitempty"`
	Pref     int             `json:"pref,omitempty"`
	Label    string          `json:"label,omitempty"`
}

// Phone is a telephone number.
type Phone struct {
	Type     string          `json:"@type,omitempty"`
	Number   string          `json:"number"`
	Features map[string]bool `json:"features,omitempty"`
	Contexts map[string]bool `json:"contexts,omitempty"`
	Pref     int             `json:"pref,omitempty"`
	Label    string          `json:"label,omitempty"`
}

// LanguagePref is a language the contact prefers.
type LanguagePref struct {
	Type     string          `json:"@type,omitempty"`
	Language string          `json:"language"`
	Contexts map[string]bool `json:"contexts,omitempty"`
	Pref     int             `json:"pref,omitempty"`
}

// SchedulingAddress is where to send calendar scheduling messages.
type SchedulingAddress struct {
	Type     string          `json:"@type,omitempty"`
	URI      string          `json:"uri"`
	Contexts map[string]bool `json:"contexts,omitempty"`
	Pref     int             `json:"pref,omitempty"`
	Label    string          `json:"label,omitempty"`
}

// Resource covers the URI-valued entities: links, media, calendars,
// crypto keys and directories. Type tells them apart.
type Resource struct {
	Type      string          `json:"@type,omitempty"`
	Kind      string          `json:"kind,omitempty"`
	URI       string          `json:"uri"`
	MediaType string          `json:"mediaType,omitempty"`
	Contexts  map[string]bool `json:"contexts,omitempty"`
	Pref      int             `json:"pref,omitempty"`
	Label     string          `json:"label,omitempty"`
	ListAs    int             `json:"listAs,omitempty"`
}

// Address component kinds.
const (
	AddrPostOfficeBox = "postOfficeBox"
	AddrApartment     = "apartment"
	AddrName          = "name"
	AddrLocality      = "locality"
	AddrRegion        = "region"
	AddrPostcode      = "postcode"
	AddrCountry       = "country"
)

// AddressComponent is one part of a postal address.
type AddressComponent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Address is a physical location.
type Address struct {
	Type        string             `json:"@type,omitempty"`
	Components  []AddressComponent `json:"components,omitempty"`
	Full        string             `json:"full,omitempty"`
	CountryCode string             `json:"countryCode,omitempty"`
	Coordinates string             `json:"coordinates,omitempty"`
	TimeZone    string             `json:"timeZone,omitempty"`
	Contexts    map[string]bool    `json:"contexts,omitempty"`
	Pref        int                `json:"pref,omitempty"`
}

// Component returns the value of the first component of the given kind.
func (a *Address) Component(kind string) string {
	for _, c := range a.Components {
		if c.Kind == kind {
			return c.Value
		}
	}

	return ""
}

// Anniversary kinds.
const (
	AnniversaryBirth   = "birth"
	AnniversaryDeath   = "death"
	AnniversaryWedding = "wedding"
)

// Anniversary is a memorable date.
type Anniversary struct {
	Type  string   `json:"@type,omitempty"`
	Kind  string   `json:"kind"`
	Date  *Date    `json:"date,omitempty"`
	Place *Address `json:"place,omitempty"`
}

// Note is a free-text note.
type Note struct {
	Type    string `json:"@type,omitempty"`
	Note    string `json:"note"`
	Created string `json:"created,omitempty"`
}

// Personal information levels.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

// PersonalInfo is an expertise, hobby or interest.
type PersonalInfo struct {
	Type   string `json:"@type,omitempty"`
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Level  string `json:"level,omitempty"`
	ListAs int    `json:"listAs,omitempty"`
}

// Relation describes how the contact relates to another one.
type Relation struct {
	Type     string          `json:"@type,omitempty"`
	Relation map[string]bool `json:"relation,omitempty"`
}
