package jscontact

// Card kinds.
const (
	KindIndividual  = "individual"
	KindGroup       = "group"
	KindOrg         = "org"
	KindLocation    = "location"
	KindDevice      = "device"
	KindApplication = "application"
)

// Version is the JSContact version emitted on every card.
const Version = "1.0"

// Card is the structured contact record.
type Card struct {
	Type     string    `json:"@type"`
	Version  string    `json:"version"`
	UID      string    `json:"uid"`
	Kind     string    `json:"kind,omitempty"`
	Language string    `json:"language,omitempty"`
	ProdID   string    `json:"prodId,omitempty"`
	Created  string    `json:"created,omitempty"`
	Updated  string    `json:"updated,omitempty"`
	Members  MemberSet `json:"members,omitempty"`

	Name      *Name                    `json:"name,omitempty"`
	Nicknames map[string]*Nickname     `json:"nicknames,omitempty"`
	SpeakToAs *SpeakToAs               `json:"speakToAs,omitempty"`
	Titles    map[string]*Title        `json:"titles,omitempty"`
	Orgs      map[string]*Organization `json:"organizations,omitempty"`

	Emails              map[string]*EmailAddress      `json:"emails,omitempty"`
	OnlineServices      map[string]*OnlineService     `json:"onlineServices,omitempty"`
	Phones              map[string]*Phone             `json:"phones,omitempty"`
	PreferredLanguages  map[string]*LanguagePref      `json:"preferredLanguages,omitempty"`
	Calendars           map[string]*Resource          `json:"calendars,omitempty"`
	SchedulingAddresses map[string]*SchedulingAddress `json:"schedulingAddresses,omitempty"`
	Addresses           map[string]*Address           `json:"addresses,omitempty"`
	CryptoKeys          map[string]*Resource          `json:"cryptoKeys,omitempty"`
	Directories         map[string]*Resource          `json:"directories,omitempty"`
	Links               map[string]*Resource          `json:"links,omitempty"`
	Media               map[string]*Resource          `json:"media,omitempty"`

	Anniversaries map[string]*Anniversary  `json:"anniversaries,omitempty"`
	Keywords      map[string]bool          `json:"keywords,omitempty"`
	Notes         map[string]*Note         `json:"notes,omitempty"`
	PersonalInfo  map[string]*PersonalInfo `json:"personalInfo,omitempty"`
	RelatedTo     map[string]*Relation     `json:"relatedTo,omitempty"`

	// Localizations maps a language tag to patches keyed by path.
	Localizations map[string]map[string]any `json:"localizations,omitempty"`

	// Extensions holds data with no structured home, keyed by extension path.
	Extensions map[string]any `json:"-"`
}

// NewCard returns an empty card with the given uid.
func NewCard(uid string) *Card {
	return &Card{Type: "Card", Version: Version, UID: uid}
}

// IsGroup reports whether the card is marked as a group.
func (c *Card) IsGroup() bool {
	return c.Kind == KindGroup
}

// Clone returns a shallow copy with its own top-level maps, so that
// reclassification or patching never touches the original.
func (c *Card) Clone() *Card {
	cp := *c
	cp.Members = append(MemberSet(nil), c.Members...)

	if c.Extensions != nil {
		cp.Extensions = make(map[string]any, len(c.Extensions))
		for k, v := range c.Extensions {
			cp.Extensions[k] = v
		}
	}

	if c.Localizations != nil {
		cp.Localizations = make(map[string]map[string]any, len(c.Localizations))
		for lang, patches := range c.Localizations {
			m := make(map[string]any, len(patches))
			for k, v := range patches {
				m[k] = v
			}

			cp.Localizations[lang] = m
		}
	}

	return &cp
}

// AddLocalization records a patch for lang at path.
func (c *Card) AddLocalization(lang, path string, value any) {
	if c.Localizations == nil {
		c.Localizations = make(map[string]map[string]any)
	}

	if c.Localizations[lang] == nil {
		c.Localizations[lang] = make(map[string]any)
	}

	c.Localizations[lang][path] = value
}

// SetExtension stores value under an extension path.
func (c *Card) SetExtension(path string, value any) {
	if c.Extensions == nil {
		c.Extensions = make(map[string]any)
	}

	c.Extensions[path] = value
}
