// Package config holds the site profile (selectors and heuristics tuned for
// the target directory site) and environment-derived settings for the
// content store.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DirectorySelectors drive the enumeration of one directory/search page.
// An empty Link selector means the card element itself is the anchor.
type DirectorySelectors struct {
	Card         string `yaml:"card"`
	Link         string `yaml:"link"`
	Name         string `yaml:"name"`
	FallbackName string `yaml:"fallback_name"`
	Next         string `yaml:"next"`
}

// PersonSelectors locate fields on a profile page.
type PersonSelectors struct {
	HeroName          string `yaml:"hero_name"`
	Designation       string `yaml:"designation"`
	Title             string `yaml:"title"`
	Hero              string `yaml:"hero"`
	OfficeCard        string `yaml:"office_card"`
	OfficeDesignation string `yaml:"office_designation"`
	OfficeWrapper     string `yaml:"office_wrapper"`
	ContactCardLabel  string `yaml:"contact_card_label"`
	BodyCardTitle     string `yaml:"body_card_title"`
	BodyCardDesc      string `yaml:"body_card_desc"`
	BodyCard          string `yaml:"body_card"`
	BodyCardPromo     string `yaml:"body_card_promo"`
	Bio               string `yaml:"bio"`
	SpecialtyTags     string `yaml:"specialty_tags"`
}

// PropertySelectors locate fields on a property page.
type PropertySelectors struct {
	CookieButton   string `yaml:"cookie_button"`
	StaticContacts string `yaml:"static_contacts"`
	ModalButtons   string `yaml:"modal_buttons"`
	ModalContainer string `yaml:"modal_container"`
	BrokerCards    string `yaml:"broker_cards"`
	BrokerFallback string `yaml:"broker_fallback"`
	SectionTitles  string `yaml:"section_titles"`
	AddressBlocks  string `yaml:"address_blocks"`
	Description    string `yaml:"description"`
}

// Profile bundles everything fitted to one site's DOM idioms plus the
// defensive constants of the crawl loop. The caps and pauses are tuned
// empirically and deliberately configurable.
type Profile struct {
	CanonicalHost string `yaml:"canonical_host"`
	StagingHost   string `yaml:"staging_host"`

	Directory        DirectorySelectors `yaml:"directory"`
	PropertyCards    DirectorySelectors `yaml:"property_cards"`
	Person           PersonSelectors    `yaml:"person"`
	Property         PropertySelectors  `yaml:"property"`
	ChallengeMarkers []string           `yaml:"challenge_markers"`
	AddressJunk      []string           `yaml:"address_junk"`
	SpecialtyWords   []string           `yaml:"specialty_words"`
	MobileWords      []string           `yaml:"mobile_words"`
	TransactionStart string             `yaml:"transaction_start"`
	TransactionEnd   string             `yaml:"transaction_end"`
	ListingLinkText  []string           `yaml:"listing_link_text"`

	MaxPages int `yaml:"max_pages"`

	// Wait intervals are defensive constants, settable in code but not
	// via the YAML override (yaml.v3 has no duration syntax).
	ChallengeWait time.Duration `yaml:"-"`
	ClickWait     time.Duration `yaml:"-"`
	ScrollPause   time.Duration `yaml:"-"`
}

// DefaultProfile returns the compiled-in profile for the target site.
func DefaultProfile() *Profile {
	return &Profile{
		CanonicalHost: "www.cbre.com",
		StagingHost:   "test-www1.cbre.com",

		Directory: DirectorySelectors{
			Card:         ".CoveoResult",
			Link:         "a.cbre-c-listCards__title-link",
			FallbackName: "p.cbre-c-listCards__title",
			Next:         `span[title="Next"]`,
		},
		PropertyCards: DirectorySelectors{
			Card: ".cbre-c-pl-property-card-link",
			Name: ".cbre-c-pl-property-card-heading",
			Next: `span[title="Next"]`,
		},
		Person: PersonSelectors{
			HeroName:          "h1.cbre-c-personHero__name",
			Designation:       ".cbre-c-personHero__designation",
			Title:             ".cbre-c-personHero__title",
			Hero:              ".cbre-c-personHero",
			OfficeCard:        ".cbre-c-inlineCards--office",
			OfficeDesignation: ".cbre-c-inlineCards__personDesignation",
			OfficeWrapper:     ".cbre-c-inlineCards__contactCardWrapper",
			ContactCardLabel:  "Contact Card",
			BodyCardTitle:     "div.cbre-c-inlineBodyCard__title",
			BodyCardDesc:      ".cbre-c-inlineBodyCard__description",
			BodyCard:          ".cbre-c-inlineBodyCard",
			BodyCardPromo:     ".cbre-c-inlineBodyCard__card",
			Bio:               ".cbre-c-inlineBodyCard__description.cbre-c-wysiwyg",
			SpecialtyTags:     ".cbre-c-inlineCards__specialtyTag, .cbre-c-cl-tag",
		},
		Property: PropertySelectors{
			CookieButton:   "#onetrust-accept-btn-handler, #onetrust-consent-sdk button, .cookie-banner button",
			StaticContacts: `div[class*="contact"], div[class*="agent"], section[class*="contact"]`,
			ModalButtons:   ".cbre-c-pd-brokerCard__button, .cbre-c-pd-brokerCard__contact-button",
			ModalContainer: ".cbre-c-pl-contact-form, .cbre-c-pl-contact-form__content",
			BrokerCards:    ".cbre-c-pl-contact-form__broker-content, .cbre-c-pl-contact-form__broker",
			BrokerFallback: `[class*="broker"]`,
			SectionTitles:  "h1, h2, h3, h4, h5, div.cbre-c-pd-overview__title, strong",
			AddressBlocks:  ".cbre-c-pd-hero__address, .cbre-c-pd-hero__sub-title, address, .cbre-c-pd-description__address",
			Description:    ".cbre-c-pd-overview__description, .cbre-c-pd-description, .cbre-c-pd-text-media__description, #overview",
		},

		ChallengeMarkers: []string{"Verify you are human", "cf-challenge"},
		AddressJunk: []string{
			"Associated Office", "Location", "Get Directions", "Contact",
			"Find Your Perfect Space", "Search Properties", "Search Now",
			"Find My Listings",
		},
		SpecialtyWords: []string{
			"Industrial", "Logistics", "Kent Valley", "South Seattle",
			"Tenant Representation", "Landlord Representation",
			"Office", "Retail", "Investment Sales",
		},
		MobileWords:      []string{"cell", "mobile", "handset"},
		TransactionStart: "Significant Transactions",
		TransactionEnd:   "Clients Represented",
		ListingLinkText:  []string{"Search Properties", "View My Listings"},

		MaxPages:      50,
		ChallengeWait: 5 * time.Second,
		ClickWait:     2 * time.Second,
		ScrollPause:   300 * time.Millisecond,
	}
}

// LoadProfile reads a YAML profile override. Fields left empty in the file
// keep their defaults.
func LoadProfile(path string) (*Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Store holds content-store credentials read from the environment.
type Store struct {
	PineconeAPIKey string
	PineconeIndex  string
	OpenAIAPIKey   string
}

// StoreFromEnv reads store settings. Missing keys are not an error here;
// the pipeline decides whether persistence is required.
func StoreFromEnv() Store {
	index := os.Getenv("PINECONE_INDEX")
	if index == "" {
		index = "cbre-data"
	}
	return Store{
		PineconeAPIKey: os.Getenv("PINECONE_API_KEY"),
		PineconeIndex:  index,
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
	}
}

// Configured reports whether both backing services have credentials.
func (s Store) Configured() bool {
	return s.PineconeAPIKey != "" && s.OpenAIAPIKey != ""
}
