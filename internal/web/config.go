package web

// Config defines the inputs for the contacts web service.
type Config struct {
	// HTTPAddr is the listen address.
	HTTPAddr string `env:"CONTACTS_UI_HTTP_ADDR" envDefault:"localhost:8080"`
	// SessionStorePath is the sqlite file holding session journey snapshots.
	// Empty keeps snapshots in process memory.
	SessionStorePath string `env:"CONTACTS_UI_SESSION_STORE_PATH"`
	// TrustForwardedProto marks cookies Secure when a proxy reports HTTPS.
	TrustForwardedProto bool `env:"CONTACTS_UI_TRUST_FORWARDED_PROTO"`
	// JourneyCapacity overrides the per-kind concurrent journey limit.
	// Zero keeps the default.
	JourneyCapacity int `env:"CONTACTS_UI_JOURNEY_CAPACITY"`
}
