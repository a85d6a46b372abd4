package models

// Property is one rentable unit advertised on the site.
type Property struct {
	ID   string `mapstructure:"id" json:"id"`
	Name string `mapstructure:"name" json:"name"`
}
