// Package models provides the payload shapes of the Casdoor actions this
// module wraps. Fields Casdoor adds later are ignored when decoding.
package models

// User is a Casdoor user (partial, covering the commonly used fields).
type User struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	UpdatedTime string `json:"updatedTime,omitempty"`

	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Password    string `json:"password,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	Region      string `json:"region,omitempty"`
	Location    string `json:"location,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Title       string `json:"title,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Language    string `json:"language,omitempty"`
	Score       int    `json:"score,omitempty"`
	Karma       int    `json:"karma,omitempty"`
	Ranking     int    `json:"ranking,omitempty"`

	IsAdmin       bool `json:"isAdmin,omitempty"`
	IsForbidden   bool `json:"isForbidden,omitempty"`
	IsDeleted     bool `json:"isDeleted,omitempty"`
	EmailVerified bool `json:"emailVerified,omitempty"`

	SignupApplication string            `json:"signupApplication,omitempty"`
	Groups            []string          `json:"groups,omitempty"`
	Properties        map[string]string `json:"properties,omitempty"`
}

// FullName is the "<owner>/<name>" identifier Casdoor uses in id parameters.
func (u User) FullName() string {
	return u.Owner + "/" + u.Name
}
