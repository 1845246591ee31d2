package models

import "time"

// User is the profile stored alongside the Firebase identity. The UID is the
// stable identifier issued by the identity provider.
type User struct {
	UID         string   `bson:"uid" json:"uid"`
	Email       string   `bson:"email" json:"email"`
	FirstName   string   `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName    string   `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Preferences []string `bson:"preferences,omitempty" json:"preferences,omitempty"`

	// WelcomeSent guards the one-time welcome email.
	WelcomeSent bool `bson:"welcomeSent" json:"welcomeSent"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}
