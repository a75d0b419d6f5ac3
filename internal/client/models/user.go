package models

import "encoding/json"

type UserProfile struct {
	ID    string `json:"_id,omitempty"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// UnmarshalJSON accepts the identifier under either "_id" or "id".
func (u *UserProfile) UnmarshalJSON(data []byte) error {
	type plain UserProfile
	aux := struct {
		*plain
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ID = firstNonEmpty(aux.MongoID, aux.ID)
	return nil
}

// DisplayName is the name when known, the email otherwise.
func (u *UserProfile) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Session is the authentication state. User is nil until a stored credential
// is validated or a login/signup succeeds. Loading is true only during the
// initial validation pass.
type Session struct {
	User    *UserProfile
	Loading bool
}

func (s Session) Authenticated() bool {
	return s.User != nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
