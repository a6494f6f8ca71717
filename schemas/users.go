package schemas

// Recipient is the user an e-mail is addressed to.
type Recipient struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}
