package model

// RegistrationMessage is returned on successful registration.
const RegistrationMessage = "Usuário registrado com sucesso!"

// RegistrationInput carries already validated registration fields.
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

// Registration is the outcome of a successful registration.
type Registration struct {
	Message     string
	User        *User
	AccessToken string
	TokenType   string
}
