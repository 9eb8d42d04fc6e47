package bot

// PersonalityProfile defines the tunable parameters for a RuleBrain.
type PersonalityProfile struct {
	Aggression float64 `json:"aggression"` // 0.0–1.0: tendency to spend strong cards early
	Caution    float64 `json:"caution"`    // 0.0–1.0: reluctance to reveal melds and pick weak trumps
	Randomness float64 `json:"randomness"` // 0.0–1.0: decision noise
}

// Persona defines a named bot character.
type Persona struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Tagline   string             `json:"tagline"`
	AvatarKey string             `json:"avatarKey"`
	Brain     PersonalityProfile `json:"brain"`
}

// defaultPersonas fill open seats when no registry file is configured.
var defaultPersonas = []*Persona{
	{
		ID: "alexa", Name: "Alexa Bot", Tagline: "Always listening, rarely folding.",
		AvatarKey: "bot-alexa",
		Brain:     PersonalityProfile{Aggression: 0.7, Caution: 0.2, Randomness: 0.2},
	},
	{
		ID: "cortana", Name: "Cortana Bot", Tagline: "Plays by the book.",
		AvatarKey: "bot-cortana",
		Brain:     PersonalityProfile{Aggression: 0.4, Caution: 0.6, Randomness: 0.1},
	},
	{
		ID: "siri", Name: "Siri Bot", Tagline: "I found this card on the web.",
		AvatarKey: "bot-siri",
		Brain:     PersonalityProfile{Aggression: 0.5, Caution: 0.4, Randomness: 0.4},
	},
	{
		ID: "boomer", Name: "Boomer Bot", Tagline: "Back in my day we played Eichel.",
		AvatarKey: "bot-boomer",
		Brain:     PersonalityProfile{Aggression: 0.8, Caution: 0.1, Randomness: 0.3},
	},
}
