package domain

// DefaultCurrency is the display currency used until the user picks one.
const DefaultCurrency = "USD"

// Settings is a snapshot of the user preferences kept next to the itinerary
// list in the preference store.
type Settings struct {
	Currency            string `json:"currency"`
	UserName            string `json:"user_name"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}
