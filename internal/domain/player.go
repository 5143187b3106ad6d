package domain

// Playback is the last player position a member reported.
// No transport or lifecycle logic here.
type Playback struct {
	Time    float64
	Playing bool
}
