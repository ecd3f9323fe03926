package services

import (
	"strings"

	"github.com/desertthunder/moodlist/internal/models"
)

var moods = []models.Mood{
	{Label: "Excited", Genre: "pop"},
	{Label: "Relaxed", Genre: "lo-fi"},
	{Label: "Angry", Genre: "rock"},
	{Label: "Heartfelt", Genre: "acoustic"},
	{Label: "Funky", Genre: "funk"},
	{Label: "Dance", Genre: "disco"},
	{Label: "Energetic", Genre: "dance"},
	{Label: "Heavy Metal", Genre: "metal"},
	{Label: "Laid-back", Genre: "chill"},
	{Label: "Old", Genre: "classical"},
	{Label: "Jazzy", Genre: "jazz"},
	{Label: "Homesick", Genre: "country"},
	{Label: "Beaten", Genre: "rap"},
	{Label: "Hip", Genre: "hip-hop"},
	{Label: "Reggae", Genre: "reggae"},
	{Label: "Blues", Genre: "blues"},
	{Label: "Punk", Genre: "punk"},
	{Label: "Indie", Genre: "indie"},
	{Label: "Latin", Genre: "latin"},
	{Label: "Soul", Genre: "soul"},
}

// Moods returns the mood buttons in display order.
func Moods() []models.Mood {
	out := make([]models.Mood, len(moods))
	copy(out, moods)
	return out
}

// MoodByLabel finds a mood by label ignoring case and surrounding space.
func MoodByLabel(label string) (models.Mood, bool) {
	label = strings.TrimSpace(label)
	for _, m := range moods {
		if strings.EqualFold(m.Label, label) {
			return m, true
		}
	}
	return models.Mood{}, false
}
