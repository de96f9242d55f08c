package domain

import "time"

// Mood enumerates the moods the mobile app can record.
type Mood string

const (
	MoodHappy    Mood = "FELIZ"
	MoodCalm     Mood = "TRANQUILO"
	MoodNeutral  Mood = "NEUTRAL"
	MoodSad      Mood = "TRISTE"
	MoodAnxious  Mood = "ANSIOSO"
	MoodAngry    Mood = "ENOJADO"
)

// EmotionLog is a single mood entry for a user.
type EmotionLog struct {
	ID       int64
	UserID   int64
	Mood     Mood
	Score    int
	Note     string
	LoggedAt time.Time
}

// DaySummary aggregates a user's mood entries for one calendar day.
type DaySummary struct {
	Day          time.Time
	AverageScore float64
	Entries      int
}
