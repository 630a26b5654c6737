package models

import "time"

// users table
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile is the identity record handed back by the auth collaborator.
// The local store only caches the most recently seen copy.
type UserProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Verse is a single verse inside a scripture API response.
type Verse struct {
	BookID   string `json:"book_id"`
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	Text     string `json:"text"`
}

// Passage is the scripture API response for one reference lookup.
type Passage struct {
	Reference       string  `json:"reference"`
	Verses          []Verse `json:"verses"`
	Text            string  `json:"text"`
	TranslationID   string  `json:"translation_id"`
	TranslationName string  `json:"translation_name"`
	TranslationNote string  `json:"translation_note"`
}

// PhotoSrc holds the resolution variants of a stock photo.
type PhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// Photo is one record from the stock-photo API.
type Photo struct {
	ID              int      `json:"id"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	URL             string   `json:"url"`
	Photographer    string   `json:"photographer"`
	PhotographerURL string   `json:"photographer_url"`
	AvgColor        string   `json:"avg_color"`
	Src             PhotoSrc `json:"src"`
	Alt             string   `json:"alt"`
}

// PhotoPage is one page of the curated photo feed.
type PhotoPage struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	Photos       []Photo `json:"photos"`
	TotalResults int     `json:"total_results"`
	NextPage     string  `json:"next_page"`
}

// ClipVerse is the short verse overlaid on a clip.
type ClipVerse struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// Clip pairs a background photo with an overlaid verse. Bookmarked clips
// store this full snapshot, so they never re-fetch and can go stale.
type Clip struct {
	ID    string    `json:"id"`
	Photo Photo     `json:"photo"`
	Verse ClipVerse `json:"verse"`
}

// DailyContent is one day of a reading plan.
type DailyContent struct {
	Day       int    `json:"day"`
	Title     string `json:"title"`
	Scripture string `json:"scripture"`
	Body      string `json:"body"`
	Prayer    string `json:"prayer"`
}

// Plan is a multi-day devotional reading program, either built-in or
// authored by the assistant.
type Plan struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Duration    string         `json:"duration"`
	Image       string         `json:"image,omitempty"`
	Description string         `json:"description"`
	Content     []DailyContent `json:"content"`
}

// PlanProgress tracks one plan's position. CurrentDay semantics:
// absent/0 = not started, 1..N = active day, -1 = completed.
type PlanProgress struct {
	CurrentDay int `json:"currentDay"`
}

// StreakData counts consecutive calendar days with a visit.
type StreakData struct {
	Count     int    `json:"count"`
	LastVisit string `json:"lastVisit"`
}

// Goal is one onboarding goal item.
type Goal struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	IsCustom bool   `json:"isCustom"`
}

// OnboardingData is the one-time setup record.
type OnboardingData struct {
	IsComplete      bool     `json:"isComplete"`
	UserName        string   `json:"userName"`
	Language        string   `json:"language"`
	LocationAllowed bool     `json:"locationAllowed"`
	Goals           []Goal   `json:"goals"`
	Topics          []string `json:"topics"`
}

// LastRead is the reader's last position.
type LastRead struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
}

// DailyPrayer caches one generated prayer per calendar date.
type DailyPrayer struct {
	Date   string `json:"date"`
	Prayer string `json:"prayer"`
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Reference     string   `json:"reference"`
	Explanation   string   `json:"explanation"`
}

// Quiz is a scripture quiz.
type Quiz struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Questions   []QuizQuestion `json:"questions"`
}

// Topic is a browsable scripture topic.
type Topic struct {
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// CommunityClip is a user-published clip in the social backend, with
// denormalized author display fields.
type CommunityClip struct {
	ID             string `json:"id,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	UserPicture    string `json:"user_picture"`
	ImageURL       string `json:"image_url"`
	VerseText      string `json:"verse_text"`
	VerseReference string `json:"verse_reference"`
}

// ChatRequest is the websocket chat frame sent by a client.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the websocket chat frame sent to a client.
type ChatResponse struct {
	Role  string `json:"role"`
	Text  string `json:"text,omitempty"`
	Plan  *Plan  `json:"plan,omitempty"`
	Event string `json:"event,omitempty"`
}
