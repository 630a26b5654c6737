package clips

import "github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"

// Topics is the browsable topic catalog.
var Topics = []models.Topic{
	{Name: "Faith", Emoji: "🙏", Description: "Trust and belief in God's promises."},
	{Name: "Love", Emoji: "❤️", Description: "God's love for us and our love for others."},
	{Name: "Forgiveness", Emoji: "🤝", Description: "Receiving and giving pardon and grace."},
	{Name: "Hope", Emoji: "✨", Description: "Confident expectation in eternal salvation."},
	{Name: "Grace", Emoji: "💧", Description: "God's unmerited favor and divine assistance."},
	{Name: "Wisdom", Emoji: "💡", Description: "Seeking divine knowledge and understanding."},
	{Name: "Strength", Emoji: "💪", Description: "Finding power and resilience in God."},
	{Name: "Peace", Emoji: "🕊️", Description: "Inner tranquility that surpasses understanding."},
	{Name: "Prayer", Emoji: "🙌", Description: "Communicating with God."},
	{Name: "Salvation", Emoji: "✝️", Description: "Deliverance from sin and its consequences."},
	{Name: "Creation", Emoji: "🌍", Description: "God's work as the maker of all things."},
	{Name: "Prophecy", Emoji: "📜", Description: "Divine revelation and future events."},
}

// clipVerses is the fixed rotation overlaid on the photo feed.
var clipVerses = []models.ClipVerse{
	{Text: "Walk by faith, not by sight.", Reference: "2 Corinthians 5:7"},
	{Text: "Love never fails.", Reference: "1 Corinthians 13:8"},
	{Text: "Be still, and know that I am God.", Reference: "Psalm 46:10"},
	{Text: "I can do all things through Christ.", Reference: "Philippians 4:13"},
	{Text: "The joy of the Lord is your strength.", Reference: "Nehemiah 8:10"},
	{Text: "God is love.", Reference: "1 John 4:8"},
	{Text: "Trust in the Lord with all your heart.", Reference: "Proverbs 3:5"},
	{Text: "He restores my soul.", Reference: "Psalm 23:3"},
	{Text: "With God, all things are possible.", Reference: "Matthew 19:26"},
	{Text: "Perfect love casts out fear.", Reference: "1 John 4:18"},
	{Text: "His mercy is everlasting.", Reference: "Psalm 100:5"},
	{Text: "The truth will set you free.", Reference: "John 8:32"},
}

// topicVerses maps a topic to its short shareable verses.
var topicVerses = map[string][]models.ClipVerse{
	"Faith": {
		{Text: "Walk by faith, not by sight.", Reference: "2 Corinthians 5:7"},
		{Text: "Trust in the Lord with all your heart.", Reference: "Proverbs 3:5"},
		{Text: "With God, all things are possible.", Reference: "Matthew 19:26"},
		{Text: "Be still, and know that I am God.", Reference: "Psalm 46:10"},
	},
	"Love": {
		{Text: "Love never fails.", Reference: "1 Corinthians 13:8"},
		{Text: "God is love.", Reference: "1 John 4:8"},
		{Text: "Perfect love casts out fear.", Reference: "1 John 4:18"},
		{Text: "I have found the one whom my soul loves.", Reference: "Song of Solomon 3:4"},
	},
	"Forgiveness": {
		{Text: "His mercy is everlasting.", Reference: "Psalm 100:5"},
		{Text: "The truth will set you free.", Reference: "John 8:32"},
	},
	"Hope": {
		{Text: "The joy of the Lord is your strength.", Reference: "Nehemiah 8:10"},
		{Text: "He restores my soul.", Reference: "Psalm 23:3"},
	},
	"Strength": {
		{Text: "I can do all things through Christ.", Reference: "Philippians 4:13"},
		{Text: "The Lord is my rock and my fortress.", Reference: "Psalm 18:2"},
	},
	"Peace": {
		{Text: "Peace I leave with you.", Reference: "John 14:27"},
		{Text: "Do not be anxious about anything.", Reference: "Philippians 4:6"},
	},
}

// VersesForTopic returns the shareable verses for a topic name, falling
// back to the general rotation for topics without a curated list.
func VersesForTopic(name string) []models.ClipVerse {
	if vs, ok := topicVerses[name]; ok {
		return vs
	}
	return clipVerses
}
