// Package continuity holds the pure derivations behind the client "today" view:
// the daily reflection prompt, check-in streaks and same-day checks. Nothing
// here touches storage; callers pass the rows and the current time.
package continuity

import "time"

const dayMillis = 86_400_000

// Prompts cycles one entry per UTC day.
var Prompts = []string{
	"What is one thing that felt manageable today?",
	"Where in your body do you notice tension right now?",
	"What would you like your therapist to know about this week?",
	"Name one small thing you did to take care of yourself.",
	"What thought kept coming back today, and how did you respond to it?",
	"Who or what helped you feel supported recently?",
	"What is one boundary you kept, or want to keep?",
	"Describe a moment today when you felt calm, even briefly.",
	"What are you looking forward to in the next few days?",
	"If today had a headline, what would it be?",
	"What did you notice about your sleep and energy lately?",
	"What is one thing you would like to try before your next session?",
}

// PromptIndex is floor(epochMillis / 86_400_000) mod n, kept non-negative.
func PromptIndex(t time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	day := t.UnixMilli() / dayMillis
	if t.UnixMilli() < 0 && t.UnixMilli()%dayMillis != 0 {
		day--
	}
	idx := int(day % int64(n))
	if idx < 0 {
		idx += n
	}
	return idx
}

// PromptFor returns the prompt for t's UTC calendar day.
func PromptFor(t time.Time) string {
	return Prompts[PromptIndex(t, len(Prompts))]
}
