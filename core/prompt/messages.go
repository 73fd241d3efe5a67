package prompt

import "math/rand/v2"

// MessageSelector returns the rejection message for the given number of
// previous rejections of the same field.
type MessageSelector func(tries int) string

// DefaultPrimary is shown in order, one per rejection.
var DefaultPrimary = []string{
	"Your input is wrong. Please try again.",
	"Wrong again...",
	"Wrong again... Really?",
	"I am losing my patience...",
	"Wrong again. Are you even reading the prompt?",
	"This is insane!!!",
	"Are you kidding me?",
}

// DefaultAdvanced is drawn from at random once DefaultPrimary is exhausted.
var DefaultAdvanced = []string{
	"Arggggg!!!!!!!!!",
	"Seriously?!",
	"Are you sure you are reading what you type?\nMaybe you should double check...",
	"It seems we could do this all day.",
}

// Escalating walks primary in order and then draws from advanced with pick,
// which must return a value in [0, n). A nil pick uses math/rand/v2.
func Escalating(primary, advanced []string, pick func(n int) int) MessageSelector {
	if pick == nil {
		pick = rand.IntN
	}
	return func(tries int) string {
		if tries >= 0 && tries < len(primary) {
			return primary[tries]
		}
		if len(advanced) == 0 {
			if len(primary) == 0 {
				return DefaultPrimary[0]
			}
			return primary[len(primary)-1]
		}
		return advanced[pick(len(advanced))]
	}
}

// Cycle is a deterministic picker that walks the pool round robin.
func Cycle() func(n int) int {
	i := -1
	return func(n int) int {
		i++
		return i % n
	}
}
