package numbergame

// InvalidNumbersMessage accompanies ResultError.
const InvalidNumbersMessage = "Invalid numbers."

var winMessages = []string{
	"Bang on! You're a legend. ✨",
	"OMG yes — nailed it! 🔥",
	"Correct! Flex time. 💪",
}

type feedbackKey struct {
	result Result
	tier   Tier
}

// feedback maps (direction, tier) to the flavor lines one is picked from.
var feedback = map[feedbackKey][]string{
	{ResultLow, TierTiny}: {
		"So close, a smidge low — try nudging up a bit.",
		"Almost there! Go just a little higher.",
		"You're grazing it — aim a tiny bit higher.",
	},
	{ResultLow, TierSmall}: {
		"Low-key low. Push it up!",
		"A bit under, not bad. Try a higher guess.",
		"Nah, you're undershooting. Try a higher number.",
	},
	{ResultLow, TierBig}: {
		"Bro, you're way below. Climb up!",
		"You're searching in the basement — look above.",
		"Too low — try not to live under the radar.",
	},
	{ResultLow, TierExtreme}: {
		"Dude, you're digging to China — go up, way up.",
		"You're practically underground with that guess. Zoom up!",
		"Low extreme — are you trying to teleport under the number?",
	},
	{ResultHigh, TierTiny}: {
		"Slightly high — you're almost back to Earth.",
		"A tad high. Knock it down a smidge.",
		"Just a hair above — lower it a bit.",
	},
	{ResultHigh, TierSmall}: {
		"Too high — you're peeking over the top.",
		"High vibes, but not the right ones. Lower it.",
		"A bit up in clouds — come down a little.",
	},
	{ResultHigh, TierBig}: {
		"Bruh, that's high. You're orbiting — come back down.",
		"You're up in the stratosphere with that guess. Descend!",
		"Whoa, too high. Try searching the planet below.",
	},
	{ResultHigh, TierExtreme}: {
		"Damn bro, you reached too high — you in space! 🌌 Search below.",
		"No cap, you're skydiving past the number. Land back on Earth.",
		"Woooah that guess is cosmic. Try something grounded.",
	},
}

// Messages returns the candidate lines for a verdict and tier.
// For ResultCorrect the tier is ignored. The returned slice must not be modified.
func Messages(result Result, tier Tier) []string {
	if result == ResultCorrect {
		return winMessages
	}
	return feedback[feedbackKey{result, tier}]
}
