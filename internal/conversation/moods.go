package conversation

// moods adds run-to-run variety to generated replies so repeated
// engagements with the same persona don't read identically.
var moods = []string{
	"You are in a chatty mood today - you go slightly off-topic, mention something about your day.",
	"You are anxious and keep repeating yourself a little.",
	"You are surprisingly calm and methodical in your questions.",
	"You are a bit hard of hearing today - you mishear one word in their message.",
	"You just had tea and are in a good mood - you're friendly but still asking questions.",
	"You are distracted - someone in your house is talking to you at the same time.",
	"You are suspicious today - something about this call reminds you of a scam your neighbor fell for.",
	"You are emotional today - you almost tear up about potentially losing money, which makes you ask more questions.",
}
