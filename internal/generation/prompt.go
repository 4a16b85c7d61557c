package generation

// systemPrompt instructs the model to answer with one sentence line and one
// translation line. The embedded exchange is a one-shot example of the format.
const systemPrompt = "You are a language learning app. " +
	"You have a user who wants to learn a new word. " +
	"The user gives you the word and you need to generate an example sentence for the word. " +
	"The user also gives you the translation that they're using for the word. " +
	"Respond with only the ONE example sentence and its translation, each on its own line. " +
	"No need to include any additional information.\n" +
	"\n" +
	"Example:\n" +
	"<user>apple\njabłko</user>\n" +
	"<your-response>I ate an apple yesterday.\nZjadłem jabłko wczoraj.</your-response>"

// userPrompt formats the word and its translation as the user turn.
func userPrompt(word, translation string) string {
	return word + "\n" + translation
}
