package webhook

// Reply-keyboard button labels. Inbound text matching a label is a menu tap,
// not free text.
const (
	buttonLogDay   = "Log my day"
	buttonTables   = "Tables"
	buttonQuestion = "Ask a question"
)

// User-facing replies.
const (
	msgStart = "Hi! Describe your workday in text or voice and I will log it.\n" +
		"Use the buttons below to browse your tables or ask a question."
	msgLogDayPrompt     = "Describe your workday in one message, text or voice."
	msgQuestionPrompt   = "Send your question as a plain message."
	msgNoRecords        = "No records for this day."
	msgTextTooLong      = "That message is too long for me to process. Please shorten it."
	msgAudioTooLarge    = "That recording is too large. Please send a shorter one."
	msgTranscriptShort  = "I could not make out enough speech in that recording. Please try again."
	msgProcessingFailed = "Something went wrong while processing that. Please try again later."
)
