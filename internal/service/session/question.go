// Package session assembles practice sessions: interactive question
// mixes built from vocabulary, spaced repetition history, and the
// sentence corpus.
package session

// Question kinds, which tell the client how to render the exercise.
const (
	KindMCQ   = "mcq"
	KindType  = "type"
	KindOrder = "order"
)

// Question modes, the specific exercise templates.
const (
	ModeListenToEnglish   = "listen_to_english"
	ModeWordToEnglish     = "word_to_english"
	ModeEnglishToWord     = "english_to_word"
	ModeTypeEnglishToWord = "type_english_to_word"
	ModeOrderSentence     = "order_sentence"
	ModeContextCloze      = "context_cloze"
	ModeCorpusCloze       = "corpus_cloze"
)

// XP awarded per question template.
const (
	xpChoiceCorrect = 10
	xpChoiceWrong   = 2
	xpTypeCorrect   = 12
	xpTypeWrong     = 3
	xpClozeCorrect  = 14
	xpClozeWrong    = 3
)

// Question is one practice exercise, serialized straight to the client.
// Prompts come in English and Bengali because learners are Bengali
// speakers studying through English.
type Question struct {
	ID        int      `json:"id"`
	Kind      string   `json:"kind"`
	Mode      string   `json:"mode"`
	ModeLabel string   `json:"mode_label"`
	PromptEN  string   `json:"prompt_en"`
	PromptBN  string   `json:"prompt_bn"`
	TTSText   string   `json:"tts_text,omitempty"`
	TTSLang   string   `json:"tts_lang,omitempty"`
	Choices   []string `json:"choices,omitempty"`
	Tokens    []string `json:"tokens,omitempty"`
	Answer    string   `json:"answer"`
	Word      string   `json:"word"`
	HintBN    string   `json:"hint_bn,omitempty"`
	XPCorrect int      `json:"xp_correct"`
	XPWrong   int      `json:"xp_wrong"`
}
