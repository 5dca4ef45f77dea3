package domain

// polarityLexicon maps lowercase words to polarity weights in [-5, 5],
// AFINN-style. The comparative score is the sum of matched weights divided
// by the total word count.
var polarityLexicon = map[string]int{
	// strongly positive
	"amazing": 4, "awesome": 4, "breathtaking": 5, "brilliant": 4,
	"ecstatic": 5, "excellent": 3, "fabulous": 4, "fantastic": 4,
	"incredible": 4, "outstanding": 5, "superb": 5, "thrilled": 5,
	"wonderful": 4, "overjoyed": 4, "phenomenal": 4,

	// positive
	"accomplished": 3, "beautiful": 3, "calm": 2, "cheerful": 3,
	"confident": 2, "delighted": 3, "eager": 2, "energized": 3,
	"enjoyed": 2, "excited": 3, "focused": 2, "fun": 3, "glad": 3,
	"good": 3, "grateful": 3, "great": 3, "happy": 3, "healthy": 2,
	"hopeful": 2, "inspired": 2, "joy": 3, "joyful": 3, "love": 3,
	"loved": 3, "motivated": 3, "peaceful": 2, "pleased": 3, "proud": 2,
	"refreshed": 2, "relaxed": 2, "relieved": 2, "satisfied": 2,
	"strong": 2, "thankful": 2, "win": 4, "won": 3, "productive": 2,
	"progress": 2, "better": 2, "best": 3, "nice": 3, "optimistic": 2,
	"rested": 2, "smile": 2, "smiled": 2, "success": 2, "successful": 3,

	// mildly positive
	"fine": 2, "okay": 1, "ok": 1, "decent": 1, "steady": 1,

	// mildly negative
	"bored": -2, "meh": -1, "tired": -2, "slow": -1, "busy": -1,
	"distracted": -2, "restless": -2, "sluggish": -2,

	// negative
	"angry": -3, "annoyed": -2, "anxious": -3, "awful": -3, "bad": -3,
	"disappointed": -2, "discouraged": -2, "drained": -2, "dread": -3,
	"exhausted": -2, "fail": -2, "failed": -2, "failure": -2,
	"frustrated": -2, "gloomy": -2, "guilty": -3, "hate": -3, "hated": -3,
	"hurt": -2, "lonely": -2, "lost": -3, "mad": -3, "miserable": -3,
	"nervous": -2, "overwhelmed": -3, "pain": -2, "sad": -2, "scared": -2,
	"sick": -2, "stress": -2, "stressed": -2, "struggle": -2,
	"struggled": -2, "stuck": -2, "terrible": -3, "ugly": -3,
	"unhappy": -2, "upset": -2, "worried": -3, "worse": -3, "worst": -3,
	"cry": -1, "cried": -2, "crying": -2, "angst": -3, "afraid": -2,

	// strongly negative
	"depressed": -4, "devastated": -4, "despair": -3, "furious": -4,
	"heartbroken": -4, "hopeless": -4, "horrible": -3, "panic": -3,
	"rage": -4, "suffering": -4, "agony": -4, "grief": -4,
}

// emotionCategory pairs an emotion tag with its trigger keywords. A keyword
// matching anywhere in the text (case-insensitive substring) flags the
// emotion. Order is fixed; tagging stops after three matches.
type emotionCategory struct {
	name     string
	keywords []string
}

var emotionCategories = []emotionCategory{
	{"joy", []string{"happy", "joy", "delight", "cheerful", "smile", "laugh", "fun"}},
	{"gratitude", []string{"grateful", "thankful", "appreciate", "blessed", "gratitude"}},
	{"calm", []string{"calm", "peaceful", "relaxed", "serene", "tranquil", "at ease"}},
	{"excitement", []string{"excited", "thrilled", "can't wait", "pumped", "eager"}},
	{"pride", []string{"proud", "accomplished", "achieved", "nailed it", "milestone"}},
	{"sadness", []string{"sad", "down", "cry", "tear", "grief", "heartbroken", "miss"}},
	{"anxiety", []string{"anxious", "worried", "nervous", "panic", "overwhelmed", "uneasy"}},
	{"anger", []string{"angry", "furious", "mad", "annoyed", "irritated", "rage"}},
	{"fatigue", []string{"tired", "exhausted", "drained", "sleepy", "worn out", "fatigue"}},
	{"loneliness", []string{"lonely", "alone", "isolated", "left out", "disconnected"}},
}
