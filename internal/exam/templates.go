package exam

import "github.com/example/terve/pkg/models"

// questionTemplate is an immutable question blueprint. Generated questions copy it.
type questionTemplate struct {
	Type          QuestionType
	Prompt        string
	Options       []string
	CorrectAnswer string
	Explanation   string
	Points        int
}

type passage struct {
	Title     string
	Text      string
	Questions []questionTemplate
}

var grammarTopics = map[models.Level][]string{
	models.A1: {"present_tense", "basic_cases", "pronouns", "numbers"},
	models.A2: {"past_tense", "partitive", "possessive", "object_cases"},
	models.B1: {"conditional", "passive", "participles", "local_cases"},
	models.B2: {"potential_mood", "temporal_cases", "advanced_participles"},
	models.C1: {"subjunctive", "complex_sentences", "stylistic_variation"},
	models.C2: {"archaic_forms", "dialectal_features", "literary_language"},
}

// defaultGrammarTopic is used for topics without a template of their own
const defaultGrammarTopic = "present_tense"

var grammarTemplates = map[string]questionTemplate{
	"present_tense": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Hän _____ koulussa."`,
		Options:       []string{"on", "ovat", "olet", "olen"},
		CorrectAnswer: "0",
		Explanation:   `Kolmas persoona yksikkö: "hän on"`,
		Points:        2,
	},
	"basic_cases": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Asun _____." (Helsinki)`,
		Options:       []string{"Helsinkiin", "Helsingissä", "Helsingistä", "Helsinki"},
		CorrectAnswer: "1",
		Explanation:   `Inessiivi kertoo, missä jokin on: "Helsingissä"`,
		Points:        2,
	},
	"pronouns": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea pronomini: "_____ olen opiskelija."`,
		Options:       []string{"Sinä", "Hän", "Minä", "He"},
		CorrectAnswer: "2",
		Explanation:   `Verbi "olen" kuuluu ensimmäiseen persoonaan: "minä olen"`,
		Points:        2,
	},
	"numbers": {
		Type:          FillBlank,
		Prompt:        "Kirjoita numero sanana: 3 + 4 = _____",
		CorrectAnswer: "seitsemän",
		Explanation:   `3 + 4 = 7 eli "seitsemän"`,
		Points:        2,
	},
	"past_tense": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Eilen me _____ elokuvissa."`,
		Options:       []string{"kävin", "kävimme", "kävit", "kävivät"},
		CorrectAnswer: "1",
		Explanation:   `Ensimmäinen persoona monikko imperfektissä: "me kävimme"`,
		Points:        2,
	},
	"partitive": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Juon aamulla _____."`,
		Options:       []string{"kahvi", "kahvin", "kahvia", "kahviin"},
		CorrectAnswer: "2",
		Explanation:   `Ainesanat ovat partitiivissa: "juon kahvia"`,
		Points:        2,
	},
	"possessive": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Tämä on minun _____."`,
		Options:       []string{"kirjani", "kirjasi", "kirjansa", "kirjamme"},
		CorrectAnswer: "0",
		Explanation:   `Minun + possessiivisuffiksi -ni: "minun kirjani"`,
		Points:        2,
	},
	"object_cases": {
		Type:          TrueFalse,
		Prompt:        `Lauseessa "Ostin auton" objekti on totaalinen.`,
		Options:       []string{"true", "false"},
		CorrectAnswer: "true",
		Explanation:   `Genetiivimuotoinen objekti "auton" kertoo kokonaisesta teosta.`,
		Points:        2,
	},
	"conditional": {
		Type:          MultipleChoice,
		Prompt:        `Täydennä lause: "Jos minulla _____ aikaa, matkustaisin Lappiin."`,
		Options:       []string{"on", "oli", "olisi", "ole"},
		CorrectAnswer: "2",
		Explanation:   `Konditionaali: "Jos minulla olisi aikaa..."`,
		Points:        2,
	},
	"passive": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Suomessa _____ paljon kahvia."`,
		Options:       []string{"juodaan", "juomme", "juovat", "joi"},
		CorrectAnswer: "0",
		Explanation:   `Passiivi: "juodaan"`,
		Points:        2,
	},
	"participles": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "_____ mies istui penkillä."`,
		Options:       []string{"Väsyvä", "Väsynyt", "Väsyttävä", "Väsyneen"},
		CorrectAnswer: "1",
		Explanation:   `Menneen ajan partisiippi: "väsynyt"`,
		Points:        2,
	},
	"local_cases": {
		Type:          FillBlank,
		Prompt:        `Täydennä: "Menen huomenna _____." (kauppa, mihin?)`,
		CorrectAnswer: "kauppaan",
		Explanation:   `Illatiivi vastaa kysymykseen mihin: "kauppaan"`,
		Points:        2,
	},
	"potential_mood": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Hän _____ jo kotona."`,
		Options:       []string{"olkoon", "lienee", "ollut", "olla"},
		CorrectAnswer: "1",
		Explanation:   `Potentiaali ilmaisee todennäköisyyttä: "hän lienee"`,
		Points:        2,
	},
	"complex_sentences": {
		Type:          TrueFalse,
		Prompt:        `Lauseessa "Vaikka satoi, lähdimme ulos" sivulause ilmaisee myönnytystä.`,
		Options:       []string{"true", "false"},
		CorrectAnswer: "true",
		Explanation:   `Konjunktio "vaikka" aloittaa myönnytyslauseen.`,
		Points:        2,
	},
	"temporal_cases": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Tapaamme _____." (maanantai)`,
		Options:       []string{"maanantaissa", "maanantaille", "maanantaina", "maanantain"},
		CorrectAnswer: "2",
		Explanation:   `Essiivi ilmaisee ajankohtaa: "maanantaina"`,
		Points:        2,
	},
	"advanced_participles": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "Tämä on äitini _____ kakku."`,
		Options:       []string{"leipoma", "leipova", "leiponut", "leipomassa"},
		CorrectAnswer: "0",
		Explanation:   `Agenttipartisiippi kertoo tekijän: "äitini leipoma"`,
		Points:        2,
	},
	"subjunctive": {
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea muoto: "_____ niin kuin haluat."`,
		Options:       []string{"Olisi", "Lienee", "On", "Olkoon"},
		CorrectAnswer: "3",
		Explanation:   `Kolmannen persoonan imperatiivi: "olkoon"`,
		Points:        2,
	},
	"stylistic_variation": {
		Type:    MultipleChoice,
		Prompt:  "Mikä ilmaus on muodollisin?",
		Options: []string{
			"Soita mulle.",
			"Pyydämme ystävällisesti ottamaan yhteyttä.",
			"Ota yhteyttä, jooko?",
			"Moi, soitellaan!",
		},
		CorrectAnswer: "1",
		Explanation:   "Kohtelias passiivirakenne kuuluu muodolliseen tyyliin.",
		Points:        2,
	},
	"literary_language": {
		Type:          MultipleChoice,
		Prompt:        `Mikä tyylikeino on lauseessa "Meri huokaili väsyneenä"?`,
		Options:       []string{"Vertaus", "Alkusointu", "Personifikaatio", "Liioittelu"},
		CorrectAnswer: "2",
		Explanation:   "Eloton asia saa inhimillisiä piirteitä.",
		Points:        2,
	},
	"dialectal_features": {
		Type:          MultipleChoice,
		Prompt:        `Mitä puhekielen "mä oon" tarkoittaa yleiskielellä?`,
		Options:       []string{"minä olin", "minä olen", "me olemme", "sinä olet"},
		CorrectAnswer: "1",
		Explanation:   `Puhekielen "mä oon" on yleiskielessä "minä olen".`,
		Points:        2,
	},
}

var vocabularyTemplates = []questionTemplate{
	{
		Type:          MultipleChoice,
		Prompt:        `Mikä sana tarkoittaa "kirja" englanniksi?`,
		Options:       []string{"book", "table", "chair", "pen"},
		CorrectAnswer: "0",
		Explanation:   `"Kirja" on "book" englanniksi.`,
		Points:        1,
	},
	{
		Type:          MultipleChoice,
		Prompt:        `Valitse oikea sana: "Haluan _____ kahvia."`,
		Options:       []string{"juoda", "syödä", "lukea", "kirjoittaa"},
		CorrectAnswer: "0",
		Explanation:   "Kahvia juodaan, ei syödä.",
		Points:        1,
	},
	{
		Type:          MultipleChoice,
		Prompt:        `Mikä on sanan "iso" vastakohta?`,
		Options:       []string{"pitkä", "uusi", "vanha", "pieni"},
		CorrectAnswer: "3",
		Explanation:   `"Iso" ja "pieni" ovat vastakohtia.`,
		Points:        1,
	},
	{
		Type:          MultipleChoice,
		Prompt:        "Mikä sana ei kuulu joukkoon?",
		Options:       []string{"omena", "auto", "banaani", "päärynä"},
		CorrectAnswer: "1",
		Explanation:   "Auto ei ole hedelmä.",
		Points:        1,
	},
	{
		Type:          FillBlank,
		Prompt:        `Kirjoita suomeksi: "house"`,
		CorrectAnswer: "talo",
		Explanation:   `"House" on suomeksi "talo".`,
		Points:        1,
	},
}

// mainIdea and concreteExamples are asked about every passage
var (
	mainIdea = questionTemplate{
		Type:          MultipleChoice,
		Prompt:        "Mikä on tekstin pääajatus?",
		Options:       []string{"Henkilökohtainen tarina", "Ohjeita", "Mielipide", "Uutinen"},
		CorrectAnswer: "0",
		Explanation:   "Teksti kertoo henkilökohtaisen tarinan.",
		Points:        3,
	}
	concreteExamples = questionTemplate{
		Type:          TrueFalse,
		Prompt:        "Tekstissä mainitaan konkreettisia esimerkkejä.",
		Options:       []string{"true", "false"},
		CorrectAnswer: "true",
		Explanation:   "Tekstissä on useita konkreettisia esimerkkejä.",
		Points:        2,
	}
)

var readingPassages = map[models.Level][]passage{
	models.A1: {
		{
			Title: "Esittely",
			Text: "Hei! Minun nimeni on Anna. Olen 25-vuotias ja asun Helsingissä. Työskentelen kaupassa. " +
				"Vapaa-ajallani pidän lukemisesta ja uinnista.",
			Questions: []questionTemplate{
				{
					Type:          MultipleChoice,
					Prompt:        "Missä Anna asuu?",
					Options:       []string{"Turussa", "Helsingissä", "Tampereella", "Oulussa"},
					CorrectAnswer: "1",
					Explanation:   `Anna sanoo: "asun Helsingissä."`,
					Points:        3,
				},
				{
					Type:          TrueFalse,
					Prompt:        "Anna työskentelee koulussa.",
					Options:       []string{"true", "false"},
					CorrectAnswer: "false",
					Explanation:   "Anna työskentelee kaupassa.",
					Points:        2,
				},
			},
		},
	},
	models.A2: {
		{
			Title: "Museovierailu",
			Text: "Viime viikonloppuna kävin ystäväni kanssa museossa. Näimme siellä mielenkiintoisen näyttelyn " +
				"suomalaisesta taiteesta. Museo oli täynnä ihmisiä, mutta saimme rauhassa katsella tauluja.",
			Questions: []questionTemplate{
				{
					Type:          MultipleChoice,
					Prompt:        "Mistä näyttely kertoi?",
					Options:       []string{"Suomen historiasta", "Suomalaisesta taiteesta", "Luonnosta", "Musiikista"},
					CorrectAnswer: "1",
					Explanation:   "Näyttely kertoi suomalaisesta taiteesta.",
					Points:        3,
				},
				{
					Type:          TrueFalse,
					Prompt:        "Kertoja kävi museossa yksin.",
					Options:       []string{"true", "false"},
					CorrectAnswer: "false",
					Explanation:   "Kertoja kävi museossa ystävänsä kanssa.",
					Points:        2,
				},
			},
		},
	},
	models.B1: {
		{
			Title: "Ympäristöajattelu",
			Text: "Ilmastonmuutos on yksi aikamme suurimmista haasteista. Meidän kaikkien tulisi miettiä, " +
				"miten voimme omilla toimillamme vähentää hiilijalanjälkeämme. Pienet teot, kuten julkisten " +
				"kulkuneuvojen käyttäminen, voivat yhdessä tehdä ison eron.",
			Questions: []questionTemplate{
				{
					Type:          MultipleChoice,
					Prompt:        "Mikä voi tekstin mukaan vähentää hiilijalanjälkeä?",
					Options:       []string{"Lentäminen", "Julkisten kulkuneuvojen käyttäminen", "Autoilu", "Ostaminen"},
					CorrectAnswer: "1",
					Explanation:   "Tekstissä mainitaan julkisten kulkuneuvojen käyttäminen.",
					Points:        3,
				},
				{
					Type:          TrueFalse,
					Prompt:        "Tekstin mukaan pienillä teoilla ei ole merkitystä.",
					Options:       []string{"true", "false"},
					CorrectAnswer: "false",
					Explanation:   "Pienet teot voivat yhdessä tehdä ison eron.",
					Points:        2,
				},
			},
		},
	},
}

// readingQuestions lists the questions of a passage: the shared ones first
func (p passage) readingQuestions() []questionTemplate {
	out := []questionTemplate{mainIdea, concreteExamples}
	return append(out, p.Questions...)
}

var timeLimits = map[models.Level]int{
	models.A1: 45,
	models.A2: 60,
	models.B1: 75,
	models.B2: 90,
	models.C1: 105,
	models.C2: 120,
}

// DefaultTimeLimit applies to levels without a time limit of their own
const DefaultTimeLimit = 60

// TimeLimitFor returns the exam time limit of a level in minutes
func TimeLimitFor(level models.Level) int {
	if limit, ok := timeLimits[level]; ok {
		return limit
	}
	return DefaultTimeLimit
}

func topicsFor(level models.Level) []string {
	if topics, ok := grammarTopics[level]; ok {
		return topics
	}
	return grammarTopics[models.DefaultLevel]
}

func passagesFor(level models.Level) []passage {
	if passages, ok := readingPassages[level]; ok {
		return passages
	}
	return readingPassages[models.DefaultLevel]
}

func grammarTemplateFor(topic string) questionTemplate {
	if tpl, ok := grammarTemplates[topic]; ok {
		return tpl
	}
	return grammarTemplates[defaultGrammarTopic]
}

// LevelInfo describes what a level expects of a learner
type LevelInfo struct {
	Level       models.Level `json:"level"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Skills      []string     `json:"skills"`
	TimeLimit   int          `json:"timeLimit"`
}

var levelInfo = map[models.Level]LevelInfo{
	models.A1: {
		Name:        "Beginner",
		Description: "Can understand and use familiar everyday expressions and very basic phrases.",
		Skills:      []string{"Basic greetings", "Simple present tense", "Numbers and time", "Family and personal info"},
	},
	models.A2: {
		Name:        "Elementary",
		Description: "Can communicate in simple routine tasks requiring direct exchange of information.",
		Skills:      []string{"Past tense", "Future expressions", "Shopping and services", "Describing experiences"},
	},
	models.B1: {
		Name:        "Intermediate",
		Description: "Can deal with most situations likely to arise whilst travelling in Finland.",
		Skills:      []string{"Complex sentences", "Expressing opinions", "Conditional mood", "Abstract topics"},
	},
	models.B2: {
		Name:        "Upper Intermediate",
		Description: "Can interact with native speakers with fluency and spontaneity.",
		Skills:      []string{"Advanced grammar", "Nuanced expressions", "Professional communication", "Complex texts"},
	},
	models.C1: {
		Name:        "Advanced",
		Description: "Can express ideas fluently and spontaneously without searching for expressions.",
		Skills:      []string{"Subtle language use", "Academic writing", "Professional contexts", "Cultural references"},
	},
	models.C2: {
		Name:        "Proficient",
		Description: "Can understand virtually everything heard or read with ease.",
		Skills:      []string{"Native-like fluency", "Complex literature", "Specialized topics", "Perfect accuracy"},
	},
}

// LevelInfoFor returns the description of a level, falling back to the default level
func LevelInfoFor(level models.Level) LevelInfo {
	level = level.OrDefault()
	info := levelInfo[level]
	info.Level = level
	info.TimeLimit = TimeLimitFor(level)
	info.Skills = append([]string(nil), info.Skills...)
	return info
}

// AllLevelInfo returns the description of every level, easiest first
func AllLevelInfo() []LevelInfo {
	out := make([]LevelInfo, 0, len(models.Levels))
	for _, l := range models.Levels {
		out = append(out, LevelInfoFor(l))
	}
	return out
}
