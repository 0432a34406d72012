package speech

// DepressionKeywords are matched as substrings of the lowercased transcript.
// Each keyword found adds KeywordWeight to the score.
var DepressionKeywords = []string{
	"triste", "tristeza", "deprimido", "deprimida", "deprimente",
	"sozinho", "sozinha", "solidão", "vazio", "vazia",
	"desesperado", "desesperada", "sem esperança", "desespero",
	"cansado", "cansada", "exausto", "exausta", "esgotado", "esgotada",
	"não consigo", "não aguento", "não dá mais", "sem sentido", "sem propósito",
	"inútil", "fracasso", "culpa", "culpado", "culpada",
	"ninguém entende", "ninguém se importa", "me afastar", "isolar", "isolamento",
	"não durmo", "insônia", "sem apetite", "sem energia", "desistir",
	"acabar com tudo", "sumir", "angústia", "ansiedade", "medo",
	"pavor", "choro", "chorar",
	// perinatal
	"não consigo cuidar", "não sinto amor", "mãe ruim", "não quero o bebê",
	"não consigo amamentar", "pós-parto", "puerpério", "baby blues",
	"medo do parto", "medo de perder", "aborto", "sangramento",
	"gestação de risco", "prematuridade",
	// violence
	"me bateu", "me agrediu", "apanhei", "ameaça", "ameaçou",
	"tenho medo dele", "não me deixa sair", "controla", "me humilha",
	"violência", "abuso",
	// hormonal
	"fadiga", "hormônio", "menopausa", "tpm", "ciclo irregular",
}

// KeywordWeight is the score added per keyword found.
const KeywordWeight = 2

// HesitationMarkers are counted as substrings of the lowercased transcript.
var HesitationMarkers = []string{"é...", "hum", "hmm", "tipo", "assim", "né", "ah", "ahn"}

var negationWords = []string{"não", "nunca", "nada", "nenhum", "nem"}

// firstPersonMarkers carry their surrounding spaces so only whole words count.
var firstPersonMarkers = []string{"eu ", " me ", " meu ", " minha ", " mim "}

const (
	negationThreshold    = 5
	firstPersonThreshold = 10
	firstPersonWeight    = 2
	hesitationThreshold  = 5
	hesitationMaxScore   = 5
)
