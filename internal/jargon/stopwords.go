package jargon

// stopWords is the fixed set of common English function and hedge words
// excluded from jargon scoring. Membership is checked against the
// lowercased token.
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "accordingly", "actually", "additionally",
		"after", "again", "against", "approximately", "consequently",
		"furthermore", "nevertheless", "nonetheless", "notwithstanding",
		"particularly", "specifically", "understanding",
		"all", "almost", "also", "although", "always", "am", "an", "and",
		"another", "any", "anything", "are", "around", "as", "at",
		"basically", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "can", "cannot", "certainly",
		"could", "did", "different", "do", "does", "doing", "down",
		"during", "each", "either", "enough", "especially", "even",
		"every", "everything", "example", "few", "for", "from", "further",
		"general", "generally", "get", "got", "had", "has", "have",
		"having", "he", "her", "here", "hers", "him", "his", "how",
		"however", "i", "if", "important", "in", "indeed", "instead",
		"into", "is", "it", "its", "itself", "just", "like", "likely",
		"made", "make", "many", "may", "maybe", "me", "might", "more",
		"moreover", "most", "much", "must", "my", "neither", "never",
		"nothing", "now", "of", "off", "often", "on", "once", "only",
		"or", "other", "otherwise", "our", "out", "over", "own", "people",
		"perhaps", "possibly", "probably", "rather", "really", "same",
		"she", "should", "simply", "since", "so", "some", "something",
		"sometimes", "still", "such", "than", "that", "the", "their",
		"them", "then", "there", "therefore", "these", "they", "things",
		"this", "those", "through", "thus", "to", "too", "under", "until",
		"up", "upon", "us", "usually", "very", "was", "we", "well",
		"were", "what", "when", "where", "whether", "which", "while",
		"who", "whose", "why", "will", "with", "within", "without",
		"would", "yet", "you", "your",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}
