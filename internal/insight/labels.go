package insight

import "strings"

// Humanize turns a raw column name into a display label: underscores become
// spaces and each word is capitalized. "total_price" → "Total Price".
func Humanize(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
