// Package fallback holds the static content served when an upstream service
// fails, and the rules that decide when to serve it.
package fallback

var trendTitles = [...]string{
	"Como ganhar dinheiro online em 2025",
	"Receitas fitness para emagrecer rápido",
	"Estratégias para renda extra usando IA",
	"Organização financeira para iniciantes",
	"Técnicas para reduzir ansiedade",
	"Melhores investimentos de baixo risco",
	"Como trabalhar de casa e lucrar",
	"Guia prático para marketing digital",
	"Como economizar dinheiro em 2025",
	"Passo a passo para vender no Hotmart",
}

var suggestionTemplates = [...]string{
	"Guia Completo sobre ",
	"Como ganhar dinheiro com ",
	"Segredos para dominar ",
	"Passo a passo para iniciantes em ",
	"Estratégias avançadas sobre ",
}

// Trends returns the ten generic trend titles. Each call returns a new slice.
func Trends() []string {
	out := make([]string, len(trendTitles))
	copy(out, trendTitles[:])
	return out
}

// Suggestions returns the five e-book title templates with topic appended.
func Suggestions(topic string) []string {
	out := make([]string, len(suggestionTemplates))
	for i, prefix := range suggestionTemplates {
		out[i] = prefix + topic
	}
	return out
}
