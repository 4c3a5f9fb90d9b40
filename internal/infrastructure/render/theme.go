// Package render produce el HTML autocontenido del documento: una sola
// plantilla parametrizada por tema (paleta y tipografía), sin assets
// externos, apta para guardar o imprimir desde el navegador.
package render

import "strings"

// Theme paleta y tipografía de un tema visual.
type Theme struct {
	Name       string
	Primary    string
	Accent     string
	Background string
	Text       string
	Muted      string
	Border     string
	Font       string
	HeadingUC  bool // encabezados de tabla en mayúsculas
}

// DefaultTheme tema aplicado cuando el solicitado no existe o viene vacío.
const DefaultTheme = "modern"

var themes = map[string]Theme{
	"modern": {
		Name:       "modern",
		Primary:    "#2563eb",
		Accent:     "#1e40af",
		Background: "#ffffff",
		Text:       "#111827",
		Muted:      "#6b7280",
		Border:     "#e5e7eb",
		Font:       "Inter",
		HeadingUC:  true,
	},
	"minimal": {
		Name:       "minimal",
		Primary:    "#111827",
		Accent:     "#374151",
		Background: "#ffffff",
		Text:       "#1f2937",
		Muted:      "#9ca3af",
		Border:     "#f3f4f6",
		Font:       "Helvetica Neue",
	},
	"corporate": {
		Name:       "corporate",
		Primary:    "#1e3a5f",
		Accent:     "#b8860b",
		Background: "#fdfdfb",
		Text:       "#1a202c",
		Muted:      "#718096",
		Border:     "#cbd5e0",
		Font:       "Georgia",
		HeadingUC:  true,
	},
	"fun": {
		Name:       "fun",
		Primary:    "#db2777",
		Accent:     "#9333ea",
		Background: "#fff7fb",
		Text:       "#3b0764",
		Muted:      "#a855f7",
		Border:     "#fbcfe8",
		Font:       "Comic Sans MS",
	},
	"compact": {
		Name:       "compact",
		Primary:    "#0f766e",
		Accent:     "#115e59",
		Background: "#ffffff",
		Text:       "#134e4a",
		Muted:      "#5eead4",
		Border:     "#ccfbf1",
		Font:       "Arial",
		HeadingUC:  true,
	},
}

// ResolveTheme devuelve el tema pedido o el tema por defecto si no existe
// (falla cerrado, igual que la configuración por tipo de documento).
func ResolveTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// ThemeNames lista los temas disponibles en orden estable.
func ThemeNames() []string {
	return []string{"modern", "minimal", "corporate", "fun", "compact"}
}
