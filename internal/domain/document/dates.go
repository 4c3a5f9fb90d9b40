// Package document contiene las reglas puras de derivación del generador:
// aritmética de fechas, catálogo por tipo de documento, motor de totales,
// numeración y conciliación de fechas de cabecera. Sin estado, sin I/O.
package document

import (
	"math"
	"time"
)

const hoursPerDay = 24.0

// parseISO acepta RFC3339 o fecha simple AAAA-MM-DD. Entrada malformada
// devuelve zero time (la política de lenidad del sistema: degradar, no fallar).
func parseISO(iso string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", iso); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func utcMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToUTCMidnightISO normaliza cualquier instante a medianoche UTC del mismo
// día calendario. Idempotente: aplicarla dos veces da el mismo instante.
func ToUTCMidnightISO(t time.Time) string {
	return utcMidnight(t).Format(time.RFC3339)
}

// AddDays desplaza una fecha ISO n días calendario (UTC-safe; n negativo
// desplaza hacia atrás). Entrada malformada devuelve cadena vacía.
func AddDays(iso string, days int) string {
	t, ok := parseISO(iso)
	if !ok {
		return ""
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()+days, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
}

// DiffInDays diferencia en días enteros entre dos fechas ISO, calculada
// sobre fechas calendario UTC (no milisegundos transcurridos) y redondeada
// hacia arriba para que componentes de hora no produzcan off-by-one.
func DiffInDays(startISO, endISO string) int {
	start, ok1 := parseISO(startISO)
	end, ok2 := parseISO(endISO)
	if !ok1 || !ok2 {
		return 0
	}
	hours := utcMidnight(end.UTC()).Sub(utcMidnight(start.UTC())).Hours()
	return int(math.Ceil(hours / hoursPerDay))
}
