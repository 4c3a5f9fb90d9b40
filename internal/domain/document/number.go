package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// NextNumber incrementa la corrida de dígitos final del último número
// emitido conservando prefijo y ancho de relleno ("QT-0099" → "QT-0100").
// Sin número previo (o sin dígitos finales) siembra con el prefijo del tipo.
func NextNumber(last string, t entity.DocumentType) string {
	seed := NumberPrefix(t) + "0001"
	if last == "" {
		return seed
	}
	run := trailingDigits.FindString(last)
	if run == "" {
		return seed
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return seed
	}
	prefix := strings.TrimSuffix(last, run)
	return prefix + fmt.Sprintf("%0*d", len(run), n+1)
}
