package usecase

import "strings"

// patchText aplica un campo de texto de una actualización parcial: nil o
// blanco significan "sin cambio".
func patchText(dst *string, src *string) {
	if src != nil && strings.TrimSpace(*src) != "" {
		*dst = *src
	}
}
